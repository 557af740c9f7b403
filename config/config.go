// Package config loads the line search configuration. Values start at
// their defaults, are overridden by an optional TOML file, and finally
// by environment variables.
package config

import (
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/cbsinteractive/linesearch/timecode"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PathEnv names the variable LoadConfig reads the file location from
const PathEnv = "LINESEARCH_CONFIG"

// Config is the whole configuration
type Config struct {
	Server Server       `toml:"server"`
	API    API          `toml:"api"`
	Redis  Redis        `toml:"redis"`
	Log    Log          `toml:"log"`
	Sentry Sentry       `toml:"sentry"`
	Fps    timecode.Fps `toml:"fps" envconfig:"DEFAULT_FPS"`
}

type Server struct {
	Addr string `toml:"addr" envconfig:"SERVER_ADDR"`
}

// API locates the line search service for clients
type API struct {
	BaseURL string   `toml:"base_url" envconfig:"API_BASE_URL"`
	Path    string   `toml:"path" envconfig:"API_PATH"`
	Timeout Duration `toml:"timeout" envconfig:"API_TIMEOUT"`
}

// Redis contains configuration for the line store
type Redis struct {
	Addr     string `toml:"addr" envconfig:"REDIS_ADDR"`
	DB       int    `toml:"db" envconfig:"REDIS_DB"`
	Password string `toml:"password" envconfig:"REDIS_PASSWORD"`
}

type Log struct {
	Level  string `toml:"level" envconfig:"LOG_LEVEL"`
	Format string `toml:"format" envconfig:"LOG_FORMAT"`
}

type Sentry struct {
	DSN string `toml:"dsn" envconfig:"SENTRY_DSN"`
	Env string `toml:"env" envconfig:"SENTRY_ENVIRONMENT"`
}

// Duration is a time.Duration read from strings like "5s"
type Duration time.Duration

func (d *Duration) UnmarshalText(p []byte) error {
	v, err := time.ParseDuration(string(p))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: Server{Addr: "localhost:6969"},
		API: API{
			BaseURL: "http://localhost:6969",
			Timeout: Duration(30 * time.Second),
		},
		Redis:  Redis{Addr: "127.0.0.1:6379"},
		Log:    Log{Level: "info", Format: "text"},
		Sentry: Sentry{Env: "dev"},
		Fps:    timecode.F25,
	}
}

// LoadConfig loads the file named by LINESEARCH_CONFIG, if any, and the
// environment.
func LoadConfig() (*Config, error) {
	return Load(os.Getenv(PathEnv))
}

// Load reads the TOML file at path over the defaults, then applies
// environment variables. An empty path or a missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := ioutil.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "read config")
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(err, "parse config")
			}
		}
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "process env")
	}
	return cfg, nil
}

// Logger builds a logger at the configured level and format
func (l Log) Logger() (*logrus.Logger, error) {
	logger := logrus.New()
	level := l.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	switch l.Format {
	case "", "text":
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unknown log format %q", l.Format)
	}
	return logger, nil
}
