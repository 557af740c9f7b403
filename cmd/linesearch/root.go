package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/cbsinteractive/linesearch/client"
	"github.com/cbsinteractive/linesearch/config"
	"github.com/cbsinteractive/linesearch/mock"
	"github.com/cbsinteractive/linesearch/timecode"
)

// globals are the persistent flags shared by every command
type globals struct {
	configPath string
	baseURL    string
	fps        string
	useMock    bool
	mockDelay  time.Duration

	cfg    *config.Config
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "linesearch",
		Short: "Search script lines by text and timecode",
		Long: `linesearch talks to a line search service. It can ping the service,
run searches, convert timecodes and browse results in a terminal UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&g.configPath, "config", "", "TOML config file (default $"+config.PathEnv+")")
	f.StringVar(&g.baseURL, "base-url", "", "service base url, overrides the config")
	f.StringVar(&g.fps, "fps", "", "frame rate of timecodes, e.g. 25 or 29.97DF")
	f.BoolVar(&g.useMock, "mock", false, "answer from canned data instead of the service")
	f.DurationVar(&g.mockDelay, "mock-delay", mock.Delay, "response delay of the mock")

	root.AddCommand(newPingCmd(g))
	root.AddCommand(newSearchCmd(g))
	root.AddCommand(newTimecodeCmd(g))
	root.AddCommand(newTUICmd(g))
	return root
}

func (g *globals) load() error {
	path := g.configPath
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.LoadConfig()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return err
	}
	if g.baseURL != "" {
		cfg.API.BaseURL = g.baseURL
	}
	if g.fps != "" {
		fps, err := timecode.ParseFps(g.fps)
		if err != nil {
			return err
		}
		cfg.Fps = fps
	}
	logger, err := cfg.Log.Logger()
	if err != nil {
		return err
	}
	g.cfg, g.logger = cfg, logger
	return nil
}

func (g *globals) fetcher() (client.Fetcher, error) {
	if g.useMock {
		m := mock.New(sampleRows(g.cfg.Fps))
		m.Delay = g.mockDelay
		return m, nil
	}
	return client.New(g.cfg.API.BaseURL, g.cfg.API.Path,
		client.WithTimeout(time.Duration(g.cfg.API.Timeout)),
		client.WithLogger(g.logger),
	)
}

// sampleRows are the canned results of --mock
func sampleRows(fps timecode.Fps) api.Table {
	lines := []struct{ speaker, line string }{
		{"ANNA", "Where were you last night?"},
		{"BEN", "Out. Does it matter?"},
		{"ANNA", "It matters to me."},
		{"BEN", "Then you should have called."},
		{"ANNA", "I did. Twice."},
		{"BEN", "I know."},
	}
	rows := make(api.Table, 0, len(lines))
	for i, l := range lines {
		in, _ := timecode.FromFrameCount((i*4+1)*fps.Nominal(), fps)
		out, _ := timecode.FromFrameCount((i*4+3)*fps.Nominal(), fps)
		rows = append(rows, api.Row{
			{Value: "DEMO", Kind: api.Prod},
			{Value: "1", Kind: api.Segment},
			{Value: in.String(), Kind: api.TCIn},
			{Value: out.String(), Kind: api.TCOut},
			{Value: l.speaker, Kind: api.Speaker},
			{Value: l.line, Kind: api.Line},
		})
	}
	return rows
}
