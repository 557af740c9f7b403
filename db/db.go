package db

import (
	"encoding/json"
	"net"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("not found")
)

type Options struct {
	Addr     string
	DB       int
	Password string
}

func NewClient(opt *Options) (*Client, error) {
	if opt == nil {
		opt = &Options{}
	}
	if opt.Addr == "" {
		opt.Addr = "localhost:6379"
	}
	_, _, err := net.SplitHostPort(opt.Addr)
	if err != nil {
		opt.Addr = net.JoinHostPort(opt.Addr, "6379")
	}
	f := &Client{
		rc: redis.NewClient(&redis.Options{
			Addr:     opt.Addr,
			DB:       opt.DB,
			Password: opt.Password,
		}),
	}
	return f, nil
}

// Client stores JSON values in redis
type Client struct {
	rc *redis.Client
}

func (c *Client) Get(key string, dst interface{}) error {
	val, err := c.rc.Get(key).Result()
	if err == redis.Nil {
		return errors.Wrap(ErrNotFound, key)
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dst)
}

func (c *Client) Put(key string, val interface{}) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rc.Set(key, string(data), 0).Err()
}

func (c *Client) Delete(key string) error {
	n, err := c.rc.Del(key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrap(ErrNotFound, key)
	}
	return nil
}

// Ping checks the connection to redis
func (c *Client) Ping() error {
	return c.rc.Ping().Err()
}

func (c *Client) Close() error {
	return c.rc.Close()
}
