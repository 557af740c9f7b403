// Package client fetches and deserializes responses from the line
// search service.
package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Fetcher is implemented by Client and by the mock API
type Fetcher interface {
	Ping(ctx context.Context) (api.Ping, error)
	Search(ctx context.Context, query api.SearchQuery) (api.Search, error)
}

var _ Fetcher = (*Client)(nil)

const (
	defaultTimeout = 30 * time.Second
	defaultBaseURL = "http://localhost:6969"
)

// Client issues GET requests against a base URL. It is safe for
// concurrent use.
type Client struct {
	BaseURL *url.URL
	Client  *http.Client
	Log     logrus.FieldLogger

	once sync.Once
	mu   sync.Mutex
	last *url.URL
}

// Option configures a Client
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.Client = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.Client = &http.Client{Timeout: d} }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.Log = log }
}

// New returns a client for path resolved against base. An empty path
// addresses base itself.
func New(base, path string, opts ...Option) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing base url %q", base)
	}
	if path != "" {
		ref, err := url.Parse(path)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing path %q", path)
		}
		u = u.ResolveReference(ref)
	}
	c := &Client{BaseURL: u}
	for _, o := range opts {
		o(c)
	}
	c.ensure()
	return c, nil
}

// Ping checks that the service answers
func (c *Client) Ping(ctx context.Context) (api.Ping, error) {
	return Get(ctx, c, api.ParsePing, api.PingQuery())
}

// Search runs a line search
func (c *Client) Search(ctx context.Context, query api.SearchQuery) (api.Search, error) {
	return Get(ctx, c, api.ParseSearch, query.Values())
}

// LastRequest returns the URL of the most recent request, or nil
func (c *Client) LastRequest() *url.URL {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil
	}
	u := *c.last
	return &u
}

// ensure fills in defaults for a zero Client. It runs once per client.
func (c *Client) ensure() {
	c.once.Do(c.defaults)
}

func (c *Client) defaults() {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: defaultTimeout}
	}

	if c.BaseURL == nil {
		c.BaseURL = urlMust(url.Parse(defaultBaseURL))
	}

	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
}

func urlMust(u *url.URL, _ error) *url.URL { return u }
