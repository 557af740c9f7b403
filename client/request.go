package client

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
)

// StatusError is returned for a non 2xx response
type StatusError struct {
	Code int
	Body string
}

func (e StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}

func (e StatusError) Error() string {
	return fmt.Sprintf("http status: %d: %q", e.Code, e.Body)
}

// Get fetches the client's URL with query attached and deserializes the
// body with dec.
func Get[T any](ctx context.Context, c *Client, dec api.Deserializer[T], query url.Values) (T, error) {
	var zero T
	c.ensure()

	u := *c.BaseURL
	u.RawQuery = query.Encode()
	c.mu.Lock()
	c.last = &u
	c.mu.Unlock()

	body, err := c.get(ctx, &u)
	if err != nil {
		return zero, err
	}
	v, err := dec(body)
	if err != nil {
		return zero, errors.Wrapf(err, "could not deserialize data for GET request: %s", &u)
	}
	return v, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	log := c.Log.WithField("url", u.String())
	if id, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-Id", id.String())
		log = log.WithField("rid", id.String())
	}

	log.Debug("fetching")
	resp, err := c.Client.Do(req)
	if err != nil {
		log.WithError(err).Error("could not fetch data")
		return nil, errors.Wrapf(err, "could not fetch data for GET request: %s", u)
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("code", resp.StatusCode).Error("could not fetch data")
		return nil, StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	return b, nil
}
