// Package mock provides a delayed stand-in for the line search client.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/cbsinteractive/linesearch/client"
)

// Delay is the default time a pushed result takes to resolve
const Delay = time.Second

// Queue resolves pushed results after a delay and tracks how many are
// still in flight.
type Queue struct {
	mu      sync.Mutex
	pending int
}

// Push blocks for delay and returns v, or returns ctx.Err() if the
// context ends first. A negative delay uses Delay.
func Push[T any](ctx context.Context, q *Queue, v T, delay time.Duration) (T, error) {
	if delay < 0 {
		delay = Delay
	}
	q.add(1)
	defer q.add(-1)

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Pending returns the number of pushes that have not resolved
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

func (q *Queue) add(n int) {
	q.mu.Lock()
	q.pending += n
	q.mu.Unlock()
}

// API answers pings and searches with canned data after Delay
type API struct {
	Queue
	Delay   time.Duration
	Results api.Table
}

var _ client.Fetcher = (*API)(nil)

// New returns an API serving rows with the default delay
func New(rows api.Table) *API {
	return &API{Delay: Delay, Results: rows}
}

func (m *API) Ping(ctx context.Context) (api.Ping, error) {
	return Push(ctx, &m.Queue, api.Ping{Message: "pong!"}, m.Delay)
}

// Search returns up to query.Amount of the canned rows, or
// api.DefaultAmount when Amount is not positive. The query text and range are
// ignored.
func (m *API) Search(ctx context.Context, query api.SearchQuery) (api.Search, error) {
	n := query.Amount
	if n <= 0 {
		n = api.DefaultAmount
	}
	if n > len(m.Results) {
		n = len(m.Results)
	}
	return Push(ctx, &m.Queue, api.Search{Hash: "mock", Results: m.Results[:n]}, m.Delay)
}
