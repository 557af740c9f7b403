// Package db stores script lines per production, in redis or in memory.
package db

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

const productionSetKey = "productions"

// Repository holds the search rows of each production
type Repository interface {
	PutLines(prod string, rows api.Table) error
	Lines(prod string) (api.Table, error)
	DeleteLines(prod string) error
	// Productions lists stored productions in sorted order
	Productions() ([]string, error)
}

var (
	_ Repository = (*redisRepository)(nil)
	_ Repository = (*Memory)(nil)
)

// NewRepository returns a redis backed repository
func NewRepository(c *Client) Repository {
	return &redisRepository{c: c}
}

type redisRepository struct {
	c *Client
}

func (r *redisRepository) PutLines(prod string, rows api.Table) error {
	if prod == "" {
		return errors.New("production id missing")
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	key := r.linesKey(prod)
	return r.c.rc.Watch(func(tx *redis.Tx) error {
		_, err := tx.TxPipelined(func(pipe redis.Pipeliner) error {
			pipe.Set(key, string(data), 0)
			pipe.SAdd(productionSetKey, prod)
			return nil
		})
		return err
	}, key)
}

func (r *redisRepository) Lines(prod string) (api.Table, error) {
	var rows api.Table
	if err := r.c.Get(r.linesKey(prod), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *redisRepository) DeleteLines(prod string) error {
	key := r.linesKey(prod)
	return r.c.rc.Watch(func(tx *redis.Tx) error {
		n, err := tx.Exists(key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.Wrap(ErrNotFound, key)
		}
		_, err = tx.TxPipelined(func(pipe redis.Pipeliner) error {
			pipe.Del(key)
			pipe.SRem(productionSetKey, prod)
			return nil
		})
		return err
	}, key)
}

func (r *redisRepository) Productions() ([]string, error) {
	prods, err := r.c.rc.SMembers(productionSetKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(prods)
	return prods, nil
}

func (r *redisRepository) linesKey(prod string) string {
	return "lines:" + prod
}

// Memory is a Repository kept in process memory
type Memory struct {
	mu   sync.RWMutex
	rows map[string]api.Table
}

func NewMemory() *Memory {
	return &Memory{rows: map[string]api.Table{}}
}

func (m *Memory) PutLines(prod string, rows api.Table) error {
	if prod == "" {
		return errors.New("production id missing")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[string]api.Table{}
	}
	m.rows[prod] = append(api.Table(nil), rows...)
	return nil
}

func (m *Memory) Lines(prod string) (api.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.rows[prod]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, prod)
	}
	return append(api.Table(nil), rows...), nil
}

func (m *Memory) DeleteLines(prod string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[prod]; !ok {
		return errors.Wrap(ErrNotFound, prod)
	}
	delete(m.rows, prod)
	return nil
}

func (m *Memory) Productions() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prods := make([]string, 0, len(m.rows))
	for p := range m.rows {
		prods = append(prods, p)
	}
	sort.Strings(prods)
	return prods, nil
}
