package db

import (
	"errors"
	"os"
	"testing"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/gofrs/uuid"
	"github.com/google/go-cmp/cmp"
)

// redisRepo connects to REDIS_ADDR (default localhost) on db 15 and
// skips the test when no server answers.
func redisRepo(t *testing.T) Repository {
	t.Helper()
	c, err := NewClient(&Options{Addr: os.Getenv("REDIS_ADDR"), DB: 15})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Ping(); err != nil {
		c.Close()
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return NewRepository(c)
}

func TestRedisRepository(t *testing.T) {
	repo := redisRepo(t)
	prod := "test-" + uuid.Must(uuid.NewV4()).String()
	rows := api.Table{
		{{Value: prod, Kind: api.Prod}, {Value: "hello", Kind: api.Line}},
	}

	if err := repo.PutLines("", rows); err == nil {
		t.Fatal("expected an error for an empty production id")
	}
	if err := repo.PutLines(prod, rows); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repo.DeleteLines(prod) })

	have, err := repo.Lines(prod)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rows, have); diff != "" {
		t.Fatalf("(-want +have):\n%s", diff)
	}
	prods, err := repo.Productions()
	if err != nil {
		t.Fatal(err)
	}
	if !contains(prods, prod) {
		t.Fatalf("productions %v missing %s", prods, prod)
	}

	if err := repo.DeleteLines(prod); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Lines(prod); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if prods, err = repo.Productions(); err != nil || contains(prods, prod) {
		t.Fatalf("productions = %v, %v after delete", prods, err)
	}
	if err := repo.DeleteLines(prod); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete error = %v, want ErrNotFound", err)
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
