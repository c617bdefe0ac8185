package cache

import (
	"context"
	"errors"
	"testing"
)

func TestDisabledCache(t *testing.T) {
	c := New("")

	if c.Enabled() {
		t.Error("cache with no address should be disabled")
	}

	var out []string
	if err := c.Get(context.Background(), "k", &out); !errors.Is(err, ErrMiss) {
		t.Errorf("Get on disabled cache = %v, want ErrMiss", err)
	}

	// Set and Invalidate must be safe no-ops.
	c.Set(context.Background(), "k", []string{"a"})
	c.Invalidate(context.Background(), "catalog:*")
	if err := c.Close(); err != nil {
		t.Errorf("Close on disabled cache = %v", err)
	}
}
