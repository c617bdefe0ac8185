package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/mediatheque/internal/metadata"
	"github.com/vmunix/mediatheque/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(db))
	return db
}

// freeAddr grabs an unused localhost port.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRunner_StartsAndStops(t *testing.T) {
	db := setupTestDB(t)
	addr := freeAddr(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	runner := NewRunner(mux, metadata.NewCache(db), Config{
		Addr:          addr,
		PruneInterval: 100 * time.Millisecond,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	// Wait for the listener to come up, then hit it.
	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get(fmt.Sprintf("http://%s/ping", addr))
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Cancel and wait for clean shutdown
	cancel()

	select {
	case err := <-done:
		// context.Canceled is expected
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for runner to stop")
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	// Should not panic with nil logger or nil cache.
	runner := NewRunner(http.NewServeMux(), nil, Config{Addr: ":0"}, nil)
	require.NotNil(t, runner)
	require.NotNil(t, runner.logger)
	require.Equal(t, time.Hour, runner.config.PruneInterval)
}

func TestRunner_PrunesExpiredEntries(t *testing.T) {
	db := setupTestDB(t)
	cache := metadata.NewCache(db)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "stale", []byte("{}"), -time.Minute))
	require.NoError(t, cache.Set(ctx, "fresh", []byte("{}"), time.Hour))

	runner := NewRunner(http.NewServeMux(), cache, Config{
		Addr:          freeAddr(t),
		PruneInterval: 20 * time.Millisecond,
	}, nil)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- runner.Run(runCtx) }()

	// Expired rows are physically removed, not just hidden.
	require.Eventually(t, func() bool {
		var n int
		err := db.QueryRow("SELECT COUNT(*) FROM metadata_cache WHERE key = 'stale'").Scan(&n)
		return err == nil && n == 0
	}, 2*time.Second, 20*time.Millisecond)

	_, ok := cache.Get(ctx, "fresh")
	require.True(t, ok)

	cancel()
	<-done
}
