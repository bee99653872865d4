package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcherValidation(t *testing.T) {
	_, err := NewWatcher(WatcherConfig{OnChange: func(*Config, error) {}})
	assert.ErrorContains(t, err, "config path is required")

	_, err = NewWatcher(WatcherConfig{Path: "/tmp/x.yaml"})
	assert.ErrorContains(t, err, "change callback is required")
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigwait.yaml")
	require.NoError(t, os.WriteFile(path, []byte("signals: [HUP]\n"), 0o644))

	var mu sync.Mutex
	var got *Config
	w, err := NewWatcher(WatcherConfig{
		Path:     path,
		Debounce: 20 * time.Millisecond,
		OnChange: func(cfg *Config, err error) {
			if err != nil {
				t.Errorf("reload: %v", err)
				return
			}
			mu.Lock()
			got = cfg
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("signals: [HUP, USR1]\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && len(got.Signals) == 2
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"HUP", "USR1"}, got.Signals)
	mu.Unlock()
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigwait.yaml")
	require.NoError(t, os.WriteFile(path, []byte("signals: [HUP]\n"), 0o644))

	called := make(chan struct{}, 1)
	w, err := NewWatcher(WatcherConfig{
		Path:     path,
		Debounce: 20 * time.Millisecond,
		OnChange: func(cfg *Config, err error) {
			select {
			case called <- struct{}{}:
			default:
			}
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	select {
	case <-called:
		t.Fatal("callback fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherDoubleStart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigwait.yaml")
	require.NoError(t, os.WriteFile(path, []byte("signals: [HUP]\n"), 0o644))

	w, err := NewWatcher(WatcherConfig{Path: path, OnChange: func(*Config, error) {}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	assert.ErrorContains(t, w.Start(ctx), "already running")
}
