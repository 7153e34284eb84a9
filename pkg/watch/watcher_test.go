package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherFiresAfterWriteBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extracted-blueprint.jsonl")

	w, err := New(path, 50*time.Millisecond)
	require.NoError(t, err)

	fired := make(chan struct{}, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	// A burst of writes should collapse into one callback.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"label":"a"}`+"\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-ctx.Done():
		t.Fatal("watcher never fired after cache write")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extracted-blueprint.jsonl")

	w, err := New(path, 30*time.Millisecond)
	require.NoError(t, err)

	fired := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Run(ctx, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644))

	select {
	case <-fired:
		t.Fatal("watcher fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
