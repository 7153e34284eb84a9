package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce batches the extractor's write bursts into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher waits for the extraction cache file to change and fires a
// callback once per quiet period. The parent directory is watched rather
// than the file itself, so the first extraction run (which creates the
// file) is also observed.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher
}

// New creates a watcher for the given cache file.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{path: path, debounce: debounce, fw: fw}, nil
}

// Run blocks, invoking onChange after each debounced burst of writes to
// the cache file, until the context is canceled.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logrus.WithField("event", event.Op.String()).Debug("cache file changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			logrus.Warnf("watch error: %v", err)
		}
	}
}
