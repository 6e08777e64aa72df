package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 16
)

// JournalWatcher signals when the journal file is written by any process.
// The parent directory is watched so that atomic renames (Clear) are seen.
type JournalWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     zerolog.Logger

	mu          sync.Mutex
	subscribers []chan struct{}
	timer       *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJournalWatcher starts watching path. The directory is created if it doesn't exist.
func NewJournalWatcher(path string, log zerolog.Logger) (*JournalWatcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	jw := &JournalWatcher{
		path:    filepath.Clean(path),
		watcher: watcher,
		log:     log.With().Str("component", "journal-watcher").Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}

	jw.wg.Add(1)
	go jw.run()

	return jw, nil
}

// Watch returns a channel that receives a value after each burst of writes.
// The channel is closed when ctx is done or the watcher is closed.
func (jw *JournalWatcher) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, eventBufferSize)

	jw.mu.Lock()
	jw.subscribers = append(jw.subscribers, ch)
	jw.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			jw.unsubscribe(ch)
		case <-jw.ctx.Done():
			// Watcher is closing, channel will be closed by Close()
		}
	}()

	return ch
}

// Close stops watching and closes all subscriber channels.
func (jw *JournalWatcher) Close() error {
	jw.cancel()

	jw.mu.Lock()
	if jw.timer != nil {
		jw.timer.Stop()
	}
	for _, ch := range jw.subscribers {
		close(ch)
	}
	jw.subscribers = nil
	jw.mu.Unlock()

	err := jw.watcher.Close()
	jw.wg.Wait()
	return err
}

func (jw *JournalWatcher) unsubscribe(ch chan struct{}) {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	for i, sub := range jw.subscribers {
		if sub == ch {
			jw.subscribers = append(jw.subscribers[:i], jw.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

func (jw *JournalWatcher) run() {
	defer jw.wg.Done()

	for {
		select {
		case <-jw.ctx.Done():
			return
		case event, ok := <-jw.watcher.Events:
			if !ok {
				return
			}
			jw.handleEvent(event)
		case err, ok := <-jw.watcher.Errors:
			if !ok {
				return
			}
			jw.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (jw *JournalWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if filepath.Clean(event.Name) != jw.path {
		return
	}

	jw.mu.Lock()
	defer jw.mu.Unlock()

	if jw.timer != nil {
		jw.timer.Stop()
	}
	jw.timer = time.AfterFunc(debounceDelay, jw.notify)
}

func (jw *JournalWatcher) notify() {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if jw.ctx.Err() != nil {
		return
	}

	for _, ch := range jw.subscribers {
		select {
		case ch <- struct{}{}:
		default:
			// Subscriber already has a pending signal.
		}
	}
}
