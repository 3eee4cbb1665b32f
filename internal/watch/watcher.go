// Package watch monitors a source tree and triggers regeneration callbacks
// when source units change.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// SourceWatcher monitors a source directory for unit changes and invokes a
// debounced callback with the changed paths
type SourceWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	dir       string
	ext       string
	onChange  func([]string) error
	log       *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewSourceWatcher creates a watcher over dir for files with the given
// extension. onChange runs after changes settle.
func NewSourceWatcher(dir, ext string, log *zap.Logger, onChange func([]string) error) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	sw := &SourceWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(100 * time.Millisecond),
		dir:       dir,
		ext:       ext,
		onChange:  onChange,
		log:       log,
		stopChan:  make(chan struct{}),
	}

	sw.debouncer.SetCallback(func(files []string) {
		if err := sw.onChange(files); err != nil {
			sw.log.Warn("change handler failed", zap.Error(err))
		}
	})

	return sw, nil
}

// Start begins watching the source tree, including subdirectories
func (sw *SourceWatcher) Start() error {
	err := filepath.WalkDir(sw.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != sw.dir {
			return filepath.SkipDir
		}
		return sw.watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", sw.dir, err)
	}

	sw.wg.Add(1)
	go sw.watch()
	return nil
}

// Stop stops the watcher; safe to call more than once
func (sw *SourceWatcher) Stop() error {
	select {
	case <-sw.stopChan:
		return nil
	default:
		close(sw.stopChan)
	}

	sw.wg.Wait()
	sw.debouncer.Stop()
	return sw.watcher.Close()
}

// watch is the main event loop
func (sw *SourceWatcher) watch() {
	defer sw.wg.Done()

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !sw.relevant(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				sw.log.Debug("source unit changed", zap.String("path", event.Name))
				sw.debouncer.Add(event.Name)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.log.Warn("watch error", zap.Error(err))

		case <-sw.stopChan:
			return
		}
	}
}

// relevant reports whether a changed path is a source unit we care about
func (sw *SourceWatcher) relevant(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return filepath.Ext(path) == sw.ext
}

// Debouncer collects changed paths and fires a callback once changes settle
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopChan chan struct{}
}

// NewDebouncer creates a debouncer with the given settle duration
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
		stopChan: make(chan struct{}),
	}
}

// Add records a changed path and restarts the settle timer
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

// flush fires the callback with the accumulated paths
func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.files) == 0 {
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	d.files = make(map[string]struct{})

	if d.callback != nil {
		d.callback(files)
	}
}

// SetCallback sets the callback invoked after changes settle
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop stops the debouncer; safe to call more than once
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	select {
	case <-d.stopChan:
	default:
		close(d.stopChan)
	}
}
