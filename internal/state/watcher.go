package state

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/sidenotes/internal/pathutil"
)

// RootWatcher watches the notes root recursively and feeds relevant changes
// into a Coalescer.
type RootWatcher struct {
	watcher   *fsnotify.Watcher
	root      string
	ext       string
	coalescer *Coalescer
	log       *logrus.Entry
	done      chan struct{}
	once      sync.Once

	mu       sync.Mutex
	dirs     map[string]struct{}
	onChange func(string)
	onClose  func()
}

func NewRootWatcher(root, ext string, coalescer *Coalescer, logger *logrus.Entry) (*RootWatcher, error) {
	normalizedRoot := pathutil.NormalizePath(root)
	if root == "" || normalizedRoot == "" {
		return nil, errors.New("root directory cannot be empty")
	}

	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &RootWatcher{
		watcher:   w,
		root:      normalizedRoot,
		ext:       ext,
		coalescer: coalescer,
		log:       logger.WithField("component", "watcher"),
		done:      make(chan struct{}),
		dirs:      make(map[string]struct{}),
	}

	if err := watcher.addRecursive(normalizedRoot); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Run processes filesystem events until ctx is cancelled or the watcher is
// closed.
func (w *RootWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.log.WithError(err).Warn("watch error")
			}
		}
	}
}

func (w *RootWatcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.log.WithError(err).WithField("path", event.Name).Warn("failed to watch new directory")
			}
		}
	}

	if !w.isRelevant(event) {
		return
	}

	rel := w.relativePath(event.Name)
	if rel == "" {
		return
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.forget(pathutil.NormalizePath(event.Name))
	}

	w.log.WithFields(logrus.Fields{"path": rel, "op": event.Op.String()}).Debug("change detected")

	w.mu.Lock()
	onChange := w.onChange
	w.mu.Unlock()
	if onChange != nil {
		onChange(rel)
	}

	w.coalescer.Notify(filepath.Dir(pathutil.NormalizePath(event.Name)))
}

func (w *RootWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		w.coalescer.Stop()
		closeErr = w.watcher.Close()

		w.mu.Lock()
		onClose := w.onClose
		w.mu.Unlock()
		if onClose != nil {
			onClose()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives root relative paths whenever
// the watcher detects a relevant change.
func (w *RootWatcher) OnChange(fn func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *RootWatcher) OnClose(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClose = fn
}

func (w *RootWatcher) Stats() CoalescerStats {
	return w.coalescer.Stats()
}

func (w *RootWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				w.log.WithField("path", path).Warn("skipping unreadable directory")
				return filepath.SkipDir
			}
			if errors.Is(err, fs.ErrNotExist) && path != normalized {
				return nil
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if err := w.watcher.Add(path); err != nil {
			return err
		}

		w.mu.Lock()
		w.dirs[pathutil.NormalizePath(path)] = struct{}{}
		w.mu.Unlock()
		return nil
	})
}

func (w *RootWatcher) forget(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path := range w.dirs {
		if path == dir || pathutil.Within(dir, path) {
			delete(w.dirs, path)
		}
	}
}

func (w *RootWatcher) isDir(path string) bool {
	normalized := pathutil.NormalizePath(path)

	w.mu.Lock()
	_, known := w.dirs[normalized]
	w.mu.Unlock()
	if known {
		return true
	}

	info, err := os.Stat(normalized)
	return err == nil && info.IsDir()
}

func (w *RootWatcher) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if w.relativePath(event.Name) == "" {
		return false
	}

	return pathutil.HasExt(event.Name, w.ext) || w.isDir(event.Name)
}

func (w *RootWatcher) relativePath(path string) string {
	rel, err := pathutil.RootRelative(w.root, path)
	if err != nil || rel == "." || rel == "" {
		return ""
	}
	return rel
}
