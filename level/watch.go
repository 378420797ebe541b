package level

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// LevelExt is the file extension the level editor uses.
const LevelExt = ".adofai"

const reloadDebounce = 100 * time.Millisecond

// Reload is sent by a Watcher each time a level file changes. Level is a
// freshly loaded value; Err is set instead when the reload failed.
type Reload struct {
	Path  string
	Level *Level
	Err   error
}

// Watcher reloads level files when they change on disk. It never touches a
// Level it has already handed out.
type Watcher struct {
	watcher *fsnotify.Watcher
	cfg     Config
	Events  chan Reload
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewWatcher watches the given directories for level file changes.
func NewWatcher(cfg Config, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		cfg:     cfg.withDefaults(),
		Events:  make(chan Reload, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isLevelFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < reloadDebounce {
				continue
			}
			last[event.Name] = now
			w.reload(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload(path string) {
	lvl, err := Load(path, w.cfg)
	if err != nil {
		w.cfg.Logger.Warn("level reload failed", zap.String("path", path), zap.Error(err))
	}
	select {
	case w.Events <- Reload{Path: path, Level: lvl, Err: err}:
	case <-w.closeCh:
	}
}

func isLevelFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), LevelExt)
}
