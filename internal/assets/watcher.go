package assets

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/pkg/skin"
)

// Kind tells which texture a watched file provides.
type Kind int

const (
	KindSkin Kind = iota
	KindCape
)

func (k Kind) String() string {
	if k == KindCape {
		return "cape"
	}
	return "skin"
}

// Update is a reloaded texture. Err is set when the file changed but could
// not be loaded; Texture is nil then.
type Update struct {
	Kind    Kind
	Path    string
	Texture *skin.Texture
	Err     error
}

// Watcher reloads skin and cape files when they change on disk. It only
// decodes; applying the textures is left to the receiver of Updates.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   map[string]Kind
	updates chan Update
	log     *zap.Logger
}

// NewWatcher creates a watcher with no files.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{
		fs:      fw,
		files:   make(map[string]Kind),
		updates: make(chan Update, 4),
		log:     logger.Named("watcher"),
	}, nil
}

// Watch registers a file. The parent directory is watched so that editors
// replacing the file by rename are noticed. Call before Run.
func (w *Watcher) Watch(path string, kind Kind) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.fs.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	w.files[abs] = kind
	w.log.Debug("watching", zap.String("path", abs), zap.Stringer("kind", kind))
	return nil
}

// Updates delivers reloaded textures.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Run forwards file changes until ctx is done or the watcher is closed.
// Updates that find the channel full are dropped; the next write reloads
// the file again.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			kind, watched := w.files[filepath.Clean(event.Name)]
			if !watched {
				continue
			}
			u := w.load(event.Name, kind)
			select {
			case w.updates <- u:
			default:
				w.log.Warn("dropping reload, receiver is busy", zap.String("path", event.Name))
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) load(path string, kind Kind) Update {
	u := Update{Kind: kind, Path: path}
	if kind == KindCape {
		u.Texture, u.Err = texture.LoadCape(path)
	} else {
		u.Texture, u.Err = texture.LoadSkin(path)
	}
	if u.Err != nil {
		w.log.Warn("reload failed", zap.String("path", path), zap.Error(u.Err))
	} else {
		w.log.Info("reloaded", zap.String("path", path), zap.Stringer("kind", kind))
	}
	return u
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
