// Package app implements the interactive viewer loop.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/assets"
	"github.com/Faultbox/skinview/internal/config"
	"github.com/Faultbox/skinview/internal/engine/debug"
	"github.com/Faultbox/skinview/internal/engine/framebuffer"
	"github.com/Faultbox/skinview/internal/engine/input"
	"github.com/Faultbox/skinview/internal/engine/renderer"
	"github.com/Faultbox/skinview/internal/engine/scene"
	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/engine/window"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/internal/view"
	"github.com/Faultbox/skinview/pkg/skin"
)

// layerKeys maps the number row to garment layers.
var layerKeys = map[sdl.Scancode]skin.Part{
	sdl.SCANCODE_1: skin.Hat,
	sdl.SCANCODE_2: skin.Jacket,
	sdl.SCANCODE_3: skin.RightSleeve,
	sdl.SCANCODE_4: skin.LeftSleeve,
	sdl.SCANCODE_5: skin.RightPants,
	sdl.SCANCODE_6: skin.LeftPants,
	sdl.SCANCODE_C: skin.Cape,
}

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	view     *view.View
	assets   *assets.Manager

	watcher *assets.Watcher
	cancel  context.CancelFunc

	shots   *debug.ScreenshotCapture
	capture *framebuffer.Framebuffer
	shoot   bool

	// paths picked in the file dialog, applied on the main thread
	opened chan string
	dark   bool

	log *zap.Logger
}

// New opens the window, loads the configured textures and builds the view.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		assets: assets.NewManager(),
		opened: make(chan string, 1),
		log:    logger.Named("app"),
	}

	if cfg.Skin.Catalog != "" {
		if err := a.assets.AddCatalog(cfg.Skin.Catalog); err != nil {
			return nil, err
		}
	}
	tex, err := a.initialSkin()
	if err != nil {
		return nil, err
	}

	a.view, err = view.New(tex, cfg.ViewOptions())
	if err != nil {
		return nil, fmt.Errorf("creating view: %w", err)
	}
	if cfg.Skin.CapePath != "" {
		cape, err := texture.LoadCape(cfg.Skin.CapePath)
		if err != nil {
			return nil, err
		}
		if err := a.view.SetCape(cape); err != nil {
			return nil, err
		}
	}
	if bg := a.view.Background(); bg != nil {
		a.dark = *bg == view.DarkBackground
	}

	format, err := debug.ParseFormat(cfg.Render.Format)
	if err != nil {
		return nil, err
	}
	a.shots = debug.NewScreenshotCapture(cfg.Render.OutputDir, "skinview", format)

	a.window, err = window.New(window.Config{
		Title:      a.title(cfg.Skin.Path),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context created with the window
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: w, Height: h, LineWidth: 1})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	if cfg.Skin.Watch {
		if err := a.startWatcher(); err != nil {
			a.log.Warn("file watching disabled", zap.Error(err))
		}
	}

	a.log.Info("viewer ready",
		zap.Bool("slim", a.view.Slim()),
		zap.Bool("cape", a.view.Cape() != nil),
		zap.Float32("pixel_scale", a.window.PixelScale()),
		zap.Stringer("projection", a.view.Camera().Projection))
	return a, nil
}

// initialSkin picks the startup skin: an explicit file, a named catalog
// skin or the template.
func (a *App) initialSkin() (*skin.Texture, error) {
	slim := a.cfg.View.Slim
	switch {
	case a.cfg.Skin.Path != "":
		return texture.LoadSkin(a.cfg.Skin.Path)
	case a.cfg.Skin.Template != "":
		return a.assets.Default(a.cfg.Skin.Template, slim)
	default:
		return a.assets.Template(slim)
	}
}

func (a *App) startWatcher() error {
	w, err := assets.NewWatcher()
	if err != nil {
		return err
	}
	if p := a.cfg.Skin.Path; p != "" {
		if err := w.Watch(p, assets.KindSkin); err != nil {
			w.Close()
			return err
		}
	}
	if p := a.cfg.Skin.CapePath; p != "" {
		if err := w.Watch(p, assets.KindCape); err != nil {
			w.Close()
			return err
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	a.watcher, a.cancel = w, cancel
	return nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		a.drainReloads()
		a.drainOpened()

		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handle(event)
		}
		if !a.running {
			break
		}

		w, h := a.renderer.Size()
		frame := a.view.Frame(w, h)
		a.renderer.Draw(frame)
		if a.shoot {
			a.shoot = false
			a.screenshot(frame)
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		a.renderer.Resize(a.window.DrawableSize())
	case input.EventPointer:
		a.view.HandlePointer(event.Pointer)
	case input.EventDrop:
		a.openSkin(event.Path)
	case input.EventKeyDown:
		a.handleKey(event.Key)
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	if part, ok := layerKeys[key]; ok {
		on := a.view.Toggle(part)
		a.log.Debug("layer toggled", zap.Stringer("part", part), zap.Bool("visible", on))
		return
	}

	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_E:
		a.view.SetExploded(!a.view.Exploded())
	case sdl.SCANCODE_G:
		a.view.SetGrid(!a.view.Grid())
	case sdl.SCANCODE_O:
		a.view.SetOrthographic(!a.view.Orthographic())
	case sdl.SCANCODE_S:
		a.view.SetSlim(!a.view.Slim())
	case sdl.SCANCODE_T:
		a.dark = !a.dark
		bg := view.LightBackground
		if a.dark {
			bg = view.DarkBackground
		}
		a.view.SetBackground(&bg)
	case sdl.SCANCODE_R:
		a.view.ResetCamera()
	case sdl.SCANCODE_L:
		a.openFileDialog()
	case sdl.SCANCODE_F12:
		a.shoot = true
	}
}

// openFileDialog shows a native file dialog without blocking the loop.
// The chosen path is applied on the main thread by drainOpened.
func (a *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Skin images", "png", "tga", "bmp", "gif", "jpg", "jpeg", "webp").
			Filter("All Files", "*").
			Title("Open skin").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				a.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case a.opened <- filename:
		default:
		}
	}()
}

func (a *App) drainOpened() {
	select {
	case path := <-a.opened:
		a.openSkin(path)
	default:
	}
}

func (a *App) openSkin(path string) {
	tex, err := texture.LoadSkin(path)
	if err == nil {
		err = a.view.SetSkin(tex)
	}
	if err != nil {
		a.log.Warn("cannot open skin", zap.String("path", path), zap.Error(err))
		return
	}
	a.window.SetTitle(a.title(path))
	a.log.Info("skin opened", zap.String("path", path))
}

func (a *App) drainReloads() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case u := <-a.watcher.Updates():
			if u.Err != nil {
				continue
			}
			var err error
			if u.Kind == assets.KindCape {
				err = a.view.SetCape(u.Texture)
			} else {
				err = a.view.SetSkin(u.Texture)
			}
			if err != nil {
				a.log.Warn("reload rejected", zap.String("path", u.Path), zap.Error(err))
			}
		default:
			return
		}
	}
}

// screenshot replays frame into an offscreen target of the same size and
// writes it out.
func (a *App) screenshot(frame *scene.Frame) {
	var err error
	if a.capture == nil {
		a.capture, err = framebuffer.New(frame.Width, frame.Height)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
			return
		}
	} else if w, h := a.capture.Size(); w != frame.Width || h != frame.Height {
		a.capture.Resize(frame.Width, frame.Height)
	}

	restore := a.capture.Bind()
	a.renderer.Draw(frame)
	img := a.capture.Capture()
	restore()

	name, err := a.shots.Capture(img)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", name))
}

func (a *App) title(path string) string {
	if path == "" {
		return a.cfg.Window.Title
	}
	return fmt.Sprintf("%s - %s", a.cfg.Window.Title, filepath.Base(path))
}

// Close releases the window and GPU resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.cancel != nil {
		a.cancel()
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.capture != nil {
		a.capture.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	a.assets.Close()
}
