// Package viewer wires the window, the GL backend, the scene controller
// and the editing panel into the frame loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/assets"
	"github.com/Faultbox/gman/internal/config"
	"github.com/Faultbox/gman/internal/engine/debug"
	"github.com/Faultbox/gman/internal/engine/framebuffer"
	"github.com/Faultbox/gman/internal/engine/input"
	"github.com/Faultbox/gman/internal/engine/renderer"
	"github.com/Faultbox/gman/internal/engine/scene"
	"github.com/Faultbox/gman/internal/engine/ui"
	"github.com/Faultbox/gman/internal/logger"
)

// PanelWidth is the width of the editing panel docked on the left.
const PanelWidth = 340

// SceneConfig maps viewer settings onto controller options.
func SceneConfig(cfg *config.Config, log *zap.Logger) scene.Config {
	return scene.Config{
		CameraPosition:    mgl32.Vec3(cfg.Camera.Position),
		CameraSpeed:       cfg.Camera.Speed,
		CameraSensitivity: cfg.Camera.Sensitivity,
		CameraFOV:         cfg.Camera.FOV,
		ModelScale:        cfg.Scene.ModelScale,
		ModelPath:         cfg.Scene.ModelPath,
		MaxPointLights:    cfg.Scene.MaxPointLights,
		ShowBounds:        cfg.Scene.ShowBounds,
		Logger:            log,
	}
}

// App is the viewer instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *ui.Backend
	renderer *renderer.Renderer
	fb       *framebuffer.Framebuffer

	loader *assets.Loader
	scene  *scene.Controller
	input  *input.Input
	router *input.Router
	events ui.EventSource
	panel  *ui.Panel
	shots  *debug.ScreenshotCapture

	viewport ui.ViewportState
	lastTime time.Time

	frameCount int
	fpsTimer   time.Time
}

// New creates the window and GL objects, then initializes the scene.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("viewer")
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)
	if !cfg.Window.VSync {
		log.Debug("vsync is managed by the window backend; use fps_limit to cap frames")
	}

	a := &App{
		cfg:   cfg,
		log:   log,
		input: input.New(),
		shots: debug.NewScreenshotCapture(cfg.Screenshots.Dir, "gman"),
	}

	var err error
	a.window, err = ui.NewBackend(ui.WindowConfig{
		Title:    cfg.Window.Title,
		Width:    int32(cfg.Window.Width),
		Height:   int32(cfg.Window.Height),
		FPSLimit: cfg.Window.FPSLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER the window, since the OpenGL context must exist
	a.renderer, err = renderer.New(logger.Named("renderer"))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.fb, err = framebuffer.New(int32(cfg.Window.Width-PanelWidth), int32(cfg.Window.Height))
	if err != nil {
		a.renderer.Close()
		return nil, err
	}

	a.loader = assets.NewLoader(logger.Named("assets"))
	a.scene = scene.New(SceneConfig(cfg, logger.Named("scene")), a.loader)
	if err := a.scene.Init(a.renderer); err != nil {
		a.fb.Destroy()
		a.renderer.Close()
		return nil, fmt.Errorf("failed to init scene: %w", err)
	}

	a.router = input.NewRouter(a.scene, logger.Named("input"))
	a.panel = ui.NewPanel(a.scene, logger.Named("panel"))

	a.window.SetDropCallback(func(paths []string) {
		a.input.Push(input.FilesDropped(paths))
	})

	if path := cfg.Scene.InitialModel; path != "" {
		if err := a.scene.LoadModel(path); err != nil {
			a.panel.SetStatus(err.Error(), true)
		}
	}

	log.Info("viewer initialized successfully")
	return a, nil
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() error {
	a.lastTime = time.Now()
	a.fpsTimer = a.lastTime
	a.log.Info("starting frame loop")
	a.window.Run(a.frame)
	return nil
}

// frame runs once per window frame inside the ImGui loop.
func (a *App) frame() {
	now := time.Now()
	dt := float32(now.Sub(a.lastTime).Seconds())
	a.lastTime = now

	// 1. Input: dialog results, ImGui state, queued drops
	a.panel.ApplyBrowsed()
	a.events.Poll(a.input, a.viewport)
	res := a.router.Dispatch(a.input.Events(), dt)
	a.input.Reset()

	if res.Failed > 0 {
		a.panel.SetStatus(fmt.Sprintf("%d dropped file(s) failed to load", res.Failed), true)
	}
	if res.Picked >= 0 {
		a.panel.SetStatus(fmt.Sprintf("Focused model %d", res.Picked), false)
	}
	if res.Quit {
		a.window.Close()
	}

	// 2. Update
	a.scene.Update(dt)

	// 3. Render the scene offscreen at last frame's viewport size
	if a.viewport.Width > 0 {
		a.fb.Resize(int32(a.viewport.Width), int32(a.viewport.Height))
	}
	restore := a.fb.Begin()
	if err := a.scene.Render(a.fb.AspectRatio()); err != nil {
		a.panel.SetStatus(err.Error(), true)
	}
	if res.Screenshot {
		a.captureScreenshot()
	}
	restore()

	// 4. UI
	x, y, w, h := ui.GetViewport()
	a.panel.Draw(x, y, PanelWidth, h)
	a.viewport = ui.DrawViewport(x+PanelWidth, y, w-PanelWidth, h, a.fb.ColorTexture())

	a.frameCount++
	if time.Since(a.fpsTimer) >= time.Second {
		a.log.Debug("fps", zap.Int("count", a.frameCount), zap.Float32("dtMs", dt*1000))
		a.frameCount = 0
		a.fpsTimer = time.Now()
	}
}

func (a *App) captureScreenshot() {
	w, h := a.fb.Size()
	path, err := a.shots.CaptureFromPixels(a.fb.ReadPixels(), int(w), int(h))
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		a.panel.SetStatus("Screenshot failed: "+err.Error(), true)
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
	a.panel.SetStatus("Saved "+path, false)
}

// Close releases the scene, which closes the renderer, then the framebuffer.
func (a *App) Close() {
	a.log.Info("closing viewer")
	if a.loader != nil {
		hits, misses := a.loader.CacheStats()
		a.log.Debug("texture cache", zap.Int("hits", hits), zap.Int("misses", misses))
	}
	if a.scene != nil {
		a.scene.Dispose()
	}
	if a.fb != nil {
		a.fb.Destroy()
	}
}
