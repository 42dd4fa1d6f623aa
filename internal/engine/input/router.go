package input

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/engine/scene"
)

// Result summarizes what a frame's events asked of the application.
type Result struct {
	Quit       bool
	Screenshot bool
	Loaded     int
	Failed     int

	// Picked is the model focused by a pick, or -1.
	Picked int
}

// Router applies events to one scene controller.
type Router struct {
	scene *scene.Controller
	log   *zap.Logger
}

// NewRouter binds a router to c.
func NewRouter(c *scene.Controller, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{scene: c, log: log}
}

// Dispatch applies events in order. Look, scroll and move events are
// ignored unless camera mouse mode is active; dropped files are always
// loaded, one LoadModel call per path in drop order. A failed load is
// logged and does not stop the remaining paths. A pick that hits a model
// frames it.
func (r *Router) Dispatch(events []Event, deltaTime float32) Result {
	res := Result{Picked: -1}
	c := r.scene

	for _, e := range events {
		switch e.Type {
		case EventQuit:
			res.Quit = true

		case EventScreenshot:
			res.Screenshot = true

		case EventCameraMouse:
			if c.CameraMouseActive != e.Active {
				r.log.Debug("camera mouse", zap.Bool("active", e.Active))
			}
			c.CameraMouseActive = e.Active

		case EventLook:
			if c.CameraMouseActive {
				c.Camera.ProcessLook(e.DX, e.DY)
			}

		case EventScroll:
			if c.CameraMouseActive {
				c.Camera.ProcessZoom(e.DY)
			}

		case EventMove:
			if c.CameraMouseActive {
				c.Camera.ProcessMove(e.Direction, deltaTime)
			}

		case EventPick:
			idx := c.PickModel(e.DX, e.DY, e.Aspect)
			if idx >= 0 && c.FocusModel(idx) == nil {
				res.Picked = idx
			}

		case EventFilesDropped:
			for _, path := range e.Paths {
				if err := c.LoadModel(path); err != nil {
					res.Failed++
					continue
				}
				res.Loaded++
			}
			r.log.Info("files dropped",
				zap.Int("count", len(e.Paths)),
				zap.Int("loaded", res.Loaded),
				zap.Int("failed", res.Failed))
		}
	}
	return res
}
