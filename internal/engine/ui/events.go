package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/gman/internal/engine/camera"
	"github.com/Faultbox/gman/internal/engine/input"
	"github.com/Faultbox/gman/internal/engine/picking"
)

// moveKeys maps held keys to camera movement.
var moveKeys = []struct {
	key       imgui.Key
	direction camera.Direction
}{
	{imgui.KeyW, camera.Forward},
	{imgui.KeyS, camera.Backward},
	{imgui.KeyA, camera.Left},
	{imgui.KeyD, camera.Right},
	{imgui.KeyE, camera.Up},
	{imgui.KeyQ, camera.Down},
}

// lookDelta converts two mouse positions into a look offset. Screen Y
// grows downward, so the Y offset is inverted.
func lookDelta(last, cur imgui.Vec2) (dx, dy float32) {
	return cur.X - last.X, last.Y - cur.Y
}

// EventSource polls ImGui input once per frame and queues viewer events.
type EventSource struct {
	lastMouse   imgui.Vec2
	cameraMouse bool
}

// Poll queues this frame's events. Hovering the viewport gates entering
// camera mouse mode; once entered it lasts while the right button is held,
// even if the cursor leaves the viewport. Double-clicking a model picks it.
func (s *EventSource) Poll(in *input.Input, vp ViewportState) {
	viewportHovered := vp.Hovered
	if IsKeyPressed(imgui.KeyEscape) {
		in.Push(input.Event{Type: input.EventQuit})
	}
	if IsKeyPressed(imgui.KeyF12) {
		in.Push(input.Event{Type: input.EventScreenshot})
	}

	mouse := imgui.MousePos()
	held := imgui.IsMouseDown(imgui.MouseButtonRight)

	switch {
	case !s.cameraMouse && held && viewportHovered:
		s.cameraMouse = true
		s.lastMouse = mouse
		in.Push(input.CameraMouse(true))
	case s.cameraMouse && !held:
		s.cameraMouse = false
		in.Push(input.CameraMouse(false))
	}

	if s.cameraMouse {
		if dx, dy := lookDelta(s.lastMouse, mouse); dx != 0 || dy != 0 {
			in.Push(input.Look(dx, dy))
		}
		s.lastMouse = mouse

		for _, mk := range moveKeys {
			if IsKeyDown(mk.key) {
				in.Push(input.Move(mk.direction))
			}
		}
	}

	if viewportHovered && !s.cameraMouse && imgui.IsMouseDoubleClicked(imgui.MouseButtonLeft) {
		x, y := picking.NDC(mouse.X-vp.Min.X, mouse.Y-vp.Min.Y, vp.Width, vp.Height)
		in.Push(input.Pick(x, y, vp.Aspect()))
	}

	if viewportHovered {
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			in.Push(input.Scroll(wheel))
		}
	}
}
