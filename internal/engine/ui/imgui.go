// Package ui provides the ImGui window, the scene editing panel and the
// viewport that feeds input events to the scene.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// WindowConfig holds window creation options.
type WindowConfig struct {
	Title    string
	Width    int32
	Height   int32
	FPSLimit int
}

// Backend wraps the ImGui SDL backend, which owns the window, the GL
// context and the event pump.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates the window. OpenGL functions are loaded by the
// renderer afterwards.
func NewBackend(cfg WindowConfig) (*Backend, error) {
	b := &Backend{
		width:  cfg.Width,
		height: cfg.Height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(cfg.Title, int(cfg.Width), int(cfg.Height))
	if cfg.FPSLimit > 0 {
		b.backend.SetTargetFPS(uint(cfg.FPSLimit))
	}

	return b, nil
}

// SetDropCallback registers fn for files dropped on the window. fn runs on
// the frame thread during event polling.
func (b *Backend) SetDropCallback(fn func(paths []string)) {
	b.backend.SetDropCallback(fn)
}

// Run starts the main render loop and returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// Close asks the loop to exit after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetWindowSize returns the initial window size.
func (b *Backend) GetWindowSize() (int32, int32) {
	return b.width, b.height
}

// GetViewport returns the main viewport work area.
func GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}
