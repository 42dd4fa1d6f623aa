package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/gman/internal/assets"
	"github.com/Faultbox/gman/internal/engine/camera"
	"github.com/Faultbox/gman/internal/engine/lighting"
	"github.com/Faultbox/gman/internal/engine/scene"
)

// statusDuration is how long a panel status message stays visible.
const statusDuration = 4 * time.Second

var (
	colorOK    = imgui.NewVec4(0.4, 0.8, 0.4, 1)
	colorError = imgui.NewVec4(0.9, 0.4, 0.4, 1)
)

// Panel is the "Scene Editor" window. It edits the controller directly.
type Panel struct {
	scene *scene.Controller
	log   *zap.Logger

	// Browse results arrive from the dialog goroutine.
	browsed chan string

	pathText  string
	status    string
	statusErr bool
	statusAt  time.Time
}

// NewPanel creates a panel bound to c.
func NewPanel(c *scene.Controller, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{
		scene:    c,
		log:      log,
		browsed:  make(chan string, 1),
		pathText: c.ModelPath.String(),
	}
}

// SetStatus shows a transient message under the panel title.
func (p *Panel) SetStatus(msg string, isErr bool) {
	p.status = msg
	p.statusErr = isErr
	p.statusAt = time.Now()
}

// ApplyBrowsed moves a finished file dialog result into the path field.
// Must be called on the frame thread.
func (p *Panel) ApplyBrowsed() {
	select {
	case path := <-p.browsed:
		if p.scene.ModelPath.Set(path) {
			p.SetStatus("Path truncated to 127 bytes", true)
		}
		p.pathText = p.scene.ModelPath.String()
	default:
	}
}

// browse opens the native file dialog without blocking the frame loop.
func (p *Panel) browse() {
	go func() {
		filename, err := dialog.File().
			Filter("3D Models", "gltf", "glb", "obj").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				p.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case p.browsed <- filename:
		default:
			// A previous result has not been applied yet
		}
	}()
}

// Draw renders the panel at the given position and size.
func (p *Panel) Draw(x, y, width, height float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if !imgui.BeginV("Scene Editor", nil, flags) {
		imgui.End()
		return
	}
	defer imgui.End()

	if p.status != "" && time.Since(p.statusAt) < statusDuration {
		color := colorOK
		if p.statusErr {
			color = colorError
		}
		imgui.TextColored(color, p.status)
		imgui.Separator()
	}

	p.drawCamera()
	p.drawLights()
	p.drawMaterial()
	p.drawModels()
	p.drawStats()
}

func (p *Panel) drawCamera() {
	if !imgui.CollapsingHeaderV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	cam := p.scene.Camera

	dragVec3("Position##cam", &cam.Position, 0.05, 0, 0)
	imgui.SliderFloatV("Speed", &cam.Speed, 0.1, 20, "%.1f", imgui.SliderFlagsNone)
	if imgui.SliderFloatV("FOV", &cam.Zoom, camera.MinZoom, camera.MaxZoom, "%.0f deg", imgui.SliderFlagsNone) {
		cam.ClampZoom()
	}
	imgui.TextDisabled(fmt.Sprintf("Yaw %.1f  Pitch %.1f", cam.Yaw(), cam.Pitch()))
	imgui.TextDisabled("(Hold right mouse in the viewport: look, WASD/QE move, scroll zoom;\n double-click a model to focus it)")
}

func (p *Panel) drawLights() {
	if !imgui.CollapsingHeaderV("Lights", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	lights := p.scene.Lights

	if imgui.TreeNodeExStrV("Directional", imgui.TreeNodeFlagsNone) {
		dir := &lights.Dir
		dragVec3("Direction##dir", &dir.Direction, 0.01, -1, 1)
		colorEdit("Ambient##dir", &dir.Ambient)
		colorEdit("Diffuse##dir", &dir.Diffuse)
		colorEdit("Specular##dir", &dir.Specular)
		imgui.TreePop()
	}

	full := lights.PointCount() >= lights.Capacity()
	if full {
		imgui.BeginDisabledV(true)
	}
	if imgui.Button("Add Point Light") {
		if idx, err := p.scene.AddPointLightInFront(); err != nil {
			p.SetStatus(err.Error(), true)
		} else {
			p.SetStatus(fmt.Sprintf("Point light %d added", idx), false)
		}
	}
	if full {
		imgui.EndDisabled()
	}
	imgui.SameLine()
	if imgui.Button("Add Area Light") {
		p.scene.AddAreaLightInFront()
	}
	imgui.TextDisabled(fmt.Sprintf("%d / %d point lights", lights.PointCount(), lights.Capacity()))

	for i := 0; i < lights.PointCount(); i++ {
		if imgui.TreeNodeExStrV(fmt.Sprintf("Point Light %d", i), imgui.TreeNodeFlagsNone) {
			drawPointLight(i, lights.Point(i))
			imgui.TreePop()
		}
	}
	for i := range lights.Areas() {
		if imgui.TreeNodeExStrV(fmt.Sprintf("Area Light %d", i), imgui.TreeNodeFlagsNone) {
			a := lights.Area(i)
			dragVec3(fmt.Sprintf("Position##area%d", i), &a.Position, 0.05, 0, 0)
			colorEdit(fmt.Sprintf("Color##area%d", i), &a.Color)
			imgui.SliderFloatV(fmt.Sprintf("Intensity##area%d", i), &a.Intensity, 0, 10, "%.2f", imgui.SliderFlagsNone)
			imgui.TextDisabled("Not shaded")
			imgui.TreePop()
		}
	}
}

func drawPointLight(i int, l *lighting.PointLight) {
	id := fmt.Sprintf("##point%d", i)
	dragVec3("Position"+id, &l.Position, 0.05, 0, 0)
	colorEdit("Ambient"+id, &l.Ambient)
	colorEdit("Diffuse"+id, &l.Diffuse)
	colorEdit("Specular"+id, &l.Specular)
	imgui.DragFloatV("Constant"+id, &l.Constant, 0.01, lighting.MinConstant, 10, "%.3f", 0)
	imgui.DragFloatV("Linear"+id, &l.Linear, 0.001, 0, 1, "%.4f", 0)
	imgui.DragFloatV("Quadratic"+id, &l.Quadratic, 0.0001, 0, 1, "%.5f", 0)
	// Typed input bypasses drag limits
	l.Attenuation = l.Clamped()
}

func (p *Panel) drawMaterial() {
	if !imgui.CollapsingHeaderV("Material", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	m := &p.scene.Material
	colorEdit("Color##material", &m.Color)
	if imgui.SliderFloatV("Shininess", &m.Shininess, scene.MinShininess, scene.MaxShininess, "%.0f", imgui.SliderFlagsNone) {
		p.scene.ClampMaterial()
	}
}

func (p *Panel) drawModels() {
	if !imgui.CollapsingHeaderV("Models", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}

	imgui.SetNextItemWidth(-1)
	if imgui.InputTextWithHint("##modelPath", "path/to/model.gltf", &p.pathText, 0, nil) {
		if p.scene.ModelPath.Set(p.pathText) {
			p.pathText = p.scene.ModelPath.String()
		}
	}
	if imgui.Button("Browse...") {
		p.browse()
	}
	imgui.SameLine()
	if imgui.Button("Load") {
		p.load()
	}
	imgui.SameLine()
	if imgui.Button("Clear All") {
		p.scene.ClearModels()
		p.SetStatus("Models cleared", false)
	}
	imgui.TextDisabled(fmt.Sprintf("Formats: %v (or drop files on the window)", assets.SupportedExtensions))

	imgui.Checkbox("Show Bounds", &p.scene.ShowBounds)

	models := p.scene.Models.All()
	for i, m := range models {
		imgui.PushIDInt(int32(i))
		imgui.Text(fmt.Sprintf("%d: %s", i, filepath.Base(m.Path)))
		if imgui.IsItemHovered() {
			size := m.Bounds.Size()
			imgui.SetTooltip(fmt.Sprintf("%s\nSize %.2f x %.2f x %.2f", m.Path, size[0], size[1], size[2]))
		}
		imgui.SameLine()
		if imgui.ButtonV("Focus", imgui.NewVec2(0, 0)) {
			if err := p.scene.FocusModel(i); err != nil {
				p.SetStatus(err.Error(), true)
			}
		}
		imgui.PopID()
	}

	if imgui.TreeNodeExStrV("Transform", imgui.TreeNodeFlagsDefaultOpen) {
		t := &p.scene.Transform
		dragVec3("Position##model", &t.Position, 0.01, 0, 0)
		dragVec3("Rotation##model", &t.Rotation, 1, -360, 360)
		dragVec3("Scale##model", &t.Scale, 0.001, 0.0001, 1000)
		if imgui.Button("Fix Z-Up") {
			p.scene.FixZUp()
		}
		imgui.SameLine()
		if imgui.Button("Reset Rotation") {
			p.scene.ResetRotation()
		}
		imgui.TreePop()
	}
}

// load runs the panel Load button: the path loads without reframing.
func (p *Panel) load() {
	path := p.scene.ModelPath.String()
	if err := p.scene.LoadFromPanel(); err != nil {
		p.SetStatus(err.Error(), true)
		return
	}
	p.SetStatus("Loaded "+filepath.Base(path), false)
}

func (p *Panel) drawStats() {
	imgui.Separator()
	s := p.scene.Stats()
	imgui.Text(fmt.Sprintf("Models: %d  Triangles: %d", s.Models, s.Triangles))
	imgui.Text(fmt.Sprintf("FPS: %.0f", imgui.CurrentIO().Framerate()))
}

// dragVec3 edits v component-wise. Zero min and max mean unbounded.
func dragVec3(label string, v *mgl32.Vec3, speed, lo, hi float32) {
	text, _, _ := strings.Cut(label, "##")
	imgui.Text(text)
	for i, axis := range []string{"X", "Y", "Z"} {
		if i > 0 {
			imgui.SameLine()
		}
		imgui.SetNextItemWidth(80)
		imgui.DragFloatV(fmt.Sprintf("##%s%s", label, axis), &v[i], speed, lo, hi, axis+": %.2f", 0)
	}
}

func colorEdit(label string, c *mgl32.Vec3) {
	imgui.ColorEdit3V(label, (*[3]float32)(c), 0)
}
