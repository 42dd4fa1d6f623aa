package ui

import "github.com/AllenDang/cimgui-go/imgui"

// ViewportState is what the viewport window reports back each frame.
type ViewportState struct {
	// Width and Height are the content area in pixels, the size the scene
	// framebuffer should have next frame.
	Width, Height float32
	Hovered       bool

	// Min is the screen position of the image's top-left corner.
	Min imgui.Vec2
}

// Aspect returns the content aspect ratio.
func (v ViewportState) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// DrawViewport shows the scene texture filling a fixed window.
func DrawViewport(x, y, width, height float32, textureID uint32) ViewportState {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse

	var st ViewportState
	if imgui.BeginV("Viewport", nil, flags) {
		avail := imgui.ContentRegionAvail()
		st.Width, st.Height = max(avail.X, 1), max(avail.Y, 1)

		if textureID != 0 {
			texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
			imgui.ImageWithBgV(
				*texRef,
				imgui.NewVec2(st.Width, st.Height),
				imgui.NewVec2(0, 1), // UV flipped
				imgui.NewVec2(1, 0),
				imgui.NewVec4(0, 0, 0, 1),
				imgui.NewVec4(1, 1, 1, 1),
			)
			st.Hovered = imgui.IsItemHovered()
			st.Min = imgui.ItemRectMin()
		}
	}
	imgui.End()
	return st
}
