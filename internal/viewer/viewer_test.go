package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gman/internal/config"
	"github.com/Faultbox/gman/internal/engine/scene"
)

func TestSceneConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Position = [3]float32{1, 2, 3}
	cfg.Scene.ModelPath = "models/box.obj"
	cfg.Scene.MaxPointLights = 8
	cfg.Scene.ShowBounds = true

	sc := SceneConfig(cfg, nil)

	if sc.CameraPosition != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("camera position = %v", sc.CameraPosition)
	}
	if sc.ModelPath != "models/box.obj" || sc.MaxPointLights != 8 || !sc.ShowBounds {
		t.Errorf("unexpected scene config %+v", sc)
	}

	c := scene.New(sc, nil)
	if c.ModelPath.String() != "models/box.obj" {
		t.Errorf("path buffer = %q", c.ModelPath.String())
	}
	if c.Lights.Capacity() != 8 {
		t.Errorf("capacity = %d", c.Lights.Capacity())
	}
}

func TestDefaultConfigMatchesSceneDefaults(t *testing.T) {
	got := SceneConfig(config.Default(), nil)
	want := scene.DefaultConfig()
	if got != want {
		t.Errorf("config defaults drifted from scene defaults:\n%+v\nvs\n%+v", got, want)
	}
}
