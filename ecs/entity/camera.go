package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

func NewCameraFromSpec(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}
	zoom := spec.Zoom
	if zoom == 0 {
		zoom = 1
	}
	b := newBuilder(w, "camera")
	add(b, "camera tag", component.CameraTagComponent.Kind(), &component.CameraTag{})
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})
	add(b, "camera", component.CameraComponent.Kind(), &component.Camera{
		ViewportW: spec.ViewportW,
		ViewportH: spec.ViewportH,
		Zoom:      zoom,
	})
	return b.done()
}
