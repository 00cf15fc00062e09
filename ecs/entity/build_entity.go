package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// builder collects component additions for one entity and keeps the first
// error, so constructors read as a flat list of parts.
type builder struct {
	w    *ecs.World
	e    ecs.Entity
	name string
	err  error
}

func newBuilder(w *ecs.World, name string) *builder {
	return &builder{w: w, e: ecs.CreateEntity(w), name: name}
}

func add[T any](b *builder, part string, kind component.ComponentKind[T], value *T) {
	if b.err != nil {
		return
	}
	if err := ecs.Add(b.w, b.e, kind, value); err != nil {
		b.err = fmt.Errorf("%s: add %s: %w", b.name, part, err)
	}
}

// done returns the entity, destroying it if any addition failed.
func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		ecs.DestroyEntity(b.w, b.e)
		return 0, b.err
	}
	return b.e, nil
}
