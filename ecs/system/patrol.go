package system

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// PatrolSystem bounces patrolling entities between their boundaries. The
// velocity rule is a tengo script compiled once; without a script the
// built-in Bounce rule is used.
type PatrolSystem struct {
	scriptName string
	compiled   *tengo.Compiled
	logger     *log.Logger
	failed     bool
}

// NewPatrolSystem compiles the named script from prefabs/scripts. An empty
// name selects the built-in rule.
func NewPatrolSystem(scriptName string) (*PatrolSystem, error) {
	ps := &PatrolSystem{scriptName: scriptName, logger: common.Logger("patrol")}
	if scriptName == "" {
		return ps, nil
	}
	src, err := prefabs.LoadScript(scriptName)
	if err != nil {
		return nil, err
	}
	compiled, err := CompilePatrolScript(src)
	if err != nil {
		return nil, fmt.Errorf("patrol: compile %s: %w", scriptName, err)
	}
	ps.compiled = compiled
	return ps, nil
}

// CompilePatrolScript declares the script inputs and compiles src. The script
// must assign the new horizontal velocity to `next`.
func CompilePatrolScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, name := range []string{"x", "half_width", "vx", "left", "right"} {
		if err := script.Add(name, 0.0); err != nil {
			return nil, err
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	// next only counts as defined once the script has run
	if err := compiled.Run(); err != nil {
		return nil, err
	}
	if !compiled.IsDefined("next") {
		return nil, fmt.Errorf("script does not define next")
	}
	return compiled, nil
}

// Bounce reverses vx once an edge has passed a boundary while still moving
// toward it. A zero boundary is open.
func Bounce(x, halfWidth, vx, left, right float64) float64 {
	if left != 0 && x-halfWidth < left && vx < 0 {
		return -vx
	}
	if right != 0 && x+halfWidth > right && vx > 0 {
		return -vx
	}
	return vx
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach3(w, component.PatrolComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, p *component.Patrol, t *component.Transform, v *component.Velocity) {
		vx := v.X
		if vx == 0 {
			vx = p.Speed
		}
		halfWidth := 0.0
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			halfWidth = pb.Width / 2
		}
		v.X = s.next(e, t.X, halfWidth, vx, p.BoundaryLeft, p.BoundaryRight)
		v.Y = 0
	})
}

func (s *PatrolSystem) next(e ecs.Entity, x, halfWidth, vx, left, right float64) float64 {
	if s.compiled == nil || s.failed {
		return Bounce(x, halfWidth, vx, left, right)
	}
	inputs := map[string]float64{"x": x, "half_width": halfWidth, "vx": vx, "left": left, "right": right}
	for name, val := range inputs {
		if err := s.compiled.Set(name, val); err != nil {
			s.fail(e, err)
			return Bounce(x, halfWidth, vx, left, right)
		}
	}
	if err := s.compiled.Run(); err != nil {
		s.fail(e, err)
		return Bounce(x, halfWidth, vx, left, right)
	}
	return s.compiled.Get("next").Float()
}

// fail logs the first script error and switches to the built-in rule.
func (s *PatrolSystem) fail(e ecs.Entity, err error) {
	s.failed = true
	s.logger.Error("script failed, using built-in bounce", "script", s.scriptName, "entity", e, "error", err)
}
