package gameplay

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// Phase is the outcome of one tick.
type Phase int

const (
	PhasePlaying Phase = iota
	// PhaseResetting means the player died; the level is rebuilt on the
	// next tick.
	PhaseResetting
	// PhaseLevelComplete means the next level is built on the next tick.
	PhaseLevelComplete
	// PhaseGameComplete is final; Totals holds the result.
	PhaseGameComplete
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseResetting:
		return "resetting"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameComplete:
		return "game_complete"
	default:
		return "unknown"
	}
}

// Config selects the level to start on and the tuning specs. Nil specs are
// loaded from prefabs.
type Config struct {
	StartLevel int
	FinalLevel int
	Player     *prefabs.PlayerSpec
	Camera     *prefabs.CameraSpec
	World      *prefabs.WorldSpec
	// LoadLevel defaults to levels.Load.
	LoadLevel func(index int) (*levels.Level, error)
}

func (c *Config) fill() error {
	if c.StartLevel == 0 {
		c.StartLevel = common.FirstLevel
	}
	if c.FinalLevel == 0 {
		c.FinalLevel = common.FinalLevel
	}
	if c.StartLevel < common.FirstLevel || c.StartLevel > c.FinalLevel {
		return fmt.Errorf("gameplay: start level %d outside %d..%d", c.StartLevel, common.FirstLevel, c.FinalLevel)
	}
	var err error
	if c.Player == nil {
		if c.Player, err = prefabs.LoadPlayerSpec(); err != nil {
			return err
		}
	}
	if c.Camera == nil {
		if c.Camera, err = prefabs.LoadCameraSpec(); err != nil {
			return err
		}
	}
	if c.World == nil {
		if c.World, err = prefabs.LoadWorldSpec(); err != nil {
			return err
		}
	}
	if c.LoadLevel == nil {
		c.LoadLevel = levels.Load
	}
	return nil
}

// Loop runs one level at a time. Each tick executes, in order: physics,
// animation, coins, camera, hazards, teleporters, win check, timer. A death
// or a win ends the tick early.
type Loop struct {
	cfg    Config
	logger *log.Logger

	world  *ecs.World
	level  *levels.Level
	player ecs.Entity

	physics   *system.PhysicsSystem
	input     *system.InputSystem
	animation *system.AnimationSystem
	patrol    *system.PatrolSystem
	pickup    *system.PickupCollectSystem
	camera    *system.CameraSystem
	hazard    *system.HazardSystem
	teleport  *system.TeleportSystem

	// simulate runs input, patrol and physics, then re-resolves input
	// against the fresh contacts.
	simulate *ecs.Scheduler

	events  ecs.Queue[Event]
	session Session
	totals  *Totals
	phase   Phase
}

func NewLoop(cfg Config) (*Loop, error) {
	if err := cfg.fill(); err != nil {
		return nil, err
	}
	l := &Loop{
		cfg:       cfg,
		logger:    common.Logger("gameplay"),
		input:     system.NewInputSystem(),
		animation: system.NewAnimationSystem(),
		camera:    system.NewCameraSystem(),
		totals:    newTotals(),
		session:   Session{Level: cfg.StartLevel},
	}
	if err := l.configureWorld(); err != nil {
		return nil, err
	}
	if err := l.build(); err != nil {
		return nil, err
	}
	return l, nil
}

// configureWorld creates the systems that depend on the world spec.
func (l *Loop) configureWorld() error {
	ws := l.cfg.World
	pcfg := system.DefaultPhysicsConfig()
	if ws.Gravity != 0 {
		pcfg.Gravity = ws.Gravity
	}
	if ws.MaxFallSpeed > 0 {
		pcfg.MaxFallSpeed = ws.MaxFallSpeed
	}
	if ws.SpatialHashDim > 0 {
		pcfg.SpatialHashDim = ws.SpatialHashDim
	}
	if ws.SpatialHashCnt > 0 {
		pcfg.SpatialHashCount = ws.SpatialHashCnt
	}
	patrol, err := system.NewPatrolSystem(ws.PatrolScript)
	if err != nil {
		return err
	}
	l.physics = system.NewPhysicsSystem(pcfg)
	l.patrol = patrol
	l.pickup = system.NewPickupCollectSystem(l.physics)
	l.hazard = system.NewHazardSystem(l.physics)
	l.teleport = system.NewTeleportSystem(l.physics)
	l.simulate = ecs.NewScheduler(l.input, l.patrol, l.physics, ecs.SystemFunc(l.input.Resolve))
	return nil
}

// build creates a fresh world for the session's level with the player at
// the spawn point. Held keys carry over.
func (l *Loop) build() error {
	lvl, err := l.cfg.LoadLevel(l.session.Level)
	if err != nil {
		return fmt.Errorf("gameplay: load level %d: %w", l.session.Level, err)
	}

	var held component.Input
	if in, ok := ecs.Get(l.world, l.player, component.InputComponent.Kind()); ok {
		held = *in
	}

	w := ecs.NewWorld()
	l.physics.Reset()
	if err := entity.LoadLevelToWorld(w, lvl, l.cfg.World); err != nil {
		return err
	}
	player, err := entity.NewPlayerFromSpec(w, l.cfg.Player, lvl.Spawn.X, lvl.Spawn.Y)
	if err != nil {
		return err
	}
	if in, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok {
		*in = held
	}
	if _, err := entity.NewCameraFromSpec(w, l.cfg.Camera); err != nil {
		return err
	}

	l.world = w
	l.level = lvl
	l.player = player
	l.camera = system.NewCameraSystem()
	l.session.TotalCoins = lvl.CoinCount()
	l.session.restart()
	l.phase = PhasePlaying

	l.physics.Sync(w)
	l.camera.Update(w)
	l.logger.Debug("level built", "level", l.session.Level, "name", lvl.Name, "coins", l.session.TotalCoins)
	return nil
}

// Update runs one tick of dt seconds and returns the resulting phase.
func (l *Loop) Update(dt float64) (Phase, error) {
	switch l.phase {
	case PhaseGameComplete:
		return l.phase, nil
	case PhaseResetting, PhaseLevelComplete:
		if err := l.build(); err != nil {
			return l.phase, err
		}
		return l.phase, nil
	}

	w := l.world
	l.simulate.Update(w)
	l.animation.Update(w)

	if n := l.pickup.Collect(w); n > 0 {
		l.session.Score += n
		if l.session.Score > l.session.TotalCoins {
			l.session.Score = l.session.TotalCoins
		}
		l.events.Push(Event{Kind: EventCoins, Level: l.session.Level, Count: n})
	}

	l.camera.Update(w)

	if h, ok := l.hazard.Touching(w); ok {
		l.die(h)
		return l.phase, nil
	}

	if l.teleport.Apply(w) {
		l.events.Push(Event{Kind: EventTeleport, Level: l.session.Level})
	}

	if l.session.Score >= l.session.TotalCoins {
		l.win()
		return l.phase, nil
	}

	l.session.Elapsed += dt
	return l.phase, nil
}

func (l *Loop) die(h component.Hazard) {
	l.session.Deaths++
	l.totals.Deaths = l.session.Deaths
	system.PlayCue(l.world, l.player, common.CueGameOver)
	l.events.Push(Event{Kind: EventDeath, Level: l.session.Level, Cause: h.Source})
	l.logger.Info("player died", "level", l.session.Level, "cause", h.Source, "deaths", l.session.Deaths)

	l.session.restart()
	if p, ok := ecs.Get(l.world, l.player, component.PlayerComponent.Kind()); ok {
		l.physics.SetPosition(l.world, l.player, p.SpawnX, p.SpawnY)
	}
	l.phase = PhaseResetting
}

func (l *Loop) win() {
	l.totals.record(l.session.Level, l.session.Elapsed)
	l.events.Push(Event{Kind: EventLevelComplete, Level: l.session.Level, Seconds: l.session.Elapsed})
	l.logger.Info("level complete", "level", l.session.Level, "time", FormatElapsed(l.session.Elapsed))

	if l.session.Level < l.cfg.FinalLevel {
		l.session.Level++
		l.session.restart()
		l.phase = PhaseLevelComplete
		return
	}
	l.totals.GrandTotal = l.totals.Sum()
	l.totals.Deaths = l.session.Deaths
	l.phase = PhaseGameComplete
	l.events.Push(Event{Kind: EventGameComplete, Level: l.session.Level, Seconds: l.totals.GrandTotal})
	l.logger.Info("game complete", "total", FormatTotal(l.totals.GrandTotal), "deaths", l.totals.Deaths)
}

// Events drains what happened since the last call, oldest first.
func (l *Loop) Events() []Event {
	return l.events.Drain()
}

// PushKey queues a key press or release for the next tick.
func (l *Loop) PushKey(key component.Key, pressed bool) {
	l.input.Push(system.KeyEvent{Key: key, Pressed: pressed})
}

// ClearInput drops queued key events and releases every held key.
func (l *Loop) ClearInput() {
	l.input.Clear(l.world)
}

// SetPlayerSpec swaps the player tuning. Speeds apply at once; the rest on
// the next rebuild.
func (l *Loop) SetPlayerSpec(spec *prefabs.PlayerSpec) {
	if spec == nil {
		return
	}
	l.cfg.Player = spec
	if p, ok := ecs.Get(l.world, l.player, component.PlayerComponent.Kind()); ok {
		p.MoveSpeed = spec.MoveSpeed
		p.JumpSpeed = spec.JumpSpeed
		p.ClimbSpeed = spec.ClimbSpeed
		p.JumpProbe = spec.JumpProbe
	}
}

// SetCameraSpec resizes the running camera's viewport.
func (l *Loop) SetCameraSpec(spec *prefabs.CameraSpec) {
	if spec == nil {
		return
	}
	l.cfg.Camera = spec
	ecs.ForEach(l.world, component.CameraComponent.Kind(), func(_ ecs.Entity, c *component.Camera) {
		c.ViewportW = spec.ViewportW
		c.ViewportH = spec.ViewportH
		if spec.Zoom > 0 {
			c.Zoom = spec.Zoom
		}
	})
	l.camera.Update(l.world)
}

// SetWorldSpec swaps the world tuning and rebuilds the current level.
func (l *Loop) SetWorldSpec(spec *prefabs.WorldSpec) error {
	if spec == nil {
		return nil
	}
	prev := l.cfg.World
	l.cfg.World = spec
	if err := l.configureWorld(); err != nil {
		l.cfg.World = prev
		return err
	}
	return l.build()
}

func (l *Loop) World() *ecs.World { return l.world }
func (l *Loop) Level() *levels.Level { return l.level }
func (l *Loop) Player() ecs.Entity { return l.player }
func (l *Loop) Phase() Phase { return l.phase }
func (l *Loop) Session() Session { return l.session }
func (l *Loop) Physics() *system.PhysicsSystem { return l.physics }

// Totals returns a copy of the cross-level totals.
func (l *Loop) Totals() Totals {
	return l.totals.Clone()
}
