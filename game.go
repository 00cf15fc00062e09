package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/render"
	"github.com/milk9111/platformer/gameplay"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/records"
	"github.com/milk9111/platformer/view"
	"golang.design/x/clipboard"
)

const instructionsTexture = "instructions.png"

type Options struct {
	Level   int
	Debug   bool
	Watch   bool
	Records string
	Mute    bool
}

type Game struct {
	opts   Options
	logger *log.Logger

	machine *view.Machine
	loop    *gameplay.Loop

	textures *render.Textures
	renderer *render.WorldRenderer
	hud      *render.HUD
	audio    *render.AudioSystem

	menu     *ebitenui.UI
	complete *ebitenui.UI

	watcher     *prefabs.Watcher
	store       *records.Store
	clipboardOK bool
}

func NewGame(opts Options) (*Game, error) {
	loop, err := gameplay.NewLoop(gameplay.Config{StartLevel: opts.Level})
	if err != nil {
		return nil, err
	}
	textures := render.NewTextures()
	g := &Game{
		opts:     opts,
		logger:   common.Logger("game"),
		machine:  view.NewMachine(),
		loop:     loop,
		textures: textures,
		renderer: render.NewWorldRenderer(textures),
		hud:      render.NewHUD(),
		audio:    render.NewAudioSystem(),
	}
	g.audio.Muted = opts.Mute
	g.menu = NewMenuUI(g.start)
	g.machine.OnChange = func(from, to view.State) {
		g.logger.Info("view changed", "from", from, "to", to)
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			g.logger.Warn("prefab watch disabled", "error", err)
		} else {
			g.watcher = w
		}
	}
	if opts.Records != "" {
		store, err := records.Open(opts.Records)
		if err != nil {
			g.logger.Warn("run records disabled", "error", err)
		} else {
			g.store = store
		}
	}
	if err := clipboard.Init(); err != nil {
		g.logger.Debug("clipboard unavailable", "error", err)
	} else {
		g.clipboardOK = true
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("close watcher", "error", err)
		}
	}
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			g.logger.Warn("close records", "error", err)
		}
	}
}

func (g *Game) start() {
	if err := g.machine.Start(); err != nil {
		g.logger.Error("start", "error", err)
		return
	}
	g.loop.ClearInput()
}

func (g *Game) Update() error {
	g.drainWatcher()

	switch g.machine.State() {
	case view.StateMenu:
		g.menu.Update()
	case view.StatePlaying:
		render.PollKeyboard(g.loop)
		phase, err := g.loop.Update(1.0 / float64(ebiten.TPS()))
		if err != nil {
			return err
		}
		g.audio.Update(g.loop.World())
		for _, ev := range g.loop.Events() {
			g.logger.Debug("event", "kind", ev.Kind, "level", ev.Level, "count", ev.Count, "seconds", ev.Seconds)
		}
		if phase == gameplay.PhaseGameComplete {
			g.finish()
		}
	case view.StateComplete:
		g.complete.Update()
	}
	return nil
}

func (g *Game) finish() {
	if err := g.machine.Finish(g.loop.Totals()); err != nil {
		g.logger.Error("finish", "error", err)
		return
	}
	totals := g.machine.Totals()
	var onCopy func(string)
	if g.clipboardOK {
		onCopy = func(s string) {
			clipboard.Write(clipboard.FmtText, []byte(s))
			g.logger.Info("result copied")
		}
	}
	g.complete = NewCompleteUI(totals, onCopy)

	if g.store == nil {
		return
	}
	id, err := g.store.Save(records.Run{
		Total:      totals.GrandTotal,
		Deaths:     totals.Deaths,
		LevelTimes: totals.LevelTimes,
	})
	if err != nil {
		g.logger.Error("save run", "error", err)
		return
	}
	g.logger.Info("run saved", "id", id, "total", gameplay.FormatTotal(totals.GrandTotal))
}

// drainWatcher applies every prefab change reported since the last frame.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefab watch", "error", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	var err error
	switch change.Target {
	case prefabs.TargetPlayer:
		var spec *prefabs.PlayerSpec
		if spec, err = prefabs.LoadPlayerSpec(); err == nil {
			g.loop.SetPlayerSpec(spec)
		}
	case prefabs.TargetCamera:
		var spec *prefabs.CameraSpec
		if spec, err = prefabs.LoadCameraSpec(); err == nil {
			g.loop.SetCameraSpec(spec)
		}
	case prefabs.TargetWorld:
		var spec *prefabs.WorldSpec
		if spec, err = prefabs.LoadWorldSpec(); err == nil {
			err = g.loop.SetWorldSpec(spec)
		}
	default:
		return
	}
	if err != nil {
		g.logger.Error("reload prefab", "file", change.File, "error", err)
		return
	}
	g.logger.Info("prefab reloaded", "file", change.File, "target", change.Target)
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.machine.State() {
	case view.StateMenu:
		if img, err := g.textures.Get(instructionsTexture); err == nil {
			op := &ebiten.DrawImageOptions{}
			b := screen.Bounds()
			op.GeoM.Scale(float64(b.Dx())/float64(img.Bounds().Dx()), float64(b.Dy())/float64(img.Bounds().Dy()))
			screen.DrawImage(img, op)
		}
		g.menu.Draw(screen)
	case view.StatePlaying:
		g.renderer.Draw(g.loop.World(), screen)
		s := g.loop.Session()
		g.hud.Draw(screen, render.HUDState{
			Score:   s.Score,
			Deaths:  s.Deaths,
			Elapsed: gameplay.FormatElapsed(s.Elapsed),
		})
		if g.opts.Debug {
			g.drawDebug(screen)
		}
	case view.StateComplete:
		g.complete.Draw(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	w, player := g.loop.World(), g.loop.Player()
	render.DrawPhysicsDebug(g.loop.Physics().Space(), w, screen)
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	contacts, ok := ecs.Get(w, player, component.ContactsComponent.Kind())
	if !ok {
		return
	}
	msg := fmt.Sprintf("FPS %.1f  %s\npos %.1f,%.1f\nladder %v  ground %v",
		ebiten.ActualFPS(), g.loop.Level().Name, tr.X, tr.Y, contacts.OnLadder, contacts.CanJump)
	ebitenutil.DebugPrintAt(screen, msg, common.BaseWidth-220, 10)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
