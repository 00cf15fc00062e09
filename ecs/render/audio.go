package render

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// AudioSystem plays cues flagged on Audio components and clears the flags.
// Players are created once per sound file and rewound on every play.
type AudioSystem struct {
	players map[string]*audio.Player
	failed  map[string]bool
	logger  *log.Logger
	// Muted consumes cues without playing them.
	Muted bool
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{
		players: make(map[string]*audio.Player),
		failed:  make(map[string]bool),
		logger:  common.Logger("audio"),
	}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, cues *component.Audio) {
		for i, play := range cues.Play {
			if !play {
				continue
			}
			cues.Play[i] = false
			if a.Muted || i >= len(cues.Files) {
				continue
			}
			vol := 1.0
			if i < len(cues.Volume) {
				vol = cues.Volume[i]
			}
			a.play(cues.Files[i], vol)
		}
	})
}

func (a *AudioSystem) play(file string, volume float64) {
	p := a.player(file)
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		a.logger.Warn("rewind failed", "file", file, "error", err)
		return
	}
	p.SetVolume(volume)
	p.Play()
}

func (a *AudioSystem) player(file string) *audio.Player {
	if p, ok := a.players[file]; ok {
		return p
	}
	if file == "" || a.failed[file] {
		return nil
	}
	p, err := assets.LoadAudioPlayer(file)
	if err != nil {
		a.failed[file] = true
		a.logger.Warn("load sound failed", "file", file, "error", err)
		return nil
	}
	a.players[file] = p
	return p
}
