package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// PlayCue flags the named cue on e's Audio component. Unknown names are
// ignored. The audio player in ecs/render consumes and clears the flag.
func PlayCue(w *ecs.World, e ecs.Entity, name string) bool {
	audioComp, ok := ecs.Get(w, e, component.AudioComponent.Kind())
	if !ok {
		return false
	}
	for i, n := range audioComp.Names {
		if n != name {
			continue
		}
		if i < len(audioComp.Play) {
			audioComp.Play[i] = true
			return true
		}
		return false
	}
	return false
}

// PendingCues lists the cues flagged on e without clearing them.
func PendingCues(w *ecs.World, e ecs.Entity) []string {
	audioComp, ok := ecs.Get(w, e, component.AudioComponent.Kind())
	if !ok {
		return nil
	}
	var out []string
	for i, play := range audioComp.Play {
		if play && i < len(audioComp.Names) {
			out = append(out, audioComp.Names[i])
		}
	}
	return out
}
