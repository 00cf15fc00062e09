package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow drops repeated writes to one file, as editors often save
// in several steps.
const debounceWindow = 100 * time.Millisecond

// Target is what a changed file affects in a running game.
type Target int

const (
	TargetNone Target = iota
	// TargetPlayer retunes the player in place.
	TargetPlayer
	// TargetCamera resizes the viewport in place.
	TargetCamera
	// TargetWorld rebuilds the current level.
	TargetWorld
)

func (t Target) String() string {
	switch t {
	case TargetPlayer:
		return "player"
	case TargetCamera:
		return "camera"
	case TargetWorld:
		return "world"
	default:
		return "none"
	}
}

// Change is one reloadable file that was written.
type Change struct {
	File   string
	Target Target
}

// Classify maps a spec or script file to the part of the game it tunes.
func Classify(path string) Target {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case name == "player.yaml":
		return TargetPlayer
	case name == "camera.yaml":
		return TargetCamera
	case name == "world.yaml", filepath.Ext(name) == ".tengo":
		return TargetWorld
	default:
		return TargetNone
	}
}

// Watcher turns fsnotify events in the prefab directories into Changes.
// Changes is drained by the game once per frame.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	seen := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			change, ok := w.accept(ev, seen, time.Now())
			if !ok {
				continue
			}
			select {
			case w.Changes <- change:
			case <-w.stop:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.stop:
			return
		}
	}
}

// accept filters one event: only writes to reloadable files outside the
// debounce window of the previous write pass.
func (w *Watcher) accept(ev fsnotify.Event, seen map[string]time.Time, now time.Time) (Change, bool) {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return Change{}, false
	}
	target := Classify(ev.Name)
	if target == TargetNone {
		return Change{}, false
	}
	if last, ok := seen[ev.Name]; ok && now.Sub(last) < debounceWindow {
		return Change{}, false
	}
	seen[ev.Name] = now
	return Change{File: filepath.Base(ev.Name), Target: target}, true
}
