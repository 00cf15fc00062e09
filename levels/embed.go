package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/milk9111/platformer/common"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrNoCoins  = errors.New("levels: level has no coins")
	ErrBadLayer = errors.New("levels: malformed layer")
)

// Level is a tile map with named layers. Rows are listed top to bottom; any
// character other than '.' or ' ' places a tile of that layer.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TileSize float64  `json:"tile_size"`
	Spawn    Point    `json:"spawn"`
	Teleport Teleport `json:"teleport,omitempty"`

	Background          string  `json:"background"`
	BackgroundAlt       string  `json:"background_alt,omitempty"`
	BackgroundAltBelowY float64 `json:"background_alt_below_y,omitempty"`

	Layers   []Layer  `json:"layers"`
	Entities []Entity `json:"entities,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Teleport holds the fixed pad destinations. A front pad ("Teleport" layer)
// sends the player to FrontTarget, next to the back pad; a back pad sends
// the player to BackTarget, next to the front pad.
type Teleport struct {
	FrontTarget Point `json:"front_target"`
	BackTarget  Point `json:"back_target"`
}

type Layer struct {
	Name string `json:"name"`
	// SpatialHash hints that the layer is static and queried often.
	SpatialHash bool     `json:"use_spatial_hash"`
	Tile        string   `json:"tile"`
	Rows        []string `json:"rows"`
}

// Entity is a moving object (platform or enemy) placed in world units.
type Entity struct {
	Type  string                 `json:"type"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Tile is one occupied cell, in world units with a y-up origin at the
// bottom-left corner of the map.
type Tile struct {
	CenterX float64
	CenterY float64
	Size    float64
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &lvl, nil
}

// FileName maps a level index to its embedded file.
func FileName(index int) string {
	return fmt.Sprintf("map1_level_%d.json", index)
}

// Load loads a level by index.
func Load(index int) (*Level, error) {
	return LoadLevelFromFS(FileName(index))
}

// Validate checks layer shapes and that there is at least one coin.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 || l.TileSize <= 0 {
		return fmt.Errorf("%w: bad dimensions %dx%d tile %v", ErrBadLayer, l.Width, l.Height, l.TileSize)
	}
	for _, ly := range l.Layers {
		if len(ly.Rows) != l.Height {
			return fmt.Errorf("%w: %q has %d rows, want %d", ErrBadLayer, ly.Name, len(ly.Rows), l.Height)
		}
		for i, row := range ly.Rows {
			if len(row) != l.Width {
				return fmt.Errorf("%w: %q row %d has %d columns, want %d", ErrBadLayer, ly.Name, i, len(row), l.Width)
			}
		}
	}
	if l.CoinCount() == 0 {
		return ErrNoCoins
	}
	return nil
}

// Layer returns the named layer, if present.
func (l *Level) Layer(name string) (Layer, bool) {
	for _, ly := range l.Layers {
		if strings.EqualFold(ly.Name, name) {
			return ly, true
		}
	}
	return Layer{}, false
}

// Tiles returns the occupied cells of the named layer.
func (l *Level) Tiles(name string) []Tile {
	ly, ok := l.Layer(name)
	if !ok {
		return nil
	}
	var out []Tile
	for r, row := range ly.Rows {
		for c, ch := range row {
			if ch == '.' || ch == ' ' {
				continue
			}
			out = append(out, Tile{
				CenterX: (float64(c) + 0.5) * l.TileSize,
				CenterY: (float64(l.Height-1-r) + 0.5) * l.TileSize,
				Size:    l.TileSize,
			})
		}
	}
	return out
}

// CoinCount is the number of coins that must be collected to finish the level.
func (l *Level) CoinCount() int {
	return len(l.Tiles(common.LayerCoins))
}

// WorldSize returns the map extent in world units.
func (l *Level) WorldSize() (float64, float64) {
	return float64(l.Width) * l.TileSize, float64(l.Height) * l.TileSize
}

// PropFloat reads a numeric property, falling back to def.
func (e Entity) PropFloat(key string, def float64) float64 {
	v, ok := e.Props[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}
