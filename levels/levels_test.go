package levels

import (
	"errors"
	"testing"

	"github.com/milk9111/platformer/common"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	for i := common.FirstLevel; i <= common.FinalLevel; i++ {
		t.Run(FileName(i), func(t *testing.T) {
			lvl, err := Load(i)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got := lvl.CoinCount(); got != 11 {
				t.Fatalf("expected 11 coins, got %d", got)
			}
			if _, ok := lvl.Layer(common.LayerPlatforms); !ok {
				t.Fatalf("missing %q layer", common.LayerPlatforms)
			}
		})
	}
}

func TestLevelThreeStartsHigh(t *testing.T) {
	lvl, err := Load(3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lvl.Spawn.X != 241 || lvl.Spawn.Y != 693 {
		t.Fatalf("unexpected spawn %+v", lvl.Spawn)
	}
	if lvl.BackgroundAlt == "" || lvl.BackgroundAltBelowY != 409 {
		t.Fatalf("expected cave background below 409, got %q/%v", lvl.BackgroundAlt, lvl.BackgroundAltBelowY)
	}
}

func TestTilesAreYUp(t *testing.T) {
	lvl := &Level{
		Width:    3,
		Height:   2,
		TileSize: 10,
		Layers: []Layer{
			{Name: common.LayerCoins, Rows: []string{"o..", "..o"}},
		},
	}
	tiles := lvl.Tiles(common.LayerCoins)
	if len(tiles) != 2 {
		t.Fatalf("expected 2 tiles, got %d", len(tiles))
	}
	if tiles[0].CenterX != 5 || tiles[0].CenterY != 15 {
		t.Fatalf("top-left tile at (%v,%v), want (5,15)", tiles[0].CenterX, tiles[0].CenterY)
	}
	if tiles[1].CenterX != 25 || tiles[1].CenterY != 5 {
		t.Fatalf("bottom-right tile at (%v,%v), want (25,5)", tiles[1].CenterX, tiles[1].CenterY)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		lvl  Level
		want error
	}{
		{
			name: "ragged_row",
			lvl: Level{Width: 3, Height: 1, TileSize: 1, Layers: []Layer{
				{Name: common.LayerCoins, Rows: []string{"o."}},
			}},
			want: ErrBadLayer,
		},
		{
			name: "missing_rows",
			lvl: Level{Width: 1, Height: 2, TileSize: 1, Layers: []Layer{
				{Name: common.LayerCoins, Rows: []string{"o"}},
			}},
			want: ErrBadLayer,
		},
		{
			name: "no_coins",
			lvl: Level{Width: 1, Height: 1, TileSize: 1, Layers: []Layer{
				{Name: common.LayerPlatforms, Rows: []string{"#"}},
			}},
			want: ErrNoCoins,
		},
		{
			name: "ok",
			lvl: Level{Width: 1, Height: 1, TileSize: 1, Layers: []Layer{
				{Name: common.LayerCoins, Rows: []string{"o"}},
			}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.lvl.Validate()
			if c.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestPropFloat(t *testing.T) {
	e := Entity{Props: map[string]interface{}{"change_x": 1.5, "bad": "x"}}
	if got := e.PropFloat("change_x", 0); got != 1.5 {
		t.Fatalf("change_x = %v", got)
	}
	if got := e.PropFloat("bad", 2); got != 2 {
		t.Fatalf("bad = %v", got)
	}
	if got := e.PropFloat("missing", 3); got != 3 {
		t.Fatalf("missing = %v", got)
	}
}
