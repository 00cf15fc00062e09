package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"tiles/coin.png":           "tiles/coin.png",
		"assets/tiles/coin.png":    "tiles/coin.png",
		"/home/x/assets/cave.png":  "cave.png",
		"/tmp/elsewhere/sound.wav": "sound.wav",
	}
	for in, want := range cases {
		if got := cleanAssetPath(in); got != want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmbeddedFilesPresent(t *testing.T) {
	for _, p := range []string{
		"animations/tile_0139.png",
		"animations/tile_climb1.png",
		"tiles/coin.png",
		"sounds/coin1.wav",
		"backgrounds.png",
		"cave.png",
	} {
		if _, err := LoadFile(p); err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
	}
}
