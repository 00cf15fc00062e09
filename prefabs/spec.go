package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

// AnimationSpec names one texture per visual state.
type AnimationSpec struct {
	Idle  string   `yaml:"idle"`
	Jump  string   `yaml:"jump"`
	Fall  string   `yaml:"fall"`
	Walk  []string `yaml:"walk"`
	Climb []string `yaml:"climb"`
}

type PlayerSpec struct {
	Name        string          `yaml:"name"`
	MoveSpeed   float64         `yaml:"move_speed"`
	JumpSpeed   float64         `yaml:"jump_speed"`
	ClimbSpeed  float64         `yaml:"climb_speed"`
	JumpProbe   float64         `yaml:"jump_probe"`
	Scale       float64         `yaml:"scale"`
	Collider    ColliderSpec    `yaml:"collider"`
	Animation   AnimationSpec   `yaml:"animation"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
	Audio       []AudioSpec     `yaml:"audio"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if len(spec.Animation.Walk) != 3 || len(spec.Animation.Climb) != 2 {
		return nil, fmt.Errorf("prefabs: player.yaml: want 3 walk and 2 climb textures, got %d and %d",
			len(spec.Animation.Walk), len(spec.Animation.Climb))
	}
	return &spec, nil
}

type CameraSpec struct {
	Name      string  `yaml:"name"`
	ViewportW float64 `yaml:"viewport_w"`
	ViewportH float64 `yaml:"viewport_h"`
	Zoom      float64 `yaml:"zoom"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// MoverSpec describes the look and size of a patrolling entity kind.
type MoverSpec struct {
	Texture     string          `yaml:"texture"`
	Collider    ColliderSpec    `yaml:"collider"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

// WorldSpec tunes the physics space and the entities built from level data.
type WorldSpec struct {
	Gravity        float64              `yaml:"gravity"`
	MaxFallSpeed   float64              `yaml:"max_fall_speed"`
	SpatialHashDim float64              `yaml:"spatial_hash_dim"`
	SpatialHashCnt int                  `yaml:"spatial_hash_count"`
	CoinScale      float64              `yaml:"coin_scale"`
	PatrolScript   string               `yaml:"patrol_script"`
	Movers         map[string]MoverSpec `yaml:"movers"`
	LayerOrder     map[string]int       `yaml:"layer_order"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
