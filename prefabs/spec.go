package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
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

// RunnerSpec is the gameplay tuning for one session.
type RunnerSpec struct {
	Name   string     `yaml:"name"`
	Lanes  LanesSpec  `yaml:"lanes"`
	Actor  ActorSpec  `yaml:"actor"`
	Coin   CoinSpec   `yaml:"coin"`
	Spawn  SpawnSpec  `yaml:"spawn"`
	Score  ScoreSpec  `yaml:"score"`
	Camera CameraSpec `yaml:"camera"`
	Light  LightSpec  `yaml:"light"`
	Road   RoadSpec   `yaml:"road"`
}

type LanesSpec struct {
	// Offsets are the X positions of the left, center and right lanes.
	Offsets []float64 `yaml:"offsets"`
	Start   string    `yaml:"start"`
}

type ActorSpec struct {
	Prefab    string  `yaml:"prefab"`
	Smoothing float64 `yaml:"smoothing"`
}

type CoinSpec struct {
	Prefab        string  `yaml:"prefab"`
	Speed         float64 `yaml:"speed"`
	Direction     Vec3    `yaml:"direction"`
	DespawnBehind float64 `yaml:"despawn_behind"`
}

type SpawnSpec struct {
	Range  int    `yaml:"range"`
	Script string `yaml:"script"`
	Slots  []Vec3 `yaml:"slots"`
}

type ScoreSpec struct {
	Win int `yaml:"win"`
}

type CameraSpec struct {
	FOV    float64 `yaml:"fov"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
	Eye    Vec3    `yaml:"eye"`
	Target Vec3    `yaml:"target"`
}

type LightSpec struct {
	Direction Vec3    `yaml:"direction"`
	Ambient   float64 `yaml:"ambient"`
}

type RoadSpec struct {
	Width  float64   `yaml:"width"`
	Length float64   `yaml:"length"`
	Color  YAMLColor `yaml:"color"`
}

func LoadRunnerSpec(filename string) (*RunnerSpec, error) {
	spec, err := LoadSpec[RunnerSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate checks the invariants the game loop relies on.
func (s *RunnerSpec) Validate() error {
	if len(s.Lanes.Offsets) != 3 {
		return fmt.Errorf("lanes.offsets needs 3 values, got %d", len(s.Lanes.Offsets))
	}
	if s.Actor.Smoothing < 0 || s.Actor.Smoothing > 1 {
		return fmt.Errorf("actor.smoothing %v outside [0,1]", s.Actor.Smoothing)
	}
	if s.Spawn.Range <= 0 {
		return fmt.Errorf("spawn.range must be positive")
	}
	if len(s.Spawn.Slots) == 0 {
		return fmt.Errorf("spawn.slots is empty")
	}
	if s.Score.Win <= 0 {
		return fmt.Errorf("score.win must be positive")
	}
	if s.Coin.Speed < 0 {
		return fmt.Errorf("coin.speed must not be negative")
	}
	return nil
}

// ModelSpec describes a drawable, animatable asset.
type ModelSpec struct {
	Name  string              `yaml:"name"`
	Shape string              `yaml:"shape"`
	Size  Vec3                `yaml:"size"`
	Pivot string              `yaml:"pivot"`
	Color YAMLColor           `yaml:"color"`
	Clips map[string]ClipSpec `yaml:"clips"`
}

type ClipSpec struct {
	FPS   float64 `yaml:"fps"`
	Loop  bool    `yaml:"loop"`
	Poses []Vec3  `yaml:"poses"`
}

// LoadModelSpec loads models/<name>.yaml.
func LoadModelSpec(name string) (ModelSpec, error) {
	spec, err := LoadSpec[ModelSpec]("models/" + strings.TrimSuffix(name, ".yaml") + ".yaml")
	if err != nil {
		return ModelSpec{}, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec, nil
}

// Vec3 decodes a three element yaml sequence.
type Vec3 mgl64.Vec3

func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var raw []float64
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("vec3: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("vec3 needs 3 values, got %d", len(raw))
	}
	*v = Vec3{raw[0], raw[1], raw[2]}
	return nil
}

func (v Vec3) MarshalYAML() (any, error) {
	return []float64{v[0], v[1], v[2]}, nil
}

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "", nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

// RGBA8 returns the color or fallback when none was set.
func (c YAMLColor) RGBA8(fallback color.NRGBA) color.NRGBA {
	if c.Color == nil {
		return fallback
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}
