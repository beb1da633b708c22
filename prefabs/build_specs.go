package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Position Vec3    `yaml:"position"`
	Scale    float64 `yaml:"scale"`
}

// ModelComponentSpec either names an asset for the model loader or
// describes a primitive inline.
type ModelComponentSpec struct {
	Asset string    `yaml:"asset"`
	Shape string    `yaml:"shape"`
	Size  Vec3      `yaml:"size"`
	Pivot string    `yaml:"pivot"`
	Color YAMLColor `yaml:"color"`
}

type ActorComponentSpec struct {
	Smoothing float64 `yaml:"smoothing"`
}

type LaneTrackerComponentSpec struct {
	Start string `yaml:"start"`
}

type CoinComponentSpec struct {
	Visible *bool `yaml:"visible"`
}

type VelocityComponentSpec struct {
	Linear Vec3 `yaml:"linear"`
}

type AnimatorComponentSpec struct {
	Clip string `yaml:"clip"`
}
