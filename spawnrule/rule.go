// Package spawnrule decides, from one random draw, whether a coin spawns
// this frame and at which slot.
package spawnrule

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/coinrunner/prefabs"
)

// NoSpawn is returned by a Rule when the frame spawns nothing.
const NoSpawn = -1

// Rule maps a draw in [0, rng) to a slot index in [0, slots) or NoSpawn.
type Rule interface {
	Slot(draw, slots, rng int) (int, error)
}

// Direct spawns at slot draw whenever draw is a valid slot index. With a
// range of 100 and three slots every slot has an independent 1% chance.
type Direct struct{}

func (Direct) Slot(draw, slots, _ int) (int, error) {
	if draw >= 0 && draw < slots {
		return draw, nil
	}
	return NoSpawn, nil
}

// Script runs a tengo program once per draw. The program sees the globals
// draw, slots and limit and must leave the chosen slot in the global slot.
type Script struct {
	Path     string
	compiled *tengo.Compiled
}

// LoadScript compiles a spawn script from the prefab scripts directory.
func LoadScript(path string) (*Script, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("spawnrule: load %s: %w", path, err)
	}
	return CompileScript(path, src)
}

func CompileScript(path string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("draw", 0)
	_ = script.Add("slots", 0)
	_ = script.Add("limit", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("spawnrule: compile %s: %w", path, err)
	}
	// Globals stay undefined until the program has run once.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("spawnrule: run %s: %w", path, err)
	}
	if !compiled.IsDefined("slot") {
		return nil, fmt.Errorf("spawnrule: %s does not define slot", path)
	}
	return &Script{Path: path, compiled: compiled}, nil
}

func (s *Script) Slot(draw, slots, rng int) (int, error) {
	if s == nil || s.compiled == nil {
		return NoSpawn, fmt.Errorf("spawnrule: nil script")
	}
	if err := s.compiled.Set("draw", draw); err != nil {
		return NoSpawn, err
	}
	if err := s.compiled.Set("slots", slots); err != nil {
		return NoSpawn, err
	}
	if err := s.compiled.Set("limit", rng); err != nil {
		return NoSpawn, err
	}
	if err := s.compiled.Run(); err != nil {
		return NoSpawn, fmt.Errorf("spawnrule: run %s: %w", s.Path, err)
	}
	slot := s.compiled.Get("slot").Int()
	if slot < 0 || slot >= slots {
		return NoSpawn, nil
	}
	return slot, nil
}

// FromSpec returns the rule named by the spawn tuning: a script when one is
// configured, Direct otherwise.
func FromSpec(spec prefabs.SpawnSpec) (Rule, error) {
	if strings.TrimSpace(spec.Script) == "" {
		return Direct{}, nil
	}
	return LoadScript(spec.Script)
}
