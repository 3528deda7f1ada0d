package config

import (
	"errors"
	"os"
	"testing"

	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/physics"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestEveryKindHasPlaceholderFirst(t *testing.T) {
	for _, kind := range physics.Kinds {
		list := Presets[kind]
		if len(list) < 2 {
			t.Fatalf("%s: expected presets", kind)
		}
		if list[0].Name != Placeholder || list[0].Values != nil {
			t.Errorf("%s: first entry is %+v", kind, list[0])
		}
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset(physics.KindUniformB, "circle")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Values.Bz != 1 || p.Values.Particle.Y0 != -5 {
		t.Errorf("unexpected values %+v", p.Values)
	}

	if GetPreset(physics.KindUniformB, "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "circle") != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets(physics.KindRadialE)
	want := []string{"circular-orbit", "elliptic-orbit", "repulsion"}
	if len(names) != len(want) {
		t.Fatalf("got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Bz = 7

	changed, err := ApplyPreset(cfg, physics.KindUniformE, "parabolic")
	if err != nil || !changed {
		t.Fatalf("ApplyPreset = %v, %v", changed, err)
	}

	if cfg.Field.Type != "uniform-e" || cfg.Field.Ex != 0 || cfg.Field.Ey != -2 {
		t.Errorf("field = %+v", cfg.Field)
	}
	if cfg.Particle.VY0 != 10 || cfg.Particle.X0 != -10 {
		t.Errorf("particle = %+v", cfg.Particle)
	}
	if cfg.Field.Bz != 7 {
		t.Error("preset for uniform-e touched bz")
	}
}

func TestApplyPlaceholderIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	before := *cfg

	changed, err := ApplyPreset(cfg, physics.KindRadialE, Placeholder)
	if err != nil || changed {
		t.Fatalf("ApplyPreset = %v, %v", changed, err)
	}
	if *cfg != before {
		t.Error("placeholder modified config")
	}
}

func TestApplyUnknownPreset(t *testing.T) {
	_, err := ApplyPreset(DefaultConfig(), physics.KindUniformB, "spiral")
	if !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestFindPreset(t *testing.T) {
	kind, p := FindPreset("repulsion")
	if kind != physics.KindRadialE || p == nil {
		t.Errorf("FindPreset = %s, %v", kind, p)
	}
	if _, p := FindPreset(Placeholder); p != nil {
		t.Error("placeholder should not be findable")
	}
}
