package model

import "testing"

func TestParseStrategySmartMix(t *testing.T) {
	s, err := ParseStrategy("smart-mix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Kind != SmartMix {
		t.Errorf("expected SmartMix kind, got %v", s.Kind)
	}
}

func TestParseStrategyUniform(t *testing.T) {
	s, err := ParseStrategy("uniform:40HQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Kind != Uniform || s.UniformType != "40HQ" {
		t.Errorf("unexpected strategy: %+v", s)
	}
}

func TestParseStrategyPlanSplitsTypes(t *testing.T) {
	s, err := ParseStrategy("plan:20GP, 40GP,40HQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"20GP", "40GP", "40HQ"}
	if len(s.PlanTypes) != len(want) {
		t.Fatalf("expected %d types, got %+v", len(want), s.PlanTypes)
	}
	for i, t2 := range want {
		if s.PlanTypes[i] != t2 {
			t.Errorf("expected %q at index %d, got %q", t2, i, s.PlanTypes[i])
		}
	}
}

func TestParseStrategyRejectsUnknownForm(t *testing.T) {
	if _, err := ParseStrategy("fastest"); err == nil {
		t.Error("expected an error for an unrecognized strategy string")
	}
}

func TestParseStrategyRejectsEmptyUniformType(t *testing.T) {
	if _, err := ParseStrategy("uniform:"); err == nil {
		t.Error("expected an error for a missing uniform container type")
	}
}
