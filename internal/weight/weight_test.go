package weight

import "testing"

func TestResolveQualitative(t *testing.T) {
	got := Resolve("Bench Press", Qualitative("moderate"), nil)
	if got != "moderate" {
		t.Fatalf("expected qualitative passthrough, got %q", got)
	}
}

func TestResolvePercentTrainingMaxWithCache(t *testing.T) {
	cache := Cache{"Bench Press": {Override: 200}}
	// trm = 0.9 * 200 = 180; 70% of 180 = 126, rounded to nearest 5 = 125
	got := Resolve("Bench Press", PercentTrainingMax(70), cache)
	if got != "125" {
		t.Fatalf("expected 125, got %q", got)
	}
}

func TestResolvePercentTrainingMaxWithoutCache(t *testing.T) {
	got := Resolve("Bench Press", PercentTrainingMax(70), Cache{})
	if got != "70%" {
		t.Fatalf("expected textual fallback '70%%', got %q", got)
	}
}

func TestResolveAbsolute(t *testing.T) {
	got := Resolve("Deadlift", Absolute(225, Lbs), nil)
	if got != "225 lbs" {
		t.Fatalf("expected '225 lbs', got %q", got)
	}
}

func TestOneRMSourceOverrideClearedFallsBackToZero(t *testing.T) {
	s := OneRMSource{Override: 0, EstimatedFromHistory: 0}
	if s.TrainingMax() != 0 {
		t.Fatalf("expected 0 trm when both override and history are empty")
	}
}

func TestOneRMSourcePrefersOverride(t *testing.T) {
	s := OneRMSource{Override: 300, EstimatedFromHistory: 250}
	if s.EffectiveOneRM() != 300 {
		t.Fatalf("expected override to take precedence")
	}
}

func TestOneRMSourceFallsBackToHistory(t *testing.T) {
	s := OneRMSource{Override: 0, EstimatedFromHistory: 250}
	if s.EffectiveOneRM() != 250 {
		t.Fatalf("expected history estimate when override is unset")
	}
}
