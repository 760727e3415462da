package dayplan

import (
	"testing"

	"github.com/wabbazzar/shredly/internal/rules"
)

func TestParseFocusSuffix(t *testing.T) {
	cases := []struct {
		focus    string
		wantBase string
		wantSuf  Suffix
	}{
		{"Push", "Push", SuffixNone},
		{"Upper-HIIT", "Upper", SuffixHIIT},
		{"Legs-Volume", "Legs", SuffixVolume},
		{"Pull-Strength", "Pull", SuffixStrength},
		{"FullBody-Mobility", "FullBody", SuffixMobility},
	}
	for _, c := range cases {
		base, suf := ParseFocus(c.focus)
		if base != c.wantBase || suf != c.wantSuf {
			t.Errorf("ParseFocus(%q) = (%q, %q), want (%q, %q)", c.focus, base, suf, c.wantBase, c.wantSuf)
		}
	}
}

func TestMuscleGroupLookupKeySpecialCases(t *testing.T) {
	if got := MuscleGroupLookupKey("Flexibility"); got != "Mobility" {
		t.Errorf("Flexibility => %q, want Mobility", got)
	}
	if got := MuscleGroupLookupKey("FullBody-Mobility"); got != "Mobility" {
		t.Errorf("FullBody-Mobility => %q, want Mobility", got)
	}
	if got := MuscleGroupLookupKey("Push"); got != "Push" {
		t.Errorf("Push => %q, want Push", got)
	}
}

func TestBuildDayStructureFlexibilityIsUnconditional(t *testing.T) {
	r := mustRules(t, minimalRulesJSON())
	blocks, err := BuildDayStructure("Flexibility", "full_gym", 999, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ResolvedBlock{{Type: "mobility", Count: 3}, {Type: "compound", Count: 1}}
	if len(blocks) != len(want) || blocks[0] != want[0] || blocks[1] != want[1] {
		t.Fatalf("got %+v, want %+v", blocks, want)
	}
}

func TestBuildDayStructureResolvesTimeBased(t *testing.T) {
	r := mustRules(t, minimalRulesJSON())
	blocks, err := BuildDayStructure("Push", "full_gym", 30, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var found bool
	for _, b := range blocks {
		if b.Type == "compound" {
			found = true
			if b.Count != 2 {
				t.Errorf("expected time_based compound count to resolve to 2 at 30min, got %d", b.Count)
			}
		}
	}
	if !found {
		t.Fatalf("expected a compound block in standard full_gym structure")
	}
}

func TestBuildDayStructureFallsBackToStandard(t *testing.T) {
	r := mustRules(t, minimalRulesJSON())
	blocks, err := BuildDayStructure("Push-HIIT", "full_gym", 30, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatalf("expected standard fallback blocks, got none")
	}
}

func TestProgressionFromGoalStaticForPassiveCategories(t *testing.T) {
	r := mustRules(t, minimalRulesJSON())
	for _, cat := range []string{"mobility", "flexibility", "cardio"} {
		scheme, err := ProgressionFromGoal("build_muscle", cat, r)
		if err != nil || scheme != "static" {
			t.Errorf("category %s: got (%q, %v), want (static, nil)", cat, scheme, err)
		}
	}
}

func TestProgressionFromGoalLooksUpRulesForOtherCategories(t *testing.T) {
	r := mustRules(t, minimalRulesJSON())
	scheme, err := ProgressionFromGoal("build_muscle", "strength", r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scheme != "linear" {
		t.Errorf("got %q, want linear", scheme)
	}
}

func mustRules(t *testing.T, raw string) *rules.Rules {
	t.Helper()
	r, err := rules.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("rules.Parse: %v", err)
	}
	return r
}

// minimalRulesJSON is this package's own rules fixture; the selector and
// parameterizer tests carry their own testRules fixtures (each _test.go is
// self-contained) rather than importing a shared testdata dependency.
func minimalRulesJSON() string {
	return `{
		"prescriptive_splits": {"build_muscle": {"3": ["Push", "Pull", "Legs"], "4": ["Push", "Pull", "Legs", "Push-HIIT"]}},
		"day_structure_by_equipment": {
			"full_gym": {
				"standard": {"blocks": [{"type": "strength", "count": "3"}, {"type": "compound", "count": "time_based"}]}
			},
			"dumbbells_only": {
				"standard": {"blocks": [{"type": "strength", "count": "2"}]}
			}
		},
		"compound_blocks_by_time": {"30": 2, "60": 3},
		"compound_exercise_construction": {
			"emom": {"base_constituent_exercises": 2, "exclude_equipment": ["Barbell"]},
			"amrap": {"base_constituent_exercises": 3, "exclude_equipment": []},
			"circuit": {"base_constituent_exercises": 4, "exclude_equipment": []},
			"interval": {"base_constituent_exercises": 2, "exclude_equipment": []}
		},
		"intensity_profiles": {
			"strength": {"moderate": {"sets": 3, "reps": 10, "rest_time_seconds": 60, "weight_descriptor": "moderate", "weight_percent_tm": 70}},
			"mobility": {"moderate": {"sets": 1, "reps": "10"}},
			"emom": {"moderate": {"block_time_minutes": 10, "sub_work_mode": "time", "sub_work_time_seconds": 40, "sub_rest_time_seconds": 20}}
		},
		"progression_schemes": {
			"linear": {"rules": {"reps_delta_per_week": 1, "reps_minimum": 6, "weight_percent_delta_per_week": 2, "rest_time_delta_per_week_minutes": 0, "rest_time_minimum_minutes": 0}},
			"density": {"rules": {}},
			"static": {"rules": {}}
		},
		"progression_by_goal": {"build_muscle": "linear", "tone": "density", "lose_weight": "density"},
		"experience_modifiers": {
			"beginner": {"weight_type": "descriptor", "volume_multiplier": 1.0, "rest_time_multiplier": 1.0, "complexity_filter": ["Beginner", "Intermediate"], "external_load_filter": ["never", "sometimes", "always"]}
		},
		"intensity_profile_by_layer_and_category": {
			"strength": {"default": "moderate"},
			"default": {"default": "moderate"}
		},
		"split_muscle_group_mapping": {
			"Push": {"include_muscle_groups": ["chest", "shoulders", "triceps"]},
			"Mobility": {"include_muscle_groups": ["all"]}
		},
		"exercise_count_constraints": {"min_per_block": 1, "max_per_day": 8},
		"equipment_quotas": {"barbell_max_per_day": 2}
	}`
}
