package selector

import (
	"testing"

	"github.com/wabbazzar/shredly/internal/apperrors"
	"github.com/wabbazzar/shredly/internal/catalogue"
	"github.com/wabbazzar/shredly/internal/dayplan"
	"github.com/wabbazzar/shredly/internal/questionnaire"
	"github.com/wabbazzar/shredly/internal/randgen"
	"github.com/wabbazzar/shredly/internal/rules"
)

func testCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	raw := `{"exercise_database": {"categories": {
		"strength": {"exercises": {
			"Barbell Bench Press": {"category": "strength", "muscle_groups": ["chest","triceps"], "equipment": ["Barbell","Bench"], "difficulty": "Intermediate", "external_load": "always", "isometric": false, "typical_sets": 4, "typical_reps": "8-10"},
			"Dumbbell Shoulder Press": {"category": "strength", "muscle_groups": ["shoulders"], "equipment": ["Dumbbell"], "difficulty": "Beginner", "external_load": "always", "isometric": false, "typical_sets": 3, "typical_reps": "10-12"},
			"Barbell Row": {"category": "strength", "muscle_groups": ["back"], "equipment": ["Barbell"], "difficulty": "Intermediate", "external_load": "always", "isometric": false, "typical_sets": 4, "typical_reps": "8-10"}
		}},
		"bodyweight": {"exercises": {
			"Push-up": {"category": "bodyweight", "muscle_groups": ["chest","triceps"], "equipment": ["None"], "difficulty": "Beginner", "external_load": "sometimes", "isometric": false, "typical_sets": 3, "typical_reps": "10-15"},
			"Triceps Dip": {"category": "bodyweight", "muscle_groups": ["triceps"], "equipment": ["None"], "difficulty": "Beginner", "external_load": "never", "isometric": false, "typical_sets": 3, "typical_reps": "8-12"}
		}},
		"mobility": {"exercises": {
			"Arm Circles": {"category": "mobility", "muscle_groups": ["shoulders"], "equipment": ["None"], "difficulty": "Beginner", "external_load": "never", "isometric": false, "typical_sets": 1, "typical_reps": "10"},
			"Shoulder Circles": {"category": "mobility", "muscle_groups": ["shoulders"], "equipment": ["None"], "difficulty": "Beginner", "external_load": "never", "isometric": false, "typical_sets": 1, "typical_reps": "10"},
			"Cat-Cow": {"category": "mobility", "muscle_groups": ["back"], "equipment": ["None"], "difficulty": "Beginner", "external_load": "never", "isometric": true, "typical_sets": 1, "typical_reps": "60s"}
		}},
		"cardio": {"exercises": {
			"Jumping Jacks": {"category": "cardio", "muscle_groups": ["full_body"], "equipment": ["None"], "difficulty": "Beginner", "external_load": "never", "isometric": false, "typical_sets": 1, "typical_reps": "30s"}
		}}
	}}}`
	cat, err := catalogue.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("catalogue.Parse: %v", err)
	}
	return cat
}

func testRules(t *testing.T) *rules.Rules {
	t.Helper()
	raw := `{
		"prescriptive_splits": {"build_muscle": {"3": ["Push"]}},
		"day_structure_by_equipment": {"full_gym": {"standard": {"blocks": []}}},
		"compound_exercise_construction": {
			"emom": {"base_constituent_exercises": 2, "exclude_equipment": ["Barbell"]},
			"amrap": {"base_constituent_exercises": 3, "exclude_equipment": []},
			"circuit": {"base_constituent_exercises": 4, "exclude_equipment": []},
			"interval": {"base_constituent_exercises": 2, "exclude_equipment": []}
		},
		"intensity_profiles": {
			"strength": {"moderate": {"sets": 3, "reps": 10}},
			"emom": {"moderate": {"block_time_minutes": 10}}
		},
		"progression_schemes": {"linear": {"rules": {}}},
		"progression_by_goal": {"build_muscle": "linear"},
		"experience_modifiers": {
			"beginner": {"weight_type": "descriptor", "volume_multiplier": 1.0, "rest_time_multiplier": 1.0, "complexity_filter": ["Beginner"], "external_load_filter": ["never", "sometimes", "always"]},
			"intermediate": {"weight_type": "descriptor", "volume_multiplier": 1.0, "rest_time_multiplier": 1.0, "complexity_filter": ["Beginner", "Intermediate"], "external_load_filter": ["never", "sometimes", "always"]}
		},
		"intensity_profile_by_layer_and_category": {"default": {"default": "moderate"}},
		"split_muscle_group_mapping": {
			"Push": {"include_muscle_groups": ["chest", "shoulders", "triceps"]},
			"FullBody": {"include_muscle_groups": ["all"]}
		},
		"exercise_count_constraints": {"min_per_block": 1, "max_per_day": 10},
		"equipment_quotas": {"barbell_max_per_day": 1}
	}`
	r, err := rules.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("rules.Parse: %v", err)
	}
	return r
}

func baseQuestionnaire() questionnaire.Questionnaire {
	return questionnaire.Questionnaire{
		Goal:             questionnaire.GoalBuildMuscle,
		Experience:       questionnaire.ExperienceIntermediate,
		TrainingFrequency: 3,
		DurationMinutes:  45,
		EquipmentTokens:  []string{"Barbell", "Bench", "Dumbbell", "Rack"},
		ProgramDuration:  4,
	}
}

func TestDaySelectsRequestedCountAndRespectsExperienceFilter(t *testing.T) {
	cat := testCatalogue(t)
	r := testRules(t)
	q := baseQuestionnaire()
	q.Experience = questionnaire.ExperienceBeginner

	blocks := []dayplan.ResolvedBlock{{Type: "strength", Count: 2}}
	exs, err := Day("Push", blocks, q, r, cat, randgen.NewSeeded(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exs) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(exs))
	}
	for _, e := range exs {
		if e.ExerciseName == "Barbell Row" || e.ExerciseName == "Barbell Bench Press" {
			t.Errorf("beginner filter should exclude Intermediate-difficulty %q", e.ExerciseName)
		}
	}
}

func TestDayEnforcesDayLevelUniqueness(t *testing.T) {
	cat := testCatalogue(t)
	r := testRules(t)
	q := baseQuestionnaire()

	blocks := []dayplan.ResolvedBlock{{Type: "strength", Count: 2}, {Type: "strength", Count: 1}}
	exs, err := Day("Push", blocks, q, r, cat, randgen.NewSeeded(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]bool{}
	for _, e := range exs {
		if seen[e.ExerciseName] {
			t.Fatalf("duplicate exercise %q selected within the same day", e.ExerciseName)
		}
		seen[e.ExerciseName] = true
	}
}

func TestDayExhaustedPoolWhenBlockWantsMoreThanAvailable(t *testing.T) {
	cat := testCatalogue(t)
	r := testRules(t)
	q := baseQuestionnaire()

	blocks := []dayplan.ResolvedBlock{{Type: "cardio", Count: 5}}
	_, err := Day("Push", blocks, q, r, cat, randgen.NewSeeded(1))
	if !apperrors.IsExhaustedPool(err) {
		t.Fatalf("expected exhausted pool error, got %v", err)
	}
}

func TestDeterministicUnderSameSeed(t *testing.T) {
	cat := testCatalogue(t)
	r := testRules(t)
	q := baseQuestionnaire()
	blocks := []dayplan.ResolvedBlock{{Type: "strength", Count: 2}, {Type: "emom", Count: 1}}

	a, err := Day("Push", blocks, q, r, cat, randgen.NewSeeded(99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Day("Push", blocks, q, r, cat, randgen.NewSeeded(99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ExerciseName != b[i].ExerciseName {
			t.Fatalf("exercise %d diverged: %q vs %q", i, a[i].ExerciseName, b[i].ExerciseName)
		}
	}
}

func TestBuildCompoundProducesValidParent(t *testing.T) {
	cat := testCatalogue(t)
	r := testRules(t)
	q := baseQuestionnaire()
	blocks := []dayplan.ResolvedBlock{{Type: "emom", Count: 1}}

	exs, err := Day("Push", blocks, q, r, cat, randgen.NewSeeded(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exs) != 1 {
		t.Fatalf("expected 1 compound exercise, got %d", len(exs))
	}
	parent := exs[0]
	if !parent.IsCompound() {
		t.Fatalf("expected a compound parent")
	}
	if len(parent.SubExercises) < 2 {
		t.Fatalf("expected >= 2 sub-exercises, got %d", len(parent.SubExercises))
	}
	for _, sub := range parent.SubExercises {
		if sub.IsCompound() {
			t.Fatalf("sub-exercise must not itself be compound")
		}
		if sub.ExerciseName == "Barbell Bench Press" || sub.ExerciseName == "Barbell Row" {
			t.Fatalf("emom exclude_equipment=Barbell should have excluded %q", sub.ExerciseName)
		}
	}
	if parent.ProgressionScheme != "density" {
		t.Fatalf("compound parents must use density progression, got %q", parent.ProgressionScheme)
	}
}
