package parameterizer

import (
	"testing"

	"github.com/wabbazzar/shredly/internal/catalogue"
	"github.com/wabbazzar/shredly/internal/metadata"
	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/structural"
	"github.com/wabbazzar/shredly/internal/weekparams"
)

func testMetadata(cat *catalogue.Catalogue) *metadata.Service {
	ms := metadata.NewService(cat)
	ms.WarmAll()
	return ms
}

func testCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	raw := `{"exercise_database": {"categories": {
		"strength": {"exercises": {
			"Barbell Squat": {"category": "strength", "muscle_groups": ["legs"], "equipment": ["Barbell","Rack"], "difficulty": "Intermediate", "external_load": "always", "isometric": false, "typical_sets": 4, "typical_reps": "6-8"}
		}},
		"bodyweight": {"exercises": {
			"Push-up": {"category": "bodyweight", "muscle_groups": ["chest"], "equipment": ["None"], "difficulty": "Beginner", "external_load": "sometimes", "isometric": false, "typical_sets": 3, "typical_reps": "10-15"},
			"Mountain Climbers": {"category": "bodyweight", "muscle_groups": ["full_body"], "equipment": ["None"], "difficulty": "Beginner", "external_load": "never", "isometric": false, "typical_sets": 3, "typical_reps": "20"}
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
		"compound_exercise_construction": {"emom": {"base_constituent_exercises": 2, "exclude_equipment": []}},
		"intensity_profiles": {
			"strength": {"moderate": {"sets": 4, "reps": 8, "rest_time_seconds": 90, "weight_descriptor": "moderate"}},
			"bodyweight": {"moderate": {"sets": 3, "reps": "10-15", "rest_time_seconds": 60}},
			"emom": {"moderate": {"block_time_minutes": 10, "sub_work_mode": "time", "sub_work_time_seconds": 40, "sub_rest_time_seconds": 20}}
		},
		"progression_schemes": {
			"linear": {"rules": {"reps_delta_per_week": 1, "reps_minimum": 5, "weight_percent_delta_per_week": 2.5, "rest_time_delta_per_week_seconds": 5, "rest_time_minimum_seconds": 30}},
			"density": {"rules": {"work_time_increase_percent_total": 20, "interval_work_delta_seconds": 5, "interval_rest_delta_seconds": -2}}
		},
		"progression_by_goal": {"build_muscle": "linear"},
		"experience_modifiers": {
			"intermediate": {"weight_type": "descriptor", "volume_multiplier": 1.0, "rest_time_multiplier": 1.0, "complexity_filter": ["Beginner", "Intermediate"], "external_load_filter": ["never", "sometimes", "always"]}
		},
		"intensity_profile_by_layer_and_category": {"default": {"default": "moderate"}},
		"split_muscle_group_mapping": {"Push": {"include_muscle_groups": ["chest"]}},
		"exercise_count_constraints": {"min_per_block": 1, "max_per_day": 10},
		"equipment_quotas": {"barbell_max_per_day": 1}
	}`
	r, err := rules.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("rules.Parse: %v", err)
	}
	return r
}

func intermediateModifier(t *testing.T, r *rules.Rules) rules.ExperienceModifier {
	t.Helper()
	em, err := r.ExperienceModifierFor("intermediate")
	if err != nil {
		t.Fatalf("ExperienceModifierFor: %v", err)
	}
	return em
}

func TestParameterizeLeafProjectsAllWeeks(t *testing.T) {
	cat := testCatalogue(t)
	r := testRules(t)
	em := intermediateModifier(t, r)

	leaf := structural.NewLeaf("Barbell Squat", "linear", "moderate")
	ms := testMetadata(cat)
	out, err := Parameterize(leaf, cat, 6, r, em, ms)
	if err != nil {
		t.Fatalf("Parameterize: %v", err)
	}
	if len(out.Weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(out.Weeks))
	}
	w1 := out.Weeks[0]
	if w1.Shape() != weekparams.ShapeStrengthSet {
		t.Fatalf("expected strength_set shape, got %s", w1.Shape())
	}
	if w1.Sets == nil || *w1.Sets != 4 {
		t.Fatalf("expected 4 sets in week 1, got %v", w1.Sets)
	}
	if w1.Reps == nil || !w1.Reps.IsNumeric || w1.Reps.Numeric != 8 {
		t.Fatalf("expected 8 reps in week 1, got %v", w1.Reps)
	}
	if w1.Weight == nil {
		t.Fatalf("expected a weight prescription on week 1")
	}

	w6 := out.Weeks[5]
	if w6.Reps.Numeric >= w1.Reps.Numeric {
		t.Fatalf("expected reps to decrease under linear progression: week1=%v week6=%v", w1.Reps.Numeric, w6.Reps.Numeric)
	}
}

func TestParameterizeCompoundParentCarriesNoWeightOrReps(t *testing.T) {
	cat := testCatalogue(t)
	r := testRules(t)
	em := intermediateModifier(t, r)

	subs := []structural.Exercise{
		structural.NewLeaf("Push-up", "", ""),
		structural.NewLeaf("Mountain Climbers", "", ""),
	}
	parent, err := structural.NewCompound("EMOM: Push-up + Mountain Climbers", "emom", "density", "moderate", subs)
	if err != nil {
		t.Fatalf("NewCompound: %v", err)
	}

	ms := testMetadata(cat)
	out, err := Parameterize(parent, cat, 4, r, em, ms)
	if err != nil {
		t.Fatalf("Parameterize: %v", err)
	}
	if len(out.SubExercises) != 2 {
		t.Fatalf("expected 2 sub-exercises, got %d", len(out.SubExercises))
	}
	for _, week := range out.Weeks {
		if week.Shape() != weekparams.ShapeCompoundParent {
			t.Fatalf("expected compound_parent shape, got %s", week.Shape())
		}
		if week.Weight != nil {
			t.Fatalf("compound parent must never carry a weight prescription")
		}
		if week.Reps != nil {
			t.Fatalf("compound parent must never carry reps")
		}
	}

	for _, sub := range out.SubExercises {
		w1 := sub.Weeks[0]
		if w1.Shape() != weekparams.ShapeInterval {
			t.Fatalf("expected sub to use the interval shape under sub_work_mode=time, got %s", w1.Shape())
		}
		if w1.WorkTime == nil || w1.WorkTime.Value != 40 {
			t.Fatalf("expected sub work_time of 40s, got %v", w1.WorkTime)
		}
		if w1.RestTime == nil || w1.RestTime.Value != 20 {
			t.Fatalf("expected sub rest_time of 20s, got %v", w1.RestTime)
		}
		if w1.Sets != nil {
			t.Fatalf("sub-exercises must never carry their own sets")
		}
	}
}

func TestParameterizeDeterministic(t *testing.T) {
	cat := testCatalogue(t)
	r := testRules(t)
	em := intermediateModifier(t, r)

	leaf := structural.NewLeaf("Barbell Squat", "linear", "moderate")
	ms := testMetadata(cat)
	a, err := Parameterize(leaf, cat, 8, r, em, ms)
	if err != nil {
		t.Fatalf("Parameterize: %v", err)
	}
	b, err := Parameterize(leaf, cat, 8, r, em, ms)
	if err != nil {
		t.Fatalf("Parameterize: %v", err)
	}
	for i := range a.Weeks {
		if a.Weeks[i].Reps.Numeric != b.Weeks[i].Reps.Numeric {
			t.Fatalf("week %d diverged across identical runs", i)
		}
	}
}
