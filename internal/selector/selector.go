// Package selector implements Phase 1's exercise selector: for each
// block in a day's structure, it samples exercises from the filtered
// catalogue and, for compound blocks, constructs a parent from ≥2
// constituent sub-exercises. Selection order is driven entirely by the
// seeded random source so that identical (inputs, seed) reproduce
// identical output.
package selector

import (
	"fmt"
	"strings"

	"github.com/wabbazzar/shredly/internal/apperrors"
	"github.com/wabbazzar/shredly/internal/catalogue"
	"github.com/wabbazzar/shredly/internal/dayplan"
	"github.com/wabbazzar/shredly/internal/questionnaire"
	"github.com/wabbazzar/shredly/internal/randgen"
	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/structural"
)

// compoundRotation is the fixed order a day's "compound" blocks rotate
// through when the block type doesn't already name a specific kind.
var compoundRotation = []string{"emom", "amrap", "circuit", "interval"}

var compoundKinds = map[string]bool{"emom": true, "amrap": true, "circuit": true, "interval": true}

// layerNames is the ordered position->layer mapping the glossary describes:
// first, primary, secondary, tertiary, finisher, then "last" for anything
// beyond.
var layerNames = []string{"first", "primary", "secondary", "tertiary", "finisher"}

func layerForIndex(i int) string {
	if i < len(layerNames) {
		return layerNames[i]
	}
	return "last"
}

// allowedCategories returns the catalogue categories a given block type
// may draw from.
func allowedCategories(blockType string) (map[catalogue.Category]bool, error) {
	switch blockType {
	case "strength":
		return map[catalogue.Category]bool{catalogue.CategoryStrength: true, catalogue.CategoryBodyweight: true}, nil
	case "bodyweight":
		return map[catalogue.Category]bool{catalogue.CategoryBodyweight: true}, nil
	case "mobility":
		return map[catalogue.Category]bool{catalogue.CategoryMobility: true, catalogue.CategoryFlexibility: true}, nil
	case "cardio":
		return map[catalogue.Category]bool{catalogue.CategoryCardio: true}, nil
	default:
		return nil, fmt.Errorf("selector: unrecognized block type %q", blockType)
	}
}

// compoundConstituentCategories is the fixed individual-category pool
// compound constituents are drawn from: never bodyweight, never
// another compound.
var compoundConstituentCategories = map[catalogue.Category]bool{
	catalogue.CategoryStrength:    true,
	catalogue.CategoryMobility:    true,
	catalogue.CategoryFlexibility: true,
	catalogue.CategoryCardio:      true,
}

// normalize implements near-duplicate rejection: lowercase, strip
// everything but letters and digits.
func normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// daySelection carries the mutable per-day state threaded through block
// selection: names already chosen, for day-level uniqueness, and the
// running barbell-equipment count.
type daySelection struct {
	chosen       map[string]bool
	barbellCount int
}

func (d *daySelection) hasBarbell(ex catalogue.Exercise) bool {
	for _, eq := range ex.Equipment {
		if eq == "Barbell" {
			return true
		}
	}
	return false
}

func (d *daySelection) accept(ex catalogue.Exercise, quota rules.EquipmentQuotas) bool {
	norm := normalize(ex.Name)
	if d.chosen[norm] {
		return false
	}
	if d.hasBarbell(ex) && quota.BarbellMaxPerDay > 0 && d.barbellCount >= quota.BarbellMaxPerDay {
		return false
	}
	return true
}

func (d *daySelection) commit(ex catalogue.Exercise) {
	d.chosen[normalize(ex.Name)] = true
	if d.hasBarbell(ex) {
		d.barbellCount++
	}
}

// filterCandidates narrows the catalogue to exercises matching category,
// muscle-group mapping, experience modifiers, and equipment availability,
// excluding any equipment token in excludeEquipment on top of the day's own
// equipment-satisfaction check. excludeEquipment is used by compound
// construction's exclude_equipment rule.
func filterCandidates(
	cat *catalogue.Catalogue,
	cats map[catalogue.Category]bool,
	mapping rules.MuscleGroupMapping,
	hasMapping bool,
	em rules.ExperienceModifier,
	available map[string]bool,
	excludeEquipment map[string]bool,
) []catalogue.Exercise {
	out := make([]catalogue.Exercise, 0)
	for _, ex := range cat.All() {
		if !cats[ex.Category] {
			continue
		}
		if hasMapping && !mapping.IncludesAll() {
			if !groupsIntersect(ex.MuscleGroups, mapping.IncludeMuscleGroups) {
				continue
			}
		}
		if hasMapping && groupsIntersect(ex.MuscleGroups, mapping.ExcludeMuscleGroups) {
			continue
		}
		if !em.AllowsDifficulty(string(ex.Difficulty)) {
			continue
		}
		if !em.AllowsExternalLoad(string(ex.ExternalLoad)) {
			continue
		}
		if !ex.EquipmentSatisfiedBy(available) {
			continue
		}
		if len(excludeEquipment) > 0 && equipmentIntersects(ex.Equipment, excludeEquipment) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func groupsIntersect(have, want []string) bool {
	if len(want) == 0 {
		return false
	}
	set := make(map[string]bool, len(want))
	for _, w := range want {
		set[w] = true
	}
	for _, h := range have {
		if set[h] {
			return true
		}
	}
	return false
}

func equipmentIntersects(have []string, exclude map[string]bool) bool {
	for _, h := range have {
		if exclude[h] {
			return true
		}
	}
	return false
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// Day selects structural exercises for one day's block list. blocks is
// the resolved block list from dayplan.BuildDayStructure.
func Day(
	focus string,
	blocks []dayplan.ResolvedBlock,
	q questionnaire.Questionnaire,
	r *rules.Rules,
	cat *catalogue.Catalogue,
	rng *randgen.Source,
) ([]structural.Exercise, error) {
	muscleKey := dayplan.MuscleGroupLookupKey(focus)
	mapping, hasMapping := r.MuscleGroupMappingFor(muscleKey)

	em, err := r.ExperienceModifierFor(string(q.Experience))
	if err != nil {
		return nil, err
	}

	available := q.AvailableEquipment()
	quotas := r.GetEquipmentQuotas()
	sel := &daySelection{chosen: make(map[string]bool)}

	exercises := make([]structural.Exercise, 0)
	rotationIdx := 0

	for _, block := range blocks {
		if block.Count <= 0 {
			continue
		}

		if block.Type == "compound" || compoundKinds[block.Type] {
			kind := block.Type
			if kind == "compound" {
				kind = compoundRotation[rotationIdx%len(compoundRotation)]
				rotationIdx++
			}
			for i := 0; i < block.Count; i++ {
				layer := layerForIndex(len(exercises))
				ex, err := buildCompound(kind, layer, muscleKey, mapping, hasMapping, em, available, quotas, cat, sel, rng, r)
				if err != nil {
					return nil, err
				}
				exercises = append(exercises, ex)
			}
			continue
		}

		cats, err := allowedCategories(block.Type)
		if err != nil {
			return nil, err
		}
		picked, err := selectIndividual(focus, block.Type, cats, mapping, hasMapping, em, available, quotas, cat, sel, rng, block.Count)
		if err != nil {
			return nil, err
		}
		for _, p := range picked {
			layer := layerForIndex(len(exercises))
			scheme, err := dayplan.ProgressionFromGoal(string(q.Goal), string(p.Category), r)
			if err != nil {
				return nil, err
			}
			profile := dayplan.AssignIntensityProfile(layer, string(p.Category), r)
			exercises = append(exercises, structural.NewLeaf(p.Name, scheme, profile))
		}
	}

	return exercises, nil
}

func selectIndividual(
	focus, blockType string,
	cats map[catalogue.Category]bool,
	mapping rules.MuscleGroupMapping,
	hasMapping bool,
	em rules.ExperienceModifier,
	available map[string]bool,
	quotas rules.EquipmentQuotas,
	cat *catalogue.Catalogue,
	sel *daySelection,
	rng *randgen.Source,
	count int,
) ([]catalogue.Exercise, error) {
	candidates := filterCandidates(cat, cats, mapping, hasMapping, em, available, nil)
	randgen.Shuffle(rng, candidates)

	picked := make([]catalogue.Exercise, 0, count)
	for _, c := range candidates {
		if len(picked) >= count {
			break
		}
		if !sel.accept(c, quotas) {
			continue
		}
		picked = append(picked, c)
		sel.commit(c)
	}

	if len(picked) < count {
		return nil, apperrors.NewExhaustedPoolError(focus, blockType, len(candidates), count, "category,muscle_group,difficulty,external_load,equipment,uniqueness,quota")
	}
	return picked, nil
}

// buildCompound constructs one compound block: pick the constituents,
// synthesize the parent's exercise name, and assign the fixed "density"
// progression scheme. Compound parents never use any other scheme.
func buildCompound(
	kind, layer, muscleKey string,
	mapping rules.MuscleGroupMapping,
	hasMapping bool,
	em rules.ExperienceModifier,
	available map[string]bool,
	quotas rules.EquipmentQuotas,
	cat *catalogue.Catalogue,
	sel *daySelection,
	rng *randgen.Source,
	r *rules.Rules,
) (structural.Exercise, error) {
	cc, err := r.CompoundConstructionFor(kind)
	if err != nil {
		return structural.Exercise{}, err
	}

	candidates := filterCandidates(cat, compoundConstituentCategories, mapping, hasMapping, em, available, toSet(cc.ExcludeEquipment))
	randgen.Shuffle(rng, candidates)

	need := cc.BaseConstituentExercises
	picked := make([]catalogue.Exercise, 0, need)
	for _, c := range candidates {
		if len(picked) >= need {
			break
		}
		if !sel.accept(c, quotas) {
			continue
		}
		picked = append(picked, c)
		sel.commit(c)
	}

	if len(picked) < 2 {
		return structural.Exercise{}, apperrors.NewInsufficientConstituentsError(kind, len(picked), 2)
	}

	subs := make([]structural.Exercise, 0, len(picked))
	names := make([]string, 0, len(picked))
	for _, p := range picked {
		subs = append(subs, structural.NewLeaf(p.Name, "", ""))
		names = append(names, p.Name)
	}

	parentName := fmt.Sprintf("%s: %s", strings.ToUpper(kind), strings.Join(names, " + "))
	profile := dayplan.AssignIntensityProfile(layer, kind, r)

	return structural.NewCompound(parentName, kind, "density", profile, subs)
}
