// Package dayplan implements Phase 1's day-structure half: mapping
// (goal, frequency) to a split of day focuses, parsing a focus's intensity
// suffix, and resolving the ordered block list a day's exercise selector
// must fill. Every decision here is a rules-document lookup; nothing maps
// goal, focus, or category to a hard-coded table in source.
package dayplan

import (
	"strconv"
	"strings"

	"github.com/wabbazzar/shredly/internal/questionnaire"
	"github.com/wabbazzar/shredly/internal/rules"
)

// Suffix is the intensity/emphasis modifier a focus string may carry.
type Suffix string

const (
	SuffixNone     Suffix = ""
	SuffixHIIT     Suffix = "-HIIT"
	SuffixVolume   Suffix = "-Volume"
	SuffixStrength Suffix = "-Strength"
	SuffixMobility Suffix = "-Mobility"
)

var suffixes = []Suffix{SuffixHIIT, SuffixVolume, SuffixStrength, SuffixMobility}

// ParseFocus splits a focus string like "Upper-HIIT" into its base
// ("Upper") and optional suffix.
func ParseFocus(focus string) (base string, suffix Suffix) {
	for _, s := range suffixes {
		if strings.HasSuffix(focus, string(s)) {
			return strings.TrimSuffix(focus, string(s)), s
		}
	}
	return focus, SuffixNone
}

// DayType maps a focus suffix to the day_structure_by_equipment key it
// selects.
func DayType(suffix Suffix) string {
	switch suffix {
	case SuffixHIIT:
		return "hiit"
	case SuffixVolume:
		return "volume"
	case SuffixStrength:
		return "strength"
	case SuffixMobility:
		return "mobility"
	default:
		return "standard"
	}
}

// MuscleGroupLookupKey resolves the key used against
// split_muscle_group_mapping for a given focus's base. "Flexibility" and
// "FullBody-Mobility" both map to "Mobility" for this lookup.
func MuscleGroupLookupKey(focus string) string {
	base, _ := ParseFocus(focus)
	if focus == "Flexibility" || focus == "FullBody-Mobility" {
		return "Mobility"
	}
	return base
}

// ResolvedBlock is a BlockSpec with its count resolved to a concrete
// integer: the "time_based" sentinel has been substituted via
// compound_blocks_by_time.
type ResolvedBlock struct {
	Type  string
	Count int
}

// flexibilityBlocks is the unconditional structure for a "Flexibility"
// focus day: 3 mobility exercises followed by 1 compound block.
var flexibilityBlocks = []ResolvedBlock{
	{Type: "mobility", Count: 3},
	{Type: "compound", Count: 1},
}

// BuildDayStructure implements build_day_structure: resolve the
// ordered block list for a focus, equipment profile, and session duration.
func BuildDayStructure(focus string, profile questionnaire.EquipmentProfile, durationMinutes int, r *rules.Rules) ([]ResolvedBlock, error) {
	if focus == "Flexibility" {
		out := make([]ResolvedBlock, len(flexibilityBlocks))
		copy(out, flexibilityBlocks)
		return out, nil
	}

	_, suffix := ParseFocus(focus)
	dayType := DayType(suffix)

	structure, err := r.DayStructureFor(string(profile), dayType)
	if err != nil {
		return nil, err
	}

	resolved := make([]ResolvedBlock, 0, len(structure.Blocks))
	for _, b := range structure.Blocks {
		count := resolveCount(b.Count, durationMinutes, r)
		resolved = append(resolved, ResolvedBlock{Type: b.Type, Count: count})
	}
	return resolved, nil
}

func resolveCount(raw string, durationMinutes int, r *rules.Rules) int {
	if raw == "time_based" {
		return r.CompoundBlocksForDuration(durationMinutes)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// AssignIntensityProfile implements assign_intensity_profile: a thin
// alias over the rules document's own three-step fallback, kept here so
// Phase 1 callers have a single, spec-named entry point.
func AssignIntensityProfile(layer, category string, r *rules.Rules) string {
	return r.IntensityProfileByLayer(layer, category)
}

// ProgressionFromGoal implements progression_from_goal:
// mobility/flexibility/cardio categories always progress statically;
// everything else follows the rules document's goal mapping.
func ProgressionFromGoal(goal, category string, r *rules.Rules) (string, error) {
	switch category {
	case "mobility", "flexibility", "cardio":
		return "static", nil
	}
	return r.ProgressionByGoal(goal)
}
