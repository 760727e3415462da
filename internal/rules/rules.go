// Package rules loads and exposes the generation engine's rules document:
// every goal→split, goal→progression, and layer→intensity table the engine
// consults. Nothing in the engine hard-codes these mappings; they are
// lookups into this document, loaded once per process and treated as
// immutable thereafter.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/wabbazzar/shredly/internal/apperrors"
)

// BlockSpec describes one structural slot within a day: a block type and
// how many exercises (or sub-exercises, for compound blocks) it needs.
type BlockSpec struct {
	Type  string `json:"type"`
	Count string `json:"count"` // numeric literal or the sentinel "time_based"
}

// DayStructure is the ordered list of blocks for one (equipment, day_type) pair.
type DayStructure struct {
	Blocks []BlockSpec `json:"blocks"`
}

// CompoundConstruction describes how to build one kind of compound block.
type CompoundConstruction struct {
	BaseConstituentExercises int      `json:"base_constituent_exercises"`
	ExcludeEquipment         []string `json:"exclude_equipment"`
}

// IntensityProfile seeds week-1 parameters for a (category, profile) pair.
type IntensityProfile struct {
	Sets                *float64        `json:"sets"`
	Reps                json.RawMessage `json:"reps"`
	WorkTimeSeconds     *float64 `json:"work_time_seconds"`
	WorkTimeMinutes     *float64 `json:"work_time_minutes"`
	BaseWorkTimeMinutes *float64 `json:"base_work_time_minutes"`
	BaseWorkTimeUnit    string   `json:"base_work_time_unit"`
	BlockTimeMinutes    *float64 `json:"block_time_minutes"`
	RestTimeSeconds     *float64 `json:"rest_time_seconds"`
	RestTimeMinutes     *float64 `json:"rest_time_minutes"`
	WeightDescriptor    string   `json:"weight_descriptor"`
	WeightPercentTM     *float64 `json:"weight_percent_tm"`
	SubWorkMode         string   `json:"sub_work_mode"`
	SubWorkTimeSeconds  *float64 `json:"sub_work_time_seconds"`
	SubRestTimeSeconds  *float64 `json:"sub_rest_time_seconds"`
}

// RepsValue parses the polymorphic reps field: a JSON number (numeric reps,
// scaled by volume_multiplier) or a JSON string literal ("AMRAP", "8-12",
// passed through unchanged). Returns ok=false when reps is absent.
func (p IntensityProfile) RepsValue() (numeric float64, isNumeric bool, literal string, ok bool) {
	if len(p.Reps) == 0 || string(p.Reps) == "null" {
		return 0, false, "", false
	}
	var n float64
	if err := json.Unmarshal(p.Reps, &n); err == nil {
		return n, true, "", true
	}
	var s string
	if err := json.Unmarshal(p.Reps, &s); err == nil {
		return 0, false, s, true
	}
	return 0, false, "", false
}

// WavePattern carries per-week deltas for the wave_loading progression,
// indexed by week number within the pattern (index 0 == week 1, etc).
type WavePattern struct {
	WeightPercentDeltas []float64 `json:"weight_percent_deltas"`
	RepsDeltas          []float64 `json:"reps_deltas"`
}

// ProgressionRules carries every numeric knob a progression scheme needs;
// unused fields are simply left zero for schemes that don't consult them.
type ProgressionRules struct {
	RepsDeltaPerWeek             float64                `json:"reps_delta_per_week"`
	RepsMinimum                  float64                `json:"reps_minimum"`
	WeightPercentDeltaPerWeek    float64                `json:"weight_percent_delta_per_week"`
	RestTimeDeltaPerWeekMinutes  float64                `json:"rest_time_delta_per_week_minutes"`
	RestTimeDeltaPerWeekSeconds  float64                `json:"rest_time_delta_per_week_seconds"`
	RestTimeMinimumMinutes       float64                `json:"rest_time_minimum_minutes"`
	RestTimeMinimumSeconds       float64                `json:"rest_time_minimum_seconds"`
	WorkTimeIncreasePercentTotal float64                `json:"work_time_increase_percent_total"`
	RepsIncreasePercentTotal     float64                `json:"reps_increase_percent_total"`
	IntervalWorkDeltaSeconds     float64                `json:"interval_work_delta_seconds"`
	IntervalRestDeltaSeconds     float64                `json:"interval_rest_delta_seconds"`
	SetsIncreaseEveryNWeeks      int                    `json:"sets_increase_every_n_weeks"`
	SetsMaximum                  float64                `json:"sets_maximum"`
	WavePatterns                 map[string]WavePattern `json:"wave_patterns"`
}

// ExperienceModifier adjusts generation behavior for one experience level.
type ExperienceModifier struct {
	WeightType          string   `json:"weight_type"` // "descriptor" | "percent_tm"
	VolumeMultiplier    float64  `json:"volume_multiplier"`
	RestTimeMultiplier  float64  `json:"rest_time_multiplier"`
	ComplexityFilter    []string `json:"complexity_filter"`
	ExternalLoadFilter  []string `json:"external_load_filter"`
}

func (e ExperienceModifier) allowsDifficulty(d string) bool {
	for _, v := range e.ComplexityFilter {
		if v == d {
			return true
		}
	}
	return false
}

func (e ExperienceModifier) allowsExternalLoad(load string) bool {
	for _, v := range e.ExternalLoadFilter {
		if v == load {
			return true
		}
	}
	return false
}

// AllowsDifficulty reports whether a catalogue difficulty passes this
// experience level's complexity filter.
func (e ExperienceModifier) AllowsDifficulty(d string) bool { return e.allowsDifficulty(d) }

// AllowsExternalLoad reports whether a catalogue external_load value passes
// this experience level's filter.
func (e ExperienceModifier) AllowsExternalLoad(load string) bool { return e.allowsExternalLoad(load) }

// MuscleGroupMapping resolves which muscle groups a focus includes/excludes.
type MuscleGroupMapping struct {
	IncludeMuscleGroups []string `json:"include_muscle_groups"` // ["all"] means no filter
	ExcludeMuscleGroups []string `json:"exclude_muscle_groups"`
}

// IncludesAll reports whether this mapping's include set is the "all" sentinel.
func (m MuscleGroupMapping) IncludesAll() bool {
	return len(m.IncludeMuscleGroups) == 1 && m.IncludeMuscleGroups[0] == "all"
}

// ExerciseCountConstraints bounds how many exercises a single block/day may draw.
type ExerciseCountConstraints struct {
	MinPerBlock int `json:"min_per_block"`
	MaxPerDay   int `json:"max_per_day"`
}

// EquipmentQuotas caps how many exercises of a given equipment a day may use.
type EquipmentQuotas struct {
	BarbellMaxPerDay int `json:"barbell_max_per_day"`
}

// document mirrors the on-disk rules JSON, keyed exactly as the rules
// document's own section names.
type document struct {
	PrescriptiveSplits                  map[string]map[string][]string         `json:"prescriptive_splits"`
	DayStructureByEquipment              map[string]map[string]DayStructure     `json:"day_structure_by_equipment"`
	CompoundExerciseConstruction         map[string]CompoundConstruction        `json:"compound_exercise_construction"`
	IntensityProfiles                   map[string]map[string]IntensityProfile `json:"intensity_profiles"`
	ProgressionSchemes                  map[string]progressionSchemeEntry      `json:"progression_schemes"`
	ProgressionByGoal                   map[string]string                      `json:"progression_by_goal"`
	ExperienceModifiers                 map[string]ExperienceModifier          `json:"experience_modifiers"`
	IntensityProfileByLayerAndCategory  map[string]map[string]string           `json:"intensity_profile_by_layer_and_category"`
	SplitMuscleGroupMapping             map[string]MuscleGroupMapping          `json:"split_muscle_group_mapping"`
	ExerciseCountConstraints            ExerciseCountConstraints               `json:"exercise_count_constraints"`
	EquipmentQuotas                     EquipmentQuotas                        `json:"equipment_quotas"`
	CompoundBlocksByTime                map[string]int                         `json:"compound_blocks_by_time"`
}

// progressionSchemeEntry wraps the numeric rule set under its scheme's
// "rules" key in the on-disk document.
type progressionSchemeEntry struct {
	Rules ProgressionRules `json:"rules"`
}

// Rules is the loaded, immutable rules document.
type Rules struct {
	doc    document
	loadID string
}

// LoadID returns a stable per-load identifier, assigned once when the
// document was parsed. It has no bearing on generation output; it exists
// so operators can tell two in-memory loads of the rules document apart in
// diagnostics.
func (r *Rules) LoadID() string {
	return r.loadID
}

// GetPrescriptiveSplit implements get_prescriptive_split.
func (r *Rules) GetPrescriptiveSplit(goal string, frequency int) ([]string, error) {
	byFreq, ok := r.doc.PrescriptiveSplits[goal]
	if !ok {
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("prescriptive_splits.%s", goal),
			fmt.Sprintf("no prescriptive split configured for goal %q", goal),
		)
	}
	split, ok := byFreq[fmt.Sprintf("%d", frequency)]
	if !ok {
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("prescriptive_splits.%s.%d", goal, frequency),
			fmt.Sprintf("no prescriptive split configured for goal %q at frequency %d", goal, frequency),
		)
	}
	return split, nil
}

// DayStructureFor resolves day_structure_by_equipment[profile][dayType],
// falling back to [profile][standard] when the specific day type is absent.
func (r *Rules) DayStructureFor(profile, dayType string) (DayStructure, error) {
	byProfile, ok := r.doc.DayStructureByEquipment[profile]
	if !ok {
		return DayStructure{}, apperrors.NewConfigurationError(
			fmt.Sprintf("day_structure_by_equipment.%s", profile),
			fmt.Sprintf("no day structure configured for equipment profile %q", profile),
		)
	}
	if ds, ok := byProfile[dayType]; ok {
		return ds, nil
	}
	if ds, ok := byProfile["standard"]; ok {
		return ds, nil
	}
	return DayStructure{}, apperrors.NewConfigurationError(
		fmt.Sprintf("day_structure_by_equipment.%s.%s", profile, dayType),
		fmt.Sprintf("no day structure (nor standard fallback) for profile %q day type %q", profile, dayType),
	)
}

// CompoundBlocksForDuration resolves compound_blocks_by_time[durationMinutes],
// defaulting to 2 when absent.
func (r *Rules) CompoundBlocksForDuration(durationMinutes int) int {
	if n, ok := r.doc.CompoundBlocksByTime[fmt.Sprintf("%d", durationMinutes)]; ok {
		return n
	}
	return 2
}

// CompoundConstructionFor returns the construction rule for a compound kind.
func (r *Rules) CompoundConstructionFor(kind string) (CompoundConstruction, error) {
	cc, ok := r.doc.CompoundExerciseConstruction[kind]
	if !ok {
		return CompoundConstruction{}, apperrors.NewConfigurationError(
			fmt.Sprintf("compound_exercise_construction.%s", kind),
			fmt.Sprintf("no compound construction rule for kind %q", kind),
		)
	}
	return cc, nil
}

// IntensityProfileFor resolves rules.intensity_profiles[category][profile].
func (r *Rules) IntensityProfileFor(category, profile string) (IntensityProfile, error) {
	byCategory, ok := r.doc.IntensityProfiles[category]
	if !ok {
		return IntensityProfile{}, apperrors.NewConfigurationError(
			fmt.Sprintf("intensity_profiles.%s", category),
			fmt.Sprintf("no intensity profiles configured for category %q", category),
		)
	}
	ip, ok := byCategory[profile]
	if !ok {
		return IntensityProfile{}, apperrors.NewConfigurationError(
			fmt.Sprintf("intensity_profiles.%s.%s", category, profile),
			fmt.Sprintf("no intensity profile %q for category %q", profile, category),
		)
	}
	return ip, nil
}

// HasIntensityProfile reports whether (category, profile) resolves without error.
func (r *Rules) HasIntensityProfile(category, profile string) bool {
	byCategory, ok := r.doc.IntensityProfiles[category]
	if !ok {
		return false
	}
	_, ok = byCategory[profile]
	return ok
}

// FirstIntensityProfileFor returns the first available profile name for a
// category, in stable (sorted) order, used as the last-resort fallback in
// sub-exercise recursion.
func (r *Rules) FirstIntensityProfileFor(category string) (string, bool) {
	byCategory, ok := r.doc.IntensityProfiles[category]
	if !ok || len(byCategory) == 0 {
		return "", false
	}
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	// deterministic: smallest lexicographic name wins regardless of map order.
	best := names[0]
	for _, n := range names[1:] {
		if n < best {
			best = n
		}
	}
	return best, true
}

// ProgressionRulesFor returns the rule set for a progression scheme.
func (r *Rules) ProgressionRulesFor(scheme string) (ProgressionRules, error) {
	entry, ok := r.doc.ProgressionSchemes[scheme]
	if !ok {
		return ProgressionRules{}, apperrors.NewConfigurationError(
			fmt.Sprintf("progression_schemes.%s", scheme),
			fmt.Sprintf("no progression scheme configured: %q", scheme),
		)
	}
	return entry.Rules, nil
}

// ProgressionByGoal resolves progression_by_goal[goal].
func (r *Rules) ProgressionByGoal(goal string) (string, error) {
	scheme, ok := r.doc.ProgressionByGoal[goal]
	if !ok {
		return "", apperrors.NewConfigurationError(
			fmt.Sprintf("progression_by_goal.%s", goal),
			fmt.Sprintf("no progression configured for goal %q", goal),
		)
	}
	return scheme, nil
}

// ExperienceModifierFor resolves experience_modifiers[level].
func (r *Rules) ExperienceModifierFor(level string) (ExperienceModifier, error) {
	em, ok := r.doc.ExperienceModifiers[level]
	if !ok {
		return ExperienceModifier{}, apperrors.NewConfigurationError(
			fmt.Sprintf("experience_modifiers.%s", level),
			fmt.Sprintf("no experience modifier configured for level %q", level),
		)
	}
	return em, nil
}

// IntensityProfileByLayer implements assign_intensity_profile's three-step
// fallback: [category][layer] -> [category].default -> [default][layer] -> "moderate".
func (r *Rules) IntensityProfileByLayer(layer, category string) string {
	if byCategory, ok := r.doc.IntensityProfileByLayerAndCategory[category]; ok {
		if p, ok := byCategory[layer]; ok {
			return p
		}
		if p, ok := byCategory["default"]; ok {
			return p
		}
	}
	if byDefault, ok := r.doc.IntensityProfileByLayerAndCategory["default"]; ok {
		if p, ok := byDefault[layer]; ok {
			return p
		}
	}
	return "moderate"
}

// MuscleGroupMappingFor resolves split_muscle_group_mapping[focus].
func (r *Rules) MuscleGroupMappingFor(focus string) (MuscleGroupMapping, bool) {
	m, ok := r.doc.SplitMuscleGroupMapping[focus]
	return m, ok
}

// GetExerciseCountConstraints returns the loaded exercise count constraints.
func (r *Rules) GetExerciseCountConstraints() ExerciseCountConstraints {
	return r.doc.ExerciseCountConstraints
}

// GetEquipmentQuotas returns the loaded equipment quotas.
func (r *Rules) GetEquipmentQuotas() EquipmentQuotas {
	return r.doc.EquipmentQuotas
}

// Load reads and type-checks the rules document from path, which must
// resolve within baseDir.
func Load(path, baseDir string) (*Rules, error) {
	cleanPath, err := resolveWithinDir(path, baseDir)
	if err != nil {
		return nil, apperrors.NewConfigurationError("rules.path", err.Error())
	}

	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, apperrors.NewConfigurationError("rules.path", fmt.Sprintf("cannot read rules file: %v", err))
	}

	return Parse(raw)
}

// Parse type-checks a rules document already read into memory. Load is a
// thin file-reading wrapper around this; tests and embedders that already
// hold the document in memory can call it directly.
func Parse(raw []byte) (*Rules, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewConfigurationError("rules", fmt.Sprintf("cannot parse rules JSON: %v", err))
	}

	r := &Rules{doc: doc, loadID: uuid.New().String()}
	if err := r.typeCheck(); err != nil {
		return nil, err
	}
	return r, nil
}

// typeCheck fails loudly when a top-level required section is entirely
// absent, naming the missing key instead of falling back silently.
func (r *Rules) typeCheck() error {
	required := map[string]bool{
		"prescriptive_splits":                   len(r.doc.PrescriptiveSplits) > 0,
		"day_structure_by_equipment":             len(r.doc.DayStructureByEquipment) > 0,
		"compound_exercise_construction":         len(r.doc.CompoundExerciseConstruction) > 0,
		"intensity_profiles":                     len(r.doc.IntensityProfiles) > 0,
		"progression_schemes":                    len(r.doc.ProgressionSchemes) > 0,
		"progression_by_goal":                    len(r.doc.ProgressionByGoal) > 0,
		"experience_modifiers":                   len(r.doc.ExperienceModifiers) > 0,
		"intensity_profile_by_layer_and_category": len(r.doc.IntensityProfileByLayerAndCategory) > 0,
		"split_muscle_group_mapping":             len(r.doc.SplitMuscleGroupMapping) > 0,
	}
	missing := make([]string, 0)
	for key, present := range required {
		if !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewConfigurationError(strings.Join(missing, ","), "required rules document section(s) missing")
	}
	return nil
}

func resolveWithinDir(path, baseDir string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		clean = filepath.Join(baseDir, clean)
	}
	rel, err := filepath.Rel(baseDir, clean)
	if err != nil || strings.HasPrefix(rel, "..") || strings.HasPrefix(rel, string(filepath.Separator)) {
		return "", fmt.Errorf("file path outside allowed directory: %s", path)
	}
	return clean, nil
}
