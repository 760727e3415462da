// Package questionnaire models the flat input record the generation engine
// consumes: goal, experience, frequency, duration, equipment access, and
// program length.
package questionnaire

import (
	"fmt"
)

type Goal string

const (
	GoalBuildMuscle Goal = "build_muscle"
	GoalTone        Goal = "tone"
	GoalLoseWeight  Goal = "lose_weight"
)

var validGoals = map[Goal]bool{GoalBuildMuscle: true, GoalTone: true, GoalLoseWeight: true}

type Experience string

const (
	ExperienceCompleteBeginner Experience = "complete_beginner"
	ExperienceBeginner         Experience = "beginner"
	ExperienceIntermediate     Experience = "intermediate"
	ExperienceAdvanced         Experience = "advanced"
	ExperienceExpert           Experience = "expert"
)

var validExperience = map[Experience]bool{
	ExperienceCompleteBeginner: true,
	ExperienceBeginner:         true,
	ExperienceIntermediate:     true,
	ExperienceAdvanced:         true,
	ExperienceExpert:           true,
}

type SessionDuration string

const (
	DurationShort  SessionDuration = "short"
	DurationMedium SessionDuration = "medium"
	DurationLong   SessionDuration = "long"
)

// EquipmentProfile is the discrete equipment-access shorthand; callers may
// instead supply a raw equipment token set and derive the profile with
// ProfileFromEquipment.
type EquipmentProfile string

const (
	ProfileFullGym        EquipmentProfile = "full_gym"
	ProfileDumbbellsOnly  EquipmentProfile = "dumbbells_only"
	ProfileBodyweightOnly EquipmentProfile = "bodyweight_only"
)

// ProfileFromEquipment implements equipment_profile_from_array:
// barbell AND rack => full_gym; else dumbbells present => dumbbells_only;
// else bodyweight_only.
func ProfileFromEquipment(tokens []string) EquipmentProfile {
	has := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		has[t] = true
	}
	if has["Barbell"] && has["Rack"] {
		return ProfileFullGym
	}
	if has["Dumbbell"] {
		return ProfileDumbbellsOnly
	}
	return ProfileBodyweightOnly
}

// profileTokens is the default equipment token set a discrete profile
// expands to when a questionnaire supplies a profile with no explicit
// token list. full_gym's set is a superset of dumbbells_only's, which is
// in turn a superset of bodyweight_only's (empty; "None" is always
// available separately via AvailableEquipment).
var profileTokens = map[EquipmentProfile][]string{
	ProfileFullGym:        {"Barbell", "Rack", "Dumbbell", "Bench", "Chair", "Mat"},
	ProfileDumbbellsOnly:  {"Dumbbell", "Bench", "Chair", "Mat"},
	ProfileBodyweightOnly: {},
}

// TokensForProfile returns the default equipment token set a discrete
// profile expands to.
func TokensForProfile(profile EquipmentProfile) []string {
	return profileTokens[profile]
}

// Questionnaire is the flat input record a generation call consumes.
type Questionnaire struct {
	Goal              Goal
	Experience        Experience
	TrainingFrequency int // days per week, 2..7
	DurationMinutes   int
	EquipmentTokens   []string
	EquipmentProfile  EquipmentProfile // empty means derive from EquipmentTokens
	ProgramDuration   int              // weeks; 0 means "use default (12)"
	Seed              *uint32          // nil means unseeded (system random)
}

// Validate checks the questionnaire's enumerated fields and bounds.
func (q Questionnaire) Validate() error {
	if !validGoals[q.Goal] {
		return fmt.Errorf("invalid goal: %q", q.Goal)
	}
	if !validExperience[q.Experience] {
		return fmt.Errorf("invalid experience: %q", q.Experience)
	}
	if q.TrainingFrequency < 2 || q.TrainingFrequency > 7 {
		return fmt.Errorf("training_frequency must be in 2..7, got %d", q.TrainingFrequency)
	}
	if q.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive, got %d", q.DurationMinutes)
	}
	return nil
}

// ResolvedWeeks returns the program's total week count, defaulting to 12
// when ProgramDuration is unset.
func (q Questionnaire) ResolvedWeeks() int {
	switch q.ProgramDuration {
	case 0:
		return 12
	default:
		return q.ProgramDuration
	}
}

// ResolvedProfile returns the questionnaire's discrete equipment profile,
// deriving it from EquipmentTokens via ProfileFromEquipment when the
// questionnaire didn't supply one directly.
func (q Questionnaire) ResolvedProfile() EquipmentProfile {
	if q.EquipmentProfile != "" {
		return q.EquipmentProfile
	}
	return ProfileFromEquipment(q.EquipmentTokens)
}

// ResolvedEquipmentTokens returns the questionnaire's explicit equipment
// tokens when supplied; otherwise it expands the discrete equipment
// profile into its default token set via TokensForProfile.
func (q Questionnaire) ResolvedEquipmentTokens() []string {
	if len(q.EquipmentTokens) > 0 {
		return q.EquipmentTokens
	}
	return TokensForProfile(q.ResolvedProfile())
}

// AvailableEquipment returns a lookup set of the user's equipment tokens
// (explicit tokens, or the resolved profile's default set), with "None"
// always present.
func (q Questionnaire) AvailableEquipment() map[string]bool {
	tokens := q.ResolvedEquipmentTokens()
	set := make(map[string]bool, len(tokens)+1)
	set["None"] = true
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
