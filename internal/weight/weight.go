// Package weight models the weight-prescription tagged variant and the
// resolver that turns a prescription plus a training-max cache into a
// concrete display weight.
package weight

import (
	"fmt"
	"math"
)

// Unit is the unit an absolute weight is expressed in.
type Unit string

const (
	Lbs Unit = "lbs"
	Kg  Unit = "kg"
)

// Kind discriminates which variant a Prescription carries.
type Kind string

const (
	KindQualitative        Kind = "qualitative"
	KindPercentTrainingMax Kind = "percent_training_max"
	KindPercentBodyweight  Kind = "percent_bodyweight"
	KindAbsolute           Kind = "absolute"
)

// Prescription is the tagged variant: exactly one of Qualitative, Percent,
// or Absolute is meaningful, depending on Kind.
type Prescription struct {
	Kind        Kind
	Qualitative string
	Percent     float64
	Absolute    float64
	Unit        Unit
}

func Qualitative(descriptor string) Prescription {
	return Prescription{Kind: KindQualitative, Qualitative: descriptor}
}

func PercentTrainingMax(percent float64) Prescription {
	return Prescription{Kind: KindPercentTrainingMax, Percent: percent}
}

func PercentBodyweight(percent float64) Prescription {
	return Prescription{Kind: KindPercentBodyweight, Percent: percent}
}

func Absolute(value float64, unit Unit) Prescription {
	return Prescription{Kind: KindAbsolute, Absolute: value, Unit: unit}
}

// OneRMSource supplies a user's one-rep-max inputs for training-max
// derivation: an optional manual override and an estimate derived from
// logged history.
type OneRMSource struct {
	Override             float64
	EstimatedFromHistory float64
}

// EffectiveOneRM returns the manual override when set, else the estimate
// from history. A zero override is treated the same as "cleared".
func (s OneRMSource) EffectiveOneRM() float64 {
	if s.Override != 0 {
		return s.Override
	}
	return s.EstimatedFromHistory
}

// TrainingMax derives 0.9 x effective 1RM, the TRM glossary definition.
func (s OneRMSource) TrainingMax() float64 {
	return 0.9 * s.EffectiveOneRM()
}

// Cache maps exercise name to its one-rep-max source.
type Cache map[string]OneRMSource

// Resolve produces a display weight string for exerciseName under
// prescription, consulting cache for training-max derivation.
func Resolve(exerciseName string, prescription Prescription, cache Cache) string {
	switch prescription.Kind {
	case KindQualitative:
		return prescription.Qualitative
	case KindPercentTrainingMax:
		trm := cache[exerciseName].TrainingMax()
		if trm > 0 {
			return fmt.Sprintf("%.0f", roundToNearest5(trm*prescription.Percent/100))
		}
		return fmt.Sprintf("%g%%", prescription.Percent)
	case KindPercentBodyweight:
		return fmt.Sprintf("%g%% bodyweight", prescription.Percent)
	case KindAbsolute:
		return fmt.Sprintf("%g %s", prescription.Absolute, prescription.Unit)
	default:
		return ""
	}
}

func roundToNearest5(v float64) float64 {
	return math.Round(v/5) * 5
}
