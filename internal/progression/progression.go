// Package progression provides the polymorphic progression-scheme strategy:
// an interface plus a factory registry, mirroring the engine's standard
// pattern for swappable policy implementations (extend by registering a new
// Scheme, never by modifying the dispatcher). Each scheme is a pure
// function of week-1 parameters to week-k parameters; there is no shared
// state and no I/O.
package progression

import (
	"fmt"

	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/weekparams"
)

// SchemeType identifies a progression strategy. Uses string constants so
// the same token can be read directly out of the rules document and a
// structural exercise's progression_scheme field.
type SchemeType string

const (
	Linear      SchemeType = "linear"
	Density     SchemeType = "density"
	WaveLoading SchemeType = "wave_loading"
	Volume      SchemeType = "volume"
	Static      SchemeType = "static"
)

// ValidSchemeTypes contains every scheme type the factory can construct.
var ValidSchemeTypes = map[SchemeType]bool{
	Linear:      true,
	Density:     true,
	WaveLoading: true,
	Volume:      true,
	Static:      true,
}

// ExerciseContext carries the recursion state a scheme needs beyond the
// rules document: whether this week belongs to a compound parent or an
// interval sub-exercise (special cases), and the program's total
// week count (progression deltas are often expressed as a total spread
// over weeks 2..N).
type ExerciseContext struct {
	IsCompoundParent bool
	IsIntervalSub    bool
	TotalWeeks       int
}

// Scheme turns week-1 parameters into week-k parameters for k in 2..N.
type Scheme interface {
	Type() SchemeType
	Apply(week1 weekparams.Week, weekIndex int, prules rules.ProgressionRules, ctx ExerciseContext) (weekparams.Week, error)
}

// Factory constructs registered Scheme implementations by type.
type Factory struct {
	schemes map[SchemeType]Scheme
}

// NewFactory returns an empty Factory.
func NewFactory() *Factory {
	return &Factory{schemes: make(map[SchemeType]Scheme)}
}

// Register adds a Scheme implementation under its own Type().
func (f *Factory) Register(scheme Scheme) {
	f.schemes[scheme.Type()] = scheme
}

// Create returns the registered Scheme for schemeType.
func (f *Factory) Create(schemeType SchemeType) (Scheme, error) {
	s, ok := f.schemes[schemeType]
	if !ok {
		return nil, fmt.Errorf("progression scheme not registered: %s", schemeType)
	}
	return s, nil
}

// IsRegistered reports whether schemeType has a registered implementation.
func (f *Factory) IsRegistered(schemeType SchemeType) bool {
	_, ok := f.schemes[schemeType]
	return ok
}

// DefaultFactory returns a Factory with all five built-in schemes registered.
func DefaultFactory() *Factory {
	f := NewFactory()
	f.Register(LinearScheme{})
	f.Register(DensityScheme{})
	f.Register(WaveLoadingScheme{})
	f.Register(VolumeScheme{})
	f.Register(StaticScheme{})
	return f
}

// applyRestDelta implements the unit-aware rest-time delta/minimum/rounding
// logic shared by linear and density progressions.
func applyRestDelta(rt weekparams.TimeValue, prules rules.ProgressionRules, steps int) weekparams.TimeValue {
	switch rt.Unit {
	case weekparams.Minutes:
		v := rt.Value - prules.RestTimeDeltaPerWeekMinutes*float64(steps)
		if v < prules.RestTimeMinimumMinutes {
			v = prules.RestTimeMinimumMinutes
		}
		return weekparams.TimeValue{Value: v, Unit: weekparams.Minutes}.Round()
	case weekparams.Seconds:
		v := rt.Value - prules.RestTimeDeltaPerWeekSeconds*float64(steps)
		if v < prules.RestTimeMinimumSeconds {
			v = prules.RestTimeMinimumSeconds
		}
		return weekparams.TimeValue{Value: v, Unit: weekparams.Seconds}.Round()
	default:
		return rt
	}
}
