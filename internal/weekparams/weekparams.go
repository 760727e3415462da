// Package weekparams models one week's concrete parameters for a single
// exercise: a struct of optional fields with a discriminated WeekShape
// accessor, so the mutual-exclusion invariant between set_blocks and flat
// sets/reps is checkable rather than merely documented.
package weekparams

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/wabbazzar/shredly/internal/weight"
)

// TimeUnit is the unit a TimeValue is expressed in.
type TimeUnit string

const (
	Seconds TimeUnit = "seconds"
	Minutes TimeUnit = "minutes"
)

// TimeValue is a unit-bearing duration. Arithmetic and rounding on
// TimeValue must stay unit-aware; never store a naked number and infer the
// unit from context.
type TimeValue struct {
	Value float64
	Unit  TimeUnit
}

// Round applies the rounding invariants per unit: seconds round to the
// nearest 5, minutes round to the nearest half (once over a minute).
func (t TimeValue) Round() TimeValue {
	switch t.Unit {
	case Seconds:
		return TimeValue{Value: math.Round(t.Value/5) * 5, Unit: Seconds}
	case Minutes:
		if t.Value > 1 {
			return TimeValue{Value: math.Round(t.Value*2) / 2, Unit: Minutes}
		}
		return t
	default:
		return t
	}
}

// Add returns a new TimeValue with delta (expressed in the same unit) added.
func (t TimeValue) Add(delta float64) TimeValue {
	return TimeValue{Value: t.Value + delta, Unit: t.Unit}
}

// ClampMin returns t clamped to be no smaller than min (same unit).
func (t TimeValue) ClampMin(min float64) TimeValue {
	if t.Value < min {
		return TimeValue{Value: min, Unit: t.Unit}
	}
	return t
}

// Reps is either a numeric rep count or a string literal ("AMRAP", "8-12").
type Reps struct {
	Numeric   float64
	IsNumeric bool
	Literal   string
}

func NumericReps(n float64) Reps { return Reps{Numeric: n, IsNumeric: true} }
func LiteralReps(s string) Reps  { return Reps{Literal: s} }

// Shape discriminates which concrete field set a Week carries. Exactly one
// of SetBlocks or (Sets/Reps) may be populated; Shape makes that explicit
// rather than leaving it to convention.
type Shape string

const (
	ShapeStrengthSet    Shape = "strength_set"    // sets + reps (+ optional weight)
	ShapeTimed          Shape = "timed"           // work_time (+ rest_time), no reps
	ShapeCompoundParent Shape = "compound_parent"  // no reps/weight of its own; sets (rounds) or work_time only
	ShapeInterval       Shape = "interval"         // work_time + rest_time, no reps, no sets
	ShapeSetBlocks      Shape = "set_blocks"       // set_blocks only
)

// SetBlock is one block within a set_blocks week (reserved shape; the
// generator never emits these today, but the validator must recognize the
// shape per mutual-exclusion check).
type SetBlock struct {
	Sets int
	Reps Reps
}

// Week is one week's concrete parameters for a single exercise or
// sub-exercise. Only the fields relevant to its Shape are populated.
type Week struct {
	shape Shape

	Sets     *int
	Reps     *Reps
	WorkTime *TimeValue
	RestTime *TimeValue
	Weight   *weight.Prescription
	Tempo    string
	SetBlocks []SetBlock
}

// Shape reports which discriminated shape this week carries.
func (w Week) Shape() Shape { return w.shape }

// NewStrengthSet builds a flat sets/reps week.
func NewStrengthSet(sets int, reps Reps) Week {
	return Week{shape: ShapeStrengthSet, Sets: &sets, Reps: &reps}
}

// NewTimed builds a work_time(+rest_time) week with no reps.
func NewTimed(sets *int, workTime TimeValue, restTime *TimeValue) Week {
	return Week{shape: ShapeTimed, Sets: sets, WorkTime: &workTime, RestTime: restTime}
}

// NewCompoundParent builds a parent week carrying no reps/weight of its
// own (those live on sub_exercises); an interval-kind parent carries only
// sets (rounds), while emom/amrap/circuit parents carry only work_time;
// callers pass nil for whichever does not apply.
func NewCompoundParent(sets *int, workTime *TimeValue) Week {
	return Week{shape: ShapeCompoundParent, Sets: sets, WorkTime: workTime}
}

// NewInterval builds an interval sub-exercise week: work_time + rest_time, no reps.
func NewInterval(workTime, restTime TimeValue) Week {
	return Week{shape: ShapeInterval, WorkTime: &workTime, RestTime: &restTime}
}

// NewSetBlocks builds a set_blocks week.
func NewSetBlocks(blocks []SetBlock) Week {
	return Week{shape: ShapeSetBlocks, SetBlocks: blocks}
}

// WithWeight returns a copy of w carrying the given weight prescription.
func (w Week) WithWeight(p weight.Prescription) Week {
	w.Weight = &p
	return w
}

// WithRestTime returns a copy of w carrying the given rest time. Rest time
// is an independently optional field layered on top of whichever primary
// shape a week carries.
func (w Week) WithRestTime(rt TimeValue) Week {
	w.RestTime = &rt
	return w
}

// WithTempo returns a copy of w carrying the given tempo annotation.
func (w Week) WithTempo(tempo string) Week {
	w.Tempo = tempo
	return w
}

var (
	// ErrSetBlocksConflict reports set_blocks coexisting with flat sets/reps.
	ErrSetBlocksConflict = errors.New("set_blocks and flat sets/reps are mutually exclusive")
	// ErrNoLeafContent reports a leaf week with none of reps/work_time/set_blocks.
	ErrNoLeafContent = errors.New("week has none of reps, work_time, or set_blocks")
)

// CheckMutualExclusion enforces (set_blocks defined) XOR
// (sets or reps defined).
func (w Week) CheckMutualExclusion() error {
	hasSetBlocks := len(w.SetBlocks) > 0
	hasFlat := w.Sets != nil || w.Reps != nil
	if hasSetBlocks && hasFlat {
		return ErrSetBlocksConflict
	}
	return nil
}

// CheckLeafContent enforces "at least one of reps, work_time, or
// set_blocks present on leaf exercises".
func (w Week) CheckLeafContent() error {
	if w.Reps != nil || w.WorkTime != nil || len(w.SetBlocks) > 0 {
		return nil
	}
	return ErrNoLeafContent
}

func (r Reps) String() string {
	if r.IsNumeric {
		return fmt.Sprintf("%g", r.Numeric)
	}
	return r.Literal
}

// MarshalJSON renders numeric reps as a JSON number and literal reps
// ("AMRAP", "8-12") as a JSON string, mirroring the polymorphic shape the
// rules document itself uses for reps.
func (r Reps) MarshalJSON() ([]byte, error) {
	if r.IsNumeric {
		return json.Marshal(r.Numeric)
	}
	return json.Marshal(r.Literal)
}

func (r *Reps) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = NumericReps(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("weekparams: reps is neither a number nor a string: %s", data)
	}
	*r = LiteralReps(s)
	return nil
}

// weekJSON is Week's on-the-wire shape: shape is carried explicitly since
// it is otherwise unexported, and every other field uses omitempty so only
// the fields meaningful to that shape are written ("open-ended
// record" semantics).
type weekJSON struct {
	Shape     Shape                `json:"shape"`
	Sets      *int                 `json:"sets,omitempty"`
	Reps      *Reps                `json:"reps,omitempty"`
	WorkTime  *TimeValue           `json:"work_time,omitempty"`
	RestTime  *TimeValue           `json:"rest_time,omitempty"`
	Weight    *weight.Prescription `json:"weight,omitempty"`
	Tempo     string               `json:"tempo,omitempty"`
	SetBlocks []SetBlock           `json:"set_blocks,omitempty"`
}

// MarshalJSON renders w as its shape tag plus only the populated fields.
func (w Week) MarshalJSON() ([]byte, error) {
	return json.Marshal(weekJSON{
		Shape:     w.shape,
		Sets:      w.Sets,
		Reps:      w.Reps,
		WorkTime:  w.WorkTime,
		RestTime:  w.RestTime,
		Weight:    w.Weight,
		Tempo:     w.Tempo,
		SetBlocks: w.SetBlocks,
	})
}

// UnmarshalJSON restores a Week from its shape-tagged wire form.
func (w *Week) UnmarshalJSON(data []byte) error {
	var wj weekJSON
	if err := json.Unmarshal(data, &wj); err != nil {
		return err
	}
	*w = Week{
		shape:     wj.Shape,
		Sets:      wj.Sets,
		Reps:      wj.Reps,
		WorkTime:  wj.WorkTime,
		RestTime:  wj.RestTime,
		Weight:    wj.Weight,
		Tempo:     wj.Tempo,
		SetBlocks: wj.SetBlocks,
	}
	return nil
}
