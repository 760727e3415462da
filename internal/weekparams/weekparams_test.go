package weekparams

import "testing"

func TestTimeValueRoundSeconds(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{42, 40},
		{43, 45},
		{20, 20},
		{7, 5},
	}
	for _, c := range cases {
		got := TimeValue{Value: c.in, Unit: Seconds}.Round()
		if got.Value != c.want {
			t.Errorf("Round(%v seconds) = %v, want %v", c.in, got.Value, c.want)
		}
	}
}

func TestTimeValueRoundMinutes(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.8, 0.8},  // <= 1 minute, left exact
		{1.0, 1.0},  // boundary, left exact
		{1.76, 2.0}, // > 1 minute, rounds to nearest 0.5
		{2.3, 2.5},
	}
	for _, c := range cases {
		got := TimeValue{Value: c.in, Unit: Minutes}.Round()
		if got.Value != c.want {
			t.Errorf("Round(%v minutes) = %v, want %v", c.in, got.Value, c.want)
		}
	}
}

func TestClampMin(t *testing.T) {
	v := TimeValue{Value: 5, Unit: Seconds}.ClampMin(10)
	if v.Value != 10 {
		t.Fatalf("expected clamp to 10, got %v", v.Value)
	}
	v = TimeValue{Value: 20, Unit: Seconds}.ClampMin(10)
	if v.Value != 20 {
		t.Fatalf("expected value unchanged at 20, got %v", v.Value)
	}
}

func TestMutualExclusionViolation(t *testing.T) {
	w := NewStrengthSet(3, NumericReps(10))
	w.SetBlocks = []SetBlock{{Sets: 1, Reps: NumericReps(5)}}
	if err := w.CheckMutualExclusion(); err == nil {
		t.Fatalf("expected mutual exclusion error when both set_blocks and flat sets are present")
	}
}

func TestMutualExclusionOK(t *testing.T) {
	w := NewStrengthSet(3, NumericReps(10))
	if err := w.CheckMutualExclusion(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sb := NewSetBlocks([]SetBlock{{Sets: 1, Reps: NumericReps(5)}})
	if err := sb.CheckMutualExclusion(); err != nil {
		t.Fatalf("unexpected error on pure set_blocks week: %v", err)
	}
}

func TestCheckLeafContent(t *testing.T) {
	empty := Week{shape: ShapeCompoundParent}
	if err := empty.CheckLeafContent(); err == nil {
		t.Fatalf("expected error for leaf with no reps/work_time/set_blocks")
	}

	withReps := NewStrengthSet(3, NumericReps(8))
	if err := withReps.CheckLeafContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRepsString(t *testing.T) {
	if NumericReps(8).String() != "8" {
		t.Fatalf("expected numeric reps to render as 8")
	}
	if LiteralReps("AMRAP").String() != "AMRAP" {
		t.Fatalf("expected literal reps to pass through")
	}
}
