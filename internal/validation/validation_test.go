package validation

import "testing"

func TestNewResultStartsValid(t *testing.T) {
	r := NewResult()
	if !r.Valid() {
		t.Fatalf("new result should be valid")
	}
	if r.HasWarnings() {
		t.Fatalf("new result should have no warnings")
	}
}

func TestAddErrorMarksInvalid(t *testing.T) {
	r := NewResult()
	r.AddError("missing_field", "program.name", "name", "name is required", nil)
	if r.Valid() {
		t.Fatalf("result should be invalid after AddError")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(r.Errors))
	}
	if r.AsError() == nil {
		t.Fatalf("AsError should return non-nil when invalid")
	}
}

func TestAddWarningKeepsValid(t *testing.T) {
	r := NewResult()
	r.AddWarning("empty_day", "days[3]", "", "day has no exercises", nil)
	if !r.Valid() {
		t.Fatalf("warnings must not invalidate a result")
	}
	if !r.HasWarnings() {
		t.Fatalf("expected warnings to be recorded")
	}
}

func TestMerge(t *testing.T) {
	a := NewResult()
	a.AddError("a", "loc-a", "", "err a", nil)
	b := NewResult()
	b.AddError("b", "loc-b", "", "err b", nil)
	b.AddWarning("w", "loc-w", "", "warn w", nil)

	a.Merge(b)

	if len(a.Errors) != 2 {
		t.Fatalf("expected 2 errors after merge, got %d", len(a.Errors))
	}
	if len(a.Warnings) != 1 {
		t.Fatalf("expected 1 warning after merge, got %d", len(a.Warnings))
	}
}

func TestMergeNilIsNoop(t *testing.T) {
	a := NewResult()
	a.Merge(nil)
	if !a.Valid() {
		t.Fatalf("merging nil must not affect validity")
	}
}
