package filter_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/filter"
)

type recorder struct {
	calls []filter.State
}

func (r *recorder) trigger(s filter.State) { r.calls = append(r.calls, s) }

func (r *recorder) last(t *testing.T) filter.State {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatal("no fetch was triggered")
	}
	return r.calls[len(r.calls)-1]
}

// ── Search text ────────────────────────────────────────────────────────────

func TestSetSearchText_NeverFetches(t *testing.T) {
	rec := &recorder{}
	acc := filter.NewAccumulator(rec.trigger)

	acc.SetSearchText("dev")
	acc.SetSearchText("devops")

	if len(rec.calls) != 0 {
		t.Fatalf("SetSearchText triggered %d fetches, want 0", len(rec.calls))
	}
	if got := acc.Snapshot().SearchText; got != "devops" {
		t.Errorf("SearchText = %q, want devops", got)
	}
}

func TestTriggerSearch_FetchesOnceWithLatestText(t *testing.T) {
	rec := &recorder{}
	acc := filter.NewAccumulator(rec.trigger)

	acc.SetSearchText("go")
	acc.SetSearchText("golang")
	acc.TriggerSearch()

	if len(rec.calls) != 1 {
		t.Fatalf("TriggerSearch triggered %d fetches, want 1", len(rec.calls))
	}
	if got := rec.last(t).SearchText; got != "golang" {
		t.Errorf("fetched with %q, want golang", got)
	}
}

// ── Employment types ───────────────────────────────────────────────────────

func TestAddEmploymentType_AccumulatesAndFetchesEachTime(t *testing.T) {
	rec := &recorder{}
	acc := filter.NewAccumulator(rec.trigger)
	acc.SetSearchText("engineer")
	if err := acc.SetSalaryRange(domain.Salary20LPA); err != nil {
		t.Fatal(err)
	}

	if err := acc.AddEmploymentType(domain.EmploymentPartTime); err != nil {
		t.Fatal(err)
	}
	if err := acc.AddEmploymentType(domain.EmploymentFullTime); err != nil {
		t.Fatal(err)
	}

	if len(rec.calls) != 3 {
		t.Fatalf("got %d fetches, want 3", len(rec.calls))
	}
	got := rec.last(t)
	want := []domain.EmploymentType{domain.EmploymentFullTime, domain.EmploymentPartTime}
	if !slices.Equal(got.EmploymentTypes, want) {
		t.Errorf("EmploymentTypes = %v, want %v", got.EmploymentTypes, want)
	}
	if got.SalaryRange != domain.Salary20LPA || got.SearchText != "engineer" {
		t.Errorf("snapshot lost other selections: %+v", got)
	}
}

func TestAddEmploymentType_Idempotent(t *testing.T) {
	rec := &recorder{}
	acc := filter.NewAccumulator(rec.trigger)

	for i := 0; i < 3; i++ {
		if err := acc.AddEmploymentType(domain.EmploymentFreelance); err != nil {
			t.Fatal(err)
		}
	}

	if len(rec.calls) != 3 {
		t.Errorf("got %d fetches, want 3", len(rec.calls))
	}
	if got := acc.Snapshot().EmploymentTypes; len(got) != 1 {
		t.Errorf("EmploymentTypes = %v, want one entry", got)
	}
}

func TestRemoveAndToggleEmploymentType(t *testing.T) {
	rec := &recorder{}
	acc := filter.NewAccumulator(rec.trigger)

	_ = acc.AddEmploymentType(domain.EmploymentInternship)
	_ = acc.RemoveEmploymentType(domain.EmploymentInternship)
	if rec.last(t).Has(domain.EmploymentInternship) {
		t.Error("Remove did not deselect")
	}

	_ = acc.ToggleEmploymentType(domain.EmploymentPartTime)
	if !rec.last(t).Has(domain.EmploymentPartTime) {
		t.Error("first Toggle did not select")
	}
	_ = acc.ToggleEmploymentType(domain.EmploymentPartTime)
	if rec.last(t).Has(domain.EmploymentPartTime) {
		t.Error("second Toggle did not deselect")
	}
	if len(rec.calls) != 4 {
		t.Errorf("got %d fetches, want 4", len(rec.calls))
	}
}

func TestUnknownIDsAreRejectedWithoutFetch(t *testing.T) {
	rec := &recorder{}
	acc := filter.NewAccumulator(rec.trigger)

	if err := acc.AddEmploymentType("CONTRACT"); !errors.Is(err, filter.ErrUnknownEmploymentType) {
		t.Errorf("AddEmploymentType(CONTRACT) err = %v", err)
	}
	if err := acc.ToggleEmploymentType("CONTRACT"); !errors.Is(err, filter.ErrUnknownEmploymentType) {
		t.Errorf("ToggleEmploymentType(CONTRACT) err = %v", err)
	}
	if err := acc.SetSalaryRange("999"); !errors.Is(err, filter.ErrUnknownSalaryRange) {
		t.Errorf("SetSalaryRange(999) err = %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("rejected mutations triggered %d fetches", len(rec.calls))
	}
}

// ── Salary range ───────────────────────────────────────────────────────────

func TestSetSalaryRange_ReplacesAndFetches(t *testing.T) {
	rec := &recorder{}
	acc := filter.NewAccumulator(rec.trigger)

	_ = acc.SetSalaryRange(domain.Salary10LPA)
	_ = acc.SetSalaryRange(domain.Salary40LPA)
	if got := rec.last(t).SalaryRange; got != domain.Salary40LPA {
		t.Errorf("SalaryRange = %q, want %q", got, domain.Salary40LPA)
	}

	_ = acc.SetSalaryRange(domain.SalaryAny)
	if got := rec.last(t).SalaryRange; got != domain.SalaryAny {
		t.Errorf("SalaryRange after clear = %q, want empty", got)
	}
	if len(rec.calls) != 3 {
		t.Errorf("got %d fetches, want 3", len(rec.calls))
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	acc := filter.NewAccumulator(nil)
	_ = acc.AddEmploymentType(domain.EmploymentFullTime)

	snap := acc.Snapshot()
	_ = acc.AddEmploymentType(domain.EmploymentPartTime)

	if len(snap.EmploymentTypes) != 1 {
		t.Errorf("earlier snapshot changed: %v", snap.EmploymentTypes)
	}
}
