// Package filter holds the job-list search and filter selections.
//
// Changing an employment type or the salary range re-queries at once;
// typing search text does not, it waits for TriggerSearch.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/project-tktt/jobby/internal/domain"
)

var (
	ErrUnknownEmploymentType = errors.New("unknown employment type")
	ErrUnknownSalaryRange    = errors.New("unknown salary range")
)

// State is an immutable snapshot of the selections
type State struct {
	SearchText      string
	EmploymentTypes []domain.EmploymentType // sorted, no duplicates
	SalaryRange     domain.SalaryRange      // SalaryAny means no filter
}

// Has reports whether id is selected
func (s State) Has(id domain.EmploymentType) bool {
	return slices.Contains(s.EmploymentTypes, id)
}

// Trigger receives the snapshot a fetch should be issued with
type Trigger func(State)

// Accumulator is safe for concurrent use. The trigger is called outside
// the lock with the snapshot taken at mutation time.
type Accumulator struct {
	mu      sync.Mutex
	search  string
	types   map[domain.EmploymentType]struct{}
	salary  domain.SalaryRange
	trigger Trigger
}

// NewAccumulator returns empty selections. trigger may be nil.
func NewAccumulator(trigger Trigger) *Accumulator {
	return &Accumulator{
		types:   make(map[domain.EmploymentType]struct{}),
		trigger: trigger,
	}
}

// SetTrigger replaces the trigger callback
func (a *Accumulator) SetTrigger(trigger Trigger) {
	a.mu.Lock()
	a.trigger = trigger
	a.mu.Unlock()
}

// SetSearchText replaces the search text without fetching
func (a *Accumulator) SetSearchText(text string) {
	a.mu.Lock()
	a.search = text
	a.mu.Unlock()
}

// AddEmploymentType selects id and fetches. Adding a selected id still fetches.
func (a *Accumulator) AddEmploymentType(id domain.EmploymentType) error {
	if _, ok := domain.ParseEmploymentType(string(id)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEmploymentType, id)
	}
	a.mu.Lock()
	a.types[id] = struct{}{}
	a.fire()
	return nil
}

// RemoveEmploymentType deselects id and fetches
func (a *Accumulator) RemoveEmploymentType(id domain.EmploymentType) error {
	if _, ok := domain.ParseEmploymentType(string(id)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEmploymentType, id)
	}
	a.mu.Lock()
	delete(a.types, id)
	a.fire()
	return nil
}

// ToggleEmploymentType flips id, as a checkbox does, and fetches
func (a *Accumulator) ToggleEmploymentType(id domain.EmploymentType) error {
	if _, ok := domain.ParseEmploymentType(string(id)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEmploymentType, id)
	}
	a.mu.Lock()
	if _, ok := a.types[id]; ok {
		delete(a.types, id)
	} else {
		a.types[id] = struct{}{}
	}
	a.fire()
	return nil
}

// SetSalaryRange replaces the salary range and fetches. SalaryAny clears it.
func (a *Accumulator) SetSalaryRange(id domain.SalaryRange) error {
	if _, ok := domain.ParseSalaryRange(string(id)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSalaryRange, id)
	}
	a.mu.Lock()
	a.salary = id
	a.fire()
	return nil
}

// TriggerSearch fetches with the current selections
func (a *Accumulator) TriggerSearch() {
	a.mu.Lock()
	a.fire()
}

// Snapshot returns the current selections
func (a *Accumulator) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// fire must be called with a.mu held; it releases it.
func (a *Accumulator) fire() {
	st := a.snapshotLocked()
	trigger := a.trigger
	a.mu.Unlock()
	if trigger != nil {
		trigger(st)
	}
}

func (a *Accumulator) snapshotLocked() State {
	types := make([]domain.EmploymentType, 0, len(a.types))
	for id := range a.types {
		types = append(types, id)
	}
	slices.Sort(types)
	return State{
		SearchText:      a.search,
		EmploymentTypes: types,
		SalaryRange:     a.salary,
	}
}
