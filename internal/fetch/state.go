package fetch

// Status is the active variant of a State
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusLoading:
		return "LOADING"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	}
	return "UNKNOWN"
}

// State is a snapshot of one Machine. Value is meaningful only on
// StatusSuccess, Reason and Err only on StatusFailure.
type State[T any] struct {
	Status     Status
	Value      T
	Reason     string
	Err        *Error
	Generation uint64
}

func (s State[T]) Idle() bool    { return s.Status == StatusIdle }
func (s State[T]) Loading() bool { return s.Status == StatusLoading }
func (s State[T]) Success() bool { return s.Status == StatusSuccess }
func (s State[T]) Failed() bool  { return s.Status == StatusFailure }
