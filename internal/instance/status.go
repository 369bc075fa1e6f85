package instance

import "fmt"

// Status is the cached lifecycle state of an instance.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusRunning  Status = "running"
	StatusStarting Status = "starting"
	StatusStopping Status = "stopping"
	StatusError    Status = "error"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	switch s {
	case StatusStopped, StatusRunning, StatusStarting, StatusStopping, StatusError:
		return true
	}
	return false
}

// transitions is the exhaustive table of operator-driven status changes.
// Reconciliation-observed states bypass this table via Reconcile.
var transitions = map[Status][]Status{
	StatusStopped:  {StatusStarting},
	StatusError:    {StatusStarting}, // retry is always permitted from error
	StatusStarting: {StatusRunning, StatusStopped, StatusError},
	StatusRunning:  {StatusStopping, StatusError},
	StatusStopping: {StatusStopped, StatusError},
}

// InvalidTransitionError reports a status change the state machine rejects.
type InvalidTransitionError struct {
	From, To Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// CanTransition reports whether the operator-driven state machine allows
// moving from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition applies an operator-driven status change, rejecting moves the
// state machine does not allow.
func (i *Instance) Transition(next Status) error {
	if !i.Status.CanTransition(next) {
		return &InvalidTransitionError{From: i.Status, To: next}
	}
	i.Status = next
	return nil
}

// Reconcile applies a status observed from the runtime. The runtime is
// authoritative, so observed state is never rejected.
func (i *Instance) Reconcile(observed Status) {
	i.Status = observed
}
