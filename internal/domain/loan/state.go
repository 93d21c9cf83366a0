package loan

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusActive, StatusCompleted, StatusDefaulted},
	StatusActive:   {StatusCompleted, StatusDefaulted},
}

// CanTransition reports whether from -> to is an allowed lifecycle step.
// Rejected, completed and defaulted have no outgoing edges.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

// Payable loans accept repayments.
func (s Status) Payable() bool { return s == StatusApproved || s == StatusActive }

// Transition moves l to the next status or returns the guard error.
func (l *Loan) Transition(to Status) error {
	if l.Status == to && to == StatusApproved {
		return ErrAlreadyApproved
	}
	if !CanTransition(l.Status, to) {
		return ErrInvalidTransition
	}
	l.Status = to
	return nil
}
