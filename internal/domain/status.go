package domain

// ApplicationStatus is the closed set of application states.
// PENDING is the initial state; ACCEPTED, REJECTED and CANCELED are terminal.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "PENDING"
	StatusAccepted ApplicationStatus = "ACCEPTED"
	StatusRejected ApplicationStatus = "REJECTED"
	StatusCanceled ApplicationStatus = "CANCELED"
)

// statusTransitions is the single transition table every mutation path
// consults. No transition leaves a terminal state.
var statusTransitions = map[ApplicationStatus]map[ApplicationStatus]bool{
	StatusPending: {
		StatusAccepted: true,
		StatusRejected: true,
		StatusCanceled: true,
	},
}

// Valid reports whether s is a known status value.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transition.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusCanceled
}

// CanTransition reports whether from → to is a permitted status change.
func CanTransition(from, to ApplicationStatus) bool {
	return statusTransitions[from][to]
}
