package models

import "fmt"

// ApplicationStatus is the lifecycle state of an Application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus accepts only the three known statuses.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(s); st {
	case StatusPending, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Terminal reports whether no further transition is possible.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransition reports whether s may move to next. Only pending moves,
// and only to accepted or rejected.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	return s == StatusPending && next.Terminal()
}
