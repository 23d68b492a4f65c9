package domain

import "fmt"

type Status string

const (
	StatusReceived   Status = "RECEIVED"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// transitions is the full lifecycle table. COMPLETED and CANCELLED are
// terminal: no outgoing moves, self-transitions included.
var transitions = map[Status][]Status{
	StatusReceived:   {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether a booking may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusReceived, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(v), nil
	}
	return "", fmt.Errorf("unknown status %q", v)
}

type Slot string

const (
	SlotMorning   Slot = "MORNING"
	SlotAfternoon Slot = "AFTERNOON"
)

func ParseSlot(v string) (Slot, error) {
	switch Slot(v) {
	case SlotMorning, SlotAfternoon:
		return Slot(v), nil
	}
	return "", fmt.Errorf("unknown time slot %q", v)
}
