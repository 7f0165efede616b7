package statemachine

import (
	"errors"

	"household-services-api/models"
)

// Transition defines a valid booking state change.
type Transition struct {
	From models.BookingStatus
	To   models.BookingStatus
}

// validTransitions is the authoritative state machine definition.
var validTransitions = []Transition{
	// Provider accepts the booking
	{From: models.StatusPending, To: models.StatusConfirmed},
	// Provider completes the job (settles the commission split)
	{From: models.StatusConfirmed, To: models.StatusCompleted},
	// Either side cancels a non-terminal booking
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusConfirmed, To: models.StatusCancelled},
	{From: models.StatusRescheduleRequested, To: models.StatusCancelled},
	// Provider proposes a new date/time
	{From: models.StatusPending, To: models.StatusRescheduleRequested},
	{From: models.StatusConfirmed, To: models.StatusRescheduleRequested},
	// Customer accepts the proposal
	{From: models.StatusRescheduleRequested, To: models.StatusConfirmed},
	// Customer rejects the proposal, booking falls back to pending
	{From: models.StatusRescheduleRequested, To: models.StatusPending},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state.
func ValidTransitionsFrom(status models.BookingStatus) []models.BookingStatus {
	var nexts []models.BookingStatus
	seen := map[models.BookingStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether a booking may move from one state to another.
func CanTransition(from, to models.BookingStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.BookingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
