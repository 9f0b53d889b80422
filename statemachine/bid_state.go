package statemachine

import (
	"errors"

	"workbridge-api/models"
)

// BidTransition defines a valid bid state change and who can perform it
type BidTransition struct {
	From  models.BidStatus
	To    models.BidStatus
	Actor string
}

// validBidTransitions is the authoritative bid state machine definition.
// Only the task's client decides on bids; acceptance of one pending bid
// rejects its siblings through the "system" actor.
var validBidTransitions = []BidTransition{
	{From: models.BidPending, To: models.BidAccepted, Actor: "client"},
	{From: models.BidPending, To: models.BidRejected, Actor: "client"},
	{From: models.BidPending, To: models.BidRejected, Actor: "system"},
}

var bidTransitionMap = func() map[BidTransition]bool {
	m := make(map[BidTransition]bool)
	for _, t := range validBidTransitions {
		m[t] = true
	}
	return m
}()

// ValidBidTransitionsFrom returns all valid next states from a given bid state
func ValidBidTransitionsFrom(status models.BidStatus) []models.BidStatus {
	var nexts []models.BidStatus
	seen := map[models.BidStatus]bool{}
	for _, t := range validBidTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransitionBid checks if a given actor can move a bid between two states
func CanTransitionBid(from, to models.BidStatus, actor string) error {
	if bidTransitionMap[BidTransition{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidBidFrom(from),
	)
}

func describeValidBidFrom(status models.BidStatus) string {
	nexts := ValidBidTransitionsFrom(status)
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

// GetAllBidTransitions returns the full bid state machine for documentation
func GetAllBidTransitions() []BidTransition {
	return validBidTransitions
}
