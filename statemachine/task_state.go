package statemachine

import (
	"errors"

	"workbridge-api/models"
)

// Transition defines a valid task state change and who can perform it
type Transition struct {
	From  models.TaskStatus
	To    models.TaskStatus
	Actor string // "client", "worker", "admin", "system"
}

// validTransitions is the authoritative task state machine definition
var validTransitions = []Transition{
	// Client accepts a bid; the system moves the task alongside the bid
	{From: models.StatusOpen, To: models.StatusAssigned, Actor: "client"},
	{From: models.StatusOpen, To: models.StatusAssigned, Actor: "system"},
	// Client can cancel an OPEN task outright
	{From: models.StatusOpen, To: models.StatusCancelled, Actor: "client"},
	// Client confirms the assigned worker finished the job
	{From: models.StatusAssigned, To: models.StatusCompleted, Actor: "client"},
	// Client can still back out of an assigned task
	{From: models.StatusAssigned, To: models.StatusCancelled, Actor: "client"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.TaskStatus
	To    models.TaskStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given task state
func ValidTransitionsFrom(status models.TaskStatus) []models.TaskStatus {
	var nexts []models.TaskStatus
	seen := map[models.TaskStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move a task between two states
func CanTransition(from, to models.TaskStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.TaskStatus) string {
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

// GetAllTransitions returns the full task state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
