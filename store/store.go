// Package store holds the marketplace's entity collections behind a single
// repository interface. All reads return defensive copies and all writes
// funnel through validated operations, so callers can never corrupt shared
// state by mutating a returned value.
package store

import (
	"time"

	"workbridge-api/models"
)

func nowUTC() time.Time { return time.Now().UTC() }

// TaskFilter selects tasks; zero-value fields are ignored. All supplied
// criteria combine with AND semantics. Category and Status match exactly
// (case-sensitive); Search is a case-insensitive substring match against
// title or description.
type TaskFilter struct {
	Category string
	Search   string
	Status   string
	ClientID string
	WorkerID string // tasks the worker has placed at least one bid on
}

// Store is the repository contract shared by the in-memory and sqlite
// backends. Results are ordered by store insertion unless noted.
type Store interface {
	// Users
	CreateUser(u models.User) error
	User(id string) (models.User, error)
	UserByEmail(email string) (models.User, error) // case-insensitive
	Users(role models.UserRole) ([]models.User, error)

	// Categories
	Categories() ([]models.Category, error)

	// Tasks
	CreateTask(t models.Task) error
	FilterTasks(f TaskFilter) ([]models.Task, error)
	TaskWithClient(id string) (models.Task, error)
	TaskWithBids(id string) (models.Task, error)
	// UpdateTaskStatus applies an actor-checked transition and records it in
	// the task's status history.
	UpdateTaskStatus(taskID string, to models.TaskStatus, actor, actorID, note string) (models.Task, error)
	// ForceTaskStatus bypasses the state machine (admin override) but still
	// records history.
	ForceTaskStatus(taskID string, to models.TaskStatus, note string) (models.Task, error)

	// Bids
	AppendBid(taskID string, bid models.Bid) (models.Bid, error)
	BidsByWorker(workerID string) ([]models.Bid, error)
	TaskForBid(bidID string) (models.Task, models.Bid, error)
	// DecideBid accepts or rejects a pending bid on the client's behalf.
	// Accepting atomically rejects every other pending bid on the task and
	// moves the task to assigned.
	DecideBid(bidID string, to models.BidStatus, actorID string) (models.Task, error)
}

// Open selects a backend: an empty path yields the seeded in-memory store,
// anything else a sqlite database at that path (seeded on first open).
func Open(path string) (Store, error) {
	if path == "" {
		return NewMemorySeeded(), nil
	}
	return OpenSQLite(path)
}
