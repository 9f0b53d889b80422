package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents all possible states of a posted task
type TaskStatus string

const (
	StatusOpen      TaskStatus = "open"
	StatusAssigned  TaskStatus = "assigned"
	StatusCompleted TaskStatus = "completed"
	StatusCancelled TaskStatus = "cancelled"
)

// BidStatus represents all possible states of a worker's bid
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// Budget is the client's price range for a task.
type Budget struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Category    string     `json:"category" gorm:"index"`
	Subcategory string     `json:"subcategory"`
	ClientID    string     `json:"clientId" gorm:"not null;index"`
	Client      *User      `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Status      TaskStatus `json:"status" gorm:"not null;default:'open';index"`
	Budget      Budget     `json:"budget" gorm:"embedded;embeddedPrefix:budget_"`
	Location    Location   `json:"location" gorm:"embedded;embeddedPrefix:loc_"`
	Images      []string   `json:"images" gorm:"serializer:json"`
	Bids        []Bid      `json:"bids" gorm:"foreignKey:TaskID"`

	// StatusHistory tracks every status change — audit trail
	StatusHistory []TaskStatusHistory `json:"statusHistory,omitempty" gorm:"foreignKey:TaskID"`

	// Position preserves store-insertion order across backends
	Position  int       `json:"-" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	Deadline  time.Time `json:"deadline"`
}

type Bid struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TaskID    string    `json:"taskId" gorm:"not null;index"`
	WorkerID  string    `json:"workerId" gorm:"not null;index"`
	Worker    *User     `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Message   string    `json:"message,omitempty"`
	Status    BidStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskStatusHistory tracks every task status change and who triggered it.
type TaskStatusHistory struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	TaskID     string     `json:"taskId" gorm:"not null;index"`
	FromStatus TaskStatus `json:"fromStatus"`
	ToStatus   TaskStatus `json:"toStatus" gorm:"not null"`
	ChangedBy  string     `json:"changedBy"`
	Note       string     `json:"note"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// NewTask builds an open task for a client. The caller is responsible for
// inserting it through the store, which validates the client reference.
func NewTask(clientID, title, description, category, subcategory string, budget Budget, location Location, images []string, deadline time.Time) Task {
	return Task{
		ID:          "task-" + uuid.NewString(),
		Title:       title,
		Description: description,
		Category:    category,
		Subcategory: subcategory,
		ClientID:    clientID,
		Status:      StatusOpen,
		Budget:      budget,
		Location:    location,
		Images:      images,
		Bids:        []Bid{},
		CreatedAt:   time.Now().UTC(),
		Deadline:    deadline,
	}
}

// NewBid builds a pending bid against a task. It performs no validation and
// does not insert — callers append it through the store. IDs are random
// UUIDs, so two bids created in the same clock tick never collide.
func NewBid(taskID, workerID string, amount float64, message string) Bid {
	return Bid{
		ID:        "bid-" + uuid.NewString(),
		TaskID:    taskID,
		WorkerID:  workerID,
		Amount:    amount,
		Message:   message,
		Status:    BidPending,
		CreatedAt: time.Now().UTC(),
	}
}
