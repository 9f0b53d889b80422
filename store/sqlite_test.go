package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbridge-api/models"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "workbridge_test.db"))
	require.NoError(t, err)
	return s
}

func TestSQLiteSeed(t *testing.T) {
	s := openTestDB(t)

	users, err := s.Users("")
	require.NoError(t, err)
	assert.Len(t, users, 6)

	cats, err := s.Categories()
	require.NoError(t, err)
	assert.Len(t, cats, 5)
	assert.Contains(t, cats[0].Subcategories, "Plumbing")

	tasks, err := s.FilterTasks(TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1", "task-2", "task-3", "task-4", "task-5"}, taskIDs(tasks))
}

func TestSQLiteFilterTasks(t *testing.T) {
	s := openTestDB(t)

	tasks, err := s.FilterTasks(TaskFilter{Category: "Home Services"})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1", "task-3", "task-4"}, taskIDs(tasks))

	tasks, err = s.FilterTasks(TaskFilter{Search: "PLUMBING"})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1"}, taskIDs(tasks))

	tasks, err = s.FilterTasks(TaskFilter{Category: "Home Services", Search: "desk", Status: "open"})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-4"}, taskIDs(tasks))

	tasks, err = s.FilterTasks(TaskFilter{WorkerID: "user-3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1"}, taskIDs(tasks))
}

func TestSQLiteJoins(t *testing.T) {
	s := openTestDB(t)

	task, err := s.TaskWithClient("task-1")
	require.NoError(t, err)
	require.NotNil(t, task.Client)
	assert.Equal(t, task.ClientID, task.Client.ID)

	task, err = s.TaskWithBids("task-1")
	require.NoError(t, err)
	require.Len(t, task.Bids, 1)
	require.NotNil(t, task.Bids[0].Worker)
	assert.Equal(t, task.Bids[0].WorkerID, task.Bids[0].Worker.ID)

	_, err = s.TaskWithClient("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteAppendBid(t *testing.T) {
	s := openTestDB(t)

	created, err := s.AppendBid("task-4", models.NewBid("task-4", "user-2", 2000, "tomorrow"))
	require.NoError(t, err)
	assert.Equal(t, models.BidPending, created.Status)

	// Duplicate pending bid by the same worker
	_, err = s.AppendBid("task-4", models.NewBid("task-4", "user-2", 1800, ""))
	assert.ErrorIs(t, err, ErrConflict)

	// Client cannot bid
	_, err = s.AppendBid("task-4", models.NewBid("task-4", "user-1", 100, ""))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.AppendBid("nonexistent", models.NewBid("nonexistent", "user-2", 100, ""))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteDecideBid(t *testing.T) {
	s := openTestDB(t)

	_, err := s.AppendBid("task-1", models.NewBid("task-1", "user-2", 3200, "also available"))
	require.NoError(t, err)

	task, err := s.DecideBid("bid-1", models.BidAccepted, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, task.Status)

	statuses := map[models.BidStatus]int{}
	for _, b := range task.Bids {
		statuses[b.Status]++
	}
	assert.Equal(t, 1, statuses[models.BidAccepted])
	assert.Equal(t, 1, statuses[models.BidRejected])

	require.NotEmpty(t, task.StatusHistory)
	assert.Equal(t, models.StatusAssigned, task.StatusHistory[len(task.StatusHistory)-1].ToStatus)

	// Bidding is closed once assigned
	_, err = s.AppendBid("task-1", models.NewBid("task-1", "user-5", 2500, ""))
	assert.ErrorIs(t, err, ErrConflict)

	// Not the owning client
	_, err = s.DecideBid("bid-2", models.BidAccepted, "user-1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSQLiteTaskLifecycle(t *testing.T) {
	s := openTestDB(t)

	task, err := s.UpdateTaskStatus("task-5", models.StatusCancelled, "client", "user-1", "no longer needed")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, task.Status)

	_, err = s.UpdateTaskStatus("task-5", models.StatusOpen, "client", "user-1", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	forced, err := s.ForceTaskStatus("task-5", models.StatusOpen, "[ADMIN OVERRIDE] reopened")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, forced.Status)
}

func TestSQLiteCreateTaskAndUser(t *testing.T) {
	s := openTestDB(t)
	deadline := time.Now().UTC().Add(48 * time.Hour)

	task := models.NewTask("user-1", "New job", "details", "Errands", "Delivery",
		models.Budget{Min: 100, Max: 200}, models.Location{}, []string{}, deadline)
	require.NoError(t, s.CreateTask(task))

	all, err := s.FilterTasks(TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, task.ID, all[len(all)-1].ID)

	bad := models.NewTask("user-2", "t", "", "Errands", "", models.Budget{Min: 1, Max: 2}, models.Location{}, nil, deadline)
	assert.ErrorIs(t, s.CreateTask(bad), ErrValidation)

	u := models.NewUser("New Worker", "new@example.com", "hash", models.RoleWorker)
	require.NoError(t, s.CreateUser(u))
	assert.ErrorIs(t, s.CreateUser(models.NewUser("Dup", "NEW@example.com", "hash", models.RoleClient)), ErrConflict)

	found, err := s.UserByEmail("ROHIT@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", found.ID)
}
