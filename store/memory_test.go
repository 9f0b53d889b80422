package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbridge-api/models"
)

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestFilterTasksNoCriteriaReturnsAllInInsertionOrder(t *testing.T) {
	m := NewMemorySeeded()
	tasks, err := m.FilterTasks(TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1", "task-2", "task-3", "task-4", "task-5"}, taskIDs(tasks))
}

func TestFilterTasksByCategory(t *testing.T) {
	m := NewMemorySeeded()
	tasks, err := m.FilterTasks(TaskFilter{Category: "Home Services"})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1", "task-3", "task-4"}, taskIDs(tasks))
	for _, task := range tasks {
		assert.Equal(t, "Home Services", task.Category)
	}

	// Category matching is exact and case-sensitive
	tasks, err = m.FilterTasks(TaskFilter{Category: "home services"})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFilterTasksBySearch(t *testing.T) {
	m := NewMemorySeeded()

	// Case-insensitive substring over title
	tasks, err := m.FilterTasks(TaskFilter{Search: "PLUMBING"})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1"}, taskIDs(tasks))

	// Matches description too
	tasks, err = m.FilterTasks(TaskFilter{Search: "leaking"})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1"}, taskIDs(tasks))

	// Hits in either field, order preserved
	tasks, err = m.FilterTasks(TaskFilter{Search: "paint"})
	require.NoError(t, err)
	assert.Equal(t, []string{"task-3"}, taskIDs(tasks))

	tasks, err = m.FilterTasks(TaskFilter{Search: "no such phrase anywhere"})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFilterTasksCombinedCriteriaIntersect(t *testing.T) {
	m := NewMemorySeeded()

	byCategory, err := m.FilterTasks(TaskFilter{Category: "Home Services"})
	require.NoError(t, err)
	bySearch, err := m.FilterTasks(TaskFilter{Search: "desk"})
	require.NoError(t, err)
	byStatus, err := m.FilterTasks(TaskFilter{Status: "open"})
	require.NoError(t, err)

	combined, err := m.FilterTasks(TaskFilter{Category: "Home Services", Search: "desk", Status: "open"})
	require.NoError(t, err)

	expected := []string{}
	inSearch := map[string]bool{}
	for _, task := range bySearch {
		inSearch[task.ID] = true
	}
	inStatus := map[string]bool{}
	for _, task := range byStatus {
		inStatus[task.ID] = true
	}
	for _, task := range byCategory {
		if inSearch[task.ID] && inStatus[task.ID] {
			expected = append(expected, task.ID)
		}
	}
	assert.Equal(t, expected, taskIDs(combined))
	assert.Equal(t, []string{"task-4"}, taskIDs(combined))
}

func TestFilterTasksIdempotent(t *testing.T) {
	m := NewMemorySeeded()
	first, err := m.FilterTasks(TaskFilter{})
	require.NoError(t, err)
	second, err := m.FilterTasks(TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFilterResultsAreDefensiveCopies(t *testing.T) {
	m := NewMemorySeeded()
	tasks, err := m.FilterTasks(TaskFilter{})
	require.NoError(t, err)

	// Mutating a returned task must not leak into the store
	tasks[0].Title = "tampered"
	tasks[0].Bids[0].Amount = -1

	again, err := m.FilterTasks(TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bathroom Plumbing Repair", again[0].Title)
	assert.Equal(t, 2800.0, again[0].Bids[0].Amount)
}

func TestTaskWithClient(t *testing.T) {
	m := NewMemorySeeded()

	task, err := m.TaskWithClient("task-1")
	require.NoError(t, err)
	require.NotNil(t, task.Client)
	assert.Equal(t, task.ClientID, task.Client.ID)
	assert.Equal(t, "Rohit Sharma", task.Client.Name)

	_, err = m.TaskWithClient("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskWithClientDanglingReference(t *testing.T) {
	m := NewMemorySeeded()
	m.tasks = append(m.tasks, models.Task{
		ID:       "task-orphan",
		Title:    "Orphaned",
		ClientID: "user-gone",
		Status:   models.StatusOpen,
	})

	task, err := m.TaskWithClient("task-orphan")
	require.NoError(t, err)
	assert.Nil(t, task.Client)
}

func TestTaskWithBids(t *testing.T) {
	m := NewMemorySeeded()

	task, err := m.TaskWithBids("task-1")
	require.NoError(t, err)
	require.Len(t, task.Bids, 1)
	for _, bid := range task.Bids {
		require.NotNil(t, bid.Worker)
		assert.Equal(t, bid.WorkerID, bid.Worker.ID)
	}

	_, err = m.TaskWithBids("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskWithBidsDanglingWorker(t *testing.T) {
	m := NewMemorySeeded()
	m.tasks[0].Bids = append(m.tasks[0].Bids, models.Bid{
		ID:       "bid-orphan",
		TaskID:   "task-1",
		WorkerID: "user-gone",
		Amount:   100,
		Status:   models.BidPending,
	})

	task, err := m.TaskWithBids("task-1")
	require.NoError(t, err)
	require.Len(t, task.Bids, 2)
	assert.NotNil(t, task.Bids[0].Worker)
	assert.Nil(t, task.Bids[1].Worker)
}

func TestAppendBid(t *testing.T) {
	m := NewMemorySeeded()

	bid := models.NewBid("task-4", "user-2", 2000, "Can do it tomorrow")
	created, err := m.AppendBid("task-4", bid)
	require.NoError(t, err)
	assert.Equal(t, models.BidPending, created.Status)
	assert.Equal(t, "task-4", created.TaskID)

	task, err := m.TaskWithBids("task-4")
	require.NoError(t, err)
	require.Len(t, task.Bids, 1)
	assert.Equal(t, bid.ID, task.Bids[0].ID)
}

func TestAppendBidValidation(t *testing.T) {
	m := NewMemorySeeded()

	_, err := m.AppendBid("nonexistent", models.NewBid("nonexistent", "user-2", 100, ""))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.AppendBid("task-4", models.NewBid("task-4", "user-2", 0, ""))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = m.AppendBid("task-4", models.NewBid("task-4", "user-2", -50, ""))
	assert.ErrorIs(t, err, ErrValidation)

	// user-1 is a client, not a worker
	_, err = m.AppendBid("task-4", models.NewBid("task-4", "user-1", 100, ""))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = m.AppendBid("task-4", models.NewBid("task-4", "user-gone", 100, ""))
	assert.ErrorIs(t, err, ErrValidation)

	// user-3 already has a pending bid on task-1
	_, err = m.AppendBid("task-1", models.NewBid("task-1", "user-3", 3000, ""))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAppendBidClosedTask(t *testing.T) {
	m := NewMemorySeeded()
	_, err := m.UpdateTaskStatus("task-4", models.StatusCancelled, "client", "user-1", "changed my mind")
	require.NoError(t, err)

	_, err = m.AppendBid("task-4", models.NewBid("task-4", "user-2", 2000, ""))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDecideBidAccept(t *testing.T) {
	m := NewMemorySeeded()

	// Give task-1 a second pending bid so we can watch it be rejected
	_, err := m.AppendBid("task-1", models.NewBid("task-1", "user-2", 3200, "also available"))
	require.NoError(t, err)

	task, err := m.DecideBid("bid-1", models.BidAccepted, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, task.Status)

	require.Len(t, task.Bids, 2)
	assert.Equal(t, models.BidAccepted, task.Bids[0].Status)
	assert.Equal(t, models.BidRejected, task.Bids[1].Status)

	// History records the assignment
	require.NotEmpty(t, task.StatusHistory)
	last := task.StatusHistory[len(task.StatusHistory)-1]
	assert.Equal(t, models.StatusOpen, last.FromStatus)
	assert.Equal(t, models.StatusAssigned, last.ToStatus)
	assert.Equal(t, "user-1", last.ChangedBy)

	// No new bids once assigned
	_, err = m.AppendBid("task-1", models.NewBid("task-1", "user-5", 2500, ""))
	assert.ErrorIs(t, err, ErrConflict)

	// The decision is final
	_, err = m.DecideBid("bid-1", models.BidRejected, "user-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecideBidReject(t *testing.T) {
	m := NewMemorySeeded()

	task, err := m.DecideBid("bid-2", models.BidRejected, "user-4")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, task.Status)
	assert.Equal(t, models.BidRejected, task.Bids[0].Status)

	// Rejected bid does not block a fresh one from the same worker
	_, err = m.AppendBid("task-2", models.NewBid("task-2", "user-5", 22000, "revised offer"))
	assert.NoError(t, err)
}

func TestDecideBidAuthorization(t *testing.T) {
	m := NewMemorySeeded()

	// task-1 belongs to user-1, not user-4
	_, err := m.DecideBid("bid-1", models.BidAccepted, "user-4")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = m.DecideBid("bid-gone", models.BidAccepted, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTaskStatusLifecycle(t *testing.T) {
	m := NewMemorySeeded()

	_, err := m.DecideBid("bid-1", models.BidAccepted, "user-1")
	require.NoError(t, err)

	task, err := m.UpdateTaskStatus("task-1", models.StatusCompleted, "client", "user-1", "done")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, task.Status)

	// Terminal
	_, err = m.UpdateTaskStatus("task-1", models.StatusOpen, "client", "user-1", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Open tasks cannot be completed directly
	_, err = m.UpdateTaskStatus("task-2", models.StatusCompleted, "client", "user-4", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestForceTaskStatusBypassesMachine(t *testing.T) {
	m := NewMemorySeeded()

	task, err := m.ForceTaskStatus("task-5", models.StatusCompleted, "[ADMIN OVERRIDE] dispute resolved")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, task.Status)
	require.Len(t, task.StatusHistory, 1)
	assert.Contains(t, task.StatusHistory[0].Note, "ADMIN OVERRIDE")
}

func TestCreateTaskValidation(t *testing.T) {
	m := NewMemorySeeded()
	deadline := time.Now().UTC().Add(48 * time.Hour)

	good := models.NewTask("user-1", "New job", "details", "Errands", "Delivery",
		models.Budget{Min: 100, Max: 200}, models.Location{}, nil, deadline)
	require.NoError(t, m.CreateTask(good))

	all, err := m.FilterTasks(TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, good.ID, all[len(all)-1].ID)

	// Worker cannot own a task
	bad := models.NewTask("user-2", "t", "", "Errands", "", models.Budget{Min: 1, Max: 2}, models.Location{}, nil, deadline)
	assert.ErrorIs(t, m.CreateTask(bad), ErrValidation)

	// Unknown client
	bad = models.NewTask("user-gone", "t", "", "Errands", "", models.Budget{Min: 1, Max: 2}, models.Location{}, nil, deadline)
	assert.ErrorIs(t, m.CreateTask(bad), ErrValidation)

	// min > max
	bad = models.NewTask("user-1", "t", "", "Errands", "", models.Budget{Min: 200, Max: 100}, models.Location{}, nil, deadline)
	assert.ErrorIs(t, m.CreateTask(bad), ErrValidation)

	// deadline in the past
	bad = models.NewTask("user-1", "t", "", "Errands", "", models.Budget{Min: 1, Max: 2}, models.Location{}, nil, time.Now().UTC().Add(-time.Hour))
	assert.ErrorIs(t, m.CreateTask(bad), ErrValidation)

	// duplicate id
	assert.ErrorIs(t, m.CreateTask(good), ErrConflict)
}

func TestCreateUserAndLookups(t *testing.T) {
	m := NewMemorySeeded()

	u := models.NewUser("New Worker", "new@example.com", "hash", models.RoleWorker)
	require.NoError(t, m.CreateUser(u))

	// Email uniqueness is case-insensitive
	dup := models.NewUser("Other", "NEW@EXAMPLE.COM", "hash", models.RoleClient)
	assert.ErrorIs(t, m.CreateUser(dup), ErrConflict)

	found, err := m.UserByEmail("ROHIT@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", found.ID)

	_, err = m.User("user-gone")
	assert.ErrorIs(t, err, ErrNotFound)

	workers, err := m.Users(models.RoleWorker)
	require.NoError(t, err)
	assert.Len(t, workers, 4) // 3 seeded + 1 created

	everyone, err := m.Users("")
	require.NoError(t, err)
	assert.Len(t, everyone, 7)
}

func TestBidsByWorker(t *testing.T) {
	m := NewMemorySeeded()

	bids, err := m.BidsByWorker("user-3")
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, "bid-1", bids[0].ID)

	bids, err = m.BidsByWorker("user-gone")
	require.NoError(t, err)
	assert.Empty(t, bids)
}

func TestTaskForBid(t *testing.T) {
	m := NewMemorySeeded()

	task, bid, err := m.TaskForBid("bid-3")
	require.NoError(t, err)
	assert.Equal(t, "task-3", task.ID)
	assert.Equal(t, "user-2", bid.WorkerID)

	_, _, err = m.TaskForBid("bid-gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategories(t *testing.T) {
	m := NewMemorySeeded()
	cats, err := m.Categories()
	require.NoError(t, err)
	require.Len(t, cats, 5)
	assert.Equal(t, "Home Services", cats[0].Name)
	assert.Contains(t, cats[0].Subcategories, "Plumbing")

	// Returned slices are copies
	cats[0].Subcategories[0] = "tampered"
	again, err := m.Categories()
	require.NoError(t, err)
	assert.Equal(t, "Cleaning", again[0].Subcategories[0])
}
