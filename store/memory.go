package store

import (
	"fmt"
	"strings"
	"sync"

	"workbridge-api/models"
	"workbridge-api/statemachine"
)

// Memory is the in-memory backend. A single RWMutex guards the collections;
// every method copies entities on the way in and out, so callers never hold
// references into shared state.
type Memory struct {
	mu          sync.RWMutex
	users       []models.User
	categories  []models.Category
	tasks       []models.Task
	historySeq  uint
	positionSeq int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemorySeeded returns an in-memory store loaded with the demo dataset.
func NewMemorySeeded() *Memory {
	m := NewMemory()
	m.categories = SeedCategories()
	m.users = SeedUsers()
	for _, t := range SeedTasks() {
		m.positionSeq++
		t.Position = m.positionSeq
		m.tasks = append(m.tasks, t)
	}
	return m
}

// ── clone helpers ──────────────────────────────────────────────────

func cloneUser(u models.User) models.User {
	c := u
	c.Skills = append([]string(nil), u.Skills...)
	if u.Location != nil {
		loc := *u.Location
		c.Location = &loc
	}
	return c
}

func cloneBid(b models.Bid) models.Bid {
	c := b
	if b.Worker != nil {
		w := cloneUser(*b.Worker)
		c.Worker = &w
	}
	return c
}

func cloneTask(t models.Task) models.Task {
	c := t
	c.Images = append([]string{}, t.Images...)
	c.Bids = make([]models.Bid, len(t.Bids))
	for i, b := range t.Bids {
		c.Bids[i] = cloneBid(b)
	}
	c.StatusHistory = append([]models.TaskStatusHistory(nil), t.StatusHistory...)
	if t.Client != nil {
		u := cloneUser(*t.Client)
		c.Client = &u
	}
	return c
}

// ── users ──────────────────────────────────────────────────────────

func (m *Memory) CreateUser(u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("%w: email already registered", ErrConflict)
		}
		if existing.ID == u.ID {
			return fmt.Errorf("%w: user id already exists", ErrConflict)
		}
	}
	m.users = append(m.users, cloneUser(u))
	return nil
}

func (m *Memory) User(id string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
}

func (m *Memory) UserByEmail(email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return models.User{}, fmt.Errorf("%w: no user with that email", ErrNotFound)
}

func (m *Memory) Users(role models.UserRole) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.User{}
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// ── categories ─────────────────────────────────────────────────────

func (m *Memory) Categories() ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Category, len(m.categories))
	for i, c := range m.categories {
		cc := c
		cc.Subcategories = append([]string(nil), c.Subcategories...)
		out[i] = cc
	}
	return out, nil
}

// ── tasks ──────────────────────────────────────────────────────────

func (m *Memory) CreateTask(t models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.validateTask(t); err != nil {
		return err
	}
	if t.Images == nil {
		t.Images = []string{}
	}
	if t.Bids == nil {
		t.Bids = []models.Bid{}
	}
	m.positionSeq++
	t.Position = m.positionSeq
	m.tasks = append(m.tasks, cloneTask(t))
	return nil
}

func (m *Memory) validateTask(t models.Task) error {
	for _, existing := range m.tasks {
		if existing.ID == t.ID {
			return fmt.Errorf("%w: task id already exists", ErrConflict)
		}
	}
	client, ok := m.findUser(t.ClientID)
	if !ok || client.Role != models.RoleClient {
		return fmt.Errorf("%w: clientId must reference an existing client", ErrValidation)
	}
	if t.Budget.Min < 0 || t.Budget.Max < t.Budget.Min {
		return fmt.Errorf("%w: budget must satisfy 0 <= min <= max", ErrValidation)
	}
	if !t.Deadline.After(t.CreatedAt) {
		return fmt.Errorf("%w: deadline must be after creation time", ErrValidation)
	}
	return nil
}

func (m *Memory) findUser(id string) (*models.User, bool) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], true
		}
	}
	return nil, false
}

func (m *Memory) findTask(id string) (*models.Task, bool) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return &m.tasks[i], true
		}
	}
	return nil, false
}

func matches(t models.Task, f TaskFilter) bool {
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if f.Status != "" && string(t.Status) != f.Status {
		return false
	}
	if f.ClientID != "" && t.ClientID != f.ClientID {
		return false
	}
	if f.WorkerID != "" {
		found := false
		for _, b := range t.Bids {
			if b.WorkerID == f.WorkerID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *Memory) FilterTasks(f TaskFilter) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Task{}
	for _, t := range m.tasks {
		if matches(t, f) {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

// TaskWithClient resolves the owning client. A dangling clientId leaves the
// Client field nil rather than failing the lookup.
func (m *Memory) TaskWithClient(id string) (models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.findTask(id)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	out := cloneTask(*t)
	if client, ok := m.findUser(t.ClientID); ok {
		c := cloneUser(*client)
		out.Client = &c
	}
	return out, nil
}

// TaskWithBids resolves each bid's worker. Dangling workerIds leave the
// Worker field nil.
func (m *Memory) TaskWithBids(id string) (models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.findTask(id)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	out := cloneTask(*t)
	for i := range out.Bids {
		if worker, ok := m.findUser(out.Bids[i].WorkerID); ok {
			w := cloneUser(*worker)
			out.Bids[i].Worker = &w
		}
	}
	return out, nil
}

func (m *Memory) UpdateTaskStatus(taskID string, to models.TaskStatus, actor, actorID, note string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.findTask(taskID)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	if err := statemachine.CanTransition(t.Status, to, actor); err != nil {
		return models.Task{}, fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
	}
	m.applyTaskStatus(t, to, actorID, note)
	return cloneTask(*t), nil
}

func (m *Memory) ForceTaskStatus(taskID string, to models.TaskStatus, note string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.findTask(taskID)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	m.applyTaskStatus(t, to, "", note)
	return cloneTask(*t), nil
}

// applyTaskStatus mutates under the write lock and records history.
func (m *Memory) applyTaskStatus(t *models.Task, to models.TaskStatus, actorID, note string) {
	m.historySeq++
	t.StatusHistory = append(t.StatusHistory, models.TaskStatusHistory{
		ID:         m.historySeq,
		TaskID:     t.ID,
		FromStatus: t.Status,
		ToStatus:   to,
		ChangedBy:  actorID,
		Note:       note,
		CreatedAt:  nowUTC(),
	})
	t.Status = to
}

// ── bids ───────────────────────────────────────────────────────────

func (m *Memory) AppendBid(taskID string, bid models.Bid) (models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.findTask(taskID)
	if !ok {
		return models.Bid{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	if t.Status != models.StatusOpen {
		return models.Bid{}, fmt.Errorf("%w: task is not open for bidding", ErrConflict)
	}
	if bid.Amount <= 0 {
		return models.Bid{}, fmt.Errorf("%w: bid amount must be positive", ErrValidation)
	}
	worker, ok := m.findUser(bid.WorkerID)
	if !ok || worker.Role != models.RoleWorker {
		return models.Bid{}, fmt.Errorf("%w: workerId must reference an existing worker", ErrValidation)
	}
	for _, existing := range t.Bids {
		if existing.WorkerID == bid.WorkerID && existing.Status == models.BidPending {
			return models.Bid{}, fmt.Errorf("%w: worker already has a pending bid on this task", ErrConflict)
		}
	}
	bid.TaskID = t.ID
	bid.Status = models.BidPending
	t.Bids = append(t.Bids, cloneBid(bid))
	return cloneBid(bid), nil
}

func (m *Memory) BidsByWorker(workerID string) ([]models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Bid{}
	for _, t := range m.tasks {
		for _, b := range t.Bids {
			if b.WorkerID == workerID {
				out = append(out, cloneBid(b))
			}
		}
	}
	return out, nil
}

func (m *Memory) TaskForBid(bidID string) (models.Task, models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.tasks {
		for _, b := range m.tasks[i].Bids {
			if b.ID == bidID {
				return cloneTask(m.tasks[i]), cloneBid(b), nil
			}
		}
	}
	return models.Task{}, models.Bid{}, fmt.Errorf("%w: bid %s", ErrNotFound, bidID)
}

// DecideBid applies the client's decision atomically. Acceptance rejects
// every other pending bid and moves the task to assigned in the same
// critical section.
func (m *Memory) DecideBid(bidID string, to models.BidStatus, actorID string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		t := &m.tasks[i]
		for j := range t.Bids {
			if t.Bids[j].ID != bidID {
				continue
			}
			if t.ClientID != actorID {
				return models.Task{}, fmt.Errorf("%w: only the task's client can decide a bid", ErrValidation)
			}
			bid := &t.Bids[j]
			if err := statemachine.CanTransitionBid(bid.Status, to, "client"); err != nil {
				return models.Task{}, fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
			}
			if to == models.BidAccepted {
				if err := statemachine.CanTransition(t.Status, models.StatusAssigned, "system"); err != nil {
					return models.Task{}, fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
				}
				bid.Status = models.BidAccepted
				for k := range t.Bids {
					if k != j && t.Bids[k].Status == models.BidPending {
						t.Bids[k].Status = models.BidRejected
					}
				}
				m.applyTaskStatus(t, models.StatusAssigned, actorID, "Bid "+bidID+" accepted")
			} else {
				bid.Status = to
			}
			return cloneTask(*t), nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: bid %s", ErrNotFound, bidID)
}
