package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"workbridge-api/models"
	"workbridge-api/statemachine"
)

// SQLite is the durable backend. Same contract as Memory; sqlite's
// serialized writes give the single-writer discipline the in-memory store
// gets from its mutex.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path and seeds the
// demo dataset on first open. FK constraints stay off so dangling
// client/worker references behave like the in-memory store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Task{},
		&models.Bid{},
		&models.TaskStatusHistory{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.seedIfEmpty(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) seedIfEmpty() error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range SeedUsers() {
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}
		for _, c := range SeedCategories() {
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}
		for i, t := range SeedTasks() {
			t.Position = i + 1
			if err := tx.Create(&t).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ── users ──────────────────────────────────────────────────────────

func (s *SQLite) CreateUser(u models.User) error {
	var existing models.User
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(u.Email)).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := s.db.Create(&u).Error; err != nil {
		return fmt.Errorf("%w: %s", ErrConflict, err.Error())
	}
	return nil
}

func (s *SQLite) User(id string) (models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *SQLite) UserByEmail(email string) (models.User, error) {
	var u models.User
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: no user with that email", ErrNotFound)
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *SQLite) Users(role models.UserRole) ([]models.User, error) {
	users := []models.User{}
	q := s.db.Order("created_at")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ── categories ─────────────────────────────────────────────────────

func (s *SQLite) Categories() ([]models.Category, error) {
	cats := []models.Category{}
	if err := s.db.Order("id").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// ── tasks ──────────────────────────────────────────────────────────

func (s *SQLite) CreateTask(t models.Task) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var client models.User
		if err := tx.First(&client, "id = ?", t.ClientID).Error; err != nil ||
			client.Role != models.RoleClient {
			return fmt.Errorf("%w: clientId must reference an existing client", ErrValidation)
		}
		if t.Budget.Min < 0 || t.Budget.Max < t.Budget.Min {
			return fmt.Errorf("%w: budget must satisfy 0 <= min <= max", ErrValidation)
		}
		if !t.Deadline.After(t.CreatedAt) {
			return fmt.Errorf("%w: deadline must be after creation time", ErrValidation)
		}
		var maxPos int
		if err := tx.Model(&models.Task{}).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos).Error; err != nil {
			return err
		}
		t.Position = maxPos + 1
		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("%w: %s", ErrConflict, err.Error())
		}
		return nil
	})
}

func (s *SQLite) FilterTasks(f TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	q := s.db.Preload("Bids").Order("position")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.WorkerID != "" {
		q = q.Where("id IN (?)", s.db.Model(&models.Bid{}).
			Select("task_id").Where("worker_id = ?", f.WorkerID))
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *SQLite) loadTask(id string) (models.Task, error) {
	var t models.Task
	err := s.db.Preload("Bids").Preload("StatusHistory").First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
		}
		return models.Task{}, err
	}
	return t, nil
}

func (s *SQLite) TaskWithClient(id string) (models.Task, error) {
	t, err := s.loadTask(id)
	if err != nil {
		return models.Task{}, err
	}
	var client models.User
	if err := s.db.First(&client, "id = ?", t.ClientID).Error; err == nil {
		t.Client = &client
	}
	return t, nil
}

func (s *SQLite) TaskWithBids(id string) (models.Task, error) {
	t, err := s.loadTask(id)
	if err != nil {
		return models.Task{}, err
	}
	for i := range t.Bids {
		var worker models.User
		if err := s.db.First(&worker, "id = ?", t.Bids[i].WorkerID).Error; err == nil {
			w := worker
			t.Bids[i].Worker = &w
		}
	}
	return t, nil
}

func (s *SQLite) UpdateTaskStatus(taskID string, to models.TaskStatus, actor, actorID, note string) (models.Task, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Task
		if err := tx.First(&t, "id = ?", taskID).Error; err != nil {
			return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
		}
		if err := statemachine.CanTransition(t.Status, to, actor); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
		}
		return applyTaskStatusTx(tx, &t, to, actorID, note)
	})
	if err != nil {
		return models.Task{}, err
	}
	return s.loadTask(taskID)
}

func (s *SQLite) ForceTaskStatus(taskID string, to models.TaskStatus, note string) (models.Task, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Task
		if err := tx.First(&t, "id = ?", taskID).Error; err != nil {
			return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
		}
		return applyTaskStatusTx(tx, &t, to, "", note)
	})
	if err != nil {
		return models.Task{}, err
	}
	return s.loadTask(taskID)
}

func applyTaskStatusTx(tx *gorm.DB, t *models.Task, to models.TaskStatus, actorID, note string) error {
	history := models.TaskStatusHistory{
		TaskID:     t.ID,
		FromStatus: t.Status,
		ToStatus:   to,
		ChangedBy:  actorID,
		Note:       note,
		CreatedAt:  nowUTC(),
	}
	if err := tx.Model(t).Update("status", to).Error; err != nil {
		return err
	}
	return tx.Create(&history).Error
}

// ── bids ───────────────────────────────────────────────────────────

func (s *SQLite) AppendBid(taskID string, bid models.Bid) (models.Bid, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Task
		if err := tx.First(&t, "id = ?", taskID).Error; err != nil {
			return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
		}
		if t.Status != models.StatusOpen {
			return fmt.Errorf("%w: task is not open for bidding", ErrConflict)
		}
		if bid.Amount <= 0 {
			return fmt.Errorf("%w: bid amount must be positive", ErrValidation)
		}
		var worker models.User
		if err := tx.First(&worker, "id = ?", bid.WorkerID).Error; err != nil ||
			worker.Role != models.RoleWorker {
			return fmt.Errorf("%w: workerId must reference an existing worker", ErrValidation)
		}
		var pending int64
		if err := tx.Model(&models.Bid{}).
			Where("task_id = ? AND worker_id = ? AND status = ?", taskID, bid.WorkerID, models.BidPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return fmt.Errorf("%w: worker already has a pending bid on this task", ErrConflict)
		}
		bid.TaskID = taskID
		bid.Status = models.BidPending
		return tx.Create(&bid).Error
	})
	if err != nil {
		return models.Bid{}, err
	}
	return bid, nil
}

func (s *SQLite) BidsByWorker(workerID string) ([]models.Bid, error) {
	bids := []models.Bid{}
	err := s.db.
		Joins("JOIN tasks ON tasks.id = bids.task_id").
		Where("bids.worker_id = ?", workerID).
		Order("tasks.position, bids.created_at").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (s *SQLite) TaskForBid(bidID string) (models.Task, models.Bid, error) {
	var bid models.Bid
	if err := s.db.First(&bid, "id = ?", bidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, models.Bid{}, fmt.Errorf("%w: bid %s", ErrNotFound, bidID)
		}
		return models.Task{}, models.Bid{}, err
	}
	t, err := s.loadTask(bid.TaskID)
	if err != nil {
		return models.Task{}, models.Bid{}, err
	}
	return t, bid, nil
}

func (s *SQLite) DecideBid(bidID string, to models.BidStatus, actorID string) (models.Task, error) {
	var taskID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bid models.Bid
		if err := tx.First(&bid, "id = ?", bidID).Error; err != nil {
			return fmt.Errorf("%w: bid %s", ErrNotFound, bidID)
		}
		var t models.Task
		if err := tx.First(&t, "id = ?", bid.TaskID).Error; err != nil {
			return fmt.Errorf("%w: task %s", ErrNotFound, bid.TaskID)
		}
		taskID = t.ID
		if t.ClientID != actorID {
			return fmt.Errorf("%w: only the task's client can decide a bid", ErrValidation)
		}
		if err := statemachine.CanTransitionBid(bid.Status, to, "client"); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
		}
		if to != models.BidAccepted {
			return tx.Model(&bid).Update("status", to).Error
		}
		if err := statemachine.CanTransition(t.Status, models.StatusAssigned, "system"); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
		}
		if err := tx.Model(&bid).Update("status", models.BidAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Bid{}).
			Where("task_id = ? AND id <> ? AND status = ?", t.ID, bid.ID, models.BidPending).
			Update("status", models.BidRejected).Error; err != nil {
			return err
		}
		return applyTaskStatusTx(tx, &t, models.StatusAssigned, actorID, "Bid "+bidID+" accepted")
	})
	if err != nil {
		return models.Task{}, err
	}
	return s.loadTask(taskID)
}
