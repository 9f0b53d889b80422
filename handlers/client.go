package handlers

import (
	"net/http"
	"time"

	"workbridge-api/middleware"
	"workbridge-api/models"
	"workbridge-api/statemachine"
	"workbridge-api/store"

	"github.com/gin-gonic/gin"
)

type CreateTaskRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
	Subcategory string          `json:"subcategory"`
	Budget      models.Budget   `json:"budget" binding:"required"`
	Location    models.Location `json:"location"`
	Images      []string        `json:"images"`
	Deadline    time.Time       `json:"deadline" binding:"required"`
}

// CreateTask posts a new task (client only)
func CreateTask(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := middleware.GetUserID(c)

		var req CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		task := models.NewTask(clientID, req.Title, req.Description, req.Category,
			req.Subcategory, req.Budget, req.Location, req.Images, req.Deadline)

		if err := s.CreateTask(task); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		created, err := s.TaskWithClient(task.ID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Task posted successfully",
			"task":    created,
		})
	}
}

// GetMyTasks returns all tasks posted by the logged-in client, with a
// per-status summary for the dashboard
func GetMyTasks(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := middleware.GetUserID(c)

		tasks, err := s.FilterTasks(store.TaskFilter{
			ClientID: clientID,
			Status:   c.Query("status"),
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		summary := map[string]int{}
		totalBids := 0
		for _, t := range tasks {
			summary[string(t.Status)]++
			totalBids += len(t.Bids)
		}

		c.JSON(http.StatusOK, gin.H{
			"task_summary": summary,
			"total_bids":   totalBids,
			"count":        len(tasks),
			"tasks":        tasks,
		})
	}
}

// transitionTask handles a client-driven status change on an owned task
func transitionTask(s store.Store, c *gin.Context, to models.TaskStatus, note string) {
	clientID := middleware.GetUserID(c)
	taskID := c.Param("id")

	task, err := s.TaskWithClient(taskID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Task not found"})
		return
	}
	if task.ClientID != clientID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This task does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(task.Status, to, "client"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    task.Status,
			"requested":         to,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(task.Status),
		})
		return
	}

	updated, err := s.UpdateTaskStatus(taskID, to, "client", clientID, note)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         note,
		"task_id":         updated.ID,
		"previous_status": string(task.Status),
		"current_status":  string(updated.Status),
	})
}

// CancelTask cancels a task (client can cancel open or assigned tasks)
func CancelTask(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		transitionTask(s, c, models.StatusCancelled, "Task cancelled by client")
	}
}

// CompleteTask marks an assigned task as completed
func CompleteTask(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		transitionTask(s, c, models.StatusCompleted, "Task marked completed by client")
	}
}

type DecideBidRequest struct {
	Status models.BidStatus `json:"status" binding:"required"`
}

// DecideBid accepts or rejects a pending bid on one of the client's tasks.
// Accepting a bid rejects all other pending bids and assigns the task.
func DecideBid(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := middleware.GetUserID(c)
		bidID := c.Param("id")

		var req DecideBidRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Status != models.BidAccepted && req.Status != models.BidRejected {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be: accepted or rejected"})
			return
		}

		task, bid, err := s.TaskForBid(bidID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Bid not found"})
			return
		}
		if task.ClientID != clientID {
			c.JSON(http.StatusForbidden, gin.H{"error": "This bid is not on one of your tasks"})
			return
		}

		if err := statemachine.CanTransitionBid(bid.Status, req.Status, "client"); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             "Invalid state transition",
				"current_status":    bid.Status,
				"requested":         req.Status,
				"reason":            err.Error(),
				"valid_next_states": statemachine.ValidBidTransitionsFrom(bid.Status),
			})
			return
		}

		updated, err := s.DecideBid(bidID, req.Status, clientID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "Bid " + string(req.Status),
			"bid_id":      bidID,
			"task_id":     updated.ID,
			"task_status": updated.Status,
		})
	}
}
