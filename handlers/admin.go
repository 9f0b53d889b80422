package handlers

import (
	"net/http"

	"workbridge-api/models"
	"workbridge-api/store"

	"github.com/gin-gonic/gin"
)

// AdminGetAllUsers returns all users, optionally filtered by role — admin only
func AdminGetAllUsers(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.Users(models.UserRole(c.Query("role")))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
	}
}

// AdminGetAllTasks returns all tasks with an aggregate view — admin only
func AdminGetAllTasks(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := s.FilterTasks(store.TaskFilter{
			Status:   c.Query("status"),
			ClientID: c.Query("client_id"),
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		// Aggregate by status; awarded value sums accepted bids on
		// completed tasks
		summary := map[string]int{}
		var awardedValue float64
		for _, t := range tasks {
			summary[string(t.Status)]++
			if t.Status != models.StatusCompleted {
				continue
			}
			for _, b := range t.Bids {
				if b.Status == models.BidAccepted {
					awardedValue += b.Amount
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"task_summary":  summary,
			"awarded_value": awardedValue,
			"count":         len(tasks),
			"tasks":         tasks,
		})
	}
}

// AdminForceTaskStatus lets admin override any task state (emergency use)
func AdminForceTaskStatus(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID := c.Param("id")
		var req struct {
			Status models.TaskStatus `json:"status" binding:"required"`
			Reason string            `json:"reason"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		task, err := s.TaskWithClient(taskID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Task not found"})
			return
		}

		updated, err := s.ForceTaskStatus(taskID, req.Status, "[ADMIN OVERRIDE] "+req.Reason)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":         "Task status force-updated by admin",
			"task_id":         updated.ID,
			"previous_status": task.Status,
			"new_status":      updated.Status,
		})
	}
}
