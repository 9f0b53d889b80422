package handlers

import (
	"net/http"

	"workbridge-api/models"
	"workbridge-api/statemachine"
	"workbridge-api/store"

	"github.com/gin-gonic/gin"
)

// ListTasks returns tasks matching the query filters (public).
// All filters combine with AND; no filters returns everything in
// store-insertion order.
func ListTasks(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.TaskFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Status:   c.Query("status"),
		}
		tasks, err := s.FilterTasks(filter)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"count": len(tasks),
			"tasks": tasks,
		})
	}
}

// GetTask returns a single task with its client and its bids' workers
// resolved. Dangling references appear as absent fields, never as fabricated
// users.
func GetTask(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, err := s.TaskWithBids(c.Param("id"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "Task not found"})
			return
		}
		if client, err := s.User(task.ClientID); err == nil {
			task.Client = &client
		}
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

// ListCategories returns the service taxonomy (public)
func ListCategories(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := s.Categories()
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"count":      len(cats),
			"categories": cats,
		})
	}
}

// GetUserProfile returns a user's public profile (public)
func GetUserProfile(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.User(c.Param("id"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// GetLifecycleInfo returns both state machines for informational purposes
func GetLifecycleInfo(c *gin.Context) {
	taskInfo := []gin.H{}
	for _, t := range statemachine.GetAllTransitions() {
		taskInfo = append(taskInfo, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	bidInfo := []gin.H{}
	for _, t := range statemachine.GetAllBidTransitions() {
		bidInfo = append(bidInfo, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"task_lifecycle":       taskInfo,
		"bid_lifecycle":        bidInfo,
		"task_terminal_states": []models.TaskStatus{models.StatusCompleted, models.StatusCancelled},
		"bid_terminal_states":  []models.BidStatus{models.BidAccepted, models.BidRejected},
		"description":          "WorkBridge Task and Bid Lifecycle State Machines",
	})
}
