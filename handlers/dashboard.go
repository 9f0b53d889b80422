package handlers

import (
	"net/http"

	"workbridge-api/middleware"
	"workbridge-api/models"
	"workbridge-api/store"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns a role-aware activity summary for the logged-in user.
// Clients see their posted tasks and the bids against them; workers see the
// tasks they have bid on and how those bids are going.
func GetDashboard(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		role := middleware.GetRole(c)

		switch role {
		case models.RoleClient:
			tasks, err := s.FilterTasks(store.TaskFilter{ClientID: userID})
			if err != nil {
				c.JSON(statusFor(err), gin.H{"error": err.Error()})
				return
			}
			active := 0
			totalBids := 0
			for _, t := range tasks {
				if t.Status == models.StatusOpen {
					active++
				}
				totalBids += len(t.Bids)
			}
			c.JSON(http.StatusOK, gin.H{
				"role":         role,
				"active_tasks": active,
				"total_bids":   totalBids,
				"task_count":   len(tasks),
				"tasks":        tasks,
			})

		case models.RoleWorker:
			tasks, err := s.FilterTasks(store.TaskFilter{WorkerID: userID})
			if err != nil {
				c.JSON(statusFor(err), gin.H{"error": err.Error()})
				return
			}
			bids, err := s.BidsByWorker(userID)
			if err != nil {
				c.JSON(statusFor(err), gin.H{"error": err.Error()})
				return
			}
			active, won := 0, 0
			for _, b := range bids {
				switch b.Status {
				case models.BidPending:
					active++
				case models.BidAccepted:
					won++
				}
			}
			c.JSON(http.StatusOK, gin.H{
				"role":        role,
				"active_bids": active,
				"won_bids":    won,
				"bid_count":   len(bids),
				"tasks":       tasks,
			})

		default:
			// Admins get the global picture
			tasks, err := s.FilterTasks(store.TaskFilter{})
			if err != nil {
				c.JSON(statusFor(err), gin.H{"error": err.Error()})
				return
			}
			summary := map[string]int{}
			for _, t := range tasks {
				summary[string(t.Status)]++
			}
			c.JSON(http.StatusOK, gin.H{
				"role":         role,
				"task_summary": summary,
				"task_count":   len(tasks),
			})
		}
	}
}
