package handlers

import (
	"net/http"

	"workbridge-api/middleware"
	"workbridge-api/models"
	"workbridge-api/store"

	"github.com/gin-gonic/gin"
)

type PlaceBidRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Message string  `json:"message"`
}

// PlaceBid submits a bid on an open task (worker only). One pending bid per
// worker per task; duplicates are rejected with a conflict.
func PlaceBid(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		workerID := middleware.GetUserID(c)
		taskID := c.Param("id")

		var req PlaceBidRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		bid := models.NewBid(taskID, workerID, req.Amount, req.Message)
		created, err := s.AppendBid(taskID, bid)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Bid placed successfully",
			"bid":     created,
		})
	}
}

// GetMyBids returns all bids placed by the logged-in worker, with a
// per-status summary
func GetMyBids(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		workerID := middleware.GetUserID(c)

		bids, err := s.BidsByWorker(workerID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		summary := map[string]int{}
		for _, b := range bids {
			summary[string(b.Status)]++
		}

		c.JSON(http.StatusOK, gin.H{
			"bid_summary": summary,
			"count":       len(bids),
			"bids":        bids,
		})
	}
}
