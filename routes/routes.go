package routes

import (
	"workbridge-api/handlers"
	"workbridge-api/middleware"
	"workbridge-api/models"
	"workbridge-api/store"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, s store.Store) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register(s))
		public.POST("/auth/login", handlers.Login(s))

		// Tasks, categories, user profiles (no auth needed)
		public.GET("/tasks", handlers.ListTasks(s))
		public.GET("/tasks/:id", handlers.GetTask(s))
		public.GET("/categories", handlers.ListCategories(s))
		public.GET("/users/:id", handlers.GetUserProfile(s))

		// Lifecycle info (great for docs/Postman)
		public.GET("/lifecycle", handlers.GetLifecycleInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile(s))
		auth.GET("/dashboard", handlers.GetDashboard(s))
	}

	// ── Client routes ──────────────────────────────────────────────
	client := r.Group("/api/client")
	client.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleClient))
	{
		client.POST("/tasks", handlers.CreateTask(s))
		client.GET("/tasks", handlers.GetMyTasks(s))
		client.PUT("/tasks/:id/cancel", handlers.CancelTask(s))
		client.PUT("/tasks/:id/complete", handlers.CompleteTask(s))
		client.PATCH("/bids/:id", handlers.DecideBid(s))
	}

	// ── Worker routes ──────────────────────────────────────────────
	worker := r.Group("/api/worker")
	worker.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleWorker))
	{
		worker.POST("/tasks/:id/bids", handlers.PlaceBid(s))
		worker.GET("/bids", handlers.GetMyBids(s))
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers(s))
		admin.GET("/tasks", handlers.AdminGetAllTasks(s))
		admin.PUT("/tasks/:id/status", handlers.AdminForceTaskStatus(s))
	}
}
