package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/KESA-RIKIN/zero-hunger-platform/handlers"
	"github.com/KESA-RIKIN/zero-hunger-platform/middleware"
	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Active donation feed (no auth needed)
		public.GET("/donations", handlers.GetDonations)

		// Mock payment processor
		public.POST("/payments/process", handlers.ProcessPayment)

		// State machine info (for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Lenient routes: empty results when unauthenticated ─────────
	lenient := r.Group("/api")
	lenient.Use(middleware.OptionalAuth())
	{
		lenient.GET("/donations/my-donations", handlers.GetMyDonations)
		lenient.GET("/donations/my-requests", handlers.GetMyRequests)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.POST("/donations", handlers.CreateDonation)
		auth.POST("/bookings", handlers.CreateBooking)
	}

	// ── Coordinator routes ─────────────────────────────────────────
	coordinator := r.Group("/api/tasks")
	coordinator.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCoordinator))
	{
		coordinator.GET("/available", handlers.GetAvailableTasks)
		coordinator.GET("/mine", handlers.GetMyTasks)
		coordinator.POST("/:id/accept", handlers.AcceptTask)
		coordinator.POST("/:id/pickup", handlers.PickupTask)
		coordinator.POST("/:id/deliver", handlers.DeliverTask)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/donations", handlers.AdminGetAllDonations)
		admin.GET("/users", handlers.AdminGetAllUsers)
	}
}
