package api

import (
	"net/http"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trainerProfileService service.TrainerProfileService,
	matchingService service.MatchingService,
	enrollmentService service.EnrollmentService,
	trackerService service.TrackerService,
	analyticsService service.AnalyticsService,
	planService service.PlanService,
) {
	authHandler := NewAuthHandler(authService)
	trainerHandler := NewTrainerHandler(trainerProfileService, matchingService)
	enrollmentHandler := NewEnrollmentHandler(enrollmentService)
	trackerHandler := NewTrackerHandler(trackerService, analyticsService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "role": role})
		})

		// --- Trainer Directory ---
		trainersGroup := protected.Group("/trainers")
		{
			trainersGroup.GET("", trainerHandler.ListTrainers)
			trainersGroup.GET("/recommend", trainerHandler.Recommend)
			trainersGroup.GET("/:id", trainerHandler.GetTrainer)
			trainersGroup.GET("/:id/image", trainerHandler.ImageDownloadURL)

			// Any authenticated user may apply to become a trainer.
			trainersGroup.POST("/enroll", trainerHandler.EnrollAsTrainer)

			// Profile editing is trainer-only.
			trainersGroup.PUT("/:id", RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin), trainerHandler.UpdateProfile)
			trainersGroup.POST("/:id/image-upload", RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin), trainerHandler.RequestImageUpload)
			trainersGroup.POST("/:id/image-confirm", RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin), trainerHandler.ConfirmImageUpload)
		}

		// --- Enrollment (user side) ---
		enrollmentGroup := protected.Group("/enrollment")
		{
			enrollmentGroup.POST("/hire", enrollmentHandler.HireTrainer)
			enrollmentGroup.POST("/unhire", enrollmentHandler.UnhireTrainer)
		}

		// --- Trainer-only operations ---
		trainerApiGroup := protected.Group("/trainer")
		trainerApiGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerApiGroup.GET("/clients", enrollmentHandler.Clients)
			trainerApiGroup.GET("/pending-requests", enrollmentHandler.PendingRequests)
			trainerApiGroup.POST("/accept-request", enrollmentHandler.AcceptRequest)
			trainerApiGroup.POST("/reject-request", enrollmentHandler.RejectRequest)
			trainerApiGroup.POST("/remove-client", enrollmentHandler.RemoveClient)

			trainerApiGroup.POST("/assign-plan", planHandler.AssignWorkoutPlan)
			trainerApiGroup.POST("/assign-meal-plan", planHandler.AssignMealPlan)
		}

		// --- Tracker ---
		trackerGroup := protected.Group("/tracker")
		{
			trackerGroup.POST("/workouts", trackerHandler.LogWorkout)
			trackerGroup.GET("/workouts/today", trackerHandler.TodayWorkouts)
			trackerGroup.GET("/workouts/range", trackerHandler.WorkoutsInRange)

			trackerGroup.POST("/meals", trackerHandler.LogMeal)
			trackerGroup.GET("/meals/today", trackerHandler.TodayMeals)
			trackerGroup.GET("/meals/range", trackerHandler.MealsInRange)

			trackerGroup.POST("/water-sleep", trackerHandler.LogWaterSleep)
			trackerGroup.GET("/water-sleep/today", trackerHandler.TodayWaterSleep)
			trackerGroup.GET("/water-sleep/range", trackerHandler.WaterSleepInRange)

			trackerGroup.GET("/analytics/dashboard", trackerHandler.Dashboard)
			trackerGroup.GET("/analytics/weekly", trackerHandler.Weekly)
		}

		// --- Plans (client side) ---
		plansGroup := protected.Group("/plans")
		{
			plansGroup.GET("/workouts", planHandler.MyWorkoutPlans)
			plansGroup.GET("/meals", planHandler.MyMealPlans)
		}
	}
}
