package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellnest/backend/internal/api"
	"wellnest/backend/internal/config"
	"wellnest/backend/internal/repository/mongo"
	"wellnest/backend/internal/seed"
	"wellnest/backend/internal/service"
	"wellnest/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting WellNest Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_logs"))
		mongo.EnsureMealLogIndexes(ctx, appDB.Collection("meal_logs"))
		mongo.EnsureWaterSleepLogIndexes(ctx, appDB.Collection("water_sleep_logs"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("workout_plans"), appDB.Collection("meal_plans"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	workoutLogRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	mealLogRepo := mongo.NewMongoMealLogRepository(appDB)
	waterSleepLogRepo := mongo.NewMongoWaterSleepLogRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)

	// --- Seed Bootstrap Data ---
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.Run(seedCtx, cfg.Seed, userRepo, trainerRepo); err != nil {
		log.Printf("ERROR: Seeding failed: %v", err)
	}
	cancelSeed()

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	trainerProfileService := service.NewTrainerProfileService(userRepo, trainerRepo, fileStorage)
	matchingService := service.NewMatchingService(userRepo, trainerRepo)
	enrollmentService := service.NewEnrollmentService(userRepo, trainerRepo)
	trackerService := service.NewTrackerService(workoutLogRepo, mealLogRepo, waterSleepLogRepo)
	analyticsService := service.NewAnalyticsService(workoutLogRepo, mealLogRepo, waterSleepLogRepo)
	planService := service.NewPlanService(userRepo, trainerRepo, planRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, trainerProfileService, matchingService,
		enrollmentService, trackerService, analyticsService, planService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
