package main

import (
	"alcyxob/training-calendar/internal/api"
	"alcyxob/training-calendar/internal/config"
	"alcyxob/training-calendar/internal/repository/mongo"
	"alcyxob/training-calendar/internal/service"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Training Calendar Server...")

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
	// The unique indexes on plans and days are the correctness boundary
	// for concurrent materialization, so creation happens before serving.
	log.Println("Ensuring database indexes...")
	{
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureWeekIndexes(ctx, appDB.Collection("weeks"))
		mongo.EnsureDayIndexes(ctx, appDB.Collection("days"))
		mongo.EnsurePeriodIndexes(ctx, appDB.Collection("periods"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		cancel()
		log.Println("Index creation process completed.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	weekRepo := mongo.NewMongoWeekRepository(appDB)
	dayRepo := mongo.NewMongoDayRepository(appDB)
	periodRepo := mongo.NewMongoPeriodRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	calendarService := service.NewCalendarService(planRepo, weekRepo, dayRepo, periodRepo, workoutRepo, cfg.Calendar.RebuildDebounce)
	workoutService := service.NewWorkoutService(planRepo, dayRepo, periodRepo, workoutRepo)
	dayService := service.NewDayService(dayRepo, periodRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, calendarService, workoutService, dayService)

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
