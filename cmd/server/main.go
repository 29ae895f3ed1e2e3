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

	"fitforge/fitness-planner/internal/api"
	"fitforge/fitness-planner/internal/config"
	"fitforge/fitness-planner/internal/recommend"
	"fitforge/fitness-planner/internal/repository/mongo"
	"fitforge/fitness-planner/internal/service"
	"fitforge/fitness-planner/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Fitness Planner Server...")

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
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("profiles"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsurePlanIndexes(ctx, appDB)
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Recommendation Provider ---
	log.Printf("Initializing recommendation provider (%s)...", cfg.AI.Provider)
	provider, err := recommend.NewProvider(cfg.AI)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize recommendation provider: %v", err)
	}

	// --- Initialize Response Archive ---
	var archive storage.ResponseArchive = storage.NoopArchive{}
	if cfg.Archive.BucketName != "" {
		log.Println("Initializing response archive...")
		archive, err = storage.NewS3Archive(cfg.Archive)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 archive: %v", err)
		}
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo)
	planService := service.NewPlanService(profileRepo, planRepo, exerciseRepo, provider, archive)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, profileService, planService)

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
