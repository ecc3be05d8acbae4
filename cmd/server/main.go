package main

import (
	"log"

	"github.com/Chinmay2660/tracker-api/internal/config"
	"github.com/Chinmay2660/tracker-api/internal/constants"
	"github.com/Chinmay2660/tracker-api/internal/database"
	"github.com/Chinmay2660/tracker-api/internal/handlers"
	"github.com/Chinmay2660/tracker-api/internal/middleware"
	"github.com/Chinmay2660/tracker-api/internal/repository"
	"github.com/Chinmay2660/tracker-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, columnRepo)
	jobService := services.NewJobService(jobRepo, columnRepo)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, oauthConfig)
	columnHandler := handlers.NewColumnHandler()
	jobHandler := handlers.NewJobHandler(jobService, aiService)
	interviewHandler := handlers.NewInterviewHandler()
	resumeHandler := handlers.NewResumeHandler(cfg.UploadDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Job Tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/google", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Board (protected)
		api.GET("/board", middleware.RequireAuth(), columnHandler.GetBoard)

		// Column routes (protected)
		columns := api.Group("/columns")
		columns.Use(middleware.RequireAuth())
		{
			columns.GET("", columnHandler.ListColumns)
			columns.POST("", columnHandler.CreateColumn)
			columns.PUT("/reorder", columnHandler.ReorderColumns)
			columns.PUT("/:id", columnHandler.UpdateColumn)
			columns.DELETE("/:id", columnHandler.DeleteColumn)
		}

		// Job routes (protected)
		jobs := api.Group("/jobs")
		jobs.Use(middleware.RequireAuth())
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.POST("", jobHandler.CreateJob)
			jobs.POST("/parse", jobHandler.ParseJobPosting)
			jobs.PUT("/reorder", jobHandler.ReorderJobs)
			jobs.GET("/:id", middleware.RequireJobAccess(), jobHandler.GetJob)
			jobs.PATCH("/:id", jobHandler.UpdateJob)
			jobs.PUT("/:id/move", jobHandler.MoveJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
		}

		// Interview round routes (protected)
		interviews := api.Group("/interviews")
		interviews.Use(middleware.RequireAuth())
		{
			interviews.GET("", interviewHandler.ListRounds)
			interviews.POST("", interviewHandler.CreateRound)
			interviews.PATCH("/:id", interviewHandler.UpdateRound)
			interviews.DELETE("/:id", interviewHandler.DeleteRound)
		}

		// Resume routes (protected)
		resumes := api.Group("/resumes")
		resumes.Use(middleware.RequireAuth())
		{
			resumes.GET("", resumeHandler.ListResumes)
			resumes.POST("", resumeHandler.UploadResume)
			resumes.GET("/:id/file", resumeHandler.DownloadResume)
			resumes.PATCH("/:id", resumeHandler.RenameResume)
			resumes.DELETE("/:id", resumeHandler.DeleteResume)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
