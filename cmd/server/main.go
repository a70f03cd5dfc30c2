package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/torann10/flowboard-sub000/internal/config"
	"github.com/torann10/flowboard-sub000/internal/constants"
	"github.com/torann10/flowboard-sub000/internal/database"
	"github.com/torann10/flowboard-sub000/internal/handlers"
	"github.com/torann10/flowboard-sub000/internal/middleware"
	"github.com/torann10/flowboard-sub000/internal/report"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"github.com/torann10/flowboard-sub000/internal/services"
	"github.com/torann10/flowboard-sub000/internal/storage"
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

	// Object storage for report PDFs
	artifactStore, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create artifact store: %v", err)
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
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	timeLogRepo := repository.NewTimeLogRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	timeLogService := services.NewTimeLogService(timeLogRepo, taskRepo, projectRepo)
	reportService := services.NewReportService(
		reportRepo,
		projectRepo,
		report.NewCOCGenerator(timeLogRepo, taskRepo, projectRepo),
		report.NewActivityGenerator(taskRepo),
		report.NewMatrixGenerator(timeLogRepo, projectRepo),
		report.NewRenderer(),
		report.NewPDFEncoder(cfg.ReportFontPath),
		artifactStore,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	timeLogHandler := handlers.NewTimeLogHandler(timeLogService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Flowboard API is running",
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
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProjectAccess(), middleware.RequireProjectMaintainer(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), middleware.RequireProjectMaintainer(), projectHandler.DeleteProject)

			projects.GET("/:id/users", middleware.RequireProjectAccess(), projectHandler.ListProjectUsers)
			projects.POST("/:id/users", middleware.RequireProjectAccess(), middleware.RequireProjectMaintainer(), projectHandler.AddProjectUser)
			projects.PUT("/:id/users/:user_id", middleware.RequireProjectAccess(), middleware.RequireProjectMaintainer(), projectHandler.UpdateProjectUser)
			projects.DELETE("/:id/users/:user_id", middleware.RequireProjectAccess(), middleware.RequireProjectMaintainer(), projectHandler.RemoveProjectUser)

			projects.GET("/:id/story-points", middleware.RequireProjectAccess(), projectHandler.ListStoryPointMappings)
			projects.POST("/:id/story-points", middleware.RequireProjectAccess(), middleware.RequireProjectMaintainer(), projectHandler.CreateStoryPointMapping)
			projects.DELETE("/:id/story-points/:mapping_id", middleware.RequireProjectAccess(), middleware.RequireProjectMaintainer(), projectHandler.DeleteStoryPointMapping)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.GET("/:id/time-logs", timeLogHandler.ListTimeLogs)
			tasks.POST("/:id/time-logs", timeLogHandler.LogTime)
		}

		// Time log routes (protected)
		timeLogs := api.Group("/time-logs")
		timeLogs.Use(middleware.RequireAuth())
		{
			timeLogs.PUT("/:id", timeLogHandler.UpdateTimeLog)
			timeLogs.DELETE("/:id", timeLogHandler.DeleteTimeLog)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth())
		{
			reports.POST("/coc", reportHandler.CreateCOC)
			reports.POST("/activity", reportHandler.CreateActivity)
			reports.POST("/employee-matrix", reportHandler.CreateEmployeeMatrix)
			reports.GET("", reportHandler.ListReports)
			reports.GET("/:id/download", reportHandler.DownloadReport)
			reports.PATCH("/:id", reportHandler.RenameReport)
			reports.DELETE("/:id", reportHandler.DeleteReport)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
