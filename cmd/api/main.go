package main

import (
	"fmt"
	"net/http"
	"os"
	"stash/internal/config"
	"stash/internal/database"
	"stash/internal/forex"
	"stash/internal/handlers"
	"stash/internal/logger"
	"stash/internal/middleware"
	"stash/internal/services"
	"stash/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "stash/internal/docs" // Import swagger docs
)

// @title           Stash API
// @version         1.0
// @description     Stash is a personal finance backend for tracking expenses, budgets, savings goals, and savings streaks.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name stash_session
// @description Session cookie issued by the login and register endpoints.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db)
	auditService := services.NewAuditService(db)
	expenseService := services.NewExpenseService(db)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db)
	streakService := services.NewStreakService(db)
	rateClient := forex.NewClient(&http.Client{Timeout: appConfig.ForexTimeout}, appConfig.ForexBaseURL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessionService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	streakHandler := handlers.NewStreakHandler(streakService, auditService)
	currencyHandler := handlers.NewCurrencyHandler(rateClient)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.SessionAuth(sessionService))

	// Session introspection
	protected.GET("/auth/session", authHandler.GetSession)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.PATCH("/:id/progress", goalHandler.UpdateGoalProgress)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Savings streak routes
	streaks := protected.Group("/streaks")
	streaks.POST("", streakHandler.CreateStreak)
	streaks.GET("", streakHandler.GetStreaks)
	streaks.GET("/:id", streakHandler.GetStreak)
	streaks.DELETE("/:id", streakHandler.DeleteStreak)
	streaks.POST("/:id/entries", streakHandler.AddStreakEntry)
	streaks.GET("/:id/entries", streakHandler.GetStreakEntries)

	// External data routes
	external := protected.Group("/external")
	external.GET("/currency", currencyHandler.GetRate)

	log.Infof("Starting Stash backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
