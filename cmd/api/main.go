package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prishaadesai/jewelry-backend/internal/config"
	"github.com/prishaadesai/jewelry-backend/internal/handler"
	"github.com/prishaadesai/jewelry-backend/internal/middleware"
	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/internal/repository"
	"github.com/prishaadesai/jewelry-backend/internal/service"
	"github.com/prishaadesai/jewelry-backend/internal/ws"
	"github.com/prishaadesai/jewelry-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// 2. Setup database
	db := database.Connect(cfg.DatabaseURL)
	db.AutoMigrate(&model.User{}, &model.Job{}, &model.Transaction{})

	// 3. Seed default owner account
	seedDefaultOwner(db, cfg)

	// 4. Setup websocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection (wiring layers)
	userRepo := repository.NewUserRepo(db)
	jobRepo := repository.NewJobRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	jobService := service.NewJobService(jobRepo, db, wsHub)
	taskService := service.NewTaskService(transactionRepo, db, wsHub)
	reportService := service.NewReportService(reportRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	jobHandler := handler.NewJobHandler(jobService, userRepo)
	workerHandler := handler.NewWorkerHandler(taskService)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Jewelry Production Tracker v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Jewelry Production Management API", "status": "running"})
	})

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	auth.Post("/register", middleware.RequireAuth(userRepo), middleware.RequireOwner(), authHandler.Register)
	auth.Get("/me", middleware.RequireAuth(userRepo), authHandler.Me)

	protected := api.Group("", middleware.RequireAuth(userRepo))

	// User admin (owner only)
	protected.Get("/users", middleware.RequireOwner(), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequireOwner(), userHandler.GetUser)
	protected.Put("/users/:id", middleware.RequireOwner(), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequireOwner(), userHandler.DeleteUser)

	// Jobs: reads for any authenticated user, writes owner only
	protected.Get("/jobs", jobHandler.GetJobs)
	protected.Get("/jobs/:id", jobHandler.GetJob)
	protected.Post("/jobs", middleware.RequireOwner(), jobHandler.CreateJob)
	protected.Put("/jobs/:id", middleware.RequireOwner(), jobHandler.UpdateJob)
	protected.Post("/jobs/:id/cancel", middleware.RequireOwner(), jobHandler.CancelJob)
	protected.Post("/jobs/:id/assign", middleware.RequireOwner(), jobHandler.AssignJob)

	// Worker operations
	worker := protected.Group("/worker", middleware.RequireWorker())
	worker.Get("/tasks", workerHandler.GetTasks)
	worker.Post("/complete-task", workerHandler.CompleteTask)

	// Reports (owner only)
	reports := protected.Group("/reports", middleware.RequireOwner())
	reports.Get("/worker-performance", reportHandler.WorkerPerformance)
	reports.Get("/job-summary", reportHandler.JobSummary)
	reports.Get("/material-consumption", reportHandler.MaterialConsumption)

	// Websocket route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaultOwner creates the bootstrap owner account if no owner exists yet
func seedDefaultOwner(db *gorm.DB, cfg *config.Config) {
	var owners int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleOwner).Count(&owners).Error; err != nil {
		log.Printf("Warning: failed to check for owner account: %v", err)
		return
	}
	if owners > 0 {
		return
	}

	owner := &model.User{
		Username: cfg.OwnerUsername,
		Email:    cfg.OwnerEmail,
		FullName: "Workshop Owner",
		Role:     model.RoleOwner,
		IsActive: true,
	}
	owner.CreatedBy = "system"
	owner.UpdatedBy = "system"

	if err := owner.SetPassword(cfg.OwnerPassword); err != nil {
		log.Printf("Warning: failed to hash owner password: %v", err)
		return
	}

	if err := db.Create(owner).Error; err != nil {
		log.Printf("Warning: failed to create owner account: %v", err)
		return
	}
	log.Printf("✅ Owner account created: %s", cfg.OwnerUsername)
}
