package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"property-dashboard-server/config"
	"property-dashboard-server/events"
	"property-dashboard-server/jobs"
	"property-dashboard-server/middleware"
	"property-dashboard-server/routes"
	"property-dashboard-server/services"
	"property-dashboard-server/storage"
	ws "property-dashboard-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Select the storage backend: Postgres when DB_URL is set, the
	// file-backed store otherwise
	var backend storage.Backend
	if config.AppConfig.Storage.DBURL != "" {
		pg, err := storage.NewPostgresBackend(config.AppConfig.Storage.DBURL)
		if err != nil {
			log.Fatal("Failed to initialize storage:", err)
		}
		backend = pg
	} else {
		fb, err := storage.NewFileBackend(config.AppConfig.Storage.DataDir)
		if err != nil {
			log.Fatal("Failed to initialize storage:", err)
		}
		backend = fb
		log.Printf("📁 Using file-backed storage in %s", config.AppConfig.Storage.DataDir)
	}

	// Wire the maintenance core
	bus := events.NewBus()
	store := storage.NewMaintenanceStore(backend, bus)
	repo := storage.NewWorkOrderRepository(store)

	ledger := services.NewStorageLedger(backend)
	notifier := services.NewBusNotifier(bus)
	audit := services.NewLogAudit()

	maintenanceService := services.NewMaintenanceService(repo, ledger, notifier, audit)
	statsService := services.NewStatsService(repo)
	backupService := services.NewBackupService(store, audit)

	handler := &routes.MaintenanceHandler{
		Service: maintenanceService,
		Stats:   statsService,
		Repo:    repo,
		Backup:  backupService,
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Property Dashboard Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Initialize the dashboard hub and bridge bus events onto it
	hub := ws.NewHub()
	go hub.Run()

	go func() {
		for event := range bus.Subscribe(events.TopicMaintenanceChanged, events.TopicNotification) {
			hub.Broadcast <- &ws.Message{
				Type:      event.Topic,
				Data:      event.Payload,
				Timestamp: event.Timestamp,
			}
		}
	}()

	// Dashboard WebSocket endpoint
	router.GET("/api/v1/ws/dashboard", middleware.WebSocketAuthMiddleware(), func(c *gin.Context) {
		ws.ServeWebSocket(hub, c.Writer, c.Request, c.GetString("username"))
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			maintenanceRoutes := protected.Group("/maintenance")
			routes.RegisterMaintenanceRoutes(maintenanceRoutes, handler)
			routes.RegisterMediaRoutes(maintenanceRoutes, handler)

			backupRoutes := protected.Group("/backup")
			routes.RegisterBackupRoutes(backupRoutes, handler)
		}
	}

	// Start the overdue reminder job
	overdueJob := jobs.NewOverdueJob(repo, notifier)
	overdueJob.Start()
	defer overdueJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
