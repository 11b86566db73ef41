package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "alkhaled/api/swagger" // swagger docs
	"alkhaled/internal/handler"
	"alkhaled/internal/middleware"
	"alkhaled/internal/model"
	"alkhaled/internal/service"
	"alkhaled/internal/store"
	"alkhaled/internal/websocket"
)

// @title           Alkhaled Store API
// @version         1.0
// @description     Local-first retail management backend: POS, inventory, debts and reports for a single store.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "alkhaled.db"
	}

	meta, err := store.OpenKVStore(dbPath)
	if err != nil {
		log.Fatalf("Embedded store open failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	ctrl := store.NewController(meta, store.Options{
		AutoEmbedded: os.Getenv("STORAGE_MODE") == "embedded",
		OnSaveError: func(err error) {
			wsHub.Emit(websocket.EventToast, model.Toast{
				Message: "فشل حفظ البيانات! التغييرات محفوظة في الذاكرة فقط.",
				Type:    model.ToastError,
			})
		},
	})
	if err := ctrl.Start(); err != nil {
		// A failed load is not fatal for the process: the storage endpoints
		// stay up so the user can switch backends or fix the data file.
		log.Printf("Dataset load failed: %v", err)
	}
	log.Printf("Storage status: %s", ctrl.Status())

	// Set up dependencies (Controller -> Service -> Handler)
	salesService := service.NewSalesService(ctrl, wsHub)
	inventoryService := service.NewInventoryService(ctrl, wsHub)
	partnerService := service.NewPartnerService(ctrl, wsHub)
	expenseService := service.NewExpenseService(ctrl, wsHub)
	promoService := service.NewPromoService(ctrl, wsHub)
	settingsService := service.NewSettingsService(ctrl, wsHub)
	backupService := service.NewBackupService(ctrl, wsHub)
	reportService := service.NewReportService(ctrl)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = corsOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret(), middleware.AuthEnabled())
	})

	// Storage and auth routes stay outside the readiness gate: they are how
	// a session gets to ready in the first place.
	open := router.Group("", middleware.RequireAuth())
	handler.NewStorageHandler(ctrl, wsHub).RegisterRoutes(open)
	if middleware.AuthEnabled() {
		handler.NewAuthHandler().RegisterRoutes(router.Group(""))
	}

	api := router.Group("", middleware.RequireAuth(), handler.StorageGate(ctrl))
	handler.NewSalesHandler(salesService).RegisterRoutes(api)
	handler.NewInventoryHandler(inventoryService).RegisterRoutes(api)
	handler.NewPartnerHandler(partnerService).RegisterRoutes(api)
	handler.NewExpenseHandler(expenseService).RegisterRoutes(api)
	handler.NewPromoHandler(promoService).RegisterRoutes(api)
	handler.NewSettingsHandler(settingsService).RegisterRoutes(api)
	handler.NewBackupHandler(backupService).RegisterRoutes(api)
	handler.NewReportHandler(reportService).RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		log.Printf("Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Flush the debounced write on shutdown so the last mutation is never
	// lost to the coalescing window.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	ctrl.Close()
	log.Println("Bye.")
}

func corsOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins := strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	}
	return []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"}
}
