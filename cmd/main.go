package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tasknest/tasknest/broker"
	"tasknest/tasknest/config"
	"tasknest/tasknest/database"
	"tasknest/tasknest/middleware"
	"tasknest/tasknest/routes"
	"tasknest/tasknest/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Task lifecycle events are published when NATS is reachable; the API
	// works without them
	if err := broker.InitProducer(cfg); err != nil {
		log.Printf("Warning: Failed to connect to NATS: %v", err)
		log.Println("The application will continue with event publishing disabled")
	} else {
		defer broker.CloseProducer()
	}

	// Initialize authentication service
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshExpirationHours)
	services.AuthServiceInstance = authService

	// Initialize user service with auth service dependency
	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterAuthRoutes(router, db, userService, authService)
	routes.RegisterTaskRoutes(router, db, services.TaskServiceInstance, authService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		broker.CloseProducer()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
