package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"civicalert/backend/internal/api/handler"
	"civicalert/backend/internal/chat"
	"civicalert/backend/internal/config"
	"civicalert/backend/internal/maintenance"
	"civicalert/backend/internal/models"
	"civicalert/backend/internal/notifier"
	"civicalert/backend/internal/push"
	"civicalert/backend/internal/realtime"
	"civicalert/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Notification{},
		&models.Chat{},
		&models.ChatMessage{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting CivicAlert Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewService(db, rdb)

	// Process-wide realtime hub; repeated Init calls return the same one.
	realtime.Init()

	pushSender := push.NewSender(cfg)
	chatService := chat.NewService(s, pushSender)
	eventNotifier := notifier.New(s)

	pruner := maintenance.NewPruner(s, cfg.NotificationRetentionDays)
	if err := pruner.Start(); err != nil {
		log.Fatalf("Failed to start notification pruner: %v", err)
	}

	r := gin.Default()
	h := handler.NewHandler(s, chatService, eventNotifier, cfg)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Printf("Listening on %s", cfg.Addr)
	err := server.ListenAndServe()

	// log.Fatal exits without running defers, so stop the pruner first.
	pruner.Stop()
	log.Fatalf("Server stopped: %v", err)
}
