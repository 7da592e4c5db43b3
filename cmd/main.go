package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"chatapp/backend/internal/api/handler"
	"chatapp/backend/internal/api/middleware"
	"chatapp/backend/internal/auth"
	"chatapp/backend/internal/chathub"
	"chatapp/backend/internal/config"
	"chatapp/backend/internal/models"
	"chatapp/backend/internal/notify"
	"chatapp/backend/internal/storage"
	"chatapp/backend/internal/telegram"

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
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	if err := db.AutoMigrate(&models.Message{}, &models.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting ChatApp Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	authenticator := auth.NewConnectionAuthenticator(verifier)
	notifier := notify.NewService(cfg.PushBaseURL)

	relay := chathub.NewRelayService(s, notifier)
	broadcaster := chathub.NewBroadcaster(s)
	hub := chathub.NewManagerService(relay, broadcaster, verifier)
	hub.StartPubSubListener(s.SubscribeAll())

	if cfg.TelegramBotToken != "" {
		botService, err := telegram.NewBotService(cfg.TelegramBotToken, hub, relay, s)
		if err != nil {
			log.Fatalf("Failed to start Telegram bridge: %v", err)
		}
		go botService.Run()
	}

	r := gin.Default()
	h := handler.NewHandler(hub, relay, s, authenticator, notifier)

	r.GET("/ws", h.ServeWebSocket)

	api := r.Group("/api", middleware.RequireAuth(verifier))
	{
		api.GET("/chat/history", h.GetChatHistory)
		api.GET("/chat/recent", h.GetRecentChatHistory)
		api.POST("/chat/send", h.SendMessage)
		api.GET("/chat/sent/:userId", h.GetMessagesBySender)
		api.GET("/chat/received/:userId", h.GetMessagesByReceiver)
		api.GET("/chat/health", h.HealthCheck)
		api.GET("/chat/info", h.GetSystemInfo)

		api.POST("/users", h.SaveUser)
		api.GET("/users", h.GetAllUsers)
		api.GET("/users/test", h.TestUsers)
		api.GET("/users/:userId", h.GetUserByID)
	}

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
