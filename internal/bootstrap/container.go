package bootstrap

import (
	"context"
	"log"
	"net/http"
	"time"

	"loremaker-codex-be/internal/config"
	"loremaker-codex-be/internal/constant"
	"loremaker-codex-be/internal/controller"
	"loremaker-codex-be/internal/handler"
	"loremaker-codex-be/internal/pkg/logger"
	"loremaker-codex-be/internal/service"
	"loremaker-codex-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	CodexController controller.ICodexController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	LibraryService  service.ILibraryService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// Redis is optional; without it the hub stays single-instance.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(constant.RosterRefreshedTopic, pubSub)

	rosterCache := gocache.New(gocache.NoExpiration, 30*time.Minute)
	httpClient := &http.Client{Timeout: 15 * time.Second}
	libraryService := service.NewLibraryService(
		&cfg.Sheet,
		httpClient,
		rosterCache,
		publisherService,
		sysLogger,
	)

	codexService := service.NewCodexService(libraryService)

	consumerService := service.NewConsumerService(
		pubSub,
		constant.RosterRefreshedTopic,
		codexService,
		wsHub,
		sysLogger,
	)

	// Handler
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 4. Controllers
	// Note: We return the container with public fields for the server to register
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		CodexController:     controller.NewCodexController(codexService),

		ConsumerService: consumerService,
		LibraryService:  libraryService,
	}
}
