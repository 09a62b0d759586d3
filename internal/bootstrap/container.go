package bootstrap

import (
	"context"
	"fmt"
	"log"

	"guessing-game-be/internal/config"
	"guessing-game-be/internal/controller"
	"guessing-game-be/internal/gateway"
	"guessing-game-be/internal/handler"
	"guessing-game-be/internal/orchestrator"
	"guessing-game-be/internal/pkg/logger"
	"guessing-game-be/internal/queue"
	"guessing-game-be/internal/repository"
	"guessing-game-be/internal/repository/implementation"
	"guessing-game-be/internal/repository/memory"
	"guessing-game-be/internal/repository/unitofwork"
	"guessing-game-be/internal/service"
	"guessing-game-be/internal/store"
	"guessing-game-be/internal/websocket"
	"guessing-game-be/pkg/imagesearch"
	"guessing-game-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GameController    controller.IGameController
	GameStreamHandler *handler.GameStreamHandler

	// Background services (started by main.go)
	ConsumerService service.IConsumerService
	TaskQueue       queue.Queue
	Orchestrator    *orchestrator.Orchestrator
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	pubSub *gochannel.GoChannel
	rdb    *redis.Client
}

// NewContainer wires the application. db may be nil when the memory store
// driver is selected.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)

	var sessionStore store.SessionStore
	switch cfg.Database.Driver {
	case "memory":
		sessionStore = memory.NewSessionStore(cfg.Game.SessionTTL)
		log.Printf("[INFO] Using Session Store: MEMORY (ttl %s)", cfg.Game.SessionTTL)
	default:
		if db == nil {
			return nil, fmt.Errorf("session store driver %q needs a database connection", cfg.Database.Driver)
		}
		sessionStore = store.NewGormStore(unitofwork.NewRepositoryFactory(db))
		log.Printf("[INFO] Using Session Store: POSTGRES")
	}

	// 2. Infrastructure
	// Redis is optional: without it the hub stays local and there is no leaderboard.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	wsHub := websocket.NewHub(rdb, wsLogger)

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	publisherService := service.NewPublisherService(service.GameCompletedTopic, pubSub, sysLogger)

	var leaderboard repository.LeaderboardRepository
	var consumerService service.IConsumerService
	if rdb != nil {
		leaderboard = implementation.NewLeaderboardRepository(rdb)
		consumerService = service.NewConsumerService(pubSub, service.GameCompletedTopic, leaderboard, sysLogger)
	}

	// 4. Game
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	orch := orchestrator.New(orchestrator.Deps{
		Store:      sessionStore,
		Gateway:    gateway.NewLLMGateway(llmProvider, cfg.Game.GatewayTimeout, sysLogger),
		Bus:        wsHub,
		Images:     imagesearch.NewWikipediaFinder(cfg.Game.ImageProviderBaseURL, cfg.Game.ImageLookupTimeout),
		Completion: publisherService,
		Logger:     sysLogger,
	}, orchestrator.Options{
		RecentCharacterLimit: cfg.Game.RecentCharacterLimit,
		ImageLookupTimeout:   cfg.Game.ImageLookupTimeout,
	})

	taskQueue, err := queue.New(*cfg, sysLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task queue: %w", err)
	}
	log.Printf("[INFO] Using Task Queue: %s (%d partitions)", cfg.Game.QueueDriver, cfg.Game.Partitions)

	gameService := service.NewGameService(sessionStore, taskQueue, leaderboard, sysLogger)

	// 5. Controllers
	return &Container{
		GameController:    controller.NewGameController(gameService, cfg.App.JwtSecret),
		GameStreamHandler: handler.NewGameStreamHandler(sessionStore, wsHub, cfg.App.JwtSecret, wsLogger),

		ConsumerService: consumerService,
		TaskQueue:       taskQueue,
		Orchestrator:    orch,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,

		pubSub: pubSub,
		rdb:    rdb,
	}, nil
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if c.ConsumerService != nil {
		if err := c.ConsumerService.Consume(ctx); err != nil {
			return fmt.Errorf("failed to start consumer: %w", err)
		}
	}

	return c.TaskQueue.Start(ctx, c.Orchestrator.HandleTask)
}

func (c *Container) Close() {
	if err := c.TaskQueue.Close(); err != nil {
		c.Logger.Warn("Container", "Task queue close failed", map[string]interface{}{"error": err.Error()})
	}
	if err := c.pubSub.Close(); err != nil {
		c.Logger.Warn("Container", "Event bus close failed", map[string]interface{}{"error": err.Error()})
	}
	if c.rdb != nil {
		c.rdb.Close()
	}
	c.Logger.Sync()
}
