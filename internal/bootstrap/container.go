package bootstrap

import (
	"context"
	"log"

	"voicedraft-be/internal/config"
	"voicedraft-be/internal/controller"
	"voicedraft-be/internal/handler"
	"voicedraft-be/internal/pkg/logger"
	"voicedraft-be/internal/repository/memory"
	"voicedraft-be/internal/repository/unitofwork"
	"voicedraft-be/internal/service"
	"voicedraft-be/internal/websocket"
	"voicedraft-be/pkg/dictation/classify"
	"voicedraft-be/pkg/dictation/mutate"
	"voicedraft-be/pkg/llm/factory"
	pkgNats "voicedraft-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	SessionController controller.ISessionController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	DictationHandler *handler.DictationHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Failures inside the dictation loop go to their own file, never to
	// the client.
	errorSink := logger.NewIsolatedLogger(cfg.App.ErrorLogFilePath)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM backend
	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
		cfg.Ai.RequestTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	classifier := classify.NewClassifier(llmProvider)
	mutator := mutate.NewMutator(llmProvider)

	// Live per-session documents
	documentRepo := memory.NewDocumentRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.SnapshotTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.SnapshotTopic,
		uowFactory,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, natsPub, sysLogger)
	sessionService := service.NewSessionService(uowFactory, natsPub, sysLogger)
	dictationService := service.NewDictationService(
		classifier,
		mutator,
		documentRepo,
		uowFactory,
		publisherService,
		natsPub,
		sysLogger,
		errorSink,
	)

	dictationHandler := handler.NewDictationHandler(
		dictationService,
		wsHub,
		websocket.WindowConfig{
			Seconds:    cfg.Dictation.AudioWindowSeconds,
			SampleRate: cfg.Dictation.AudioSampleRate,
			Channels:   cfg.Dictation.AudioChannels,
		},
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		SessionController: controller.NewSessionController(sessionService),
		ConsumerService:   consumerService,
		DictationHandler:  dictationHandler,
		WebSocketHub:      wsHub,
	}
}
