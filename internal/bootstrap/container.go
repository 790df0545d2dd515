package bootstrap

import (
	"context"
	"log"
	"time"

	"product-support-be/internal/config"
	"product-support-be/internal/controller"
	"product-support-be/internal/pkg/logger"
	"product-support-be/internal/pkg/mailer"
	"product-support-be/internal/repository/memory"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/internal/service"
	"product-support-be/pkg/answer"
	"product-support-be/pkg/cache"
	"product-support-be/pkg/embedding"
	"product-support-be/pkg/embedding/jina"
	"product-support-be/pkg/ingest"
	"product-support-be/pkg/ingest/assemble"
	"product-support-be/pkg/ingest/classify"
	"product-support-be/pkg/llm/factory"
	"product-support-be/pkg/retrieval"
	"product-support-be/pkg/safety"

	pktNats "product-support-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PackageController    controller.IPackageController
	DocumentController   controller.IDocumentController
	ChatController       controller.IChatController
	EscalationController controller.IEscalationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
		rdb = nil // PackageCache degrades to database reads
	}
	packageCache := cache.NewPackageCache(rdb, 5*time.Minute)

	// 3. Domain Pipeline Components
	parser := ingest.NewParser(
		assemble.Config{
			TargetTokens:  cfg.Chunking.TargetTokens,
			MaxTokens:     cfg.Chunking.MaxTokens,
			MinTokens:     cfg.Chunking.MinTokens,
			OverlapTokens: cfg.Chunking.OverlapTokens,
		},
		classify.DefaultConfig(),
	)

	scorerCfg := retrieval.DefaultConfig()
	scorerCfg.TopK = cfg.Retrieval.TopK
	scorer := retrieval.NewScorer(scorerCfg)

	gate := safety.NewGate(safety.DefaultConfig())
	generator := answer.NewGenerator(llmProvider)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	packageService := service.NewPackageService(uowFactory, packageCache, natsPub, sysLogger)
	ingestionService := service.NewIngestionService(uowFactory, parser, publisherService, sysLogger)
	escalationService := service.NewEscalationService(uowFactory, natsPub, sysLogger)
	chatService := service.NewChatService(
		uowFactory,
		packageService,
		escalationService,
		sessionRepo,
		scorer,
		gate,
		generator,
		sysLogger,
	)

	// 5. Notifier Worker
	if natsSub != nil {
		workerLogger := logger.NewIsolatedLogger(cfg.App.WorkerLogFilePath)
		notifier := service.NewNotifierService(natsSub, emailService, cfg.Support.InboxEmail, workerLogger)
		go notifier.Start()
	}

	// 6. Controllers
	return &Container{
		PackageController:    controller.NewPackageController(packageService),
		DocumentController:   controller.NewDocumentController(ingestionService),
		ChatController:       controller.NewChatController(chatService),
		EscalationController: controller.NewEscalationController(escalationService),

		ConsumerService: consumerService,
	}
}
