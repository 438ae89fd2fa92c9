package bootstrap

import (
	"context"
	"log"

	"helpdesk-rag-be/internal/config"
	"helpdesk-rag-be/internal/controller"
	"helpdesk-rag-be/internal/pkg/logger"
	"helpdesk-rag-be/internal/repository/implementation"
	"helpdesk-rag-be/internal/service"
	"helpdesk-rag-be/internal/stats"
	"helpdesk-rag-be/pkg/embedding"
	"helpdesk-rag-be/pkg/embedding/dashscope"
	"helpdesk-rag-be/pkg/llm/factory"
	pkgNats "helpdesk-rag-be/pkg/nats"
	"helpdesk-rag-be/pkg/rag/history"
	"helpdesk-rag-be/pkg/search"
	"helpdesk-rag-be/pkg/search/elastic"
	"helpdesk-rag-be/pkg/search/pgsearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	QAController      controller.IQAController
	UserController    controller.IUserController
	ProductController controller.IProductController
	IndexController   controller.IIndexController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	HistorySweeper  *history.Sweeper
	StatsRecorder   *stats.Recorder

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus for async indexing
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider, behind a cache so repeated questions are free
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
			cfg.Search.Dimensions,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = dashscope.NewProvider(
			cfg.Ai.DashscopeBaseURL,
			cfg.Ai.DashscopeAPIKey,
			cfg.Ai.EmbeddingModel,
			cfg.Search.Dimensions,
		)
		log.Printf("[INFO] Using Embedding Provider: DASHSCOPE (%s)", cfg.Ai.EmbeddingModel)
	}
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider, cfg.Ai.EmbedCacheTTL)

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMAPIKey,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Search backend
	esClient := elastic.NewClient(cfg.Search.URL)
	var searcher search.Searcher = esClient
	var indexer service.QAIndexer = elasticIndexer{client: esClient, index: cfg.Search.Index}
	if cfg.Search.Provider == "pgvector" {
		pgSearcher := pgsearch.NewSearcher(db)
		searcher = pgSearcher
		indexer = pgIndexer{searcher: pgSearcher}
		log.Printf("[INFO] Using Search Provider: PGVECTOR")
	} else {
		log.Printf("[INFO] Using Search Provider: ELASTIC (%s)", cfg.Search.URL)
	}

	composer := search.NewComposer(cfg.Search.Dimensions)
	extractor := search.NewExtractor(composer, searcher)

	// Conversation history
	historyStore := history.NewStore(cfg.Retrieval.HistoryRetention)
	historySweeper := history.NewSweeper(historyStore, cfg.Retrieval.SweepInterval, sysLogger)

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis (request stats)
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
	}
	statsRecorder := stats.NewRecorder(rdb, sysLogger)

	// Repositories
	userRepo := implementation.NewUserRepository(db)
	productRepo := implementation.NewProductRepository(db)

	// Services
	publisherService := service.NewPublisherService(cfg.App.IndexTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IndexTopic,
		embeddingProvider,
		indexer,
		natsPub,
		sysLogger,
	)

	chatService := service.NewChatService(
		extractor,
		embeddingProvider,
		llmProvider,
		historyStore,
		natsPub,
		sysLogger,
		cfg.Search.Index,
		cfg.Retrieval,
	)
	qaService := service.NewQAService(publisherService, sysLogger)
	indexService := service.NewIndexService(esClient, cfg.Search.Index, cfg.Search.Dimensions, sysLogger)
	userService := service.NewUserService(userRepo, natsPub)
	productService := service.NewProductService(productRepo)

	return &Container{
		ChatController:    controller.NewChatController(chatService),
		QAController:      controller.NewQAController(qaService),
		UserController:    controller.NewUserController(userService),
		ProductController: controller.NewProductController(productService),
		IndexController:   controller.NewIndexController(indexService),
		ConsumerService:   consumerService,
		HistorySweeper:    historySweeper,
		StatsRecorder:     statsRecorder,
		Logger:            sysLogger,
	}
}
