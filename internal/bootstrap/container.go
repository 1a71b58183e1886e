package bootstrap

import (
	"context"
	"log"

	"ai-docauthor-be/internal/config"
	"ai-docauthor-be/internal/controller"
	"ai-docauthor-be/internal/pkg/logger"
	"ai-docauthor-be/internal/repository/memory"
	"ai-docauthor-be/internal/repository/unitofwork"
	"ai-docauthor-be/internal/service"
	"ai-docauthor-be/pkg/docconv"
	"ai-docauthor-be/pkg/events"
	pkgNats "ai-docauthor-be/pkg/nats"
	"ai-docauthor-be/pkg/openai"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const fileIngestedTopic = "FILE_INGESTED"

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	ProjectController      controller.IProjectController
	SectionController      controller.ISectionController
	FileController         controller.IFileController
	ReportController       controller.IReportController
	ConversationController controller.IConversationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS mirror is optional; the service runs without a broker.
	var natsPub *pkgNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}

		// Mirror consumer: other instances see ingestion events through the
		// broker, so each instance keeps its own audit trail.
		sub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else if err := sub.Subscribe("events."+fileIngestedTopic, "docauthor-ingestion-audit",
			func(_ context.Context, evt events.Event) error {
				sysLogger.Info("consumer", "File ingestion event received via NATS", evt.Payload())
				return nil
			}); err != nil {
			log.Printf("[WARN] Failed to subscribe to NATS ingestion events: %v", err)
		}
	}

	// 3. Upstream Collaborators
	openAIClient := openai.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey)
	converter := docconv.NewConverter(cfg.Converter.BaseURL)

	// The shared vector store id is resolved once at start-up and handed to
	// the services as an immutable value.
	sharedVectorStoreID, err := service.EnsureSharedVectorStore(
		context.Background(), openAIClient, cfg.OpenAI.SharedVectorStoreName)
	if err != nil {
		log.Fatalf("[FATAL] Failed to resolve shared vector store: %v", err)
	}
	log.Printf("[INFO] Shared vector store: %s", sharedVectorStoreID)

	fileInfoCache := memory.NewFileInfoCache()

	// 4. Services
	publisherService := service.NewPublisherService(fileIngestedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, fileIngestedTopic, sysLogger)

	aiService := service.NewAIConversationService(uowFactory, openAIClient, sharedVectorStoreID, sysLogger)
	fileSearchService := service.NewFileSearchService(openAIClient, fileInfoCache, publisherService, natsPub, sysLogger)
	projectService := service.NewProjectService(uowFactory, aiService, fileSearchService, cfg.OpenAI.Model, sysLogger)
	sectionService := service.NewSectionService(uowFactory, aiService, cfg.OpenAI.Model)
	exporterService := service.NewExporterService(uowFactory, converter)
	conversationService := service.NewConversationService(uowFactory)
	oauthService := service.NewOAuthService(cfg.Auth, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(oauthService),
		ProjectController:      controller.NewProjectController(projectService),
		SectionController:      controller.NewSectionController(sectionService),
		FileController:         controller.NewFileController(fileSearchService, projectService, sharedVectorStoreID),
		ReportController:       controller.NewReportController(exporterService),
		ConversationController: controller.NewConversationController(conversationService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
