package bootstrap

import (
	"log"

	"persona-chat-be/internal/config"
	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/controller"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/pkg/mailer"
	"persona-chat-be/internal/repository/memory"
	"persona-chat-be/internal/repository/unitofwork"
	"persona-chat-be/internal/service"
	"persona-chat-be/pkg/llm/factory"
	"persona-chat-be/pkg/websearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	SessionController      controller.ISessionController
	ConversationController controller.IConversationController
	ToolController         controller.IToolController
	SearchController       controller.ISearchController
	ExportController       controller.IExportController

	// Background services (exposed for main.go to run)
	ActivityService service.IActivityService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. External collaborators
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Keys.OpenAI,
		cfg.Ai.LLMModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	searchClient := websearch.NewClient(cfg.Keys.SerpAPI, cfg.Search.ProxyURL)

	// In-memory live session storage
	sessionRepo := memory.NewLiveSessionRepository()

	// 4. Services
	activityService := service.NewActivityService(pubSub, constant.UserActivityTopicName, uowFactory, sysLogger)
	toolService := service.NewToolService(uowFactory, activityService)
	conversationService := service.NewConversationService(uowFactory, activityService, sysLogger)
	sessionService := service.NewSessionService(
		sessionRepo,
		toolService,
		conversationService,
		activityService,
		llmProvider,
		sysLogger,
	)
	authService := service.NewAuthService(uowFactory, emailService, activityService, sysLogger)
	searchService := service.NewSearchService(searchClient, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService, sessionService),
		SessionController:      controller.NewSessionController(sessionService),
		ConversationController: controller.NewConversationController(conversationService, sessionService),
		ToolController:         controller.NewToolController(toolService),
		SearchController:       controller.NewSearchController(searchService),
		ExportController:       controller.NewExportController(),
		ActivityService:        activityService,
		Logger:                 sysLogger,
	}
}
