package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"reflecta-be/internal/config"
	"reflecta-be/internal/controller"
	"reflecta-be/internal/pkg/logger"
	"reflecta-be/internal/repository/implementation"
	"reflecta-be/internal/repository/unitofwork"
	"reflecta-be/internal/service"
	"reflecta-be/pkg/events"
	"reflecta-be/pkg/journal/closing"
	"reflecta-be/pkg/journal/match"
	"reflecta-be/pkg/journal/profile"
	"reflecta-be/pkg/journal/prompt"
	"reflecta-be/pkg/journal/response"
	"reflecta-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	ChatController       controller.IChatController
	EntryController      controller.IEntryController
	PreferenceController controller.IPreferenceController
	ProfileController    controller.IProfileController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisher := events.NewPublisher(pubSub, sysLogger)

	// 3. Completion provider
	apiKey := cfg.Ai.OpenAIAPIKey
	baseURL := cfg.Ai.BaseURL
	if cfg.Ai.Provider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	provider, err := factory.NewCompletionProvider(cfg.Ai.Provider, cfg.Ai.Model, baseURL, apiKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize completion provider: %v", err)
	}
	log.Printf("[INFO] Using completion provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 4. Journal core
	profileLoader := profile.NewLoader(
		implementation.NewProfileRepository(db),
		implementation.NewReactionRepository(db),
	)
	profiles := profile.NewCachedLoader(profileLoader, cfg.App.ProfileCacheTTL)

	promptCache := prompt.NewCache()

	matcher := match.NewMatcher(
		implementation.NewReactionRepository(db),
		implementation.NewRecommendationRepository(db),
	)

	generator := response.NewGenerator(
		uowFactory, profiles, promptCache, matcher,
		provider, publisher, sysLogger, cfg.Ai.Model,
	)

	labeler := closing.NewLabeler(provider, cfg.Ai.Model)
	closer := closing.NewOrchestrator(
		uowFactory, profiles, promptCache, labeler,
		provider, publisher, sysLogger, cfg.Ai.Model,
	)

	// 5. Services
	sessionService := service.NewSessionService(uowFactory, closer)
	chatService := service.NewChatService(uowFactory, generator)
	entryService := service.NewEntryService(uowFactory, closer, sysLogger)
	preferenceService := service.NewPreferenceService(uowFactory)
	profileService := service.NewProfileService(profiles)
	consumerService := service.NewConsumerService(pubSub, uowFactory, sysLogger)

	// 6. Controllers
	return &Container{
		SessionController:    controller.NewSessionController(sessionService),
		ChatController:       controller.NewChatController(chatService),
		EntryController:      controller.NewEntryController(entryService),
		PreferenceController: controller.NewPreferenceController(preferenceService),
		ProfileController:    controller.NewProfileController(profileService),
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
