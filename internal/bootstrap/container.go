package bootstrap

import (
	"context"
	"fmt"
	"log"

	"tajwid-pintar-be/internal/config"
	"tajwid-pintar-be/internal/controller"
	"tajwid-pintar-be/internal/pkg/logger"
	"tajwid-pintar-be/internal/pkg/serverutils"
	"tajwid-pintar-be/internal/repository/memory"
	"tajwid-pintar-be/internal/repository/rediskv"
	"tajwid-pintar-be/internal/repository/unitofwork"
	"tajwid-pintar-be/internal/service"
	"tajwid-pintar-be/pkg/auth"
	"tajwid-pintar-be/pkg/directive"
	"tajwid-pintar-be/pkg/events"
	"tajwid-pintar-be/pkg/llm/factory"
	"tajwid-pintar-be/pkg/prompt"

	pktNats "tajwid-pintar-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController
	AdminAuthController controller.IAdminAuthController

	AdminMiddleware fiber.Handler
	Logger          logger.ILogger

	closers []func()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewAuditLogger(cfg.App.AuditLogFilePath)
	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, func() { _ = auditLogger.Sync() }, func() { _ = sysLogger.Sync() })

	if cfg.Keys.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger.NewWatermillAdapter(sysLogger))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var remote events.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		nc, err := pktNats.Connect(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] NATS unavailable, knowledge changes stay local: %v", err)
		} else {
			var natsPub *pktNats.Publisher
			natsPub, natsSub = connectNats(nc, cfg.Knowledge.EventsSubject, sysLogger)
			if natsPub != nil {
				remote = natsPub
			}
			c.closers = append(c.closers, nc.Close)
		}
	}
	eventBus := service.NewEventBus(pubSub, remote, sysLogger)

	// 3. Completion backend
	completion, err := factory.NewCompletionService(ctx, factory.Settings{
		Provider:    cfg.Ai.LLMProvider,
		Model:       cfg.Ai.LLMModel,
		BaseURL:     cfg.Ai.OllamaBaseURL,
		APIKey:      cfg.Keys.GoogleGemini,
		Temperature: cfg.Ai.Temperature,
		Timeout:     cfg.Ai.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init completion service: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Lockout storage
	lockoutStore, closeLockout := newLockoutStore(ctx, cfg)
	if closeLockout != nil {
		c.closers = append(c.closers, closeLockout)
	}

	// 5. Services
	knowledgeService := service.NewKnowledgeService(uowFactory, completion, eventBus, sysLogger, service.KnowledgeServiceConfig{
		SnapshotTTL:       cfg.Knowledge.SnapshotTTL,
		MaxAudioClipBytes: cfg.Knowledge.MaxAudioClipBytes,
		MaxImageBytes:     cfg.Chat.MaxInlineMediaBytes,
	})
	if err := eventBus.OnKnowledgeChange(ctx, func(e events.Event) {
		knowledgeService.InvalidateSnapshot()
	}); err != nil {
		return nil, fmt.Errorf("subscribe knowledge changes: %w", err)
	}
	if natsSub != nil {
		if err := eventBus.BridgeFromNATS(ctx, natsSub, cfg.Knowledge.EventsSubject); err != nil {
			log.Printf("[WARN] Failed to bridge NATS events: %v", err)
		}
		c.closers = append(c.closers, natsSub.Stop)
	}

	chatService := service.NewChatService(
		memory.NewSessionRepository(cfg.Chat.SessionTTL),
		knowledgeService,
		completion,
		prompt.NewAssembler(cfg.Chat.MaxInlineMediaBytes),
		directive.NewRenderer(
			directive.WithReciterBaseURL(cfg.Chat.ReciterBaseURL),
			directive.WithRegistrationURL(cfg.Chat.RegistrationURL),
		),
		sysLogger,
		service.ChatServiceConfig{
			HistoryTurns:             cfg.Chat.HistoryTurns,
			GroundingContextMaxBytes: cfg.Knowledge.GroundingContextMaxBytes,
		},
	)

	adminAuthService := service.NewAdminAuthService(lockoutStore, eventBus, auditLogger, service.AdminAuthConfig{
		PasswordHash:     cfg.Auth.AdminPasswordHash,
		JWTSecret:        []byte(cfg.Keys.JWTSecret),
		TokenTTL:         cfg.Auth.TokenTTL,
		LockoutThreshold: cfg.Auth.LockoutThreshold,
		LockoutDuration:  cfg.Auth.LockoutDuration,
		AttemptDelay:     cfg.Auth.AttemptDelay,
	})
	if cfg.Auth.AdminPasswordHash == "" {
		sysLogger.Warn("BOOTSTRAP", "ADMIN_PASSWORD_HASH is empty, admin login is disabled", nil)
	}

	// 6. Controllers
	c.ChatController = controller.NewChatController(chatService)
	c.KnowledgeController = controller.NewKnowledgeController(knowledgeService)
	c.AdminAuthController = controller.NewAdminAuthController(adminAuthService)
	c.AdminMiddleware = serverutils.NewJwtMiddleware([]byte(cfg.Keys.JWTSecret), serverutils.RoleAdmin)

	return c, nil
}

// Close releases infrastructure in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func connectNats(nc *nats.Conn, stream string, l logger.ILogger) (*pktNats.Publisher, *pktNats.Subscriber) {
	pub, err := pktNats.NewPublisher(nc, stream)
	if err != nil {
		l.Warn("BOOTSTRAP", "NATS publisher disabled", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}
	sub, err := pktNats.NewSubscriber(nc, stream)
	if err != nil {
		l.Warn("BOOTSTRAP", "NATS subscriber disabled", map[string]interface{}{"error": err.Error()})
		return pub, nil
	}
	return pub, sub
}

// newLockoutStore picks the lockout backend. Redis falls back to memory when
// it cannot be reached at startup.
func newLockoutStore(ctx context.Context, cfg *config.Config) (auth.Store, func()) {
	retention := 2 * cfg.Auth.LockoutDuration
	if cfg.Auth.LockoutStore != "redis" {
		return memory.NewLockoutRepository(retention), nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, lockout state is per instance: %v", err)
		_ = rdb.Close()
		return memory.NewLockoutRepository(retention), nil
	}
	return rediskv.NewLockoutRepository(rdb, retention), func() { _ = rdb.Close() }
}
