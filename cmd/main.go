package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"

	"github.com/Dosada05/community-tournaments/config"
	"github.com/Dosada05/community-tournaments/db"
	"github.com/Dosada05/community-tournaments/handlers"
	"github.com/Dosada05/community-tournaments/integrations/discord"
	"github.com/Dosada05/community-tournaments/integrations/twitch"
	"github.com/Dosada05/community-tournaments/notifications"
	"github.com/Dosada05/community-tournaments/realtime"
	"github.com/Dosada05/community-tournaments/repositories"
	"github.com/Dosada05/community-tournaments/roster"
	api "github.com/Dosada05/community-tournaments/routes"
	"github.com/Dosada05/community-tournaments/services"
	"github.com/Dosada05/community-tournaments/storage"
)

// @title Community Tournaments API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("store", cfg.StoreDriver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище документов
	var store *repositories.Store
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second, logger)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
		if err := db.Migrate(ctx, dbConn); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		store = repositories.NewPostgresStore(dbConn)
		logger.Info("database connection established")
	default:
		store = repositories.NewMemoryStore()
		logger.Warn("using in-memory store, data will be lost on restart")
	}

	// Инициализация загрузчика файлов (Cloudflare R2). Без настроек загрузка изображений отключена.
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	discordClient := discord.NewNoop()
	if cfg.Discord.Enabled() {
		discordClient = discord.New(discord.Config{
			BotToken:          cfg.Discord.BotToken,
			GuildID:           cfg.Discord.GuildID,
			VoiceCategoryID:   cfg.Discord.VoiceCategoryID,
			ProposalChannelID: cfg.Discord.ProposalChannelID,
		})
		logger.Info("Discord integration enabled")
	}

	twitchClient := twitch.NewNoop()
	if cfg.Twitch.Enabled() {
		twitchClient = twitch.New(ctx, twitch.Config{
			ClientID:     cfg.Twitch.ClientID,
			ClientSecret: cfg.Twitch.ClientSecret,
		})
		logger.Info("Twitch integration enabled")
	}

	// Инициализация WebSocket Hub
	hub := realtime.NewHub(logger)
	go hub.Run(ctx)
	logger.Info("WebSocket Hub started")

	clock := clockwork.NewRealClock()

	svc := services.New(services.Dependencies{
		Store:             store,
		Discord:           discordClient,
		Twitch:            twitchClient,
		Notifier:          notifications.NewHubNotifier(hub, clock, logger),
		Hub:               hub,
		Uploader:          uploader,
		Clock:             clock,
		Rand:              roster.DefaultRand,
		Logger:            logger,
		AdminPasswordHash: cfg.AdminPasswordHash,
		JWTSecret:         []byte(cfg.JWTSecretKey),
		ReminderLeadTime:  cfg.ReminderLeadTime,
	})
	logger.Info("Services initialized")

	// Периодические задачи: значки и напоминания
	sched, err := services.StartScheduler(ctx, services.SchedulerConfig{
		BadgeInterval:    cfg.BadgeJobInterval,
		ReminderInterval: cfg.ReminderJobInterval,
	}, svc.Badges, svc.Reminders, logger)
	if err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()
	logger.Info("scheduler started",
		slog.Duration("badge_interval", cfg.BadgeJobInterval),
		slog.Duration("reminder_interval", cfg.ReminderJobInterval),
	)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.AllowedOrigins,
	}, api.Handlers{
		Auth:        handlers.NewAuthHandler(svc.Auth),
		Players:     handlers.NewPlayerHandler(svc.Players, svc.Rankings),
		Tournaments: handlers.NewTournamentHandler(svc.Tournaments),
		Seasons:     handlers.NewSeasonHandler(svc.Seasons, svc.Rankings),
		Rankings:    handlers.NewRankingHandler(svc.Rankings),
		Games:       handlers.NewGameHandler(svc.Games),
		Proposals:   handlers.NewProposalHandler(svc.Proposals),
		Badges:      handlers.NewBadgeHandler(svc.Badges),
		WebSocket:   handlers.NewWebSocketHandler(hub, svc.Tournaments, cfg.AllowedOrigins, logger),
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
