package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/config"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/database"
	queueadapter "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/queue/adapter"
	rowadapter "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/rowstore/adapter"
	sessadapter "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/adapter"
	sessport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
	tgadapter "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/adapter"
	broadcast "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/broadcast/application/domain"
	broadcasttask "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/broadcast/application/task"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
	repoadapter "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/adapter"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/presentation/bot"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, cleanup, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build registrant store", zap.Error(err))
	}
	defer cleanup()

	sessions := buildSessions(cfg, logger)

	tg, err := tgadapter.NewTelebot(cfg.BotToken, logger.Named("telegram"))
	if err != nil {
		logger.Fatal("failed to connect to telegram", zap.Error(err))
	}

	event := usecase.EventInfo{
		Title:        cfg.Event.Title,
		When:         cfg.Event.When,
		Venue:        cfg.Event.Venue,
		MapsURL:      cfg.Event.MapsURL,
		GoogleCalURL: cfg.Event.GoogleCalURL,
		AppleCalURL:  cfg.Event.AppleCalURL,
	}
	bot.RegisterHandlers(tg, tg, sessions, repo, event, logger.Named("registration"))

	startBroadcasts(ctx, cfg, repo, tg, logger.Named("broadcast"))
	startHealthServer(cfg.HTTPAddr, logger.Named("http"))

	logger.Info("bot starting")
	if err := tg.Run(ctx); err != nil {
		logger.Fatal("bot stopped with error", zap.Error(err))
	}
	logger.Info("bot stopped")
}

// buildRepository picks the registrant store: Postgres when DB_URL is set,
// otherwise the Google Sheet.
func buildRepository(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.RegistrantRepository, func(), error) {
	if cfg.DatabaseURL != "" {
		connCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		pool, err := database.Connect(connCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres registrant store")
		return repoadapter.NewPgRegistrantRepository(pool), pool.Close, nil
	}

	store, err := rowadapter.NewSheetsRowStore(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.SheetName, registration.RowWidth)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using google sheets registrant store", zap.String("sheet", cfg.SheetName))
	return repoadapter.NewSheetRegistrantRepository(store), func() {}, nil
}

// buildSessions prefers Redis so dialog state survives restarts; without it
// the bot degrades to per-process memory.
func buildSessions(cfg config.Config, logger *zap.Logger) sessport.Store {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, dialog state is kept in memory")
		return sessadapter.NewMemoryStore()
	}
	store, err := sessadapter.NewRedisStore(cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory sessions", zap.Error(err))
		return sessadapter.NewMemoryStore()
	}
	return store
}

// startBroadcasts loads the campaign schedule, enqueues future runs and
// starts the worker consuming them. Without Redis there is no queue, so
// scheduling is skipped entirely.
func startBroadcasts(ctx context.Context, cfg config.Config, repo repository.RegistrantRepository, tg *tgadapter.Telebot, logger *zap.Logger) {
	campaigns, err := broadcast.LoadCampaigns(cfg.CampaignsFile)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("no campaign file, broadcasts disabled", zap.String("path", cfg.CampaignsFile))
		return
	}
	if err != nil {
		logger.Fatal("failed to load campaigns", zap.Error(err))
	}
	if len(campaigns) == 0 {
		return
	}
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, campaigns will not be scheduled", zap.Int("campaigns", len(campaigns)))
		return
	}

	client, err := queueadapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to build queue client", zap.Error(err))
	}
	if err := broadcasttask.ScheduleCampaigns(ctx, client, campaigns, logger); err != nil {
		logger.Fatal("failed to schedule campaigns", zap.Error(err))
	}

	srv, err := queueadapter.NewAsynqServer(cfg.RedisURL, logger)
	if err != nil {
		logger.Fatal("failed to build queue server", zap.Error(err))
	}
	broadcasttask.RegisterCampaignTask(srv, campaigns, repo, tg, logger)

	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Error("queue server stopped with error", zap.Error(err))
		}
	}()
}

// startHealthServer exposes liveness endpoints for the container platform.
func startHealthServer(addr string, logger *zap.Logger) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	}
	r.GET("/", ok)
	r.GET("/healthz", ok)

	go func() {
		if err := r.Run(addr); err != nil {
			logger.Error("health server stopped", zap.Error(err))
		}
	}()
}
