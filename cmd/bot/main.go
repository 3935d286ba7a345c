package main

import (
	"context"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/bank"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/config"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/delivery/telegram"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/game"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/infra/postgres"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/infra/postgres/repository"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/logger"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/provider"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zlog.Fatal("telegram auth failed", zap.Error(err))
	}
	zlog.Info("authorized", zap.String("account", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Schermata iniziale"},
		{Command: "gioca", Description: "Inizia una partita"},
		{Command: "record", Description: "Vittorie totali"},
		{Command: "scala", Description: "Scala dei premi"},
		{Command: "impostazioni", Description: "Impostazioni"},
		{Command: "aiuto", Description: "Come si gioca"},
	}
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zlog.Warn("set bot commands failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistence: Postgres when configured, in-memory otherwise. A missing
	// database only costs durability, never a game.
	var (
		bankStore bank.Store
		winsStore game.WinsStore
	)
	if dsn, err := cfg.DB.DSN(); err == nil {
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			zlog.Fatal("connect database failed", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			zlog.Fatal("migrate failed", zap.Error(err))
		}

		bankStore = repository.NewBankRepository(pool)
		winsStore = repository.NewWinsRepository(pool)
	} else {
		zlog.Warn("no DATABASE_URL, running with in-memory persistence")
		bankStore = storage.NewMemoryBankStore()
		winsStore = storage.NewMemoryWinsStore()
	}

	bankService := bank.NewService(zlog, bankStore)
	bankService.Load(ctx)

	var source provider.Source
	if cfg.GeminiAPIKey != "" {
		source = provider.NewGeminiClient(zlog, cfg.GeminiAPIKey)
	} else {
		zlog.Warn("no GEMINI_API_KEY, playing from the bank only")
		source = provider.Disabled()
	}
	questions := provider.WithFallback(zlog, source)

	gameCfg := game.Config{
		SuspenseDelay:       cfg.Game.SuspenseDelay,
		AdvanceDelay:        cfg.Game.AdvanceDelay,
		LossDelay:           cfg.Game.LossDelay,
		WinDelay:            cfg.Game.WinDelay,
		TickInterval:        time.Second,
		ResetWinsWindow:     cfg.Game.ResetWinsWindow,
		PhoneFriendAccuracy: cfg.Game.PhoneFriendAccuracy,
		TimerEnabled:        cfg.Game.TimerEnabled,
	}

	sched := game.NewClockScheduler()
	newEngine := func() *game.Engine {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return game.NewEngine(zlog, sched, rng, bankService, questions, winsStore, gameCfg)
	}

	handler := telegram.NewHandler(bot, zlog, newEngine)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zlog.Fatal("handler stopped", zap.Error(err))
	}

	zlog.Info("shutdown signal received")
}
