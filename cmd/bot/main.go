package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/certquiz-bot/internal/certificate"
	"github.com/aliskhannn/certquiz-bot/internal/config"
	httpdelivery "github.com/aliskhannn/certquiz-bot/internal/delivery/http"
	"github.com/aliskhannn/certquiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/certquiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/certquiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/certquiz-bot/internal/logger"
	testbank "github.com/aliskhannn/certquiz-bot/internal/repository"
	"github.com/aliskhannn/certquiz-bot/internal/service"
	"github.com/aliskhannn/certquiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Начать тестирование",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}

	_, err = bot.Request(tgbotapi.NewSetMyCommands(commands...))
	if err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bank, err := testbank.NewTestBank(cfg.TestsPath)
	if err != nil {
		lg.Fatal("failed to load test bank", zap.String("path", cfg.TestsPath), zap.Error(err))
	}

	var journal service.AttemptJournal = service.NopJournal{}
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        cfg.DB.MaxConnections,
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			lg.Fatal("failed to migrate database", zap.Error(err))
		}

		journal = repository.NewAttemptRepository(pool, postgres.NewTransactor(pool))
		lg.Info("attempt journal enabled")
	}

	var source certificate.Source = certificate.NewDirSource(cfg.Assets.Dir)
	if cfg.Assets.BaseURL != "" {
		source = certificate.NewHTTPSource(cfg.Assets.BaseURL, cfg.Assets.FetchTimeout)
	}
	generator := certificate.NewGenerator(
		source,
		certificate.NewPDFRenderer(cfg.Certificate.PageWidth, cfg.Certificate.PageHeight),
		lg.Named("certificate"),
	)

	quizService := service.NewQuizService(
		bank,
		storage.NewSessionStorage(),
		journal,
		generator,
		lg.Named("quiz"),
		service.WithSessionTTL(cfg.Quiz.SessionTTL),
	)

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		quizService,
		cfg.Quiz.AnswerDelay,
		cfg.PresentationURL,
	)

	g, gctx := errgroup.WithContext(ctx)

	janitor := service.NewSessionJanitor(quizService, cfg.Quiz.JanitorSchedule, lg.Named("janitor"))
	g.Go(func() error { return janitor.Start(gctx) })

	if cfg.HTTP.Addr != "" {
		srv := httpdelivery.NewServer(cfg.HTTP.Addr, httpdelivery.NewRouter(cfg.Assets.Dir), lg.Named("http"))
		g.Go(func() error { return srv.Run(gctx) })
	}

	g.Go(func() error {
		defer bot.StopReceivingUpdates()
		return handler.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown complete")
}
