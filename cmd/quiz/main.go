package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/certquiz-bot/internal/certificate"
	"github.com/aliskhannn/certquiz-bot/internal/config"
	"github.com/aliskhannn/certquiz-bot/internal/delivery/tui"
	"github.com/aliskhannn/certquiz-bot/internal/logger"
	"github.com/aliskhannn/certquiz-bot/internal/repository"
	"github.com/aliskhannn/certquiz-bot/internal/service"
	"github.com/aliskhannn/certquiz-bot/internal/storage"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("quiz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outDir := fs.String("out", ".", "directory for downloaded certificates")
	lang := fs.String("lang", os.Getenv("LANG"), "preferred language (ru, kk, zh)")
	logFile := fs.String("log", "quiz.log", "log file path")
	noColor := fs.Bool("no-color", false, "disable colors")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	// The terminal belongs to the UI, so logs go to a file.
	lg, err := logger.New(cfg, *logFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer func() { _ = lg.Sync() }()

	bank, err := repository.NewTestBank(cfg.TestsPath)
	if err != nil {
		fmt.Fprintf(stderr, "load test bank: %v\n", err)
		return exitError
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
		service.NopJournal{},
		generator,
		lg.Named("quiz"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model := tui.NewModel(ctx, quizService, tui.Options{
		LanguageCode: *lang,
		OutDir:       *outDir,
		AnswerDelay:  cfg.Quiz.AnswerDelay,
		NoColor:      *noColor,
	})

	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		lg.Error("terminal ui failed", zap.Error(err))
		fmt.Fprintln(stderr, err)
		return exitError
	}

	return exitOK
}
