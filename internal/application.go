package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketarcade/tictactoe/internal/config"
	"github.com/pocketarcade/tictactoe/internal/repository"
	"github.com/pocketarcade/tictactoe/internal/repository/storage"
	"github.com/pocketarcade/tictactoe/internal/service"
	"github.com/pocketarcade/tictactoe/internal/tui"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var sessionRepo repository.SessionRepository

	switch {
	case conf.Redis.IsEnabled():
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		sessionRepo = repository.NewSessionRepository(redisStorage.Connection)
		log.Info("Storing sessions in redis", "addr", conf.Redis.GetRedisAddr())
	case conf.SQLite.IsEnabled():
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLite.Path)
		if err != nil {
			return fmt.Errorf("could not open sqlite storage: %w", err)
		}

		defer func() {
			if err = sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}()

		if err = sqliteStorage.Init(ctx); err != nil {
			return fmt.Errorf("could not init sqlite storage: %w", err)
		}

		sessionRepo = repository.NewSQLiteSessionRepository(sqliteStorage.Connection)
		log.Info("Storing sessions in sqlite", "path", conf.SQLite.Path)
	default:
		sessionRepo = repository.NewMemorySessionRepository()
		log.Info("No storage is configured, keeping sessions in memory")
	}

	botService := service.NewBotService()
	gamePlayService := service.NewGamePlayService(logger, sessionRepo, botService)
	calcService := service.NewCalcService()

	model := tui.NewModel(ctx, logger, conf, gamePlayService, calcService)
	program := tui.NewProgram(ctx, model)

	log.Info("Starting terminal UI", "strategy", conf.Bot.Strategy, "bot_delay", conf.Bot.Delay)

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			log.Info("Application context canceled, shutting down")
			return nil
		}

		return fmt.Errorf("terminal UI error: %w", err)
	}

	log.Info("Application finished")

	return nil
}
