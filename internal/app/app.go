package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"go.uber.org/zap"

	"daily-brief/internal/client/openweather"
	"daily-brief/internal/config"
	"daily-brief/internal/services/brief"
	"daily-brief/internal/transport/telegram"
	"daily-brief/internal/utils"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Sender delivers the composed brief.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Deps are the collaborators of a single run.
type Deps struct {
	Weather brief.WeatherFetcher
	Sender  Sender
	Logger  *zap.Logger
}

// Run fetches the weather, composes the brief for mode and sends it.
func Run(ctx context.Context, mode config.Mode, deps Deps) error {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	text := brief.NewService(deps.Weather, logger).Build(ctx, mode)
	if err := deps.Sender.Send(ctx, text); err != nil {
		return fmt.Errorf("deliver %s brief: %w", mode, err)
	}
	return nil
}

// Main performs one scheduled run and returns the process exit code.
// Status lines meant for the scheduler's log go to stdout.
func Main(ctx context.Context, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		var missing *config.MissingEnvError
		if errors.As(err, &missing) {
			fmt.Fprintln(stdout, missing.Error())
			return ExitFailure
		}
		fmt.Fprintf(stdout, "config: %v\n", err)
		return ExitFailure
	}

	logger, levelErr := utils.NewLogger(cfg.LogLevel)
	if levelErr != nil {
		logger, err = utils.NewLogger("info")
		if err != nil {
			log.Printf("logger: %v", err)
			return ExitFailure
		}
		logger.Warn("falling back to info level", zap.String("logLevel", cfg.LogLevel), zap.Error(levelErr))
	}
	defer logger.Sync() // best-effort flush

	weather := openweather.NewClient(nil, cfg.OpenWeatherAPIKey, openweather.Options{
		City:    cfg.City,
		Country: cfg.Country,
		BaseURL: cfg.WeatherBaseURL,
		Timeout: cfg.WeatherTimeout,
	}, logger)

	notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, telegram.NotifierOptions{
		APIEndpoint: cfg.TelegramAPIEndpoint,
	}, logger)
	if err != nil {
		logger.Error("telegram init failed", zap.Error(err))
		return ExitFailure
	}

	mode := cfg.Mode()
	logger.Info("sending brief", zap.String("mode", string(mode)), zap.String("city", cfg.City))

	err = Run(ctx, mode, Deps{Weather: weather, Sender: notifier, Logger: logger})
	if err != nil {
		var delivery *telegram.DeliveryError
		if errors.As(err, &delivery) {
			body := delivery.Body
			if body == "" && delivery.Err != nil {
				body = delivery.Err.Error()
			}
			fmt.Fprintln(stdout, "Telegram error:", body)
		} else {
			fmt.Fprintln(stdout, "Error:", err)
		}
		logger.Error("run failed", zap.Error(err))
		return ExitFailure
	}

	fmt.Fprintln(stdout, "Message sent successfully.")
	return ExitOK
}
