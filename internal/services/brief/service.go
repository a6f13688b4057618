package brief

import (
	"context"

	"go.uber.org/zap"

	"daily-brief/internal/config"
)

// WeatherFetcher produces the weather line that heads every brief.
// Implementations must not fail; they return a placeholder instead.
type WeatherFetcher interface {
	Line(ctx context.Context) string
}

// Compose picks the template for mode. Anything other than weekly gets the daily brief.
func Compose(mode config.Mode, weather string) string {
	if mode == config.ModeWeekly {
		return Weekly(weather)
	}
	return Daily(weather)
}

// Service builds the brief text for a run.
type Service struct {
	weather WeatherFetcher
	logger  *zap.Logger
}

// NewService constructs a brief service instance.
func NewService(weather WeatherFetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		weather: weather,
		logger:  logger,
	}
}

// Build fetches the weather line and renders the brief for mode.
func (s *Service) Build(ctx context.Context, mode config.Mode) string {
	line := s.weather.Line(ctx)
	s.logger.Debug("composing brief", zap.String("mode", string(mode)), zap.String("weather", line))
	return Compose(mode, line)
}
