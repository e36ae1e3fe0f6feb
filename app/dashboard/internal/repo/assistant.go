package repo

import (
	"context"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/domain"
)

// AssistantRepo access to the assistant engine
type AssistantRepo interface {
	// Ask answers one message within a session
	Ask(ctx context.Context, sessionID, message string) (*domain.ChatReply, error)
	// Reset forgets a session's conversation
	Reset(ctx context.Context, sessionID string)
	// Datasets lists the forecastable series
	Datasets(ctx context.Context) []*domain.Dataset
	// Forecast one dataset over the given years; nil years means the defaults
	Forecast(ctx context.Context, key string, years []int, chartKind string) (*domain.Forecast, error)
	// Insights short observations for the dashboard header
	Insights(ctx context.Context) []string
}
