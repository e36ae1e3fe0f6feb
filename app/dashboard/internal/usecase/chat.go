package usecase

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/intent"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/domain"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/repo"
)

// ChatUseCase chat and dataset business logic
type ChatUseCase struct {
	repo repo.AssistantRepo
	log  *log.Helper
}

// NewChatUseCase creates the chat use case
func NewChatUseCase(repo repo.AssistantRepo, logger log.Logger) *ChatUseCase {
	return &ChatUseCase{repo: repo, log: log.NewHelper(logger)}
}

// Chat answers a message. An empty session id starts a new session.
func (uc *ChatUseCase) Chat(ctx context.Context, sessionID, message string) (*domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
		uc.log.WithContext(ctx).Infof("new chat session %s", sessionID)
	}

	reply, err := uc.repo.Ask(ctx, sessionID, message)
	if err != nil {
		return nil, err
	}
	if reply.Source != "remote" {
		uc.log.WithContext(ctx).Debugf("session %s answered from %s", sessionID, reply.Source)
	}
	return reply, nil
}

// Reset clears a session
func (uc *ChatUseCase) Reset(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrMissingSession
	}
	uc.repo.Reset(ctx, sessionID)
	return nil
}

// Datasets lists the forecastable series
func (uc *ChatUseCase) Datasets(ctx context.Context) []*domain.Dataset {
	return uc.repo.Datasets(ctx)
}

// Forecast one dataset. years is a comma or space separated list such as
// "2570,2571" or "70 71"; empty means the configured defaults.
func (uc *ChatUseCase) Forecast(ctx context.Context, key, years, chartKind string) (*domain.Forecast, error) {
	switch chartKind {
	case "", string(intent.ChartLine), string(intent.ChartBar):
	default:
		return nil, domain.ErrInvalidChart
	}

	var targets []int
	if raw := strings.TrimSpace(years); raw != "" {
		targets = intent.ExtractYears(strings.ReplaceAll(raw, ",", " "))
		if len(targets) == 0 {
			return nil, domain.ErrInvalidYears
		}
	}
	return uc.repo.Forecast(ctx, key, targets, chartKind)
}

// Insights observations for the dashboard header
func (uc *ChatUseCase) Insights(ctx context.Context) []string {
	return uc.repo.Insights(ctx)
}
