package service

import (
	"context"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/domain"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/usecase"
)

// ChatRequest body of POST /api/chat
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ResetReply body of DELETE /api/chat/{session_id}
type ResetReply struct {
	SessionID string `json:"session_id"`
	Reset     bool   `json:"reset"`
}

// DatasetsReply body of GET /api/datasets
type DatasetsReply struct {
	Datasets []*domain.Dataset `json:"datasets"`
}

// InsightsReply body of GET /api/insights
type InsightsReply struct {
	Insights []string `json:"insights"`
}

type ChatService struct {
	uc  *usecase.ChatUseCase
	log *log.Helper
}

func NewChatService(uc *usecase.ChatUseCase, logger log.Logger) *ChatService {
	return &ChatService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

func (s *ChatService) Chat(ctx context.Context, req *ChatRequest) (*domain.ChatReply, error) {
	reply, err := s.uc.Chat(ctx, req.SessionID, req.Message)
	if err != nil {
		return nil, s.toHTTPError(ctx, err)
	}
	return reply, nil
}

func (s *ChatService) Reset(ctx context.Context, sessionID string) (*ResetReply, error) {
	if err := s.uc.Reset(ctx, sessionID); err != nil {
		return nil, s.toHTTPError(ctx, err)
	}
	return &ResetReply{SessionID: sessionID, Reset: true}, nil
}

func (s *ChatService) Datasets(ctx context.Context) (*DatasetsReply, error) {
	return &DatasetsReply{Datasets: s.uc.Datasets(ctx)}, nil
}

func (s *ChatService) Forecast(ctx context.Context, key, years, chart string) (*domain.Forecast, error) {
	f, err := s.uc.Forecast(ctx, key, years, chart)
	if err != nil {
		return nil, s.toHTTPError(ctx, err)
	}
	return f, nil
}

func (s *ChatService) Insights(ctx context.Context) (*InsightsReply, error) {
	return &InsightsReply{Insights: s.uc.Insights(ctx)}, nil
}

func (s *ChatService) toHTTPError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return kerrors.BadRequest("EMPTY_MESSAGE", err.Error())
	case errors.Is(err, domain.ErrMissingSession):
		return kerrors.BadRequest("MISSING_SESSION", err.Error())
	case errors.Is(err, domain.ErrInvalidYears):
		return kerrors.BadRequest("INVALID_YEARS", err.Error())
	case errors.Is(err, domain.ErrInvalidChart):
		return kerrors.BadRequest("INVALID_CHART", err.Error())
	case errors.Is(err, domain.ErrUnknownDataset):
		return kerrors.NotFound("UNKNOWN_DATASET", err.Error())
	case errors.Is(err, domain.ErrSuperseded):
		return kerrors.Conflict("SUPERSEDED", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return kerrors.ClientClosed("CANCELLED", err.Error())
	default:
		s.log.WithContext(ctx).Errorf("chat service: %v", err)
		return kerrors.InternalServer("INTERNAL", err.Error())
	}
}
