package data

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/engine"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/intent"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/respond"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/domain"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/repo"
)

type assistantRepo struct {
	data *Data
	log  *log.Helper
}

func NewAssistantRepo(data *Data, logger log.Logger) repo.AssistantRepo {
	return &assistantRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *assistantRepo) Ask(ctx context.Context, sessionID, message string) (*domain.ChatReply, error) {
	reply, err := r.data.engine.Ask(ctx, sessionID, message)
	switch {
	case errors.Is(err, engine.ErrSuperseded):
		return nil, domain.ErrSuperseded
	case errors.Is(err, engine.ErrEmptyMessage):
		return nil, domain.ErrEmptyMessage
	case err != nil:
		return nil, err
	}
	return &domain.ChatReply{
		SessionID: sessionID,
		Text:      reply.Text,
		Chart:     reply.Chart,
		Source:    string(reply.Source),
		Model:     reply.Model,
	}, nil
}

func (r *assistantRepo) Reset(ctx context.Context, sessionID string) {
	r.data.engine.Reset(sessionID)
}

func (r *assistantRepo) Datasets(ctx context.Context) []*domain.Dataset {
	all := r.data.engine.Local().Registry().All()
	out := make([]*domain.Dataset, 0, len(all))
	for _, d := range all {
		pts := d.Points()
		points := make([]domain.Point, len(pts))
		for i, p := range pts {
			points[i] = domain.Point{Year: p.Year, Value: p.Value}
		}
		out = append(out, &domain.Dataset{Key: d.Key, Label: d.Label, Unit: d.Unit, Scope: d.Scope, Points: points})
	}
	return out
}

func (r *assistantRepo) Forecast(ctx context.Context, key string, years []int, chartKind string) (*domain.Forecast, error) {
	local := r.data.engine.Local()
	reply, err := local.ForecastKey(key, years, intent.ChartKind(chartKind))
	if errors.Is(err, respond.ErrUnknownDataset) {
		return nil, domain.ErrUnknownDataset
	}
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		years = local.DefaultYears()
	}
	return &domain.Forecast{Key: key, Years: intent.UniqueYears(years), Text: reply.Text, Chart: reply.Chart}, nil
}

func (r *assistantRepo) Insights(ctx context.Context) []string {
	return r.data.engine.Insights(ctx)
}
