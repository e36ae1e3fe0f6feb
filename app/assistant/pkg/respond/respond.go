// Package respond builds user-facing replies from classified intents and from
// the topic keyword table.
package respond

import (
	"errors"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/chart"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/intent"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/logger"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/roster"
)

// ErrUnknownDataset a dataset key the registry does not know
var ErrUnknownDataset = errors.New("unknown dataset")

// Reply text plus an optional chart
type Reply struct {
	Text  string      `json:"text"`
	Chart *chart.Spec `json:"chart,omitempty"`
}

// Local the deterministic responder: classifier first, then topics
type Local struct {
	registry   *dataset.Registry
	tables     *dataset.Tables
	roster     *roster.Roster
	classifier *intent.Classifier
	topics     []Topic
}

// NewLocal wires the local pipeline over injected data
func NewLocal(registry *dataset.Registry, tables *dataset.Tables, r *roster.Roster, classifier *intent.Classifier) *Local {
	l := &Local{
		registry:   registry,
		tables:     tables,
		roster:     r,
		classifier: classifier,
	}
	l.topics = l.defaultTopics()
	return l
}

// Registry backing the forecasts
func (l *Local) Registry() *dataset.Registry { return l.registry }

// Tables backing the topic replies
func (l *Local) Tables() *dataset.Tables { return l.tables }

// Roster backing student search
func (l *Local) Roster() *roster.Roster { return l.roster }

// DefaultYears forecast targets when none are given
func (l *Local) DefaultYears() []int { return l.classifier.DefaultYears() }

// Core answers forecast and student-search intents. ok is false when the
// classifier finds neither.
func (l *Local) Core(utterance string) (Reply, bool) {
	res := l.classifier.Classify(utterance)
	switch res.Kind {
	case intent.KindForecast:
		return Forecast(l.registry, res.Forecast), true
	case intent.KindStudentSearch:
		return Students(l.roster, res.Search), true
	default:
		return Reply{}, false
	}
}

// Topic answers from the topic keyword table
func (l *Local) Topic(utterance string) (Reply, bool) {
	q := intent.Normalize(utterance)
	for _, t := range l.topics {
		if t.Match(q) {
			logger.Log.WithField("topic", t.Name).Debug("topic matched")
			return t.Reply(q), true
		}
	}
	return Reply{}, false
}

// Match core first, then topics
func (l *Local) Match(utterance string) (Reply, bool) {
	if r, ok := l.Core(utterance); ok {
		return r, true
	}
	return l.Topic(utterance)
}

// Answer never fails; an unknown question gets the no-data message
func (l *Local) Answer(utterance string) Reply {
	if r, ok := l.Match(utterance); ok {
		return r
	}
	return Reply{Text: NoDataText}
}

// ForecastKey forecasts one dataset for the given years
func (l *Local) ForecastKey(key string, years []int, kind intent.ChartKind) (Reply, error) {
	if _, ok := l.registry.Lookup(key); !ok {
		return Reply{}, ErrUnknownDataset
	}
	if kind == "" {
		kind = intent.ChartLine
	}
	years = intent.UniqueYears(years)
	if len(years) == 0 {
		years = l.DefaultYears()
	}
	return Forecast(l.registry, &intent.Forecast{
		Years:    years,
		Chart:    kind,
		Datasets: []string{key},
	}), nil
}
