package domain

import (
	"errors"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/chart"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMissingSession = errors.New("session id is required")
	ErrSuperseded     = errors.New("a newer message on this session replaced the request")
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrInvalidYears   = errors.New("invalid years")
	ErrInvalidChart   = errors.New("chart must be line or bar")
)

// ChatReply one assistant answer
type ChatReply struct {
	SessionID string      `json:"session_id"`
	Text      string      `json:"text"`
	Chart     *chart.Spec `json:"chart,omitempty"`
	Source    string      `json:"source"`
	Model     string      `json:"model,omitempty"`
}

// Point one yearly observation
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Dataset a forecastable series
type Dataset struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Unit   string  `json:"unit"`
	Scope  string  `json:"scope"`
	Points []Point `json:"points"`
}

// Forecast a single-dataset forecast reply
type Forecast struct {
	Key   string      `json:"key"`
	Years []int       `json:"years"`
	Text  string      `json:"text"`
	Chart *chart.Spec `json:"chart,omitempty"`
}
