// Package chart holds the chart description returned with a reply. The JSON
// shape is what chart.js accepts directly.
package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultType used when a chart block omits chartType
const DefaultType = "bar"

// Theme colours of the dashboard's dark widget
const (
	TickColor = "#9ca3af"
	GridColor = "rgba(255,255,255,0.05)"
	RingColor = "rgba(255,255,255,0.1)"
)

// ErrNoData a chart block without labels or datasets
var ErrNoData = errors.New("chart has no data")

// Spec one chart
type Spec struct {
	ChartType string         `json:"chartType"`
	Data      Data           `json:"data"`
	Options   map[string]any `json:"options,omitempty"`
}

// Data labels and series sharing that axis
type Data struct {
	Labels   []string `json:"labels"`
	Datasets []Series `json:"datasets"`
}

// Series one line or bar group. A nil value means no point at that label.
// Keys chart.js accepts that are not declared here are kept in Extra and
// written back out unchanged.
type Series struct {
	Label string     `json:"label"`
	Data  []*float64 `json:"data"`
	Style
	Extra map[string]any `json:"-"`
}

// Style chart.js per-dataset presentation hints. chart.js accepts several
// shapes for most of them (a colour or a list of colours, a bool or a fill
// target, a number or a per-corner object) so they are held as any.
type Style struct {
	BorderColor          any `json:"borderColor,omitempty"`
	BackgroundColor      any `json:"backgroundColor,omitempty"`
	Fill                 any `json:"fill,omitempty"`
	Tension              any `json:"tension,omitempty"`
	PointBackgroundColor any `json:"pointBackgroundColor,omitempty"`
	PointRadius          any `json:"pointRadius,omitempty"`
	PointStyle           any `json:"pointStyle,omitempty"`
	BorderWidth          any `json:"borderWidth,omitempty"`
	BorderRadius         any `json:"borderRadius,omitempty"`
	BorderDash           any `json:"borderDash,omitempty"`
}

var seriesKeys = []string{
	"label", "data", "borderColor", "backgroundColor", "fill", "tension",
	"pointBackgroundColor", "pointRadius", "pointStyle", "borderWidth", "borderRadius", "borderDash",
}

// UnmarshalJSON decodes the declared keys and keeps the rest in Extra
func (s *Series) UnmarshalJSON(b []byte) error {
	type plain Series
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range seriesKeys {
		delete(all, k)
	}
	p.Extra = nil
	if len(all) > 0 {
		p.Extra = all
	}
	*s = Series(p)
	return nil
}

// MarshalJSON writes the declared keys, then any Extra key they do not cover
func (s Series) MarshalJSON() ([]byte, error) {
	type plain Series
	b, err := json.Marshal(plain(s))
	if err != nil || len(s.Extra) == 0 {
		return b, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	for k, v := range s.Extra {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// Value boxes v for a Series
func Value(v float64) *float64 {
	return &v
}

// IsRadial chart types drawn on a radial scale
func IsRadial(chartType string) bool {
	switch chartType {
	case "radar", "polarArea":
		return true
	}
	return false
}

// ApplyTheme fills missing chartType, and for radial charts replaces the r
// scale with the widget colours.
func (s *Spec) ApplyTheme() {
	if s.ChartType == "" {
		s.ChartType = DefaultType
	}
	if s.Options == nil {
		s.Options = map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
		}
	}
	if _, ok := s.Options["plugins"]; !ok {
		s.Options["plugins"] = map[string]any{
			"legend": map[string]any{
				"position": "bottom",
				"labels":   map[string]any{"color": TickColor, "padding": 8, "font": map[string]any{"size": 10}},
			},
		}
	}

	if !IsRadial(s.ChartType) {
		return
	}
	scales, _ := s.Options["scales"].(map[string]any)
	if scales == nil {
		scales = map[string]any{}
	}
	// radial charts have no x/y axes
	delete(scales, "x")
	delete(scales, "y")
	scales["r"] = map[string]any{
		"angleLines":  map[string]any{"color": RingColor},
		"grid":        map[string]any{"color": RingColor},
		"pointLabels": map[string]any{"color": TickColor, "font": map[string]any{"size": 10}},
		"ticks":       map[string]any{"color": TickColor, "backdropColor": "transparent"},
		"beginAtZero": true,
	}
	s.Options["scales"] = scales
}

// CartesianOptions options used by locally built line and bar charts
func CartesianOptions() map[string]any {
	tick := map[string]any{"color": TickColor, "font": map[string]any{"size": 10}}
	return map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
		"plugins": map[string]any{
			"legend": map[string]any{
				"position": "bottom",
				"labels":   map[string]any{"color": TickColor, "padding": 8, "font": map[string]any{"size": 10}},
			},
		},
		"scales": map[string]any{
			"x": map[string]any{"ticks": tick, "grid": map[string]any{"display": false}},
			"y": map[string]any{"ticks": tick, "grid": map[string]any{"color": GridColor}},
		},
	}
}

// blockRe a ```json_chart fenced block
var blockRe = regexp.MustCompile("(?s)```json_chart\\s*(.*?)\\s*```")

// Extract finds the first json_chart block in a model reply. text is the reply
// with the block removed. When the block does not parse, spec is nil, err
// describes why and text still has the block removed.
func Extract(reply string) (text string, spec *Spec, err error) {
	loc := blockRe.FindStringSubmatchIndex(reply)
	if loc == nil {
		return strings.TrimSpace(reply), nil, nil
	}
	body := reply[loc[2]:loc[3]]
	text = strings.TrimSpace(reply[:loc[0]] + reply[loc[1]:])

	var s Spec
	if err := json.Unmarshal([]byte(stripComments(body)), &s); err != nil {
		return text, nil, fmt.Errorf("decode chart block: %w", err)
	}
	if len(s.Data.Labels) == 0 && len(s.Data.Datasets) == 0 {
		return text, nil, ErrNoData
	}
	s.ApplyTheme()
	return text, &s, nil
}

// lineCommentRe "// ..." trailing comments models copy from the prompt example
var lineCommentRe = regexp.MustCompile(`(?m)\s//[^"\n]*$`)

func stripComments(body string) string {
	return lineCommentRe.ReplaceAllString(body, "")
}
