// Package intent turns a Thai/English utterance into a forecast request or a
// student search. A miss is a value, never an error.
package intent

import (
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/logger"
)

// Kind of classified intent
type Kind int

const (
	KindNone Kind = iota
	KindForecast
	KindStudentSearch
)

func (k Kind) String() string {
	switch k {
	case KindForecast:
		return "forecast"
	case KindStudentSearch:
		return "student_search"
	default:
		return "none"
	}
}

// ChartKind requested chart style
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// Forecast request slots
type Forecast struct {
	Years    []int     `json:"years"`
	Chart    ChartKind `json:"chart"`
	Datasets []string  `json:"datasets"`
	Narrow   bool      `json:"narrow"`
}

// PredicateKind student selection rule
type PredicateKind int

const (
	PredicateIDPrefix PredicateKind = iota + 1
	PredicateName
	PredicateMajor
	PredicateYear
	PredicateAtRisk
	PredicateHonors
)

func (p PredicateKind) String() string {
	switch p {
	case PredicateIDPrefix:
		return "id_prefix"
	case PredicateName:
		return "name"
	case PredicateMajor:
		return "major"
	case PredicateYear:
		return "year"
	case PredicateAtRisk:
		return "at_risk"
	case PredicateHonors:
		return "honors"
	default:
		return "unknown"
	}
}

// Predicate one active selection rule. Text carries the id prefix, name term
// or major; Year carries the year of study.
type Predicate struct {
	Kind PredicateKind `json:"kind"`
	Text string        `json:"text,omitempty"`
	Year int           `json:"year,omitempty"`
}

// StudentSearch request slots. Limit 0 means unlimited.
type StudentSearch struct {
	Limit     int       `json:"limit"`
	Predicate Predicate `json:"predicate"`
}

// Result classifier output; exactly one of Forecast or Search is set unless Kind is KindNone
type Result struct {
	Kind     Kind
	Forecast *Forecast
	Search   *StudentSearch
}

// Rule one step of the classification order
type Rule struct {
	Name  string
	Match func(q string) (Result, bool)
}

// Classifier intent classifier bound to a dataset registry
type Classifier struct {
	registry     *dataset.Registry
	defaultYears []int
	rules        []Rule
}

// New creates a classifier. defaultYears is used when a forecast names no year.
func New(registry *dataset.Registry, defaultYears []int) *Classifier {
	c := &Classifier{
		registry:     registry,
		defaultYears: append([]int(nil), defaultYears...),
	}
	// forecast before student search
	c.rules = []Rule{
		{Name: "forecast", Match: func(q string) (Result, bool) {
			f, ok := c.ParseForecast(q)
			return Result{Kind: KindForecast, Forecast: f}, ok
		}},
		{Name: "student_search", Match: func(q string) (Result, bool) {
			s, ok := ParseStudentSearch(q)
			return Result{Kind: KindStudentSearch, Search: s}, ok
		}},
	}
	return c
}

// Rules in evaluation order
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify runs the rules in order; the first match wins.
func (c *Classifier) Classify(utterance string) Result {
	q := Normalize(utterance)
	for _, r := range c.rules {
		if res, ok := r.Match(q); ok {
			logger.Log.WithField("rule", r.Name).Debugf("classified %q", utterance)
			return res
		}
	}
	return Result{Kind: KindNone}
}

// DefaultYears target years used when an utterance names none
func (c *Classifier) DefaultYears() []int {
	return UniqueYears(c.defaultYears)
}
