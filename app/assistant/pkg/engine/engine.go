package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/chart"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/config"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/intent"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm/factory"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/logger"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/respond"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/roster"
)

var (
	// ErrSuperseded a newer utterance on the same session cancelled this one
	ErrSuperseded = errors.New("superseded by a newer message")
	// ErrEmptyMessage nothing to answer
	ErrEmptyMessage = errors.New("empty message")
)

// UnavailableNotice prefixes local answers given in place of the remote model
const UnavailableNotice = "⚠️ _ระบบ AI ไม่พร้อมใช้งานในขณะนี้ ใช้ข้อมูลในระบบแทน_"

const (
	maxRetries = 2
	baseDelay  = 2 * time.Second
)

// Source where a reply came from
type Source string

const (
	SourceRemote   Source = "remote"
	SourceLocal    Source = "local"
	SourceFallback Source = "fallback"
	SourceError    Source = "error"
)

// Reply one answer
type Reply struct {
	Text   string      `json:"text"`
	Chart  *chart.Spec `json:"chart,omitempty"`
	Source Source      `json:"source"`
	Model  string      `json:"model,omitempty"`
}

// Engine answers utterances with the remote model chain and falls back to the local pipeline
type Engine struct {
	cfg        *config.Config
	local      *respond.Local
	clients    []llm.Client
	limiter    *rate.Limiter
	system     string
	timeout    time.Duration
	retryDelay time.Duration

	mu          sync.Mutex
	sessions    map[string]*session
	seq         uint64
	maxSessions int
	idle        time.Duration
	now         func() time.Time

	insightsMu sync.Mutex
	insights   []string
}

// NewEngine builds the local pipeline from cfg and, when a provider is configured, the remote model chain
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	local := NewLocal(cfg)

	clients, err := factory.NewClients(ctx, cfg)
	if err != nil {
		if !errors.Is(err, llm.ErrNoProvider) {
			return nil, fmt.Errorf("LLM init: %w", err)
		}
		logger.Log.Info("no remote model configured, answering from local data")
	}
	return New(cfg, local, clients), nil
}

// NewLocal the deterministic pipeline over the built-in tables and the generated roster
func NewLocal(cfg *config.Config) *respond.Local {
	tables := dataset.DefaultTables()
	reg := dataset.NewDefaultRegistry(tables)
	r := roster.Generate(cfg.Roster.Seed, cfg.Roster.Size)
	return respond.NewLocal(reg, tables, r, intent.New(reg, cfg.Forecast.DefaultYears))
}

// New wires an engine over an existing local pipeline. No clients means local-only.
func New(cfg *config.Config, local *respond.Local, clients []llm.Client) *Engine {
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	burst := cfg.Concurrency.QPS

	return &Engine{
		cfg:        cfg,
		local:      local,
		clients:    clients,
		limiter:    rate.NewLimiter(limit, burst),
		system:     SystemInstruction(local),
		timeout:    time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		retryDelay: baseDelay,

		sessions:    make(map[string]*session),
		maxSessions: cfg.LLM.MaxSessions,
		idle:        time.Duration(cfg.LLM.SessionIdleMinutes) * time.Minute,
		now:         time.Now,
	}
}

// Local the deterministic pipeline
func (e *Engine) Local() *respond.Local { return e.local }

// RemoteEnabled whether any remote model is wired
func (e *Engine) RemoteEnabled() bool { return len(e.clients) > 0 }

// Ask answers one utterance in a session. The only errors are ErrEmptyMessage,
// ErrSuperseded and the caller's own context error; every remote failure
// degrades to a local answer.
func (e *Engine) Ask(ctx context.Context, sessionID, utterance string) (Reply, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return Reply{}, ErrEmptyMessage
	}
	log := logger.Session(sessionID)

	if !e.RemoteEnabled() {
		r := e.local.Answer(utterance)
		return Reply{Text: r.Text, Chart: r.Chart, Source: SourceLocal}, nil
	}

	callCtx, done, seq, msgs := e.begin(ctx, sessionID, utterance)
	defer done()

	text, modelName, err := e.generate(callCtx, msgs)
	if errors.Is(context.Cause(callCtx), ErrSuperseded) {
		log.Debug("call superseded by a newer message")
		return Reply{}, ErrSuperseded
	}
	if ctx.Err() != nil {
		e.finish(sessionID, seq, "")
		return Reply{}, ctx.Err()
	}
	if err != nil {
		e.finish(sessionID, seq, "")
		return e.fallback(log.WithError(err), utterance, err), nil
	}
	e.finish(sessionID, seq, text)

	body, spec, cerr := chart.Extract(text)
	if cerr != nil {
		log.WithError(cerr).Warn("discarding malformed chart block")
	}
	log.WithField("model", modelName).Info("answered by remote model")
	return Reply{Text: body, Chart: spec, Source: SourceRemote, Model: modelName}, nil
}

func (e *Engine) fallback(log *logrus.Entry, utterance string, cause error) Reply {
	if r, ok := e.local.Match(utterance); ok {
		log.Info("remote model unavailable, answering from local data")
		return Reply{Text: UnavailableNotice + "\n\n" + r.Text, Chart: r.Chart, Source: SourceFallback}
	}
	log.Error("remote model unavailable and no local answer")
	return Reply{
		Text:   fmt.Sprintf("❌ ขออภัย ไม่สามารถเชื่อมต่อระบบ AI ได้\n\nรายละเอียด: %s\n\nกรุณาลองใหม่อีกครั้งครับ", cause.Error()),
		Source: SourceError,
	}
}

// generate tries each model in order until one returns text
func (e *Engine) generate(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (string, string, error) {
	var lastErr error
	for _, c := range e.clients {
		text, err := e.try(ctx, c, msgs, opts...)
		if err == nil {
			return text, c.Model, nil
		}
		lastErr = fmt.Errorf("%s: %w", c.Model, err)
		logger.Log.WithField("model", c.Model).WithError(err).Warn("model failed")
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		lastErr = llm.ErrNoProvider
	}
	return "", "", lastErr
}

func (e *Engine) try(ctx context.Context, c llm.Client, msgs []*schema.Message, opts ...model.Option) (string, error) {
	for i := 0; ; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := c.Generate(ctx, msgs, opts...)
		if err != nil {
			if llm.IsRateLimited(err) && i < maxRetries {
				if werr := sleep(ctx, e.retryDelay*time.Duration(1<<i)); werr != nil {
					return "", werr
				}
				continue
			}
			return "", err
		}
		return llm.Text(resp)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Close releases the remote clients
func (e *Engine) Close() error {
	var errs []error
	for _, c := range e.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
