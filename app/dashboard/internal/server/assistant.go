package server

import (
	"context"
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/config"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/engine"
	aLogger "github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/logger"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/conf"
)

// AssistantConfig converts conf.Assistant into config.Config. Unset sections
// keep the assistant defaults.
func AssistantConfig(c *conf.Assistant) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		cfg.ApplyDefaults()
		return cfg
	}

	if c.Llm != nil {
		cfg.LLM = config.LLMConfig{
			Provider:           c.Llm.Provider,
			BaseURL:            c.Llm.BaseUrl,
			APIKey:             c.Llm.ApiKey,
			Models:             c.Llm.Models,
			TimeoutSeconds:     int(c.Llm.TimeoutSeconds),
			Temperature:        c.Llm.Temperature,
			MaxHistory:         int(c.Llm.MaxHistory),
			MaxSessions:        int(c.Llm.MaxSessions),
			SessionIdleMinutes: int(c.Llm.SessionIdle),
		}
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS: int(c.Concurrency.Qps),
			RPM: int(c.Concurrency.Rpm),
		}
	}
	if c.Forecast != nil {
		for _, y := range c.Forecast.DefaultYears {
			cfg.Forecast.DefaultYears = append(cfg.Forecast.DefaultYears, int(y))
		}
	}
	if c.Roster != nil {
		cfg.Roster = config.RosterConfig{Seed: c.Roster.Seed, Size: int(c.Roster.Size)}
	}
	cfg.ApplyDefaults()
	return cfg
}

// NewAssistantEngine initialises the assistant engine
func NewAssistantEngine(c *conf.Assistant, logger log.Logger) (*engine.Engine, error) {
	cfg := AssistantConfig(c)
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(config.APIKeyEnv)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := aLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init assistant logger: %v", err)
		_ = aLogger.InitLogger("info", "")
	}

	eng, err := engine.NewEngine(context.Background(), cfg)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, err
	}
	if !eng.RemoteEnabled() {
		log.NewHelper(logger).Warn("no remote model configured, the assistant answers from local data only")
	}
	return eng, nil
}
