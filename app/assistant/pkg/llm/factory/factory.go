package factory

import (
	"context"
	"fmt"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/config"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm/gemini"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm/openai"
)

// NewClients builds the model fallback chain for the configured provider.
// ErrNoProvider means the assistant should answer from local data only.
func NewClients(ctx context.Context, cfg *config.Config) ([]llm.Client, error) {
	if !cfg.RemoteEnabled() {
		return nil, llm.ErrNoProvider
	}

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("openai base url is missing")
		}
		return openai.NewClients(ctx, cfg.LLM)

	case "gemini":
		return gemini.NewClients(ctx, cfg.LLM)

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
}
