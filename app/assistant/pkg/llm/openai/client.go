// Package openai connects to any OpenAI-compatible chat endpoint through eino.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/config"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm"
)

// NewClient one chat model per configured model name
func NewClient(ctx context.Context, cfg config.LLMConfig, modelName string) (llm.Client, error) {
	temperature := cfg.SamplingTemperature()
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       modelName,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		Temperature: &temperature,
	})
	if err != nil {
		return llm.Client{}, fmt.Errorf("openai model %s: %w", modelName, err)
	}
	return llm.Client{Model: modelName, Generator: cm}, nil
}

// NewClients the fallback chain in configured order
func NewClients(ctx context.Context, cfg config.LLMConfig) ([]llm.Client, error) {
	clients := make([]llm.Client, 0, len(cfg.Models))
	for _, name := range cfg.Models {
		c, err := NewClient(ctx, cfg, name)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}

var _ llm.Generator = (*openai.ChatModel)(nil)
