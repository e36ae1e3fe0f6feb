package factory

import (
	"context"
	"errors"
	"testing"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/config"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm"
)

func TestNewClients_LocalOnly(t *testing.T) {
	tests := []struct {
		name string
		llm  config.LLMConfig
	}{
		{"no provider", config.LLMConfig{}},
		{"no key", config.LLMConfig{Provider: "openai", Models: []string{"m"}}},
		{"no models", config.LLMConfig{Provider: "gemini", APIKey: "k"}},
	}
	for _, tt := range tests {
		cfg := config.Default()
		cfg.LLM = tt.llm
		if _, err := NewClients(context.Background(), cfg); !errors.Is(err, llm.ErrNoProvider) {
			t.Errorf("%s: err = %v", tt.name, err)
		}
	}
}

func TestNewClients_OpenAI(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIKey = "k"
	cfg.LLM.Models = []string{"gemini-2.0-flash", "gemini-2.5-flash"}

	if _, err := NewClients(context.Background(), cfg); err == nil {
		t.Error("missing base url accepted")
	}

	cfg.LLM.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	clients, err := NewClients(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 2 || clients[0].Model != "gemini-2.0-flash" || clients[1].Model != "gemini-2.5-flash" {
		t.Errorf("clients = %+v", clients)
	}
}

func TestNewClients_UnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM = config.LLMConfig{Provider: "bard", APIKey: "k", Models: []string{"m"}}
	if _, err := NewClients(context.Background(), cfg); err == nil || errors.Is(err, llm.ErrNoProvider) {
		t.Errorf("err = %v", err)
	}
}
