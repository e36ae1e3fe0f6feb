// Package gemini talks to the Gemini API natively.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/config"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

var errNoUserTurn = errors.New("history does not end with a user message")

var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// Client Gemini generator for one model
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewClient dials the Gemini API
func NewClient(ctx context.Context, apiKey, modelName string, temperature float32) (*Client, error) {
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: c, model: modelName, temperature: temperature}, nil
}

// NewClients the fallback chain in configured order
func NewClients(ctx context.Context, cfg config.LLMConfig) ([]llm.Client, error) {
	clients := make([]llm.Client, 0, len(cfg.Models))
	for _, name := range cfg.Models {
		c, err := NewClient(ctx, cfg.APIKey, name, cfg.SamplingTemperature())
		if err != nil {
			for _, opened := range clients {
				_ = opened.Close()
			}
			return nil, err
		}
		clients = append(clients, llm.Client{Model: name, Generator: c})
	}
	return clients, nil
}

// Generate sends the last user message with the earlier turns as chat history
func (c *Client) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	system, history, last, err := split(input)
	if err != nil {
		return nil, err
	}

	o := model.GetCommonOptions(&model.Options{Temperature: &c.temperature}, opts...)

	gm := c.client.GenerativeModel(c.model)
	if o.Temperature != nil {
		gm.SetTemperature(*o.Temperature)
	}
	if o.MaxTokens != nil {
		gm.SetMaxOutputTokens(int32(*o.MaxTokens))
	}
	if system != "" {
		gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	for _, cat := range harmCategories {
		gm.SafetySettings = append(gm.SafetySettings, &genai.SafetySetting{Category: cat, Threshold: genai.HarmBlockNone})
	}

	cs := gm.StartChat()
	cs.History = history
	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return nil, fmt.Errorf("gemini %s: %w", c.model, err)
	}
	return schema.AssistantMessage(responseText(resp), nil), nil
}

// Close releases the connection
func (c *Client) Close() error {
	return c.client.Close()
}

// split system messages are joined into one instruction; the final message
// must be the user turn to send.
func split(input []*schema.Message) (system string, history []*genai.Content, last string, err error) {
	var sys []string
	var turns []*schema.Message
	for _, m := range input {
		if m == nil {
			continue
		}
		if m.Role == schema.System {
			sys = append(sys, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 || turns[len(turns)-1].Role != schema.User {
		return "", nil, "", errNoUserTurn
	}

	for _, m := range turns[:len(turns)-1] {
		role := roleUser
		if m.Role == schema.Assistant {
			role = roleModel
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return strings.Join(sys, "\n\n"), history, turns[len(turns)-1].Content, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		// first candidate only
		break
	}
	return sb.String()
}

var _ llm.Generator = (*Client)(nil)
