// Package llm is the boundary to remote text-generation services.
package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var (
	// ErrEmptyReply the model answered without any text
	ErrEmptyReply = errors.New("empty reply")
	// ErrNoProvider no remote provider is configured
	ErrNoProvider = errors.New("llm provider not configured")
)

// Generator produces one reply for a message history. The eino chat models
// satisfy it directly.
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Client a generator bound to one model name
type Client struct {
	Model string
	Generator
}

// Close releases the generator when it holds a connection
func (c Client) Close() error {
	if cl, ok := c.Generator.(interface{ Close() error }); ok {
		return cl.Close()
	}
	return nil
}

// Text trimmed reply content, ErrEmptyReply when there is none
func Text(msg *schema.Message) (string, error) {
	if msg == nil {
		return "", ErrEmptyReply
	}
	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// CleanJSON strips a surrounding ```json fence
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// IsRateLimited reports a quota or 429 response
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "resource_exhausted")
}
