package domain

import (
	"context"

	"github.com/kailas-cloud/stylebot/internal/domain/chat"
)

// PromptMessage is one turn sent to the completion provider.
type PromptMessage struct {
	Role    chat.Role
	Content string
}

// Completion is the provider's reply with token usage.
type Completion struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// Completer generates an assistant reply for a prompt.
type Completer interface {
	Complete(ctx context.Context, messages []PromptMessage) (Completion, error)
}
