// Package llm provides the completion-API client used for chat summaries,
// advisor conversations, and life-path narratives.
package llm

import "context"

// Message is a single message in a chat-style conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles accepted by the completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request holds the parameters for one completion call.
type Request struct {
	// Messages is the conversation so far, system prompt first.
	Messages []Message

	// Temperature controls sampling randomness. Zero means the client
	// default.
	Temperature float64

	// MaxTokens bounds the completion length. Zero means the client default.
	MaxTokens int

	// WebSearch enables the provider's web-search augmentation tool.
	WebSearch bool
}

// Completer generates a completion for a chat-style conversation. On success
// the returned text is trimmed of surrounding whitespace. Implementations
// perform no retries; callers convert failures to persona placeholders.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)

	// Provider returns the name of the LLM provider.
	Provider() string

	// Model returns the model identifier being used.
	Model() string
}
