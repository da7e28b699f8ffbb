// Package llm provides the text-generation collaborator. The Dispatcher
// depends only on the Generator interface; the production implementation
// talks to a model through Genkit, and tests substitute a mock.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the model could not be reached or refused
	// the request. Callers degrade to a fallback answer instead of failing.
	ErrUnavailable = errors.New("generation unavailable")

	// ErrEmptyOutput indicates the model returned no usable text.
	ErrEmptyOutput = errors.New("empty model output")
)

// Message roles in a conversation history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces a text completion for a prompt with optional
// conversation history. Implementations must be safe for concurrent use.
type Generator interface {
	Complete(ctx context.Context, system, prompt string, history []Message) (string, error)
}

// SystemPrompt builds the assistant persona prompt used for grounded
// answers.
func SystemPrompt(company string) string {
	return fmt.Sprintf(`You are Atrium, the intelligent enterprise assistant for %s.
You help employees with HR policies, ticket tracking, data analytics, IT support, and general questions.
Be concise, helpful, and professional. Use the context provided to give accurate answers.
When context is from HR documents, quote the relevant policy sections precisely.
When writing SQL, use proper T-SQL syntax.`, company)
}
