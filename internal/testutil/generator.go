package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/atriumhq/atrium/internal/llm"
)

// MockGenerator provides deterministic completions for testing. It matches
// the prompt against registered substring patterns and returns the
// corresponding response; when nothing matches the fallback is returned.
//
// Thread-safe for concurrent use.
type MockGenerator struct {
	mu       sync.Mutex
	rules    []generatorRule
	fallback string
	calls    []GeneratorCall

	Err error // returned by Complete when set
}

type generatorRule struct {
	pattern  string
	response string
}

// GeneratorCall records a single call to the mock generator.
type GeneratorCall struct {
	System  string
	Prompt  string
	History []llm.Message
}

// NewMockGenerator creates a mock generator with the given fallback
// response.
func NewMockGenerator(fallback string) *MockGenerator {
	return &MockGenerator{fallback: fallback}
}

// AddResponse registers a pattern-response pair. When a prompt contains
// the pattern (case-insensitive), the response is returned. Patterns are
// checked in registration order; first match wins.
func (m *MockGenerator) AddResponse(pattern, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, generatorRule{
		pattern:  strings.ToLower(pattern),
		response: response,
	})
}

// Calls returns a copy of all recorded calls.
func (m *MockGenerator) Calls() []GeneratorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]GeneratorCall, len(m.calls))
	copy(cp, m.calls)
	return cp
}

// Complete implements llm.Generator.
func (m *MockGenerator) Complete(ctx context.Context, system, prompt string, history []llm.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, GeneratorCall{System: system, Prompt: prompt, History: history})

	if m.Err != nil {
		return "", m.Err
	}

	lower := strings.ToLower(prompt)
	for _, r := range m.rules {
		if strings.Contains(lower, r.pattern) {
			return r.response, nil
		}
	}
	return m.fallback, nil
}
