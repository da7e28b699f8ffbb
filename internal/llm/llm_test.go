package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt(t *testing.T) {
	p := SystemPrompt("Initech")
	assert.Contains(t, p, "Initech")
	assert.Contains(t, p, "HR policies")
}
