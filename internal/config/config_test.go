package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.InDelta(t, DefaultRelevanceFloor, cfg.RelevanceFloor, 1e-9)
	assert.Equal(t, DefaultChunkWords, cfg.ChunkWords)
	assert.Equal(t, DefaultChunkOverlap, cfg.ChunkOverlap)
	assert.Equal(t, 6, cfg.MaxHistory)

	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "openai" },
			wantErr: ErrInvalidProvider,
		},
		{
			name:    "empty model",
			mutate:  func(c *Config) { c.ModelName = "" },
			wantErr: ErrInvalidModelName,
		},
		{
			name:    "temperature too high",
			mutate:  func(c *Config) { c.Temperature = 2.5 },
			wantErr: ErrInvalidTemperature,
		},
		{
			name:    "zero max tokens",
			mutate:  func(c *Config) { c.MaxTokens = 0 },
			wantErr: ErrInvalidMaxTokens,
		},
		{
			name:    "empty embedder model",
			mutate:  func(c *Config) { c.EmbedderModel = "" },
			wantErr: ErrInvalidEmbedderModel,
		},
		{
			name:    "negative top-k",
			mutate:  func(c *Config) { c.TopK = -1 },
			wantErr: ErrInvalidTopK,
		},
		{
			name:    "relevance floor above distance range",
			mutate:  func(c *Config) { c.RelevanceFloor = 2.5 },
			wantErr: ErrInvalidRelevanceFloor,
		},
		{
			name:    "overlap not smaller than window",
			mutate:  func(c *Config) { c.ChunkOverlap = c.ChunkWords },
			wantErr: ErrInvalidChunking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
