package config

import "fmt"

// Validate checks that the configuration is internally consistent.
// Fail-fast: the first violation is returned, wrapped around the matching
// sentinel error.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("%w: %q (supported: %s, %s)",
			ErrInvalidProvider, c.Provider, ProviderGemini, ProviderOllama)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %v (must be in [0, 2])", ErrInvalidTemperature, c.Temperature)
	}

	if c.MaxTokens <= 0 || c.MaxTokens > 100_000 {
		return fmt.Errorf("%w: %d (must be in (0, 100000])", ErrInvalidMaxTokens, c.MaxTokens)
	}

	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder model must not be empty", ErrInvalidEmbedderModel)
	}

	if c.TopK <= 0 || c.TopK > 100 {
		return fmt.Errorf("%w: %d (must be in (0, 100])", ErrInvalidTopK, c.TopK)
	}

	if c.RelevanceFloor <= 0 || c.RelevanceFloor > 2 {
		return fmt.Errorf("%w: %v (cosine distance, must be in (0, 2])",
			ErrInvalidRelevanceFloor, c.RelevanceFloor)
	}

	if c.ChunkWords <= 0 {
		return fmt.Errorf("%w: chunk_words %d must be positive", ErrInvalidChunking, c.ChunkWords)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkWords {
		return fmt.Errorf("%w: chunk_overlap %d must be in [0, chunk_words)",
			ErrInvalidChunking, c.ChunkOverlap)
	}
	if c.MinChunkChars < 0 {
		return fmt.Errorf("%w: min_chunk_chars %d must not be negative",
			ErrInvalidChunking, c.MinChunkChars)
	}

	return nil
}
