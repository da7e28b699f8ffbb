package index

// SearchOption configures retrieval behavior using functional options.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK       int
	typeFilter string
}

// WithTopK overrides the maximum number of results for one retrieval.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		c.topK = k
	}
}

// WithTypeFilter restricts results to chunks whose "type" metadata equals
// the given value (e.g. "hr_policy").
func WithTypeFilter(t string) SearchOption {
	return func(c *searchConfig) {
		c.typeFilter = t
	}
}

func (i *Index) buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{topK: i.topK}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
