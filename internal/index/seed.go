package index

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Docs []struct {
		Text     string            `yaml:"text"`
		Metadata map[string]string `yaml:"metadata"`
	} `yaml:"docs"`
}

// seedChunks parses the embedded base corpus. Each seed document is small
// enough to index as a single chunk.
func seedChunks() ([]Chunk, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("parsing seed corpus: %w", err)
	}

	chunks := make([]Chunk, 0, len(f.Docs))
	for _, d := range f.Docs {
		chunks = append(chunks, Chunk{
			Text:     strings.TrimSpace(d.Text),
			Metadata: d.Metadata,
		})
	}
	return chunks, nil
}
