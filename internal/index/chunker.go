package index

import "strings"

// Chunker splits document text into overlapping word windows. Overlap
// keeps sentences that straddle a window boundary retrievable from both
// sides.
type Chunker struct {
	Words    int // window size in words
	Overlap  int // words shared between consecutive windows
	MinChars int // trimmed windows at or below this length are dropped
}

// Split cuts text into chunks. A document shorter than one window yields
// a single chunk; whitespace-only input yields none.
func (c Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.Words - c.Overlap
	if step <= 0 {
		step = c.Words
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := min(i+c.Words, len(words))
		chunk := strings.TrimSpace(strings.Join(words[i:end], " "))
		if len(chunk) > c.MinChars {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
