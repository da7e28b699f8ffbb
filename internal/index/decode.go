package index

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// decodeDocument turns an uploaded file into plain text. HTML goes
// through readability to strip boilerplate, with a raw goquery text
// extraction as fallback for pages readability cannot parse. Everything
// else is treated as UTF-8 text with invalid sequences dropped.
func decodeDocument(raw []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".html" || ext == ".htm" {
		return decodeHTML(raw)
	}

	text := strings.ToValidUTF8(string(raw), "")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s is empty after decoding", ErrDecode, filename)
	}
	return text, nil
}

func decodeHTML(raw []byte) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(raw), nil)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent, nil
	}

	doc, qerr := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if qerr != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, qerr)
	}
	doc.Find("script, style").Remove()
	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return "", fmt.Errorf("%w: no text content", ErrDecode)
	}
	return text, nil
}
