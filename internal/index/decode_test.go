package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		got, err := decodeDocument([]byte("leave policy text"), "policy.txt")
		require.NoError(t, err)
		assert.Equal(t, "leave policy text", got)
	})

	t.Run("invalid utf8 is dropped", func(t *testing.T) {
		got, err := decodeDocument([]byte("ok\xff\xfetext"), "policy.md")
		require.NoError(t, err)
		assert.Equal(t, "oktext", got)
	})

	t.Run("html is reduced to text", func(t *testing.T) {
		html := `<html><head><style>p{color:red}</style></head>` +
			`<body><p>Annual leave is 24 days.</p><script>alert(1)</script></body></html>`
		got, err := decodeDocument([]byte(html), "policy.html")
		require.NoError(t, err)
		assert.Contains(t, got, "Annual leave is 24 days.")
		assert.NotContains(t, got, "alert(1)")
		assert.NotContains(t, got, "color:red")
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := decodeDocument([]byte("   "), "empty.txt")
		assert.ErrorIs(t, err, ErrDecode)
	})
}
