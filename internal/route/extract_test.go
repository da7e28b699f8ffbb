package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  map[string]string
	}{
		{
			name:  "issue key keeps the raw casing",
			query: "Close ACME-106 now",
			want: map[string]string{
				"issue_key": "ACME-106",
				"project":   "ACME",
				"keyword":   "close",
			},
		},
		{
			name:  "lowercase key is not an issue key",
			query: "look at acme-106",
			want: map[string]string{
				"project": "ACME",
				"keyword": "acme-106",
			},
		},
		{
			name:  "person from the roster",
			query: "what is the email for Priya?",
			want: map[string]string{
				"person":  "priya",
				"keyword": "email",
			},
		},
		{
			name:  "status with a space",
			query: "move the story to in progress",
			want: map[string]string{
				"status":     "IN PROGRESS",
				"issue_type": "STORY",
				"keyword":    "story",
			},
		},
		{
			name:  "sprint number is normalized",
			query: "sprint   7 board",
			want: map[string]string{
				"sprint":  "Sprint 7",
				"keyword": "sprint",
			},
		},
		{
			name:  "table and column hints",
			query: "does table orders have column amount",
			want: map[string]string{
				"table":   "orders",
				"column":  "amount",
				"keyword": "table",
			},
		},
		{
			name:  "priority and type",
			query: "critical bug for rahul",
			want: map[string]string{
				"person":     "rahul",
				"priority":   "CRITICAL",
				"issue_type": "BUG",
				"keyword":    "critical",
			},
		},
		{
			name:  "keyword skips filler words",
			query: "please show reimbursement details",
			want: map[string]string{
				"keyword": "reimbursement",
			},
		},
		{
			name:  "nothing to extract",
			query: "hi",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.query))
		})
	}
}

func TestExtractNoSideEffects(t *testing.T) {
	const query = "assign DATA-42 to kavya with high priority"
	a := Extract(query)
	b := Extract(query)
	assert.Equal(t, a, b)

	a["person"] = "mutated"
	assert.NotEqual(t, a, Extract(query))
}
