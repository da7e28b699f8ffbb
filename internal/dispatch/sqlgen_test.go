package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateSQL(t *testing.T) {
	tests := []struct {
		name     string
		request  string
		hint     string
		contains []string
	}{
		{
			name:     "top customers by revenue",
			request:  "top 5 customers by revenue",
			contains: []string{"SELECT TOP 5", "customer_id", "total_revenue"},
		},
		{
			name:     "top products",
			request:  "show the top products",
			contains: []string{"SELECT TOP 10", "product_name"},
		},
		{
			name:     "daily trend",
			request:  "daily sales trend for the last 7 days",
			contains: []string{"last 7 days", "cumulative_revenue"},
		},
		{
			name:     "monthly revenue",
			request:  "monthly revenue breakdown",
			contains: []string{"DATENAME(MONTH, order_date)", "monthly_revenue"},
		},
		{
			name:     "duplicates by email",
			request:  "find duplicate email addresses",
			contains: []string{"GROUP BY email", "HAVING COUNT(*) > 1"},
		},
		{
			name:     "missing phone numbers",
			request:  "records with missing phone numbers",
			contains: []string{"WHEN phone IS NULL", "null_percentage"},
		},
		{
			name:     "month filter with status",
			request:  "delivered orders in march 2023",
			contains: []string{"March 2023", "MONTH(order_date) = 03", "order_status = 'DELIVERED'"},
		},
		{
			name:     "revenue summary",
			request:  "revenue summary",
			contains: []string{"unique_customers", "Breakdown by status"},
		},
		{
			name:     "record count",
			request:  "how many records are there",
			contains: []string{"COUNT(*)", "total_rows"},
		},
		{
			name:     "fallback select",
			request:  "just some orders",
			contains: []string{"SELECT TOP 100", "ORDER BY order_date DESC"},
		},
		{
			name:     "table from schema hint",
			request:  "just some rows",
			hint:     "Table: finance.fact_transactions",
			contains: []string{"FROM finance.fact_transactions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := templateSQL(tt.request, tt.hint)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}
