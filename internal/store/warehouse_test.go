package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableSchema(t *testing.T) {
	s := newTestStore(t)

	ts, err := s.GetTableSchema(t.Context(), "fact_orders")
	require.NoError(t, err)
	require.Len(t, ts.Columns, 5)
	assert.Equal(t, "order_id", ts.Columns[0].Name)
	assert.Equal(t, "order_status", ts.Columns[4].Name)
	require.NotNil(t, ts.Metadata)
	assert.Equal(t, int64(8420000), ts.Metadata.RowCount)

	// Case-insensitive lookup.
	ts, err = s.GetTableSchema(t.Context(), "FACT_ORDERS")
	require.NoError(t, err)
	assert.Len(t, ts.Columns, 5)

	_, err = s.GetTableSchema(t.Context(), "no_such_table")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListTables(t *testing.T) {
	s := newTestStore(t)

	all, err := s.ListTables(t.Context(), "")
	require.NoError(t, err)
	assert.Len(t, all, 7)

	sales, err := s.ListTables(t.Context(), "sales")
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, "dim_customer", sales[0].Name)
}

func TestFindTablesByColumn(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name           string
		column, schema string
		want           int
	}{
		{name: "exact name", column: "customer_id", want: 3},
		{name: "spaces and case normalize", column: "Customer ID", want: 3},
		{name: "narrowed by schema", column: "customer_id", schema: "finance", want: 1},
		{name: "no partial matching", column: "customer", want: 0},
		{name: "unknown column", column: "tax_rate", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := s.FindTablesByColumn(t.Context(), tt.column, tt.schema)
			require.NoError(t, err)
			assert.Len(t, matches, tt.want)
		})
	}
}

func TestPipelineStatus(t *testing.T) {
	s := newTestStore(t)

	report, err := s.PipelineStatus(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.Failed)
	// Most recent run first.
	assert.Equal(t, "PL_Finance_ETL", report.Runs[0].Name)

	finance, err := s.PipelineStatus(t.Context(), "finance")
	require.NoError(t, err)
	require.Equal(t, 1, finance.Total)
	assert.Equal(t, "FAILED", finance.Runs[0].Status)
	assert.Contains(t, finance.Runs[0].ErrorMessage, "timeout")
}

func TestQualityChecks(t *testing.T) {
	s := newTestStore(t)

	report, err := s.QualityChecks(t.Context(), "")
	require.NoError(t, err)
	assert.Len(t, report.Checks, 6)
	assert.Equal(t, 4, report.Summary["PASS"])
	assert.Equal(t, 1, report.Summary["WARN"])
	assert.Equal(t, 1, report.Summary["FAIL"])

	customer, err := s.QualityChecks(t.Context(), "dim_customer")
	require.NoError(t, err)
	assert.Len(t, customer.Checks, 2)
	assert.Equal(t, 1, customer.Summary["WARN"])
}
