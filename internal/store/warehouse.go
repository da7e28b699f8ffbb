package store

import (
	"context"
	"fmt"
	"strings"
)

// TableInfo is catalog metadata for one warehouse table.
type TableInfo struct {
	Schema       string  `json:"table_schema"`
	Name         string  `json:"table_name"`
	Type         string  `json:"table_type"`
	RowCount     int64   `json:"row_count"`
	SizeMB       float64 `json:"size_mb"`
	OwnerTeam    string  `json:"owner_team"`
	CreatedDate  string  `json:"created_date"`
	LastModified string  `json:"last_modified"`
}

// ColumnInfo is one column in the warehouse catalog.
type ColumnInfo struct {
	Schema   string `json:"table_schema"`
	Table    string `json:"table_name"`
	Name     string `json:"column_name"`
	DataType string `json:"data_type"`
	Nullable string `json:"is_nullable"`
	Ordinal  int    `json:"ordinal_position"`
}

// TableSchema is a table's metadata with its column list.
type TableSchema struct {
	Table    string       `json:"table"`
	Metadata *TableInfo   `json:"metadata,omitempty"`
	Columns  []ColumnInfo `json:"columns"`
}

// PipelineRun is one execution of an ETL pipeline.
type PipelineRun struct {
	ID            int64  `json:"id"`
	Name          string `json:"pipeline_name"`
	Status        string `json:"status"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	RowsProcessed int64  `json:"rows_processed"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// PipelineReport summarizes recent pipeline runs.
type PipelineReport struct {
	Runs   []PipelineRun `json:"runs"`
	Failed int           `json:"failed_count"`
	Total  int           `json:"total"`
}

// QualityCheck is one data quality rule evaluation.
type QualityCheck struct {
	ID            int64  `json:"id"`
	Schema        string `json:"table_schema"`
	Table         string `json:"table_name"`
	Column        string `json:"column_name"`
	CheckType     string `json:"check_type"`
	CheckStatus   string `json:"check_status"`
	NullCount     int64  `json:"null_count"`
	DistinctCount int64  `json:"distinct_count"`
}

// QualityReport is the check list with a pass/warn/fail tally.
type QualityReport struct {
	Checks  []QualityCheck `json:"checks"`
	Summary map[string]int `json:"summary"`
}

// GetTableSchema returns a table's catalog metadata and ordered columns.
// Returns ErrNotFound when the table has no catalog entry.
func (s *Store) GetTableSchema(ctx context.Context, table string) (*TableSchema, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT table_schema, table_name, column_name, data_type, is_nullable, ordinal_position
		 FROM dw_columns WHERE LOWER(table_name)=? ORDER BY ordinal_position`,
		strings.ToLower(table))
	if err != nil {
		return nil, fmt.Errorf("table columns: %w", err)
	}
	defer rows.Close()

	ts := &TableSchema{Table: table}
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.Schema, &c.Table, &c.Name, &c.DataType, &c.Nullable, &c.Ordinal); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		ts.Columns = append(ts.Columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	metas, err := s.listTables(ctx, "", strings.ToLower(table))
	if err != nil {
		return nil, err
	}
	if len(metas) > 0 {
		ts.Metadata = &metas[0]
	}
	if ts.Metadata == nil && len(ts.Columns) == 0 {
		return nil, fmt.Errorf("table %q: %w", table, ErrNotFound)
	}
	return ts, nil
}

// ListTables lists the warehouse catalog, optionally narrowed to a schema
// name substring.
func (s *Store) ListTables(ctx context.Context, schema string) ([]TableInfo, error) {
	return s.listTables(ctx, schema, "")
}

func (s *Store) listTables(ctx context.Context, schema, table string) ([]TableInfo, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString(`SELECT table_schema, table_name, table_type, row_count, size_mb,
		owner_team, created_date, last_modified FROM dw_tables WHERE 1=1`)
	if schema != "" {
		sb.WriteString(" AND LOWER(table_schema) LIKE ?")
		params = append(params, "%"+strings.ToLower(schema)+"%")
	}
	if table != "" {
		sb.WriteString(" AND LOWER(table_name)=?")
		params = append(params, table)
	}
	sb.WriteString(" ORDER BY table_schema, table_name")

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.Schema, &t.Name, &t.Type, &t.RowCount, &t.SizeMB,
			&t.OwnerTeam, &t.CreatedDate, &t.LastModified); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// FindTablesByColumn locates catalog columns whose normalized name matches
// the search term. Normalization lowercases and strips underscores and
// spaces, so "Customer ID" matches customer_id.
func (s *Store) FindTablesByColumn(ctx context.Context, column, schema string) ([]ColumnInfo, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString(`SELECT table_schema, table_name, column_name, data_type, is_nullable, ordinal_position
		FROM dw_columns WHERE 1=1`)
	if schema != "" {
		sb.WriteString(" AND LOWER(table_schema)=?")
		params = append(params, strings.ToLower(schema))
	}
	sb.WriteString(" ORDER BY table_schema, table_name, ordinal_position")

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("find columns: %w", err)
	}
	defer rows.Close()

	target := normalizeIdent(column)
	var matches []ColumnInfo
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.Schema, &c.Table, &c.Name, &c.DataType, &c.Nullable, &c.Ordinal); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		if normalizeIdent(c.Name) == target {
			matches = append(matches, c)
		}
	}
	return matches, rows.Err()
}

func normalizeIdent(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "")
	return strings.ReplaceAll(name, " ", "")
}

// PipelineStatus reports recent ETL runs, optionally filtered by pipeline
// name substring, most recent first.
func (s *Store) PipelineStatus(ctx context.Context, pipeline string) (*PipelineReport, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString(`SELECT id, pipeline_name, status, start_time, end_time,
		rows_processed, COALESCE(error_message,'') FROM pipeline_runs`)
	if pipeline != "" {
		sb.WriteString(" WHERE LOWER(pipeline_name) LIKE ?")
		params = append(params, "%"+strings.ToLower(pipeline)+"%")
	}
	sb.WriteString(" ORDER BY start_time DESC")

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("pipeline runs: %w", err)
	}
	defer rows.Close()

	report := &PipelineReport{}
	for rows.Next() {
		var r PipelineRun
		if err := rows.Scan(&r.ID, &r.Name, &r.Status, &r.StartTime, &r.EndTime,
			&r.RowsProcessed, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan pipeline run: %w", err)
		}
		report.Runs = append(report.Runs, r)
		if r.Status == "FAILED" {
			report.Failed++
		}
	}
	report.Total = len(report.Runs)
	return report, rows.Err()
}

// QualityChecks reports data quality rule results, optionally narrowed to
// a table name substring, with a PASS/WARN/FAIL tally.
func (s *Store) QualityChecks(ctx context.Context, table string) (*QualityReport, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString(`SELECT id, table_schema, table_name, column_name, check_type,
		check_status, null_count, distinct_count FROM data_quality_checks`)
	if table != "" {
		sb.WriteString(" WHERE LOWER(table_name) LIKE ?")
		params = append(params, "%"+strings.ToLower(table)+"%")
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("quality checks: %w", err)
	}
	defer rows.Close()

	report := &QualityReport{Summary: map[string]int{"PASS": 0, "WARN": 0, "FAIL": 0}}
	for rows.Next() {
		var c QualityCheck
		if err := rows.Scan(&c.ID, &c.Schema, &c.Table, &c.Column, &c.CheckType,
			&c.CheckStatus, &c.NullCount, &c.DistinctCount); err != nil {
			return nil, fmt.Errorf("scan quality check: %w", err)
		}
		report.Checks = append(report.Checks, c)
		report.Summary[c.CheckStatus]++
	}
	return report, rows.Err()
}
