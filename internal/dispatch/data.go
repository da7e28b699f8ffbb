package dispatch

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/atriumhq/atrium/internal/store"
)

const sqlSystem = "You are a SQL expert. Generate ONLY clean T-SQL with inline comments. No explanation outside code."

func (d *Dispatcher) sqlGenerate(ctx context.Context, env *Envelope, query string, ext map[string]string) error {
	table := ext["table"]
	if table == "" {
		table = "fact_orders"
	}

	schemaHint := "Table: " + table
	if ts, err := d.store.GetTableSchema(ctx, table); err == nil {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Table: %s\nColumns:\n", table)
		for _, c := range ts.Columns {
			fmt.Fprintf(&sb, "  %s %s\n", c.Name, c.DataType)
		}
		schemaHint = sb.String()
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	prompt := fmt.Sprintf("Schema:\n%s\n\nGenerate SQL for: %s", schemaHint, query)
	code, err := d.gen.Complete(ctx, sqlSystem, prompt, nil)
	if err != nil || strings.TrimSpace(code) == "" {
		code = templateSQL(query, schemaHint)
	}

	env.Data = map[string]string{"sql": code}
	env.Answer = fmt.Sprintf("### Generated SQL\n\n```sql\n%s\n```", code)
	return nil
}

var quotedColumnRe = regexp.MustCompile(`"([^"]+)"`)

func (d *Dispatcher) columnFind(ctx context.Context, env *Envelope, query string, ext map[string]string) error {
	// A quoted name wins so searches like find "Lease Cost" keep their
	// spaces.
	var column string
	if m := quotedColumnRe.FindStringSubmatch(query); m != nil {
		column = m[1]
	} else if column = ext["column"]; column == "" {
		words := strings.Fields(query)
		if len(words) > 0 {
			column = strings.Trim(words[len(words)-1], `?.,`)
		}
	}
	column = strings.TrimSpace(column)

	matches, err := d.store.FindTablesByColumn(ctx, column, "")
	if err != nil {
		return err
	}
	env.Data = map[string]any{"column": column, "count": len(matches), "results": matches}

	if len(matches) == 0 {
		env.Answer = fmt.Sprintf("No tables found with a column matching **`%s`**.\n\n"+
			"Tip: column names match ignoring case, spaces and underscores.", column)
		return nil
	}

	var sb strings.Builder
	sb.WriteString("### Column Finder\n\n")
	fmt.Fprintf(&sb, "Found **%d occurrence(s)** of `%s`:\n\n", len(matches), column)
	for _, m := range matches {
		fmt.Fprintf(&sb, "- **`%s.%s`** has `%s` (%s)\n", m.Schema, m.Table, m.Name, m.DataType)
	}
	env.Answer = sb.String()
	return nil
}

func (d *Dispatcher) schemaExplore(ctx context.Context, env *Envelope, ext map[string]string) error {
	if table := ext["table"]; table != "" {
		ts, err := d.store.GetTableSchema(ctx, table)
		if errors.Is(err, store.ErrNotFound) {
			env.Answer = fmt.Sprintf("Table **`%s`** not found.", table)
			return nil
		}
		if err != nil {
			return err
		}
		env.Data = ts
		env.Answer = formatTableSchema(ts)
		return nil
	}

	tables, err := d.store.ListTables(ctx, "")
	if err != nil {
		return err
	}
	env.Data = map[string]any{"count": len(tables), "tables": tables}

	var sb strings.Builder
	fmt.Fprintf(&sb, "### All Tables (%d total)\n", len(tables))
	currentSchema := ""
	for _, t := range tables {
		if t.Schema != currentSchema {
			currentSchema = t.Schema
			fmt.Fprintf(&sb, "\n**Schema: %s**\n", t.Schema)
		}
		fmt.Fprintf(&sb, "- `%s` holds %d rows, %.1f MB\n", t.Name, t.RowCount, t.SizeMB)
	}
	env.Answer = sb.String()
	return nil
}

func (d *Dispatcher) pipeline(ctx context.Context, env *Envelope) error {
	report, err := d.store.PipelineStatus(ctx, "")
	if err != nil {
		return err
	}
	env.Data = report

	var sb strings.Builder
	sb.WriteString("### ETL Pipeline Status\n\n")
	for _, r := range report.Runs {
		fmt.Fprintf(&sb, "- **%s** finished %s\n", r.Name, r.Status)
		if r.ErrorMessage != "" {
			fmt.Fprintf(&sb, "  `%s`\n", r.ErrorMessage)
		}
	}
	if report.Failed > 0 {
		fmt.Fprintf(&sb, "\n%d of %d recent runs failed.\n", report.Failed, report.Total)
	}
	env.Answer = sb.String()
	return nil
}
