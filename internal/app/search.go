package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/five82/stories/internal/catalog"
	"github.com/five82/stories/internal/persist"
	"github.com/five82/stories/internal/query"
)

// SearchOptions configure a headless search.
type SearchOptions struct {
	Options
	Term string
	JSON bool
}

// Search runs one fetch cycle for opts.Term and writes the result set to
// w, as a table or as a JSON array. The persisted search term is left
// untouched. A failed fetch is returned as an error.
func Search(ctx context.Context, opts SearchOptions, w io.Writer) error {
	rt, err := boot(opts.Options)
	if err != nil {
		return err
	}
	defer rt.close()

	term := strings.TrimSpace(opts.Term)
	if term == "" {
		term = rt.cfg.DefaultTerm
	}
	value, err := persist.NewValue(persist.NewMemoryStore(), persist.KeySearch, term)
	if err != nil {
		return err
	}
	ctrl := query.NewController(value, rt.endpoint)

	if err := rt.orch.Fetch(ctx, ctrl.Submit()); err != nil {
		return fmt.Errorf("search %q: %w", term, err)
	}
	records := rt.store.State().Data
	rt.logger.Debug("search finished", zap.String("term", term), zap.Int("records", len(records)))

	if opts.JSON {
		return writeJSON(w, records)
	}
	return writeTable(w, rt.schema, records)
}

func writeJSON(w io.Writer, records []catalog.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, schema catalog.Schema, records []catalog.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}

	headers := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		headers[i] = c.Title
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(schema.Columns))
		for j, c := range schema.Columns {
			row[j] = rec.Text(c.Field)
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
