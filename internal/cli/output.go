package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/simp-lee/hrdesk/internal/table"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return withCode(exitFailure, fmt.Errorf("json encode: %w", err))
	}
	return nil
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// writeView prints a rendered page followed by a paging summary.
func writeView(w io.Writer, view table.View) error {
	headers := make([]string, len(view.Headers))
	for i, h := range view.Headers {
		headers[i] = strings.ToUpper(h.Label)
	}
	var rows [][]string
	for _, r := range view.Rows {
		if r.Placeholder {
			continue
		}
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = c.Text
		}
		rows = append(rows, cells)
	}
	if view.Empty {
		_, err := fmt.Fprintln(w, table.EmptyMessage)
		return err
	}
	if err := writeTable(w, headers, rows); err != nil {
		return err
	}
	p := view.Pagination
	_, err := fmt.Fprintf(w, "\npage %d of %d, %s records\n", p.Page, max(p.TotalPages, 1), humanize.Comma(p.Total))
	return err
}

type jsonView struct {
	Columns    []string            `json:"columns"`
	Rows       []map[string]string `json:"rows"`
	Page       int                 `json:"page"`
	Size       int                 `json:"size"`
	Total      int64               `json:"total"`
	TotalPages int                 `json:"totalPages"`
}

func viewJSON(view table.View) jsonView {
	out := jsonView{
		Columns:    make([]string, len(view.Headers)),
		Rows:       []map[string]string{},
		Page:       view.Pagination.Page,
		Size:       view.Pagination.Size,
		Total:      view.Pagination.Total,
		TotalPages: view.Pagination.TotalPages,
	}
	for i, h := range view.Headers {
		out.Columns[i] = h.Key
	}
	for _, r := range view.Rows {
		if r.Placeholder {
			continue
		}
		row := make(map[string]string, len(r.Cells)+1)
		row["id"] = fmt.Sprint(r.ID)
		for _, c := range r.Cells {
			row[c.Key] = c.Text
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
