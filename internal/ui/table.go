package ui

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mydehq/mediafilename/internal/types"
)

// Align of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable formats rows under headers with rounded borders. Short rows are
// padded.
func RenderTable(headers []string, rows [][]string, aligns []Align) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// ResultsTable lists renames in order. Paths are shown as given.
func ResultsTable(results []types.RenameResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.OriginalPath, r.NewFilename, r.Pass.String()})
	}
	return RenderTable([]string{"Original", "New name", "Pass"}, rows, nil)
}

// SkipsTable lists files that produced no rename.
func SkipsTable(skips []types.Skip) string {
	rows := make([][]string, 0, len(skips))
	for _, s := range skips {
		detail := ""
		if s.Err != nil {
			detail = s.Err.Error()
		}
		rows = append(rows, []string{s.Path, string(s.Reason), detail})
	}
	return RenderTable([]string{"Skipped", "Reason", "Detail"}, rows, nil)
}
