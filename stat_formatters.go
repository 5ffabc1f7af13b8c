package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// GenerateStatsTable renders per-column statistics as a plain-text table for
// the format=table flavor of the stats endpoint.
func GenerateStatsTable(stats []ColumnStat) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Count", "Uniq", "Avg", "Min", "Max", "Median", "Q01", "Q99", "IQR"})

	for _, s := range stats {
		if !s.IsNumeric {
			t.AppendRow(table.Row{s.Column, s.Count, s.Uniq, "", "", "", "", "", "", ""})
			continue
		}
		t.AppendRow(table.Row{
			s.Column, s.Count, s.Uniq,
			formatFloat(s.Avg), formatFloat(s.Min), formatFloat(s.Max),
			formatFloat(s.Median), formatFloat(s.Quantile001), formatFloat(s.Quantile099),
			formatFloat(s.IQR),
		})
	}

	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
