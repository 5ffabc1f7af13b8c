package main

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ColumnStat mirrors the per-column summary the analyzer reports: counts and
// distinct values for every column, numeric aggregates where at least 80% of
// the values parse as numbers.
type ColumnStat struct {
	Column      string  `json:"column"`
	Count       int     `json:"count"`
	Uniq        int     `json:"uniq"`
	IsNumeric   bool    `json:"is_numeric"`
	Avg         float64 `json:"avg,omitempty"`
	Median      float64 `json:"median,omitempty"`
	Min         float64 `json:"min,omitempty"`
	Max         float64 `json:"max,omitempty"`
	Quantile001 float64 `json:"quantile_001,omitempty"`
	Quantile099 float64 `json:"quantile_099,omitempty"`
	IQR         float64 `json:"iqr,omitempty"`
}

// AnalyzeColumns computes a ColumnStat for every dataset column.
func AnalyzeColumns(d *Dataset) []ColumnStat {
	stats := make([]ColumnStat, 0, len(d.Columns))
	for col, name := range d.Columns {
		values := d.Values(col)
		stat := ColumnStat{
			Column: name,
			Count:  len(values),
			Uniq:   countUnique(values),
		}

		if isNumericData(values) {
			numbers := parseNumbers(values)
			if ns := AnalyzeNumbers(numbers); ns != nil {
				stat.IsNumeric = true
				stat.Avg = ns.Average
				stat.Median = ns.Median
				stat.Min = ns.Min
				stat.Max = ns.Max
				stat.Quantile001 = ns.Quantiles[0.01]
				stat.Quantile099 = ns.Quantiles[0.99]
				stat.IQR = ns.IQR
			}
		}
		stats = append(stats, stat)
	}
	return stats
}

func countUnique(values []string) int {
	seen := map[string]struct{}{}
	for _, v := range values {
		seen[strings.TrimSpace(v)] = struct{}{}
	}
	return len(seen)
}

func parseNumbers(values []string) []float64 {
	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		if num, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			numbers = append(numbers, num)
		}
	}
	return numbers
}

type NumberStats struct {
	Average   float64
	Median    float64
	Min       float64
	Max       float64
	Count     int
	Quantiles map[float64]float64
	IQR       float64
}

// calculateQuantile interpolates the p-quantile of a sorted slice.
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}

// AnalyzeNumbers computes the summary metrics for a series of numbers.
func AnalyzeNumbers(numbers []float64) *NumberStats {
	if len(numbers) == 0 {
		return nil
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	sum := 0.0
	for _, num := range numbers {
		sum += num
	}
	avg := sum / float64(len(numbers))

	var median float64
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	} else {
		median = sorted[len(sorted)/2]
	}

	quantiles := make(map[float64]float64)
	for _, p := range []float64{0.01, 0.25, 0.75, 0.99} {
		quantiles[p] = roundToTwo(calculateQuantile(sorted, p))
	}

	iqr := quantiles[0.75] - quantiles[0.25]

	return &NumberStats{
		Average:   roundToTwo(avg),
		Median:    roundToTwo(median),
		Min:       roundToTwo(sorted[0]),
		Max:       roundToTwo(sorted[len(sorted)-1]),
		Count:     len(numbers),
		Quantiles: quantiles,
		IQR:       roundToTwo(iqr),
	}
}

func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}
