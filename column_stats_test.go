package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeNumbers(t *testing.T) {
	stats := AnalyzeNumbers([]float64{2020, 2021, 2022, 2023})
	require.NotNil(t, stats)

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 2021.5, stats.Average)
	assert.Equal(t, 2021.5, stats.Median)
	assert.Equal(t, float64(2020), stats.Min)
	assert.Equal(t, float64(2023), stats.Max)
	assert.InDelta(t, 1.5, stats.IQR, 0.01)
}

func TestAnalyzeNumbersEmpty(t *testing.T) {
	assert.Nil(t, AnalyzeNumbers(nil))
}

func TestCalculateQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, float64(1), calculateQuantile(sorted, 0))
	assert.Equal(t, float64(3), calculateQuantile(sorted, 0.5))
	assert.Equal(t, float64(5), calculateQuantile(sorted, 1))
	assert.Equal(t, float64(2), calculateQuantile(sorted, 0.25))
	assert.Equal(t, float64(0), calculateQuantile(nil, 0.5))
}

func TestAnalyzeColumns(t *testing.T) {
	ds := testDataset()

	stats := AnalyzeColumns(ds)
	require.Len(t, stats, 4)

	byName := map[string]ColumnStat{}
	for _, s := range stats {
		byName[s.Column] = s
	}

	year := byName["year"]
	assert.True(t, year.IsNumeric)
	assert.Equal(t, 3, year.Count)
	assert.Equal(t, 3, year.Uniq)
	assert.Equal(t, float64(2020), year.Min)
	assert.Equal(t, float64(2022), year.Max)

	crimeType := byName["crime_type"]
	assert.False(t, crimeType.IsNumeric)
	assert.Equal(t, 2, crimeType.Uniq)
}

func TestGenerateStatsTable(t *testing.T) {
	ds := testDataset()

	out := GenerateStatsTable(AnalyzeColumns(ds))
	assert.NotEmpty(t, out)
	assert.True(t, strings.Contains(out, "crime_type"))
	assert.True(t, strings.Contains(out, "year"))
	assert.True(t, strings.Contains(out, "2020"))
}
