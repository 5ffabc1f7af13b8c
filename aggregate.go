package main

import (
	"sort"
	"strconv"
	"strings"
)

// unknownLabel stands in for empty cells when grouping.
const unknownLabel = "Unknown"

type BreakdownEntry struct {
	Label string
	Count int
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CountBy groups the rows of one column by value and returns the counts
// sorted by descending count, label ascending on ties. Empty cells group
// under Unknown.
func (d *Dataset) CountBy(col int) []BreakdownEntry {
	counts := map[string]int{}
	for _, row := range d.Rows {
		value := strings.TrimSpace(row[col])
		if value == "" {
			value = unknownLabel
		}
		counts[value]++
	}

	entries := make([]BreakdownEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, BreakdownEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// CountByYear groups rows by the integer value of the year column, sorted
// chronologically. Rows whose year does not parse are left out of the
// breakdown (the caller still reports them in the total).
func (d *Dataset) CountByYear(col int) []YearCount {
	counts := map[int]int{}
	for _, row := range d.Rows {
		value := strings.TrimSpace(row[col])
		year, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		counts[int(year)]++
	}

	entries := make([]YearCount, 0, len(counts))
	for year, count := range counts {
		entries = append(entries, YearCount{Year: year, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Year < entries[j].Year })
	return entries
}

type SummaryItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Summarize produces the legacy label/value list for the requested grouping.
// Unknown groupings yield an empty list.
func (d *Dataset) Summarize(groupBy string) []SummaryItem {
	items := []SummaryItem{}
	switch groupBy {
	case "type", "crime_type":
		col := d.CrimeTypeColumn()
		if col < 0 {
			return items
		}
		for _, e := range d.CountBy(col) {
			items = append(items, SummaryItem{Label: e.Label, Value: e.Count})
		}
	case "year":
		col := d.YearColumn()
		if col < 0 {
			return items
		}
		for _, e := range d.CountByYear(col) {
			items = append(items, SummaryItem{Label: strconv.Itoa(e.Year), Value: e.Count})
		}
	case "location", "place":
		col := d.LocationColumn()
		if col < 0 {
			return items
		}
		for _, e := range d.CountBy(col) {
			items = append(items, SummaryItem{Label: e.Label, Value: e.Count})
		}
	}
	return items
}
