// csv_header_analyzer.go
package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type HeaderAnalysis struct {
	Headers        []string // normalized headers
	FirstRowIsData bool     // whether the first row holds data, not headers
	FirstDataRow   []string // the raw first row
}

// AnalyzeHeaders inspects the first CSV row and decides whether it is a header
// row. Header names are normalized (trimmed, lower-cased, specials replaced
// with underscores); a data-looking first row gets generated column names.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &HeaderAnalysis{
		Headers:        make([]string, len(firstRow)),
		FirstRowIsData: false,
		FirstDataRow:   firstRow,
	}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	// Majority vote: at least half of the fields must look like headers.
	if float64(headerLikeCount)/float64(len(firstRow)) >= 0.5 {
		result.FirstRowIsData = false
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

// isLikelyHeader reports whether the text looks like a column name rather than
// a data value.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}

	datePatterns := []string{
		`^\d{4}-\d{2}-\d{2}$`,
		`^\d{2}/\d{2}/\d{4}$`,
		`^\d{2}\.\d{2}\.\d{4}$`,
		`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}$`,
		`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}\.\d+$`,
	}

	for _, pattern := range datePatterns {
		if matched, _ := regexp.MatchString(pattern, text); matched {
			return false
		}
	}

	letters := 0
	digits := 0
	specials := 0

	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
		default:
			specials++
		}
	}

	totalChars := letters + digits + specials
	if totalChars == 0 {
		return false
	}

	// At least 30% letters means a name, not a value.
	return letters > 0 && float64(letters)/float64(totalChars) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders deduplicates header names by appending numeric suffixes.
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]int)
	result := make([]string, len(headers))

	for i, header := range headers {
		originalHeader := header
		counter := 1

		for {
			if count, exists := seen[header]; exists {
				header = fmt.Sprintf("%s_%d", originalHeader, counter)
				counter++
			} else {
				seen[header] = count + 1
				break
			}
		}

		result[i] = header
	}

	return result
}

// isNumericData reports whether most of the values parse as numbers.
func isNumericData(values []string) bool {
	if len(values) == 0 {
		return false
	}
	numericCount := 0
	for _, value := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			numericCount++
		}
	}
	return float64(numericCount)/float64(len(values)) >= 0.8
}

// cleanHeaderName trims and normalizes a header, falling back to a generated
// column name when nothing usable is left.
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return generateColumnName(index)
	}

	cleaned := replaceSpecialSymbols(header)

	if cleaned == "" {
		return generateColumnName(index)
	}
	if !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	return strings.ToLower(cleaned)
}

// replaceSpecialSymbols collapses runs of non-alphanumeric characters into a
// single underscore and trims underscores from both ends.
func replaceSpecialSymbols(input string) string {
	re := regexp.MustCompile("[^a-zA-Z0-9]+")
	processedString := re.ReplaceAllString(input, "_")

	processedString = strings.ReplaceAll(processedString, "__", "_")

	return strings.Trim(processedString, "_")
}
