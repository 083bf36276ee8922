package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxImportNumber is the ceiling for imported raffle numbers.
const MaxImportNumber = 9_999_999

const (
	maxInvalidSamples   = 5
	maxDuplicateSamples = 3
)

// ParseResult is the outcome of importing a number file. Success is false
// only when zero valid numbers remain after filtering; a file full of junk
// produces a readable error list, never a panic.
type ParseResult struct {
	Success        bool     `json:"success"`
	Numbers        []int    `json:"numbers"`
	Count          int      `json:"count"`
	DuplicateCount int      `json:"duplicateCount"`
	InvalidCount   int      `json:"invalidCount"`
	Min            int      `json:"min"`
	Max            int      `json:"max"`
	Errors         []string `json:"errors"`
}

// ParseNumberFile validates and normalizes an uploaded list of candidate
// numbers into a clean, deduplicated, sorted set. Files ending in .csv are
// read as comma-delimited text (first field of every line); everything else
// is treated as a spreadsheet workbook (first sheet, first column).
func ParseNumberFile(filename string, r io.Reader) (*ParseResult, error) {
	var values []string
	var err error

	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		values, err = readCSVColumn(r)
	} else {
		values, err = readWorkbookColumn(r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return validateNumbers(values), nil
}

// readCSVColumn reads the first field of every CSV record
func readCSVColumn(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var values []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > 0 {
			values = append(values, record[0])
		}
	}
	return values, nil
}

// readWorkbookColumn reads the first column of the first sheet
func readWorkbookColumn(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	var values []string
	for _, row := range rows {
		if len(row) > 0 {
			values = append(values, row[0])
		}
	}
	return values, nil
}

// validateNumbers is the shared validation core for both file formats
func validateNumbers(values []string) *ParseResult {
	result := &ParseResult{
		Numbers: []int{},
		Errors:  []string{},
	}

	seen := make(map[int]bool)
	invalidSamples := 0
	duplicateSamples := 0

	for i, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			// Non-numeric or non-integer both land here; a float like
			// "3.5" is not a raffle number.
			result.InvalidCount++
			if invalidSamples < maxInvalidSamples {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %q is not a valid whole number", i+1, value))
				invalidSamples++
			}
			continue
		}

		if n < 0 {
			result.InvalidCount++
			if invalidSamples < maxInvalidSamples {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %d is negative", i+1, n))
				invalidSamples++
			}
			continue
		}

		if n > MaxImportNumber {
			result.InvalidCount++
			if invalidSamples < maxInvalidSamples {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %d exceeds the maximum of %d", i+1, n, MaxImportNumber))
				invalidSamples++
			}
			continue
		}

		if seen[n] {
			result.DuplicateCount++
			if duplicateSamples < maxDuplicateSamples {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %d is duplicated in the file", i+1, n))
				duplicateSamples++
			}
			continue
		}

		seen[n] = true
		result.Numbers = append(result.Numbers, n)
	}

	if extra := result.InvalidCount - invalidSamples; extra > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("... and %d more invalid values", extra))
	}
	if extra := result.DuplicateCount - duplicateSamples; extra > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("... and %d more duplicates", extra))
	}

	sort.Ints(result.Numbers)
	result.Count = len(result.Numbers)

	if result.Count == 0 {
		result.Success = false
		result.Errors = append(result.Errors, "no valid numbers found in file")
		return result
	}

	result.Success = true
	result.Min = result.Numbers[0]
	result.Max = result.Numbers[result.Count-1]
	return result
}
