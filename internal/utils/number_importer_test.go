package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseNumberFile_MixedCSV(t *testing.T) {
	csvData := "5\n 5 \nabc\n-1\n10000000\n12\n"

	result, err := ParseNumberFile("numbers.csv", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []int{5, 12}, result.Numbers)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 1, result.DuplicateCount)
	assert.Equal(t, 3, result.InvalidCount)
	assert.Equal(t, 5, result.Min)
	assert.Equal(t, 12, result.Max)
}

func TestParseNumberFile_BlankLinesSkipped(t *testing.T) {
	result, err := ParseNumberFile("numbers.csv", strings.NewReader("7\n\n   \n9\n"))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []int{7, 9}, result.Numbers)
	assert.Zero(t, result.InvalidCount)
}

func TestParseNumberFile_FloatsRejected(t *testing.T) {
	result, err := ParseNumberFile("numbers.csv", strings.NewReader("3.5\n4\n"))
	require.NoError(t, err)

	assert.Equal(t, []int{4}, result.Numbers)
	assert.Equal(t, 1, result.InvalidCount)
}

func TestParseNumberFile_CeilingBoundary(t *testing.T) {
	result, err := ParseNumberFile("numbers.csv", strings.NewReader("9999999\n10000000\n"))
	require.NoError(t, err)

	assert.Equal(t, []int{MaxImportNumber}, result.Numbers)
	assert.Equal(t, 1, result.InvalidCount)
}

func TestParseNumberFile_AllInvalid(t *testing.T) {
	result, err := ParseNumberFile("numbers.csv", strings.NewReader("abc\nxyz\n-2\n"))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, result.Numbers)
	assert.Equal(t, 3, result.InvalidCount)
	assert.Contains(t, result.Errors, "no valid numbers found in file")
}

func TestParseNumberFile_EmptyFile(t *testing.T) {
	result, err := ParseNumberFile("numbers.csv", strings.NewReader(""))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
}

func TestParseNumberFile_InvalidSamplesCapped(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("bad\n")
	}
	sb.WriteString("1\n")

	result, err := ParseNumberFile("numbers.csv", strings.NewReader(sb.String()))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 10, result.InvalidCount)
	// 5 sampled rows plus the overflow summary
	assert.Contains(t, result.Errors, "... and 5 more invalid values")
}

func TestParseNumberFile_DuplicateSamplesCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("1\n")
	for i := 0; i < 6; i++ {
		sb.WriteString("1\n")
	}

	result, err := ParseNumberFile("numbers.csv", strings.NewReader(sb.String()))
	require.NoError(t, err)

	assert.Equal(t, 6, result.DuplicateCount)
	assert.Contains(t, result.Errors, "... and 3 more duplicates")
}

func TestParseNumberFile_SortedOutput(t *testing.T) {
	result, err := ParseNumberFile("numbers.csv", strings.NewReader("30\n1\n200\n15\n"))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 15, 30, 200}, result.Numbers)
	assert.Equal(t, 1, result.Min)
	assert.Equal(t, 200, result.Max)
}

func TestParseNumberFile_CSVFirstFieldOnly(t *testing.T) {
	result, err := ParseNumberFile("numbers.csv", strings.NewReader("10,ignored,also ignored\n20,x\n"))
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20}, result.Numbers)
	assert.Zero(t, result.InvalidCount)
}

func TestParseNumberFile_BadWorkbook(t *testing.T) {
	_, err := ParseNumberFile("numbers.xlsx", strings.NewReader("this is not a zip archive"))
	assert.Error(t, err)
}

func TestParseNumberFile_MixedWorkbook(t *testing.T) {
	f := excelize.NewFile()
	for i, v := range []string{"5", " 5 ", "abc", "-1", "10000000", "12"} {
		require.NoError(t, f.SetCellValue("Sheet1", fmt.Sprintf("A%d", i+1), v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := ParseNumberFile("numbers.xlsx", buf)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []int{5, 12}, result.Numbers)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 1, result.DuplicateCount)
	assert.Equal(t, 3, result.InvalidCount)
}

func TestParseNumberFile_WorkbookFirstColumnOnly(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "8"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "999"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "3"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := ParseNumberFile("numbers.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 8}, result.Numbers)
	assert.Zero(t, result.InvalidCount)
}
