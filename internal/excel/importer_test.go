package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 6, columnToIndex("G"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, -1, columnToIndex(""))
	assert.Equal(t, -1, columnToIndex("1"))
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("yes", false))
	assert.True(t, parseBool("TRUE", false))
	assert.True(t, parseBool("1", false))
	assert.False(t, parseBool("no", true))
	assert.False(t, parseBool("optional", true))
	assert.True(t, parseBool("", true))
	assert.False(t, parseBool("", false))
	assert.True(t, parseBool("garbage", true))
}

func TestParseRowComplete(t *testing.T) {
	config := DefaultImportConfig()
	row := []string{"3", "Databases", "SQL week", "Index deep dive", "45", "SQL/DB", "yes"}

	parsed, err := parseRow(row, config)

	require.NoError(t, err)
	assert.Equal(t, 3, parsed.DayIndex)
	assert.Equal(t, "Databases", parsed.DayTitle)
	assert.Equal(t, "SQL week", parsed.Theme)
	assert.Equal(t, "Index deep dive", parsed.Title)
	assert.Equal(t, 45, parsed.Minutes)
	assert.Equal(t, "SQL/DB", parsed.Category)
	assert.True(t, parsed.Required)
}

func TestParseRowDefaults(t *testing.T) {
	config := DefaultImportConfig()
	row := []string{"1", "", "", "Warmup"}

	parsed, err := parseRow(row, config)

	require.NoError(t, err)
	assert.Equal(t, 30, parsed.Minutes)
	assert.Equal(t, "Other", parsed.Category)
	assert.True(t, parsed.Required)
}

func TestParseRowUnknownCategoryFallsBack(t *testing.T) {
	config := DefaultImportConfig()
	row := []string{"1", "", "", "Warmup", "20", "Quantum", ""}

	parsed, err := parseRow(row, config)

	require.NoError(t, err)
	assert.Equal(t, "Other", parsed.Category)
}

func TestParseRowBlankIsSkipped(t *testing.T) {
	config := DefaultImportConfig()

	_, err := parseRow([]string{"", "", "", ""}, config)
	assert.Equal(t, errSkipRow, err)

	_, err = parseRow(nil, config)
	assert.Equal(t, errSkipRow, err)
}

func TestParseRowMissingFields(t *testing.T) {
	config := DefaultImportConfig()

	_, err := parseRow([]string{"", "", "", "Task without day"}, config)
	assert.Error(t, err)

	_, err = parseRow([]string{"2"}, config)
	assert.Error(t, err)

	_, err = parseRow([]string{"zero", "", "", "Task"}, config)
	assert.Error(t, err)
}
