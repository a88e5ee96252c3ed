package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-15", FormatDate(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-02-05", FormatDate(time.Date(2024, time.February, 5, 23, 59, 0, 0, time.UTC)))
}

func TestParseDate(t *testing.T) {
	d := ParseDate("2024-01-15")
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestDateRoundTrip(t *testing.T) {
	for _, date := range []string{"2024-01-01", "2024-02-29", "2024-12-31", "1999-06-15"} {
		assert.Equal(t, date, FormatDate(ParseDate(date)))
	}
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2024-01-06", AddDays("2024-01-01", 5))
	assert.Equal(t, "2024-02-01", AddDays("2024-01-31", 1))
	assert.Equal(t, "2025-01-01", AddDays("2024-12-31", 1))
	assert.Equal(t, "2024-02-29", AddDays("2024-02-28", 1)) // leap year
	assert.Equal(t, "2023-12-31", AddDays("2024-01-01", -1))
	assert.Equal(t, "2024-01-01", AddDays("2024-01-01", 0))
}

func TestAddDaysInverse(t *testing.T) {
	for _, n := range []int{1, 7, 30, 365, -12, 400} {
		assert.Equal(t, "2024-03-15", AddDays(AddDays("2024-03-15", n), -n), "n=%d", n)
	}
}

func TestCompareDates(t *testing.T) {
	assert.Negative(t, CompareDates("2024-01-01", "2024-01-02"))
	assert.Positive(t, CompareDates("2025-01-01", "2024-12-31"))
	assert.Zero(t, CompareDates("2024-06-15", "2024-06-15"))
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Day 3", DayLabel(3))
}
