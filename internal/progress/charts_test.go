package progress

import (
	"testing"

	"github.com/example/studysprint/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeChartsSeriesThreeDays(t *testing.T) {
	days := []models.GeneratedDay{
		newDay(1, "2024-01-01", newTask("t1", 60, false)),
		newDay(2, "2024-01-02", newTask("t2", 60, false)),
		newDay(3, "2024-01-03", newTask("t3", 60, false)),
	}
	log1 := newLog("2024-01-01", "t1")
	log1.HoursSpent = 1.5
	log2 := newLog("2024-01-02", "t2")
	log2.HoursSpent = 2
	logs := logsByDate(log1, log2)

	series := ComputeChartsSeries(days, logs, "2024-01-03")

	require.Len(t, series.Progress, 3)
	assert.Equal(t, 60, series.Progress[0].Cumulative)
	assert.Equal(t, 120, series.Progress[1].Cumulative)
	assert.Equal(t, 120, series.Progress[2].Cumulative) // day 3 not completed
	assert.Equal(t, 60, series.Progress[0].Target)
	assert.Equal(t, 120, series.Progress[1].Target)
	assert.Equal(t, 180, series.Progress[2].Target)

	require.Len(t, series.Burndown, 3)
	assert.Equal(t, 120, series.Burndown[0].Remaining)
	assert.Equal(t, 60, series.Burndown[1].Remaining)
	assert.Equal(t, 60, series.Burndown[2].Remaining)
	assert.Equal(t, 120, series.Burndown[0].Ideal)
	assert.Equal(t, 60, series.Burndown[1].Ideal)
	assert.Equal(t, 0, series.Burndown[2].Ideal)

	require.Len(t, series.Daily, 3)
	assert.Equal(t, 60, series.Daily[0].Planned)
	assert.Equal(t, 60, series.Daily[0].Completed)
	assert.Equal(t, 1.5, series.Daily[0].HoursSpent)
	assert.Equal(t, 0, series.Daily[2].Completed)
	assert.Equal(t, 0.0, series.Daily[2].HoursSpent)
}

func TestComputeChartsSeriesEmpty(t *testing.T) {
	series := ComputeChartsSeries(nil, nil, "2024-01-01")

	assert.Empty(t, series.Progress)
	assert.Empty(t, series.Burndown)
	assert.Empty(t, series.Daily)
}

func TestComputeChartsSeriesEqualLengths(t *testing.T) {
	days := []models.GeneratedDay{
		newDay(2, "2024-01-02", newTask("t2", 45, false)),
		newDay(1, "2024-01-01", newTask("t1", 30, true)),
		newDay(3, "2024-01-03"),
	}

	series := ComputeChartsSeries(days, nil, "2024-01-02")

	assert.Len(t, series.Progress, len(days))
	assert.Len(t, series.Burndown, len(days))
	assert.Len(t, series.Daily, len(days))
}

func TestComputeChartsSeriesSortsByDayIndex(t *testing.T) {
	days := []models.GeneratedDay{
		newDay(3, "2024-01-03"),
		newDay(1, "2024-01-01"),
		newDay(2, "2024-01-02"),
	}

	series := ComputeChartsSeries(days, nil, "2024-01-03")

	assert.Equal(t, []int{1, 2, 3}, []int{
		series.Progress[0].DayIndex,
		series.Progress[1].DayIndex,
		series.Progress[2].DayIndex,
	})
	assert.Equal(t, "Day 1", series.Progress[0].Label)
}

func TestComputeChartsSeriesIdealRoundsFresh(t *testing.T) {
	// 100 minutes over 3 days: idealPerDay = 33.33. Each target rounds
	// 33.33*(i+1) independently instead of accumulating a rounded step.
	days := []models.GeneratedDay{
		newDay(1, "2024-01-01", newTask("t1", 40, false)),
		newDay(2, "2024-01-02", newTask("t2", 30, false)),
		newDay(3, "2024-01-03", newTask("t3", 30, false)),
	}

	series := ComputeChartsSeries(days, nil, "2024-01-03")

	assert.Equal(t, 33, series.Progress[0].Target)
	assert.Equal(t, 67, series.Progress[1].Target)
	assert.Equal(t, 100, series.Progress[2].Target)
	assert.Equal(t, 67, series.Burndown[0].Ideal)
	assert.Equal(t, 33, series.Burndown[1].Ideal)
	assert.Equal(t, 0, series.Burndown[2].Ideal)
}
