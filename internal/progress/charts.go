package progress

import (
	"math"
	"sort"

	"github.com/example/studysprint/pkg/models"
)

// ComputeChartsSeries builds the three dashboard series across the whole
// plan: cumulative completed minutes against a linear target, remaining
// minutes against an ideal burndown, and per-day planned/completed
// minutes with hours spent. One point per day, ascending by day index.
// The ideal lines are rounded fresh from idealPerDay*(i+1) each
// iteration so rounding error does not accumulate. Empty input yields
// three empty series.
func ComputeChartsSeries(days []models.GeneratedDay, logs map[string]models.DailyLog, today string) models.ChartsSeries {
	sorted := make([]models.GeneratedDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DayIndex < sorted[j].DayIndex
	})

	totalMinutes := 0
	for _, day := range sorted {
		for _, task := range day.Tasks {
			totalMinutes += task.EstimatedMinutes
		}
	}
	idealPerDay := 0.0
	if len(sorted) > 0 {
		idealPerDay = float64(totalMinutes) / float64(len(sorted))
	}

	series := models.ChartsSeries{
		Progress: make([]models.ProgressChartPoint, 0, len(sorted)),
		Burndown: make([]models.BurndownChartPoint, 0, len(sorted)),
		Daily:    make([]models.DailyChartPoint, 0, len(sorted)),
	}

	cumulativeCompleted := 0
	remainingMinutes := totalMinutes
	for i, day := range sorted {
		var log *models.DailyLog
		if l, ok := logs[day.Date]; ok {
			log = &l
		}
		completed := map[string]bool{}
		hoursSpent := 0.0
		if log != nil {
			completed = idSet(log.CompletedTaskIDs)
			hoursSpent = log.HoursSpent
		}

		dayPlanned := 0
		dayCompleted := 0
		for _, task := range day.Tasks {
			dayPlanned += task.EstimatedMinutes
			if completed[task.ID] {
				dayCompleted += task.EstimatedMinutes
			}
		}

		cumulativeCompleted += dayCompleted
		remainingMinutes -= dayCompleted

		point := models.ChartPoint{
			Date:     day.Date,
			DayIndex: day.DayIndex,
			Label:    DayLabel(day.DayIndex),
		}

		series.Progress = append(series.Progress, models.ProgressChartPoint{
			ChartPoint: point,
			Cumulative: cumulativeCompleted,
			Target:     int(math.Round(idealPerDay * float64(i+1))),
		})
		series.Burndown = append(series.Burndown, models.BurndownChartPoint{
			ChartPoint: point,
			Remaining:  remainingMinutes,
			Ideal:      int(math.Round(float64(totalMinutes) - idealPerDay*float64(i+1))),
		})
		series.Daily = append(series.Daily, models.DailyChartPoint{
			ChartPoint: point,
			Planned:    dayPlanned,
			Completed:  dayCompleted,
			HoursSpent: hoursSpent,
		})
	}

	return series
}
