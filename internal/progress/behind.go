package progress

import (
	"sort"

	"github.com/example/studysprint/pkg/models"
)

// ComputeBehindStatus scans every day strictly before today and collects
// its incomplete required tasks. Today and future days are never counted
// as behind. Days without a log are treated as having completed nothing.
// The pending list is ordered by day index, then by task order within
// the day.
func ComputeBehindStatus(days []models.GeneratedDay, logs map[string]models.DailyLog, today string) models.BehindStatus {
	var pending []models.PendingTask

	for _, day := range days {
		if CompareDates(day.Date, today) >= 0 {
			continue
		}

		var completed map[string]bool
		if log, ok := logs[day.Date]; ok {
			completed = idSet(log.CompletedTaskIDs)
		}

		for _, task := range day.Tasks {
			if !task.Required || completed[task.ID] {
				continue
			}
			pending = append(pending, models.PendingTask{
				DayIndex: day.DayIndex,
				Date:     day.Date,
				Task:     task,
			})
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].DayIndex != pending[j].DayIndex {
			return pending[i].DayIndex < pending[j].DayIndex
		}
		return pending[i].Task.Order < pending[j].Task.Order
	})

	return models.BehindStatus{
		IsBehind:             len(pending) > 0,
		PendingRequiredCount: len(pending),
		PendingList:          pending,
	}
}
