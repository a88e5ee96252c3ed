package progress

import "github.com/example/studysprint/pkg/models"

// ComputeDayStatus assigns a status to one day relative to today.
// Precedence: future, today, then the three past-day states. Today is
// never retroactively marked done or behind; the task-level completion
// view handles that. For past days:
//
//   - done: the day has at least one required task and all of them are
//     completed
//   - partial: anything else with at least one completed task
//   - behind: no completed tasks at all
//
// A past day with zero required tasks therefore never resolves to done,
// only to partial or behind. log may be nil, which counts as an empty
// completed set.
func ComputeDayStatus(date string, tasks []models.Task, log *models.DailyLog, today string) models.DayStatus {
	if CompareDates(date, today) > 0 {
		return models.StatusFuture
	}
	if date == today {
		return models.StatusToday
	}

	var completedIDs []string
	if log != nil {
		completedIDs = log.CompletedTaskIDs
	}
	completed := idSet(completedIDs)

	requiredTasks := 0
	allRequiredDone := true
	anyDone := false
	for _, task := range tasks {
		if completed[task.ID] {
			anyDone = true
		}
		if task.Required {
			requiredTasks++
			if !completed[task.ID] {
				allRequiredDone = false
			}
		}
	}

	if allRequiredDone && requiredTasks > 0 {
		return models.StatusDone
	}
	if anyDone {
		return models.StatusPartial
	}
	return models.StatusBehind
}
