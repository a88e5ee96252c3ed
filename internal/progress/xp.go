package progress

import "github.com/example/studysprint/pkg/models"

// Experience point values
const (
	// XPPerTask is awarded for every completed task
	XPPerTask = 10
	// XPBonusRequired is added on top for completed required tasks
	XPBonusRequired = 5
	// XPBonusDayComplete is the flat bonus for finishing all of a day's
	// required tasks
	XPBonusDayComplete = 50
)

// ComputeDayXP scores one day: 10 XP per completed task, +5 for each
// completed required task, +50 once when the day has required tasks and
// all of them are completed. A day with zero required tasks never earns
// the completion bonus, no matter how many optional tasks are done.
func ComputeDayXP(tasks []models.Task, completedTaskIDs []string) int {
	completed := idSet(completedTaskIDs)

	xp := 0
	requiredTasks := 0
	completedRequired := 0
	for _, task := range tasks {
		if task.Required {
			requiredTasks++
		}
		if !completed[task.ID] {
			continue
		}
		xp += XPPerTask
		if task.Required {
			xp += XPBonusRequired
			completedRequired++
		}
	}

	if requiredTasks > 0 && completedRequired == requiredTasks {
		xp += XPBonusDayComplete
	}

	return xp
}

// ComputeTotalXP sums ComputeDayXP over every generated day, pairing
// each day with the log of its date (or an empty completion set when no
// log exists).
func ComputeTotalXP(days []models.GeneratedDay, logs map[string]models.DailyLog) int {
	total := 0
	for _, day := range days {
		var completedIDs []string
		if log, ok := logs[day.Date]; ok {
			completedIDs = log.CompletedTaskIDs
		}
		total += ComputeDayXP(day.Tasks, completedIDs)
	}
	return total
}
