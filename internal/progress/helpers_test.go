package progress

import (
	"fmt"

	"github.com/example/studysprint/pkg/models"
)

// newTask builds a task with sensible defaults for engine tests
func newTask(id string, minutes int, required bool) models.Task {
	return models.Task{
		ID:               id,
		PlanDayID:        "day-1",
		Title:            fmt.Sprintf("Task %s", id),
		Category:         models.CategoryBackend,
		EstimatedMinutes: minutes,
		Required:         required,
	}
}

func newDay(dayIndex int, date string, tasks ...models.Task) models.GeneratedDay {
	return models.GeneratedDay{
		DayID:    fmt.Sprintf("day-%d", dayIndex),
		DayIndex: dayIndex,
		Date:     date,
		Title:    fmt.Sprintf("Day %d", dayIndex),
		Tasks:    tasks,
	}
}

func newLog(date string, completedTaskIDs ...string) models.DailyLog {
	return models.DailyLog{
		ID:               "log-" + date,
		UserID:           "local-user",
		Date:             date,
		CompletedTaskIDs: completedTaskIDs,
	}
}

func logsByDate(logs ...models.DailyLog) map[string]models.DailyLog {
	m := make(map[string]models.DailyLog, len(logs))
	for _, log := range logs {
		m[log.Date] = log
	}
	return m
}
