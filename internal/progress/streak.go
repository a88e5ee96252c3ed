package progress

import (
	"sort"

	"github.com/example/studysprint/pkg/models"
)

// ComputeStreak counts consecutive days ending at today whose logs have
// at least minTasksPerDay completed tasks. The walk runs backward from
// today; the first calendar gap or under-threshold past day stops it.
// Today itself is exempt from the threshold: an empty log for today
// simply does not extend the streak, it does not break the run built by
// earlier days. This asymmetry is deliberate.
func ComputeStreak(days []models.GeneratedDay, logs map[string]models.DailyLog, minTasksPerDay int, today string) int {
	past := make([]models.GeneratedDay, 0, len(days))
	for _, day := range days {
		if CompareDates(day.Date, today) <= 0 {
			past = append(past, day)
		}
	}
	sort.Slice(past, func(i, j int) bool {
		return CompareDates(past[i].Date, past[j].Date) > 0
	})

	streak := 0
	expectedDate := today
	for _, day := range past {
		if day.Date != expectedDate && streak > 0 {
			break // gap in the run
		}

		completedCount := 0
		if log, ok := logs[day.Date]; ok {
			completedCount = len(log.CompletedTaskIDs)
		}

		if completedCount >= minTasksPerDay {
			streak++
			expectedDate = AddDays(day.Date, -1)
		} else if day.Date != today {
			break
		}
	}

	return streak
}
