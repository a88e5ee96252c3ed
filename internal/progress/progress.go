package progress

import (
	"math"

	"github.com/example/studysprint/pkg/models"
)

// idSet builds a membership set from a list of task ids
func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// ComputeDayProgress summarizes one day's task list against a completed
// task id set. Ids that do not match any task are ignored: logs may
// reference tasks from other days through the recovery flow. An empty
// task list yields an all-zero result.
func ComputeDayProgress(tasks []models.Task, completedTaskIDs []string) models.DayProgress {
	completed := idSet(completedTaskIDs)

	var p models.DayProgress
	for _, task := range tasks {
		p.TotalTasks++
		p.MinutesPlanned += task.EstimatedMinutes
		if task.Required {
			p.RequiredTasks++
		}
		if completed[task.ID] {
			p.CompletedTasks++
			p.MinutesDone += task.EstimatedMinutes
			if task.Required {
				p.CompletedRequiredTasks++
			}
		}
	}

	if p.MinutesPlanned > 0 {
		p.Percent = int(math.Round(float64(p.MinutesDone) / float64(p.MinutesPlanned) * 100))
	}

	return p
}
