package progress

import (
	"sort"

	"github.com/example/studysprint/pkg/models"
)

// GenerateRecoveryPlan orders the behind-schedule backlog into an
// actionable worklist: required tasks first, then shortest estimate
// first to surface quick wins, oldest day first as the final tie-break.
// Every entry is already required by construction; the required-first
// comparison is kept for robustness should optional tasks ever land in
// the list. This is a pure reordering, not a scheduler: it ignores the
// available time budget and future days.
func GenerateRecoveryPlan(status models.BehindStatus) []models.PendingTask {
	plan := make([]models.PendingTask, len(status.PendingList))
	copy(plan, status.PendingList)

	sort.SliceStable(plan, func(i, j int) bool {
		if plan[i].Task.Required != plan[j].Task.Required {
			return plan[i].Task.Required
		}
		if plan[i].Task.EstimatedMinutes != plan[j].Task.EstimatedMinutes {
			return plan[i].Task.EstimatedMinutes < plan[j].Task.EstimatedMinutes
		}
		return plan[i].DayIndex < plan[j].DayIndex
	})

	return plan
}
