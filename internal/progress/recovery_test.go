package progress

import (
	"testing"

	"github.com/example/studysprint/pkg/models"
	"github.com/stretchr/testify/assert"
)

func pendingEntry(dayIndex int, date, taskID string, minutes int) models.PendingTask {
	task := newTask(taskID, minutes, true)
	return models.PendingTask{DayIndex: dayIndex, Date: date, Task: task}
}

func TestGenerateRecoveryPlanShortestFirst(t *testing.T) {
	status := models.BehindStatus{
		IsBehind:             true,
		PendingRequiredCount: 3,
		PendingList: []models.PendingTask{
			pendingEntry(1, "2024-01-01", "long", 90),
			pendingEntry(2, "2024-01-02", "short", 15),
			pendingEntry(3, "2024-01-03", "medium", 45),
		},
	}

	plan := GenerateRecoveryPlan(status)

	assert.Equal(t, "short", plan[0].Task.ID)
	assert.Equal(t, "medium", plan[1].Task.ID)
	assert.Equal(t, "long", plan[2].Task.ID)
}

func TestGenerateRecoveryPlanTieBreaksOnOldestDay(t *testing.T) {
	status := models.BehindStatus{
		IsBehind:             true,
		PendingRequiredCount: 2,
		PendingList: []models.PendingTask{
			pendingEntry(4, "2024-01-04", "newer", 30),
			pendingEntry(1, "2024-01-01", "older", 30),
		},
	}

	plan := GenerateRecoveryPlan(status)

	assert.Equal(t, "older", plan[0].Task.ID)
	assert.Equal(t, "newer", plan[1].Task.ID)
}

func TestGenerateRecoveryPlanDoesNotMutateInput(t *testing.T) {
	status := models.BehindStatus{
		IsBehind:             true,
		PendingRequiredCount: 2,
		PendingList: []models.PendingTask{
			pendingEntry(1, "2024-01-01", "long", 90),
			pendingEntry(2, "2024-01-02", "short", 15),
		},
	}

	_ = GenerateRecoveryPlan(status)

	assert.Equal(t, "long", status.PendingList[0].Task.ID)
}

func TestGenerateRecoveryPlanEmpty(t *testing.T) {
	assert.Empty(t, GenerateRecoveryPlan(models.BehindStatus{}))
}
