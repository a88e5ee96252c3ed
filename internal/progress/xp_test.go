package progress

import (
	"testing"

	"github.com/example/studysprint/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeDayXPNothingCompleted(t *testing.T) {
	tasks := []models.Task{newTask("task-1", 30, false)}
	assert.Zero(t, ComputeDayXP(tasks, nil))
}

func TestComputeDayXPBasePerTask(t *testing.T) {
	tasks := []models.Task{newTask("task-1", 30, false), newTask("task-2", 30, false)}
	assert.Equal(t, 20, ComputeDayXP(tasks, []string{"task-1", "task-2"}))
}

func TestComputeDayXPRequiredBonusAndDayBonus(t *testing.T) {
	tasks := []models.Task{newTask("task-1", 30, true)}

	// 10 base + 5 required + 50 for finishing the only required task
	assert.Equal(t, 65, ComputeDayXP(tasks, []string{"task-1"}))
}

func TestComputeDayXPDayBonusIgnoresOptionalTasks(t *testing.T) {
	tasks := []models.Task{
		newTask("task-1", 30, true),
		newTask("task-2", 30, true),
		newTask("task-3", 30, false),
	}

	// 2*10 + 2*5 + 50; the open optional task does not block the bonus
	assert.Equal(t, 80, ComputeDayXP(tasks, []string{"task-1", "task-2"}))
}

func TestComputeDayXPNoBonusWhenRequiredOpen(t *testing.T) {
	tasks := []models.Task{newTask("task-1", 30, true), newTask("task-2", 30, true)}

	assert.Equal(t, 15, ComputeDayXP(tasks, []string{"task-1"}))
}

func TestComputeDayXPNoBonusWithoutRequiredTasks(t *testing.T) {
	tasks := []models.Task{newTask("task-1", 30, false), newTask("task-2", 30, false)}

	// All optional tasks done still earns only the base XP
	assert.Equal(t, 20, ComputeDayXP(tasks, []string{"task-1", "task-2"}))
}

func TestComputeDayXPIgnoresUnknownIDs(t *testing.T) {
	tasks := []models.Task{newTask("task-1", 30, false)}
	assert.Equal(t, 10, ComputeDayXP(tasks, []string{"task-1", "ghost"}))
}

func TestComputeTotalXP(t *testing.T) {
	days := []models.GeneratedDay{
		newDay(1, "2024-01-01", newTask("t1", 60, true)),
		newDay(2, "2024-01-02", newTask("t2", 60, false)),
		newDay(3, "2024-01-03", newTask("t3", 60, true)),
	}
	logs := logsByDate(
		newLog("2024-01-01", "t1"),
		newLog("2024-01-02", "t2"),
		// no log for day 3
	)

	// Day 1: 10+5+50, day 2: 10, day 3: 0
	assert.Equal(t, 75, ComputeTotalXP(days, logs))
}
