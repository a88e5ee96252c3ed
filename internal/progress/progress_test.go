package progress

import (
	"testing"

	"github.com/example/studysprint/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeDayProgressEmpty(t *testing.T) {
	assert.Equal(t, models.DayProgress{}, ComputeDayProgress(nil, nil))
	assert.Equal(t, models.DayProgress{}, ComputeDayProgress([]models.Task{}, []string{"ghost"}))
}

func TestComputeDayProgressPartial(t *testing.T) {
	tasks := []models.Task{
		newTask("task-1", 30, true),
		newTask("task-2", 60, false),
		newTask("task-3", 30, true),
	}

	p := ComputeDayProgress(tasks, []string{"task-1", "task-2"})

	assert.Equal(t, 120, p.MinutesPlanned)
	assert.Equal(t, 90, p.MinutesDone)
	assert.Equal(t, 75, p.Percent)
	assert.Equal(t, 3, p.TotalTasks)
	assert.Equal(t, 2, p.CompletedTasks)
	assert.Equal(t, 2, p.RequiredTasks)
	assert.Equal(t, 1, p.CompletedRequiredTasks)
}

func TestComputeDayProgressFullCompletion(t *testing.T) {
	tasks := []models.Task{newTask("task-1", 30, false), newTask("task-2", 30, false)}

	p := ComputeDayProgress(tasks, []string{"task-1", "task-2"})

	assert.Equal(t, 100, p.Percent)
	assert.Equal(t, 2, p.CompletedTasks)
}

func TestComputeDayProgressIgnoresUnknownIDs(t *testing.T) {
	tasks := []models.Task{newTask("task-1", 60, false)}

	with := ComputeDayProgress(tasks, []string{"task-1", "unknown-task"})
	without := ComputeDayProgress(tasks, []string{"task-1"})

	assert.Equal(t, without, with)
	assert.Equal(t, 1, with.CompletedTasks)
	assert.Equal(t, 60, with.MinutesDone)
}

func TestComputeDayProgressPercentBounds(t *testing.T) {
	tasks := []models.Task{
		newTask("a", 7, false),
		newTask("b", 13, true),
		newTask("c", 29, false),
	}
	subsets := [][]string{nil, {"a"}, {"b"}, {"c"}, {"a", "b"}, {"a", "c"}, {"b", "c"}, {"a", "b", "c"}}

	for _, ids := range subsets {
		p := ComputeDayProgress(tasks, ids)
		assert.GreaterOrEqual(t, p.Percent, 0)
		assert.LessOrEqual(t, p.Percent, 100)
		if len(ids) == len(tasks) {
			assert.Equal(t, 100, p.Percent)
		} else {
			assert.Less(t, p.Percent, 100)
		}
	}
}

func TestComputeDayProgressRounding(t *testing.T) {
	tasks := []models.Task{newTask("a", 1, false), newTask("b", 2, false)}

	// 1/3 of the minutes done: 33.33 rounds to 33
	assert.Equal(t, 33, ComputeDayProgress(tasks, []string{"a"}).Percent)
	// 2/3 done: 66.67 rounds to 67
	assert.Equal(t, 67, ComputeDayProgress(tasks, []string{"b"}).Percent)
}
