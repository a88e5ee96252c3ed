package progress

import (
	"testing"

	"github.com/example/studysprint/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeDayStatusFuture(t *testing.T) {
	tasks := []models.Task{newTask("t1", 30, true)}

	status := ComputeDayStatus("2024-01-05", tasks, nil, "2024-01-03")

	assert.Equal(t, models.StatusFuture, status)
}

func TestComputeDayStatusToday(t *testing.T) {
	tasks := []models.Task{newTask("t1", 30, true)}
	log := newLog("2024-01-03", "t1")

	// Today stays "today" whether or not everything is completed
	assert.Equal(t, models.StatusToday, ComputeDayStatus("2024-01-03", tasks, &log, "2024-01-03"))
	assert.Equal(t, models.StatusToday, ComputeDayStatus("2024-01-03", tasks, nil, "2024-01-03"))
}

func TestComputeDayStatusPastDone(t *testing.T) {
	tasks := []models.Task{newTask("t1", 30, true), newTask("t2", 30, false)}
	log := newLog("2024-01-01", "t1")

	// All required tasks done; the optional one being open does not matter
	assert.Equal(t, models.StatusDone, ComputeDayStatus("2024-01-01", tasks, &log, "2024-01-03"))
}

func TestComputeDayStatusPastPartial(t *testing.T) {
	tasks := []models.Task{newTask("t1", 30, true), newTask("t2", 30, false)}
	log := newLog("2024-01-01", "t2")

	assert.Equal(t, models.StatusPartial, ComputeDayStatus("2024-01-01", tasks, &log, "2024-01-03"))
}

func TestComputeDayStatusPastBehind(t *testing.T) {
	tasks := []models.Task{newTask("t1", 30, true)}

	assert.Equal(t, models.StatusBehind, ComputeDayStatus("2024-01-01", tasks, nil, "2024-01-03"))

	empty := newLog("2024-01-01")
	assert.Equal(t, models.StatusBehind, ComputeDayStatus("2024-01-01", tasks, &empty, "2024-01-03"))
}

func TestComputeDayStatusPastNoRequiredTasks(t *testing.T) {
	tasks := []models.Task{newTask("t1", 30, false), newTask("t2", 30, false)}

	// Without required tasks a past day can never be "done": completing
	// everything still only yields "partial", and an untouched day is
	// "behind".
	all := newLog("2024-01-01", "t1", "t2")
	assert.Equal(t, models.StatusPartial, ComputeDayStatus("2024-01-01", tasks, &all, "2024-01-03"))

	assert.Equal(t, models.StatusBehind, ComputeDayStatus("2024-01-01", tasks, nil, "2024-01-03"))
}

func TestComputeDayStatusCrossDayCompletion(t *testing.T) {
	tasks := []models.Task{newTask("t1", 30, true)}

	// A log may complete this day's task even though the log belongs to a
	// later date; the classifier only looks at the completed set it is given.
	log := newLog("2024-01-02", "t1", "task-from-another-day")
	assert.Equal(t, models.StatusDone, ComputeDayStatus("2024-01-01", tasks, &log, "2024-01-03"))
}
