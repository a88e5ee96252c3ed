package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studysprint/pkg/models"
)

// setupTestDB connects to a throwaway SQLite file for the duration of
// the test
func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATA_DIR", t.TempDir())
	require.NoError(t, Connect())
	t.Cleanup(func() {
		Close()
		DB = nil
	})
}

func TestEnsureLocalUserAndSettings(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	userRepo := NewUserRepository()
	require.NoError(t, userRepo.EnsureLocalUser(ctx, "2026-03-02"))
	// Повторный вызов не должен дублировать пользователя
	require.NoError(t, userRepo.EnsureLocalUser(ctx, "2026-04-01"))

	user, err := userRepo.GetByID(ctx, LocalUserID)
	require.NoError(t, err)
	assert.Equal(t, LocalUserID, user.ID)

	settings, err := NewSettingsRepository().GetByUser(ctx, LocalUserID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", settings.StartDate)
	assert.Equal(t, "09:00", settings.ReminderTime)
	assert.Equal(t, 1, settings.StreakRuleMinTasks)
}

func TestPlanDayTaskRoundTrip(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	userRepo := NewUserRepository()
	require.NoError(t, userRepo.EnsureLocalUser(ctx, "2026-03-02"))

	planRepo := NewPlanRepository()
	dayRepo := NewPlanDayRepository()
	taskRepo := NewTaskRepository()

	plan := &models.Plan{UserID: LocalUserID, Name: "Prep"}
	require.NoError(t, planRepo.Create(ctx, plan))
	require.NotEmpty(t, plan.ID)

	active, err := planRepo.GetActive(ctx, LocalUserID)
	require.NoError(t, err)
	assert.Nil(t, active)

	require.NoError(t, planRepo.SetActive(ctx, LocalUserID, plan.ID))
	active, err = planRepo.GetActive(ctx, LocalUserID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "Prep", active.Name)

	day := &models.PlanDay{PlanID: plan.ID, DayIndex: 1, Title: "Kickoff", Theme: "Basics"}
	require.NoError(t, dayRepo.Create(ctx, day))

	first := &models.Task{
		PlanDayID:        day.ID,
		Title:            "Read notes",
		Category:         models.CategoryBackend,
		EstimatedMinutes: 30,
		Required:         true,
		Tags:             []string{"reading", "warmup"},
	}
	second := &models.Task{
		PlanDayID:        day.ID,
		Title:            "Exercises",
		Category:         models.CategoryBackend,
		EstimatedMinutes: 45,
	}
	require.NoError(t, taskRepo.Create(ctx, first))
	require.NoError(t, taskRepo.Create(ctx, second))

	tasks, err := taskRepo.GetByDay(ctx, day.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	// Порядок добавления сохраняется через task_order
	assert.Equal(t, "Read notes", tasks[0].Title)
	assert.Equal(t, []string{"reading", "warmup"}, tasks[0].Tags)
	assert.True(t, tasks[0].Order < tasks[1].Order)

	byDay, err := taskRepo.GetByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, byDay[day.ID], 2)
}

func TestLogUpsertAndToggle(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewUserRepository().EnsureLocalUser(ctx, "2026-03-02"))
	logRepo := NewLogRepository()

	entry, err := logRepo.GetByDate(ctx, LocalUserID, "2026-03-02")
	require.NoError(t, err)
	assert.Nil(t, entry)

	// Toggle on a date without a log creates one
	created, err := logRepo.ToggleTask(ctx, LocalUserID, "2026-03-02", "t1")
	require.NoError(t, err)
	assert.True(t, created.HasCompleted("t1"))

	toggled, err := logRepo.ToggleTask(ctx, LocalUserID, "2026-03-02", "t1")
	require.NoError(t, err)
	assert.False(t, toggled.HasCompleted("t1"))

	toggled, err = logRepo.ToggleTask(ctx, LocalUserID, "2026-03-02", "t2")
	require.NoError(t, err)
	assert.True(t, toggled.HasCompleted("t2"))

	toggled.HoursSpent = 2.5
	toggled.PipelineApplications = 3
	toggled.ReflectionText = "solid day"
	require.NoError(t, logRepo.Upsert(ctx, toggled))

	entry, err = logRepo.GetByDate(ctx, LocalUserID, "2026-03-02")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 2.5, entry.HoursSpent)
	assert.Equal(t, 3, entry.PipelineApplications)
	assert.Equal(t, "solid day", entry.ReflectionText)
	assert.True(t, entry.HasCompleted("t2"))

	byDate, err := logRepo.MapByDate(ctx, LocalUserID)
	require.NoError(t, err)
	assert.Len(t, byDate, 1)
}
