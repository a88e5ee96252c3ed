// Package planner assembles plan snapshots for the analytics engine:
// it resolves calendar dates for plan days, pairs them with the user's
// daily logs and derives the dashboard aggregates. Persistence access
// lives here so the engine itself stays pure.
package planner

import (
	"context"
	"fmt"

	"github.com/example/studysprint/internal/database"
	"github.com/example/studysprint/internal/progress"
	"github.com/example/studysprint/pkg/models"
)

// Service loads plan data and computes derived views
type Service struct {
	planRepo     *database.PlanRepository
	dayRepo      *database.PlanDayRepository
	taskRepo     *database.TaskRepository
	logRepo      *database.LogRepository
	settingsRepo *database.SettingsRepository
	userRepo     *database.UserRepository
}

// New creates a planner service
func New() *Service {
	return &Service{
		planRepo:     database.NewPlanRepository(),
		dayRepo:      database.NewPlanDayRepository(),
		taskRepo:     database.NewTaskRepository(),
		logRepo:      database.NewLogRepository(),
		settingsRepo: database.NewSettingsRepository(),
		userRepo:     database.NewUserRepository(),
	}
}

// BuildLogsMap indexes a log history by date
func BuildLogsMap(logs []models.DailyLog) map[string]models.DailyLog {
	byDate := make(map[string]models.DailyLog, len(logs))
	for _, log := range logs {
		byDate[log.Date] = log
	}
	return byDate
}

// GenerateDays resolves each plan day to its calendar date
// (startDate + dayIndex - 1) and computes status, progress and XP
// against the log of that date. Pure: all inputs are snapshots.
func GenerateDays(days []models.PlanDay, tasksByDay map[string][]models.Task, startDate string, logs map[string]models.DailyLog, today string) []models.GeneratedDay {
	generated := make([]models.GeneratedDay, 0, len(days))
	for _, day := range days {
		date := progress.AddDays(startDate, day.DayIndex-1)
		tasks := tasksByDay[day.ID]

		var log *models.DailyLog
		var completedIDs []string
		if l, ok := logs[date]; ok {
			log = &l
			completedIDs = l.CompletedTaskIDs
		}

		generated = append(generated, models.GeneratedDay{
			DayID:    day.ID,
			DayIndex: day.DayIndex,
			Date:     date,
			Title:    day.Title,
			Theme:    day.Theme,
			Tasks:    tasks,
			Status:   progress.ComputeDayStatus(date, tasks, log, today),
			Progress: progress.ComputeDayProgress(tasks, completedIDs),
			XP:       progress.ComputeDayXP(tasks, completedIDs),
		})
	}
	return generated
}

// Snapshot is the fully resolved view of the active plan
type Snapshot struct {
	Plan     *models.Plan
	Settings *models.Settings
	Days     []models.GeneratedDay
	Logs     map[string]models.DailyLog
	Today    string
}

// ErrNoActivePlan is returned when the user has no active plan to
// compute against
var ErrNoActivePlan = fmt.Errorf("no active plan")

// ActiveSnapshot loads the active plan with resolved days and the full
// log history
func (s *Service) ActiveSnapshot(ctx context.Context, userID string) (*Snapshot, error) {
	plan, err := s.planRepo.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoActivePlan
	}

	settings, err := s.settingsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	days, err := s.dayRepo.GetByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	tasksByDay, err := s.taskRepo.GetByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.MapByDate(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := progress.Today(settings.Timezone)

	return &Snapshot{
		Plan:     plan,
		Settings: settings,
		Days:     GenerateDays(days, tasksByDay, settings.StartDate, logs, today),
		Logs:     logs,
		Today:    today,
	}, nil
}

// Dashboard aggregates everything the overview surface shows
type Dashboard struct {
	Snapshot     *Snapshot
	Streak       int
	TotalXP      int
	Behind       models.BehindStatus
	RecoveryPlan []models.PendingTask
	Charts       models.ChartsSeries
	TodayDay     *models.GeneratedDay
	DoneDays     int
}

// BuildDashboard derives the dashboard aggregates from a snapshot
func BuildDashboard(snap *Snapshot) *Dashboard {
	behind := progress.ComputeBehindStatus(snap.Days, snap.Logs, snap.Today)

	var recovery []models.PendingTask
	if behind.IsBehind {
		recovery = progress.GenerateRecoveryPlan(behind)
	}

	dash := &Dashboard{
		Snapshot: snap,
		Streak:   progress.ComputeStreak(snap.Days, snap.Logs, snap.Settings.StreakRuleMinTasks, snap.Today),
		TotalXP:  progress.ComputeTotalXP(snap.Days, snap.Logs),
		Behind:   behind,
		RecoveryPlan: recovery,
		Charts:   progress.ComputeChartsSeries(snap.Days, snap.Logs, snap.Today),
	}

	for i := range snap.Days {
		if snap.Days[i].Date == snap.Today {
			dash.TodayDay = &snap.Days[i]
		}
		if snap.Days[i].Status == models.StatusDone {
			dash.DoneDays++
		}
	}

	return dash
}

// Dashboard loads the active plan and derives the dashboard in one call
func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	snap, err := s.ActiveSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(snap), nil
}

// FindTask locates a task and its day inside a snapshot
func (snap *Snapshot) FindTask(taskID string) (*models.Task, *models.GeneratedDay) {
	for i := range snap.Days {
		for j := range snap.Days[i].Tasks {
			if snap.Days[i].Tasks[j].ID == taskID {
				return &snap.Days[i].Tasks[j], &snap.Days[i]
			}
		}
	}
	return nil, nil
}

// DayByDate returns the generated day for a calendar date, nil when the
// date falls outside the plan
func (snap *Snapshot) DayByDate(date string) *models.GeneratedDay {
	for i := range snap.Days {
		if snap.Days[i].Date == date {
			return &snap.Days[i]
		}
	}
	return nil
}
