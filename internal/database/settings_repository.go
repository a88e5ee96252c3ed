package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/studysprint/pkg/models"
	"github.com/google/uuid"
)

// SettingsRepository handles database operations for user settings
type SettingsRepository struct{}

// NewSettingsRepository creates a new repository instance
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

const settingsColumns = `id, user_id, start_date, timezone, reminder_time,
	weekly_goal_applications, weekly_goal_messages, streak_rule_min_tasks,
	created_at, updated_at`

// GetByUser returns the settings row for a user
func (r *SettingsRepository) GetByUser(ctx context.Context, userID string) (*models.Settings, error) {
	var settings models.Settings
	query := rebind("SELECT " + settingsColumns + " FROM settings WHERE user_id = ?")
	err := DB.GetContext(ctx, &settings, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %v", err)
	}
	return &settings, nil
}

// EnsureDefaults returns existing settings or creates a default row
func (r *SettingsRepository) EnsureDefaults(ctx context.Context, userID, startDate string) (*models.Settings, error) {
	settings, err := r.GetByUser(ctx, userID)
	if err == nil {
		return settings, nil
	}

	created := &models.Settings{
		ID:                 uuid.NewString(),
		UserID:             userID,
		StartDate:          startDate,
		Timezone:           "UTC",
		ReminderTime:       "09:00",
		StreakRuleMinTasks: 1,
	}

	query := rebind(`
		INSERT INTO settings (
			id, user_id, start_date, timezone, reminder_time,
			weekly_goal_applications, weekly_goal_messages, streak_rule_min_tasks
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = DB.ExecContext(ctx, query,
		created.ID,
		created.UserID,
		created.StartDate,
		created.Timezone,
		created.ReminderTime,
		created.WeeklyGoalApplications,
		created.WeeklyGoalMessages,
		created.StreakRuleMinTasks,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings: %v", err)
	}

	return r.GetByUser(ctx, userID)
}

// Update modifies the settings row
func (r *SettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	query := rebind(`
		UPDATE settings SET
			start_date = ?,
			timezone = ?,
			reminder_time = ?,
			weekly_goal_applications = ?,
			weekly_goal_messages = ?,
			streak_rule_min_tasks = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`)
	result, err := DB.ExecContext(ctx, query,
		settings.StartDate,
		settings.Timezone,
		settings.ReminderTime,
		settings.WeeklyGoalApplications,
		settings.WeeklyGoalMessages,
		settings.StreakRuleMinTasks,
		settings.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %v", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ResetToDefaults restores timezone and reminder settings, keeping the
// start date
func (r *SettingsRepository) ResetToDefaults(ctx context.Context, userID string) error {
	query := rebind(`
		UPDATE settings SET
			timezone = 'UTC',
			reminder_time = '09:00',
			weekly_goal_applications = 0,
			weekly_goal_messages = 0,
			streak_rule_min_tasks = 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`)
	_, err := DB.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to reset settings: %v", err)
	}
	return nil
}
