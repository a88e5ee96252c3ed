package models

import "time"

// Settings holds per-user configuration for the study plan
type Settings struct {
	ID                     string    `json:"id" db:"id"`
	UserID                 string    `json:"user_id" db:"user_id"`
	StartDate              string    `json:"start_date" db:"start_date"` // YYYY-MM-DD, day 1 of the active plan
	Timezone               string    `json:"timezone" db:"timezone"`
	ReminderTime           string    `json:"reminder_time" db:"reminder_time"` // HH:MM
	WeeklyGoalApplications int       `json:"weekly_goal_applications" db:"weekly_goal_applications"`
	WeeklyGoalMessages     int       `json:"weekly_goal_messages" db:"weekly_goal_messages"`
	StreakRuleMinTasks     int       `json:"streak_rule_min_tasks" db:"streak_rule_min_tasks"` // minimum completed tasks for a day to count toward the streak
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}

// User is an account. Authentication is currently a local stub, so every
// installation has exactly one user.
type User struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	TelegramID int64     `json:"telegram_id" db:"telegram_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
