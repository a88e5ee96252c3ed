package models

import "time"

// Plan is a multi-day study schedule. At most one plan is active per user.
type Plan struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PlanDay is one unit of a plan. Its calendar date is not stored: it is
// resolved from Settings.StartDate and DayIndex when days are generated.
type PlanDay struct {
	ID        string    `json:"id" db:"id"`
	PlanID    string    `json:"plan_id" db:"plan_id"`
	DayIndex  int       `json:"day_index" db:"day_index"` // 1-based, strictly increasing
	Title     string    `json:"title" db:"title"`
	Theme     string    `json:"theme" db:"theme"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
