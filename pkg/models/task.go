package models

import "time"

// TaskCategory classifies a task within the study plan
type TaskCategory string

const (
	CategoryFrontend     TaskCategory = "Frontend"
	CategoryBackend      TaskCategory = "Backend"
	CategorySQL          TaskCategory = "SQL/DB"
	CategoryCaching      TaskCategory = "Redis/Caching"
	CategorySystemDesign TaskCategory = "System Design"
	CategoryWriting      TaskCategory = "Writing"
	CategoryPipeline     TaskCategory = "Pipeline"
	CategoryReview       TaskCategory = "Review"
	CategoryOther        TaskCategory = "Other"
)

// AllCategories lists every valid task category
var AllCategories = []TaskCategory{
	CategoryFrontend,
	CategoryBackend,
	CategorySQL,
	CategoryCaching,
	CategorySystemDesign,
	CategoryWriting,
	CategoryPipeline,
	CategoryReview,
	CategoryOther,
}

// IsValidCategory reports whether the given string is a known category
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Task represents a unit of planned work belonging to one plan day
type Task struct {
	ID               string       `json:"id" db:"id"`
	PlanDayID        string       `json:"plan_day_id" db:"plan_day_id"`
	Title            string       `json:"title" db:"title"`
	Description      string       `json:"description" db:"description"`
	Category         TaskCategory `json:"category" db:"category"`
	EstimatedMinutes int          `json:"estimated_minutes" db:"estimated_minutes"` // Always > 0
	Required         bool         `json:"required" db:"required"`
	Tags             []string     `json:"tags" db:"-"` // Stored as a JSON array in the tags column
	Order            int          `json:"order" db:"task_order"` // 0-based position within the day
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}
