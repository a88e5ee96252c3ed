package models

import "time"

// DailyLog is the user-reported tracking record for one calendar date.
// CompletedTaskIDs may reference tasks from any plan day, not only the
// day matching Date: the recovery flow completes overdue tasks from
// earlier days against today's log.
type DailyLog struct {
	ID                   string     `json:"id" db:"id"`
	UserID               string     `json:"user_id" db:"user_id"`
	Date                 string     `json:"date" db:"date"` // YYYY-MM-DD
	CompletedTaskIDs     []string   `json:"completed_task_ids" db:"-"`
	HoursSpent           float64    `json:"hours_spent" db:"hours_spent"`
	PipelineApplications int        `json:"pipeline_applications" db:"pipeline_applications"`
	PipelineMessages     int        `json:"pipeline_messages" db:"pipeline_messages"`
	ReflectionText       string     `json:"reflection_text" db:"reflection_text"`
	FinalizedAt          *time.Time `json:"finalized_at" db:"finalized_at"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// HasCompleted reports whether the given task id is in the completed set
func (l *DailyLog) HasCompleted(taskID string) bool {
	if l == nil {
		return false
	}
	for _, id := range l.CompletedTaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}
