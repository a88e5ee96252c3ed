package models

// DayStatus classifies a generated day relative to "today"
type DayStatus string

const (
	// StatusFuture - the day is after today
	StatusFuture DayStatus = "future"
	// StatusToday - the day is today
	StatusToday DayStatus = "today"
	// StatusDone - a past day whose required tasks are all completed
	StatusDone DayStatus = "done"
	// StatusPartial - a past day with some completed tasks
	StatusPartial DayStatus = "partial"
	// StatusBehind - a past day with no completed tasks
	StatusBehind DayStatus = "behind"
)

// GeneratedDay is a plan day with its calendar date resolved and status,
// progress and XP computed. It is derived on every read and never stored.
type GeneratedDay struct {
	DayID    string      `json:"day_id"`
	DayIndex int         `json:"day_index"`
	Date     string      `json:"date"` // YYYY-MM-DD = start date + day index - 1
	Title    string      `json:"title"`
	Theme    string      `json:"theme"`
	Tasks    []Task      `json:"tasks"`
	Status   DayStatus   `json:"status"`
	Progress DayProgress `json:"progress"`
	XP       int         `json:"xp"`
}

// DayProgress summarizes completion of one day's task list
type DayProgress struct {
	MinutesPlanned         int `json:"minutes_planned"`
	MinutesDone            int `json:"minutes_done"`
	Percent                int `json:"percent"` // 0-100, rounded
	TotalTasks             int `json:"total_tasks"`
	CompletedTasks         int `json:"completed_tasks"`
	RequiredTasks          int `json:"required_tasks"`
	CompletedRequiredTasks int `json:"completed_required_tasks"`
}

// PendingTask is one incomplete required task from a past day
type PendingTask struct {
	DayIndex int    `json:"day_index"`
	Date     string `json:"date"`
	Task     Task   `json:"task"`
}

// BehindStatus reports whether the user has fallen behind schedule
type BehindStatus struct {
	IsBehind             bool          `json:"is_behind"`
	PendingRequiredCount int           `json:"pending_required_count"`
	PendingList          []PendingTask `json:"pending_list"`
}

// ChartPoint carries the fields shared by all chart series
type ChartPoint struct {
	Date     string `json:"date"`
	DayIndex int    `json:"day_index"`
	Label    string `json:"label"` // "Day N"
}

// ProgressChartPoint is one point of the cumulative progress series
type ProgressChartPoint struct {
	ChartPoint
	Cumulative int `json:"cumulative"` // completed minutes up to and including this day
	Target     int `json:"target"`     // linear ideal reference
}

// BurndownChartPoint is one point of the remaining-work series
type BurndownChartPoint struct {
	ChartPoint
	Remaining int `json:"remaining"`
	Ideal     int `json:"ideal"`
}

// DailyChartPoint is one point of the planned-vs-completed series
type DailyChartPoint struct {
	ChartPoint
	Planned    int     `json:"planned"`
	Completed  int     `json:"completed"`
	HoursSpent float64 `json:"hours_spent"`
}

// ChartsSeries holds the three dashboard chart series. The slices are
// always of equal length, one element per generated day, ascending by
// day index.
type ChartsSeries struct {
	Progress []ProgressChartPoint `json:"progress"`
	Burndown []BurndownChartPoint `json:"burndown"`
	Daily    []DailyChartPoint    `json:"daily"`
}
