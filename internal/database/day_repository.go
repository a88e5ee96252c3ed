package database

import (
	"context"
	"fmt"

	"github.com/example/studysprint/pkg/models"
	"github.com/google/uuid"
)

// PlanDayRepository handles database operations for plan days
type PlanDayRepository struct{}

// NewPlanDayRepository creates a new repository instance
func NewPlanDayRepository() *PlanDayRepository {
	return &PlanDayRepository{}
}

// GetByID returns one plan day
func (r *PlanDayRepository) GetByID(ctx context.Context, id string) (*models.PlanDay, error) {
	var day models.PlanDay
	query := rebind("SELECT id, plan_id, day_index, title, theme, created_at, updated_at FROM plan_days WHERE id = ?")
	err := DB.GetContext(ctx, &day, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan day: %v", err)
	}
	return &day, nil
}

// GetByPlan returns a plan's days ordered by day index
func (r *PlanDayRepository) GetByPlan(ctx context.Context, planID string) ([]models.PlanDay, error) {
	var days []models.PlanDay
	query := rebind("SELECT id, plan_id, day_index, title, theme, created_at, updated_at FROM plan_days WHERE plan_id = ? ORDER BY day_index ASC")
	err := DB.SelectContext(ctx, &days, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan days: %v", err)
	}
	return days, nil
}

// Create inserts a new day
func (r *PlanDayRepository) Create(ctx context.Context, day *models.PlanDay) error {
	if day.ID == "" {
		day.ID = uuid.NewString()
	}
	query := rebind("INSERT INTO plan_days (id, plan_id, day_index, title, theme) VALUES (?, ?, ?, ?, ?)")
	_, err := DB.ExecContext(ctx, query, day.ID, day.PlanID, day.DayIndex, day.Title, day.Theme)
	if err != nil {
		return fmt.Errorf("failed to create plan day: %v", err)
	}
	return nil
}

// Update modifies a day's title and theme. DayIndex is immutable: the
// calendar mapping of the whole plan depends on it.
func (r *PlanDayRepository) Update(ctx context.Context, day *models.PlanDay) error {
	query := rebind("UPDATE plan_days SET title = ?, theme = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	_, err := DB.ExecContext(ctx, query, day.Title, day.Theme, day.ID)
	if err != nil {
		return fmt.Errorf("failed to update plan day: %v", err)
	}
	return nil
}

// Delete removes a day and its tasks (cascade)
func (r *PlanDayRepository) Delete(ctx context.Context, id string) error {
	query := rebind("DELETE FROM plan_days WHERE id = ?")
	_, err := DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan day: %v", err)
	}
	return nil
}

// NextDayIndex returns the day index a newly appended day should get
func (r *PlanDayRepository) NextDayIndex(ctx context.Context, planID string) (int, error) {
	var max int
	query := rebind("SELECT COALESCE(MAX(day_index), 0) FROM plan_days WHERE plan_id = ?")
	err := DB.QueryRowContext(ctx, query, planID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max day index: %v", err)
	}
	return max + 1, nil
}
