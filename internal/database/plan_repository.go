package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/studysprint/pkg/models"
	"github.com/google/uuid"
)

// PlanRepository handles database operations for study plans
type PlanRepository struct{}

// NewPlanRepository creates a new repository instance
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{}
}

// GetByID returns a plan by id
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*models.Plan, error) {
	var plan models.Plan
	query := rebind("SELECT id, user_id, name, is_active, created_at, updated_at FROM plans WHERE id = ?")
	err := DB.GetContext(ctx, &plan, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %v", err)
	}
	return &plan, nil
}

// GetAll returns all plans of a user, newest first
func (r *PlanRepository) GetAll(ctx context.Context, userID string) ([]models.Plan, error) {
	var plans []models.Plan
	query := rebind("SELECT id, user_id, name, is_active, created_at, updated_at FROM plans WHERE user_id = ? ORDER BY created_at DESC")
	err := DB.SelectContext(ctx, &plans, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans: %v", err)
	}
	return plans, nil
}

// GetActive returns the user's active plan, nil when none is active
func (r *PlanRepository) GetActive(ctx context.Context, userID string) (*models.Plan, error) {
	var plan models.Plan
	query := rebind("SELECT id, user_id, name, is_active, created_at, updated_at FROM plans WHERE user_id = ? AND is_active = ? LIMIT 1")
	err := DB.GetContext(ctx, &plan, query, userID, true)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active plan: %v", err)
	}
	return &plan, nil
}

// Create inserts a new plan
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	query := rebind("INSERT INTO plans (id, user_id, name, is_active) VALUES (?, ?, ?, ?)")
	_, err := DB.ExecContext(ctx, query, plan.ID, plan.UserID, plan.Name, plan.IsActive)
	if err != nil {
		return fmt.Errorf("failed to create plan: %v", err)
	}
	return nil
}

// Rename changes a plan's name
func (r *PlanRepository) Rename(ctx context.Context, id, name string) error {
	query := rebind("UPDATE plans SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	_, err := DB.ExecContext(ctx, query, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename plan: %v", err)
	}
	return nil
}

// SetActive marks one plan active and deactivates the user's others
func (r *PlanRepository) SetActive(ctx context.Context, userID, planID string) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		rebind("UPDATE plans SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?"),
		false, userID,
	); err != nil {
		return fmt.Errorf("failed to deactivate plans: %v", err)
	}

	if _, err := tx.ExecContext(ctx,
		rebind("UPDATE plans SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?"),
		true, planID, userID,
	); err != nil {
		return fmt.Errorf("failed to activate plan: %v", err)
	}

	return tx.Commit()
}

// Delete removes a plan together with its days and tasks (cascade)
func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	query := rebind("DELETE FROM plans WHERE id = ?")
	_, err := DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %v", err)
	}
	return nil
}

// DeleteAllForUser removes every plan of a user. Used by the data reset
// flow.
func (r *PlanRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query := rebind("DELETE FROM plans WHERE user_id = ?")
	_, err := DB.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete plans: %v", err)
	}
	return nil
}
