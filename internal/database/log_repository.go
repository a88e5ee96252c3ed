package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/studysprint/pkg/models"
	"github.com/google/uuid"
)

// LogRepository handles database operations for daily logs
type LogRepository struct{}

// NewLogRepository creates a new repository instance
func NewLogRepository() *LogRepository {
	return &LogRepository{}
}

const logColumns = `id, user_id, date, completed_task_ids, hours_spent,
	pipeline_applications, pipeline_messages, reflection_text,
	finalized_at, created_at, updated_at`

// logRow mirrors the daily_logs table with the completed set in JSON form
type logRow struct {
	models.DailyLog
	CompletedJSON string `db:"completed_task_ids"`
}

func (lr *logRow) toLog() (models.DailyLog, error) {
	log := lr.DailyLog
	log.CompletedTaskIDs = []string{}
	if lr.CompletedJSON != "" {
		if err := json.Unmarshal([]byte(lr.CompletedJSON), &log.CompletedTaskIDs); err != nil {
			return log, fmt.Errorf("failed to parse completed task ids: %v", err)
		}
	}
	return log, nil
}

func marshalCompleted(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completed task ids: %v", err)
	}
	return string(data), nil
}

// GetByDate returns the log for one date, nil when the user has not
// logged anything for it
func (r *LogRepository) GetByDate(ctx context.Context, userID, date string) (*models.DailyLog, error) {
	var row logRow
	query := rebind("SELECT " + logColumns + " FROM daily_logs WHERE user_id = ? AND date = ?")
	err := DB.GetContext(ctx, &row, query, userID, date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily log: %v", err)
	}
	log, err := row.toLog()
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetAll returns every log of a user ordered by date. from/to bound the
// range when non-empty.
func (r *LogRepository) GetAll(ctx context.Context, userID, from, to string) ([]models.DailyLog, error) {
	query := "SELECT " + logColumns + " FROM daily_logs WHERE user_id = ?"
	args := []interface{}{userID}
	if from != "" {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY date ASC"

	var rows []logRow
	if err := DB.SelectContext(ctx, &rows, rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get daily logs: %v", err)
	}

	logs := make([]models.DailyLog, 0, len(rows))
	for _, row := range rows {
		log, err := row.toLog()
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// MapByDate returns the user's full log history keyed by date — the
// snapshot shape the analytics engine consumes
func (r *LogRepository) MapByDate(ctx context.Context, userID string) (map[string]models.DailyLog, error) {
	logs, err := r.GetAll(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]models.DailyLog, len(logs))
	for _, log := range logs {
		byDate[log.Date] = log
	}
	return byDate, nil
}

// Upsert writes a log keyed on (user, date), creating it on first write
// for that day
func (r *LogRepository) Upsert(ctx context.Context, log *models.DailyLog) error {
	completedJSON, err := marshalCompleted(log.CompletedTaskIDs)
	if err != nil {
		return err
	}

	existing, err := r.GetByDate(ctx, log.UserID, log.Date)
	if err != nil {
		return err
	}

	if existing == nil {
		if log.ID == "" {
			log.ID = uuid.NewString()
		}
		query := rebind(`
			INSERT INTO daily_logs (
				id, user_id, date, completed_task_ids, hours_spent,
				pipeline_applications, pipeline_messages, reflection_text, finalized_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		_, err = DB.ExecContext(ctx, query,
			log.ID,
			log.UserID,
			log.Date,
			completedJSON,
			log.HoursSpent,
			log.PipelineApplications,
			log.PipelineMessages,
			log.ReflectionText,
			log.FinalizedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create daily log: %v", err)
		}
		return nil
	}

	log.ID = existing.ID
	query := rebind(`
		UPDATE daily_logs SET
			completed_task_ids = ?,
			hours_spent = ?,
			pipeline_applications = ?,
			pipeline_messages = ?,
			reflection_text = ?,
			finalized_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND date = ?
	`)
	_, err = DB.ExecContext(ctx, query,
		completedJSON,
		log.HoursSpent,
		log.PipelineApplications,
		log.PipelineMessages,
		log.ReflectionText,
		log.FinalizedAt,
		log.UserID,
		log.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to update daily log: %v", err)
	}
	return nil
}

// ToggleTask adds or removes a task id in the completed set of the log
// for the given date, creating the log when needed. The task may belong
// to any plan day: completing overdue work from past days is recorded
// against the date the work actually happened.
func (r *LogRepository) ToggleTask(ctx context.Context, userID, date, taskID string) (*models.DailyLog, error) {
	log, err := r.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = &models.DailyLog{
			UserID:           userID,
			Date:             date,
			CompletedTaskIDs: []string{},
		}
	}

	if log.HasCompleted(taskID) {
		kept := make([]string, 0, len(log.CompletedTaskIDs))
		for _, id := range log.CompletedTaskIDs {
			if id != taskID {
				kept = append(kept, id)
			}
		}
		log.CompletedTaskIDs = kept
	} else {
		log.CompletedTaskIDs = append(log.CompletedTaskIDs, taskID)
	}

	if err := r.Upsert(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// DeleteAllForUser removes every log of a user. Used by the data reset
// flow.
func (r *LogRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query := rebind("DELETE FROM daily_logs WHERE user_id = ?")
	_, err := DB.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete daily logs: %v", err)
	}
	return nil
}
