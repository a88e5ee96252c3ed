package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/studysprint/pkg/models"
)

// LocalUserID is the fixed account every installation runs under.
// Real authentication would replace this with the id extracted from a
// verified token; for now the whole app is single-user.
const LocalUserID = "local-user"

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// CurrentUser returns the identity requests run as. Stub: always the
// local user.
func (r *UserRepository) CurrentUser() string {
	return LocalUserID
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := rebind("SELECT id, name, telegram_id, created_at FROM users WHERE id = ?")
	err := DB.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %v", err)
	}
	return &user, nil
}

// EnsureLocalUser creates the local user and its default settings row on
// first start. Existing rows are left untouched.
func (r *UserRepository) EnsureLocalUser(ctx context.Context, startDate string) error {
	var existing string
	err := DB.QueryRowContext(ctx, rebind("SELECT id FROM users WHERE id = ?"), LocalUserID).Scan(&existing)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check local user: %v", err)
	}

	_, err = DB.ExecContext(ctx,
		rebind("INSERT INTO users (id, name) VALUES (?, ?)"),
		LocalUserID, "Local User",
	)
	if err != nil {
		return fmt.Errorf("failed to create local user: %v", err)
	}

	settingsRepo := NewSettingsRepository()
	_, err = settingsRepo.EnsureDefaults(ctx, LocalUserID, startDate)
	if err != nil {
		return fmt.Errorf("failed to create default settings: %v", err)
	}

	return nil
}

// SetTelegramID links a Telegram chat to the local user so reminders
// know where to go
func (r *UserRepository) SetTelegramID(ctx context.Context, userID string, telegramID int64) error {
	_, err := DB.ExecContext(ctx,
		rebind("UPDATE users SET telegram_id = ? WHERE id = ?"),
		telegramID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set telegram id: %v", err)
	}
	return nil
}

// GetTelegramID returns the linked Telegram chat id, zero when unlinked
func (r *UserRepository) GetTelegramID(ctx context.Context, userID string) (int64, error) {
	var telegramID int64
	err := DB.QueryRowContext(ctx,
		rebind("SELECT telegram_id FROM users WHERE id = ?"), userID,
	).Scan(&telegramID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get telegram id: %v", err)
	}
	return telegramID, nil
}
