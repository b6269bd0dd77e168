package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/listener-text-service/internal/domain"
)

const messageColumns = "id, phone, text, received_at, is_read, replied, reply_text, replied_at"

// MessageRepository handles database operations for messages.
//
// Each mutation is a single UPDATE statement, so a concurrent reader never sees
// replied without its reply_text and replied_at. Concurrent writers to the same
// row are last-write-wins.
type MessageRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db, now: time.Now}
}

// storageError tags err as a persistence failure while keeping the driver error in the chain.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", domain.ErrStorage, op, err)
}

// timestamp returns the repository clock in UTC at the column's microsecond precision.
func (r *MessageRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *MessageRepository) Insert(ctx context.Context, phone, text string) (*domain.Message, error) {
	query := `
		INSERT INTO messages (phone, text, received_at, is_read, replied)
		VALUES (?, ?, ?, FALSE, FALSE)
	`

	result, err := r.db.ExecContext(ctx, query, phone, text, r.timestamp())
	if err != nil {
		return nil, storageError("insert message", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storageError("get last insert id", err)
	}

	return r.GetByID(ctx, id)
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	return getMessage(ctx, r.db, id)
}

// ListRecent returns messages received within window of now, newest first.
func (r *MessageRepository) ListRecent(ctx context.Context, window time.Duration) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE received_at >= ?
		ORDER BY received_at DESC, id DESC
	`

	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, r.timestamp().Add(-window)); err != nil {
		return nil, storageError("list recent messages", err)
	}

	return messages, nil
}

// ListAll returns the full history, newest first.
func (r *MessageRepository) ListAll(ctx context.Context) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		ORDER BY received_at DESC, id DESC
	`

	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, storageError("list messages", err)
	}

	return messages, nil
}

// GetStats returns totals over the full history.
func (r *MessageRepository) GetStats(ctx context.Context) (*domain.MessageStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_read = FALSE THEN 1 ELSE 0 END), 0) AS unread,
			COALESCE(SUM(CASE WHEN replied = TRUE THEN 1 ELSE 0 END), 0) AS replied
		FROM messages
	`

	var stats domain.MessageStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, storageError("get stats", err)
	}

	return &stats, nil
}

func (r *MessageRepository) SetRead(ctx context.Context, id int64, read bool) (*domain.Message, error) {
	query := `UPDATE messages SET is_read = ? WHERE id = ?`

	return r.updateAndGet(ctx, id, "update read state", query, read, id)
}

// SetReplied records a delivered reply. The reply also marks the message read.
func (r *MessageRepository) SetReplied(ctx context.Context, id int64, replyText string) (*domain.Message, error) {
	query := `UPDATE messages SET replied = TRUE, reply_text = ?, replied_at = ?, is_read = TRUE WHERE id = ?`

	return r.updateAndGet(ctx, id, "record reply", query, replyText, r.timestamp(), id)
}

// Delete permanently removes a message and reports whether it existed.
func (r *MessageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, storageError("delete message", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, storageError("get affected rows", err)
	}

	return rows > 0, nil
}

// updateAndGet runs a single-row UPDATE and reads the row back in the same
// transaction, so the returned message is exactly the committed state.
func (r *MessageRepository) updateAndGet(
	ctx context.Context,
	id int64,
	op string,
	query string,
	args ...any,
) (*domain.Message, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError("begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, storageError("get affected rows", err)
	}

	if rows == 0 {
		return nil, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}

	message, err := getMessage(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("commit transaction", err)
	}

	return message, nil
}

func getMessage(ctx context.Context, q sqlx.QueryerContext, id int64) (*domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE id = ?
	`

	var message domain.Message
	if err := sqlx.GetContext(ctx, q, &message, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
		}
		return nil, storageError("get message", err)
	}

	return &message, nil
}
