package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/listener-text-service/internal/domain"
)

var fixedNow = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

var messageRowColumns = []string{
	"id", "phone", "text", "received_at", "is_read", "replied", "reply_text", "replied_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "mysql"), mock
}

func newTestMessageRepo(t *testing.T) (*MessageRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)
	repo.now = func() time.Time { return fixedNow }

	return repo, mock
}

// windowArg matches the cutoff argument of ListRecent: the message at included
// must satisfy received_at >= cutoff, the one at excluded must not.
type windowArg struct {
	included time.Time
	excluded time.Time
}

func (a windowArg) Match(v driver.Value) bool {
	cutoff, ok := v.(time.Time)
	if !ok {
		return false
	}
	return !a.included.Before(cutoff) && a.excluded.Before(cutoff)
}

func TestInsert_AssignsTimestampAndDefaults(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages (phone, text, received_at, is_read, replied)")).
		WithArgs("+19015550123", "hi", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(regexp.QuoteMeta("FROM messages WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(messageRowColumns).
			AddRow(int64(1), "+19015550123", "hi", fixedNow, false, false, nil, nil))

	msg, err := repo.Insert(context.Background(), "+19015550123", "hi")
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	if msg.ID != 1 || msg.Read || msg.Replied || msg.ReplyText != nil || msg.RepliedAt != nil {
		t.Fatalf("unexpected inserted message: %+v", msg)
	}
	if !msg.Timestamp.Equal(fixedNow) {
		t.Errorf("expected timestamp %v, got %v", fixedNow, msg.Timestamp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_StorageFailure(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages")).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Insert(context.Background(), "+19015550123", "hi")
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestListRecent_WindowBoundary(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	arg := windowArg{
		included: fixedNow.Add(-(11*time.Hour + 59*time.Minute)),
		excluded: fixedNow.Add(-(12*time.Hour + time.Minute)),
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE received_at >= ? ORDER BY received_at DESC, id DESC")).
		WithArgs(arg).
		WillReturnRows(sqlmock.NewRows(messageRowColumns).
			AddRow(int64(2), "+19015550188", "newer", fixedNow.Add(-time.Minute), false, false, nil, nil).
			AddRow(int64(1), "+19015550123", "older", arg.included, true, false, nil, nil))

	messages, err := repo.ListRecent(context.Background(), 12*time.Hour)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}

	if len(messages) != 2 || messages[0].ID != 2 || messages[1].ID != 1 {
		t.Fatalf("unexpected messages: %+v", messages)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListRecent_EmptyIsNotNil(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE received_at >= ?")).
		WillReturnRows(sqlmock.NewRows(messageRowColumns))

	messages, err := repo.ListRecent(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if messages == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestSetRead_NotFound(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE messages SET is_read = ? WHERE id = ?")).
		WithArgs(true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.SetRead(context.Background(), 5, true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetRead_ReturnsCommittedRow(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE messages SET is_read = ? WHERE id = ?")).
		WithArgs(true, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM messages WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(messageRowColumns).
			AddRow(int64(3), "+19015550123", "hi", fixedNow, true, false, nil, nil))
	mock.ExpectCommit()

	msg, err := repo.SetRead(context.Background(), 3, true)
	if err != nil {
		t.Fatalf("SetRead returned error: %v", err)
	}
	if !msg.Read {
		t.Fatalf("expected message to be read")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetReplied_SingleStatementSetsAllReplyFields(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	reply := "Thanks for listening!"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE messages SET replied = TRUE, reply_text = ?, replied_at = ?, is_read = TRUE WHERE id = ?",
	)).
		WithArgs(reply, fixedNow, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM messages WHERE id = ?")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(messageRowColumns).
			AddRow(int64(9), "+19015550123", "hi", fixedNow.Add(-time.Hour), true, true, reply, fixedNow))
	mock.ExpectCommit()

	msg, err := repo.SetReplied(context.Background(), 9, reply)
	if err != nil {
		t.Fatalf("SetReplied returned error: %v", err)
	}

	if !msg.Replied || msg.ReplyText == nil || msg.RepliedAt == nil || !msg.Read {
		t.Fatalf("expected replied, read message with reply fields, got %+v", msg)
	}
	if *msg.ReplyText != reply {
		t.Errorf("expected reply text %q, got %q", reply, *msg.ReplyText)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete_ReportsExistence(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM messages WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM messages WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := repo.Delete(context.Background(), 4)
	if err != nil || !existed {
		t.Fatalf("expected first delete to succeed, got existed=%v err=%v", existed, err)
	}

	existed, err = repo.Delete(context.Background(), 4)
	if err != nil || existed {
		t.Fatalf("expected second delete to report missing row, got existed=%v err=%v", existed, err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newTestMessageRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM messages WHERE id = ?")).
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows(messageRowColumns))

	_, err := repo.GetByID(context.Background(), 77)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
