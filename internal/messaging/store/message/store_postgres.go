package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"trustgate/internal/messaging/models"
	id "trustgate/pkg/domain"
	"trustgate/pkg/platform/sentinel"
	txcontext "trustgate/pkg/platform/tx"
)

// PostgresStore persists messages in PostgreSQL. Moderation is guarded the
// same way as document validation: the row is locked and the UPDATE only
// applies while the message is still pending.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const messageColumns = `id, sender_id, recipient_id, content, property_id, status, needs_moderation,
	original_content, moderation_reason, moderated_by, moderated_at, read_at, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, msg *models.Message) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO messages (`+messageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING
	`,
		uuid.UUID(msg.ID),
		uuid.UUID(msg.SenderID),
		uuid.UUID(msg.RecipientID),
		msg.Content,
		nullableProperty(msg.PropertyID),
		string(msg.Status),
		msg.NeedsModeration,
		msg.OriginalContent,
		msg.ModerationReason,
		nullableUser(msg.ModeratedBy),
		msg.ModeratedAt,
		msg.ReadAt,
		msg.CreatedAt,
		msg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, msgID id.MessageID) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	msg, err := scanMessage(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(msgID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return msg, nil
}

func (s *PostgresStore) ListPending(ctx context.Context, limit int) ([]*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE status = 'pending' ORDER BY created_at, id LIMIT $1`
	return s.query(ctx, "list pending messages", query, limit)
}

func (s *PostgresStore) ListInbox(ctx context.Context, recipient id.UserID, limit int) ([]*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
		WHERE recipient_id = $1 AND status IN ('approved', 'modified')
		ORDER BY created_at DESC, id DESC LIMIT $2`
	return s.query(ctx, "list inbox", query, uuid.UUID(recipient), limit)
}

// Execute locks the row, runs validate and mutate, and writes back only while
// the row is still pending. It joins a transaction already on the context or
// opens its own.
func (s *PostgresStore) Execute(ctx context.Context, msgID id.MessageID, validate func(*models.Message) error, mutate func(*models.Message)) (*models.Message, error) {
	if tx, ok := txcontext.From(ctx); ok {
		return s.executeInTx(ctx, tx, msgID, validate, mutate)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin message tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	msg, err := s.executeInTx(ctx, tx, msgID, validate, mutate)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit message tx: %w", err)
	}
	return msg, nil
}

func (s *PostgresStore) executeInTx(ctx context.Context, tx *sql.Tx, msgID id.MessageID, validate func(*models.Message) error, mutate func(*models.Message)) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1 FOR UPDATE`
	msg, err := scanMessage(tx.QueryRowContext(ctx, query, uuid.UUID(msgID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock message: %w", err)
	}

	if err := validate(msg); err != nil {
		return nil, err
	}
	mutate(msg)

	res, err := tx.ExecContext(ctx, `
		UPDATE messages
		SET content = $2, status = $3, original_content = $4, moderation_reason = $5,
		    moderated_by = $6, moderated_at = $7, updated_at = $8
		WHERE id = $1 AND status = 'pending'
	`,
		uuid.UUID(msg.ID),
		msg.Content,
		string(msg.Status),
		msg.OriginalContent,
		msg.ModerationReason,
		nullableUser(msg.ModeratedBy),
		msg.ModeratedAt,
		msg.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update message rows affected: %w", err)
	}
	if rows == 0 {
		return nil, sentinel.ErrInvalidState
	}
	return msg, nil
}

// MarkRead stamps read_at in one statement for every listed message that is
// delivered, unread and addressed to recipient.
func (s *PostgresStore) MarkRead(ctx context.Context, ids []id.MessageID, recipient id.UserID, now time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	raw := make([]string, len(ids))
	for i, msgID := range ids {
		raw[i] = msgID.String()
	}
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE messages
		SET read_at = $3, updated_at = $3
		WHERE id = ANY($1::uuid[])
		  AND recipient_id = $2
		  AND read_at IS NULL
		  AND status IN ('approved', 'modified')
	`, pq.Array(raw), uuid.UUID(recipient), now)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark messages read rows affected: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]*models.Message, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*models.Message, error) {
	var (
		msg         models.Message
		msgID       uuid.UUID
		sender      uuid.UUID
		recipient   uuid.UUID
		property    uuid.NullUUID
		status      string
		original    sql.NullString
		moderatedBy uuid.NullUUID
		moderatedAt sql.NullTime
		readAt      sql.NullTime
	)
	if err := row.Scan(&msgID, &sender, &recipient, &msg.Content, &property, &status, &msg.NeedsModeration,
		&original, &msg.ModerationReason, &moderatedBy, &moderatedAt, &readAt, &msg.CreatedAt, &msg.UpdatedAt); err != nil {
		return nil, err
	}
	msg.ID = id.MessageID(msgID)
	msg.SenderID = id.UserID(sender)
	msg.RecipientID = id.UserID(recipient)
	msg.Status = models.MessageStatus(status)
	if property.Valid {
		p := id.PropertyID(property.UUID)
		msg.PropertyID = &p
	}
	if original.Valid {
		o := original.String
		msg.OriginalContent = &o
	}
	if moderatedBy.Valid {
		by := id.UserID(moderatedBy.UUID)
		msg.ModeratedBy = &by
	}
	if moderatedAt.Valid {
		at := moderatedAt.Time
		msg.ModeratedAt = &at
	}
	if readAt.Valid {
		at := readAt.Time
		msg.ReadAt = &at
	}
	return &msg, nil
}

func nullableUser(u *id.UserID) any {
	if u == nil {
		return nil
	}
	return uuid.UUID(*u)
}

func nullableProperty(p *id.PropertyID) any {
	if p == nil {
		return nil
	}
	return uuid.UUID(*p)
}
