package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"trustgate/internal/verification/models"
	id "trustgate/pkg/domain"
	"trustgate/pkg/platform/sentinel"
	txcontext "trustgate/pkg/platform/tx"
)

// PostgresStore persists documents in PostgreSQL.
// This store is pure I/O; the decide-once rule lives in the model and is
// enforced here by row locking plus a status guard on the UPDATE.
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

const documentColumns = `id, owner_id, type, sub_type, status, rejection_reason, validated_by, validated_at, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO verification_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(doc.ID),
		uuid.UUID(doc.OwnerID),
		string(doc.Type),
		doc.SubType,
		string(doc.Status),
		doc.RejectionReason,
		nullableUser(doc.ValidatedBy),
		doc.ValidatedAt,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, docID id.DocumentID) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM verification_documents WHERE id = $1`
	doc, err := scanDocument(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(docID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM verification_documents WHERE owner_id = $1 ORDER BY created_at, id`
	return s.query(ctx, "list documents by owner", query, uuid.UUID(owner))
}

func (s *PostgresStore) ListPending(ctx context.Context, limit int) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM verification_documents WHERE status = 'pending' ORDER BY created_at, id LIMIT $1`
	return s.query(ctx, "list pending documents", query, limit)
}

func (s *PostgresStore) CountByTypeAndStatus(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT type, status, COUNT(*)
		FROM verification_documents
		GROUP BY type, status
	`)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	defer rows.Close()

	var out []models.StatusCount
	for rows.Next() {
		var (
			c            models.StatusCount
			docType, str string
		)
		if err := rows.Scan(&docType, &str, &c.Count); err != nil {
			return nil, fmt.Errorf("scan document count: %w", err)
		}
		c.Type = models.DocumentType(docType)
		c.Status = models.DocumentStatus(str)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Execute locks the row with SELECT ... FOR UPDATE, runs validate and mutate,
// and writes back only if the row is still pending. It joins a transaction
// already on the context or opens its own.
func (s *PostgresStore) Execute(ctx context.Context, docID id.DocumentID, validate func(*models.Document) error, mutate func(*models.Document)) (*models.Document, error) {
	if tx, ok := txcontext.From(ctx); ok {
		return s.executeInTx(ctx, tx, docID, validate, mutate)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin document tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	doc, err := s.executeInTx(ctx, tx, docID, validate, mutate)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit document tx: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) executeInTx(ctx context.Context, tx *sql.Tx, docID id.DocumentID, validate func(*models.Document) error, mutate func(*models.Document)) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM verification_documents WHERE id = $1 FOR UPDATE`
	doc, err := scanDocument(tx.QueryRowContext(ctx, query, uuid.UUID(docID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock document: %w", err)
	}

	if err := validate(doc); err != nil {
		return nil, err
	}
	mutate(doc)

	res, err := tx.ExecContext(ctx, `
		UPDATE verification_documents
		SET status = $2, rejection_reason = $3, validated_by = $4, validated_at = $5, updated_at = $6
		WHERE id = $1 AND status = 'pending'
	`,
		uuid.UUID(doc.ID),
		string(doc.Status),
		doc.RejectionReason,
		nullableUser(doc.ValidatedBy),
		doc.ValidatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update document rows affected: %w", err)
	}
	if rows == 0 {
		return nil, sentinel.ErrInvalidState
	}
	return doc, nil
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]*models.Document, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc         models.Document
		docID       uuid.UUID
		owner       uuid.UUID
		docType     string
		status      string
		validatedBy uuid.NullUUID
		validatedAt sql.NullTime
	)
	if err := row.Scan(&docID, &owner, &docType, &doc.SubType, &status, &doc.RejectionReason,
		&validatedBy, &validatedAt, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.ID = id.DocumentID(docID)
	doc.OwnerID = id.UserID(owner)
	doc.Type = models.DocumentType(docType)
	doc.Status = models.DocumentStatus(status)
	if validatedBy.Valid {
		by := id.UserID(validatedBy.UUID)
		doc.ValidatedBy = &by
	}
	if validatedAt.Valid {
		at := validatedAt.Time
		doc.ValidatedAt = &at
	}
	return &doc, nil
}

func nullableUser(u *id.UserID) any {
	if u == nil {
		return nil
	}
	return uuid.UUID(*u)
}
