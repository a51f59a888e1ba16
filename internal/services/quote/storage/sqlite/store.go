// Package sqlite provides a SQLite-backed quote storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
	"github.com/louisbranch/catering.space/internal/platform/grpc/pagination"
	sqlitemigrate "github.com/louisbranch/catering.space/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/catering.space/internal/services/quote/storage"
	"github.com/louisbranch/catering.space/internal/services/quote/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists quote revisions in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite quote store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	applied, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ".")
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	for _, name := range applied {
		log.Printf("quote store: applied migration %s", name)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendRevision stores rev as the next revision number of its event. The
// number is assigned inside the insert statement.
func (s *Store) AppendRevision(ctx context.Context, rev storage.Revision) (storage.Revision, error) {
	if err := ctx.Err(); err != nil {
		return storage.Revision{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Revision{}, fmt.Errorf("storage is not configured")
	}
	rev.ID = strings.TrimSpace(rev.ID)
	rev.EventID = strings.TrimSpace(rev.EventID)
	if rev.ID == "" {
		return storage.Revision{}, fmt.Errorf("revision id is required")
	}
	if rev.EventID == "" {
		return storage.Revision{}, fmt.Errorf("event id is required")
	}
	if len(rev.Quote.LineItems) == 0 {
		return storage.Revision{}, fmt.Errorf("quote has no line items")
	}
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = s.now()
	}
	rev.CreatedAt = rev.CreatedAt.UTC().Truncate(time.Millisecond)

	specJSON, err := json.Marshal(rev.Spec)
	if err != nil {
		return storage.Revision{}, fmt.Errorf("encode event spec: %w", err)
	}
	quoteJSON, err := json.Marshal(rev.Quote)
	if err != nil {
		return storage.Revision{}, fmt.Errorf("encode quote: %w", err)
	}

	err = s.sqlDB.QueryRowContext(
		ctx,
		`INSERT INTO quote_revisions (
		   id,
		   event_id,
		   revision,
		   guest_count,
		   final_price,
		   final_price_with_tax,
		   price_verified,
		   note,
		   spec_json,
		   quote_json,
		   created_at
		 )
		 SELECT ?, ?, COALESCE(MAX(revision), 0) + 1, ?, ?, ?, ?, ?, ?, ?, ?
		   FROM quote_revisions
		  WHERE event_id = ?
		 RETURNING revision`,
		rev.ID,
		rev.EventID,
		rev.Quote.GuestCount,
		rev.Quote.FinalPrice,
		rev.Quote.FinalPriceWithTax,
		rev.PriceVerified,
		strings.TrimSpace(rev.Note),
		string(specJSON),
		string(quoteJSON),
		toMillis(rev.CreatedAt),
		rev.EventID,
	).Scan(&rev.Number)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.Revision{}, storage.ErrAlreadyExists
		}
		return storage.Revision{}, fmt.Errorf("append quote revision: %w", err)
	}
	rev.Note = strings.TrimSpace(rev.Note)
	return rev, nil
}

const selectRevision = `SELECT id, event_id, revision, price_verified, note, spec_json, quote_json, created_at
   FROM quote_revisions`

// GetLatestRevision returns the highest-numbered revision of an event.
func (s *Store) GetLatestRevision(ctx context.Context, eventID string) (storage.Revision, error) {
	if err := ctx.Err(); err != nil {
		return storage.Revision{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Revision{}, fmt.Errorf("storage is not configured")
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return storage.Revision{}, fmt.Errorf("event id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		selectRevision+` WHERE event_id = ? ORDER BY revision DESC LIMIT 1`,
		eventID,
	)
	rev, err := scanRevision(row)
	if err != nil {
		return storage.Revision{}, fmt.Errorf("get latest quote revision: %w", err)
	}
	return rev, nil
}

// GetRevision returns one revision of an event by number.
func (s *Store) GetRevision(ctx context.Context, eventID string, number int) (storage.Revision, error) {
	if err := ctx.Err(); err != nil {
		return storage.Revision{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Revision{}, fmt.Errorf("storage is not configured")
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return storage.Revision{}, fmt.Errorf("event id is required")
	}
	if number <= 0 {
		return storage.Revision{}, fmt.Errorf("revision number must be greater than zero")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		selectRevision+` WHERE event_id = ? AND revision = ?`,
		eventID, number,
	)
	rev, err := scanRevision(row)
	if err != nil {
		return storage.Revision{}, fmt.Errorf("get quote revision: %w", err)
	}
	return rev, nil
}

// ListRevisions returns one page of an event's revisions, newest first.
// The page token carries the last revision number already returned.
func (s *Store) ListRevisions(ctx context.Context, eventID string, pageSize int, pageToken string) (storage.RevisionPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.RevisionPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RevisionPage{}, fmt.Errorf("storage is not configured")
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return storage.RevisionPage{}, fmt.Errorf("event id is required")
	}
	if pageSize <= 0 {
		return storage.RevisionPage{}, fmt.Errorf("page size must be greater than zero")
	}
	before, err := pagination.DecodeOffsetToken(strings.TrimSpace(pageToken))
	if err != nil {
		return storage.RevisionPage{}, apperrors.Wrap(apperrors.CodeInvalidPageToken, "decode revision page token", err)
	}

	var rows *sql.Rows
	if before == 0 {
		rows, err = s.sqlDB.QueryContext(ctx,
			selectRevision+` WHERE event_id = ? ORDER BY revision DESC LIMIT ?`,
			eventID, pageSize+1,
		)
	} else {
		rows, err = s.sqlDB.QueryContext(ctx,
			selectRevision+` WHERE event_id = ? AND revision < ? ORDER BY revision DESC LIMIT ?`,
			eventID, before, pageSize+1,
		)
	}
	if err != nil {
		return storage.RevisionPage{}, fmt.Errorf("list quote revisions: %w", err)
	}
	defer rows.Close()

	page := storage.RevisionPage{Revisions: make([]storage.Revision, 0, pageSize)}
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return storage.RevisionPage{}, fmt.Errorf("list quote revisions: %w", err)
		}
		page.Revisions = append(page.Revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return storage.RevisionPage{}, fmt.Errorf("list quote revisions: %w", err)
	}
	if len(page.Revisions) > pageSize {
		page.Revisions = page.Revisions[:pageSize]
		page.NextPageToken = pagination.EncodeOffsetToken(page.Revisions[pageSize-1].Number)
	}
	return page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(row rowScanner) (storage.Revision, error) {
	var (
		rev       storage.Revision
		specJSON  string
		quoteJSON string
		createdAt int64
	)
	err := row.Scan(
		&rev.ID,
		&rev.EventID,
		&rev.Number,
		&rev.PriceVerified,
		&rev.Note,
		&specJSON,
		&quoteJSON,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Revision{}, storage.ErrNotFound
		}
		return storage.Revision{}, err
	}
	if err := json.Unmarshal([]byte(specJSON), &rev.Spec); err != nil {
		return storage.Revision{}, fmt.Errorf("decode event spec of %s: %w", rev.ID, err)
	}
	if err := json.Unmarshal([]byte(quoteJSON), &rev.Quote); err != nil {
		return storage.Revision{}, fmt.Errorf("decode quote of %s: %w", rev.ID, err)
	}
	rev.CreatedAt = fromMillis(createdAt)
	return rev, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.QuoteStore = (*Store)(nil)
