// Package sqlite provides the SQLite-backed feedback store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mohitvuyala/portfolio/backend/internal/model/feedback"
	"github.com/mohitvuyala/portfolio/backend/internal/storage/sqlite/migrations"
)

const selectColumns = `SELECT id, name, email, message, created_at FROM feedbacks`

// Newest first; id breaks ties between rows written in the same millisecond.
const orderNewestFirst = ` ORDER BY created_at DESC, id DESC`

// Store persists feedback records in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ feedback.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Text layouts left behind by the earlier server (SQLite CURRENT_TIMESTAMP
// and ISO timestamps with optional fractions).
var legacyTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// parseCreatedAt accepts every created_at representation the table can hold:
// integer millis, driver-parsed DATETIME values and legacy text.
func parseCreatedAt(value any) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, nil
	case int64:
		return fromMillis(v), nil
	case float64:
		return fromMillis(int64(v)), nil
	case time.Time:
		return v.UTC(), nil
	case []byte:
		return parseCreatedAtText(string(v))
	case string:
		return parseCreatedAtText(v)
	default:
		return time.Time{}, fmt.Errorf("unsupported created_at type %T", value)
	}
}

func parseCreatedAtText(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return fromMillis(millis), nil
	}
	for _, layout := range legacyTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized created_at %q", raw)
}

// Open opens (or creates) the database at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
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

// Insert appends one record, assigning its id and creation time.
func (s *Store) Insert(ctx context.Context, sub feedback.Submission) (feedback.Record, error) {
	if err := ctx.Err(); err != nil {
		return feedback.Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return feedback.Record{}, fmt.Errorf("storage is not configured")
	}

	createdAt := s.now().UTC().Truncate(time.Millisecond)
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO feedbacks (name, email, message, created_at) VALUES (?, ?, ?, ?)`,
		sub.Name, sub.Email, sub.Message, toMillis(createdAt),
	)
	if err != nil {
		return feedback.Record{}, fmt.Errorf("insert feedback: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return feedback.Record{}, fmt.Errorf("read feedback id: %w", err)
	}

	return feedback.Record{
		ID:        id,
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		CreatedAt: createdAt,
	}, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var total int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedbacks`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count feedbacks: %w", err)
	}
	return total, nil
}

// List returns one window of records, newest first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]feedback.Record, error) {
	cursor, err := s.Scan(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	records := make([]feedback.Record, 0, max(limit, 0))
	for cursor.Next() {
		record, err := cursor.Record()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedbacks: %w", err)
	}
	return records, nil
}

// Scan opens a cursor over records, newest first. A negative limit returns
// every row from offset on.
func (s *Store) Scan(ctx context.Context, limit, offset int) (feedback.Cursor, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit < 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.sqlDB.QueryContext(ctx, selectColumns+orderNewestFirst+` LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query feedbacks: %w", err)
	}
	return &rowCursor{rows: rows}, nil
}

type rowCursor struct {
	rows *sql.Rows
}

func (c *rowCursor) Next() bool { return c.rows.Next() }

func (c *rowCursor) Err() error { return c.rows.Err() }

func (c *rowCursor) Close() error { return c.rows.Close() }

func (c *rowCursor) Record() (feedback.Record, error) {
	var (
		record    feedback.Record
		name      sql.NullString
		email     sql.NullString
		message   sql.NullString
		createdAt any
	)
	if err := c.rows.Scan(&record.ID, &name, &email, &message, &createdAt); err != nil {
		return feedback.Record{}, fmt.Errorf("scan feedback: %w", err)
	}
	parsed, err := parseCreatedAt(createdAt)
	if err != nil {
		return feedback.Record{}, fmt.Errorf("scan feedback %d: %w", record.ID, err)
	}
	record.Name = name.String
	record.Email = email.String
	record.Message = message.String
	record.CreatedAt = parsed
	return record, nil
}
