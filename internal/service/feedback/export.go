package feedback

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mohitvuyala/portfolio/backend/internal/model/feedback"
)

// CSVHeader is the first line of every export.
const CSVHeader = "id,name,email,message,created_at\n"

// ExportOptions selects which records an export covers.
type ExportOptions struct {
	All      bool
	Page     int
	PageSize int
}

// ExportCSV streams records to w as CSV, one row per record. Nothing is
// written if the query cannot be opened. The paginated branch does not
// report a total count.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, opts ExportOptions) error {
	limit, off := -1, 0
	if !opts.All {
		page := clampPage(opts.Page)
		pageSize := clampPageSize(opts.PageSize, MaxExportPageSize)
		limit, off = pageSize, offset(page, pageSize)
	}

	cursor, err := s.store.Scan(ctx, limit, off)
	if err != nil {
		return &StoreError{Op: "export", Err: err}
	}
	defer cursor.Close()

	if _, err := io.WriteString(w, CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	var line strings.Builder
	for cursor.Next() {
		record, err := cursor.Record()
		if err != nil {
			return &StoreError{Op: "export", Err: err}
		}
		line.Reset()
		writeCSVRow(&line, record)
		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("write csv row %d: %w", record.ID, err)
		}
	}
	if err := cursor.Err(); err != nil {
		return &StoreError{Op: "export", Err: err}
	}
	return nil
}

func writeCSVRow(b *strings.Builder, r feedback.Record) {
	fields := [...]string{
		strconv.FormatInt(r.ID, 10),
		r.Name,
		r.Email,
		r.Message,
		formatTimestamp(r.CreatedAt),
	}
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
