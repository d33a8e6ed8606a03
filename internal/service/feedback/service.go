package feedback

import (
	"context"
	"log"
	"strings"

	"github.com/mohitvuyala/portfolio/backend/internal/model/feedback"
)

// Pagination bounds for listing and exporting.
const (
	DefaultPageSize       = 20
	MaxPageSize           = 500
	DefaultExportPageSize = 1000
	MaxExportPageSize     = 5000
)

// Service validates submissions and serves paginated reads over the store.
type Service struct {
	store feedback.Store
	hub   *Hub
}

// NewService wires the service to a store. hub may be nil when no live feed
// is wanted.
func NewService(store feedback.Store, hub *Hub) *Service {
	return &Service{store: store, hub: hub}
}

// Submit validates and stores one submission, returning the new record.
func (s *Service) Submit(ctx context.Context, name, email, message string) (feedback.Record, error) {
	sub := feedback.Submission{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}
	if sub.Message == "" {
		return feedback.Record{}, ErrEmptyMessage
	}

	record, err := s.store.Insert(ctx, sub)
	if err != nil {
		return feedback.Record{}, &StoreError{Op: "insert", Err: err}
	}

	log.Printf("[feedback] stored id=%d", record.ID)
	if s.hub != nil {
		s.hub.Publish(record)
	}
	return record, nil
}

// List returns the total count and one page of records, newest first.
// page is floored at 1 and pageSize clamped to [1, MaxPageSize].
func (s *Service) List(ctx context.Context, page, pageSize int) (feedback.Page, error) {
	page = clampPage(page)
	pageSize = clampPageSize(pageSize, MaxPageSize)

	total, err := s.store.Count(ctx)
	if err != nil {
		return feedback.Page{}, &StoreError{Op: "count", Err: err}
	}

	records, err := s.store.List(ctx, pageSize, offset(page, pageSize))
	if err != nil {
		return feedback.Page{}, &StoreError{Op: "list", Err: err}
	}

	return feedback.Page{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Records:  records,
	}, nil
}

func clampPage(page int) int {
	return max(page, 1)
}

func clampPageSize(size, upper int) int {
	return min(max(size, 1), upper)
}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
