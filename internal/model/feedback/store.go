package feedback

import "context"

// Store is the append-only persistence contract for feedback records.
// A negative limit on Scan means no limit.
type Store interface {
	Insert(ctx context.Context, sub Submission) (Record, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
	Scan(ctx context.Context, limit, offset int) (Cursor, error)
}
