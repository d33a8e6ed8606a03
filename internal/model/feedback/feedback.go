package feedback

import "time"

// Record is one visitor submission as persisted by the store.
type Record struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission carries the caller-supplied fields of a new record.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Page is one window of records plus the overall record count.
type Page struct {
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Records  []Record `json:"feedbacks"`
}

// Cursor walks query results one record at a time.
type Cursor interface {
	Next() bool
	Record() (Record, error)
	Err() error
	Close() error
}
