package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Extraction is one stored extraction result. RecordJSON holds the full
// structured record as returned to the client; the scalar columns exist
// for listing and filtering without unmarshalling every row.
type Extraction struct {
	ID           string
	CreatedAt    time.Time
	Source       string // "text", "image", or "combined"
	PostType     string
	Category     string
	Title        string
	RecordJSON   string
	OriginalText string
}
