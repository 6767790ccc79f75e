package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many entries any page can return.
	MaxLimit = 100
)

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor points at the last entry of the previous page.
type Cursor struct {
	Timestamp time.Time
	ID        string
}

// Page is one slice of a newest-first list.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds a base64 cursor string from the provided values.
func EncodeCursor(cursor Cursor) string {
	payload := fmt.Sprintf("%s|%s", cursor.Timestamp.UTC().Format(time.RFC3339Nano), cursor.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes the cursor string back into its components. A blank
// value means the first page.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid cursor format")
	}

	t, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	return &Cursor{Timestamp: t, ID: parts[1]}, nil
}

// Paginate pages through items, which must already be sorted newest first.
// When the cursor entry is gone the page resumes at the first entry older
// than the cursor timestamp.
func Paginate[T any](items []T, params Params, key func(T) Cursor) (Page[T], error) {
	cursor, err := ParseCursor(params.Cursor)
	if err != nil {
		return Page[T]{}, err
	}
	limit := NormalizeLimit(params.Limit)

	start := 0
	if cursor != nil {
		start = resumeIndex(items, *cursor, key)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	page := Page[T]{Items: append([]T{}, items[start:end]...)}
	if end < len(items) {
		page.NextCursor = EncodeCursor(key(items[end-1]))
	}
	return page, nil
}

func resumeIndex[T any](items []T, cursor Cursor, key func(T) Cursor) int {
	for i, item := range items {
		if key(item).ID == cursor.ID {
			return i + 1
		}
	}
	for i, item := range items {
		if key(item).Timestamp.Before(cursor.Timestamp) {
			return i
		}
	}
	return len(items)
}
