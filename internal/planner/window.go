package planner

import (
	"fmt"
	"net/url"
	"strconv"

	"ancine-api/internal/catalog"
)

const (
	// DefaultPageLimit is the page size used when the request omits limit.
	DefaultPageLimit = 10
	// MaxPageLimit is the maximum allowed page size; larger requests clamp.
	MaxPageLimit = 100
)

// Window is the parsed pagination window of one request: the page size and
// the optional keyset cursor, already coerced into the primary key's domain.
type Window struct {
	Limit     int
	Cursor    any
	RawCursor string
}

// HasCursor reports whether the request carried a last_id cursor.
func (w Window) HasCursor() bool {
	return w.Cursor != nil
}

// ParseWindow extracts limit and last_id from the query string. The policy is
// uniform across all endpoint families: absent limit defaults to 10, values
// above 100 clamp to 100, and non-integer or sub-1 values are rejected. The
// cursor must parse in the resource primary key's domain so that integer-keyed
// resources reject garbage cursors up front.
func ParseWindow(params url.Values, pk catalog.Column) (Window, error) {
	limit := DefaultPageLimit
	if raw := params.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Window{}, fmt.Errorf("%w: limit must be an integer", ErrInvalidParameter)
		}
		if n < 1 {
			return Window{}, fmt.Errorf("%w: limit must be at least 1", ErrInvalidParameter)
		}
		if n > MaxPageLimit {
			n = MaxPageLimit
		}
		limit = n
	}

	window := Window{Limit: limit}
	if raw := params.Get("last_id"); raw != "" {
		value, err := pk.ParseValue(raw)
		if err != nil {
			return Window{}, fmt.Errorf("%w: last_id: %v", ErrInvalidParameter, err)
		}
		window.Cursor = value
		window.RawCursor = raw
	}
	return window, nil
}
