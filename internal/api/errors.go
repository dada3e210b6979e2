package api

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"net/http"

	"ancine-api/internal/catalog"
	"ancine-api/internal/planner"

	"github.com/lib/pq"
)

const (
	msgInternal    = "ocorreu um erro interno"
	msgUnavailable = "serviço de banco de dados indisponível"
)

// statusForError maps an error to the HTTP status and the message the client
// sees. Validation errors carry their own text; backend failures are
// sanitized to a generic message, with the detail left to the request log.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, planner.ErrInvalidParameter),
		errors.Is(err, planner.ErrInvalidFilter),
		errors.Is(err, catalog.ErrUnknownResource):
		return http.StatusBadRequest, err.Error()
	case backendUnavailable(err):
		return http.StatusServiceUnavailable, msgUnavailable
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// backendUnavailable reports whether the error means the database cannot be
// reached at all, as opposed to rejecting this particular statement.
func backendUnavailable(err error) bool {
	if errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08: connection exception.
		return pqErr.Code.Class() == "08"
	}
	return false
}
