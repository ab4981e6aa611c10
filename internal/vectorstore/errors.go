package vectorstore

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE undefined_function
const codeUndefinedFunction = "42883"

// reports whether err means the capability-aware match function is not installed.
// structured pg errors are checked by code; anything else (poolers, proxies that
// flatten errors to text) falls back to matching the message.
func isMissingFunction(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUndefinedFunction && strings.Contains(pgErr.Message, matchFunctionV2)
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, matchFunctionV2) {
		return false
	}

	return strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "could not find the function") ||
		strings.Contains(msg, "not found")
}
