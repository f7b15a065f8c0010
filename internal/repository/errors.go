package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == uniqueViolation
}

// isForeignKeyViolation reports a delete that lost the race against a
// concurrent insert referencing the same row.
func isForeignKeyViolation(err error) bool {
	return pqCode(err) == foreignKeyViolation
}
