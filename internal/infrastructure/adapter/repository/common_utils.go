package repository

import "strings"

// Driver error types differ between backends, so constraint violations are
// recognized by message.
var duplicateKeyMarkers = []string{
	"duplicate key",
	"UNIQUE constraint",
	"Duplicate entry",
}

// isDuplicateKeyError reports whether the error is a unique-constraint
// violation.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range duplicateKeyMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
