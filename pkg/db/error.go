package db

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKeyErr reports whether err is a unique-constraint violation,
// across the dialects supported by Dialect.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL (error code 23505)
	if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return true
	}

	// MySQL (error code 1062)
	if strings.Contains(err.Error(), "Error 1062") {
		return true
	}

	// SQLite (error code 2067)
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}

	return false
}

var (
	pgConstraintRe     = regexp.MustCompile(`unique constraint "(?:uni_|idx_|ux_)?[a-z0-9]+_([a-z0-9_]+)"`)
	sqliteConstraintRe = regexp.MustCompile(`UNIQUE constraint failed: [a-z0-9_]+\.([a-z0-9_]+)`)
	mysqlConstraintRe  = regexp.MustCompile(`for key '(?:[a-z0-9_]+\.)?(?:uni_|idx_|ux_)?[a-z0-9]+_([a-z0-9_]+)'`)
)

// DuplicateKeyField extracts the offending column from a unique-constraint
// violation message, or "" when it cannot be determined.
func DuplicateKeyField(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, re := range []*regexp.Regexp{pgConstraintRe, sqliteConstraintRe, mysqlConstraintRe} {
		if m := re.FindStringSubmatch(msg); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}
