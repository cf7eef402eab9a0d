package security

import (
	"fmt"
	"strings"
)

// forbiddenKeywords are rejected as case-insensitive substrings anywhere in
// the statement, regardless of SQL context. A keyword inside a string literal,
// comment, or identifier also triggers rejection: the screen is over-strict on
// purpose and makes no attempt at semantic analysis. Known gap: a mutating
// statement smuggled under WITH or CALL forms that avoids every listed word
// would pass.
var forbiddenKeywords = []string{
	"drop", "delete", "update", "insert", "alter",
	"truncate", "create", "grant", "revoke",
}

// SQLValidator screens generated SQL before it reaches the database.
type SQLValidator struct{}

func NewSQLValidator() *SQLValidator {
	return &SQLValidator{}
}

// Validate returns an error string naming the matched keyword, or empty string
// if the statement passes. Statements that pass are forwarded unchanged.
func (v *SQLValidator) Validate(sql string) string {
	lower := strings.ToLower(strings.TrimSpace(sql))
	if lower == "" {
		return "generated SQL is empty"
	}
	for _, kw := range forbiddenKeywords {
		if strings.Contains(lower, kw) {
			return fmt.Sprintf("query contains forbidden keyword: %s. Only SELECT queries are allowed", kw)
		}
	}
	return ""
}
