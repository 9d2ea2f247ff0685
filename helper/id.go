package helper

import (
	"strconv"
	"strings"

	"blog-platform/models"
)

// ParseID normalizes an identifier received as text (path parameter, token
// subject, form field) to the canonical uint form. Zero is rejected.
func ParseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 || uint64(uint(n)) != n {
		return 0, models.InvalidInput("id", "id must be a positive integer")
	}
	return uint(n), nil
}

// FormatID is the inverse of ParseID.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
