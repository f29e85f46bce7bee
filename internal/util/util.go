package util

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

// ShortIDLength is how many leading characters of an ID are shown
const ShortIDLength = 8

// ShortID returns the displayed prefix of an ID
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// IsUUID checks if a string is a valid UUID
func IsUUID(str string) bool {
	return uuid.Validate(str) == nil
}

// Truncate shortens s to at most n terminal cells, ending in an ellipsis
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	return ansi.Truncate(s, n, "…")
}
