package core

import (
	"strings"
	"unicode/utf8"
)

// FieldError describes one invalid request field. Validation failures are
// aggregated so clients see every problem at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 3
	minTitleLen    = 3
)

// validateSignup checks username (trimmed, 3-30 chars) and password (min 3).
func validateSignup(username, password string) []FieldError {
	var errs []FieldError

	username = strings.TrimSpace(username)
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	case n < minUsernameLen || n > maxUsernameLen:
		errs = append(errs, FieldError{Field: "username", Message: "username must be 3-30 characters"})
	}

	switch n := utf8.RuneCountInString(password); {
	case n == 0:
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	case n < minPasswordLen:
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 3 characters"})
	}

	return errs
}

// validateTaskTitle checks the task title (trimmed, min 3 chars).
func validateTaskTitle(title string) []FieldError {
	title = strings.TrimSpace(title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return []FieldError{{Field: "title", Message: "title is required"}}
	case n < minTitleLen:
		return []FieldError{{Field: "title", Message: "title must be at least 3 characters"}}
	}
	return nil
}
