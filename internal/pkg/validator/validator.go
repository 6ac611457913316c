package validator

import (
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Field+": "+err.Message)
	}
	return strings.Join(messages, "; ")
}

// ToMap converts the errors to a field->message map for API responses.
func (e ValidationErrors) ToMap() map[string]string {
	m := make(map[string]string, len(e))
	for _, err := range e {
		if _, exists := m[err.Field]; !exists {
			m[err.Field] = err.Message
		}
	}
	return m
}

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidDate parses a YYYY-MM-DD date string.
func IsValidDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsValidClockTime parses a HH:MM local clock time.
func IsValidClockTime(s string) (time.Time, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
