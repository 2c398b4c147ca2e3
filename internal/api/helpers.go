package api

import (
	"strings"
	"time"

	domainerrors "github.com/listenupapp/librarian-server/internal/errors"
)

const dateOnlyLayout = "2006-01-02"

// parseDueDate accepts an RFC 3339 timestamp or a calendar date. A calendar
// date means the loan is due by the end of that day (UTC). Empty input
// returns nil so the loan period default applies.
func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	day, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return nil, domainerrors.ValidationWithDetails("invalid due date", map[string]string{
			"dueDate": "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp",
		})
	}

	endOfDay := day.Add(24*time.Hour - time.Nanosecond)
	return &endOfDay, nil
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}
