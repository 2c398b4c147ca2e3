package domain

import "time"

// Timestamps tracks creation and last modification of a catalog entity.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (t *Timestamps) InitTimestamps(now time.Time) {
	t.CreatedAt = now
	t.UpdatedAt = now
}

// Touch records a modification at now.
func (t *Timestamps) Touch(now time.Time) {
	t.UpdatedAt = now
}
