package models

import "time"

// Setting holds selectable option lists (allowed colors, bulb types) as
// JSON-encoded arrays, keyed by name.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:60;not null;uniqueIndex"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
