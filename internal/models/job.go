package models

import "time"

// JobRecord is the legacy persisted jobs table. Most jobs never get a row
// here; they exist only as read-time projections of order items. When a row
// does exist for a given job id, its fields take precedence over the
// projection.
type JobRecord struct {
	ID    uint   `gorm:"primaryKey"`
	JobID string `gorm:"column:job_id;size:60;not null;uniqueIndex"`

	OrderCode  string `gorm:"size:40;index"`
	ProductRef string `gorm:"column:product_ref;size:64"`

	JobType         string `gorm:"size:40"`
	Status          string `gorm:"size:20"`
	AppointmentDate *time.Time
	CompletionDate  *time.Time
	Team            string `gorm:"size:120"`
	InspectorName   string `gorm:"size:120"`
	InspectorPhone  string `gorm:"size:40"`
	LocationName    string `gorm:"size:180"`
	Address         string `gorm:"size:255"`
	MapLink         string `gorm:"size:255"`
	Distance        float64
	Notes           string `gorm:"size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
