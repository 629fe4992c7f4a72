package db

import "gorm.io/gorm"

// Signal statuses a founder moves a lead through.
const (
	SignalStatusNew       = "new"
	SignalStatusSaved     = "saved"
	SignalStatusContacted = "contacted"
	SignalStatusDismissed = "dismissed"
)

// Signal is one validation signal: a post that looks like buying intent for
// the project's problem space. Tags is a comma-joined list derived from
// keyword matching at import time.
type Signal struct {
	gorm.Model
	ProjectID   uint   `gorm:"index;not null"`
	URL         string `gorm:"not null"`
	Title       string
	Snippet     string `gorm:"type:text"`
	Source      string `gorm:"default:reddit"`
	IntentScore int
	Tags        string
	Status      string `gorm:"default:new"`
}
