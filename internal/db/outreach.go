package db

import (
	"time"

	"gorm.io/gorm"
)

// Outreach statuses.
const (
	OutreachStatusDraft     = "draft"
	OutreachStatusSent      = "sent"
	OutreachStatusReplied   = "replied"
	OutreachStatusConverted = "converted"
)

// Outreach tracks one conversation with a potential user, optionally linked to
// the signal that surfaced them.
type Outreach struct {
	gorm.Model
	ProjectID     uint  `gorm:"index;not null"`
	SignalID      *uint `gorm:"index"`
	Contact       string
	Channel       string
	Status        string `gorm:"default:draft"`
	Notes         string `gorm:"type:text"`
	LastTouchedAt time.Time
}
