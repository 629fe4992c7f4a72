package db

import "gorm.io/gorm"

// PageVisit is one anonymous view of a published landing page. Ref carries the
// ?ref= attribution code passed through on the public URL; VisitorID is the
// uuid cookie assigned on first visit.
type PageVisit struct {
	gorm.Model
	ProjectID uint   `gorm:"index;not null"`
	Slug      string `gorm:"index"`
	Ref       string `gorm:"index"`
	VisitorID string `gorm:"index"`
}
