package db

import "gorm.io/gorm"

// Project is one validation project: the idea being tested plus its landing
// page state. Document holds the serialized builder.Document JSON; Slug and
// Published are only written by the publish service.
type Project struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Pain      string `gorm:"type:text"`
	Audience  string
	Template  string
	Slug      string `gorm:"index"`
	Published bool   `gorm:"default:false"`
	Document  string `gorm:"type:text"`

	User User
}
