package service

import (
	"errors"
	"strings"
	"time"

	"github.com/launchdeck/internal/db"
	"gorm.io/gorm"
)

var (
	ErrOutreachNotFound      = errors.New("outreach entry not found")
	ErrOutreachContactNeeded = errors.New("outreach contact is required")
	ErrInvalidOutreachStatus = errors.New("invalid outreach status")
)

var outreachStatuses = []string{
	db.OutreachStatusDraft, db.OutreachStatusSent, db.OutreachStatusReplied, db.OutreachStatusConverted,
}

// OutreachInput carries the fields accepted when creating or updating an
// outreach entry.
type OutreachInput struct {
	ProjectID uint
	SignalID  *uint
	Contact   string
	Channel   string
	Notes     string
}

// OutreachService tracks conversations with potential users.
type OutreachService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewOutreachService creates an OutreachService instance.
func NewOutreachService(gdb *gorm.DB) *OutreachService {
	return &OutreachService{db: gdb, now: time.Now}
}

// Create records a new outreach entry in draft status.
func (s *OutreachService) Create(input OutreachInput) (*db.Outreach, error) {
	contact := strings.TrimSpace(input.Contact)
	if contact == "" {
		return nil, ErrOutreachContactNeeded
	}

	entry := db.Outreach{
		ProjectID:     input.ProjectID,
		SignalID:      input.SignalID,
		Contact:       contact,
		Channel:       strings.TrimSpace(input.Channel),
		Notes:         strings.TrimSpace(input.Notes),
		Status:        db.OutreachStatusDraft,
		LastTouchedAt: s.now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns a project's outreach entries, most recently touched first.
func (s *OutreachService) List(projectID uint) ([]db.Outreach, error) {
	var entries []db.Outreach
	if err := s.db.Where("project_id = ?", projectID).
		Order("last_touched_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Update edits contact details and notes.
func (s *OutreachService) Update(id uint, input OutreachInput) (*db.Outreach, error) {
	entry, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if contact := strings.TrimSpace(input.Contact); contact != "" {
		entry.Contact = contact
	}
	entry.Channel = strings.TrimSpace(input.Channel)
	entry.Notes = strings.TrimSpace(input.Notes)
	entry.LastTouchedAt = s.now()

	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateStatus advances an entry through the outreach pipeline and touches its
// timestamp.
func (s *OutreachService) UpdateStatus(id uint, status string) (*db.Outreach, error) {
	valid := false
	for _, candidate := range outreachStatuses {
		if candidate == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidOutreachStatus
	}

	entry, err := s.get(id)
	if err != nil {
		return nil, err
	}

	entry.Status = status
	entry.LastTouchedAt = s.now()
	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an outreach entry.
func (s *OutreachService) Delete(id uint) error {
	return s.db.Delete(&db.Outreach{}, id).Error
}

func (s *OutreachService) get(id uint) (*db.Outreach, error) {
	var entry db.Outreach
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOutreachNotFound
		}
		return nil, err
	}
	return &entry, nil
}
