package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/launchdeck/internal/builder"
	"github.com/launchdeck/internal/db"
	"gorm.io/gorm"
)

var (
	ErrInvalidSlug = errors.New("slug must be lowercase letters, digits and hyphens")
	ErrSlugTaken   = errors.New("slug is already in use by another published page")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// PublishService moves a project's landing page between draft and published
// and enforces slug uniqueness across all projects.
//
// The uniqueness check is check-then-act: two publishes racing on the same
// slug can both pass the lookup before either write lands. This mirrors the
// dashboard's behavior; publishing is a rare, human-paced action and the
// window is milliseconds, so the race is accepted rather than closed with a
// conditional write.
type PublishService struct {
	db *gorm.DB
}

// NewPublishService creates a PublishService instance.
func NewPublishService(gdb *gorm.DB) *PublishService {
	return &PublishService{db: gdb}
}

// ValidateSlug rejects anything but non-empty ^[a-z0-9-]+$.
func ValidateSlug(slug string) error {
	if slug == "" || !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// Publish saves the document and flips the project to published under the
// given slug. Re-publishing a project's own slug succeeds; a slug held
// published by any other project fails with ErrSlugTaken.
func (s *PublishService) Publish(projectID uint, slug string, doc builder.Document) (*db.Project, error) {
	slug = strings.TrimSpace(slug)
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	holder, err := s.findPublishedBySlug(slug, projectID)
	if err != nil {
		return nil, err
	}
	if holder != nil {
		return nil, ErrSlugTaken
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	var project db.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	project.Document = string(raw)
	project.Slug = slug
	project.Published = true
	if err := s.db.Save(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Unpublish takes the page offline. Slug and document are retained, so
// publishing again reuses the same slug without contesting it against itself.
func (s *PublishService) Unpublish(projectID uint) (*db.Project, error) {
	var project db.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	project.Published = false
	if err := s.db.Save(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Save persists the document without touching publish state or slug.
func (s *PublishService) Save(projectID uint, doc builder.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	result := s.db.Model(&db.Project{}).Where("id = ?", projectID).Update("document", string(raw))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// FindPublished resolves a published project by slug for public viewing.
func (s *PublishService) FindPublished(slug string) (*db.Project, error) {
	var project db.Project
	err := s.db.Where("slug = ? AND published = ?", slug, true).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (s *PublishService) findPublishedBySlug(slug string, excludeProjectID uint) (*db.Project, error) {
	var project db.Project
	err := s.db.Where("slug = ? AND published = ? AND id <> ?", slug, true, excludeProjectID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}
