package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/launchdeck/internal/builder"
	"github.com/launchdeck/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectNameMissing = errors.New("project name is required")
)

// ProjectService wraps validation project persistence. It is the concrete
// project record store the builder and publish flows sit on.
type ProjectService struct {
	db  *gorm.DB
	gen builder.IDGenerator
}

// ProjectInput carries the fields accepted when creating or updating a
// project.
type ProjectInput struct {
	UserID   uint
	Name     string
	Pain     string
	Audience string
	Template string
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb, gen: builder.NewIDGenerator()}
}

// Create persists a new project seeded with the template's default document.
// The AI overlay, if any, is applied later through Regenerate.
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameMissing
	}

	tpl := builder.LookupTemplate(input.Template)
	doc := builder.BuildDocument(s.gen, tpl.Name, nil)
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	project := db.Project{
		UserID:   input.UserID,
		Name:     name,
		Pain:     strings.TrimSpace(input.Pain),
		Audience: strings.TrimSpace(input.Audience),
		Template: tpl.Name,
		Document: string(raw),
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Get fetches a project by id.
func (s *ProjectService) Get(id uint) (*db.Project, error) {
	var project db.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// GetForUser fetches a project owned by the given user.
func (s *ProjectService) GetForUser(id, userID uint) (*db.Project, error) {
	var project db.Project
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List returns the user's projects, most recently updated first.
func (s *ProjectService) List(userID uint) ([]db.Project, error) {
	var projects []db.Project
	if err := s.db.Where("user_id = ?", userID).Order("updated_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies name/pain/audience edits to an existing project.
func (s *ProjectService) Update(id uint, input ProjectInput) (*db.Project, error) {
	project, err := s.GetForUser(id, input.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		project.Name = name
	}
	project.Pain = strings.TrimSpace(input.Pain)
	project.Audience = strings.TrimSpace(input.Audience)

	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project and its dependent rows.
func (s *ProjectService) Delete(id, userID uint) error {
	project, err := s.GetForUser(id, userID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&db.Signal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&db.Outreach{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&db.PageVisit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Project{}, project.ID).Error
	})
}

// LoadDocument decodes the project's stored landing page document. A project
// without a document yet yields the template defaults so the editor always
// opens on a valid state.
func (s *ProjectService) LoadDocument(project *db.Project) (builder.Document, error) {
	if strings.TrimSpace(project.Document) == "" {
		return builder.BuildDocument(s.gen, project.Template, nil), nil
	}
	var doc builder.Document
	if err := json.Unmarshal([]byte(project.Document), &doc); err != nil {
		return builder.Document{}, fmt.Errorf("decode document for project %d: %w", project.ID, err)
	}
	if doc.GlobalStyles == nil {
		doc.GlobalStyles = map[string]string{}
	}
	return doc, nil
}

// ReplaceDocument overwrites the stored document, used by the generation flow.
func (s *ProjectService) ReplaceDocument(projectID uint, doc builder.Document) error {
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
