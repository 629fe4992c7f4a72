package service

import (
	"strings"

	"github.com/launchdeck/internal/db"
	"gorm.io/gorm"
)

// RefStat aggregates visits per attribution code.
type RefStat struct {
	Ref      string `json:"ref"`
	Visits   int64  `json:"visits"`
	Visitors int64  `json:"visitors"`
}

// VisitService records anonymous views of published pages for attribution.
type VisitService struct {
	db *gorm.DB
}

// NewVisitService creates a VisitService instance.
func NewVisitService(gdb *gorm.DB) *VisitService {
	return &VisitService{db: gdb}
}

// Record stores one page view. Ref is the ?ref= code passed through on the
// public URL, kept verbatim for the founder's attribution table.
func (s *VisitService) Record(projectID uint, slug, ref, visitorID string) error {
	visit := db.PageVisit{
		ProjectID: projectID,
		Slug:      slug,
		Ref:       strings.TrimSpace(ref),
		VisitorID: visitorID,
	}
	return s.db.Create(&visit).Error
}

// Stats returns visit counts per ref code, busiest first. The empty ref bucket
// collects direct traffic.
func (s *VisitService) Stats(projectID uint) ([]RefStat, error) {
	var stats []RefStat
	err := s.db.Model(&db.PageVisit{}).
		Select("ref, COUNT(*) as visits, COUNT(DISTINCT visitor_id) as visitors").
		Where("project_id = ?", projectID).
		Group("ref").
		Order("visits desc").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
