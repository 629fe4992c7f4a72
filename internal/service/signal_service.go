package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/launchdeck/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSignalNotFound      = errors.New("signal not found")
	ErrInvalidSignalStatus = errors.New("invalid signal status")
)

// SearchResult is one hit from the external search collaborator.
type SearchResult struct {
	URL     string
	Title   string
	Snippet string
	Source  string
}

// SignalSearcher is the opaque search collaborator (Reddit in production).
type SignalSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// Fixed keyword lists for intent scoring and tagging. Plain substring checks;
// anything smarter lives upstream in the search query itself.
var (
	strongIntentPhrases = []string{
		"looking for", "is there a tool", "is there an app", "recommend",
		"alternative to", "willing to pay", "would pay", "shut up and take my money",
	}
	weakIntentPhrases = []string{
		"how do i", "how do you", "struggling with", "frustrated", "wish there was",
		"any suggestions", "best way to",
	}
	tagPhrases = map[string][]string{
		"pricing":    {"pay", "price", "pricing", "cost", "subscription"},
		"competitor": {"alternative", "instead of", "switching from", "compared to"},
		"pain":       {"struggling", "frustrated", "hate", "annoying", "tedious"},
		"question":   {"how do", "how can", "is there", "any suggestions", "?"},
	}
	signalStatuses = []string{
		db.SignalStatusNew, db.SignalStatusSaved, db.SignalStatusContacted, db.SignalStatusDismissed,
	}
)

// SignalService stores and scores validation signals for a project.
type SignalService struct {
	db *gorm.DB
}

// NewSignalService creates a SignalService instance.
func NewSignalService(gdb *gorm.DB) *SignalService {
	return &SignalService{db: gdb}
}

// ScoreIntent rates how much a post reads like buying intent: strong phrases
// count double, weak phrases once.
func ScoreIntent(text string) int {
	lowered := strings.ToLower(text)
	score := 0
	for _, phrase := range strongIntentPhrases {
		if strings.Contains(lowered, phrase) {
			score += 2
		}
	}
	for _, phrase := range weakIntentPhrases {
		if strings.Contains(lowered, phrase) {
			score++
		}
	}
	return score
}

// DeriveTags returns the matching tag names in a stable order.
func DeriveTags(text string) []string {
	lowered := strings.ToLower(text)
	var tags []string
	for _, tag := range []string{"pricing", "competitor", "pain", "question"} {
		for _, phrase := range tagPhrases[tag] {
			if strings.Contains(lowered, phrase) {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}

// Import stores search results as signals, skipping URLs the project already
// has, and returns how many rows were created.
func (s *SignalService) Import(projectID uint, results []SearchResult) (int, error) {
	created := 0
	for _, result := range results {
		url := strings.TrimSpace(result.URL)
		if url == "" {
			continue
		}

		var count int64
		if err := s.db.Model(&db.Signal{}).
			Where("project_id = ? AND url = ?", projectID, url).
			Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		text := result.Title + " " + result.Snippet
		source := result.Source
		if source == "" {
			source = "reddit"
		}
		signal := db.Signal{
			ProjectID:   projectID,
			URL:         url,
			Title:       strings.TrimSpace(result.Title),
			Snippet:     strings.TrimSpace(result.Snippet),
			Source:      source,
			IntentScore: ScoreIntent(text),
			Tags:        strings.Join(DeriveTags(text), ","),
			Status:      db.SignalStatusNew,
		}
		if err := s.db.Create(&signal).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// List returns a project's signals, optionally filtered by status, highest
// intent first.
func (s *SignalService) List(projectID uint, status string) ([]db.Signal, error) {
	query := s.db.Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var signals []db.Signal
	if err := query.Order("intent_score desc, created_at desc").Find(&signals).Error; err != nil {
		return nil, err
	}
	return signals, nil
}

// UpdateStatus moves a signal through the triage states.
func (s *SignalService) UpdateStatus(id uint, status string) (*db.Signal, error) {
	valid := false
	for _, candidate := range signalStatuses {
		if candidate == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidSignalStatus
	}

	var signal db.Signal
	if err := s.db.First(&signal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignalNotFound
		}
		return nil, err
	}

	signal.Status = status
	if err := s.db.Save(&signal).Error; err != nil {
		return nil, err
	}
	return &signal, nil
}

// Delete removes a signal.
func (s *SignalService) Delete(id uint) error {
	return s.db.Delete(&db.Signal{}, id).Error
}

// SearchAndImport runs the collaborator query and stores new hits. A search
// failure is returned as-is; nothing is written in that case.
func (s *SignalService) SearchAndImport(ctx context.Context, searcher SignalSearcher, projectID uint, query string, limit int) (int, error) {
	if searcher == nil {
		return 0, errors.New("no searcher configured")
	}
	if limit <= 0 {
		limit = 25
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	results, err := searcher.Search(ctx, query, limit)
	if err != nil {
		return 0, err
	}
	return s.Import(projectID, results)
}
