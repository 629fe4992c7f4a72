package service

import (
	"context"
	"errors"
	"testing"

	"github.com/launchdeck/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSignalServiceTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Signal{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestScoreIntentWeighsStrongPhrases(t *testing.T) {
	weak := ScoreIntent("How do I keep track of my invoices?")
	strong := ScoreIntent("Looking for a tool, willing to pay for something decent")
	if weak <= 0 {
		t.Fatalf("weak phrase should still score, got %d", weak)
	}
	if strong <= weak {
		t.Fatalf("strong phrases should outscore weak ones: strong=%d weak=%d", strong, weak)
	}
	if ScoreIntent("just sharing my vacation photos") != 0 {
		t.Fatal("unrelated text should score zero")
	}
}

func TestDeriveTagsMatchesFixedLists(t *testing.T) {
	tags := DeriveTags("Frustrated with the pricing of my current tool, any alternative?")
	want := map[string]bool{"pricing": true, "competitor": true, "pain": true, "question": true}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %v", len(want), tags)
	}
	for _, tag := range tags {
		if !want[tag] {
			t.Fatalf("unexpected tag %q", tag)
		}
	}
}

func TestImportDeduplicatesByURL(t *testing.T) {
	cleanup := setupSignalServiceTestDB(t)
	defer cleanup()

	svc := NewSignalService(db.DB)
	results := []SearchResult{
		{URL: "https://reddit.com/r/saas/1", Title: "Looking for a churn tool"},
		{URL: "https://reddit.com/r/saas/1", Title: "Looking for a churn tool"},
		{URL: "https://reddit.com/r/saas/2", Title: "How do I track signups?"},
		{URL: "  ", Title: "no url"},
	}

	created, err := svc.Import(41, results)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 created signals, got %d", created)
	}

	// A second import of the same batch creates nothing.
	created, err = svc.Import(41, results)
	if err != nil {
		t.Fatalf("second Import returned error: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected re-import to be a no-op, created %d", created)
	}

	// Same URL under a different project is a separate signal.
	created, err = svc.Import(42, results[:1])
	if err != nil {
		t.Fatalf("cross-project Import returned error: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 created signal for other project, got %d", created)
	}
}

func TestImportScoresAndTags(t *testing.T) {
	cleanup := setupSignalServiceTestDB(t)
	defer cleanup()

	svc := NewSignalService(db.DB)
	_, err := svc.Import(7, []SearchResult{
		{URL: "https://reddit.com/r/startups/9", Title: "Looking for an alternative to my current tracker", Snippet: "willing to pay"},
	})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	signals, err := svc.List(7, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	if signals[0].IntentScore < 4 {
		t.Fatalf("two strong phrases should score at least 4, got %d", signals[0].IntentScore)
	}
	if signals[0].Tags == "" {
		t.Fatal("expected derived tags to be stored")
	}
	if signals[0].Status != db.SignalStatusNew {
		t.Fatalf("imported signals start as new, got %q", signals[0].Status)
	}
}

func TestUpdateStatusValidatesTransitionTargets(t *testing.T) {
	cleanup := setupSignalServiceTestDB(t)
	defer cleanup()

	svc := NewSignalService(db.DB)
	if _, err := svc.Import(7, []SearchResult{{URL: "https://reddit.com/r/x/1", Title: "t"}}); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	signals, _ := svc.List(7, "")

	updated, err := svc.UpdateStatus(signals[0].ID, db.SignalStatusContacted)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != db.SignalStatusContacted {
		t.Fatalf("status not updated: %q", updated.Status)
	}

	if _, err := svc.UpdateStatus(signals[0].ID, "archived"); !errors.Is(err, ErrInvalidSignalStatus) {
		t.Fatalf("expected ErrInvalidSignalStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(99999, db.SignalStatusSaved); !errors.Is(err, ErrSignalNotFound) {
		t.Fatalf("expected ErrSignalNotFound, got %v", err)
	}
}

type stubSearcher struct {
	results []SearchResult
	err     error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]SearchResult, error) {
	return s.results, s.err
}

func TestSearchAndImportWritesNothingOnSearchFailure(t *testing.T) {
	cleanup := setupSignalServiceTestDB(t)
	defer cleanup()

	svc := NewSignalService(db.DB)
	searcher := &stubSearcher{err: errors.New("rate limited")}

	if _, err := svc.SearchAndImport(context.Background(), searcher, 7, "churn", 10); err == nil {
		t.Fatal("expected search error to propagate")
	}

	signals, _ := svc.List(7, "")
	if len(signals) != 0 {
		t.Fatalf("failed search must not write signals, found %d", len(signals))
	}
}
