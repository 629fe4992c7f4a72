package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/launchdeck/internal/builder"
	"github.com/launchdeck/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCopyServiceTestDB(t *testing.T) *SystemSettingService {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.SystemSetting{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	settings := NewSystemSettingService(gdb)
	if _, err := settings.UpdateSettings(SystemSettingsInput{
		AIProvider:   AIProviderOpenAI,
		OpenAIAPIKey: "test-key",
	}); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
	return settings
}

// fakeDoer replays a canned chat completion body.
type fakeDoer struct {
	status   int
	content  string
	lastBody []byte
	err      error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	if req.Body != nil {
		f.lastBody, _ = io.ReadAll(req.Body)
	}
	completion := map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"role": "assistant", "content": f.content}},
		},
	}
	body, _ := json.Marshal(completion)
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func TestGenerateCopyParsesModelJSON(t *testing.T) {
	settings := setupCopyServiceTestDB(t)

	svc := NewAICopyService(settings)
	svc.SetHTTPClient(&fakeDoer{content: "```json\n" +
		`{"sections":{"hero":{"headline":"Stop losing customers"}},"meta":{"title":"Churn Radar"}}` +
		"\n```"})

	payload, err := svc.GenerateCopy(context.Background(), CopyRequest{
		ProjectName: "Churn Radar",
		Pain:        "customers quietly cancel",
		Audience:    "bootstrapped SaaS founders",
		Template:    "startup",
	})
	if err != nil {
		t.Fatalf("GenerateCopy returned error: %v", err)
	}
	if payload.Sections["hero"]["headline"] != "Stop losing customers" {
		t.Fatalf("unexpected overlay: %+v", payload.Sections)
	}
	if payload.Meta == nil || payload.Meta.Title != "Churn Radar" {
		t.Fatalf("meta not parsed: %+v", payload.Meta)
	}
}

func TestGenerateCopyPromptListsTemplateSections(t *testing.T) {
	settings := setupCopyServiceTestDB(t)

	doer := &fakeDoer{content: `{"sections":{}}`}
	svc := NewAICopyService(settings)
	svc.SetHTTPClient(doer)

	if _, err := svc.GenerateCopy(context.Background(), CopyRequest{
		ProjectName: "Demo", Template: "waitlist",
	}); err != nil {
		t.Fatalf("GenerateCopy returned error: %v", err)
	}

	sent := string(doer.lastBody)
	for _, want := range []string{"hero:", "countdown:", "cta:"} {
		if !strings.Contains(sent, want) {
			t.Fatalf("prompt should mention %q, body: %s", want, sent)
		}
	}
}

func TestGenerateCopyUnparseableResponse(t *testing.T) {
	settings := setupCopyServiceTestDB(t)

	svc := NewAICopyService(settings)
	svc.SetHTTPClient(&fakeDoer{content: "Here are some ideas for your landing page!"})

	if _, err := svc.GenerateCopy(context.Background(), CopyRequest{ProjectName: "Demo"}); !errors.Is(err, builder.ErrCopyUnparseable) {
		t.Fatalf("expected ErrCopyUnparseable, got %v", err)
	}
}

func TestGenerateCopyWithoutAPIKey(t *testing.T) {
	settings := setupCopyServiceTestDB(t)
	if _, err := settings.UpdateSettings(SystemSettingsInput{AIProvider: AIProviderOpenAI}); err != nil {
		t.Fatalf("failed to clear key: %v", err)
	}

	svc := NewAICopyService(settings)
	svc.SetHTTPClient(&fakeDoer{content: "{}"})

	if _, err := svc.GenerateCopy(context.Background(), CopyRequest{ProjectName: "Demo"}); !errors.Is(err, ErrAIAPIKeyMissing) {
		t.Fatalf("expected ErrAIAPIKeyMissing, got %v", err)
	}
}
