package handler

import (
	"net/http"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/launchdeck/internal/db"
	"github.com/launchdeck/internal/service"
)

type editorState struct {
	Token    string `json:"token"`
	Document struct {
		Sections []struct {
			ID      string `json:"id"`
			Type    string `json:"type"`
			Visible bool   `json:"visible"`
		} `json:"sections"`
		GlobalStyles map[string]string `json:"globalStyles"`
		Meta         struct {
			Title string `json:"title"`
		} `json:"meta"`
	} `json:"document"`
	Selected  string `json:"selected"`
	CanUndo   bool   `json:"canUndo"`
	CanRedo   bool   `json:"canRedo"`
	SectionID string `json:"sectionId"`
}

func registerEditorRoutes(api *API, router *gin.Engine, userID uint) {
	group := router.Group("/api", loginAs(userID, "founder"))
	group.POST("/projects/:id/editor", api.OpenEditor)
	group.GET("/editor/:token", api.GetEditorState)
	group.DELETE("/editor/:token", api.CloseEditor)
	group.POST("/editor/:token/sections", api.AddSection)
	group.PUT("/editor/:token/sections/:sectionId", api.UpdateSection)
	group.DELETE("/editor/:token/sections/:sectionId", api.DeleteSection)
	group.POST("/editor/:token/sections/:sectionId/duplicate", api.DuplicateSection)
	group.POST("/editor/:token/sections/:sectionId/toggle", api.ToggleSection)
	group.POST("/editor/:token/move", api.MoveSection)
	group.POST("/editor/:token/select", api.SelectSection)
	group.PUT("/editor/:token/styles", api.UpdateGlobalStyle)
	group.PUT("/editor/:token/meta", api.UpdateMeta)
	group.POST("/editor/:token/undo", api.Undo)
	group.POST("/editor/:token/redo", api.Redo)
	group.POST("/editor/:token/save", api.SaveEditor)
	group.POST("/editor/:token/publish", api.PublishEditor)
	group.POST("/editor/:token/unpublish", api.UnpublishEditor)
}

func seedProjectForEditor(t *testing.T, api *API, userID uint, name string) *db.Project {
	t.Helper()
	project, err := service.NewProjectService(api.DB()).Create(service.ProjectInput{
		UserID: userID,
		Name:   name,
	})
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func openEditor(t *testing.T, api *API, router *gin.Engine, projectID string) editorState {
	t.Helper()
	recorder := performJSON(t, router, http.MethodPost, "/api/projects/"+projectID+"/editor", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("failed to open editor: %d %s", recorder.Code, recorder.Body.String())
	}
	var state editorState
	decodeBody(t, recorder, &state)
	if state.Token == "" {
		t.Fatalf("open editor returned no token")
	}
	return state
}

func TestOpenEditorLoadsTemplateDocument(t *testing.T) {
	api, router, cleanup := setupHandlerTest(t)
	defer cleanup()
	registerEditorRoutes(api, router, 1)
	seedProjectForEditor(t, api, 1, "Churn Radar")

	state := openEditor(t, api, router, "1")

	if len(state.Document.Sections) != 5 {
		t.Fatalf("expected 5 startup sections, got %d", len(state.Document.Sections))
	}
	if state.Document.Sections[0].Type != "hero" {
		t.Fatalf("expected hero first, got %q", state.Document.Sections[0].Type)
	}
	if state.CanUndo || state.CanRedo {
		t.Fatalf("fresh editor should have no history, canUndo=%v canRedo=%v", state.CanUndo, state.CanRedo)
	}
}

func TestAddSectionThenUndo(t *testing.T) {
	api, router, cleanup := setupHandlerTest(t)
	defer cleanup()
	registerEditorRoutes(api, router, 1)
	seedProjectForEditor(t, api, 1, "Churn Radar")
	state := openEditor(t, api, router, "1")

	recorder := performJSON(t, router, http.MethodPost, "/api/editor/"+state.Token+"/sections", map[string]any{
		"type": "faq",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("add section failed: %d %s", recorder.Code, recorder.Body.String())
	}
	var added editorState
	decodeBody(t, recorder, &added)
	if added.SectionID == "" {
		t.Fatalf("add section returned no id")
	}
	if len(added.Document.Sections) != 6 {
		t.Fatalf("expected 6 sections after add, got %d", len(added.Document.Sections))
	}
	if added.Selected != added.SectionID {
		t.Fatalf("new section should be selected, got %q", added.Selected)
	}
	if !added.CanUndo {
		t.Fatalf("add should enable undo")
	}

	recorder = performJSON(t, router, http.MethodPost, "/api/editor/"+state.Token+"/undo", nil)
	var undone editorState
	decodeBody(t, recorder, &undone)
	if len(undone.Document.Sections) != 5 {
		t.Fatalf("undo should restore 5 sections, got %d", len(undone.Document.Sections))
	}
	if undone.CanUndo {
		t.Fatalf("single edit undone, canUndo should be false")
	}
	if !undone.CanRedo {
		t.Fatalf("undo should enable redo")
	}
	if undone.Selected != "" {
		t.Fatalf("selection should clear when its section disappears, got %q", undone.Selected)
	}
}

func TestMoveSectionOutOfRange(t *testing.T) {
	api, router, cleanup := setupHandlerTest(t)
	defer cleanup()
	registerEditorRoutes(api, router, 1)
	seedProjectForEditor(t, api, 1, "Churn Radar")
	state := openEditor(t, api, router, "1")

	recorder := performJSON(t, router, http.MethodPost, "/api/editor/"+state.Token+"/move", map[string]any{
		"from": 0,
		"to":   99,
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	recorder = performJSON(t, router, http.MethodGet, "/api/editor/"+state.Token, nil)
	var current editorState
	decodeBody(t, recorder, &current)
	if current.CanUndo {
		t.Fatalf("rejected move must not reach history")
	}
}

func TestSaveEditorPersistsDocument(t *testing.T) {
	api, router, cleanup := setupHandlerTest(t)
	defer cleanup()
	registerEditorRoutes(api, router, 1)
	project := seedProjectForEditor(t, api, 1, "Churn Radar")
	state := openEditor(t, api, router, "1")

	performJSON(t, router, http.MethodPost, "/api/editor/"+state.Token+"/sections", map[string]any{"type": "pricing"})
	recorder := performJSON(t, router, http.MethodPost, "/api/editor/"+state.Token+"/save", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("save failed: %d %s", recorder.Code, recorder.Body.String())
	}

	projects := service.NewProjectService(api.DB())
	stored, err := projects.Get(project.ID)
	if err != nil {
		t.Fatalf("failed to reload project: %v", err)
	}
	doc, err := projects.LoadDocument(stored)
	if err != nil {
		t.Fatalf("failed to load document: %v", err)
	}
	if len(doc.Sections) != 6 {
		t.Fatalf("expected saved document with 6 sections, got %d", len(doc.Sections))
	}
}

func TestPublishFlow(t *testing.T) {
	api, router, cleanup := setupHandlerTest(t)
	defer cleanup()
	registerEditorRoutes(api, router, 1)
	seedProjectForEditor(t, api, 1, "Churn Radar")
	seedProjectForEditor(t, api, 1, "Second Idea")

	first := openEditor(t, api, router, "1")
	second := openEditor(t, api, router, "2")

	recorder := performJSON(t, router, http.MethodPost, "/api/editor/"+first.Token+"/publish", map[string]any{
		"slug": "churn-radar",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("publish failed: %d %s", recorder.Code, recorder.Body.String())
	}
	var published struct {
		Slug      string `json:"slug"`
		Published bool   `json:"published"`
		URL       string `json:"url"`
	}
	decodeBody(t, recorder, &published)
	if !published.Published || published.URL != "/p/churn-radar" {
		t.Fatalf("unexpected publish response: %+v", published)
	}

	// Another project cannot claim a live slug.
	recorder = performJSON(t, router, http.MethodPost, "/api/editor/"+second.Token+"/publish", map[string]any{
		"slug": "churn-radar",
	})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, recorder.Code)
	}

	recorder = performJSON(t, router, http.MethodPost, "/api/editor/"+second.Token+"/publish", map[string]any{
		"slug": "Bad Slug!",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	recorder = performJSON(t, router, http.MethodPost, "/api/editor/"+first.Token+"/unpublish", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("unpublish failed: %d", recorder.Code)
	}

	// The slug frees up once the holder goes offline.
	recorder = performJSON(t, router, http.MethodPost, "/api/editor/"+second.Token+"/publish", map[string]any{
		"slug": "churn-radar",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected freed slug to publish, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestEditorSessionOwnership(t *testing.T) {
	api, router, cleanup := setupHandlerTest(t)
	defer cleanup()
	registerEditorRoutes(api, router, 1)
	seedProjectForEditor(t, api, 1, "Churn Radar")
	state := openEditor(t, api, router, "1")

	intruder := gin.New()
	intruder.Use(sessions.Sessions("launchdeck_session", cookie.NewStore([]byte("test-secret"))))
	registerEditorRoutes(api, intruder, 2)

	recorder := performJSON(t, intruder, http.MethodGet, "/api/editor/"+state.Token, nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d for foreign session, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestClosedEditorSessionGone(t *testing.T) {
	api, router, cleanup := setupHandlerTest(t)
	defer cleanup()
	registerEditorRoutes(api, router, 1)
	seedProjectForEditor(t, api, 1, "Churn Radar")
	state := openEditor(t, api, router, "1")

	recorder := performJSON(t, router, http.MethodDelete, "/api/editor/"+state.Token, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("close failed: %d", recorder.Code)
	}

	recorder = performJSON(t, router, http.MethodGet, "/api/editor/"+state.Token, nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d after close, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestUpdateGlobalStyleAndMeta(t *testing.T) {
	api, router, cleanup := setupHandlerTest(t)
	defer cleanup()
	registerEditorRoutes(api, router, 1)
	seedProjectForEditor(t, api, 1, "Churn Radar")
	state := openEditor(t, api, router, "1")

	recorder := performJSON(t, router, http.MethodPut, "/api/editor/"+state.Token+"/styles", map[string]any{
		"key":   "primaryColor",
		"value": "#0f766e",
	})
	var styled editorState
	decodeBody(t, recorder, &styled)
	if styled.Document.GlobalStyles["primaryColor"] != "#0f766e" {
		t.Fatalf("style not applied: %v", styled.Document.GlobalStyles)
	}

	recorder = performJSON(t, router, http.MethodPut, "/api/editor/"+state.Token+"/meta", map[string]any{
		"title": "Churn Radar, stop silent churn",
	})
	var withMeta editorState
	decodeBody(t, recorder, &withMeta)
	if withMeta.Document.Meta.Title != "Churn Radar, stop silent churn" {
		t.Fatalf("meta not applied: %q", withMeta.Document.Meta.Title)
	}
}
