package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/launchdeck/internal/builder"
	"github.com/launchdeck/internal/service"
)

// editorSession is one open editing session. The mutex serializes operations
// so document mutation and history pushes never interleave; a builder.Editor
// is single-owner by contract.
type editorSession struct {
	mu        sync.Mutex
	projectID uint
	userID    uint
	editor    *builder.Editor
}

// editorRegistry keeps open sessions in memory, keyed by an opaque token.
// A request against a token that was closed (or belongs to a restarted
// process) gets a 404; clients reopen and retry, so a stale in-flight edit is
// dropped rather than applied to a defunct document.
type editorRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*editorSession
}

func newEditorRegistry() *editorRegistry {
	return &editorRegistry{sessions: make(map[string]*editorSession)}
}

func (r *editorRegistry) open(projectID, userID uint, doc builder.Document) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.sessions[token] = &editorSession{
		projectID: projectID,
		userID:    userID,
		editor:    builder.NewEditor(doc),
	}
	r.mu.Unlock()
	return token
}

func (r *editorRegistry) get(token string) *editorSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[token]
}

func (r *editorRegistry) close(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

// withSession resolves the session for the request, checks ownership, and runs
// fn with the session lock held.
func (a *API) withSession(c *gin.Context, fn func(s *editorSession)) {
	token := c.Param("token")
	session := a.editors.get(token)
	if session == nil {
		respondError(c, http.StatusNotFound, "editor session not found")
		return
	}
	if session.userID != currentUserID(c) {
		respondError(c, http.StatusNotFound, "editor session not found")
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	fn(session)
}

func editorStateView(token string, s *editorSession) gin.H {
	return gin.H{
		"token":     token,
		"projectId": s.projectID,
		"document":  s.editor.Document(),
		"selected":  s.editor.Selected(),
		"canUndo":   s.editor.CanUndo(),
		"canRedo":   s.editor.CanRedo(),
	}
}

func templatesView() []builder.Template {
	return builder.ListTemplates()
}

// OpenEditor starts an editing session on a project's stored document.
func (a *API) OpenEditor(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := a.projects.GetForUser(id, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load project")
		return
	}

	doc, err := a.projects.LoadDocument(project)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load document")
		return
	}

	token := a.editors.open(project.ID, project.UserID, doc)
	session := a.editors.get(token)
	c.JSON(http.StatusOK, editorStateView(token, session))
}

// GetEditorState returns the current document and history flags.
func (a *API) GetEditorState(c *gin.Context) {
	a.withSession(c, func(s *editorSession) {
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// CloseEditor discards an editing session without saving.
func (a *API) CloseEditor(c *gin.Context) {
	token := c.Param("token")
	if session := a.editors.get(token); session != nil && session.userID == currentUserID(c) {
		a.editors.close(token)
	}
	c.JSON(http.StatusOK, gin.H{"message": "editor session closed"})
}

// ListSectionTypes returns the section catalog for the add-section picker.
func (a *API) ListSectionTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": builder.ListTypes()})
}

type addSectionPayload struct {
	Type       string `json:"type"`
	AfterIndex *int   `json:"afterIndex"`
}

// AddSection inserts a new default section and selects it.
func (a *API) AddSection(c *gin.Context) {
	var payload addSectionPayload
	if !bindJSON(c, &payload, "invalid section payload") {
		return
	}

	afterIndex := -1
	if payload.AfterIndex != nil {
		afterIndex = *payload.AfterIndex
	}

	a.withSession(c, func(s *editorSession) {
		id, err := s.editor.AddSection(builder.SectionType(payload.Type), afterIndex)
		if err != nil {
			respondError(c, http.StatusBadRequest, "section position is out of range")
			return
		}
		view := editorStateView(c.Param("token"), s)
		view["sectionId"] = id
		c.JSON(http.StatusOK, view)
	})
}

type updateSectionPayload struct {
	Fields map[string]any `json:"fields"`
}

// UpdateSection merges field edits into a section.
func (a *API) UpdateSection(c *gin.Context) {
	var payload updateSectionPayload
	if !bindJSON(c, &payload, "invalid update payload") {
		return
	}

	a.withSession(c, func(s *editorSession) {
		s.editor.UpdateSection(c.Param("sectionId"), payload.Fields)
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// DeleteSection removes a section; a stale id is a silent no-op.
func (a *API) DeleteSection(c *gin.Context) {
	a.withSession(c, func(s *editorSession) {
		s.editor.DeleteSection(c.Param("sectionId"))
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// DuplicateSection inserts a deep copy right after the original.
func (a *API) DuplicateSection(c *gin.Context) {
	a.withSession(c, func(s *editorSession) {
		s.editor.DuplicateSection(c.Param("sectionId"))
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// ToggleSection flips a section's visibility.
func (a *API) ToggleSection(c *gin.Context) {
	a.withSession(c, func(s *editorSession) {
		s.editor.ToggleVisibility(c.Param("sectionId"))
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

type moveSectionPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveSection relocates a section between display positions.
func (a *API) MoveSection(c *gin.Context) {
	var payload moveSectionPayload
	if !bindJSON(c, &payload, "invalid move payload") {
		return
	}

	a.withSession(c, func(s *editorSession) {
		if err := s.editor.MoveSection(payload.From, payload.To); err != nil {
			respondError(c, http.StatusBadRequest, "section position is out of range")
			return
		}
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

type selectSectionPayload struct {
	SectionID string `json:"sectionId"`
}

// SelectSection updates the tracked selection.
func (a *API) SelectSection(c *gin.Context) {
	var payload selectSectionPayload
	if !bindJSON(c, &payload, "invalid selection payload") {
		return
	}

	a.withSession(c, func(s *editorSession) {
		s.editor.Select(payload.SectionID)
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

type stylePayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UpdateGlobalStyle sets one theme token.
func (a *API) UpdateGlobalStyle(c *gin.Context) {
	var payload stylePayload
	if !bindJSON(c, &payload, "invalid style payload") {
		return
	}
	if payload.Key == "" {
		respondError(c, http.StatusBadRequest, "style key is required")
		return
	}

	a.withSession(c, func(s *editorSession) {
		s.editor.UpdateGlobalStyle(payload.Key, payload.Value)
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// UpdateMeta merges partial SEO meta edits.
func (a *API) UpdateMeta(c *gin.Context) {
	var payload builder.MetaPatch
	if !bindJSON(c, &payload, "invalid meta payload") {
		return
	}

	a.withSession(c, func(s *editorSession) {
		s.editor.UpdateMeta(payload)
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// UpdateSocialLinks merges partial social link edits.
func (a *API) UpdateSocialLinks(c *gin.Context) {
	var payload builder.SocialLinksPatch
	if !bindJSON(c, &payload, "invalid social links payload") {
		return
	}

	a.withSession(c, func(s *editorSession) {
		s.editor.UpdateSocialLinks(payload)
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// Undo steps the editor back one snapshot.
func (a *API) Undo(c *gin.Context) {
	a.withSession(c, func(s *editorSession) {
		s.editor.Undo()
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// Redo steps the editor forward one snapshot.
func (a *API) Redo(c *gin.Context) {
	a.withSession(c, func(s *editorSession) {
		s.editor.Redo()
		c.JSON(http.StatusOK, editorStateView(c.Param("token"), s))
	})
}

// SaveEditor persists the current document without touching publish state.
func (a *API) SaveEditor(c *gin.Context) {
	a.withSession(c, func(s *editorSession) {
		if err := a.publisher.Save(s.projectID, s.editor.Document()); err != nil {
			respondError(c, http.StatusInternalServerError, "failed to save document")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "document saved"})
	})
}

type publishPayload struct {
	Slug string `json:"slug"`
}

// PublishEditor saves the current document and publishes it under a slug.
func (a *API) PublishEditor(c *gin.Context) {
	var payload publishPayload
	if !bindJSON(c, &payload, "invalid publish payload") {
		return
	}

	a.withSession(c, func(s *editorSession) {
		project, err := a.publisher.Publish(s.projectID, payload.Slug, s.editor.Document())
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidSlug):
				respondError(c, http.StatusBadRequest, "slug may only contain lowercase letters, digits and hyphens")
			case errors.Is(err, service.ErrSlugTaken):
				respondError(c, http.StatusConflict, "that slug is already taken")
			case errors.Is(err, service.ErrProjectNotFound):
				respondError(c, http.StatusNotFound, "project not found")
			default:
				respondError(c, http.StatusInternalServerError, "failed to publish")
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "page published",
			"slug":      project.Slug,
			"published": project.Published,
			"url":       "/p/" + project.Slug,
		})
	})
}

// UnpublishEditor takes the page offline, keeping slug and document.
func (a *API) UnpublishEditor(c *gin.Context) {
	a.withSession(c, func(s *editorSession) {
		project, err := a.publisher.Unpublish(s.projectID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to unpublish")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "page unpublished",
			"slug":      project.Slug,
			"published": project.Published,
		})
	})
}
