package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/launchdeck/internal/builder"
	"github.com/launchdeck/internal/service"
)

type generatePayload struct {
	Template string `json:"template"`
}

// GeneratePage seeds a project's landing page from a template plus AI copy.
// Any generation failure degrades to the template's placeholder defaults; the
// founder always gets a valid page, just an unpersonalized one.
func (a *API) GeneratePage(c *gin.Context) {
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

	var payload generatePayload
	if !bindJSON(c, &payload, "invalid generate payload") {
		return
	}

	template := payload.Template
	if template == "" {
		template = project.Template
	}
	template = builder.LookupTemplate(template).Name

	degraded := false
	copyPayload, err := a.copyGen.GenerateCopy(c.Request.Context(), service.CopyRequest{
		ProjectName: project.Name,
		Pain:        project.Pain,
		Audience:    project.Audience,
		Template:    template,
	})
	if err != nil {
		log.Printf("copy generation for project %d fell back to defaults: %v", project.ID, err)
		copyPayload = nil
		degraded = true
	}

	doc := builder.BuildDocument(builder.NewIDGenerator(), template, copyPayload)
	if err := a.projects.ReplaceDocument(project.ID, doc); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to store generated document")
		return
	}
	if template != project.Template {
		if err := a.db.Model(project).Update("template", template).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "failed to store template choice")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"document": doc,
		"degraded": degraded,
	})
}
