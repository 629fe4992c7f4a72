package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/launchdeck/internal/db"
	"github.com/launchdeck/internal/service"
)

type projectPayload struct {
	Name     string `json:"name"`
	Pain     string `json:"pain"`
	Audience string `json:"audience"`
	Template string `json:"template"`
}

func projectView(p *db.Project) gin.H {
	return gin.H{
		"id":        p.ID,
		"name":      p.Name,
		"pain":      p.Pain,
		"audience":  p.Audience,
		"template":  p.Template,
		"slug":      p.Slug,
		"published": p.Published,
		"updatedAt": p.UpdatedAt,
	}
}

// ListProjects returns the signed-in user's projects.
func (a *API) ListProjects(c *gin.Context) {
	projects, err := a.projects.List(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list projects")
		return
	}

	views := make([]gin.H, 0, len(projects))
	for i := range projects {
		views = append(views, projectView(&projects[i]))
	}
	c.JSON(http.StatusOK, gin.H{"projects": views})
}

// CreateProject creates a project seeded with template defaults.
func (a *API) CreateProject(c *gin.Context) {
	var payload projectPayload
	if !bindJSON(c, &payload, "invalid project payload") {
		return
	}

	project, err := a.projects.Create(service.ProjectInput{
		UserID:   currentUserID(c),
		Name:     payload.Name,
		Pain:     payload.Pain,
		Audience: payload.Audience,
		Template: payload.Template,
	})
	if err != nil {
		if errors.Is(err, service.ErrProjectNameMissing) {
			respondError(c, http.StatusBadRequest, "project name is required")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, projectView(project))
}

// GetProject returns one project with its attribution stats.
func (a *API) GetProject(c *gin.Context) {
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

	stats, err := a.visits.Stats(project.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load visit stats")
		return
	}

	view := projectView(project)
	view["visitStats"] = stats
	c.JSON(http.StatusOK, view)
}

// UpdateProject edits a project's idea fields.
func (a *API) UpdateProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload projectPayload
	if !bindJSON(c, &payload, "invalid project payload") {
		return
	}

	project, err := a.projects.Update(id, service.ProjectInput{
		UserID:   currentUserID(c),
		Name:     payload.Name,
		Pain:     payload.Pain,
		Audience: payload.Audience,
	})
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update project")
		return
	}

	c.JSON(http.StatusOK, projectView(project))
}

// DeleteProject removes a project and everything hanging off it.
func (a *API) DeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.projects.Delete(id, currentUserID(c)); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// ListTemplates returns the template catalog for the new-project picker.
func (a *API) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": templatesView()})
}
