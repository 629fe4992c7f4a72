package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/launchdeck/internal/service"
)

type outreachPayload struct {
	SignalID *uint  `json:"signalId"`
	Contact  string `json:"contact"`
	Channel  string `json:"channel"`
	Notes    string `json:"notes"`
}

// ListOutreach returns a project's outreach pipeline.
func (a *API) ListOutreach(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.projects.GetForUser(id, currentUserID(c)); err != nil {
		respondError(c, http.StatusNotFound, "project not found")
		return
	}

	entries, err := a.outreach.List(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list outreach")
		return
	}
	c.JSON(http.StatusOK, gin.H{"outreach": entries})
}

// CreateOutreach records a new conversation.
func (a *API) CreateOutreach(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.projects.GetForUser(id, currentUserID(c)); err != nil {
		respondError(c, http.StatusNotFound, "project not found")
		return
	}

	var payload outreachPayload
	if !bindJSON(c, &payload, "invalid outreach payload") {
		return
	}

	entry, err := a.outreach.Create(service.OutreachInput{
		ProjectID: id,
		SignalID:  payload.SignalID,
		Contact:   payload.Contact,
		Channel:   payload.Channel,
		Notes:     payload.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrOutreachContactNeeded) {
			respondError(c, http.StatusBadRequest, "contact is required")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create outreach")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateOutreach edits contact details and notes.
func (a *API) UpdateOutreach(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload outreachPayload
	if !bindJSON(c, &payload, "invalid outreach payload") {
		return
	}

	entry, err := a.outreach.Update(id, service.OutreachInput{
		SignalID: payload.SignalID,
		Contact:  payload.Contact,
		Channel:  payload.Channel,
		Notes:    payload.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrOutreachNotFound) {
			respondError(c, http.StatusNotFound, "outreach entry not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update outreach")
		return
	}
	c.JSON(http.StatusOK, entry)
}

type outreachStatusPayload struct {
	Status string `json:"status"`
}

// UpdateOutreachStatus advances an entry through the pipeline.
func (a *API) UpdateOutreachStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload outreachStatusPayload
	if !bindJSON(c, &payload, "invalid status payload") {
		return
	}

	entry, err := a.outreach.UpdateStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOutreachStatus):
			respondError(c, http.StatusBadRequest, "invalid outreach status")
		case errors.Is(err, service.ErrOutreachNotFound):
			respondError(c, http.StatusNotFound, "outreach entry not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update outreach")
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteOutreach removes an entry.
func (a *API) DeleteOutreach(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.outreach.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete outreach")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "outreach entry deleted"})
}
