package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/launchdeck/internal/service"
)

type searchSignalsPayload struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SearchSignals runs the search collaborator and imports new hits as signals.
func (a *API) SearchSignals(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.projects.GetForUser(id, currentUserID(c)); err != nil {
		respondError(c, http.StatusNotFound, "project not found")
		return
	}

	var payload searchSignalsPayload
	if !bindJSON(c, &payload, "invalid search payload") {
		return
	}
	if strings.TrimSpace(payload.Query) == "" {
		respondError(c, http.StatusBadRequest, "search query is required")
		return
	}

	created, err := a.signals.SearchAndImport(c.Request.Context(), a.searcher, id, payload.Query, payload.Limit)
	if err != nil {
		respondError(c, http.StatusBadGateway, "signal search failed, try again later")
		return
	}

	signals, err := a.signals.List(id, "")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list signals")
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": created, "signals": signals})
}

// ListSignals returns a project's signals, optionally filtered by status.
func (a *API) ListSignals(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.projects.GetForUser(id, currentUserID(c)); err != nil {
		respondError(c, http.StatusNotFound, "project not found")
		return
	}

	signals, err := a.signals.List(id, c.Query("status"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list signals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"signals": signals})
}

type signalStatusPayload struct {
	Status string `json:"status"`
}

// UpdateSignalStatus moves a signal through the triage states.
func (a *API) UpdateSignalStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload signalStatusPayload
	if !bindJSON(c, &payload, "invalid status payload") {
		return
	}

	signal, err := a.signals.UpdateStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignalStatus):
			respondError(c, http.StatusBadRequest, "invalid signal status")
		case errors.Is(err, service.ErrSignalNotFound):
			respondError(c, http.StatusNotFound, "signal not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update signal")
		}
		return
	}
	c.JSON(http.StatusOK, signal)
}

// DeleteSignal removes a signal.
func (a *API) DeleteSignal(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.signals.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete signal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signal deleted"})
}
