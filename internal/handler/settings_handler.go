package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/launchdeck/internal/service"
)

type settingsView struct {
	AIProvider        string `json:"aiProvider"`
	OpenAIKeySet      bool   `json:"openaiKeySet"`
	DeepSeekKeySet    bool   `json:"deepseekKeySet"`
	ActiveProviderKey bool   `json:"activeProviderKeySet"`
}

func newSettingsView(s service.SystemSettings) settingsView {
	view := settingsView{
		AIProvider:     s.AIProvider,
		OpenAIKeySet:   s.OpenAIAPIKey != "",
		DeepSeekKeySet: s.DeepSeekAPIKey != "",
	}
	switch s.AIProvider {
	case service.AIProviderDeepSeek:
		view.ActiveProviderKey = view.DeepSeekKeySet
	default:
		view.ActiveProviderKey = view.OpenAIKeySet
	}
	return view
}

// GetSettings returns the AI configuration. API keys are never echoed back,
// only whether one is stored.
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.system.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	c.JSON(http.StatusOK, newSettingsView(settings))
}

type settingsPayload struct {
	AIProvider     string `json:"aiProvider"`
	OpenAIAPIKey   string `json:"openaiApiKey"`
	DeepSeekAPIKey string `json:"deepseekApiKey"`
}

// UpdateSettings stores the AI provider choice and API keys.
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "invalid settings payload") {
		return
	}

	settings, err := a.system.UpdateSettings(service.SystemSettingsInput{
		AIProvider:     payload.AIProvider,
		OpenAIAPIKey:   payload.OpenAIAPIKey,
		DeepSeekAPIKey: payload.DeepSeekAPIKey,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}
	c.JSON(http.StatusOK, newSettingsView(settings))
}
