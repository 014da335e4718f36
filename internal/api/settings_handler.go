package api

import (
	"net/http"

	"allball/practice-server/internal/entitlement"
	"allball/practice-server/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the persisted UI flags plus the resolved plan and
// entitlements for the requesting coach.
type SettingsHandler struct {
	settings     service.SettingsService
	entitlements entitlement.Service
}

func NewSettingsHandler(settings service.SettingsService, entitlements entitlement.Service) *SettingsHandler {
	return &SettingsHandler{settings: settings, entitlements: entitlements}
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type onboardingRequest struct {
	Seen bool `json:"seen"`
}

// GetSettings returns the UI flags together with the caller's plan and what
// it entitles them to. The client uses this single call to decide which
// screens to show.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := userIDFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"mode":           h.settings.Mode(),
		"onboardingSeen": h.settings.OnboardingSeen(),
		"plan":           planFromContext(c),
		"entitlements":   h.entitlements.EntitlementsFor(c.Request.Context(), userID),
	})
}

func (h *SettingsHandler) SetMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "A mode is required.")
		return
	}
	if err := h.settings.SetMode(c.Request.Context(), req.Mode); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": h.settings.Mode()})
}

func (h *SettingsHandler) SetOnboardingSeen(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid payload.")
		return
	}
	h.settings.SetOnboardingSeen(c.Request.Context(), req.Seen)
	c.JSON(http.StatusOK, gin.H{"onboardingSeen": h.settings.OnboardingSeen()})
}
