package api

import (
	"net/http"

	"allball/practice-server/internal/service"

	"github.com/gin-gonic/gin"
)

// TemplateHandler serves reusable session templates. All template routes are
// gated on the templates capability.
type TemplateHandler struct {
	templates service.TemplateService
	sessions  service.SessionService
}

func NewTemplateHandler(templates service.TemplateService, sessions service.SessionService) *TemplateHandler {
	return &TemplateHandler{templates: templates, sessions: sessions}
}

type saveTemplateRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.templates.List()})
}

// SaveTemplate snapshots the current draft form under the given name.
func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var req saveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Template name cannot be empty.")
		return
	}
	tmpl, err := h.templates.SaveFromDraft(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"template": tmpl,
		"message":  "Template \"" + tmpl.Name + "\" saved!",
	})
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if !confirmDestructive(c, "Are you sure you want to delete this template?") {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted."})
}

// LoadTemplate fills the draft form from a template, keeping today's date.
func (h *TemplateHandler) LoadTemplate(c *gin.Context) {
	tmpl, err := h.templates.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.sessions.LoadTemplateIntoDraft(c.Request.Context(), *tmpl); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft":   h.sessions.Draft(),
		"message": "Template \"" + tmpl.Name + "\" loaded!",
	})
}
