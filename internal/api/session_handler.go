package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"allball/practice-server/internal/domain"
	"allball/practice-server/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves persisted practice sessions plus the draft form
// endpoints. The drill service is needed to resolve library drills being
// added to the draft.
type SessionHandler struct {
	sessions service.SessionService
	drills   service.DrillService
}

func NewSessionHandler(sessions service.SessionService, drills service.DrillService) *SessionHandler {
	return &SessionHandler{sessions: sessions, drills: drills}
}

// --- DTOs ---

type draftInfoRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Notes    string `json:"notes"`
}

type addDraftDrillRequest struct {
	DrillID string `json:"drillId" binding:"required"`
}

type reorderRequest struct {
	DragUniqueID string `json:"dragUniqueId" binding:"required"`
	DropUniqueID string `json:"dropUniqueId" binding:"required"`
}

type draftMetricRequest struct {
	UniqueID       string `json:"uniqueId" binding:"required"`
	PlayerID       string `json:"playerId" binding:"required"`
	ShotsMade      int    `json:"shotsMade"`
	ShotsAttempted int    `json:"shotsAttempted"`
}

// --- Persisted sessions ---

func (h *SessionHandler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": h.sessions.List()})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if !confirmDestructive(c, "Are you sure you want to delete this session?") {
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted."})
}

func (h *SessionHandler) DuplicateSession(c *gin.Context) {
	dup, err := h.sessions.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session": dup,
		"message": "Session duplicated!",
	})
}

// ExportSession renders a plain-text summary suitable for printing or
// sharing with the team.
func (h *SessionHandler) ExportSession(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sess.Name+".txt"))
	c.String(http.StatusOK, formatSessionExport(*sess))
}

func formatSessionExport(sess domain.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Practice Plan: %s\n", sess.Name)
	fmt.Fprintf(&b, "Date: %s\n", sess.Date)
	fmt.Fprintf(&b, "Category: %s\n", sess.Category)
	fmt.Fprintf(&b, "Total Duration: %d minutes\n\n", domain.TotalDuration(sess.Drills))
	b.WriteString("Drills:\n")
	for i, d := range sess.Drills {
		fmt.Fprintf(&b, "%d. %s (%d min) - %s / %s\n", i+1, d.Title, d.Duration, d.Skill, d.Difficulty)
		if d.Notes != "" {
			fmt.Fprintf(&b, "   Notes: %s\n", d.Notes)
		}
	}
	if sess.Notes != "" {
		fmt.Fprintf(&b, "\nSession Notes: %s\n", sess.Notes)
	}
	return b.String()
}

// --- Draft form ---

func (h *SessionHandler) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.Draft())
}

func (h *SessionHandler) UpdateDraftInfo(c *gin.Context) {
	var req draftInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session details.")
		return
	}
	info := service.DraftInfo{
		Date:     req.Date,
		Category: domain.Category(req.Category),
		Name:     req.Name,
		Notes:    req.Notes,
	}
	if err := h.sessions.UpdateDraftInfo(c.Request.Context(), info); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessions.Draft())
}

// AddDraftDrill resolves the library drill and embeds a fresh instance of it
// in the draft.
func (h *SessionHandler) AddDraftDrill(c *gin.Context) {
	var req addDraftDrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "A drill id is required.")
		return
	}
	drill, err := h.drills.Get(req.DrillID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	instance, err := h.sessions.AddDrillToDraft(c.Request.Context(), *drill)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"drill": instance})
}

func (h *SessionHandler) RemoveDraftDrill(c *gin.Context) {
	if err := h.sessions.RemoveDrillFromDraft(c.Request.Context(), c.Param("uniqueId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessions.Draft())
}

func (h *SessionHandler) ReorderDraftDrills(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Both drag and drop drill instances are required.")
		return
	}
	if err := h.sessions.ReorderDraftDrills(c.Request.Context(), req.DragUniqueID, req.DropUniqueID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessions.Draft())
}

func (h *SessionHandler) SetDraftMetric(c *gin.Context) {
	var req draftMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "A drill instance and player are required.")
		return
	}
	metrics := domain.ShotMetrics{ShotsMade: req.ShotsMade, ShotsAttempted: req.ShotsAttempted}
	if err := h.sessions.SetDraftMetric(c.Request.Context(), req.UniqueID, req.PlayerID, metrics); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Metrics recorded."})
}

// SaveDraft persists the form, creating or updating depending on whether an
// edit is in progress, and resets it.
func (h *SessionHandler) SaveDraft(c *gin.Context) {
	sess, err := h.sessions.SaveDraft(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session": sess,
		"message": "Session saved!",
	})
}

func (h *SessionHandler) CancelDraft(c *gin.Context) {
	if err := h.sessions.CancelDraft(c.Request.Context()); err != nil {
		if errors.Is(err, service.ErrNothingToCancel) {
			abortWithError(c, http.StatusConflict, "There is nothing to cancel.")
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Changes discarded."})
}

// EditSession loads a persisted session into the draft form.
func (h *SessionHandler) EditSession(c *gin.Context) {
	if err := h.sessions.EditSession(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessions.Draft())
}
