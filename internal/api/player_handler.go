package api

import (
	"net/http"

	"allball/practice-server/internal/domain"
	"allball/practice-server/internal/service"
	"allball/practice-server/internal/views"

	"github.com/gin-gonic/gin"
)

// PlayerHandler holds the roster container plus the drill library needed for
// the analytics views.
type PlayerHandler struct {
	players service.PlayerService
	drills  service.DrillService
}

func NewPlayerHandler(players service.PlayerService, drills service.DrillService) *PlayerHandler {
	return &PlayerHandler{players: players, drills: drills}
}

// --- DTOs ---

type addPlayerRequest struct {
	Name   string `json:"name" binding:"required"`
	Jersey string `json:"jersey"`
}

type performanceRequest struct {
	Date           string `json:"date" binding:"required"`
	DrillID        string `json:"drillId" binding:"required"`
	ShotsMade      int    `json:"shotsMade"`
	ShotsAttempted int    `json:"shotsAttempted"`
}

// --- Handler Methods ---

// ListPlayers returns the roster, sorted by name or jersey.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"players": h.players.List(c.DefaultQuery("sortBy", "name"))})
}

func (h *PlayerHandler) AddPlayer(c *gin.Context) {
	var req addPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Player name cannot be empty.")
		return
	}
	player, err := h.players.Add(c.Request.Context(), req.Name, req.Jersey)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"player":  player,
		"message": "Player \"" + player.Name + "\" added!",
	})
}

// RemovePlayer deletes a player after confirmation. Deletion cascades into
// drill assignments and the session draft.
func (h *PlayerHandler) RemovePlayer(c *gin.Context) {
	if !confirmDestructive(c, "Are you sure you want to delete this player? This will also remove them from all assigned drills and current session form.") {
		return
	}
	if err := h.players.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player deleted successfully."})
}

func (h *PlayerHandler) AddPerformanceRecord(c *gin.Context) {
	var req performanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please select a player, date, drill, and enter valid performance metrics.")
		return
	}
	rec := domain.PerformanceRecord{
		Date:    req.Date,
		DrillID: req.DrillID,
		Metrics: domain.ShotMetrics{ShotsMade: req.ShotsMade, ShotsAttempted: req.ShotsAttempted},
	}
	if err := h.players.AddPerformanceRecord(c.Request.Context(), c.Param("id"), rec); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Performance record added!"})
}

// PlayerSummary is the analytics card: aggregate shooting percentage plus
// the latest recorded performance.
func (h *PlayerHandler) PlayerSummary(c *gin.Context) {
	player, err := h.players.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.SummarizePlayer(*player))
}

// SuggestedDrills recommends shooting drills for players under the policy
// threshold.
func (h *PlayerHandler) SuggestedDrills(c *gin.Context) {
	player, err := h.players.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": views.SuggestDrills(*player, h.drills.List())})
}
