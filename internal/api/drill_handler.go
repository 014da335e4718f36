package api

import (
	"errors"
	"net/http"
	"sync"

	"allball/practice-server/internal/domain"
	"allball/practice-server/internal/service"
	"allball/practice-server/internal/views"

	"github.com/gin-gonic/gin"
)

// DrillHandler holds the drill library container plus the server-side filter
// state for the planner screen. The search term is debounced before it takes
// effect, so the filtered list doesn't churn per keystroke.
type DrillHandler struct {
	drills        service.DrillService
	plannerSearch *views.SearchState

	mu         sync.RWMutex
	skill      string
	difficulty string
}

func NewDrillHandler(drills service.DrillService) *DrillHandler {
	return &DrillHandler{
		drills:        drills,
		plannerSearch: views.NewSearchState(views.DefaultSearchDebounce),
		skill:         views.FilterAll,
		difficulty:    views.FilterAll,
	}
}

// Close releases the debounce timer.
func (h *DrillHandler) Close() {
	h.plannerSearch.Close()
}

// --- DTOs ---

type drillRequest struct {
	Title           string   `json:"title" binding:"required"`
	Duration        int      `json:"duration" binding:"required"`
	Skill           string   `json:"skill"`
	Difficulty      string   `json:"difficulty"`
	Notes           string   `json:"notes"`
	VideoURL        string   `json:"videoUrl"`
	AssignedPlayers []string `json:"assignedPlayers"`
}

type drillFilterRequest struct {
	Search     *string `json:"search"`
	Skill      *string `json:"skill"`
	Difficulty *string `json:"difficulty"`
}

func (r drillRequest) toInput() service.DrillInput {
	return service.DrillInput{
		Title:           r.Title,
		Duration:        r.Duration,
		Skill:           domain.Skill(r.Skill),
		Difficulty:      domain.Difficulty(r.Difficulty),
		Notes:           r.Notes,
		VideoURL:        r.VideoURL,
		AssignedPlayers: r.AssignedPlayers,
	}
}

// --- Handler Methods ---

// ListDrills returns the whole library.
func (h *DrillHandler) ListDrills(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"drills": h.drills.List()})
}

// SetFilter updates the planner filter state. Skill and difficulty apply
// immediately; the search term becomes effective after the debounce window.
func (h *DrillHandler) SetFilter(c *gin.Context) {
	var req drillFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid filter payload.")
		return
	}
	if req.Search != nil {
		h.plannerSearch.Set(*req.Search)
	}
	h.mu.Lock()
	if req.Skill != nil {
		h.skill = *req.Skill
	}
	if req.Difficulty != nil {
		h.difficulty = *req.Difficulty
	}
	skill, difficulty := h.skill, h.difficulty
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"search":     h.plannerSearch.Raw(),
		"skill":      skill,
		"difficulty": difficulty,
	})
}

// FilteredDrills applies the current planner filter to the library.
func (h *DrillHandler) FilteredDrills(c *gin.Context) {
	h.mu.RLock()
	filter := views.DrillFilter{
		Search:     h.plannerSearch.Effective(),
		Skill:      h.skill,
		Difficulty: h.difficulty,
	}
	h.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"drills": views.FilterDrills(h.drills.List(), filter),
		"filter": gin.H{"search": filter.Search, "skill": filter.Skill, "difficulty": filter.Difficulty},
	})
}

// ManageDrills is the broader manage-screen search over title and notes.
// This one filters directly on the query parameter.
func (h *DrillHandler) ManageDrills(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"drills": views.FilterManageDrills(h.drills.List(), c.Query("search")),
	})
}

func (h *DrillHandler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": h.drills.Presets()})
}

func (h *DrillHandler) CreateDrill(c *gin.Context) {
	var req drillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please enter a valid drill title and positive duration.")
		return
	}
	drill, err := h.drills.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"drill":   drill,
		"message": "Drill \"" + drill.Title + "\" added!",
	})
}

func (h *DrillHandler) UpdateDrill(c *gin.Context) {
	var req drillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please enter a valid drill title and positive duration.")
		return
	}
	drill, err := h.drills.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"drill":   drill,
		"message": "Drill \"" + drill.Title + "\" updated!",
	})
}

// DeleteDrill removes a library drill after confirmation. Sessions that
// embedded it keep their snapshots.
func (h *DrillHandler) DeleteDrill(c *gin.Context) {
	if !confirmDestructive(c, "Are you sure you want to delete this drill from the library? This will not affect existing sessions that use this drill.") {
		return
	}
	if err := h.drills.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Drill deleted from library."})
}

// DrillVideo resolves the drill's demo video link. No video is a toast-style
// error, not a modal.
func (h *DrillHandler) DrillVideo(c *gin.Context) {
	url, err := h.drills.VideoURL(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoVideo) {
			abortWithError(c, http.StatusBadRequest, "No video available for this drill.")
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
