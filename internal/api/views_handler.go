package api

import (
	"fmt"
	"net/http"

	"allball/practice-server/internal/domain"
	"allball/practice-server/internal/service"
	"allball/practice-server/internal/views"

	"github.com/gin-gonic/gin"
)

// ViewsHandler serves the computed read-side screens: the dashboard
// aggregates and the station rotation generator. The dashboard route sits
// behind the analytics capability.
type ViewsHandler struct {
	sessions service.SessionService
	players  service.PlayerService
}

func NewViewsHandler(sessions service.SessionService, players service.PlayerService) *ViewsHandler {
	return &ViewsHandler{sessions: sessions, players: players}
}

type rotationRequest struct {
	PlayerIDs   []string `json:"playerIds"`
	NumStations int      `json:"numStations"`
	// Stations optionally names each station and the drill run there. When
	// present, the station count is taken from its length.
	Stations []domain.StationConfig `json:"stations"`
}

func (h *ViewsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, views.Dashboard(h.sessions.List()))
}

// GenerateRotation builds a station rotation for the selected players. With
// no explicit selection the whole roster rotates. Station configs are echoed
// back alongside the schedule; they are never persisted.
func (h *ViewsHandler) GenerateRotation(c *gin.Context) {
	var req rotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please enter a valid number of stations.")
		return
	}

	numStations := req.NumStations
	stations := req.Stations
	if len(stations) > 0 {
		numStations = len(stations)
	} else {
		for i := 1; i <= numStations; i++ {
			stations = append(stations, domain.StationConfig{Name: fmt.Sprintf("Station %d", i)})
		}
	}

	playerIDs := req.PlayerIDs
	if len(playerIDs) == 0 {
		for _, p := range h.players.List("name") {
			playerIDs = append(playerIDs, p.ID)
		}
	}

	rotation, err := views.GenerateRotation(playerIDs, numStations)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stations": stations,
		"groups":   rotation.Groups,
		"schedule": rotation.Schedule,
	})
}
