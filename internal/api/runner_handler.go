package api

import (
	"net/http"

	"allball/practice-server/internal/runner"
	"allball/practice-server/internal/service"

	"github.com/gin-gonic/gin"
)

// RunnerHandler serves the live on-court runner and the practice stopwatch.
// Both are in-memory only; restarting the server resets them.
type RunnerHandler struct {
	run      *runner.Runner
	timer    *runner.PracticeTimer
	sessions service.SessionService
}

func NewRunnerHandler(run *runner.Runner, timer *runner.PracticeTimer, sessions service.SessionService) *RunnerHandler {
	return &RunnerHandler{run: run, timer: timer, sessions: sessions}
}

type loadRunnerRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// --- On-court runner ---

// LoadSession queues a persisted session's drills into the runner.
func (h *RunnerHandler) LoadSession(c *gin.Context) {
	var req loadRunnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "A session id is required.")
		return
	}
	sess, err := h.sessions.Get(req.SessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.run.Load(sess.Name, sess.Drills)
	c.JSON(http.StatusOK, h.run.Snapshot())
}

func (h *RunnerHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.run.Snapshot())
}

func (h *RunnerHandler) Start(c *gin.Context) {
	h.run.Start()
	c.JSON(http.StatusOK, h.run.Snapshot())
}

func (h *RunnerHandler) Pause(c *gin.Context) {
	h.run.Pause()
	c.JSON(http.StatusOK, h.run.Snapshot())
}

func (h *RunnerHandler) Reset(c *gin.Context) {
	h.run.Reset()
	c.JSON(http.StatusOK, h.run.Snapshot())
}

func (h *RunnerHandler) AddTime(c *gin.Context) {
	h.run.AddTime()
	c.JSON(http.StatusOK, h.run.Snapshot())
}

func (h *RunnerHandler) Prev(c *gin.Context) {
	h.run.Prev()
	c.JSON(http.StatusOK, h.run.Snapshot())
}

func (h *RunnerHandler) Next(c *gin.Context) {
	h.run.Next()
	c.JSON(http.StatusOK, h.run.Snapshot())
}

func (h *RunnerHandler) MarkDone(c *gin.Context) {
	h.run.MarkDone()
	c.JSON(http.StatusOK, h.run.Snapshot())
}

// --- Practice stopwatch ---

func (h *RunnerHandler) TimerState(c *gin.Context) {
	active, elapsed := h.timer.Elapsed()
	c.JSON(http.StatusOK, gin.H{"active": active, "elapsed": elapsed})
}

func (h *RunnerHandler) TimerStart(c *gin.Context) {
	h.timer.Start()
	h.TimerState(c)
}

func (h *RunnerHandler) TimerPause(c *gin.Context) {
	h.timer.Pause()
	h.TimerState(c)
}

func (h *RunnerHandler) TimerReset(c *gin.Context) {
	h.timer.Reset()
	h.TimerState(c)
}
