package api

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"allball/practice-server/internal/media"

	"github.com/gin-gonic/gin"
)

// MediaHandler presigns drill-video uploads and downloads. With no bucket
// configured the storage is nil and every route answers 503; drills keep
// working with external video links only.
type MediaHandler struct {
	storage media.VideoStorage
}

func NewMediaHandler(storage media.VideoStorage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

type presignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

func (h *MediaHandler) ensureEnabled(c *gin.Context) bool {
	if h.storage == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Video storage is not configured on this server.")
		return false
	}
	return true
}

// PresignUpload issues a temporary PUT URL for a new drill video. The object
// key namespaces videos per drill; the returned key is what the client
// should store as the drill's videoUrl reference.
func (h *MediaHandler) PresignUpload(c *gin.Context) {
	if !h.ensureEnabled(c) {
		return
	}
	var req presignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "filename and contentType are required")
		return
	}
	if !strings.HasPrefix(req.ContentType, "video/") {
		abortWithError(c, http.StatusBadRequest, "only video uploads are allowed")
		return
	}

	objectKey := fmt.Sprintf("drill-videos/%s/%s", c.Param("id"), path.Base(req.Filename))
	url, err := h.storage.PresignUpload(c.Request.Context(), objectKey, req.ContentType, media.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not presign upload")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": url, "objectKey": objectKey})
}

// PresignDownload issues a temporary GET URL for a stored drill video.
func (h *MediaHandler) PresignDownload(c *gin.Context) {
	if !h.ensureEnabled(c) {
		return
	}
	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "key query parameter is required")
		return
	}
	url, err := h.storage.PresignDownload(c.Request.Context(), objectKey, media.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not presign download")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// DeleteVideo removes a stored drill video object.
func (h *MediaHandler) DeleteVideo(c *gin.Context) {
	if !h.ensureEnabled(c) {
		return
	}
	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "key query parameter is required")
		return
	}
	if err := h.storage.Delete(c.Request.Context(), objectKey); err != nil {
		abortWithError(c, http.StatusInternalServerError, "could not delete video")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted."})
}
