package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type analyzeSketchRequest struct {
	Image    string `json:"image" binding:"required"` // base64 image bytes
	MimeType string `json:"mimeType"`
}

// maxSketchBytes bounds the base64 payload of an uploaded sketch.
const maxSketchBytes = 8 << 20

// AnalyzeSketch handles POST /api/estimator/analyze. An AI failure is a
// recoverable condition: the client is told to retry, nothing else breaks.
func (h *Handler) AnalyzeSketch(c *gin.Context) {
	var req analyzeSketchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Image) > maxSketchBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sketch upload too large"})
		return
	}
	if req.MimeType != "" && !strings.HasPrefix(req.MimeType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported mime type"})
		return
	}

	result, err := h.ai.AnalyzeSketch(c.Request.Context(), req.Image, req.MimeType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Analysis failed. Please try again."})
		return
	}
	c.JSON(http.StatusOK, result)
}
