package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studio-lab-backend/internal/engine"
	"studio-lab-backend/internal/model"
)

// ListAssignments handles GET /api/assignments.
func (h *Handler) ListAssignments(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Assignments())
}

// CreateAssignment handles POST /api/assignments.
func (h *Handler) CreateAssignment(c *gin.Context) {
	var a model.Assignment
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.engine.AddAssignment(a)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateAssignment handles PUT /api/assignments/{assignment_id}.
func (h *Handler) UpdateAssignment(c *gin.Context) {
	var a model.Assignment
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.ID = c.Param("assignment_id")

	if err := h.engine.UpdateAssignment(a); err != nil {
		if errors.Is(err, engine.ErrAssignmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAssignment handles DELETE /api/assignments/{assignment_id}.
func (h *Handler) DeleteAssignment(c *gin.Context) {
	if err := h.engine.DeleteAssignment(c.Param("assignment_id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
