package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studio-lab-backend/internal/engine"
	"studio-lab-backend/internal/model"
)

// ListMachines handles GET /api/machines, optionally filtered by category.
func (h *Handler) ListMachines(c *gin.Context) {
	machines := h.engine.Machines()

	if raw := c.Query("category"); raw != "" {
		category := model.MachineCategory(raw)
		if !category.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown lab category"})
			return
		}
		filtered := make([]model.Machine, 0, len(machines))
		for _, m := range machines {
			if m.Category == category {
				filtered = append(filtered, m)
			}
		}
		machines = filtered
	}

	c.JSON(http.StatusOK, machines)
}

// GetMachine handles GET /api/machines/{machine_id}.
func (h *Handler) GetMachine(c *gin.Context) {
	machine, err := h.engine.Machine(c.Param("machine_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}
	c.JSON(http.StatusOK, machine)
}

type bookMachineRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// BookMachine handles POST /api/machines/{machine_id}/bookings.
func (h *Handler) BookMachine(c *gin.Context) {
	var req bookMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.EndTime.After(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endTime must be after startTime"})
		return
	}

	booking, err := h.engine.BookMachine(c.Param("machine_id"), req.StartTime, req.EndTime)
	if err != nil {
		h.reservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// JoinQueue handles POST /api/machines/{machine_id}/queue.
func (h *Handler) JoinQueue(c *gin.Context) {
	entry, err := h.engine.JoinQueue(c.Param("machine_id"))
	if err != nil {
		h.reservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// LeaveQueue handles DELETE /api/machines/{machine_id}/queue.
func (h *Handler) LeaveQueue(c *gin.Context) {
	if err := h.engine.LeaveQueue(c.Param("machine_id")); err != nil {
		h.reservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetWaitEstimate handles GET /api/machines/{machine_id}/wait. The value is
// advisory only.
func (h *Handler) GetWaitEstimate(c *gin.Context) {
	minutes, err := h.engine.WaitEstimateMinutes(c.Param("machine_id"))
	if err != nil {
		h.reservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimatedWaitMinutes": minutes})
}

type updateImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// maxImageBytes bounds uploaded machine photos (data URLs included).
const maxImageBytes = 4 << 20

// UpdateMachineImage handles PATCH /api/machines/{machine_id}/image.
func (h *Handler) UpdateMachineImage(c *gin.Context) {
	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Image) > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	if err := h.engine.UpdateMachineImage(c.Param("machine_id"), req.Image); err != nil {
		h.reservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestAlternative handles POST /api/machines/{machine_id}/suggestion.
// The AI call never propagates an error; failures produce fallback text.
func (h *Handler) SuggestAlternative(c *gin.Context) {
	machine, err := h.engine.Machine(c.Param("machine_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}

	suggestion := h.ai.SuggestAlternative(c.Request.Context(), machine, h.engine.Machines())
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

// reservationError maps engine errors to HTTP statuses. Policy rejections
// are declined operations, not server failures.
func (h *Handler) reservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrMachineNotFound), errors.Is(err, engine.ErrSlotNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, engine.ErrIdentityRequired):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Identification required: disable incognito mode"})
	case errors.Is(err, engine.ErrTrainingRequired):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Safety certification missing"})
	case errors.Is(err, engine.ErrMachineUnavailable):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Machine is not available"})
	case errors.Is(err, engine.ErrAlreadyQueued):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Already in this queue"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
