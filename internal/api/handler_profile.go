package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studio-lab-backend/internal/engine"
	"studio-lab-backend/internal/model"
)

// GetProfile handles GET /api/profile.
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Profile())
}

type updateProfileRequest struct {
	Name              *string                  `json:"name"`
	Email             *string                  `json:"email"`
	StudentID         *string                  `json:"studentId"`
	Bio               *string                  `json:"bio"`
	TrainingCompleted *[]model.MachineCategory `json:"trainingCompleted"`
	ProfileImage      *string                  `json:"profileImage"`
}

// UpdateProfile handles PATCH /api/profile. Absent fields are untouched.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.engine.UpdateProfile(engine.ProfileUpdate{
		Name:              req.Name,
		Email:             req.Email,
		StudentID:         req.StudentID,
		Bio:               req.Bio,
		TrainingCompleted: req.TrainingCompleted,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ProfileImage != nil {
		h.engine.UpdateProfileImage(*req.ProfileImage)
		profile = h.engine.Profile()
	}

	c.JSON(http.StatusOK, profile)
}

// ToggleIncognito handles POST /api/profile/incognito.
func (h *Handler) ToggleIncognito(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isIncognito": h.engine.ToggleIncognito()})
}

// ListMaterials handles GET /api/materials.
func (h *Handler) ListMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Materials())
}

// ListNotifications handles GET /api/notifications, most recent first.
func (h *Handler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.sink.List())
}

// DismissNotification handles DELETE /api/notifications/{notification_id}.
func (h *Handler) DismissNotification(c *gin.Context) {
	h.sink.Dismiss(c.Param("notification_id"))
	c.Status(http.StatusNoContent)
}
