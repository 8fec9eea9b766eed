package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSlots handles GET /api/slots.
func (h *Handler) ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Slots())
}

// BookSlot handles POST /api/slots/{slot_id}/booking. Re-booking an
// already-booked slot succeeds without effect.
func (h *Handler) BookSlot(c *gin.Context) {
	if err := h.engine.BookSlot(c.Param("slot_id")); err != nil {
		h.reservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBookings handles GET /api/bookings.
func (h *Handler) ListBookings(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Bookings())
}

// ResetLabData handles POST /api/reset.
func (h *Handler) ResetLabData(c *gin.Context) {
	h.engine.ResetLabData()
	c.Status(http.StatusNoContent)
}
