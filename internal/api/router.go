package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"studio-lab-backend/internal/mw"
)

// RouterOptions tunes the middleware applied to the API group.
type RouterOptions struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	if opts.RateLimitPerSec <= 0 {
		opts.RateLimitPerSec = 10
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), opts.RateLimitBurst)

	// The materials catalog is the only collection static enough to cache.
	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/machines", h.ListMachines)
		api.GET("/machines/:machine_id", h.GetMachine)
		api.POST("/machines/:machine_id/bookings", h.BookMachine)
		api.POST("/machines/:machine_id/queue", h.JoinQueue)
		api.DELETE("/machines/:machine_id/queue", h.LeaveQueue)
		api.GET("/machines/:machine_id/wait", h.GetWaitEstimate)
		api.PATCH("/machines/:machine_id/image", h.UpdateMachineImage)
		api.POST("/machines/:machine_id/suggestion", h.SuggestAlternative)

		api.GET("/slots", h.ListSlots)
		api.POST("/slots/:slot_id/booking", h.BookSlot)

		api.GET("/bookings", h.ListBookings)

		api.GET("/assignments", h.ListAssignments)
		api.POST("/assignments", h.CreateAssignment)
		api.PUT("/assignments/:assignment_id", h.UpdateAssignment)
		api.DELETE("/assignments/:assignment_id", h.DeleteAssignment)

		api.GET("/profile", h.GetProfile)
		api.PATCH("/profile", h.UpdateProfile)
		api.POST("/profile/incognito", h.ToggleIncognito)

		api.GET("/materials", caching, h.ListMaterials)

		api.GET("/notifications", h.ListNotifications)
		api.DELETE("/notifications/:notification_id", h.DismissNotification)

		api.POST("/estimator/analyze", h.AnalyzeSketch)

		api.POST("/reset", h.ResetLabData)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
