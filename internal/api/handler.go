package api

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"

	"studio-lab-backend/internal/engine"
	"studio-lab-backend/internal/model"
	"studio-lab-backend/internal/notification"
)

// SketchAnalyzer is the AI surface the handlers consume.
type SketchAnalyzer interface {
	AnalyzeSketch(ctx context.Context, imageBase64, mimeType string) (*model.EstimationResult, error)
	SuggestAlternative(ctx context.Context, unavailable model.Machine, roster []model.Machine) string
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	engine  *engine.Engine
	sink    *notification.Sink
	ai      SketchAnalyzer
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(e *engine.Engine, sink *notification.Sink, analyzer SketchAnalyzer, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		engine:  e,
		sink:    sink,
		ai:      analyzer,
		webpush: webpushOptions,
	}
}
