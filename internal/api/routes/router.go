package routes

import (
	"net/http"

	"github.com/zatekoja/surgicalbooking/internal/api/handlers"
	"github.com/zatekoja/surgicalbooking/internal/api/middleware"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	journeyHandler *handlers.JourneyHandler
	sseHandler     *handlers.SSEHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	journeyHandler *handlers.JourneyHandler,
	sseHandler *handlers.SSEHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		journeyHandler: journeyHandler,
		sseHandler:     sseHandler,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Journey step controller
	r.mux.HandleFunc("POST /api/journeys", r.journeyHandler.CreateJourney)
	r.mux.HandleFunc("GET /api/journeys/{id}", r.journeyHandler.GetJourney)
	r.mux.HandleFunc("POST /api/journeys/{id}/advance", r.journeyHandler.Advance)
	r.mux.HandleFunc("POST /api/journeys/{id}/jump", r.journeyHandler.SkipQualifying)
	r.mux.HandleFunc("POST /api/journeys/{id}/reset", r.journeyHandler.Reset)

	// Stage endpoints
	r.mux.HandleFunc("POST /api/journeys/{id}/identity", r.journeyHandler.RegisterIdentity)
	r.mux.HandleFunc("GET /api/journeys/{id}/procedures", r.journeyHandler.ListProcedures)
	r.mux.HandleFunc("GET /api/journeys/{id}/surgeons", r.journeyHandler.ListSurgeons)
	r.mux.HandleFunc("GET /api/journeys/{id}/implants", r.journeyHandler.ListImplants)
	r.mux.HandleFunc("POST /api/journeys/{id}/implants/defer", r.journeyHandler.DeferImplant)
	r.mux.HandleFunc("GET /api/journeys/{id}/hospitals", r.journeyHandler.ListHospitals)
	r.mux.HandleFunc("GET /api/journeys/{id}/quote", r.journeyHandler.GetQuote)

	// Finalizer
	r.mux.HandleFunc("POST /api/journeys/{id}/booking", r.journeyHandler.SubmitBooking)
	r.mux.HandleFunc("POST /api/journeys/{id}/booking/payment", r.journeyHandler.PayDeposit)

	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/journeys/{id}/events", r.sseHandler.StreamJourneyUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.RecoverMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
