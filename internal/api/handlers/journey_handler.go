package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/zatekoja/surgicalbooking/internal/application/pricing"
	"github.com/zatekoja/surgicalbooking/internal/application/services"
	"github.com/zatekoja/surgicalbooking/internal/application/workflow"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
)

// JourneyService defines the journey operations exposed over HTTP
type JourneyService interface {
	Start(ctx context.Context, sig *entities.ResumeSignal) (*entities.Journey, error)
	Get(ctx context.Context, id string) (*entities.Journey, error)
	Advance(ctx context.Context, id, actionID string, contribution entities.Contribution) (*entities.Journey, bool, error)
	SkipQualifying(ctx context.Context, id, actionID string) (*entities.Journey, bool, error)
	Reset(ctx context.Context, id string) (*entities.Journey, error)
	RegisterIdentity(ctx context.Context, id, actionID string, form entities.IdentityForm) (*entities.Journey, *entities.Identity, error)
	Procedures(ctx context.Context, id string) (services.CatalogResult[entities.Surgery], error)
	Surgeons(ctx context.Context, id string, filter services.SurgeonFilter) ([]entities.Surgeon, error)
	Implants(ctx context.Context, id string, method services.ImplantMethod) (*services.ImplantOptions, error)
	DeferImplant(ctx context.Context, id, actionID string) (*entities.Journey, bool, error)
	Hospitals(ctx context.Context, id string) ([]services.ZoneGroup, error)
	Quote(ctx context.Context, id string) (pricing.Breakdown, error)
}

// FinalizerService defines the booking operations exposed over HTTP
type FinalizerService interface {
	Submit(ctx context.Context, id string) (*entities.Journey, error)
	Pay(ctx context.Context, id string) (*entities.Journey, error)
}

// JourneyHandler handles journey requests
type JourneyHandler struct {
	journeys  JourneyService
	finalizer FinalizerService
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(journeys JourneyService, finalizer FinalizerService) *JourneyHandler {
	return &JourneyHandler{
		journeys:  journeys,
		finalizer: finalizer,
	}
}

// JourneyResponse is the client view of a journey
type JourneyResponse struct {
	ID        string                  `json:"id"`
	StepIndex int                     `json:"step_index"`
	Stage     string                  `json:"stage"`
	Context   entities.BookingContext `json:"context"`
	Checkout  entities.Checkout       `json:"checkout"`
	Version   int64                   `json:"version"`
	Applied   *bool                   `json:"applied,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func newJourneyResponse(j *entities.Journey) JourneyResponse {
	return JourneyResponse{
		ID:        j.ID,
		StepIndex: j.State.StepIndex,
		Stage:     entities.Stage(j.State.StepIndex).String(),
		Context:   j.State.Context,
		Checkout:  j.Checkout,
		Version:   j.Version,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func newCommandResponse(j *entities.Journey, applied bool) JourneyResponse {
	resp := newJourneyResponse(j)
	resp.Applied = &applied
	return resp
}

type createJourneyRequest struct {
	Resume json.RawMessage `json:"resume,omitempty"`
}

type advanceRequest struct {
	ActionID     string                `json:"action_id"`
	Contribution entities.Contribution `json:"contribution"`
}

type actionRequest struct {
	ActionID string `json:"action_id"`
}

type identityRequest struct {
	ActionID string `json:"action_id"`
	entities.IdentityForm
}

type identityResponse struct {
	Journey  JourneyResponse    `json:"journey"`
	Identity *entities.Identity `json:"identity,omitempty"`
}

// CreateJourney handles POST /api/journeys
func (h *JourneyHandler) CreateJourney(w http.ResponseWriter, r *http.Request) {
	var req createJourneyRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var sig *entities.ResumeSignal
	if len(req.Resume) > 0 && string(req.Resume) != "null" {
		parsed, err := workflow.ParseResumeSignal(req.Resume)
		if err != nil {
			respondWithAppError(w, r, err)
			return
		}
		sig = &parsed
	}

	journey, err := h.journeys.Start(r.Context(), sig)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newJourneyResponse(journey))
}

// GetJourney handles GET /api/journeys/{id}
func (h *JourneyHandler) GetJourney(w http.ResponseWriter, r *http.Request) {
	journey, err := h.journeys.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newJourneyResponse(journey))
}

// Advance handles POST /api/journeys/{id}/advance
func (h *JourneyHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.ActionID == "" {
		respondWithError(w, http.StatusBadRequest, "action_id is required")
		return
	}

	journey, applied, err := h.journeys.Advance(r.Context(), r.PathValue("id"), req.ActionID, req.Contribution)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newCommandResponse(journey, applied))
}

// SkipQualifying handles POST /api/journeys/{id}/jump
func (h *JourneyHandler) SkipQualifying(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	journey, applied, err := h.journeys.SkipQualifying(r.Context(), r.PathValue("id"), req.ActionID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newCommandResponse(journey, applied))
}

// Reset handles POST /api/journeys/{id}/reset
func (h *JourneyHandler) Reset(w http.ResponseWriter, r *http.Request) {
	journey, err := h.journeys.Reset(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newJourneyResponse(journey))
}

// RegisterIdentity handles POST /api/journeys/{id}/identity
func (h *JourneyHandler) RegisterIdentity(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.ActionID == "" {
		respondWithError(w, http.StatusBadRequest, "action_id is required")
		return
	}

	journey, identity, err := h.journeys.RegisterIdentity(r.Context(), r.PathValue("id"), req.ActionID, req.IdentityForm)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, identityResponse{
		Journey:  newJourneyResponse(journey),
		Identity: identity,
	})
}

// ListProcedures handles GET /api/journeys/{id}/procedures
func (h *JourneyHandler) ListProcedures(w http.ResponseWriter, r *http.Request) {
	result, err := h.journeys.Procedures(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ListSurgeons handles GET /api/journeys/{id}/surgeons
func (h *JourneyHandler) ListSurgeons(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := services.ParseSurgeonFilter(
		query.Get("experience"),
		query.Get("training"),
		query.Get("online"),
		query.Get("min_rating"),
		query.Get("location"),
	)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	surgeons, err := h.journeys.Surgeons(r.Context(), r.PathValue("id"), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"surgeons": surgeons,
		"count":    len(surgeons),
	})
}

// ListImplants handles GET /api/journeys/{id}/implants
func (h *JourneyHandler) ListImplants(w http.ResponseWriter, r *http.Request) {
	method, err := services.ParseImplantMethod(r.URL.Query().Get("method"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	options, err := h.journeys.Implants(r.Context(), r.PathValue("id"), method)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, options)
}

// DeferImplant handles POST /api/journeys/{id}/implants/defer
func (h *JourneyHandler) DeferImplant(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	journey, applied, err := h.journeys.DeferImplant(r.Context(), r.PathValue("id"), req.ActionID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newCommandResponse(journey, applied))
}

// ListHospitals handles GET /api/journeys/{id}/hospitals
func (h *JourneyHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	groups, err := h.journeys.Hospitals(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"zones": groups,
	})
}

// GetQuote handles GET /api/journeys/{id}/quote
func (h *JourneyHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.journeys.Quote(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, quote)
}

// SubmitBooking handles POST /api/journeys/{id}/booking
func (h *JourneyHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	journey, err := h.finalizer.Submit(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newJourneyResponse(journey))
}

// PayDeposit handles POST /api/journeys/{id}/booking/payment
func (h *JourneyHandler) PayDeposit(w http.ResponseWriter, r *http.Request) {
	journey, err := h.finalizer.Pay(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newJourneyResponse(journey))
}

// decodeOptionalJSON decodes the body into v, treating an empty body as {}
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func logHandlerError(r *http.Request, status int, err error) {
	logger := observability.LoggerFromContext(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("Request failed")
}
