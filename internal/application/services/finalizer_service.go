package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zatekoja/surgicalbooking/internal/application/workflow"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/domain/repositories"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// bookingNamespace scopes idempotency keys derived from a completed selection
var bookingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:surgicalbooking:booking"))

// IdempotencyKey derives the booking key for a (patient, surgery, surgeon, hospital)
// tuple. Resubmitting the same selection always yields the same key.
func IdempotencyKey(patientID, surgeryID, surgeonID, hospitalID string) string {
	name := strings.Join([]string{patientID, surgeryID, surgeonID, hospitalID}, "|")
	return uuid.NewSHA1(bookingNamespace, []byte(name)).String()
}

// FinalizerService turns a completed journey into a booking and collects
// the deposit: REVIEW -> BOOKED -> PAID.
type FinalizerService struct {
	journeys *JourneyService
	bookings repositories.BookingRepository
	payments providers.PaymentProvider
}

// NewFinalizerService creates a new finalizer service
func NewFinalizerService(
	journeys *JourneyService,
	bookings repositories.BookingRepository,
	payments providers.PaymentProvider,
) *FinalizerService {
	return &FinalizerService{
		journeys: journeys,
		bookings: bookings,
		payments: payments,
	}
}

// BuildSubmission assembles the booking payload from a completed context
func (s *FinalizerService) BuildSubmission(bc entities.BookingContext) (*entities.Submission, error) {
	var missing []string
	if bc.PatientID == "" {
		missing = append(missing, "patient_id")
	}
	if bc.Surgery == nil {
		missing = append(missing, "surgery")
	}
	if bc.Surgeon == nil {
		missing = append(missing, "surgeon")
	}
	if bc.Hospital == nil {
		missing = append(missing, "hospital")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("booking requires " + strings.Join(missing, ", "))
	}

	quote, err := s.journeys.Calculator().Quote(bc)
	if err != nil {
		return nil, err
	}

	sub := &entities.Submission{
		IdempotencyKey: IdempotencyKey(bc.PatientID, bc.Surgery.ID, bc.Surgeon.ID, bc.Hospital.ID),
		PatientID:      bc.PatientID,
		SurgeryID:      bc.Surgery.ID,
		SurgeonID:      bc.Surgeon.ID,
		HospitalID:     bc.Hospital.ID,
		Total:          quote.Total,
		Deposit:        quote.Deposit,
	}
	if bc.Implant != nil {
		sub.ImplantID = bc.Implant.ID
	}
	return sub, nil
}

// Submit creates the booking for a journey in REVIEW at FINALIZE. Failures
// leave the journey in REVIEW with the error recorded so it can be resubmitted.
func (s *FinalizerService) Submit(ctx context.Context, id string) (*entities.Journey, error) {
	ctx, span := observability.StartSpan(ctx, "FinalizerService.Submit")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.String("journey.id", id))

	journey, err := s.journeys.requireStage(ctx, id, entities.StageFinalize)
	if err != nil {
		return nil, err
	}
	switch journey.Checkout.Phase {
	case entities.CheckoutPhaseBooked, entities.CheckoutPhasePaid:
		return journey, nil
	}

	sub, err := s.BuildSubmission(journey.State.Context)
	if err != nil {
		return nil, err
	}

	logger := observability.LoggerFromContext(ctx)
	booking, err := s.bookings.Create(ctx, &entities.BookingRecord{
		ID:             uuid.New().String(),
		IdempotencyKey: sub.IdempotencyKey,
		PatientID:      sub.PatientID,
		SurgeryID:      sub.SurgeryID,
		SurgeonID:      sub.SurgeonID,
		ImplantID:      sub.ImplantID,
		HospitalID:     sub.HospitalID,
		Total:          sub.Total,
		Deposit:        sub.Deposit,
		Status:         entities.BookingStatusAwaitingPayment,
	})
	if err != nil {
		observability.RecordError(span, err)
		logger.Error().Err(err).Str("journey_id", id).Msg("Booking submission failed")
		if _, rerr := s.journeys.mutate(ctx, id, func(j *entities.Journey) (bool, error) {
			if j.Checkout.Phase != entities.CheckoutPhaseReview {
				return false, nil
			}
			j.Checkout.LastError = "Booking could not be created. Please try again."
			return true, nil
		}); rerr != nil {
			logger.Warn().Err(rerr).Str("journey_id", id).Msg("Failed to record booking error")
		}
		if apperrors.TypeOf(err) == apperrors.ErrorTypeValidation {
			return nil, err
		}
		return nil, apperrors.NewExternalError("booking submission failed, please retry", err)
	}

	// The selection may already have been booked and paid by an earlier
	// journey; that booking is never charged again.
	phase := entities.CheckoutPhaseBooked
	if booking.Status == entities.BookingStatusPaid {
		phase = entities.CheckoutPhasePaid
	}

	journey, err = s.journeys.mutate(ctx, id, func(j *entities.Journey) (bool, error) {
		if j.Checkout.Phase != entities.CheckoutPhaseReview {
			return false, nil
		}
		res, err := workflow.Apply(j.State, workflow.Jump{
			ActionID:     fmt.Sprintf("booking:%s:%d", booking.ID, j.Version),
			Target:       entities.StageFinalize,
			Contribution: &entities.Contribution{Booking: booking.Ref()},
		})
		if err != nil {
			return false, err
		}
		j.State = res.State
		j.Checkout = entities.Checkout{Phase: phase, Booking: booking}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if phase == entities.CheckoutPhasePaid {
		logger.Info().
			Str("journey_id", id).
			Str("booking_id", booking.ID).
			Msg("Selection already booked and paid")
		s.journeys.scopes.Release(id)
		s.journeys.publish(ctx, journey, entities.JourneyEventTypePaymentCompleted, map[string]interface{}{
			"booking_id": booking.ID,
			"amount":     booking.Deposit,
		})
		return journey, nil
	}

	logger.Info().
		Str("journey_id", id).
		Str("booking_id", booking.ID).
		Int64("deposit", booking.Deposit).
		Msg("Booking created")
	observability.RecordBooking(ctx, s.journeys.metrics, string(entities.CheckoutPhaseBooked))
	s.journeys.publish(ctx, journey, entities.JourneyEventTypeBookingCreated, map[string]interface{}{
		"booking_id": booking.ID,
		"total":      booking.Total,
		"deposit":    booking.Deposit,
	})
	return journey, nil
}

// Pay collects the deposit for a BOOKED journey, moving it to PAID
func (s *FinalizerService) Pay(ctx context.Context, id string) (*entities.Journey, error) {
	ctx, span := observability.StartSpan(ctx, "FinalizerService.Pay")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.String("journey.id", id))

	journey, err := s.journeys.requireStage(ctx, id, entities.StageFinalize)
	if err != nil {
		return nil, err
	}
	switch journey.Checkout.Phase {
	case entities.CheckoutPhasePaid:
		return journey, nil
	case entities.CheckoutPhaseBooked:
	default:
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot pay a journey in %s; submit the booking first", journey.Checkout.Phase))
	}

	booking := journey.Checkout.Booking
	if booking == nil {
		return nil, apperrors.NewInternalError("booked journey has no booking", nil)
	}

	// Another journey for the same selection may have paid in the meantime
	stored, err := s.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	var receipt *entities.Receipt
	if stored.Status != entities.BookingStatusPaid {
		receipt, err = s.payments.ChargeDeposit(ctx, booking)
		if err != nil {
			observability.RecordError(span, err)
			return nil, apperrors.NewExternalError("deposit payment failed, please retry", err)
		}
		if err := s.bookings.UpdateStatus(ctx, booking.ID, entities.BookingStatusPaid); err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
	}

	journey, err = s.journeys.mutate(ctx, id, func(j *entities.Journey) (bool, error) {
		if j.Checkout.Phase != entities.CheckoutPhaseBooked || j.Checkout.Booking == nil {
			return false, nil
		}
		paid := *j.Checkout.Booking
		paid.Status = entities.BookingStatusPaid

		res, err := workflow.Apply(j.State, workflow.Jump{
			ActionID:     fmt.Sprintf("payment:%s:%d", paid.ID, j.Version),
			Target:       entities.StageFinalize,
			Contribution: &entities.Contribution{Booking: paid.Ref()},
		})
		if err != nil {
			return false, err
		}
		j.State = res.State
		j.Checkout = entities.Checkout{Phase: entities.CheckoutPhasePaid, Booking: &paid, Receipt: receipt}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	// A paid journey fetches nothing more
	s.journeys.scopes.Release(id)

	logger := observability.LoggerFromContext(ctx)
	if receipt == nil {
		logger.Info().
			Str("journey_id", id).
			Str("booking_id", booking.ID).
			Msg("Booking was already paid")
		return journey, nil
	}

	logger.Info().
		Str("journey_id", id).
		Str("booking_id", booking.ID).
		Str("reference", receipt.Reference).
		Msg("Deposit paid")
	observability.RecordBooking(ctx, s.journeys.metrics, string(entities.CheckoutPhasePaid))
	s.journeys.publish(ctx, journey, entities.JourneyEventTypePaymentCompleted, map[string]interface{}{
		"booking_id": booking.ID,
		"amount":     receipt.Amount,
		"reference":  receipt.Reference,
	})
	return journey, nil
}
