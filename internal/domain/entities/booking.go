package entities

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusAwaitingPayment BookingStatus = "awaiting_payment"
	BookingStatusPaid            BookingStatus = "paid"
)

// Submission is the payload handed to the booking-creation collaborator
type Submission struct {
	IdempotencyKey string `json:"idempotency_key"`
	PatientID      string `json:"patient_id"`
	SurgeryID      string `json:"surgery_id"`
	SurgeonID      string `json:"surgeon_id"`
	ImplantID      string `json:"implant_id,omitempty"`
	HospitalID     string `json:"hospital_id"`
	Total          int64  `json:"total"`
	Deposit        int64  `json:"deposit"`
}

// BookingRecord represents a created booking
type BookingRecord struct {
	ID             string        `json:"id" db:"id"`
	IdempotencyKey string        `json:"idempotency_key" db:"idempotency_key"`
	PatientID      string        `json:"patient_id" db:"patient_id"`
	SurgeryID      string        `json:"surgery_id" db:"surgery_id"`
	SurgeonID      string        `json:"surgeon_id" db:"surgeon_id"`
	ImplantID      string        `json:"implant_id,omitempty" db:"implant_id"`
	HospitalID     string        `json:"hospital_id" db:"hospital_id"`
	Total          int64         `json:"total" db:"total"`
	Deposit        int64         `json:"deposit" db:"deposit"`
	Status         BookingStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// Ref returns the compact reference stored on the booking context
func (b *BookingRecord) Ref() *BookingRef {
	return &BookingRef{ID: b.ID, Status: b.Status}
}

// Receipt summarizes a completed deposit payment
type Receipt struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Reference string    `json:"reference"`
	PaidAt    time.Time `json:"paid_at"`
}

// CheckoutPhase is the finalization sub-state
type CheckoutPhase string

const (
	CheckoutPhaseReview CheckoutPhase = "REVIEW"
	CheckoutPhaseBooked CheckoutPhase = "BOOKED"
	CheckoutPhasePaid   CheckoutPhase = "PAID"
)

// Checkout holds the finalization progress of a journey
type Checkout struct {
	Phase     CheckoutPhase  `json:"phase"`
	Booking   *BookingRecord `json:"booking,omitempty"`
	Receipt   *Receipt       `json:"receipt,omitempty"`
	LastError string         `json:"last_error,omitempty"`
}
