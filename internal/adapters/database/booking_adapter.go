package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/repositories"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

const bookingsTable = "bookings"

// BookingsSchema creates the bookings table. idempotency_key is unique so a
// resubmitted selection resolves to the booking that already exists.
const BookingsSchema = `
CREATE TABLE IF NOT EXISTS bookings (
	id              TEXT PRIMARY KEY,
	idempotency_key TEXT NOT NULL UNIQUE,
	patient_id      TEXT NOT NULL,
	surgery_id      TEXT NOT NULL,
	surgeon_id      TEXT NOT NULL,
	implant_id      TEXT,
	hospital_id     TEXT NOT NULL,
	total           BIGINT NOT NULL,
	deposit         BIGINT NOT NULL,
	status          TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
)`

var bookingColumns = []interface{}{
	"id", "idempotency_key", "patient_id", "surgery_id", "surgeon_id",
	"implant_id", "hospital_id", "total", "deposit", "status",
	"created_at", "updated_at",
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
	now    func() time.Time
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		now:    time.Now,
	}
}

// InitSchema creates the bookings table if it does not exist
func InitSchema(ctx context.Context, client *postgres.Client) error {
	if _, err := client.DB().ExecContext(ctx, BookingsSchema); err != nil {
		return apperrors.NewInternalError("failed to create bookings table", err)
	}
	return nil
}

// Create inserts the booking unless one with the same idempotency key exists,
// then returns the stored row.
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.BookingRecord) (*entities.BookingRecord, error) {
	if booking.IdempotencyKey == "" {
		return nil, apperrors.NewValidationError("idempotency key is required")
	}

	now := a.now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	record := goqu.Record{
		"id":              booking.ID,
		"idempotency_key": booking.IdempotencyKey,
		"patient_id":      booking.PatientID,
		"surgery_id":      booking.SurgeryID,
		"surgeon_id":      booking.SurgeonID,
		"implant_id":      nullString(booking.ImplantID),
		"hospital_id":     booking.HospitalID,
		"total":           booking.Total,
		"deposit":         booking.Deposit,
		"status":          booking.Status,
		"created_at":      booking.CreatedAt,
		"updated_at":      booking.UpdatedAt,
	}

	query, args, err := a.db.Insert(bookingsTable).
		Rows(record).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to create booking", err)
	}

	return a.getBy(ctx, goqu.Ex{"idempotency_key": booking.IdempotencyKey})
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.BookingRecord, error) {
	return a.getBy(ctx, goqu.Ex{"id": id})
}

// UpdateStatus moves a booking to a new status
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	query, args, err := a.db.Update(bookingsTable).
		Set(goqu.Record{
			"status":     status,
			"updated_at": a.now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	return nil
}

func (a *BookingAdapter) getBy(ctx context.Context, where goqu.Ex) (*entities.BookingRecord, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From(bookingsTable).
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking := &entities.BookingRecord{}
	var implantID sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.IdempotencyKey,
		&booking.PatientID,
		&booking.SurgeryID,
		&booking.SurgeonID,
		&implantID,
		&booking.HospitalID,
		&booking.Total,
		&booking.Deposit,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	booking.ImplantID = implantID.String
	return booking, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
