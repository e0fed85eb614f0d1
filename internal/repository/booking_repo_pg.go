package repository

import (
	"context"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	AttachPassenger(ctx context.Context, bookingID, passengerID int64) (*domain.BookingPassenger, error)
	GetPassenger(ctx context.Context, bookingPassengerID int64) (*domain.BookingPassenger, error)
	ListPassengers(ctx context.Context, bookingID int64) ([]domain.PassengerOnBooking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (reference, customer_id, flight_id, booking_date, payment_status, total_amount)
		VALUES ($1, $2, $3, now(), $4, $5)
		RETURNING id, booking_date`, booking.Reference, booking.CustomerID, booking.FlightID, booking.PaymentStatus, booking.TotalAmount).
		Scan(&booking.ID, &booking.BookingDate)
	return translate("create booking", err)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, customer_id, flight_id, booking_date, payment_status, total_amount FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.CustomerID, &b.FlightID, &b.BookingDate, &b.PaymentStatus, &b.TotalAmount); err != nil {
		return nil, translate("get booking", err)
	}
	return &b, nil
}

// AttachPassenger relies on the booking_passengers unique constraint on
// (booking_id, passenger_id); a duplicate pair surfaces as Conflict.
func (r *PGBookingRepository) AttachPassenger(ctx context.Context, bookingID, passengerID int64) (*domain.BookingPassenger, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO booking_passengers (booking_id, passenger_id) VALUES ($1, $2) RETURNING id`, bookingID, passengerID)
	bp := domain.BookingPassenger{BookingID: bookingID, PassengerID: passengerID}
	if err := row.Scan(&bp.ID); err != nil {
		return nil, translate("attach passenger", err)
	}
	return &bp, nil
}

func (r *PGBookingRepository) GetPassenger(ctx context.Context, bookingPassengerID int64) (*domain.BookingPassenger, error) {
	row := r.db.QueryRow(ctx, `SELECT id, booking_id, passenger_id FROM booking_passengers WHERE id=$1`, bookingPassengerID)
	var bp domain.BookingPassenger
	if err := row.Scan(&bp.ID, &bp.BookingID, &bp.PassengerID); err != nil {
		return nil, translate("get booking passenger", err)
	}
	return &bp, nil
}

func (r *PGBookingRepository) ListPassengers(ctx context.Context, bookingID int64) ([]domain.PassengerOnBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT bp.id, p.id, p.first_name, p.last_name
		FROM booking_passengers bp
		JOIN passengers p ON bp.passenger_id = p.id
		WHERE bp.booking_id=$1
		ORDER BY p.last_name, p.first_name`, bookingID)
	if err != nil {
		return nil, translate("list passengers", err)
	}
	defer rows.Close()

	passengers := make([]domain.PassengerOnBooking, 0)
	for rows.Next() {
		var p domain.PassengerOnBooking
		if err := rows.Scan(&p.BookingPassengerID, &p.PassengerID, &p.FirstName, &p.LastName); err != nil {
			return nil, translate("list passengers", err)
		}
		passengers = append(passengers, p)
	}
	return passengers, translate("list passengers", rows.Err())
}

var _ BookingRepository = (*PGBookingRepository)(nil)
