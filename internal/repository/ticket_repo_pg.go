package repository

import (
	"context"
	"fmt"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	ResolveAssignment(ctx context.Context, bookingPassengerID int64) (*domain.Assignment, error)
	Issue(ctx context.Context, ticket *domain.Ticket) error
	ListAvailableSeats(ctx context.Context, flightID, aircraftID int64) ([]domain.Seat, error)
	TakenSeatIDs(ctx context.Context, flightID int64) (map[int64]struct{}, error)
	ListForBooking(ctx context.Context, bookingID int64) ([]domain.TicketDetails, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

// ResolveAssignment follows booking passenger -> booking -> flight and
// returns the ids the allocation engine needs in one read.
func (r *PGTicketRepository) ResolveAssignment(ctx context.Context, bookingPassengerID int64) (*domain.Assignment, error) {
	row := r.db.QueryRow(ctx, `SELECT bp.id, b.id, b.flight_id, f.aircraft_id
		FROM booking_passengers bp
		JOIN bookings b ON bp.booking_id = b.id
		JOIN flights f ON b.flight_id = f.id
		WHERE bp.id=$1`, bookingPassengerID)
	var a domain.Assignment
	if err := row.Scan(&a.BookingPassengerID, &a.BookingID, &a.FlightID, &a.AircraftID); err != nil {
		return nil, translate("resolve assignment", err)
	}
	return &a, nil
}

// Issue inserts the ticket in a single transaction. The availability
// check and the insert run under the same snapshot; the unique
// constraints on (flight_id, seat_id) and (booking_passenger_id) are
// the authoritative guard, so a race between two issuers resolves to
// exactly one commit and one Conflict. A canceled context rolls the
// transaction back and leaves no row.
func (r *PGTicketRepository) Issue(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return translate("issue ticket", err)
	}
	defer tx.Rollback(ctx)

	var taken bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE flight_id=$1 AND seat_id=$2)`, ticket.FlightID, ticket.SeatID).Scan(&taken); err != nil {
		return translate("issue ticket", err)
	}
	if taken {
		return fmt.Errorf("seat %d already ticketed for flight %d: %w", ticket.SeatID, ticket.FlightID, domain.ErrConflict)
	}

	var ticketed bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE booking_passenger_id=$1)`, ticket.BookingPassengerID).Scan(&ticketed); err != nil {
		return translate("issue ticket", err)
	}
	if ticketed {
		return fmt.Errorf("booking passenger %d already holds a ticket: %w", ticket.BookingPassengerID, domain.ErrConflict)
	}

	if err := tx.QueryRow(ctx, `INSERT INTO tickets (booking_passenger_id, seat_id, flight_id, ticket_number, price_paid)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, issued_at`, ticket.BookingPassengerID, ticket.SeatID, ticket.FlightID, ticket.TicketNumber, ticket.PricePaid).
		Scan(&ticket.ID, &ticket.IssuedAt); err != nil {
		return translate("issue ticket", err)
	}

	return translate("issue ticket", tx.Commit(ctx))
}

func (r *PGTicketRepository) ListAvailableSeats(ctx context.Context, flightID, aircraftID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT s.id, s.aircraft_id, s.seat_number, s.seat_class
		FROM seats s
		WHERE s.aircraft_id=$1
		  AND s.id NOT IN (SELECT t.seat_id FROM tickets t WHERE t.flight_id=$2)
		ORDER BY s.seat_number`, aircraftID, flightID)
	if err != nil {
		return nil, translate("available seats", err)
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.AircraftID, &s.SeatNumber, &s.SeatClass); err != nil {
			return nil, translate("available seats", err)
		}
		seats = append(seats, s)
	}
	return seats, translate("available seats", rows.Err())
}

// TakenSeatIDs reads the same ticketed-for-this-flight predicate the
// issuing transaction enforces, so the availability views cannot
// diverge from enforcement.
func (r *PGTicketRepository) TakenSeatIDs(ctx context.Context, flightID int64) (map[int64]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_id FROM tickets WHERE flight_id=$1`, flightID)
	if err != nil {
		return nil, translate("taken seats", err)
	}
	defer rows.Close()

	taken := make(map[int64]struct{})
	for rows.Next() {
		var seatID int64
		if err := rows.Scan(&seatID); err != nil {
			return nil, translate("taken seats", err)
		}
		taken[seatID] = struct{}{}
	}
	return taken, translate("taken seats", rows.Err())
}

func (r *PGTicketRepository) ListForBooking(ctx context.Context, bookingID int64) ([]domain.TicketDetails, error) {
	rows, err := r.db.Query(ctx, `SELECT t.id, t.ticket_number, t.price_paid, p.first_name, p.last_name, s.seat_number, s.seat_class
		FROM tickets t
		JOIN booking_passengers bp ON t.booking_passenger_id = bp.id
		JOIN passengers p ON bp.passenger_id = p.id
		JOIN seats s ON t.seat_id = s.id
		WHERE bp.booking_id=$1
		ORDER BY p.last_name, p.first_name`, bookingID)
	if err != nil {
		return nil, translate("tickets for booking", err)
	}
	defer rows.Close()

	tickets := make([]domain.TicketDetails, 0)
	for rows.Next() {
		var t domain.TicketDetails
		if err := rows.Scan(&t.TicketID, &t.TicketNumber, &t.PricePaid, &t.FirstName, &t.LastName, &t.SeatNumber, &t.SeatClass); err != nil {
			return nil, translate("tickets for booking", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, translate("tickets for booking", rows.Err())
}

var _ TicketRepository = (*PGTicketRepository)(nil)
