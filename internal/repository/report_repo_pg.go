package repository

import (
	"context"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository serves the read-only aggregations. No invariants of
// its own, never writes.
type ReportRepository interface {
	FlightRevenue(ctx context.Context) ([]domain.FlightRevenue, error)
	BrandRevenue(ctx context.Context) ([]domain.BrandRevenue, error)
	AllTickets(ctx context.Context) ([]domain.TicketReportRow, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) FlightRevenue(ctx context.Context) ([]domain.FlightRevenue, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, f.flight_number,
		COUNT(t.id) AS ticket_count,
		COALESCE(SUM(t.price_paid), 0) AS total_revenue
		FROM flights f
		LEFT JOIN tickets t ON t.flight_id = f.id
		GROUP BY f.id, f.flight_number
		ORDER BY total_revenue DESC`)
	if err != nil {
		return nil, translate("flight revenue", err)
	}
	defer rows.Close()

	report := make([]domain.FlightRevenue, 0)
	for rows.Next() {
		var row domain.FlightRevenue
		if err := rows.Scan(&row.FlightID, &row.FlightNumber, &row.TicketCount, &row.TotalRevenue); err != nil {
			return nil, translate("flight revenue", err)
		}
		report = append(report, row)
	}
	return report, translate("flight revenue", rows.Err())
}

func (r *PGReportRepository) BrandRevenue(ctx context.Context) ([]domain.BrandRevenue, error) {
	rows, err := r.db.Query(ctx, `SELECT ab.id, ab.name,
		COUNT(t.id) AS ticket_count,
		COALESCE(SUM(t.price_paid), 0) AS total_revenue
		FROM airline_brands ab
		LEFT JOIN flights f ON f.brand_id = ab.id
		LEFT JOIN tickets t ON t.flight_id = f.id
		GROUP BY ab.id, ab.name
		ORDER BY total_revenue DESC`)
	if err != nil {
		return nil, translate("brand revenue", err)
	}
	defer rows.Close()

	report := make([]domain.BrandRevenue, 0)
	for rows.Next() {
		var row domain.BrandRevenue
		if err := rows.Scan(&row.BrandID, &row.BrandName, &row.TicketCount, &row.TotalRevenue); err != nil {
			return nil, translate("brand revenue", err)
		}
		report = append(report, row)
	}
	return report, translate("brand revenue", rows.Err())
}

func (r *PGReportRepository) AllTickets(ctx context.Context) ([]domain.TicketReportRow, error) {
	rows, err := r.db.Query(ctx, `SELECT t.id, t.ticket_number, t.price_paid,
		p.first_name || ' ' || p.last_name,
		c.first_name || ' ' || c.last_name,
		b.id, b.booking_date,
		f.flight_number, f.departure_airport, f.arrival_airport,
		s.seat_number, s.seat_class,
		ab.name
		FROM tickets t
		JOIN booking_passengers bp ON t.booking_passenger_id = bp.id
		JOIN bookings b ON bp.booking_id = b.id
		JOIN customers c ON b.customer_id = c.id
		JOIN passengers p ON bp.passenger_id = p.id
		JOIN flights f ON b.flight_id = f.id
		JOIN seats s ON t.seat_id = s.id
		JOIN airline_brands ab ON f.brand_id = ab.id
		ORDER BY t.id`)
	if err != nil {
		return nil, translate("all tickets", err)
	}
	defer rows.Close()

	report := make([]domain.TicketReportRow, 0)
	for rows.Next() {
		var row domain.TicketReportRow
		if err := rows.Scan(&row.TicketID, &row.TicketNumber, &row.PricePaid,
			&row.PassengerName, &row.CustomerName,
			&row.BookingID, &row.BookingDate,
			&row.FlightNumber, &row.DepartureAirport, &row.ArrivalAirport,
			&row.SeatNumber, &row.SeatClass, &row.BrandName); err != nil {
			return nil, translate("all tickets", err)
		}
		report = append(report, row)
	}
	return report, translate("all tickets", rows.Err())
}

var _ ReportRepository = (*PGReportRepository)(nil)
