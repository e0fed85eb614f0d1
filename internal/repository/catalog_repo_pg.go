package repository

import (
	"context"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository reads the reference data provisioned by catalog
// management: customers, passengers, flights, seats. Read-only here.
type CatalogRepository interface {
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	GetSeatsForAircraft(ctx context.Context, aircraftID int64) ([]domain.Seat, error)
	SeatBelongsToAircraft(ctx context.Context, seatID, aircraftID int64) (bool, error)
	CustomerExists(ctx context.Context, id int64) (bool, error)
	PassengerExists(ctx context.Context, id int64) (bool, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, flight_number, aircraft_id, brand_id, departure_airport, arrival_airport, departure_time, arrival_time, base_price FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.AircraftID, &f.BrandID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.BasePrice); err != nil {
		return nil, translate("get flight", err)
	}
	return &f, nil
}

func (r *PGCatalogRepository) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_number, aircraft_id, brand_id, departure_airport, arrival_airport, departure_time, arrival_time, base_price FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, translate("list flights", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.AircraftID, &f.BrandID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.BasePrice); err != nil {
			return nil, translate("list flights", err)
		}
		flights = append(flights, f)
	}
	return flights, translate("list flights", rows.Err())
}

func (r *PGCatalogRepository) GetSeatsForAircraft(ctx context.Context, aircraftID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT id, aircraft_id, seat_number, seat_class FROM seats WHERE aircraft_id=$1 ORDER BY seat_number`, aircraftID)
	if err != nil {
		return nil, translate("seats for aircraft", err)
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.AircraftID, &s.SeatNumber, &s.SeatClass); err != nil {
			return nil, translate("seats for aircraft", err)
		}
		seats = append(seats, s)
	}
	return seats, translate("seats for aircraft", rows.Err())
}

func (r *PGCatalogRepository) SeatBelongsToAircraft(ctx context.Context, seatID, aircraftID int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seats WHERE id=$1 AND aircraft_id=$2)`, seatID, aircraftID).Scan(&ok); err != nil {
		return false, translate("seat belongs to aircraft", err)
	}
	return ok, nil
}

func (r *PGCatalogRepository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id=$1)`, id).Scan(&ok); err != nil {
		return false, translate("customer exists", err)
	}
	return ok, nil
}

func (r *PGCatalogRepository) PassengerExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM passengers WHERE id=$1)`, id).Scan(&ok); err != nil {
		return false, translate("passenger exists", err)
	}
	return ok, nil
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
