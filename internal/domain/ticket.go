package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket records one seat issued to one booking passenger. FlightID is
// denormalized from the booking chain inside the issuing transaction so
// the store itself can enforce seat exclusivity per flight.
type Ticket struct {
	ID                 int64
	BookingPassengerID int64
	SeatID             int64
	FlightID           int64
	TicketNumber       string
	PricePaid          decimal.Decimal
	IssuedAt           time.Time
}

// Assignment is the resolved chain booking passenger -> booking ->
// flight -> aircraft, read once before issuing a ticket.
type Assignment struct {
	BookingPassengerID int64
	BookingID          int64
	FlightID           int64
	AircraftID         int64
}

// TicketDetails is the per-booking listing with joined passenger and
// seat info.
type TicketDetails struct {
	TicketID     int64
	TicketNumber string
	PricePaid    decimal.Decimal
	FirstName    string
	LastName     string
	SeatNumber   string
	SeatClass    string
}
