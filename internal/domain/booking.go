package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is a purchase made by one customer for one flight. It is
// immutable after creation; passengers and tickets attach to it as
// separate rows.
type Booking struct {
	ID            int64
	Reference     string
	CustomerID    int64
	FlightID      int64
	BookingDate   time.Time
	PaymentStatus string
	TotalAmount   decimal.Decimal
}

// BookingPassenger links one passenger to one booking. A passenger
// appears on a booking at most once and holds at most one ticket.
type BookingPassenger struct {
	ID          int64
	BookingID   int64
	PassengerID int64
}

// PassengerOnBooking is the listing projection with joined names.
type PassengerOnBooking struct {
	BookingPassengerID int64
	PassengerID        int64
	FirstName          string
	LastName           string
}
