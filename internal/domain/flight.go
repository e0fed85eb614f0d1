package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flight is catalog data, read-only for this service.
type Flight struct {
	ID               int64
	FlightNumber     string
	AircraftID       int64
	BrandID          int64
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	BasePrice        decimal.Decimal
}

type Seat struct {
	ID         int64
	AircraftID int64
	SeatNumber string
	SeatClass  string
}

// SeatStatus is one entry of a flight's seat map.
type SeatStatus struct {
	Seat  Seat `json:"seat"`
	Taken bool `json:"taken"`
}
