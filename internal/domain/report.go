package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FlightRevenue struct {
	FlightID     int64
	FlightNumber string
	TicketCount  int64
	TotalRevenue decimal.Decimal
}

type BrandRevenue struct {
	BrandID      int64
	BrandName    string
	TicketCount  int64
	TotalRevenue decimal.Decimal
}

// TicketReportRow is the fully joined ticket line used by the detailed
// tickets report.
type TicketReportRow struct {
	TicketID         int64
	TicketNumber     string
	PricePaid        decimal.Decimal
	PassengerName    string
	CustomerName     string
	BookingID        int64
	BookingDate      time.Time
	FlightNumber     string
	DepartureAirport string
	ArrivalAirport   string
	SeatNumber       string
	SeatClass        string
	BrandName        string
}
