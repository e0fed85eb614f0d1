package email

import (
	"context"
	"log"

	"github.com/aircondor/reservations/internal/kafka"
)

// Sender delivers reservation notifications. Only logging delivery for
// now; a real transport plugs in behind the same method.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	switch event.Type {
	case "ticket_issued":
		log.Printf("notify booking %d: ticket %s issued for flight %d seat %d", event.BookingID, event.TicketNumber, event.FlightID, event.SeatID)
	default:
		log.Printf("notify booking %d: %s", event.BookingID, event.Type)
	}
	return nil
}
