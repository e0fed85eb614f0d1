package tickets

import (
	"context"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/aircondor/reservations/internal/repository"
)

// TicketUseCase is the ticket ledger's read side. Tickets are written
// only by the allocation service and are immutable afterwards.
type TicketUseCase interface {
	TicketsForBooking(ctx context.Context, bookingID int64) ([]domain.TicketDetails, error)
}

type TicketService struct {
	tickets  repository.TicketRepository
	bookings repository.BookingRepository
}

func NewTicketService(tickets repository.TicketRepository, bookings repository.BookingRepository) *TicketService {
	return &TicketService{tickets: tickets, bookings: bookings}
}

// TicketsForBooking returns an empty slice, not an error, for a booking
// with no tickets.
func (s *TicketService) TicketsForBooking(ctx context.Context, bookingID int64) ([]domain.TicketDetails, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.tickets.ListForBooking(ctx, bookingID)
}

var _ TicketUseCase = (*TicketService)(nil)
