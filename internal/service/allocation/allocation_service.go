package allocation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/aircondor/reservations/internal/kafka"
	"github.com/aircondor/reservations/internal/repository"
	"github.com/shopspring/decimal"
)

// AllocationUseCase assigns aircraft seats to booking passengers and
// issues tickets. The one property everything here exists to provide:
// a seat on a flight is ticketed to at most one passenger, no matter
// how many agents race for it.
type AllocationUseCase interface {
	AssignSeat(ctx context.Context, input AssignSeatInput) (*domain.Ticket, error)
	ListAvailableSeats(ctx context.Context, flightID int64) ([]domain.Seat, error)
	SeatMap(ctx context.Context, flightID int64) ([]domain.SeatStatus, error)
}

type Cache interface {
	AcquireSeatHold(ctx context.Context, flightID, seatID int64, ttl time.Duration) (bool, error)
	ReleaseSeatHold(ctx context.Context, flightID, seatID int64) error
	GetSeatMap(ctx context.Context, flightID int64) ([]domain.SeatStatus, error)
	SetSeatMap(ctx context.Context, flightID int64, entries []domain.SeatStatus) error
	InvalidateSeatMap(ctx context.Context, flightID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AllocationService struct {
	tickets  repository.TicketRepository
	catalog  repository.CatalogRepository
	cache    Cache
	producer Producer
	topic    string
	holdTTL  time.Duration
}

type AssignSeatInput struct {
	BookingPassengerID int64           `json:"booking_passenger_id"`
	SeatID             int64           `json:"seat_id"`
	PricePaid          decimal.Decimal `json:"price_paid"`
}

func NewAllocationService(
	tickets repository.TicketRepository,
	catalog repository.CatalogRepository,
	cache Cache,
	producer Producer,
	topic string,
	holdTTL time.Duration,
) *AllocationService {
	return &AllocationService{
		tickets:  tickets,
		catalog:  catalog,
		cache:    cache,
		producer: producer,
		topic:    topic,
		holdTTL:  holdTTL,
	}
}

// TicketNumber derives the ticket number from the assignment itself, so
// a retry after a transient failure produces the same number.
func TicketNumber(bookingID, bookingPassengerID, seatID int64) string {
	return fmt.Sprintf("TCK-%d-%d-%d", bookingID, bookingPassengerID, seatID)
}

func (s *AllocationService) AssignSeat(ctx context.Context, input AssignSeatInput) (*domain.Ticket, error) {
	if input.PricePaid.IsNegative() {
		return nil, fmt.Errorf("price paid must not be negative: %w", domain.ErrInvalidArgument)
	}

	asn, err := s.tickets.ResolveAssignment(ctx, input.BookingPassengerID)
	if err != nil {
		return nil, err
	}

	ok, err := s.catalog.SeatBelongsToAircraft(ctx, input.SeatID, asn.AircraftID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("seat %d does not belong to aircraft %d: %w", input.SeatID, asn.AircraftID, domain.ErrInvalidArgument)
	}

	// Advisory hold so two agents rarely reach the database with the
	// same seat. The unique constraint remains the real guard.
	held := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatHold(ctx, asn.FlightID, input.SeatID, s.holdTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire seat hold: %v: %w", err, domain.ErrTransient)
		}
		if !ok {
			return nil, fmt.Errorf("seat %d is on hold for flight %d: %w", input.SeatID, asn.FlightID, domain.ErrConflict)
		}
		held = true
	}

	ticket := &domain.Ticket{
		BookingPassengerID: asn.BookingPassengerID,
		SeatID:             input.SeatID,
		FlightID:           asn.FlightID,
		TicketNumber:       TicketNumber(asn.BookingID, asn.BookingPassengerID, input.SeatID),
		PricePaid:          input.PricePaid,
	}
	if err := s.tickets.Issue(ctx, ticket); err != nil {
		if held {
			_ = s.cache.ReleaseSeatHold(ctx, asn.FlightID, input.SeatID)
		}
		return nil, err
	}

	if held {
		_ = s.cache.ReleaseSeatHold(ctx, asn.FlightID, input.SeatID)
	}
	if s.cache != nil {
		_ = s.cache.InvalidateSeatMap(ctx, asn.FlightID)
	}

	s.publish(ctx, kafka.ReservationEvent{
		Type:               "ticket_issued",
		BookingID:          asn.BookingID,
		BookingPassengerID: asn.BookingPassengerID,
		FlightID:           asn.FlightID,
		SeatID:             input.SeatID,
		TicketNumber:       ticket.TicketNumber,
		OccurredAt:         time.Now(),
	})
	return ticket, nil
}

func (s *AllocationService) ListAvailableSeats(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	flight, err := s.catalog.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	return s.tickets.ListAvailableSeats(ctx, flightID, flight.AircraftID)
}

func (s *AllocationService) SeatMap(ctx context.Context, flightID int64) ([]domain.SeatStatus, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSeatMap(ctx, flightID); err == nil && cached != nil {
			return cached, nil
		}
	}

	flight, err := s.catalog.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	seats, err := s.catalog.GetSeatsForAircraft(ctx, flight.AircraftID)
	if err != nil {
		return nil, err
	}
	taken, err := s.tickets.TakenSeatIDs(ctx, flightID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.SeatStatus, 0, len(seats))
	for _, seat := range seats {
		_, isTaken := taken[seat.ID]
		entries = append(entries, domain.SeatStatus{Seat: seat, Taken: isTaken})
	}
	if s.cache != nil {
		_ = s.cache.SetSeatMap(ctx, flightID, entries)
	}
	return entries, nil
}

func (s *AllocationService) publish(ctx context.Context, event kafka.ReservationEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, event.TicketNumber, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for ticket %s: %v", event.Type, event.TicketNumber, err)
	}
}

var _ AllocationUseCase = (*AllocationService)(nil)
