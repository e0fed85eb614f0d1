package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/aircondor/reservations/internal/kafka"
	"github.com/aircondor/reservations/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingUseCase is the booking ledger: it owns bookings and the
// booking-passenger links. Seat assignment lives in the allocation
// service.
type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	AttachPassenger(ctx context.Context, bookingID, passengerID int64) (*domain.BookingPassenger, error)
	ListPassengers(ctx context.Context, bookingID int64) ([]domain.PassengerOnBooking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings repository.BookingRepository
	catalog  repository.CatalogRepository
	producer Producer
	topic    string
}

type CreateBookingInput struct {
	CustomerID    int64           `json:"customer_id"`
	FlightID      int64           `json:"flight_id"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

func NewBookingService(
	bookings repository.BookingRepository,
	catalog repository.CatalogRepository,
	producer Producer,
	topic string,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		catalog:  catalog,
		producer: producer,
		topic:    topic,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.PaymentStatus == "" {
		return nil, fmt.Errorf("payment status is required: %w", domain.ErrInvalidArgument)
	}
	if input.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("total amount must not be negative: %w", domain.ErrInvalidArgument)
	}

	ok, err := s.catalog.CustomerExists(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", input.CustomerID, domain.ErrNotFound)
	}
	flight, err := s.catalog.GetFlight(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference:     uuid.NewString(),
		CustomerID:    input.CustomerID,
		FlightID:      flight.ID,
		PaymentStatus: input.PaymentStatus,
		TotalAmount:   input.TotalAmount,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.ReservationEvent{
		Type:             "booking_created",
		BookingID:        booking.ID,
		BookingReference: booking.Reference,
		FlightID:         booking.FlightID,
		OccurredAt:       time.Now(),
	})
	return booking, nil
}

func (s *BookingService) AttachPassenger(ctx context.Context, bookingID, passengerID int64) (*domain.BookingPassenger, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ok, err := s.catalog.PassengerExists(ctx, passengerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("passenger %d: %w", passengerID, domain.ErrNotFound)
	}

	bp, err := s.bookings.AttachPassenger(ctx, bookingID, passengerID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.ReservationEvent{
		Type:               "passenger_attached",
		BookingID:          booking.ID,
		BookingReference:   booking.Reference,
		BookingPassengerID: bp.ID,
		FlightID:           booking.FlightID,
		OccurredAt:         time.Now(),
	})
	return bp, nil
}

func (s *BookingService) ListPassengers(ctx context.Context, bookingID int64) ([]domain.PassengerOnBooking, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.bookings.ListPassengers(ctx, bookingID)
}

// publish is best effort: the ledger row is already committed, a lost
// event must not fail the request.
func (s *BookingService) publish(ctx context.Context, event kafka.ReservationEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	key := fmt.Sprintf("booking-%d", event.BookingID)
	if err := s.producer.Publish(ctx, s.topic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", event.Type, event.BookingID, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
