package allocation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) ResolveAssignment(ctx context.Context, bookingPassengerID int64) (*domain.Assignment, error) {
	args := m.Called(ctx, bookingPassengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockTicketRepository) Issue(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) ListAvailableSeats(ctx context.Context, flightID, aircraftID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, flightID, aircraftID)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockTicketRepository) TakenSeatIDs(ctx context.Context, flightID int64) (map[int64]struct{}, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).(map[int64]struct{}), args.Error(1)
}

func (m *MockTicketRepository) ListForBooking(ctx context.Context, bookingID int64) ([]domain.TicketDetails, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.TicketDetails), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockCatalogRepository) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCatalogRepository) GetSeatsForAircraft(ctx context.Context, aircraftID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, aircraftID)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockCatalogRepository) SeatBelongsToAircraft(ctx context.Context, seatID, aircraftID int64) (bool, error) {
	args := m.Called(ctx, seatID, aircraftID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) PassengerExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) AcquireSeatHold(ctx context.Context, flightID, seatID int64, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, flightID, seatID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) ReleaseSeatHold(ctx context.Context, flightID, seatID int64) error {
	args := m.Called(ctx, flightID, seatID)
	return args.Error(0)
}

func (m *MockCache) GetSeatMap(ctx context.Context, flightID int64) ([]domain.SeatStatus, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatStatus), args.Error(1)
}

func (m *MockCache) SetSeatMap(ctx context.Context, flightID int64, entries []domain.SeatStatus) error {
	args := m.Called(ctx, flightID, entries)
	return args.Error(0)
}

func (m *MockCache) InvalidateSeatMap(ctx context.Context, flightID int64) error {
	args := m.Called(ctx, flightID)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestTicketNumber(t *testing.T) {
	assert.Equal(t, "TCK-1-1-3", TicketNumber(1, 1, 3))
	// Same assignment always yields the same number.
	assert.Equal(t, TicketNumber(7, 12, 42), TicketNumber(7, 12, 42))
}

func TestAllocationService_AssignSeat_Success(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewAllocationService(mockTickets, mockCatalog, mockCache, mockProducer, "reservation_events", time.Minute)

	ctx := context.Background()
	asn := &domain.Assignment{BookingPassengerID: 11, BookingID: 1, FlightID: 10, AircraftID: 3}

	mockTickets.On("ResolveAssignment", ctx, int64(11)).Return(asn, nil).Once()
	mockCatalog.On("SeatBelongsToAircraft", ctx, int64(33), int64(3)).Return(true, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, int64(10), int64(33), time.Minute).Return(true, nil).Once()
	mockTickets.On("Issue", ctx, mock.AnythingOfType("*domain.Ticket")).Return(nil).Once()
	mockCache.On("ReleaseSeatHold", ctx, int64(10), int64(33)).Return(nil).Once()
	mockCache.On("InvalidateSeatMap", ctx, int64(10)).Return(nil).Once()
	mockProducer.On("Publish", ctx, "reservation_events", mock.Anything, mock.Anything).Return(nil).Once()

	ticket, err := service.AssignSeat(ctx, AssignSeatInput{
		BookingPassengerID: 11,
		SeatID:             33,
		PricePaid:          decimal.RequireFromString("350.00"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, ticket)
	assert.Equal(t, "TCK-1-11-33", ticket.TicketNumber)
	assert.Equal(t, int64(10), ticket.FlightID)
	assert.Equal(t, int64(33), ticket.SeatID)

	mockTickets.AssertExpectations(t)
	mockCatalog.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestAllocationService_AssignSeat_NegativePrice(t *testing.T) {
	service := NewAllocationService(&MockTicketRepository{}, &MockCatalogRepository{}, nil, nil, "", time.Minute)

	ticket, err := service.AssignSeat(context.Background(), AssignSeatInput{
		BookingPassengerID: 11,
		SeatID:             33,
		PricePaid:          decimal.RequireFromString("-1.00"),
	})

	assert.Nil(t, ticket)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestAllocationService_AssignSeat_UnknownPassenger(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	service := NewAllocationService(mockTickets, &MockCatalogRepository{}, nil, nil, "", time.Minute)

	ctx := context.Background()
	mockTickets.On("ResolveAssignment", ctx, int64(99)).Return(nil, fmt.Errorf("resolve assignment: %w", domain.ErrNotFound)).Once()

	ticket, err := service.AssignSeat(ctx, AssignSeatInput{BookingPassengerID: 99, SeatID: 33, PricePaid: decimal.Zero})

	assert.Nil(t, ticket)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	mockTickets.AssertExpectations(t)
}

func TestAllocationService_AssignSeat_SeatOnWrongAircraft(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	mockCatalog := &MockCatalogRepository{}
	service := NewAllocationService(mockTickets, mockCatalog, nil, nil, "", time.Minute)

	ctx := context.Background()
	asn := &domain.Assignment{BookingPassengerID: 11, BookingID: 1, FlightID: 10, AircraftID: 3}
	mockTickets.On("ResolveAssignment", ctx, int64(11)).Return(asn, nil).Once()
	mockCatalog.On("SeatBelongsToAircraft", ctx, int64(77), int64(3)).Return(false, nil).Once()

	ticket, err := service.AssignSeat(ctx, AssignSeatInput{BookingPassengerID: 11, SeatID: 77, PricePaid: decimal.Zero})

	assert.Nil(t, ticket)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	mockTickets.AssertNotCalled(t, "Issue")
}

func TestAllocationService_AssignSeat_SeatTakenConflict(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockCache := &MockCache{}
	service := NewAllocationService(mockTickets, mockCatalog, mockCache, nil, "", time.Minute)

	ctx := context.Background()
	asn := &domain.Assignment{BookingPassengerID: 12, BookingID: 2, FlightID: 10, AircraftID: 3}
	mockTickets.On("ResolveAssignment", ctx, int64(12)).Return(asn, nil).Once()
	mockCatalog.On("SeatBelongsToAircraft", ctx, int64(33), int64(3)).Return(true, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, int64(10), int64(33), time.Minute).Return(true, nil).Once()
	mockTickets.On("Issue", ctx, mock.AnythingOfType("*domain.Ticket")).
		Return(fmt.Errorf("seat 33 already ticketed for flight 10: %w", domain.ErrConflict)).Once()
	// The hold is released so the caller can retry a different seat.
	mockCache.On("ReleaseSeatHold", ctx, int64(10), int64(33)).Return(nil).Once()

	ticket, err := service.AssignSeat(ctx, AssignSeatInput{BookingPassengerID: 12, SeatID: 33, PricePaid: decimal.Zero})

	assert.Nil(t, ticket)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	mockCache.AssertExpectations(t)
}

func TestAllocationService_AssignSeat_SeatOnHold(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockCache := &MockCache{}
	service := NewAllocationService(mockTickets, mockCatalog, mockCache, nil, "", time.Minute)

	ctx := context.Background()
	asn := &domain.Assignment{BookingPassengerID: 12, BookingID: 2, FlightID: 10, AircraftID: 3}
	mockTickets.On("ResolveAssignment", ctx, int64(12)).Return(asn, nil).Once()
	mockCatalog.On("SeatBelongsToAircraft", ctx, int64(33), int64(3)).Return(true, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, int64(10), int64(33), time.Minute).Return(false, nil).Once()

	ticket, err := service.AssignSeat(ctx, AssignSeatInput{BookingPassengerID: 12, SeatID: 33, PricePaid: decimal.Zero})

	assert.Nil(t, ticket)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	mockTickets.AssertNotCalled(t, "Issue")
}

// Retrying after a transient failure must produce the identical ticket
// number, so a half-failed assignment can be safely replayed.
func TestAllocationService_AssignSeat_IdempotentRetry(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	mockCatalog := &MockCatalogRepository{}
	service := NewAllocationService(mockTickets, mockCatalog, nil, nil, "", time.Minute)

	ctx := context.Background()
	asn := &domain.Assignment{BookingPassengerID: 11, BookingID: 1, FlightID: 10, AircraftID: 3}
	mockTickets.On("ResolveAssignment", ctx, int64(11)).Return(asn, nil).Twice()
	mockCatalog.On("SeatBelongsToAircraft", ctx, int64(33), int64(3)).Return(true, nil).Twice()

	var numbers []string
	mockTickets.On("Issue", ctx, mock.AnythingOfType("*domain.Ticket")).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(*domain.Ticket).TicketNumber)
		}).
		Return(fmt.Errorf("issue ticket: %w", domain.ErrTransient)).Once()
	mockTickets.On("Issue", ctx, mock.AnythingOfType("*domain.Ticket")).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(*domain.Ticket).TicketNumber)
		}).
		Return(nil).Once()

	input := AssignSeatInput{BookingPassengerID: 11, SeatID: 33, PricePaid: decimal.RequireFromString("350.00")}

	_, err := service.AssignSeat(ctx, input)
	assert.True(t, errors.Is(err, domain.ErrTransient))

	ticket, err := service.AssignSeat(ctx, input)
	assert.NoError(t, err)
	assert.Len(t, numbers, 2)
	assert.Equal(t, numbers[0], numbers[1])
	assert.Equal(t, numbers[1], ticket.TicketNumber)
}

// raceTicketStore is an in-memory ticket store with the same atomic
// check-and-insert contract as the Postgres repository. It backs the
// N-issuers-one-seat race test below.
type raceTicketStore struct {
	mu      sync.Mutex
	bySeat  map[string]struct{}
	byBP    map[int64]struct{}
	tickets []domain.Ticket
}

func newRaceTicketStore() *raceTicketStore {
	return &raceTicketStore{
		bySeat: make(map[string]struct{}),
		byBP:   make(map[int64]struct{}),
	}
}

func (s *raceTicketStore) ResolveAssignment(ctx context.Context, bookingPassengerID int64) (*domain.Assignment, error) {
	return &domain.Assignment{
		BookingPassengerID: bookingPassengerID,
		BookingID:          1,
		FlightID:           10,
		AircraftID:         3,
	}, nil
}

func (s *raceTicketStore) Issue(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seatKey := fmt.Sprintf("%d/%d", ticket.FlightID, ticket.SeatID)
	if _, taken := s.bySeat[seatKey]; taken {
		return fmt.Errorf("seat %d already ticketed for flight %d: %w", ticket.SeatID, ticket.FlightID, domain.ErrConflict)
	}
	if _, ticketed := s.byBP[ticket.BookingPassengerID]; ticketed {
		return fmt.Errorf("booking passenger %d already holds a ticket: %w", ticket.BookingPassengerID, domain.ErrConflict)
	}
	s.bySeat[seatKey] = struct{}{}
	s.byBP[ticket.BookingPassengerID] = struct{}{}
	ticket.ID = int64(len(s.tickets) + 1)
	s.tickets = append(s.tickets, *ticket)
	return nil
}

func (s *raceTicketStore) ListAvailableSeats(ctx context.Context, flightID, aircraftID int64) ([]domain.Seat, error) {
	return nil, nil
}

func (s *raceTicketStore) TakenSeatIDs(ctx context.Context, flightID int64) (map[int64]struct{}, error) {
	return nil, nil
}

func (s *raceTicketStore) ListForBooking(ctx context.Context, bookingID int64) ([]domain.TicketDetails, error) {
	return nil, nil
}

type raceCatalogStub struct{}

func (raceCatalogStub) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	return &domain.Flight{ID: id, AircraftID: 3}, nil
}
func (raceCatalogStub) ListFlights(ctx context.Context) ([]domain.Flight, error) { return nil, nil }
func (raceCatalogStub) GetSeatsForAircraft(ctx context.Context, aircraftID int64) ([]domain.Seat, error) {
	return nil, nil
}
func (raceCatalogStub) SeatBelongsToAircraft(ctx context.Context, seatID, aircraftID int64) (bool, error) {
	return true, nil
}
func (raceCatalogStub) CustomerExists(ctx context.Context, id int64) (bool, error) {
	return true, nil
}
func (raceCatalogStub) PassengerExists(ctx context.Context, id int64) (bool, error) {
	return true, nil
}

func TestAllocationService_AssignSeat_ConcurrentSameSeat(t *testing.T) {
	store := newRaceTicketStore()
	service := NewAllocationService(store, raceCatalogStub{}, nil, nil, "", time.Minute)

	const n = 16
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		bpID := int64(100 + i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.AssignSeat(ctx, AssignSeatInput{
				BookingPassengerID: bpID,
				SeatID:             33,
				PricePaid:          decimal.RequireFromString("199.99"),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, store.tickets, 1)
}

func TestAllocationService_ListAvailableSeats(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	mockCatalog := &MockCatalogRepository{}
	service := NewAllocationService(mockTickets, mockCatalog, nil, nil, "", time.Minute)

	ctx := context.Background()
	flight := &domain.Flight{ID: 10, AircraftID: 3}
	seats := []domain.Seat{
		{ID: 1, AircraftID: 3, SeatNumber: "1A", SeatClass: "Business"},
		{ID: 2, AircraftID: 3, SeatNumber: "1B", SeatClass: "Business"},
	}
	mockCatalog.On("GetFlight", ctx, int64(10)).Return(flight, nil).Once()
	mockTickets.On("ListAvailableSeats", ctx, int64(10), int64(3)).Return(seats, nil).Once()

	got, err := service.ListAvailableSeats(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, seats, got)
}

func TestAllocationService_SeatMap_CacheMissThenFill(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockCache := &MockCache{}
	service := NewAllocationService(mockTickets, mockCatalog, mockCache, nil, "", time.Minute)

	ctx := context.Background()
	flight := &domain.Flight{ID: 10, AircraftID: 3}
	seats := []domain.Seat{
		{ID: 1, AircraftID: 3, SeatNumber: "1A", SeatClass: "Business"},
		{ID: 2, AircraftID: 3, SeatNumber: "1B", SeatClass: "Business"},
	}
	entries := []domain.SeatStatus{
		{Seat: seats[0], Taken: true},
		{Seat: seats[1], Taken: false},
	}
	mockCache.On("GetSeatMap", ctx, int64(10)).Return(nil, nil).Once()
	mockCatalog.On("GetFlight", ctx, int64(10)).Return(flight, nil).Once()
	mockCatalog.On("GetSeatsForAircraft", ctx, int64(3)).Return(seats, nil).Once()
	mockTickets.On("TakenSeatIDs", ctx, int64(10)).Return(map[int64]struct{}{1: {}}, nil).Once()
	mockCache.On("SetSeatMap", ctx, int64(10), entries).Return(nil).Once()

	got, err := service.SeatMap(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
	mockCache.AssertExpectations(t)
}

func TestAllocationService_SeatMap_CacheHit(t *testing.T) {
	mockTickets := &MockTicketRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockCache := &MockCache{}
	service := NewAllocationService(mockTickets, mockCatalog, mockCache, nil, "", time.Minute)

	ctx := context.Background()
	entries := []domain.SeatStatus{
		{Seat: domain.Seat{ID: 1, AircraftID: 3, SeatNumber: "1A", SeatClass: "Business"}, Taken: false},
	}
	mockCache.On("GetSeatMap", ctx, int64(10)).Return(entries, nil).Once()

	got, err := service.SeatMap(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
	mockCatalog.AssertNotCalled(t, "GetFlight")
	mockTickets.AssertNotCalled(t, "SeatMap")
}
