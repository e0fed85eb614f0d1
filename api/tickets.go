package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aircondor/reservations/internal/service/allocation"
	"github.com/aircondor/reservations/internal/service/tickets"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TicketHandler struct {
	allocator allocation.AllocationUseCase
	tickets   tickets.TicketUseCase
}

type assignSeatRequest struct {
	BookingPassengerID int64           `json:"booking_passenger_id"`
	SeatID             int64           `json:"seat_id"`
	PricePaid          decimal.Decimal `json:"price_paid"`
}

type ticketResponse struct {
	ID                 int64  `json:"id"`
	TicketNumber       string `json:"ticket_number"`
	BookingPassengerID int64  `json:"booking_passenger_id"`
	SeatID             int64  `json:"seat_id"`
	FlightID           int64  `json:"flight_id"`
	PricePaid          string `json:"price_paid"`
	IssuedAt           string `json:"issued_at"`
}

type ticketDetailsResponse struct {
	TicketID     int64  `json:"ticket_id"`
	TicketNumber string `json:"ticket_number"`
	PricePaid    string `json:"price_paid"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	SeatNumber   string `json:"seat_number"`
	SeatClass    string `json:"seat_class"`
}

func NewTicketHandler(allocator allocation.AllocationUseCase, tickets tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{allocator: allocator, tickets: tickets}
}

func (h *TicketHandler) Register(router *gin.RouterGroup, bookings *gin.RouterGroup) {
	router.POST("/", h.assign)
	bookings.GET("/:id/tickets", h.listForBooking)
}

func (h *TicketHandler) assign(c *gin.Context) {
	var req assignSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.allocator.AssignSeat(c.Request.Context(), allocation.AssignSeatInput{
		BookingPassengerID: req.BookingPassengerID,
		SeatID:             req.SeatID,
		PricePaid:          req.PricePaid,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticketResponse{
		ID:                 ticket.ID,
		TicketNumber:       ticket.TicketNumber,
		BookingPassengerID: ticket.BookingPassengerID,
		SeatID:             ticket.SeatID,
		FlightID:           ticket.FlightID,
		PricePaid:          ticket.PricePaid.StringFixed(2),
		IssuedAt:           ticket.IssuedAt.Format(time.RFC3339),
	})
}

func (h *TicketHandler) listForBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	list, err := h.tickets.TicketsForBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ticketDetailsResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, ticketDetailsResponse{
			TicketID:     t.TicketID,
			TicketNumber: t.TicketNumber,
			PricePaid:    t.PricePaid.StringFixed(2),
			FirstName:    t.FirstName,
			LastName:     t.LastName,
			SeatNumber:   t.SeatNumber,
			SeatClass:    t.SeatClass,
		})
	}
	c.JSON(http.StatusOK, resp)
}
