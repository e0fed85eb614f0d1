package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/aircondor/reservations/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	CustomerID    int64           `json:"customer_id"`
	FlightID      int64           `json:"flight_id"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

type bookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	CustomerID    int64  `json:"customer_id"`
	FlightID      int64  `json:"flight_id"`
	BookingDate   string `json:"booking_date"`
	PaymentStatus string `json:"payment_status"`
	TotalAmount   string `json:"total_amount"`
}

type attachPassengerRequest struct {
	PassengerID int64 `json:"passenger_id"`
}

type bookingPassengerResponse struct {
	ID          int64 `json:"id"`
	BookingID   int64 `json:"booking_id"`
	PassengerID int64 `json:"passenger_id"`
}

type passengerOnBookingResponse struct {
	BookingPassengerID int64  `json:"booking_passenger_id"`
	PassengerID        int64  `json:"passenger_id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.POST("/:id/passengers", h.attachPassenger)
	router.GET("/:id/passengers", h.listPassengers)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		CustomerID:    req.CustomerID,
		FlightID:      req.FlightID,
		PaymentStatus: req.PaymentStatus,
		TotalAmount:   req.TotalAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) attachPassenger(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	var req attachPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bp, err := h.service.AttachPassenger(c.Request.Context(), bookingID, req.PassengerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingPassengerResponse{
		ID:          bp.ID,
		BookingID:   bp.BookingID,
		PassengerID: bp.PassengerID,
	})
}

func (h *BookingHandler) listPassengers(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	passengers, err := h.service.ListPassengers(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]passengerOnBookingResponse, 0, len(passengers))
	for _, p := range passengers {
		resp = append(resp, passengerOnBookingResponse{
			BookingPassengerID: p.BookingPassengerID,
			PassengerID:        p.PassengerID,
			FirstName:          p.FirstName,
			LastName:           p.LastName,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		CustomerID:    b.CustomerID,
		FlightID:      b.FlightID,
		BookingDate:   b.BookingDate.Format(time.RFC3339),
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount.StringFixed(2),
	}
}
