package api

import (
	"net/http"
	"time"

	"github.com/aircondor/reservations/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

type flightRevenueResponse struct {
	FlightID     int64  `json:"flight_id"`
	FlightNumber string `json:"flight_number"`
	TicketCount  int64  `json:"ticket_count"`
	TotalRevenue string `json:"total_revenue"`
}

type brandRevenueResponse struct {
	BrandID      int64  `json:"brand_id"`
	BrandName    string `json:"brand_name"`
	TicketCount  int64  `json:"ticket_count"`
	TotalRevenue string `json:"total_revenue"`
}

type ticketReportResponse struct {
	TicketID         int64  `json:"ticket_id"`
	TicketNumber     string `json:"ticket_number"`
	PricePaid        string `json:"price_paid"`
	PassengerName    string `json:"passenger_name"`
	CustomerName     string `json:"customer_name"`
	BookingID        int64  `json:"booking_id"`
	BookingDate      string `json:"booking_date"`
	FlightNumber     string `json:"flight_number"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	SeatNumber       string `json:"seat_number"`
	SeatClass        string `json:"seat_class"`
	BrandName        string `json:"brand_name"`
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights/revenue", h.flightRevenue)
	router.GET("/brands/revenue", h.brandRevenue)
	router.GET("/tickets", h.allTickets)
}

func (h *ReportHandler) flightRevenue(c *gin.Context) {
	report, err := h.service.FlightRevenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]flightRevenueResponse, 0, len(report))
	for _, row := range report {
		resp = append(resp, flightRevenueResponse{
			FlightID:     row.FlightID,
			FlightNumber: row.FlightNumber,
			TicketCount:  row.TicketCount,
			TotalRevenue: row.TotalRevenue.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) brandRevenue(c *gin.Context) {
	report, err := h.service.BrandRevenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]brandRevenueResponse, 0, len(report))
	for _, row := range report {
		resp = append(resp, brandRevenueResponse{
			BrandID:      row.BrandID,
			BrandName:    row.BrandName,
			TicketCount:  row.TicketCount,
			TotalRevenue: row.TotalRevenue.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) allTickets(c *gin.Context) {
	report, err := h.service.AllTickets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ticketReportResponse, 0, len(report))
	for _, row := range report {
		resp = append(resp, ticketReportResponse{
			TicketID:         row.TicketID,
			TicketNumber:     row.TicketNumber,
			PricePaid:        row.PricePaid.StringFixed(2),
			PassengerName:    row.PassengerName,
			CustomerName:     row.CustomerName,
			BookingID:        row.BookingID,
			BookingDate:      row.BookingDate.Format(time.RFC3339),
			FlightNumber:     row.FlightNumber,
			DepartureAirport: row.DepartureAirport,
			ArrivalAirport:   row.ArrivalAirport,
			SeatNumber:       row.SeatNumber,
			SeatClass:        row.SeatClass,
			BrandName:        row.BrandName,
		})
	}
	c.JSON(http.StatusOK, resp)
}
