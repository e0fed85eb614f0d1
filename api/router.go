package api

import "github.com/gin-gonic/gin"

// NewRouter assembles the HTTP surface of the reservation core.
func NewRouter(bookings *BookingHandler, seats *SeatHandler, tickets *TicketHandler, reports *ReportHandler) *gin.Engine {
	router := gin.Default()

	bookingGroup := router.Group("/bookings")
	bookings.Register(bookingGroup)

	flightGroup := router.Group("/flights")
	seats.Register(flightGroup)

	ticketGroup := router.Group("/tickets")
	tickets.Register(ticketGroup, bookingGroup)

	reportGroup := router.Group("/reports")
	reports.Register(reportGroup)

	return router
}
