package api

import (
	"net/http"
	"strconv"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/aircondor/reservations/internal/service/allocation"
	"github.com/gin-gonic/gin"
)

type SeatHandler struct {
	service allocation.AllocationUseCase
}

type seatResponse struct {
	ID         int64  `json:"id"`
	AircraftID int64  `json:"aircraft_id"`
	SeatNumber string `json:"seat_number"`
	SeatClass  string `json:"seat_class"`
}

type seatStatusResponse struct {
	seatResponse
	Taken bool `json:"taken"`
}

func NewSeatHandler(service allocation.AllocationUseCase) *SeatHandler {
	return &SeatHandler{service: service}
}

func (h *SeatHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id/seats/available", h.available)
	router.GET("/:id/seatmap", h.seatMap)
}

func (h *SeatHandler) available(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	seats, err := h.service.ListAvailableSeats(c.Request.Context(), flightID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]seatResponse, 0, len(seats))
	for _, s := range seats {
		resp = append(resp, toSeatResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SeatHandler) seatMap(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	entries, err := h.service.SeatMap(c.Request.Context(), flightID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]seatStatusResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, seatStatusResponse{seatResponse: toSeatResponse(e.Seat), Taken: e.Taken})
	}
	c.JSON(http.StatusOK, resp)
}

func toSeatResponse(s domain.Seat) seatResponse {
	return seatResponse{
		ID:         s.ID,
		AircraftID: s.AircraftID,
		SeatNumber: s.SeatNumber,
		SeatClass:  s.SeatClass,
	}
}
