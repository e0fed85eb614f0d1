package reports

import (
	"context"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/aircondor/reservations/internal/repository"
)

type ReportUseCase interface {
	FlightRevenue(ctx context.Context) ([]domain.FlightRevenue, error)
	BrandRevenue(ctx context.Context) ([]domain.BrandRevenue, error)
	AllTickets(ctx context.Context) ([]domain.TicketReportRow, error)
}

type ReportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) FlightRevenue(ctx context.Context) ([]domain.FlightRevenue, error) {
	return s.reports.FlightRevenue(ctx)
}

func (s *ReportService) BrandRevenue(ctx context.Context) ([]domain.BrandRevenue, error) {
	return s.reports.BrandRevenue(ctx)
}

func (s *ReportService) AllTickets(ctx context.Context) ([]domain.TicketReportRow, error) {
	return s.reports.AllTickets(ctx)
}

var _ ReportUseCase = (*ReportService)(nil)
