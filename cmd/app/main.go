package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aircondor/reservations/api"
	"github.com/aircondor/reservations/config"
	"github.com/aircondor/reservations/internal/bootstrap"
	"github.com/aircondor/reservations/internal/cache"
	"github.com/aircondor/reservations/internal/kafka"
	"github.com/aircondor/reservations/internal/repository"
	"github.com/aircondor/reservations/internal/service/allocation"
	"github.com/aircondor/reservations/internal/service/booking"
	"github.com/aircondor/reservations/internal/service/reports"
	"github.com/aircondor/reservations/internal/service/tickets"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Reservation.SeatMapCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	catalogRepo := repository.NewCatalogRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	bookingService := booking.NewBookingService(bookingRepo, catalogRepo, producer, cfg.Kafka.ReservationTopic)
	allocationService := allocation.NewAllocationService(
		ticketRepo,
		catalogRepo,
		redisCache,
		producer,
		cfg.Kafka.ReservationTopic,
		time.Duration(cfg.Reservation.SeatHoldTTLSeconds)*time.Second,
	)
	ticketService := tickets.NewTicketService(ticketRepo, bookingRepo)
	reportService := reports.NewReportService(reportRepo)

	router := api.NewRouter(
		api.NewBookingHandler(bookingService),
		api.NewSeatHandler(allocationService),
		api.NewTicketHandler(allocationService, ticketService),
		api.NewReportHandler(reportService),
	)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
