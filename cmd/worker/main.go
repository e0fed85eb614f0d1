package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aircondor/reservations/config"
	"github.com/aircondor/reservations/internal/cache"
	"github.com/aircondor/reservations/internal/email"
	"github.com/aircondor/reservations/internal/kafka"
	"github.com/aircondor/reservations/internal/repository"
	"github.com/aircondor/reservations/internal/service/allocation"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Reservation.SeatMapCacheTTLSeconds)*time.Second)

	catalogRepo := repository.NewCatalogRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	allocationService := allocation.NewAllocationService(
		ticketRepo,
		catalogRepo,
		redisCache,
		nil, "",
		time.Duration(cfg.Reservation.SeatHoldTTLSeconds)*time.Second,
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.ReservationEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	refreshTicker := time.NewTicker(time.Duration(cfg.Worker.SeatMapRefreshMinutes) * time.Minute)
	defer refreshTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-refreshTicker.C:
			if err := refreshSeatMaps(ctx, catalogRepo, redisCache, allocationService); err != nil {
				log.Printf("refresh seat maps error: %v", err)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

// refreshSeatMaps recomputes every flight's seat map so the cache stays
// warm between bursts of assignment traffic.
func refreshSeatMaps(ctx context.Context, catalog repository.CatalogRepository, redisCache *cache.RedisCache, svc *allocation.AllocationService) error {
	flights, err := catalog.ListFlights(ctx)
	if err != nil {
		return err
	}
	for _, f := range flights {
		if err := redisCache.InvalidateSeatMap(ctx, f.ID); err != nil {
			log.Printf("invalidate seat map for flight %d: %v", f.ID, err)
			continue
		}
		if _, err := svc.SeatMap(ctx, f.ID); err != nil {
			log.Printf("rebuild seat map for flight %d: %v", f.ID, err)
		}
	}
	return nil
}
