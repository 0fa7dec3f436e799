package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/tablepos/api/internal/config"
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/events"
	"github.com/tablepos/api/internal/idempotency"
	"github.com/tablepos/api/internal/router"
	"github.com/tablepos/api/internal/ws"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: load .env: %v", err)
	}

	if err := run(config.Load()); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := connectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()
	queries := database.New(pool)

	var idem idempotency.Store
	if cfg.RedisAddr != "" {
		rdb := idempotency.NewRedisClient(cfg.RedisAddr)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		idem = idempotency.NewRedisStore(rdb)
		log.Printf("Idempotency keys stored in redis at %s", cfg.RedisAddr)
	} else {
		idem = idempotency.NewMemoryStore()
		log.Printf("Idempotency keys stored in memory")
	}

	g, gctx := errgroup.WithContext(ctx)

	hub := ws.NewHub()
	g.Go(func() error { return hub.Run(gctx) })

	publisher := events.Multi{hub}
	switch cfg.EventBroker {
	case config.BrokerKafka:
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.EventBuffer)
		g.Go(func() error { return kp.Run(gctx) })
		publisher = append(publisher, kp)
		log.Printf("Publishing order events to kafka topic %s", cfg.KafkaTopic)
	case config.BrokerRabbitMQ:
		rp, err := events.DialRabbit(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return fmt.Errorf("rabbitmq: %w", err)
		}
		defer rp.Close()
		publisher = append(publisher, rp)
		log.Printf("Publishing order events to rabbitmq exchange %s", cfg.RabbitMQExchange)
	case config.BrokerNone:
	default:
		return fmt.Errorf("unknown EVENT_BROKER %q", cfg.EventBroker)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(cfg, queries, pool, hub, publisher, idem),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func connectDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pcfg.MaxConns = 16
	pcfg.MinConns = 1
	pcfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
