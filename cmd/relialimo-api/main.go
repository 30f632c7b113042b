// README: Entry point; loads config, wires services, starts HTTP server and
// the background reconciler.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"relialimo/internal/config"
	httptransport "relialimo/internal/http"
	"relialimo/internal/infra"
	"relialimo/internal/modules/driver"
	"relialimo/internal/modules/farmout"
	"relialimo/internal/modules/reservation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := infra.NewLogger()
	defer func() { _ = logger.Sync() }()

	metrics := infra.NewMetrics("relialimo")

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatalw("postgres init", "error", err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	producer := infra.NewKafkaProducer(cfg.Kafka.Brokers)
	defer func() { _ = producer.Close() }()

	reservationStore := reservation.NewStore(dbPool)
	reservationSvc := reservation.NewService(reservationStore)

	driverStore := driver.NewStore(dbPool, redisClient)
	driverSvc := driver.NewService(driverStore)

	snapshotStore := farmout.NewRedisSnapshotStore(redisClient, cfg.Farmout.SnapshotKey)
	notifier := farmout.NewEventNotifier(producer, cfg.Kafka.StatusTopic, logger)
	farmoutSvc := farmout.NewService(
		reservationStore,
		driverStore,
		snapshotStore,
		notifier,
		logger,
		metrics,
		cfg.Farmout,
	)

	router := httptransport.NewRouter(httptransport.ServerDeps{
		Reservations: reservationSvc,
		Drivers:      driverSvc,
		Farmout:      farmoutSvc,
		Logger:       logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go farmoutSvc.RunReconciler(ctx)

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	logger.Infow("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalw("http server", "error", err)
	}
}
