package server

import (
	"net/http"

	bookinghandler "marketplace/internal/bookings/handler"
	bookingservice "marketplace/internal/bookings/service"
	bookingvalidator "marketplace/internal/bookings/validator"
	cataloghandler "marketplace/internal/catalog/handler"
	catalogservice "marketplace/internal/catalog/service"
	catalogvalidator "marketplace/internal/catalog/validator"
	dashboardhandler "marketplace/internal/dashboard/handler"
	dashboardservice "marketplace/internal/dashboard/service"
	"marketplace/internal/events"
	healthhandler "marketplace/internal/health/handler"
	"marketplace/internal/location"
	locationhandler "marketplace/internal/location/handler"
	paymenthandler "marketplace/internal/payments/handler"
	paymentservice "marketplace/internal/payments/service"
	reviewhandler "marketplace/internal/reviews/handler"
	reviewservice "marketplace/internal/reviews/service"
	reviewvalidator "marketplace/internal/reviews/validator"
	sessionhandler "marketplace/internal/session/handler"
	sessionservice "marketplace/internal/session/service"
	sessionvalidator "marketplace/internal/session/validator"
	"marketplace/internal/store"
	"marketplace/pkg/app"
	"marketplace/pkg/config"
	"marketplace/pkg/contracts"
	"marketplace/pkg/kafka"
	kafka_config "marketplace/pkg/kafka/config"
	kafka_middleware "marketplace/pkg/kafka/middleware"
	"marketplace/pkg/middleware"
)

const ServiceName = "marketplace"

// New assembles the marketplace application. publisher is closed on
// shutdown; metrics may be nil.
func New(cfg *config.Config, dataStore *store.Store, publisher kafka.Publisher, metrics *kafka_middleware.Metrics) *app.Application {
	emitter := events.NewEmitter(publisher, ServiceName, cfg.Log)
	sessions := sessionservice.NewSessionService(
		dataStore,
		sessionvalidator.NewSessionValidator(location.Nigeria(), cfg.Log),
		cfg,
	)
	dataStore.OnReset(sessions.Clear)

	a := app.NewApplication(cfg)
	a.Use(correlate)
	a.ExemptFromIdempotency("/api/v1/auth/")
	a.SetApp(
		healthhandler.NewHealthHandler(dataStore, metrics, cfg.Log),
		Handlers(cfg, dataStore, emitter, sessions)...,
	)
	a.OnShutdown(publisher.Close)
	a.OnShutdown(func() error {
		sessions.Stop()
		return nil
	})
	return a
}

// NewPublisher returns a Kafka producer when brokers are configured and a
// no-op publisher otherwise. metrics is nil unless producer middleware is
// enabled.
func NewPublisher(cfg *config.Config) (kafka.Publisher, *kafka_middleware.Metrics) {
	kafkaCfg, err := kafka_config.Load(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, event publishing disabled")
		return kafka.NopPublisher{}, nil
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	if !kafkaCfg.EnableMiddleware {
		return producer, nil
	}
	metrics := &kafka_middleware.Metrics{}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware(metrics))
	return producer, metrics
}

// Handlers builds every API handler over dataStore.
func Handlers(cfg *config.Config, dataStore *store.Store, emitter *events.Emitter, sessions sessionservice.SessionService) []contracts.Handler {
	locations := location.Nigeria()

	payments := paymentservice.NewPaymentService(dataStore, cfg)
	bookings := bookingservice.NewBookingService(
		dataStore,
		bookingvalidator.NewBookingValidator(cfg.Log),
		emitter,
		payments,
		cfg,
	)
	catalog := catalogservice.NewCatalogService(
		dataStore,
		catalogvalidator.NewServiceValidator(locations, cfg.Log),
		cfg,
	)
	reviews := reviewservice.NewReviewService(
		dataStore,
		reviewvalidator.NewReviewValidator(cfg.Log),
		emitter,
		cfg,
	)
	dashboard := dashboardservice.NewDashboardService(dataStore, cfg)

	cfg.Log.Info("Services initialized", "commission_rate", cfg.CommissionRate)
	return []contracts.Handler{
		bookinghandler.NewBookingHandler(bookings, cfg.Log),
		cataloghandler.NewCatalogHandler(catalog, cfg.Log),
		reviewhandler.NewReviewHandler(reviews, cfg.Log),
		paymenthandler.NewPaymentHandler(payments, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboard, cfg.Log),
		sessionhandler.NewSessionHandler(sessions, cfg.Log),
		locationhandler.NewLocationHandler(locations, cfg.Log),
		healthhandler.NewAdminHandler(dataStore, cfg.AdminResetEnabled, cfg.Log),
	}
}

// correlate tags published events with the request id.
func correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := events.WithCorrelationID(r.Context(), middleware.RequestID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
