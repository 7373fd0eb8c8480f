package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/care-api/internal/catalog"
	"github.com/jwalitptl/care-api/internal/config"
	"github.com/jwalitptl/care-api/internal/email"
	bookingHandler "github.com/jwalitptl/care-api/internal/handler/booking"
	doctorHandler "github.com/jwalitptl/care-api/internal/handler/doctor"
	healthHandler "github.com/jwalitptl/care-api/internal/handler/health"
	preferenceHandler "github.com/jwalitptl/care-api/internal/handler/preference"
	vitalsHandler "github.com/jwalitptl/care-api/internal/handler/vitals"
	"github.com/jwalitptl/care-api/internal/middleware"
	"github.com/jwalitptl/care-api/internal/repository"
	"github.com/jwalitptl/care-api/internal/repository/memory"
	"github.com/jwalitptl/care-api/internal/repository/postgres"
	redisrepo "github.com/jwalitptl/care-api/internal/repository/redis"
	"github.com/jwalitptl/care-api/internal/router"
	"github.com/jwalitptl/care-api/internal/service/booking"
	"github.com/jwalitptl/care-api/internal/service/notification"
	"github.com/jwalitptl/care-api/internal/service/preference"
	"github.com/jwalitptl/care-api/internal/service/search"
	"github.com/jwalitptl/care-api/internal/service/vitals"
	"github.com/jwalitptl/care-api/pkg/logger"
	"github.com/jwalitptl/care-api/pkg/messaging"
	"github.com/jwalitptl/care-api/pkg/messaging/redis"
	"github.com/jwalitptl/care-api/pkg/metrics"
)

type app struct {
	router   *router.Router
	bookings *booking.Service
	closers  []io.Closer
}

func (a *app) Close() error {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close resource")
		}
	}
	return nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	l := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		JSON:       cfg.Logging.JSON,
	})
	// Middleware logs through the global logger.
	log.Logger = l.ZL
	return l
}

func buildApp(cfg *config.Config, appLogger *logger.Logger) (*app, error) {
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(cfg.Server.MetricsPrefix, registry)
	checks := map[string]healthHandler.Check{}

	// Catalog
	store, err := catalog.LoadFile(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}
	appLogger.Info("catalog loaded", "doctors", store.Len())

	// Repositories
	dbs := map[string]*sqlx.DB{}
	openDB := func(dsn string) (*sqlx.DB, error) {
		if db, ok := dbs[dsn]; ok {
			return db, nil
		}
		db, err := postgres.NewDB(dsn)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(context.Background(), db); err != nil {
			db.Close()
			return nil, err
		}
		dbs[dsn] = db
		a.closers = append(a.closers, db)
		checks[fmt.Sprintf("postgres-%d", len(dbs))] = func(ctx context.Context) error { return db.PingContext(ctx) }
		return db, nil
	}

	var prefRepo repository.PreferenceRepository
	switch cfg.Preferences.Driver {
	case "redis":
		opts, err := goredis.ParseURL(cfg.Preferences.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid preferences.redis_url: %w", err)
		}
		client := goredis.NewClient(opts)
		a.closers = append(a.closers, client)
		checks["redis-preferences"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		prefRepo = redisrepo.NewPreferenceRepository(client)
	case "postgres":
		db, err := openDB(cfg.Preferences.Postgres)
		if err != nil {
			return nil, err
		}
		prefRepo = postgres.NewPreferenceRepository(postgres.NewBaseRepository(db))
	default:
		prefRepo = memory.NewPreferenceRepository()
	}

	var vitalRepo repository.VitalRepository
	switch cfg.Vitals.Driver {
	case "postgres":
		db, err := openDB(cfg.Vitals.Postgres)
		if err != nil {
			return nil, err
		}
		vitalRepo = postgres.NewVitalRepository(postgres.NewBaseRepository(db))
	default:
		vitalRepo = memory.NewVitalRepository(memory.SampleRecords())
	}

	// Events and email
	var publisher messaging.Publisher = messaging.NewLogPublisher(appLogger)
	if cfg.Events.Enabled {
		broker, err := redis.NewRedisBroker(redis.Config{
			URL:          cfg.Events.RedisURL,
			MaxRetries:   cfg.Events.MaxRetries,
			RetryBackoff: cfg.Events.RetryBackoff,
			PoolSize:     cfg.Events.PoolSize,
		}, &appLogger.ZL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, broker)
		publisher = messaging.NewBrokerPublisher(broker, cfg.Events.Channel, appLogger)
	}

	var emailSvc email.Service
	if cfg.SMTP.Enabled {
		emailSvc = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
		})
	}

	// Services
	bookingOpts, err := bookingOptions(cfg.Booking)
	if err != nil {
		return nil, fmt.Errorf("invalid booking config: %w", err)
	}

	searchSvc := search.NewService(store, appLogger, m)
	bookingSvc := booking.NewService(bookingOpts, store, booking.Config{
		SessionTTL:    cfg.Booking.SessionTTL,
		CleanupPeriod: cfg.Booking.CleanupPeriod,
	}, appLogger, m)
	bookingSvc.Subscribe(notification.NewService(publisher, emailSvc, store, appLogger, m))
	vitalsSvc := vitals.NewService(vitalRepo, appLogger, m)
	prefSvc := preference.NewService(prefRepo, appLogger)

	// Router
	r := router.NewRouter(router.RouterConfig{
		RateLimit:   rate.Limit(cfg.Server.RateLimit),
		RateBurst:   cfg.Server.RateBurst,
		CORSConfig:  middleware.DefaultCORSConfig(),
		SizeLimit:   middleware.DefaultSizeLimitConfig(),
		ReleaseMode: true,
	}, m,
		healthHandler.NewHandler(registry, checks),
		doctorHandler.NewHandler(searchSvc),
		bookingHandler.NewHandler(bookingSvc),
		vitalsHandler.NewHandler(vitalsSvc),
		preferenceHandler.NewHandler(prefSvc),
	)
	r.Setup()

	a.router = r
	a.bookings = bookingSvc
	ok = true
	return a, nil
}

// bookingOptions pins the window when booking.window_start is set and
// otherwise rolls it forward with the clock.
func bookingOptions(cfg config.BookingConfig) (booking.OptionsFunc, error) {
	if cfg.WindowStart == "" {
		return booking.RollingOptions(cfg.WindowDays, cfg.DefaultOffset, cfg.TimeSlots, cfg.ResetDelay)
	}

	start, err := cfg.WindowStartDate(time.Now())
	if err != nil {
		return nil, err
	}
	opts, err := booking.NewOptions(start, cfg.WindowDays, cfg.DefaultOffset, cfg.TimeSlots, cfg.ResetDelay)
	if err != nil {
		return nil, err
	}
	return booking.FixedOptions(opts), nil
}
