package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/config"
	chatusecase "mesaYaBooking/internal/modules/chat/application/usecase"
	chat "mesaYaBooking/internal/modules/chat/domain"
	menu "mesaYaBooking/internal/modules/menu/domain"
	"mesaYaBooking/internal/modules/realtime/application/handler"
	realtimeusecase "mesaYaBooking/internal/modules/realtime/application/usecase"
	"mesaYaBooking/internal/modules/realtime/infrastructure"
	"mesaYaBooking/internal/modules/reservations/application/port"
	reservationusecase "mesaYaBooking/internal/modules/reservations/application/usecase"
	reservationstore "mesaYaBooking/internal/modules/reservations/infrastructure"
	staffusecase "mesaYaBooking/internal/modules/staff/application/usecase"
	"mesaYaBooking/internal/platform/broker"
	"mesaYaBooking/internal/platform/metrics"
	"mesaYaBooking/internal/shared/auth"
)

// App owns the long-lived components of a running booking service.
type App struct {
	cfg       *config.Config
	Echo      *echo.Echo
	Engine    *reservationusecase.Engine
	Sessions  *chat.SessionStore
	Hub       *infrastructure.Hub
	Metrics   *metrics.Metrics
	db        *sql.DB
	kafka     *broker.KafkaPublisher
	registry  *infrastructure.HandlerRegistry
	consumers *sync.WaitGroup
}

// Build assembles the storage, engine, realtime and HTTP layers from configuration.
func Build(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*App, error) {
	app := &App{cfg: cfg, Metrics: m, registry: infrastructure.NewHandlerRegistry()}

	store, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}

	app.Hub = infrastructure.NewHub(m)
	fanout := reservationstore.NewFanoutPublisher()
	engine := reservationusecase.NewEngine(cfg.Restaurant, store, fanout, reservationusecase.WithObserver(m))
	app.Engine = engine

	snapshots := realtimeusecase.NewSnapshotUseCase(engine)
	broadcastUC := realtimeusecase.NewBroadcastUseCase(app.Hub, snapshots)
	fanout.Add(broadcastUC)
	if cfg.Kafka.Enabled() {
		app.kafka = broker.NewKafkaPublisher(broker.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), cfg.InstanceID, m)
		fanout.Add(app.kafka)
	}

	app.registry.Register(handler.NewReservationEventHandler(cfg.Kafka.Topic, cfg.InstanceID, engine, broadcastUC))

	app.Sessions = chat.NewSessionStore(time.Now)
	jwtSvc := auth.NewJWTService(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, cfg.Security.JWTTTL)

	app.Echo = New(Dependencies{
		Engine:    engine,
		Chat:      chatusecase.NewChatUseCase(engine, menu.Default(), app.Sessions, m),
		Menu:      menu.Default(),
		Hub:       app.Hub,
		Snapshots: snapshots,
		Broadcast: broadcastUC,
		Login:     staffusecase.NewLoginUseCase(cfg.Security.StaffUsername, cfg.Security.StaffPasswordHash, jwtSvc),
		Validator: jwtSvc,
		Metrics:   m,
	})
	return app, nil
}

func (a *App) openStore(ctx context.Context) (port.ReservationStore, error) {
	if a.cfg.Storage.Driver != config.StoragePostgres {
		slog.Info("using in-memory reservation store")
		return reservationstore.NewMemoryStore(), nil
	}
	db, err := reservationstore.OpenPostgres(ctx, a.cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, err
	}
	pg := reservationstore.NewPostgresStore(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	slog.Info("using postgres reservation store")
	return pg, nil
}

// Start launches the Kafka consumers, the session pruner and the HTTP listener. It returns
// once the listener stops.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.Kafka.Enabled() {
		a.consumers = broker.StartKafkaConsumers(ctx, a.registry, a.cfg.Kafka.Brokers, a.cfg.Kafka.GroupID, a.Metrics)
		slog.Info("kafka consumers started", slog.Any("brokers", a.cfg.Kafka.Brokers), slog.String("topic", a.cfg.Kafka.Topic), slog.String("group", a.cfg.Kafka.GroupID))
	} else {
		slog.Info("kafka disabled; reservation events stay local")
	}
	go a.pruneSessions(ctx)

	addr := ":" + a.cfg.Server.Port
	slog.Info("http server listening", slog.String("addr", addr), slog.String("instance", a.cfg.InstanceID))
	if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (a *App) pruneSessions(ctx context.Context) {
	ttl := a.cfg.Sessions.IdleTTL
	if ttl <= 0 {
		return
	}
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := a.Sessions.Prune(ttl); removed > 0 {
				slog.Debug("chat sessions pruned", slog.Int("removed", removed), slog.Int("remaining", a.Sessions.Len()))
			}
		}
	}
}

// Shutdown stops the HTTP server and releases broker and database resources. Consumers stop
// when the context passed to Start is cancelled.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Echo.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if a.consumers != nil {
		a.consumers.Wait()
	}
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka writer: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
