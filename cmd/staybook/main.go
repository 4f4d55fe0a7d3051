package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staybook/internal/app/commands"
	bookingapp "staybook/internal/app/handlers/booking"
	notificationapp "staybook/internal/app/handlers/notification"
	profileapp "staybook/internal/app/handlers/profile"
	propertyapp "staybook/internal/app/handlers/property"
	"staybook/internal/app/middleware"
	appoutbox "staybook/internal/app/outbox"
	"staybook/internal/app/policies"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	kafkabroker "staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	mongodb "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/notify"
	"staybook/internal/infra/obs"
	infraoutbox "staybook/internal/infra/outbox"
	"staybook/internal/infra/security"
	"staybook/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.ServiceRoleKey = os.Getenv("SERVICE_ROLE_KEY")
		cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		app.close()
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	worker   *infraoutbox.Worker
	ready    func() error
	close    func()
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		uowFactory uow.UoWFactory
		outboxDst  appoutbox.Outbox
		idStore    middleware.IdempotencyStore
		notifier   policies.Notifier
		worker     *infraoutbox.Worker
		ready      = func() error { return nil }
		closeFn    = func() {}
	)

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		notificationRepo := mongodb.NewNotificationRepository(client.DB)
		uowFactory = mongodb.Factory{
			DB:               client.DB,
			PropertyRepo:     mongodb.NewPropertyRepository(client.DB),
			BookingRepo:      mongodb.NewBookingRepository(client.DB),
			ProfileRepo:      mongodb.NewProfileRepository(client.DB),
			NotificationRepo: notificationRepo,
		}
		outboxStore := infraoutbox.NewStore(client.DB)
		outboxDst = outboxStore
		idStore = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		notifier = notify.StoreNotifier{Repo: notificationRepo}
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafkabroker.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, err
			}
			worker = &infraoutbox.Worker{
				Store:       outboxStore,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
			closeFn = func() {
				if err := producer.Close(); err != nil {
					logger.Error("kafka producer close failed", "error", err)
				}
			}
		}
	} else {
		logger.Warn("MONGO_URI not set, using in-memory storage")
		factory := memory.NewFactory()
		uowFactory = factory
		outboxDst = memory.NewOutbox()
		idStore = memory.NewIdempotencyStore()
		notifier = notify.StoreNotifier{Repo: factory.NotificationRepo}
	}

	credential := security.ServiceCredential(cfg.ServiceRoleKey)
	encoder := appoutbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.SubmitBookingCommand{}.Key(), &bookingapp.SubmitBookingHandler{
		UoWFactory: uowFactory,
		Notifier:   notifier,
		Outbox:     outboxDst,
		Encoder:    encoder,
		Credential: credential,
		Logger:     logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.ResolveBookingCommand{}.Key(), &bookingapp.ResolveBookingHandler{
		Notifier: notifier,
		Outbox:   outboxDst,
		Encoder:  encoder,
		Logger:   logger,
	})
	commands.RegisterHandler(commandBus, propertyapp.CreatePropertyCommand{}.Key(), &propertyapp.CreatePropertyHandler{Logger: logger})
	commands.RegisterHandler(commandBus, propertyapp.ToggleAvailabilityCommand{}.Key(), &propertyapp.ToggleAvailabilityHandler{Logger: logger})
	commands.RegisterHandler(commandBus, profileapp.UpdateProfileCommand{}.Key(), &profileapp.UpdateProfileHandler{Logger: logger})
	commands.RegisterHandler(commandBus, notificationapp.SendNotificationCommand{}.Key(), &notificationapp.SendNotificationHandler{
		Credential: credential,
		Logger:     logger,
	})
	commands.RegisterHandler(commandBus, notificationapp.MarkReadCommand{}.Key(), &notificationapp.MarkReadHandler{})
	commands.RegisterHandler(commandBus, notificationapp.MarkAllReadCommand{}.Key(), &notificationapp.MarkAllReadHandler{})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.ListClientBookingsQuery{}.Key(), &bookingapp.ListClientBookingsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.ListHostBookingsQuery{}.Key(), &bookingapp.ListHostBookingsHandler{UoWFactory: uowFactory, Logger: logger})
	queries.RegisterHandler(queryBus, propertyapp.ListAvailablePropertiesQuery{}.Key(), &propertyapp.ListAvailablePropertiesHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, propertyapp.ListHostPropertiesQuery{}.Key(), &propertyapp.ListHostPropertiesHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, propertyapp.GetPropertyQuery{}.Key(), &propertyapp.GetPropertyHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, profileapp.GetProfileQuery{}.Key(), &profileapp.GetProfileHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, notificationapp.ListNotificationsQuery{}.Key(), &notificationapp.ListNotificationsHandler{UoWFactory: uowFactory})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxDst),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	authMW := ginserver.AuthMiddleware{
		Verifier: security.TokenVerifier{Secret: []byte(cfg.TokenSecret), Leeway: 30 * time.Second},
		Profiles: &profileapp.EnsureService{UoWFactory: uowFactory, Logger: logger},
		Logger:   logger,
	}

	return application{
		handlers: ginserver.Handlers{
			Booking: ginserver.BookingHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			HostBooking: ginserver.HostBookingHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			Property: ginserver.PropertyHandler{
				Queries: queryBusWithMiddleware,
			},
			HostProperty: ginserver.HostPropertyHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			Me: ginserver.MeHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			Notification: ginserver.NotificationHandler{
				Commands: commandBusWithMiddleware,
			},
			AuthMiddleware: authMW.Handle,
		},
		worker: worker,
		ready:  ready,
		close:  closeFn,
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
