package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking/api"
	"github.com/Domenick1991/airbooking/config"
	"github.com/Domenick1991/airbooking/internal/auth"
	"github.com/Domenick1991/airbooking/internal/bootstrap"
	"github.com/Domenick1991/airbooking/internal/cache"
	"github.com/Domenick1991/airbooking/internal/kafka"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/Domenick1991/airbooking/internal/repository"
	"github.com/Domenick1991/airbooking/internal/service/booking"
	"github.com/Domenick1991/airbooking/internal/service/catalog"
	"github.com/Domenick1991/airbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.NewLogger().Fatal("APP", fmt.Sprintf("load config: %v", err))
	}
	log := logger.New(os.Stdout, logger.ParseLevel(cfg.Log.Level))
	if logger.ParseLevel(cfg.Log.Level) != logger.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("APP", fmt.Sprintf("connect postgres: %v", err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCacheDuration())
	defer redisCache.Close()

	var publisher booking.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Warnf("APP", "kafka not reachable yet: %v", err)
		}
		publisher = kafka.NewOrderPublisher(producer, cfg.Kafka.OrdersTopic,
			kafka.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))
	} else {
		log.Warn("APP", "no kafka brokers configured, order events are disabled")
	}

	airportRepo := repository.NewAirportRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	airplaneTypeRepo := repository.NewAirplaneTypeRepository(pool)
	airplaneRepo := repository.NewAirplaneRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	flightService := flights.NewFlightService(flightRepo, routeRepo, airplaneRepo, redisCache, log)
	bookingService := booking.NewBookingService(
		orderRepo,
		ticketRepo,
		flightRepo,
		redisCache,
		publisher,
		log,
		booking.WithSeatLockTTL(cfg.Booking.SeatLockTTL()),
	)

	router := api.NewRouter(log, auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer), cfg, api.Handlers{
		Airports:      api.NewAirportHandler(catalog.NewAirportService(airportRepo, redisCache, log)),
		Routes:        api.NewRouteHandler(catalog.NewRouteService(routeRepo, airportRepo, redisCache, log)),
		Crews:         api.NewCrewHandler(catalog.NewCrewService(crewRepo)),
		AirplaneTypes: api.NewAirplaneTypeHandler(catalog.NewAirplaneTypeService(airplaneTypeRepo, redisCache, log)),
		Airplanes:     api.NewAirplaneHandler(catalog.NewAirplaneService(airplaneRepo, airplaneTypeRepo, redisCache, log)),
		Flights:       api.NewFlightHandler(flightService),
		Orders:        api.NewOrderHandler(bookingService),
	})

	checks := []bootstrap.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: redisCache.Ping},
	}
	if err := bootstrap.Run(ctx, cfg, log, router, checks...); err != nil {
		log.Fatal("APP", fmt.Sprintf("server error: %v", err))
	}
}
