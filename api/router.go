package api

import (
	"time"

	"github.com/Domenick1991/airbooking/config"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/Domenick1991/airbooking/internal/middleware"
	"github.com/gin-gonic/gin"
)

const basePath = "/api/airport"

type Handlers struct {
	Airports      *AirportHandler
	Routes        *RouteHandler
	Crews         *CrewHandler
	AirplaneTypes *AirplaneTypeHandler
	Airplanes     *AirplaneHandler
	Flights       *FlightHandler
	Orders        *OrderHandler
}

// NewRouter mounts every resource under /api/airport. Catalog and flight writes are staff only; orders belong to the caller.
func NewRouter(log *logger.Logger, verifier middleware.TokenVerifier, cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
		middleware.RateLimit(log, cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst),
		middleware.Timeout(time.Duration(cfg.Booking.RequestTimeoutSeconds)*time.Second),
	)

	authed := router.Group(basePath, middleware.Auth(verifier, log))

	catalog := authed.Group("", middleware.StaffOnlyWrites())
	h.Airports.Register(catalog.Group("/airports"))
	h.Routes.Register(catalog.Group("/routes"))
	h.Crews.Register(catalog.Group("/crews"))
	h.AirplaneTypes.Register(catalog.Group("/airplane_types"))
	h.Airplanes.Register(catalog.Group("/airplanes"))
	h.Flights.Register(catalog.Group("/flights"))

	h.Orders.Register(authed.Group("/orders"))

	return router
}
