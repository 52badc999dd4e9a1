package flights

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking/internal/cache"
	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/Domenick1991/airbooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type FlightCache interface {
	GetFlights(ctx context.Context, filter domain.FlightFilter) (*cache.FlightPage, int64, error)
	SetFlights(ctx context.Context, version int64, filter domain.FlightFilter, page *cache.FlightPage) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo      repository.FlightRepository
	routes    repository.RouteRepository
	airplanes repository.AirplaneRepository
	cache     FlightCache
	log       *logger.Logger
}

func NewFlightService(
	repo repository.FlightRepository,
	routes repository.RouteRepository,
	airplanes repository.AirplaneRepository,
	cache FlightCache,
	log *logger.Logger,
) *FlightService {
	return &FlightService{repo: repo, routes: routes, airplanes: airplanes, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, int, error) {
	// Only a clean miss is written back, under the version it was read at.
	cacheable := false
	var version int64
	if s.cache != nil {
		cached, v, err := s.cache.GetFlights(ctx, filter)
		switch {
		case err != nil:
			s.log.Warnf("CACHE", "flights cache read failed: %v", err)
		case cached != nil:
			return cached.Flights, cached.Count, nil
		default:
			cacheable, version = true, v
		}
	}

	flights, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if cacheable {
		if err := s.cache.SetFlights(ctx, version, filter, &cache.FlightPage{Flights: flights, Count: total}); err != nil {
			s.log.Warnf("CACHE", "flights cache write failed: %v", err)
		}
	}
	return flights, total, nil
}

// GetByID is never cached: taken seats must be current.
func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	if err := s.validate(ctx, flight); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, flight.ID)
}

// Update rejects moving the flight to an airplane whose layout cannot hold its booked seats.
func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	if err := s.validate(ctx, flight); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, flight.ID)
}

// Delete removes the flight with its tickets and crew assignments.
func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) validate(ctx context.Context, flight *domain.Flight) error {
	if err := domain.ValidateFlight(flight); err != nil {
		return err
	}
	if _, err := s.routes.GetByID(ctx, flight.RouteID); err != nil {
		return referenced(err, "route", flight.RouteID)
	}
	if _, err := s.airplanes.GetByID(ctx, flight.AirplaneID); err != nil {
		return referenced(err, "airplane", flight.AirplaneID)
	}
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warnf("CACHE", "failed to invalidate flights cache: %v", err)
	}
}

func referenced(err error, entity string, id int64) error {
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ReferentialError{Entity: entity, ID: id}
	}
	return err
}

var _ FlightUseCase = (*FlightService)(nil)
