package catalog

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/Domenick1991/airbooking/internal/repository"
)

type RouteUseCase interface {
	List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) (*domain.Route, error)
	Update(ctx context.Context, route *domain.Route) (*domain.Route, error)
	Delete(ctx context.Context, id int64) error
}

type RouteService struct {
	repo     repository.RouteRepository
	airports repository.AirportRepository
	cache    FlightsInvalidator
	log      *logger.Logger
}

func NewRouteService(repo repository.RouteRepository, airports repository.AirportRepository, cache FlightsInvalidator, log *logger.Logger) *RouteService {
	return &RouteService{repo: repo, airports: airports, cache: cache, log: log}
}

func (s *RouteService) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *RouteService) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RouteService) Create(ctx context.Context, route *domain.Route) (*domain.Route, error) {
	if err := s.prepare(ctx, route); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, route); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, route.ID)
}

func (s *RouteService) Update(ctx context.Context, route *domain.Route) (*domain.Route, error) {
	if err := s.prepare(ctx, route); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, route); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, s.log)
	return s.repo.GetByID(ctx, route.ID)
}

func (s *RouteService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// prepare fills a missing distance from airport coordinates, then validates.
func (s *RouteService) prepare(ctx context.Context, route *domain.Route) error {
	if route.Distance == 0 && route.SourceID > 0 && route.DestinationID > 0 && route.SourceID != route.DestinationID {
		src, err := s.airport(ctx, route.SourceID)
		if err != nil {
			return err
		}
		dst, err := s.airport(ctx, route.DestinationID)
		if err != nil {
			return err
		}
		if km, ok := routeDistanceKm(src, dst); ok {
			if km == 0 {
				return &domain.ValidationError{Field: "distance", Message: "airports share coordinates, distance must be given"}
			}
			route.Distance = km
		}
	}
	return domain.ValidateRoute(route)
}

func (s *RouteService) airport(ctx context.Context, id int64) (*domain.Airport, error) {
	a, err := s.airports.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.ReferentialError{Entity: "airport", ID: id}
	}
	return a, err
}

var _ RouteUseCase = (*RouteService)(nil)
