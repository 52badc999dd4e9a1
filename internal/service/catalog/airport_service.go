package catalog

import (
	"context"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/Domenick1991/airbooking/internal/repository"
)

type AirportUseCase interface {
	List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) (*domain.Airport, error)
	Update(ctx context.Context, airport *domain.Airport) (*domain.Airport, error)
	Delete(ctx context.Context, id int64) error
}

type AirportService struct {
	repo  repository.AirportRepository
	cache FlightsInvalidator
	log   *logger.Logger
}

func NewAirportService(repo repository.AirportRepository, cache FlightsInvalidator, log *logger.Logger) *AirportService {
	return &AirportService{repo: repo, cache: cache, log: log}
}

func (s *AirportService) List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *AirportService) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirportService) Create(ctx context.Context, airport *domain.Airport) (*domain.Airport, error) {
	if err := domain.ValidateAirport(airport); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, airport); err != nil {
		return nil, err
	}
	return airport, nil
}

func (s *AirportService) Update(ctx context.Context, airport *domain.Airport) (*domain.Airport, error) {
	if err := domain.ValidateAirport(airport); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, airport); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, s.log)
	return airport, nil
}

// Delete also removes routes starting or ending here, with their flights and tickets.
func (s *AirportService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

var _ AirportUseCase = (*AirportService)(nil)
