package catalog

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/Domenick1991/airbooking/internal/repository"
)

type AirplaneTypeUseCase interface {
	List(ctx context.Context, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, int, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	Create(ctx context.Context, t *domain.AirplaneType) (*domain.AirplaneType, error)
	Update(ctx context.Context, t *domain.AirplaneType) (*domain.AirplaneType, error)
	Delete(ctx context.Context, id int64) error
}

type AirplaneUseCase interface {
	List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, a *domain.Airplane) (*domain.Airplane, error)
	Update(ctx context.Context, a *domain.Airplane) (*domain.Airplane, error)
	Delete(ctx context.Context, id int64) error
}

type AirplaneTypeService struct {
	repo  repository.AirplaneTypeRepository
	cache FlightsInvalidator
	log   *logger.Logger
}

func NewAirplaneTypeService(repo repository.AirplaneTypeRepository, cache FlightsInvalidator, log *logger.Logger) *AirplaneTypeService {
	return &AirplaneTypeService{repo: repo, cache: cache, log: log}
}

func (s *AirplaneTypeService) List(ctx context.Context, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *AirplaneTypeService) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirplaneTypeService) Create(ctx context.Context, t *domain.AirplaneType) (*domain.AirplaneType, error) {
	if err := domain.ValidateAirplaneType(t); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *AirplaneTypeService) Update(ctx context.Context, t *domain.AirplaneType) (*domain.AirplaneType, error) {
	if err := domain.ValidateAirplaneType(t); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes every airplane of this type, their flights and tickets.
func (s *AirplaneTypeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

type AirplaneService struct {
	repo  repository.AirplaneRepository
	types repository.AirplaneTypeRepository
	cache FlightsInvalidator
	log   *logger.Logger
}

func NewAirplaneService(repo repository.AirplaneRepository, types repository.AirplaneTypeRepository, cache FlightsInvalidator, log *logger.Logger) *AirplaneService {
	return &AirplaneService{repo: repo, types: types, cache: cache, log: log}
}

func (s *AirplaneService) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *AirplaneService) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirplaneService) Create(ctx context.Context, a *domain.Airplane) (*domain.Airplane, error) {
	if err := s.validate(ctx, a); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, a.ID)
}

// Update rejects a layout that would leave booked tickets outside it.
func (s *AirplaneService) Update(ctx context.Context, a *domain.Airplane) (*domain.Airplane, error) {
	if err := s.validate(ctx, a); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, s.log)
	return s.repo.GetByID(ctx, a.ID)
}

func (s *AirplaneService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

func (s *AirplaneService) validate(ctx context.Context, a *domain.Airplane) error {
	if err := domain.ValidateAirplane(a); err != nil {
		return err
	}
	if _, err := s.types.GetByID(ctx, a.AirplaneTypeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferentialError{Entity: "airplane type", ID: a.AirplaneTypeID}
		}
		return err
	}
	return nil
}

var (
	_ AirplaneTypeUseCase = (*AirplaneTypeService)(nil)
	_ AirplaneUseCase     = (*AirplaneService)(nil)
)
