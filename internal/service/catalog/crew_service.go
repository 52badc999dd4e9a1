package catalog

import (
	"context"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/repository"
)

type CrewUseCase interface {
	List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) (*domain.Crew, error)
	Update(ctx context.Context, crew *domain.Crew) (*domain.Crew, error)
	Delete(ctx context.Context, id int64) error
}

type CrewService struct {
	repo repository.CrewRepository
}

func NewCrewService(repo repository.CrewRepository) *CrewService {
	return &CrewService{repo: repo}
}

func (s *CrewService) List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *CrewService) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CrewService) Create(ctx context.Context, crew *domain.Crew) (*domain.Crew, error) {
	if err := domain.ValidateCrew(crew); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, crew); err != nil {
		return nil, err
	}
	return crew, nil
}

func (s *CrewService) Update(ctx context.Context, crew *domain.Crew) (*domain.Crew, error) {
	if err := domain.ValidateCrew(crew); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, crew); err != nil {
		return nil, err
	}
	return crew, nil
}

// Delete unassigns the crew member from every flight first.
func (s *CrewService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var _ CrewUseCase = (*CrewService)(nil)
