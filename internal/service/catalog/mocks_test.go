package catalog

import (
	"context"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) Create(ctx context.Context, a *domain.Airport) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Airport), args.Int(1), args.Error(2)
}

func (m *MockAirportRepository) Update(ctx context.Context, a *domain.Airport) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAirportRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Create(ctx context.Context, r *domain.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Route), args.Int(1), args.Error(2)
}

func (m *MockRouteRepository) Update(ctx context.Context, r *domain.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCrewRepository struct {
	mock.Mock
}

func (m *MockCrewRepository) Create(ctx context.Context, c *domain.Crew) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}

func (m *MockCrewRepository) List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Crew), args.Int(1), args.Error(2)
}

func (m *MockCrewRepository) Update(ctx context.Context, c *domain.Crew) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCrewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAirplaneTypeRepository struct {
	mock.Mock
}

func (m *MockAirplaneTypeRepository) Create(ctx context.Context, t *domain.AirplaneType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

func (m *MockAirplaneTypeRepository) List(ctx context.Context, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.AirplaneType), args.Int(1), args.Error(2)
}

func (m *MockAirplaneTypeRepository) Update(ctx context.Context, t *domain.AirplaneType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockAirplaneTypeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAirplaneRepository struct {
	mock.Mock
}

func (m *MockAirplaneRepository) Create(ctx context.Context, a *domain.Airplane) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Airplane), args.Int(1), args.Error(2)
}

func (m *MockAirplaneRepository) Update(ctx context.Context, a *domain.Airplane) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAirplaneRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
