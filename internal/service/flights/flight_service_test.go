package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airbooking/internal/cache"
	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Int(1), args.Error(2)
}

func (m *MockFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) GetLayout(ctx context.Context, flightID int64) (*domain.Airplane, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Create(ctx context.Context, r *domain.Route) error {
	return m.Called(ctx, r).Error(0)
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
	return m.Called(ctx, r).Error(0)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockAirplaneRepository struct {
	mock.Mock
}

func (m *MockAirplaneRepository) Create(ctx context.Context, a *domain.Airplane) error {
	return m.Called(ctx, a).Error(0)
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
	return m.Called(ctx, a).Error(0)
}

func (m *MockAirplaneRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context, filter domain.FlightFilter) (*cache.FlightPage, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*cache.FlightPage), args.Get(1).(int64), args.Error(2)
}

func (m *MockCache) SetFlights(ctx context.Context, version int64, filter domain.FlightFilter, page *cache.FlightPage) error {
	args := m.Called(ctx, version, filter, page)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fixture struct {
	repo      *MockFlightRepository
	routes    *MockRouteRepository
	airplanes *MockAirplaneRepository
	cache     *MockCache
	service   *FlightService
}

func newFixture() *fixture {
	f := &fixture{
		repo:      &MockFlightRepository{},
		routes:    &MockRouteRepository{},
		airplanes: &MockAirplaneRepository{},
		cache:     &MockCache{},
	}
	f.service = NewFlightService(f.repo, f.routes, f.airplanes, f.cache, logger.Nop())
	return f
}

func sampleFlights() []domain.Flight {
	departure := time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)
	return []domain.Flight{
		{
			ID:               4,
			RouteID:          1,
			AirplaneID:       2,
			DepartureTime:    departure,
			ArrivalTime:      departure.Add(75 * time.Minute),
			TicketsAvailable: 119,
		},
	}
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	filter := domain.FlightFilter{Source: "London"}
	flights := sampleFlights()

	f.cache.On("GetFlights", ctx, filter).Return(nil, int64(0), nil).Once()
	f.repo.On("List", ctx, filter).Return(flights, 1, nil).Once()
	f.cache.On("SetFlights", ctx, int64(0), filter, &cache.FlightPage{Flights: flights, Count: 1}).Return(nil).Once()

	result, total, err := f.service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	assert.Equal(t, 1, total)

	f.cache.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	filter := domain.FlightFilter{}
	flights := sampleFlights()

	f.cache.On("GetFlights", ctx, filter).Return(&cache.FlightPage{Flights: flights, Count: 31}, int64(3), nil).Once()

	result, total, err := f.service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	assert.Equal(t, 31, total)

	f.cache.AssertExpectations(t)
	f.repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "SetFlights", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_List_CacheError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	filter := domain.FlightFilter{}
	flights := sampleFlights()

	f.cache.On("GetFlights", ctx, filter).Return(nil, int64(0), errors.New("cache error")).Once()
	f.repo.On("List", ctx, filter).Return(flights, 1, nil).Once()

	result, _, err := f.service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	f.cache.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.cache.AssertNotCalled(t, "SetFlights", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_List_CacheWriteError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	filter := domain.FlightFilter{}
	flights := sampleFlights()

	f.cache.On("GetFlights", ctx, filter).Return(nil, int64(2), nil).Once()
	f.repo.On("List", ctx, filter).Return(flights, 1, nil).Once()
	f.cache.On("SetFlights", ctx, int64(2), filter, mock.Anything).Return(errors.New("cache error")).Once()

	result, _, err := f.service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	f.cache.AssertExpectations(t)
}

func TestFlightService_List_StoresPageUnderVersionItMissedOn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	filter := domain.FlightFilter{Destination: "Paris"}
	flights := sampleFlights()

	// The listing reads version 7; an invalidation during the DB query must not move the write to version 8.
	f.cache.On("GetFlights", ctx, filter).Return(nil, int64(7), nil).Once()
	f.repo.On("List", ctx, filter).Return(flights, 1, nil).Once()
	f.cache.On("SetFlights", ctx, int64(7), filter, &cache.FlightPage{Flights: flights, Count: 1}).Return(nil).Once()

	_, _, err := f.service.List(ctx, filter)

	require.NoError(t, err)
	f.cache.AssertExpectations(t)
	f.cache.AssertNotCalled(t, "SetFlights", mock.Anything, int64(8), mock.Anything, mock.Anything)
}

func TestFlightService_List_RepositoryError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	filter := domain.FlightFilter{}

	expectedErr := errors.New("database error")
	f.cache.On("GetFlights", ctx, filter).Return(nil, int64(0), nil).Once()
	f.repo.On("List", ctx, filter).Return([]domain.Flight{}, 0, expectedErr).Once()

	result, _, err := f.service.List(ctx, filter)

	assert.Equal(t, expectedErr, err)
	assert.Nil(t, result)
	f.cache.AssertNotCalled(t, "SetFlights", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_NoCache(t *testing.T) {
	repo := &MockFlightRepository{}
	service := NewFlightService(repo, &MockRouteRepository{}, &MockAirplaneRepository{}, nil, logger.Nop())
	ctx := context.Background()
	flights := sampleFlights()

	repo.On("List", ctx, domain.FlightFilter{}).Return(flights, 1, nil).Once()

	result, _, err := service.List(ctx, domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	repo.AssertExpectations(t)
}

func TestFlightService_GetByID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flight := &sampleFlights()[0]
	flight.TakenSeats = []domain.SeatPlacement{{Row: 1, Seat: 1}}

	f.repo.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()
	f.repo.On("GetByID", ctx, int64(999)).Return(nil, domain.ErrNotFound).Once()

	result, err := f.service.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, flight, result)

	_, err = f.service.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.cache.AssertNotCalled(t, "GetFlights", mock.Anything, mock.Anything)
}

func TestFlightService_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flight := sampleFlights()[0]
	flight.ID = 0

	f.routes.On("GetByID", ctx, int64(1)).Return(&domain.Route{ID: 1}, nil).Once()
	f.airplanes.On("GetByID", ctx, int64(2)).Return(&domain.Airplane{ID: 2}, nil).Once()
	f.repo.On("Create", ctx, &flight).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Flight).ID = 4
	}).Once()
	f.repo.On("GetByID", ctx, int64(4)).Return(&sampleFlights()[0], nil).Once()
	f.cache.On("InvalidateFlights", ctx).Return(nil).Once()

	got, err := f.service.Create(ctx, &flight)

	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
	f.repo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestFlightService_Create_ArrivalBeforeDeparture(t *testing.T) {
	f := newFixture()
	flight := sampleFlights()[0]
	flight.ArrivalTime = flight.DepartureTime

	_, err := f.service.Create(context.Background(), &flight)

	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "arrival_time", valErr.Field)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlightService_Create_UnknownAirplane(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flight := sampleFlights()[0]

	f.routes.On("GetByID", ctx, int64(1)).Return(&domain.Route{ID: 1}, nil).Once()
	f.airplanes.On("GetByID", ctx, int64(2)).Return(nil, domain.ErrNotFound).Once()

	_, err := f.service.Create(ctx, &flight)

	var refErr *domain.ReferentialError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "airplane", refErr.Entity)
}

func TestFlightService_Update_StrandedTickets(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flight := sampleFlights()[0]
	stranded := &domain.ValidationError{Field: "airplane", Message: "2 booked tickets do not fit the new airplane layout"}

	f.routes.On("GetByID", ctx, int64(1)).Return(&domain.Route{ID: 1}, nil).Once()
	f.airplanes.On("GetByID", ctx, int64(2)).Return(&domain.Airplane{ID: 2}, nil).Once()
	f.repo.On("Update", ctx, &flight).Return(stranded).Once()

	_, err := f.service.Update(ctx, &flight)

	assert.Equal(t, stranded, err)
	f.cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestFlightService_Delete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("Delete", ctx, int64(4)).Return(nil).Once()
	f.cache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, f.service.Delete(ctx, 4))
	f.repo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}
