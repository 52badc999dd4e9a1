package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestAirportService_Create(t *testing.T) {
	repo := &MockAirportRepository{}
	service := NewAirportService(repo, nil, logger.Nop())
	ctx := context.Background()

	airport := &domain.Airport{Name: "Heathrow", ClosestBigCity: "London"}
	repo.On("Create", ctx, airport).Return(nil).Once()

	got, err := service.Create(ctx, airport)

	require.NoError(t, err)
	assert.Equal(t, airport, got)
	repo.AssertExpectations(t)
}

func TestAirportService_Create_Validation(t *testing.T) {
	repo := &MockAirportRepository{}
	service := NewAirportService(repo, nil, logger.Nop())

	_, err := service.Create(context.Background(), &domain.Airport{Name: " ", ClosestBigCity: "London"})

	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "name", valErr.Field)
	repo.AssertNotCalled(t, "Create")
}

func TestAirportService_Delete_InvalidatesFlights(t *testing.T) {
	repo := &MockAirportRepository{}
	cache := &MockInvalidator{}
	service := NewAirportService(repo, cache, logger.Nop())
	ctx := context.Background()

	repo.On("Delete", ctx, int64(3)).Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()

	assert.NoError(t, service.Delete(ctx, 3))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAirportService_Delete_NotFound(t *testing.T) {
	repo := &MockAirportRepository{}
	cache := &MockInvalidator{}
	service := NewAirportService(repo, cache, logger.Nop())
	ctx := context.Background()

	repo.On("Delete", ctx, int64(3)).Return(domain.ErrNotFound).Once()

	assert.ErrorIs(t, service.Delete(ctx, 3), domain.ErrNotFound)
	cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestRouteService_Create_DerivesDistance(t *testing.T) {
	routes := &MockRouteRepository{}
	airports := &MockAirportRepository{}
	service := NewRouteService(routes, airports, nil, logger.Nop())
	ctx := context.Background()

	airports.On("GetByID", ctx, int64(1)).Return(&domain.Airport{ID: 1, Latitude: float(51.4700), Longitude: float(-0.4543)}, nil)
	airports.On("GetByID", ctx, int64(2)).Return(&domain.Airport{ID: 2, Latitude: float(52.3105), Longitude: float(4.7683)}, nil)
	routes.On("Create", ctx, mock.AnythingOfType("*domain.Route")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Route).ID = 10
	}).Once()
	routes.On("GetByID", ctx, int64(10)).Return(&domain.Route{ID: 10}, nil).Once()

	route := &domain.Route{SourceID: 1, DestinationID: 2}
	_, err := service.Create(ctx, route)

	require.NoError(t, err)
	assert.InDelta(t, 370, route.Distance, 5)
	routes.AssertExpectations(t)
}

func TestRouteService_Create_NearbyAirportsGetMinimumDistance(t *testing.T) {
	routes := &MockRouteRepository{}
	airports := &MockAirportRepository{}
	service := NewRouteService(routes, airports, nil, logger.Nop())
	ctx := context.Background()

	// About 110 m apart.
	airports.On("GetByID", ctx, int64(1)).Return(&domain.Airport{ID: 1, Latitude: float(51.4700), Longitude: float(-0.4543)}, nil)
	airports.On("GetByID", ctx, int64(2)).Return(&domain.Airport{ID: 2, Latitude: float(51.4710), Longitude: float(-0.4543)}, nil)
	routes.On("Create", ctx, mock.AnythingOfType("*domain.Route")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Route).ID = 11
	}).Once()
	routes.On("GetByID", ctx, int64(11)).Return(&domain.Route{ID: 11}, nil).Once()

	route := &domain.Route{SourceID: 1, DestinationID: 2}
	_, err := service.Create(ctx, route)

	require.NoError(t, err)
	assert.Equal(t, 1, route.Distance)
	routes.AssertExpectations(t)
}

func TestRouteService_Create_SameCoordinatesNeedDistance(t *testing.T) {
	routes := &MockRouteRepository{}
	airports := &MockAirportRepository{}
	service := NewRouteService(routes, airports, nil, logger.Nop())
	ctx := context.Background()

	airports.On("GetByID", ctx, int64(1)).Return(&domain.Airport{ID: 1, Latitude: float(51.4700), Longitude: float(-0.4543)}, nil)
	airports.On("GetByID", ctx, int64(2)).Return(&domain.Airport{ID: 2, Latitude: float(51.4700), Longitude: float(-0.4543)}, nil)

	_, err := service.Create(ctx, &domain.Route{SourceID: 1, DestinationID: 2})

	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "distance", valErr.Field)
	assert.Contains(t, valErr.Message, "share coordinates")
	routes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRouteDistanceKm_RoundsSubKilometreUp(t *testing.T) {
	a := &domain.Airport{Latitude: float(40.0), Longitude: float(-73.0)}
	b := &domain.Airport{Latitude: float(40.002), Longitude: float(-73.0)}

	km, ok := routeDistanceKm(a, b)

	require.True(t, ok)
	assert.Equal(t, 1, km)
}

func TestRouteService_Create_KeepsGivenDistance(t *testing.T) {
	routes := &MockRouteRepository{}
	airports := &MockAirportRepository{}
	service := NewRouteService(routes, airports, nil, logger.Nop())
	ctx := context.Background()

	route := &domain.Route{SourceID: 1, DestinationID: 2, Distance: 400}
	routes.On("Create", ctx, route).Return(nil).Once()
	routes.On("GetByID", ctx, int64(0)).Return(route, nil).Once()

	_, err := service.Create(ctx, route)

	require.NoError(t, err)
	assert.Equal(t, 400, route.Distance)
	airports.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRouteService_Create_NoCoordinatesNeedsDistance(t *testing.T) {
	routes := &MockRouteRepository{}
	airports := &MockAirportRepository{}
	service := NewRouteService(routes, airports, nil, logger.Nop())
	ctx := context.Background()

	airports.On("GetByID", ctx, int64(1)).Return(&domain.Airport{ID: 1}, nil)
	airports.On("GetByID", ctx, int64(2)).Return(&domain.Airport{ID: 2}, nil)

	_, err := service.Create(ctx, &domain.Route{SourceID: 1, DestinationID: 2})

	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "distance", valErr.Field)
	routes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRouteService_Create_UnknownAirport(t *testing.T) {
	routes := &MockRouteRepository{}
	airports := &MockAirportRepository{}
	service := NewRouteService(routes, airports, nil, logger.Nop())
	ctx := context.Background()

	airports.On("GetByID", ctx, int64(1)).Return(nil, domain.ErrNotFound)

	_, err := service.Create(ctx, &domain.Route{SourceID: 1, DestinationID: 2})

	var refErr *domain.ReferentialError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, int64(1), refErr.ID)
}

func TestRouteService_Create_SameEndpoints(t *testing.T) {
	service := NewRouteService(&MockRouteRepository{}, &MockAirportRepository{}, nil, logger.Nop())

	_, err := service.Create(context.Background(), &domain.Route{SourceID: 1, DestinationID: 1, Distance: 10})

	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "destination", valErr.Field)
}

func TestRouteDistanceKm(t *testing.T) {
	_, ok := routeDistanceKm(&domain.Airport{}, &domain.Airport{Latitude: float(1), Longitude: float(1)})
	assert.False(t, ok)

	km, ok := routeDistanceKm(
		&domain.Airport{Latitude: float(0), Longitude: float(0)},
		&domain.Airport{Latitude: float(0), Longitude: float(0)},
	)
	assert.True(t, ok)
	assert.Zero(t, km)
}

func TestCrewService(t *testing.T) {
	repo := &MockCrewRepository{}
	service := NewCrewService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, &domain.Crew{FirstName: "Anna"})
	assert.True(t, domain.IsClientError(err))

	crew := &domain.Crew{ID: 5, FirstName: "Anna", LastName: "Novak"}
	repo.On("Update", ctx, crew).Return(nil).Once()
	got, err := service.Update(ctx, crew)
	require.NoError(t, err)
	assert.Equal(t, "Anna Novak", got.FullName())

	repo.On("List", ctx, domain.CrewFilter{Search: "nov"}).Return([]domain.Crew{*crew}, 1, nil).Once()
	list, total, err := service.List(ctx, domain.CrewFilter{Search: "nov"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)

	repo.AssertExpectations(t)
}

func TestAirplaneService_Create(t *testing.T) {
	repo := &MockAirplaneRepository{}
	types := &MockAirplaneTypeRepository{}
	service := NewAirplaneService(repo, types, nil, logger.Nop())
	ctx := context.Background()

	plane := &domain.Airplane{Name: "G-EUUA", Rows: 20, SeatsInRow: 6, AirplaneTypeID: 2}
	types.On("GetByID", ctx, int64(2)).Return(&domain.AirplaneType{ID: 2, Name: "A320"}, nil).Once()
	repo.On("Create", ctx, plane).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Airplane).ID = 8
	}).Once()
	stored := *plane
	stored.ID = 8
	repo.On("GetByID", ctx, int64(8)).Return(&stored, nil).Once()

	got, err := service.Create(ctx, plane)

	require.NoError(t, err)
	assert.Equal(t, 120, got.Capacity())
	repo.AssertExpectations(t)
	types.AssertExpectations(t)
}

func TestAirplaneService_Create_UnknownType(t *testing.T) {
	repo := &MockAirplaneRepository{}
	types := &MockAirplaneTypeRepository{}
	service := NewAirplaneService(repo, types, nil, logger.Nop())
	ctx := context.Background()

	types.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound).Once()

	_, err := service.Create(ctx, &domain.Airplane{Name: "X", Rows: 1, SeatsInRow: 1, AirplaneTypeID: 9})

	var refErr *domain.ReferentialError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "airplane type", refErr.Entity)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAirplaneService_Create_InvalidLayout(t *testing.T) {
	service := NewAirplaneService(&MockAirplaneRepository{}, &MockAirplaneTypeRepository{}, nil, logger.Nop())

	_, err := service.Create(context.Background(), &domain.Airplane{Name: "X", Rows: 0, SeatsInRow: 6, AirplaneTypeID: 1})

	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "rows", valErr.Field)
}

func TestAirplaneService_Update_InvalidatesFlights(t *testing.T) {
	repo := &MockAirplaneRepository{}
	types := &MockAirplaneTypeRepository{}
	cache := &MockInvalidator{}
	service := NewAirplaneService(repo, types, cache, logger.Nop())
	ctx := context.Background()

	plane := &domain.Airplane{ID: 8, Name: "G-EUUA", Rows: 25, SeatsInRow: 6, AirplaneTypeID: 2}
	types.On("GetByID", ctx, int64(2)).Return(&domain.AirplaneType{ID: 2}, nil).Once()
	repo.On("Update", ctx, plane).Return(nil).Once()
	repo.On("GetByID", ctx, int64(8)).Return(plane, nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()

	_, err := service.Update(ctx, plane)

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestAirplaneTypeService_Create_Duplicate(t *testing.T) {
	repo := &MockAirplaneTypeRepository{}
	service := NewAirplaneTypeService(repo, nil, logger.Nop())
	ctx := context.Background()

	dup := &domain.ValidationError{Field: "name", Message: "airplane type with this name already exists"}
	typ := &domain.AirplaneType{Name: "A320"}
	repo.On("Create", ctx, typ).Return(dup).Once()

	_, err := service.Create(ctx, typ)
	assert.Equal(t, dup, err)
}
