package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/airbooking/config"
	"github.com/Domenick1991/airbooking/internal/auth"
	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const unauthorizedBody = `{"error":"authentication credentials were not provided or are invalid"}`

type routerFixture struct {
	router   *gin.Engine
	verifier *MockVerifier
	airports *MockAirportUseCase
	orders   *MockBookingUseCase
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		verifier: &MockVerifier{},
		airports: &MockAirportUseCase{},
		orders:   &MockBookingUseCase{},
	}
	f.verifier.On("Verify", "staff").Return(&auth.Principal{UserID: 1, IsStaff: true}, nil)
	f.verifier.On("Verify", "user").Return(&auth.Principal{UserID: 7}, nil)
	f.verifier.On("Verify", mock.Anything).Return(nil, auth.ErrUnauthorized)

	cfg := &config.Config{
		HTTP:    config.HTTPConfig{RateLimitRPS: 1000, RateLimitBurst: 1000},
		Booking: config.BookingConfig{RequestTimeoutSeconds: 5},
	}
	f.router = NewRouter(logger.Nop(), f.verifier, cfg, Handlers{
		Airports:      NewAirportHandler(f.airports),
		Routes:        NewRouteHandler(nil),
		Crews:         NewCrewHandler(nil),
		AirplaneTypes: NewAirplaneTypeHandler(nil),
		Airplanes:     NewAirplaneHandler(nil),
		Flights:       NewFlightHandler(&MockFlightUseCase{}),
		Orders:        NewOrderHandler(f.orders),
	})
	return f
}

func (f *routerFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_unauthenticatedIsUniform(t *testing.T) {
	f := newRouterFixture()

	paths := []string{
		"/api/airport/airports/",
		"/api/airport/flights/",
		"/api/airport/orders/",
		"/api/airport/orders/1",
	}
	for _, path := range paths {
		for _, token := range []string{"", "garbage"} {
			w := f.do(http.MethodGet, path, token, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code, path)
			assert.JSONEq(t, unauthorizedBody, w.Body.String(), path)
		}
	}
}

func TestRouter_staffOnlyCatalogWrites(t *testing.T) {
	f := newRouterFixture()

	w := f.do(http.MethodPost, "/api/airport/airports/", "user", `{"name":"Heathrow"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"`+domain.ErrForbidden.Error()+`"}`, w.Body.String())
	f.airports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	f.airports.On("Create", mock.Anything, mock.Anything).Return(&domain.Airport{ID: 1, Name: "Heathrow"}, nil)
	w = f.do(http.MethodPost, "/api/airport/airports/", "staff", `{"name":"Heathrow"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouter_customerCanReadCatalog(t *testing.T) {
	f := newRouterFixture()
	f.airports.On("List", mock.Anything, mock.Anything).Return([]domain.Airport{}, 0, nil)

	w := f.do(http.MethodGet, "/api/airport/airports/", "user", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0,"results":[]}`, w.Body.String())
}

func TestRouter_customerCanOrder(t *testing.T) {
	f := newRouterFixture()
	f.orders.On("CreateOrder", mock.Anything, auth.Principal{UserID: 7}, mock.Anything).
		Return(&domain.Order{ID: 1, UserID: 7}, nil)

	w := f.do(http.MethodPost, "/api/airport/orders/", "user", `{"tickets":[{"row":1,"seat":1,"flight":1}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouter_internalErrorHidesDetail(t *testing.T) {
	f := newRouterFixture()
	f.orders.On("ListOrders", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Order(nil), 0, errors.New("list orders: pool closed"))

	w := f.do(http.MethodGet, "/api/airport/orders/", "user", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pool closed")
}
