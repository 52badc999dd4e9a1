package booking

import (
	"context"
	"time"

	"github.com/Domenick1991/airbooking/internal/auth"
	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/kafka"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/Domenick1991/airbooking/internal/repository"
)

type BookingUseCase interface {
	CreateOrder(ctx context.Context, user auth.Principal, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, user auth.Principal, page domain.Page) ([]domain.Order, int, error)
	GetOrder(ctx context.Context, user auth.Principal, id int64) (*domain.Order, error)
	UpdateTicket(ctx context.Context, user auth.Principal, input UpdateTicketInput) (*domain.Ticket, error)
	DeleteOrder(ctx context.Context, user auth.Principal, id int64) error
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, key domain.SeatKey, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, key domain.SeatKey) error
	InvalidateFlights(ctx context.Context) error
}

type Publisher interface {
	PublishOrderEvent(ctx context.Context, event kafka.OrderEvent) error
}

type TicketInput struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
}

type CreateOrderInput struct {
	Tickets []TicketInput `json:"tickets"`
}

// UpdateTicketInput moves a ticket. A zero FlightID keeps the current flight.
type UpdateTicketInput struct {
	OrderID  int64
	TicketID int64
	Row      int
	Seat     int
	FlightID int64
}

type BookingService struct {
	orders    repository.OrderRepository
	tickets   repository.TicketRepository
	validator *TicketValidator
	cache     Cache
	publisher Publisher
	log       *logger.Logger
	lockTTL   time.Duration
}

const cleanupTimeout = 2 * time.Second

type BookingServiceOption func(*BookingService)

func WithSeatLockTTL(ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

func NewBookingService(
	orders repository.OrderRepository,
	tickets repository.TicketRepository,
	flights repository.FlightRepository,
	cache Cache,
	publisher Publisher,
	log *logger.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		orders:    orders,
		tickets:   tickets,
		validator: NewTicketValidator(flights, tickets),
		cache:     cache,
		publisher: publisher,
		log:       log,
		lockTTL:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateOrder validates every ticket, then stores the order and all tickets in one transaction.
// Either the whole order persists or nothing does.
func (s *BookingService) CreateOrder(ctx context.Context, user auth.Principal, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Tickets) == 0 {
		return nil, &domain.ValidationError{Field: "tickets", Message: "at least one ticket is required"}
	}

	tickets := make([]domain.Ticket, 0, len(input.Tickets))
	for _, t := range input.Tickets {
		tickets = append(tickets, domain.Ticket{Row: t.Row, Seat: t.Seat, FlightID: t.FlightID})
	}

	if err := s.validator.ValidateAll(ctx, tickets); err != nil {
		return nil, err
	}

	keys := make([]domain.SeatKey, 0, len(tickets))
	for _, t := range tickets {
		keys = append(keys, t.Key())
	}
	release, err := s.lockSeats(ctx, keys)
	if err != nil {
		return nil, err
	}
	defer release()

	order := &domain.Order{UserID: user.UserID, Tickets: tickets}
	if err := s.orders.CreateWithTickets(ctx, order); err != nil {
		return nil, err
	}
	s.log.Infof("BOOKING", "order %d created by user %d with %d tickets", order.ID, user.UserID, len(order.Tickets))

	s.publish(ctx, kafka.EventOrderCreated, order, user.Email)
	s.invalidateFlights(ctx)

	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		s.log.Warnf("BOOKING", "reload of order %d failed: %v", order.ID, err)
		return order, nil
	}
	return created, nil
}

func (s *BookingService) ListOrders(ctx context.Context, user auth.Principal, page domain.Page) ([]domain.Order, int, error) {
	return s.orders.List(ctx, domain.OrderFilter{UserID: user.UserID, Page: page})
}

// GetOrder hides other users' orders as not found.
func (s *BookingService) GetOrder(ctx context.Context, user auth.Principal, id int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.UserID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// UpdateTicket re-runs the seat rules against the new placement before saving.
func (s *BookingService) UpdateTicket(ctx context.Context, user auth.Principal, input UpdateTicketInput) (*domain.Ticket, error) {
	if _, err := s.GetOrder(ctx, user, input.OrderID); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}
	if ticket.OrderID != input.OrderID {
		return nil, domain.ErrNotFound
	}

	ticket.Row = input.Row
	ticket.Seat = input.Seat
	if input.FlightID != 0 {
		ticket.FlightID = input.FlightID
	}

	if err := s.validator.Validate(ctx, *ticket); err != nil {
		return nil, err
	}

	release, err := s.lockSeats(ctx, []domain.SeatKey{ticket.Key()})
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.invalidateFlights(ctx)
	return ticket, nil
}

// DeleteOrder removes the order and its tickets.
func (s *BookingService) DeleteOrder(ctx context.Context, user auth.Principal, id int64) error {
	order, err := s.GetOrder(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventOrderCancelled, order, user.Email)
	s.invalidateFlights(ctx)
	return nil
}

// lockSeats takes a short Redis lock per seat so concurrent submissions for the same seat fail fast.
// Redis being unavailable is not fatal: the unique index still decides.
func (s *BookingService) lockSeats(ctx context.Context, keys []domain.SeatKey) (func(), error) {
	if s.cache == nil {
		return func() {}, nil
	}

	held := make([]domain.SeatKey, 0, len(keys))
	release := func() {
		releaseCtx, cancel := detached(ctx)
		defer cancel()
		for _, k := range held {
			if err := s.cache.ReleaseSeatLock(releaseCtx, k); err != nil {
				s.log.Warnf("BOOKING", "release seat lock %s: %v", k, err)
			}
		}
	}

	for _, k := range keys {
		ok, err := s.cache.AcquireSeatLock(ctx, k, s.lockTTL)
		if err != nil {
			s.log.Warnf("BOOKING", "seat lock unavailable, relying on database: %v", err)
			continue
		}
		if !ok {
			release()
			return nil, &domain.UniquenessError{FlightID: k.FlightID, Row: k.Row, Seat: k.Seat}
		}
		held = append(held, k)
	}
	return release, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, order *domain.Order, email string) {
	if s.publisher == nil {
		return
	}
	event := kafka.NewOrderEvent(eventType, order, email)
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Warnf("KAFKA", "failed to publish %s for order %d: %v", eventType, order.ID, err)
	}
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	invalidateCtx, cancel := detached(ctx)
	defer cancel()
	if err := s.cache.InvalidateFlights(invalidateCtx); err != nil {
		s.log.Warnf("CACHE", "failed to invalidate flights cache: %v", err)
	}
}

// detached outlives the request deadline so cleanup after a commit or a failed insert still reaches Redis.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
}

var _ BookingUseCase = (*BookingService)(nil)
