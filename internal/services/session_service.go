package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mithil0407/playernumberone/internal/models"
	"github.com/mithil0407/playernumberone/internal/repository"
)

var (
	ErrMalformedID      = errors.New("malformed identifier")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrSlotConflict     = errors.New("time slot already booked")
	ErrInvalidTimeSlot  = errors.New("time is not an offered slot")
	ErrInvalidStatus    = errors.New("invalid status")
)

// sessionTimeSlots is the fixed set of time-of-day labels the schedule page
// offers. Dates stay free-form display strings; only the time label is
// enumerable.
var sessionTimeSlots = []string{
	"10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM",
	"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM",
	"4:00 PM", "4:30 PM", "5:00 PM", "5:30 PM",
}

type customerReader interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
}

type orderReader interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
}

type sessionStore interface {
	Create(ctx context.Context, input repository.CreateSessionInput) (*models.Session, error)
	IsSlotBooked(ctx context.Context, scheduledDate, scheduledTime string) (bool, error)
	ListScheduledSlots(ctx context.Context) ([]models.Slot, error)
	List(ctx context.Context) ([]models.Session, error)
}

type slotBroadcaster interface {
	BroadcastSlotBooked(scheduledDate, scheduledTime string)
}

type SessionService struct {
	sessions  sessionStore
	customers customerReader
	orders    orderReader
	cache     *SlotCache
	feed      slotBroadcaster
}

// NewSessionService wires the booking workflow. cache and feed may be nil;
// booking then skips cache invalidation and live slot updates.
func NewSessionService(
	sessions sessionStore,
	customers customerReader,
	orders orderReader,
	cache *SlotCache,
	feed slotBroadcaster,
) *SessionService {
	return &SessionService{
		sessions:  sessions,
		customers: customers,
		orders:    orders,
		cache:     cache,
		feed:      feed,
	}
}

type BookSessionInput struct {
	CustomerID    string
	OrderID       string
	ScheduledDate string
	ScheduledTime string
	Status        string
}

// BookSession validates the booking request and inserts the session. All
// identifier checks run before any database round-trip. The availability read
// gives a friendly early conflict answer; the real guarantee is the unique
// slot index, which surfaces as ErrSlotConflict when two requests race.
func (s *SessionService) BookSession(ctx context.Context, input BookSessionInput) (*models.Session, error) {
	customerID := strings.TrimSpace(input.CustomerID)
	orderID := strings.TrimSpace(input.OrderID)
	scheduledDate := strings.TrimSpace(input.ScheduledDate)
	scheduledTime := strings.TrimSpace(input.ScheduledTime)

	missing := make([]string, 0, 4)
	if customerID == "" {
		missing = append(missing, "customer_id")
	}
	if orderID == "" {
		missing = append(missing, "order_id")
	}
	if scheduledDate == "" {
		missing = append(missing, "scheduled_date")
	}
	if scheduledTime == "" {
		missing = append(missing, "scheduled_time")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	if _, err := uuid.Parse(customerID); err != nil {
		return nil, fmt.Errorf("%w: customer_id", ErrMalformedID)
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, fmt.Errorf("%w: order_id", ErrMalformedID)
	}

	if !isOfferedTimeSlot(scheduledTime) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, scheduledTime)
	}

	status := models.SessionStatusScheduled
	if input.Status != "" {
		normalized, err := normalizeSessionStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = normalized
	}

	storeCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	if _, err := s.customers.GetByID(storeCtx, customerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
		}
		return nil, err
	}
	if _, err := s.orders.GetByID(storeCtx, orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	booked, err := s.sessions.IsSlotBooked(storeCtx, scheduledDate, scheduledTime)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, fmt.Errorf("%w: %s at %s", ErrSlotConflict, scheduledDate, scheduledTime)
	}

	session, err := s.sessions.Create(storeCtx, repository.CreateSessionInput{
		CustomerID:    customerID,
		OrderID:       orderID,
		ScheduledDate: scheduledDate,
		ScheduledTime: scheduledTime,
		Status:        status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, fmt.Errorf("%w: %s at %s", ErrSlotConflict, scheduledDate, scheduledTime)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)
	if s.feed != nil && session.Status == models.SessionStatusScheduled {
		s.feed.BroadcastSlotBooked(session.ScheduledDate, session.ScheduledTime)
	}

	return session, nil
}

// CheckAvailability reports whether the (date, time) pair is still free.
func (s *SessionService) CheckAvailability(ctx context.Context, scheduledDate, scheduledTime string) (bool, error) {
	scheduledDate = strings.TrimSpace(scheduledDate)
	scheduledTime = strings.TrimSpace(scheduledTime)
	if scheduledDate == "" || scheduledTime == "" {
		return false, fmt.Errorf("%w: scheduled_date, scheduled_time", ErrMissingFields)
	}

	storeCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	booked, err := s.sessions.IsSlotBooked(storeCtx, scheduledDate, scheduledTime)
	if err != nil {
		return false, err
	}
	return !booked, nil
}

// ListScheduledSlots returns every currently booked (date, time) pair so the
// schedule page can render a full calendar in one round-trip.
func (s *SessionService) ListScheduledSlots(ctx context.Context) ([]models.Slot, error) {
	if slots, ok := s.cache.Get(ctx); ok {
		return slots, nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	slots, err := s.sessions.ListScheduledSlots(storeCtx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, slots)
	return slots, nil
}

func (s *SessionService) ListSessions(ctx context.Context) ([]models.Session, error) {
	storeCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	return s.sessions.List(storeCtx)
}

func isOfferedTimeSlot(scheduledTime string) bool {
	for _, slot := range sessionTimeSlots {
		if slot == scheduledTime {
			return true
		}
	}
	return false
}

func normalizeSessionStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "scheduled":
		return models.SessionStatusScheduled, nil
	case "completed":
		return models.SessionStatusCompleted, nil
	case "cancelled", "canceled":
		return models.SessionStatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}
