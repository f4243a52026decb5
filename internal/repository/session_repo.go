package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mithil0407/playernumberone/internal/models"
)

// ErrSlotTaken is returned when inserting a session collides with the partial
// unique index on (scheduled_date, scheduled_time) for non-cancelled rows.
// The index is the authoritative double-booking guard; an availability read
// before insert only exists to give callers a friendlier early answer.
var ErrSlotTaken = errors.New("slot already booked")

const uniqueViolationCode = "23505"

type CreateSessionInput struct {
	CustomerID    string
	OrderID       string
	ScheduledDate string
	ScheduledTime string
	Status        string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	query := `
		INSERT INTO sessions (customer_id, order_id, scheduled_date, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, order_id, scheduled_date, scheduled_time, status, created_at
	`

	var session models.Session
	err := r.db.QueryRow(
		ctx,
		query,
		input.CustomerID,
		input.OrderID,
		input.ScheduledDate,
		input.ScheduledTime,
		input.Status,
	).Scan(
		&session.ID,
		&session.CustomerID,
		&session.OrderID,
		&session.ScheduledDate,
		&session.ScheduledTime,
		&session.Status,
		&session.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return &session, nil
}

// IsSlotBooked mirrors the sessions_slot_key index: anything not cancelled
// holds the slot, including completed sessions.
func (r *SessionRepository) IsSlotBooked(ctx context.Context, scheduledDate, scheduledTime string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE scheduled_date = $1
			  AND scheduled_time = $2
			  AND status <> 'cancelled'
		)
	`
	var booked bool
	if err := r.db.QueryRow(ctx, query, scheduledDate, scheduledTime).Scan(&booked); err != nil {
		return false, err
	}
	return booked, nil
}

func (r *SessionRepository) ListScheduledSlots(ctx context.Context) ([]models.Slot, error) {
	query := `
		SELECT scheduled_date, scheduled_time
		FROM sessions
		WHERE status <> 'cancelled'
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]models.Slot, 0)
	for rows.Next() {
		var slot models.Slot
		if err := rows.Scan(&slot.ScheduledDate, &slot.ScheduledTime); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	query := `
		SELECT id, customer_id, order_id, scheduled_date, scheduled_time, status, created_at
		FROM sessions
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID,
			&session.CustomerID,
			&session.OrderID,
			&session.ScheduledDate,
			&session.ScheduledTime,
			&session.Status,
			&session.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
