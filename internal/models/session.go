package models

import "time"

const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Session is a booked coaching appointment. ScheduledDate is the
// display-formatted calendar day the client picked; ScheduledTime is one of
// the fixed time-of-day labels the schedule page offers.
type Session struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	OrderID       string    `json:"order_id"`
	ScheduledDate string    `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Slot is a bookable (date, time) pair.
type Slot struct {
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}
