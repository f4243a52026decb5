package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mithil0407/playernumberone/internal/models"
	"github.com/mithil0407/playernumberone/internal/services"
)

type SessionHandler struct {
	service sessionBookingService
}

type sessionBookingService interface {
	BookSession(ctx context.Context, input services.BookSessionInput) (*models.Session, error)
	CheckAvailability(ctx context.Context, scheduledDate, scheduledTime string) (bool, error)
	ListScheduledSlots(ctx context.Context) ([]models.Slot, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type bookSessionRequest struct {
	CustomerID    string `json:"customer_id"`
	OrderID       string `json:"order_id"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	Status        string `json:"status"`
}

func (h *SessionHandler) BookSession(c *fiber.Ctx) error {
	var req bookSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	session, err := h.service.BookSession(c.Context(), services.BookSessionInput{
		CustomerID:    req.CustomerID,
		OrderID:       req.OrderID,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Status:        req.Status,
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    session,
		"message": "Session booked successfully",
	})
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.service.ListSessions(c.Context())
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"data": sessions})
}

func (h *SessionHandler) ListScheduledSlots(c *fiber.Ctx) error {
	slots, err := h.service.ListScheduledSlots(c.Context())
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"slots": slots})
}

func (h *SessionHandler) CheckAvailability(c *fiber.Ctx) error {
	scheduledDate := strings.TrimSpace(c.Query("date"))
	scheduledTime := strings.TrimSpace(c.Query("time"))

	available, err := h.service.CheckAvailability(c.Context(), scheduledDate, scheduledTime)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"scheduled_date": scheduledDate,
		"scheduled_time": scheduledTime,
		"available":      available,
	})
}

func mapSessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrMalformedID),
		errors.Is(err, services.ErrInvalidTimeSlot),
		errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrSlotConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "This time slot is already booked. Please choose a different time.",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process session request"})
	}
}
