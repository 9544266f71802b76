package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/service"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

// CalendarHandler serves per-day job listings.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: calendarService}
}

// Days handles POST /calendar-days.
func (h *CalendarHandler) Days(c *fiber.Ctx) error {
	var req dto.CalendarDaysRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	days, err := h.service.Days(c.UserContext(), req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(days))
}
