package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/auth"
	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/service"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

// StaffHandler exposes the roster and contractor directory endpoints.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staffService}
}

// ListStaff handles GET /api/staff.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	return h.list(c, parseStaffListFilters(c))
}

// ListEmployees handles GET /api/staff/employees.
func (h *StaffHandler) ListEmployees(c *fiber.Ctx) error {
	filters := parseStaffListFilters(c)
	t := domain.StaffTypeEmployee
	filters.Type = &t
	return h.list(c, filters)
}

// ListContractors handles GET /api/staff/contractors.
func (h *StaffHandler) ListContractors(c *fiber.Ctx) error {
	filters := parseStaffListFilters(c)
	t := domain.StaffTypeContractor
	filters.Type = &t
	return h.list(c, filters)
}

func (h *StaffHandler) list(c *fiber.Ctx, filters service.StaffListFilters) error {
	list, err := h.staff.ListStaff(c.UserContext(), filters)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(list))
}

// InviteEmployee handles POST /api/staff/employees/invite.
func (h *StaffHandler) InviteEmployee(c *fiber.Ctx) error {
	var req dto.InviteEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	staff, err := h.staff.InviteEmployee(c.UserContext(), actor(c), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(staff))
}

// SearchContractors handles GET /api/contractors/search?q=&limit=.
func (h *StaffHandler) SearchContractors(c *fiber.Ctx) error {
	result, err := h.staff.SearchContractors(c.UserContext(), c.Query("q"), parseIntQuery(c, "limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(result))
}

// AddContractor handles POST /api/staff/contractors/add.
func (h *StaffHandler) AddContractor(c *fiber.Ctx) error {
	var req dto.AddContractorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ContractorID == "" {
		return apperrors.NewValidationError("contractorId required", nil)
	}
	staff, err := h.staff.AddContractor(c.UserContext(), actor(c), req.ContractorID, req.ContractStatus)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(staff))
}

// UpdateStaff handles PUT /api/staff/:id.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.staff.UpdateStaffMember(c.UserContext(), actor(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(updated))
}

// RemoveStaff handles DELETE /api/staff/:id.
func (h *StaffHandler) RemoveStaff(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.staff.RemoveStaffMember(c.UserContext(), actor(c), id); err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.RemoveStaffResponse{ID: id, Removed: true}))
}

// InviteContractor handles POST /api/staff/contractors/invite.
func (h *StaffHandler) InviteContractor(c *fiber.Ctx) error {
	var req dto.InviteContractorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	entry, err := h.staff.InviteContractor(c.UserContext(), actor(c), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(entry))
}

func actor(c *fiber.Ctx) *domain.User {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principal.User
}

func parseStaffListFilters(c *fiber.Ctx) service.StaffListFilters {
	var filters service.StaffListFilters
	if t := c.Query("type"); t != "" && t != "all" {
		staffType := domain.StaffType(t)
		filters.Type = &staffType
	}
	if team := c.Query("team"); team != "" {
		filters.Team = &team
	}
	if s := c.Query("status"); s != "" && s != "all" {
		status := domain.StaffStatus(s)
		filters.Status = &status
	}
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 0)
	if pageSize > 0 {
		filters.Offset = (page - 1) * pageSize
		filters.Limit = pageSize
	}
	return filters
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}
