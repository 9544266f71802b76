package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/events"
	"github.com/swiftapp/staff-service/internal/repository"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
	startDateLayout    = "2006-01-02"
)

// StaffService manages the roster and the contractor directory.
type StaffService struct {
	staff      repository.StaffRepository
	directory  repository.DirectoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// StaffDependencies encapsulates repositories required for roster management.
type StaffDependencies struct {
	StaffRepo     repository.StaffRepository
	DirectoryRepo repository.DirectoryRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// StaffListFilters define listing parameters.
type StaffListFilters struct {
	Type   *domain.StaffType
	Team   *string
	Status *domain.StaffStatus
	Limit  int
	Offset int
}

// NewStaffService constructs the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staff:      deps.StaffRepo,
		directory:  deps.DirectoryRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// ListStaff lists roster records with filters.
func (s *StaffService) ListStaff(ctx context.Context, filters StaffListFilters) ([]domain.StaffMember, error) {
	list, err := s.staff.List(ctx, repository.StaffFilter{
		Type:   filters.Type,
		Team:   filters.Team,
		Status: filters.Status,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.StaffMember{}
	}
	return list, nil
}

// InviteEmployee creates a pending employee and sends the invitation.
func (s *StaffService) InviteEmployee(ctx context.Context, actor *domain.User, in domain.EmployeeInvite) (*domain.StaffMember, error) {
	if err := in.Validate(); err != nil {
		return nil, validationError("invalid employee invitation", err)
	}
	if existing, err := s.staff.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("staff email already exists", map[string]any{"email": in.Email})
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	staff := in.ToStaff("", now.Format(startDateLayout))
	staff.InvitedAt = &now
	if err := s.staff.Create(ctx, &staff); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventEmployeeInvited, staff.ID, actorID(actor), events.InvitationPayload{
		Email:     staff.Email,
		FirstName: staff.FirstName,
		LastName:  staff.LastName,
		StaffType: staff.Type,
	}))
	return &staff, nil
}

// SearchContractors searches the directory. Limit defaults to 10 and is capped at 50.
func (s *StaffService) SearchContractors(ctx context.Context, term string, limit int) ([]domain.DirectoryContractor, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.NewValidationError("search term required", nil)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	result, err := s.directory.Search(ctx, term, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if result == nil {
		result = []domain.DirectoryContractor{}
	}
	return result, nil
}

// AddContractor copies a directory contractor onto the roster under the given contract.
func (s *StaffService) AddContractor(ctx context.Context, actor *domain.User, contractorID string, status domain.ContractStatus) (*domain.StaffMember, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid contract status", map[string]any{"contractStatus": status})
	}
	entry, err := s.directory.GetByID(ctx, contractorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("contractor", map[string]any{"contractor_id": contractorID})
		}
		return nil, apperrors.MapError(err)
	}
	if existing, err := s.staff.GetContractorByABN(ctx, entry.ABN); err == nil && existing != nil {
		return nil, apperrors.NewConflict("contractor already on staff", map[string]any{"staff_id": existing.ID})
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.MapError(err)
	}

	staff := entry.ToStaff("", status, s.now().Format(startDateLayout))
	if err := staff.Validate(); err != nil {
		return nil, validationError("directory entry cannot be added", err)
	}
	if err := s.staff.Create(ctx, &staff); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventContractorAdded, staff.ID, actorID(actor), events.ContractorAddedPayload{
		DirectoryID:    entry.ID,
		ContractStatus: status,
	}))
	return &staff, nil
}

// UpdateStaffMember applies a partial patch. The record keeps its id and type.
func (s *StaffService) UpdateStaffMember(ctx context.Context, actor *domain.User, id string, patch domain.StaffPatch) (*domain.StaffMember, error) {
	if err := domain.ValidatePatch(patch); err != nil {
		return nil, validationError("invalid staff update", err)
	}
	current, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if patch.Email != nil && !strings.EqualFold(*patch.Email, current.Email) {
		if existing, err := s.staff.GetByEmail(ctx, *patch.Email); err == nil && existing != nil && existing.ID != current.ID {
			return nil, apperrors.NewConflict("staff email already exists", map[string]any{"email": *patch.Email})
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, apperrors.MapError(err)
		}
	}

	updated := patch.Apply(*current)
	if err := updated.Validate(); err != nil {
		return nil, validationError("update leaves record invalid", err)
	}
	if err := s.staff.Update(ctx, &updated); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventStaffUpdated, updated.ID, actorID(actor), events.StaffUpdatedPayload{
		Fields: patchedFields(patch),
	}))
	return &updated, nil
}

// RemoveStaffMember deletes a roster record.
func (s *StaffService) RemoveStaffMember(ctx context.Context, actor *domain.User, id string) error {
	current, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("staff member", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	if err := s.staff.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.NewEvent(events.EventStaffRemoved, id, actorID(actor), events.StaffRemovedPayload{
		StaffType: current.Type,
		Email:     current.Email,
	}))
	return nil
}

// InviteContractor registers an unverified directory entry and invites the contractor to verify it.
func (s *StaffService) InviteContractor(ctx context.Context, actor *domain.User, in domain.ContractorInvite) (*domain.DirectoryContractor, error) {
	if err := in.Validate(); err != nil {
		return nil, validationError("invalid contractor invitation", err)
	}
	if existing, err := s.directory.GetByABN(ctx, in.ABN); err == nil && existing != nil {
		return nil, apperrors.NewConflict("abn already registered", map[string]any{"contractor_id": existing.ID})
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.MapError(err)
	}

	entry := in.ToDirectory()
	if err := s.directory.Create(ctx, &entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.NewEvent(events.EventContractorInvited, entry.ID, actorID(actor), events.InvitationPayload{
		Email:     entry.Email,
		FirstName: entry.FirstName,
		LastName:  entry.LastName,
		StaffType: domain.StaffTypeContractor,
	}))
	return &entry, nil
}

// ExpireInvitations marks employee invitations sent more than ttl ago as expired.
func (s *StaffService) ExpireInvitations(ctx context.Context, ttl time.Duration) (int, error) {
	expired, err := s.staff.ExpireInvitations(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	for _, staff := range expired {
		payload := events.InvitationExpiredPayload{Email: staff.Email}
		if staff.InvitedAt != nil {
			payload.InvitedAt = *staff.InvitedAt
		}
		s.publish(ctx, events.NewEvent(events.EventInvitationExpired, staff.ID, "", payload))
	}
	return len(expired), nil
}

func (s *StaffService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func validationError(message string, err error) error {
	var problems []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line != "" {
			problems = append(problems, line)
		}
	}
	return apperrors.NewValidationError(message, map[string]any{"errors": problems})
}

func actorID(actor *domain.User) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}

func patchedFields(p domain.StaffPatch) []string {
	fields := map[string]bool{
		"firstName":      p.FirstName != nil,
		"lastName":       p.LastName != nil,
		"email":          p.Email != nil,
		"phone":          p.Phone != nil,
		"role":           p.Role != nil,
		"team":           p.Team != nil,
		"status":         p.Status != nil,
		"tfn":            p.TFN != nil,
		"hourlyRate":     p.HourlyRate != nil,
		"contractStatus": p.ContractStatus != nil,
		"rateType":       p.RateType != nil,
		"rate":           p.Rate != nil,
	}
	var out []string
	for name, set := range fields {
		if set {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
