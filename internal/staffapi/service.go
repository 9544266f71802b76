// Package staffapi wraps the staff REST endpoints. Every operation makes exactly
// one request and reports failure with a fixed error for that operation; the
// underlying cause is only logged.
package staffapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/apiclient"
	"github.com/swiftapp/staff-service/internal/domain"
)

// Errors returned by Service, one per operation.
var (
	ErrFetchStaff        = errors.New("failed to fetch staff")
	ErrFetchEmployees    = errors.New("failed to fetch employees")
	ErrFetchContractors  = errors.New("failed to fetch contractors")
	ErrInviteEmployee    = errors.New("failed to invite employee")
	ErrSearchContractors = errors.New("failed to search contractors")
	ErrAddContractor     = errors.New("failed to add contractor to staff")
	ErrUpdateStaffMember = errors.New("failed to update staff member")
	ErrRemoveStaffMember = errors.New("failed to remove staff member")
	ErrInviteContractor  = errors.New("failed to invite contractor")
)

// DefaultSearchLimit is sent with every contractor search.
const DefaultSearchLimit = 10

// Service calls the staff endpoints through an authenticated client.
type Service struct {
	client *apiclient.Client
	logger *zap.Logger
}

// New builds a Service.
func New(client *apiclient.Client) *Service {
	return &Service{client: client, logger: client.Logger()}
}

// FetchStaff lists the whole roster.
func (s *Service) FetchStaff(ctx context.Context) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	if err := s.client.Do(ctx, http.MethodGet, "api/staff", nil, nil, &out); err != nil {
		return nil, s.fail(ErrFetchStaff, err)
	}
	return out, nil
}

// FetchEmployees lists roster employees.
func (s *Service) FetchEmployees(ctx context.Context) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	if err := s.client.Do(ctx, http.MethodGet, "api/staff/employees", nil, nil, &out); err != nil {
		return nil, s.fail(ErrFetchEmployees, err)
	}
	return out, nil
}

// FetchContractors lists roster contractors.
func (s *Service) FetchContractors(ctx context.Context) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	if err := s.client.Do(ctx, http.MethodGet, "api/staff/contractors", nil, nil, &out); err != nil {
		return nil, s.fail(ErrFetchContractors, err)
	}
	return out, nil
}

// InviteEmployee creates a pending employee and sends the invitation.
func (s *Service) InviteEmployee(ctx context.Context, in domain.EmployeeInvite) (*domain.StaffMember, error) {
	var out domain.StaffMember
	if err := s.client.Do(ctx, http.MethodPost, "api/staff/employees/invite", nil, in, &out); err != nil {
		return nil, s.fail(ErrInviteEmployee, err)
	}
	return &out, nil
}

// SearchContractors queries the contractor directory. A limit <= 0 uses DefaultSearchLimit.
func (s *Service) SearchContractors(ctx context.Context, term string, limit int) ([]domain.DirectoryContractor, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query := url.Values{"q": {term}, "limit": {strconv.Itoa(limit)}}
	out := []domain.DirectoryContractor{}
	if err := s.client.Do(ctx, http.MethodGet, "api/contractors/search", query, nil, &out); err != nil {
		return nil, s.fail(ErrSearchContractors, err)
	}
	return out, nil
}

// AddContractorToStaff puts a directory contractor on the roster.
func (s *Service) AddContractorToStaff(ctx context.Context, contractorID string, status domain.ContractStatus) (*domain.StaffMember, error) {
	var out domain.StaffMember
	req := dto.AddContractorRequest{ContractorID: contractorID, ContractStatus: status}
	if err := s.client.Do(ctx, http.MethodPost, "api/staff/contractors/add", nil, req, &out); err != nil {
		return nil, s.fail(ErrAddContractor, err)
	}
	return &out, nil
}

// UpdateStaffMember applies patch to the record with id.
func (s *Service) UpdateStaffMember(ctx context.Context, id string, patch domain.StaffPatch) (*domain.StaffMember, error) {
	var out domain.StaffMember
	if err := s.client.Do(ctx, http.MethodPut, "api/staff/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, s.fail(ErrUpdateStaffMember, err)
	}
	return &out, nil
}

// RemoveStaffMember deletes the record with id.
func (s *Service) RemoveStaffMember(ctx context.Context, id string) error {
	if err := s.client.Do(ctx, http.MethodDelete, "api/staff/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return s.fail(ErrRemoveStaffMember, err)
	}
	return nil
}

// InviteContractor registers an unverified contractor and invites them.
func (s *Service) InviteContractor(ctx context.Context, in domain.ContractorInvite) (*domain.DirectoryContractor, error) {
	var out domain.DirectoryContractor
	if err := s.client.Do(ctx, http.MethodPost, "api/staff/contractors/invite", nil, in, &out); err != nil {
		return nil, s.fail(ErrInviteContractor, err)
	}
	return &out, nil
}

func (s *Service) fail(sentinel, cause error) error {
	s.logger.Debug(sentinel.Error(), zap.Error(cause))
	return sentinel
}
