// Package roster holds the in-memory staff roster behind the CLI and keeps it
// in sync with a DataSource.
package roster

import (
	"context"
	"errors"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/staffapi"
)

// ErrStaffNotFound is returned by FixtureSource for unknown ids.
var ErrStaffNotFound = errors.New("staff member not found")

// DataSource is where the roster comes from and where mutations go.
type DataSource interface {
	List(ctx context.Context) ([]domain.StaffMember, error)
	Invite(ctx context.Context, in domain.EmployeeInvite) error
	Search(ctx context.Context, term string) ([]domain.DirectoryContractor, error)
	Add(ctx context.Context, contractorID string, status domain.ContractStatus) error
	Update(ctx context.Context, id string, patch domain.StaffPatch) error
	Remove(ctx context.Context, id string) error
}

// APISource forwards every call to the staff API.
type APISource struct {
	api *staffapi.Service
}

// NewAPISource wraps api.
func NewAPISource(api *staffapi.Service) *APISource {
	return &APISource{api: api}
}

// List fetches the roster.
func (s *APISource) List(ctx context.Context) ([]domain.StaffMember, error) {
	return s.api.FetchStaff(ctx)
}

// Invite sends an employee invitation.
func (s *APISource) Invite(ctx context.Context, in domain.EmployeeInvite) error {
	_, err := s.api.InviteEmployee(ctx, in)
	return err
}

// Search queries the directory with the default limit.
func (s *APISource) Search(ctx context.Context, term string) ([]domain.DirectoryContractor, error) {
	return s.api.SearchContractors(ctx, term, staffapi.DefaultSearchLimit)
}

// Add puts a directory contractor on the roster.
func (s *APISource) Add(ctx context.Context, contractorID string, status domain.ContractStatus) error {
	_, err := s.api.AddContractorToStaff(ctx, contractorID, status)
	return err
}

// Update patches the record with id.
func (s *APISource) Update(ctx context.Context, id string, patch domain.StaffPatch) error {
	_, err := s.api.UpdateStaffMember(ctx, id, patch)
	return err
}

// Remove deletes the record with id.
func (s *APISource) Remove(ctx context.Context, id string) error {
	return s.api.RemoveStaffMember(ctx, id)
}
