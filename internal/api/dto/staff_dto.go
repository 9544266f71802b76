package dto

import "github.com/swiftapp/staff-service/internal/domain"

// InviteEmployeeRequest payload for POST /api/staff/employees/invite.
type InviteEmployeeRequest = domain.EmployeeInvite

// InviteContractorRequest payload for POST /api/staff/contractors/invite.
type InviteContractorRequest = domain.ContractorInvite

// UpdateStaffRequest payload for PUT /api/staff/:id. Absent fields are left unchanged.
type UpdateStaffRequest = domain.StaffPatch

// AddContractorRequest payload for POST /api/staff/contractors/add.
type AddContractorRequest struct {
	ContractorID   string                `json:"contractorId"`
	ContractStatus domain.ContractStatus `json:"contractStatus"`
}

// RemoveStaffResponse is returned by DELETE /api/staff/:id.
type RemoveStaffResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}
