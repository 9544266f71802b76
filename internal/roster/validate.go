package roster

import (
	"fmt"

	"github.com/swiftapp/staff-service/internal/domain"
)

// ValidateEmployeeInvite checks the invite form before it reaches a source.
func ValidateEmployeeInvite(in domain.EmployeeInvite) error {
	return in.Validate()
}

// ValidateContractorStatus checks the contract status for an added contractor.
func ValidateContractorStatus(status domain.ContractStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid contract status %q", status)
	}
	return nil
}

// ValidateStaffPatch checks the values an update sets.
func ValidateStaffPatch(patch domain.StaffPatch) error {
	return domain.ValidatePatch(patch)
}
