package domain

import "time"

// DirectoryContractor is a contractor registered on the platform. Searching the
// directory and adding an entry to the roster are separate steps.
type DirectoryContractor struct {
	ID         string    `json:"id" yaml:"id"`
	FirstName  string    `json:"firstName" yaml:"firstName"`
	LastName   string    `json:"lastName" yaml:"lastName"`
	Email      string    `json:"email" yaml:"email"`
	Phone      string    `json:"phone" yaml:"phone"`
	ABN        string    `json:"abn" yaml:"abn"`
	Role       string    `json:"role" yaml:"role"`
	RateType   RateType  `json:"rateType" yaml:"rateType"`
	Rate       float64   `json:"rate" yaml:"rate"`
	IsVerified bool      `json:"isVerified" yaml:"isVerified"`
	CreatedAt  time.Time `json:"createdAt,omitzero" yaml:"-"`
}

// FullName joins first and last name.
func (c DirectoryContractor) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ToStaff builds the roster record for this contractor under the given contract.
func (c DirectoryContractor) ToStaff(id string, status ContractStatus, startDate string) StaffMember {
	return StaffMember{
		ID:             id,
		Type:           StaffTypeContractor,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Role:           c.Role,
		StartDate:      startDate,
		Status:         StaffStatusActive,
		ABN:            c.ABN,
		ContractStatus: status,
		RateType:       c.RateType,
		Rate:           c.Rate,
		IsVerified:     c.IsVerified,
	}
}
