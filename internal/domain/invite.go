package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// EmployeeInvite is the form data for inviting a new employee.
type EmployeeInvite struct {
	FirstName  string  `json:"firstName" yaml:"firstName"`
	LastName   string  `json:"lastName" yaml:"lastName"`
	Email      string  `json:"email" yaml:"email"`
	Phone      string  `json:"phone" yaml:"phone"`
	Role       string  `json:"role" yaml:"role"`
	Team       string  `json:"team,omitempty" yaml:"team,omitempty"`
	HourlyRate float64 `json:"hourlyRate" yaml:"hourlyRate"`
	TFN        string  `json:"tfn,omitempty" yaml:"tfn,omitempty"`
}

// Validate reports every problem with the form at once.
func (in EmployeeInvite) Validate() error {
	var errs []error
	errs = appendRequired(errs, "firstName", in.FirstName)
	errs = appendRequired(errs, "lastName", in.LastName)
	errs = appendRequired(errs, "role", in.Role)
	if err := validateEmail(in.Email); err != nil {
		errs = append(errs, err)
	}
	if in.HourlyRate <= 0 {
		errs = append(errs, errors.New("hourlyRate must be greater than zero"))
	}
	return errors.Join(errs...)
}

// ToStaff builds the pending employee record an invitation creates.
func (in EmployeeInvite) ToStaff(id, startDate string) StaffMember {
	return StaffMember{
		ID:               id,
		Type:             StaffTypeEmployee,
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            strings.TrimSpace(in.Email),
		Phone:            in.Phone,
		Role:             in.Role,
		Team:             in.Team,
		StartDate:        startDate,
		Status:           StaffStatusPending,
		TFN:              in.TFN,
		HourlyRate:       in.HourlyRate,
		InvitationStatus: InvitationSent,
		AccountLinked:    false,
	}
}

// ContractorInvite is the form data for inviting a contractor onto the platform.
type ContractorInvite struct {
	FirstName string   `json:"firstName" yaml:"firstName"`
	LastName  string   `json:"lastName" yaml:"lastName"`
	Email     string   `json:"email" yaml:"email"`
	Phone     string   `json:"phone" yaml:"phone"`
	ABN       string   `json:"abn" yaml:"abn"`
	Role      string   `json:"role,omitempty" yaml:"role,omitempty"`
	RateType  RateType `json:"rateType" yaml:"rateType"`
	Rate      float64  `json:"rate" yaml:"rate"`
}

// Validate reports every problem with the form at once.
func (in ContractorInvite) Validate() error {
	var errs []error
	errs = appendRequired(errs, "firstName", in.FirstName)
	errs = appendRequired(errs, "lastName", in.LastName)
	if err := validateEmail(in.Email); err != nil {
		errs = append(errs, err)
	}
	if !ValidABN(in.ABN) {
		errs = append(errs, fmt.Errorf("abn %q must have 11 digits", in.ABN))
	}
	if !in.RateType.Valid() {
		errs = append(errs, fmt.Errorf("invalid rateType %q", in.RateType))
	}
	if in.Rate <= 0 {
		errs = append(errs, errors.New("rate must be greater than zero"))
	}
	return errors.Join(errs...)
}

// ToDirectory builds the unverified directory entry an invitation creates.
func (in ContractorInvite) ToDirectory() DirectoryContractor {
	return DirectoryContractor{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.TrimSpace(in.Email),
		Phone:      in.Phone,
		ABN:        in.ABN,
		Role:       in.Role,
		RateType:   in.RateType,
		Rate:       in.Rate,
		IsVerified: false,
	}
}

// ValidatePatch checks the values a patch sets, without knowing the target record.
func ValidatePatch(p StaffPatch) error {
	var errs []error
	if p.Empty() {
		errs = append(errs, errors.New("patch changes nothing"))
	}
	if p.FirstName != nil {
		errs = appendRequired(errs, "firstName", *p.FirstName)
	}
	if p.LastName != nil {
		errs = appendRequired(errs, "lastName", *p.LastName)
	}
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			errs = append(errs, err)
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		errs = append(errs, fmt.Errorf("invalid status %q", *p.Status))
	}
	if p.HourlyRate != nil && *p.HourlyRate <= 0 {
		errs = append(errs, errors.New("hourlyRate must be greater than zero"))
	}
	if p.Rate != nil && *p.Rate <= 0 {
		errs = append(errs, errors.New("rate must be greater than zero"))
	}
	if p.ContractStatus != nil && !p.ContractStatus.Valid() {
		errs = append(errs, fmt.Errorf("invalid contractStatus %q", *p.ContractStatus))
	}
	if p.RateType != nil && !p.RateType.Valid() {
		errs = append(errs, fmt.Errorf("invalid rateType %q", *p.RateType))
	}
	return errors.Join(errs...)
}

func appendRequired(errs []error, field, value string) []error {
	if strings.TrimSpace(value) == "" {
		return append(errs, fmt.Errorf("%s is required", field))
	}
	return errs
}

func validateEmail(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("email is required")
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != strings.TrimSpace(v) {
		return fmt.Errorf("email %q is not a valid address", v)
	}
	return nil
}
