package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// StaffType discriminates the two kinds of roster record.
type StaffType string

const (
	StaffTypeEmployee   StaffType = "employee"
	StaffTypeContractor StaffType = "contractor"
)

// StaffStatus is the roster-level state of a staff member.
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
	StaffStatusPending  StaffStatus = "pending"
)

// InvitationStatus tracks an employee's onboarding invitation.
type InvitationStatus string

const (
	InvitationSent      InvitationStatus = "sent"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationCompleted InvitationStatus = "completed"
	InvitationPending   InvitationStatus = "pending"
	InvitationExpired   InvitationStatus = "expired"
)

// ContractStatus describes the commercial relationship with a contractor.
type ContractStatus string

const (
	ContractExclusive    ContractStatus = "exclusive"
	ContractNonExclusive ContractStatus = "non-exclusive"
	ContractPreferred    ContractStatus = "preferred"
	ContractStandard     ContractStatus = "standard"
)

// RateType says how a contractor's rate is applied.
type RateType string

const (
	RateHourly  RateType = "hourly"
	RateFixed   RateType = "fixed"
	RateProject RateType = "project"
)

var abnPattern = regexp.MustCompile(`^\d{11}$`)

// StaffMember is an employee or a contractor on the roster. Type selects which of
// the variant field groups is meaningful; Normalize clears the other group.
type StaffMember struct {
	ID        string      `json:"id" yaml:"id"`
	Type      StaffType   `json:"type" yaml:"type"`
	FirstName string      `json:"firstName" yaml:"firstName"`
	LastName  string      `json:"lastName" yaml:"lastName"`
	Email     string      `json:"email" yaml:"email"`
	Phone     string      `json:"phone" yaml:"phone"`
	Role      string      `json:"role" yaml:"role"`
	Team      string      `json:"team,omitempty" yaml:"team,omitempty"`
	StartDate string      `json:"startDate" yaml:"startDate"`
	Status    StaffStatus `json:"status" yaml:"status"`

	// employee
	TFN              string           `json:"tfn,omitempty" yaml:"tfn,omitempty"`
	HourlyRate       float64          `json:"hourlyRate,omitempty" yaml:"hourlyRate,omitempty"`
	InvitationStatus InvitationStatus `json:"invitationStatus,omitempty" yaml:"invitationStatus,omitempty"`
	AccountLinked    bool             `json:"accountLinked" yaml:"accountLinked"`
	InvitedAt        *time.Time       `json:"invitedAt,omitempty" yaml:"invitedAt,omitempty"`

	// contractor
	ABN            string         `json:"abn,omitempty" yaml:"abn,omitempty"`
	ContractStatus ContractStatus `json:"contractStatus,omitempty" yaml:"contractStatus,omitempty"`
	RateType       RateType       `json:"rateType,omitempty" yaml:"rateType,omitempty"`
	Rate           float64        `json:"rate,omitempty" yaml:"rate,omitempty"`
	IsVerified     bool           `json:"isVerified" yaml:"isVerified"`

	CreatedAt time.Time `json:"createdAt,omitzero" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt,omitzero" yaml:"-"`
}

// FullName joins first and last name the way search matches them.
func (s StaffMember) FullName() string {
	return s.FirstName + " " + s.LastName
}

// IsEmployee reports whether the record is an employee.
func (s StaffMember) IsEmployee() bool { return s.Type == StaffTypeEmployee }

// IsContractor reports whether the record is a contractor.
func (s StaffMember) IsContractor() bool { return s.Type == StaffTypeContractor }

// Normalize clears fields that belong to the other variant.
func (s *StaffMember) Normalize() {
	switch s.Type {
	case StaffTypeEmployee:
		s.ABN = ""
		s.ContractStatus = ""
		s.RateType = ""
		s.Rate = 0
		s.IsVerified = false
	case StaffTypeContractor:
		s.TFN = ""
		s.HourlyRate = 0
		s.InvitationStatus = ""
		s.AccountLinked = false
		s.InvitedAt = nil
	}
}

// Validate checks that the variant fields match the discriminant and that rates
// and business numbers are well formed.
func (s StaffMember) Validate() error {
	var errs []error
	if strings.TrimSpace(s.FirstName) == "" || strings.TrimSpace(s.LastName) == "" {
		errs = append(errs, errors.New("first and last name required"))
	}
	if !s.Status.Valid() {
		errs = append(errs, fmt.Errorf("invalid status %q", s.Status))
	}

	switch s.Type {
	case StaffTypeEmployee:
		if s.HourlyRate <= 0 {
			errs = append(errs, errors.New("hourlyRate must be greater than zero"))
		}
		if !s.InvitationStatus.Valid() {
			errs = append(errs, fmt.Errorf("invalid invitationStatus %q", s.InvitationStatus))
		}
		if s.ABN != "" || s.ContractStatus != "" || s.RateType != "" || s.Rate != 0 {
			errs = append(errs, errors.New("employee carries contractor fields"))
		}
	case StaffTypeContractor:
		if !ValidABN(s.ABN) {
			errs = append(errs, fmt.Errorf("abn %q must have 11 digits", s.ABN))
		}
		if s.Rate <= 0 {
			errs = append(errs, errors.New("rate must be greater than zero"))
		}
		if !s.ContractStatus.Valid() {
			errs = append(errs, fmt.Errorf("invalid contractStatus %q", s.ContractStatus))
		}
		if !s.RateType.Valid() {
			errs = append(errs, fmt.Errorf("invalid rateType %q", s.RateType))
		}
		if s.HourlyRate != 0 || s.InvitationStatus != "" || s.TFN != "" {
			errs = append(errs, errors.New("contractor carries employee fields"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown staff type %q", s.Type))
	}
	return errors.Join(errs...)
}

// StripSpaces removes all whitespace from an ABN or search term.
func StripSpaces(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v)
}

// ValidABN reports whether abn has exactly 11 digits once spaces are removed.
func ValidABN(abn string) bool {
	return abnPattern.MatchString(StripSpaces(abn))
}

// Valid reports whether s is a known status.
func (s StaffStatus) Valid() bool {
	switch s {
	case StaffStatusActive, StaffStatusInactive, StaffStatusPending:
		return true
	}
	return false
}

// Valid reports whether s is a known invitation status.
func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationSent, InvitationAccepted, InvitationCompleted, InvitationPending, InvitationExpired:
		return true
	}
	return false
}

// Valid reports whether c is a known contract status.
func (c ContractStatus) Valid() bool {
	switch c {
	case ContractExclusive, ContractNonExclusive, ContractPreferred, ContractStandard:
		return true
	}
	return false
}

// Valid reports whether r is a known rate type.
func (r RateType) Valid() bool {
	switch r {
	case RateHourly, RateFixed, RateProject:
		return true
	}
	return false
}

// StaffPatch is a partial update. Nil fields are left untouched; the type and id
// of the record never change.
type StaffPatch struct {
	FirstName      *string         `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName       *string         `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Email          *string         `json:"email,omitempty" yaml:"email,omitempty"`
	Phone          *string         `json:"phone,omitempty" yaml:"phone,omitempty"`
	Role           *string         `json:"role,omitempty" yaml:"role,omitempty"`
	Team           *string         `json:"team,omitempty" yaml:"team,omitempty"`
	Status         *StaffStatus    `json:"status,omitempty" yaml:"status,omitempty"`
	TFN            *string         `json:"tfn,omitempty" yaml:"tfn,omitempty"`
	HourlyRate     *float64        `json:"hourlyRate,omitempty" yaml:"hourlyRate,omitempty"`
	ContractStatus *ContractStatus `json:"contractStatus,omitempty" yaml:"contractStatus,omitempty"`
	RateType       *RateType       `json:"rateType,omitempty" yaml:"rateType,omitempty"`
	Rate           *float64        `json:"rate,omitempty" yaml:"rate,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p StaffPatch) Empty() bool {
	return p == StaffPatch{}
}

// Apply returns a copy of s with the patch applied. Variant fields that do not
// belong to s.Type are ignored.
func (p StaffPatch) Apply(s StaffMember) StaffMember {
	out := s
	setString(&out.FirstName, p.FirstName)
	setString(&out.LastName, p.LastName)
	setString(&out.Email, p.Email)
	setString(&out.Phone, p.Phone)
	setString(&out.Role, p.Role)
	setString(&out.Team, p.Team)
	if p.Status != nil {
		out.Status = *p.Status
	}
	switch s.Type {
	case StaffTypeEmployee:
		setString(&out.TFN, p.TFN)
		if p.HourlyRate != nil {
			out.HourlyRate = *p.HourlyRate
		}
	case StaffTypeContractor:
		if p.ContractStatus != nil {
			out.ContractStatus = *p.ContractStatus
		}
		if p.RateType != nil {
			out.RateType = *p.RateType
		}
		if p.Rate != nil {
			out.Rate = *p.Rate
		}
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
