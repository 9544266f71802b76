package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/swiftapp/staff-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeInvited   EventType = "staff.employee_invited"
	EventContractorAdded   EventType = "staff.contractor_added"
	EventContractorInvited EventType = "staff.contractor_invited"
	EventStaffUpdated      EventType = "staff.updated"
	EventStaffRemoved      EventType = "staff.removed"
	EventInvitationExpired EventType = "staff.invitation_expired"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	StaffID   string    `json:"staff_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(eventType EventType, staffID, actorID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		StaffID:   staffID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// InvitationPayload is sent with employee and contractor invitations.
type InvitationPayload struct {
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	StaffType domain.StaffType `json:"staff_type"`
}

// ContractorAddedPayload payload.
type ContractorAddedPayload struct {
	DirectoryID    string                `json:"directory_id"`
	ContractStatus domain.ContractStatus `json:"contract_status"`
}

// StaffUpdatedPayload lists the fields a patch touched.
type StaffUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// StaffRemovedPayload payload.
type StaffRemovedPayload struct {
	StaffType domain.StaffType `json:"staff_type"`
	Email     string           `json:"email"`
}

// InvitationExpiredPayload payload.
type InvitationExpiredPayload struct {
	Email     string    `json:"email"`
	InvitedAt time.Time `json:"invited_at"`
}
