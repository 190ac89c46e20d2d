package identity

import (
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const EventTypeUserRegistered = "UserRegistered"

// UserRegisteredEvent is raised when a shopper account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, u.ID),
		UserID:          u.ID,
		Email:           u.Email,
		Name:            u.Name,
	}
}

// EventType returns the event type name
func (e *UserRegisteredEvent) EventType() string {
	return EventTypeUserRegistered
}
