package checkout

import (
	"time"

	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Session is the aggregate for one shopper's trip through the checkout
// wizard. It is short-lived state held in the session store, not a database
// row, so it carries json tags instead of gorm tags and is keyed by user:
// a shopper has at most one active checkout at a time.
type Session struct {
	UserID         uuid.UUID     `json:"user_id"`
	Step           Step          `json:"step"`
	Shipping       *ShippingInfo `json:"shipping,omitempty"`
	Payment        *PaymentInfo  `json:"payment,omitempty"`
	IdempotencyKey string        `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewSession starts a checkout at the review step
func NewSession(userID uuid.UUID) (*Session, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	now := time.Now()
	return &Session{
		UserID:    userID,
		Step:      StepReviewCart,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// BeginShipping moves from the review step to the shipping step. The caller
// must have verified the cart is not empty; an empty cart never reaches here.
func (s *Session) BeginShipping() error {
	if !s.Step.CanTransitionTo(StepShipping) {
		return shared.NewDomainError("INVALID_STEP",
			"Cannot enter shipping from step "+s.Step.String())
	}
	s.Step = StepShipping
	s.UpdatedAt = time.Now()
	return nil
}

// SubmitShipping validates and records the shipping form, then advances to
// the payment step. Validation failures keep the session on the shipping
// step and are reported as a field-keyed ValidationError.
func (s *Session) SubmitShipping(info ShippingInfo) error {
	if s.Step != StepShipping {
		return shared.NewDomainError("INVALID_STEP",
			"Shipping details can only be submitted at the shipping step")
	}
	if fields := info.Validate(); len(fields) > 0 {
		return shared.NewValidationError("Shipping details are invalid", fields)
	}
	s.Shipping = &info
	s.Step = StepPayment
	s.UpdatedAt = time.Now()
	return nil
}

// SubmitPayment validates and records the payment form. The session stays
// on the payment step; Complete is called once the order has been persisted.
func (s *Session) SubmitPayment(info PaymentInfo) error {
	if s.Step != StepPayment {
		return shared.NewDomainError("INVALID_STEP",
			"Payment details can only be submitted at the payment step")
	}
	if fields := info.Validate(); len(fields) > 0 {
		return shared.NewValidationError("Payment details are invalid", fields)
	}
	s.Payment = &info
	s.UpdatedAt = time.Now()
	return nil
}

// Back moves the wizard one step backward. Entered form data is retained so
// a shopper returning forward does not retype it.
func (s *Session) Back() error {
	prev := s.Step.Previous()
	if prev == s.Step {
		return shared.NewDomainError("INVALID_STEP",
			"Cannot go back from step "+s.Step.String())
	}
	s.Step = prev
	s.UpdatedAt = time.Now()
	return nil
}

// Complete marks the wizard finished after the order is persisted
func (s *Session) Complete() error {
	if !s.Step.CanTransitionTo(StepCompleted) {
		return shared.NewDomainError("INVALID_STEP",
			"Cannot complete checkout from step "+s.Step.String())
	}
	s.Step = StepCompleted
	s.UpdatedAt = time.Now()
	return nil
}

// IsCompleted returns true once the order has been placed
func (s *Session) IsCompleted() bool {
	return s.Step.IsTerminal()
}

// ReadyForPlacement reports whether both forms are captured and the wizard
// sits on the payment step, i.e. placing the order is allowed.
func (s *Session) ReadyForPlacement() bool {
	return s.Step == StepPayment && s.Shipping != nil && s.Payment != nil
}
