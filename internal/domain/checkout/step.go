package checkout

// Step represents a stage of the checkout wizard
type Step string

const (
	StepReviewCart Step = "REVIEW_CART"
	StepShipping   Step = "SHIPPING"
	StepPayment    Step = "PAYMENT"
	StepCompleted  Step = "COMPLETED"
)

// IsValid checks if the step is a valid checkout Step
func (s Step) IsValid() bool {
	switch s {
	case StepReviewCart, StepShipping, StepPayment, StepCompleted:
		return true
	}
	return false
}

// String returns the string representation of Step
func (s Step) String() string {
	return string(s)
}

// IsTerminal returns true once the wizard has completed
func (s Step) IsTerminal() bool {
	return s == StepCompleted
}

// CanTransitionTo checks if the step can transition to the target step.
// The wizard only moves forward one stage at a time; Shipping and Payment
// also allow one step back. Completed is terminal.
func (s Step) CanTransitionTo(target Step) bool {
	switch s {
	case StepReviewCart:
		return target == StepShipping
	case StepShipping:
		return target == StepPayment || target == StepReviewCart
	case StepPayment:
		return target == StepCompleted || target == StepShipping
	case StepCompleted:
		return false
	}
	return false
}

// Previous returns the step reached by a Back action, or the step itself
// when no backward transition exists.
func (s Step) Previous() Step {
	switch s {
	case StepShipping:
		return StepReviewCart
	case StepPayment:
		return StepShipping
	}
	return s
}
