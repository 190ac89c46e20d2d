package checkout

import (
	"context"
	"errors"

	"github.com/bookhaven/backend/internal/domain/cart"
	"github.com/bookhaven/backend/internal/domain/checkout"
	"github.com/bookhaven/backend/internal/domain/order"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// orderNumberAttempts bounds the retry loop when a random order number
// collides with an existing one.
const orderNumberAttempts = 5

// SessionStore holds in-progress checkout sessions keyed by user. A miss
// is reported as shared.ErrNotFound. Sessions expire on their own; an
// abandoned checkout simply disappears.
type SessionStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*checkout.Session, error)
	Put(ctx context.Context, session *checkout.Session) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// IdempotencyStore remembers which order a place-order key produced, so a
// double submit returns the first order instead of creating a second one.
// Entries are scoped per user; the same key string from two different
// shoppers never collides.
type IdempotencyStore interface {
	Get(ctx context.Context, userID uuid.UUID, key string) (uuid.UUID, bool, error)
	Set(ctx context.Context, userID uuid.UUID, key string, orderID uuid.UUID) error
}

// CheckoutService walks a shopper through the checkout wizard and turns
// the cart into an order at the end.
type CheckoutService struct {
	cartRepo    cart.CartRepository
	orderRepo   order.OrderRepository
	sessions    SessionStore
	idempotency IdempotencyStore
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	cartRepo cart.CartRepository,
	orderRepo order.OrderRepository,
	sessions SessionStore,
	idempotency IdempotencyStore,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		sessions:    sessions,
		idempotency: idempotency,
		publisher:   publisher,
		logger:      logger,
	}
}

// Start opens (or resumes) a checkout for the user. An empty cart cannot
// enter checkout; the storefront bounces the shopper back to the cart page.
func (s *CheckoutService) Start(ctx context.Context, userID uuid.UUID) (*SessionDTO, error) {
	c, err := s.requireNonEmptyCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(ctx, userID)
	if err != nil || session.IsCompleted() {
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		session, err = checkout.NewSession(userID)
		if err != nil {
			return nil, err
		}
		if err := s.sessions.Put(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Info("Checkout started", zap.String("user_id", userID.String()))
	}

	return s.toSessionDTO(session, c), nil
}

// GetSession returns the current wizard state
func (s *CheckoutService) GetSession(ctx context.Context, userID uuid.UUID) (*SessionDTO, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, s.noSession(err)
	}
	c, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toSessionDTO(session, c), nil
}

// Proceed moves from the review step to the shipping step. The cart is
// re-checked here: items may have been removed while reviewing.
func (s *CheckoutService) Proceed(ctx context.Context, userID uuid.UUID) (*SessionDTO, error) {
	c, err := s.requireNonEmptyCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, s.noSession(err)
	}
	if err := session.BeginShipping(); err != nil {
		return nil, err
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return s.toSessionDTO(session, c), nil
}

// SubmitShipping records the shipping form and advances to payment
func (s *CheckoutService) SubmitShipping(ctx context.Context, input SubmitShippingInput) (*SessionDTO, error) {
	session, err := s.sessions.Get(ctx, input.UserID)
	if err != nil {
		return nil, s.noSession(err)
	}
	if err := session.SubmitShipping(input.Shipping); err != nil {
		return nil, err
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	c, err := s.loadCart(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return s.toSessionDTO(session, c), nil
}

// Back moves the wizard one step backward, keeping entered data
func (s *CheckoutService) Back(ctx context.Context, userID uuid.UUID) (*SessionDTO, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, s.noSession(err)
	}
	if err := session.Back(); err != nil {
		return nil, err
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	c, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toSessionDTO(session, c), nil
}

// PlaceOrder validates the payment form, snapshots the cart into an order,
// persists it, empties the cart and completes the session. A repeated
// idempotency key returns the order placed by the first submit.
func (s *CheckoutService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderConfirmationDTO, error) {
	if input.IdempotencyKey != "" {
		if orderID, found, err := s.idempotency.Get(ctx, input.UserID, input.IdempotencyKey); err == nil && found {
			existing, err := s.orderRepo.FindByID(ctx, orderID)
			if err != nil {
				return nil, err
			}
			// A key only ever replays the submitting shopper's own order
			if existing.UserID != input.UserID {
				s.logger.Error("Idempotency entry resolved to another user's order",
					zap.String("order_id", orderID.String()),
					zap.String("user_id", input.UserID.String()))
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
			}
			s.logger.Info("Duplicate place-order submit, returning original",
				zap.String("order_number", existing.OrderNumber))
			return ToOrderConfirmationDTO(existing), nil
		} else if err != nil {
			s.logger.Warn("Idempotency lookup failed", zap.Error(err))
		}
	}

	session, err := s.sessions.Get(ctx, input.UserID)
	if err != nil {
		return nil, s.noSession(err)
	}
	if err := session.SubmitPayment(input.Payment); err != nil {
		return nil, err
	}

	c, err := s.requireNonEmptyCart(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.uniqueOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(input.UserID, orderNumber, c, *session.Shipping, input.Payment)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to save order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
	}

	// The order is durable from this point; cart and session cleanup must
	// not fail the placement.
	if err := s.cartRepo.DeleteByUser(ctx, input.UserID); err != nil {
		s.logger.Error("Failed to clear cart after order placement",
			zap.String("order_number", orderNumber), zap.Error(err))
	}

	if err := session.Complete(); err == nil {
		session.IdempotencyKey = input.IdempotencyKey
		if err := s.sessions.Put(ctx, session); err != nil {
			s.logger.Warn("Failed to persist completed session", zap.Error(err))
		}
	}

	if input.IdempotencyKey != "" {
		if err := s.idempotency.Set(ctx, input.UserID, input.IdempotencyKey, o.ID); err != nil {
			s.logger.Warn("Failed to record idempotency key", zap.Error(err))
		}
	}

	s.publishEvents(ctx, o)

	s.logger.Info("Order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", input.UserID.String()),
		zap.Int("items", o.TotalItems()))

	return ToOrderConfirmationDTO(o), nil
}

func (s *CheckoutService) uniqueOrderNumber(ctx context.Context) (string, error) {
	for i := 0; i < orderNumberAttempts; i++ {
		candidate := order.GenerateOrderNumber()
		taken, err := s.orderRepo.ExistsByOrderNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("ORDER_NUMBER_EXHAUSTED",
		"Could not allocate an order number, please retry")
}

func (s *CheckoutService) requireNonEmptyCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	return c, nil
}

func (s *CheckoutService) loadCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return cart.NewCart(userID)
		}
		return nil, err
	}
	return c, nil
}

func (s *CheckoutService) noSession(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("NO_CHECKOUT_SESSION", "No checkout in progress")
	}
	return err
}

func (s *CheckoutService) toSessionDTO(session *checkout.Session, c *cart.Cart) *SessionDTO {
	return &SessionDTO{
		Step:            session.Step,
		Shipping:        session.Shipping,
		PaymentCaptured: session.Payment != nil,
		TotalItems:      c.TotalItems(),
		TotalAmount:     c.TotalAmount(),
	}
}

func (s *CheckoutService) publishEvents(ctx context.Context, o *order.Order) {
	if s.publisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	o.ClearDomainEvents()
}
