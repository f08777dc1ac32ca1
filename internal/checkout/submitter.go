package checkout

import (
	"context"
	"regexp"
	"strings"
	"sync/atomic"

	"shopfront/internal/cart"
	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Payment methods accepted by the backend.
const (
	PaymentCOD  = "COD"
	PaymentUPI  = "UPI"
	PaymentCard = "CARD"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// CustomerDetails are the contact and payment fields collected at
// checkout.
type CustomerDetails struct {
	Name          string
	Email         string
	Address       string
	Mobile        string
	PaymentMethod string
}

// Submitter converts the current cart into an order placement request.
// Validation failures block the submission locally and never reach the
// network. On success the cart is cleared; on failure it is left
// untouched. A second Submit while one is in flight is rejected.
type Submitter struct {
	cart     *cart.Store
	orders   OrderClient
	inFlight atomic.Bool
	logger   zerolog.Logger
}

// NewSubmitter creates a checkout submitter over the given cart and
// order client.
func NewSubmitter(cartStore *cart.Store, orders OrderClient, logger zerolog.Logger) *Submitter {
	return &Submitter{
		cart:   cartStore,
		orders: orders,
		logger: logger.With().Str("component", "checkout").Logger(),
	}
}

// Submit validates the customer details, places the order, and clears
// the cart on success.
func (s *Submitter) Submit(ctx context.Context, details CustomerDetails) (*model.OrderConfirmation, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Warn().Msg("rejected concurrent order submission")
		return nil, model.ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	if err := validateDetails(details); err != nil {
		s.logger.Debug().Err(err).Msg("checkout validation failed")
		return nil, err
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	req := &model.OrderRequest{
		CustomerName:  strings.TrimSpace(details.Name),
		Email:         strings.TrimSpace(details.Email),
		Address:       strings.TrimSpace(details.Address),
		Mobile:        details.Mobile,
		PaymentMethod: details.PaymentMethod,
		Items:         make([]model.OrderItemRequest, len(items)),
	}
	for i, item := range items {
		req.Items[i] = model.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	idempotencyKey := uuid.NewString()
	confirmation, err := s.orders.Place(ctx, req, idempotencyKey)
	if err != nil {
		// Cart stays untouched so the user can retry.
		s.logger.Error().Err(err).Msg("order submission failed")
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The order went through; a stale snapshot is a warning, not a
		// failed checkout.
		s.logger.Warn().Err(err).Str("order_id", confirmation.OrderID).
			Msg("order placed but cart snapshot not cleared")
	}

	s.logger.Info().
		Str("order_id", confirmation.OrderID).
		Int("item_count", len(req.Items)).
		Msg("checkout completed")

	return confirmation, nil
}

// ListOrders retrieves the order history.
func (s *Submitter) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.orders.ListOrders(ctx)
}

// validateDetails applies the client-side checkout rules: every field
// required, mobile exactly 10 digits, payment method one of the
// accepted values.
func validateDetails(details CustomerDetails) error {
	if strings.TrimSpace(details.Name) == "" {
		return model.NewValidationError("name", "name is required")
	}

	email := strings.TrimSpace(details.Email)
	if email == "" {
		return model.NewValidationError("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return model.NewValidationError("email", "email is not valid")
	}

	if strings.TrimSpace(details.Address) == "" {
		return model.NewValidationError("address", "address is required")
	}

	if !mobilePattern.MatchString(details.Mobile) {
		return model.NewValidationError("mobile", "mobile must be a 10 digit number")
	}

	switch details.PaymentMethod {
	case PaymentCOD, PaymentUPI, PaymentCard:
		return nil
	default:
		return model.NewValidationError("paymentMethod", "payment method must be COD, UPI or CARD")
	}
}
