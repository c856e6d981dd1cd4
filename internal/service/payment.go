package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/events"
	"github.com/gobazaar/backend/internal/gateway"
	"github.com/gobazaar/backend/internal/repo"
	"github.com/gobazaar/backend/pkg/logging"
)

// PaymentService handles the gateway callback. It is the only place
// that confirms orders and touches product stock, and it trusts nothing
// but the HMAC signature.
type PaymentService struct {
	Repo     *repo.GormRepo
	Secret   []byte
	Producer *events.Producer
}

// VerifyPayment checks the callback signature and, on a match, flips
// the order to Confirmed and decrements stock per line. The returned
// bool says which redirect the caller owes the gateway.
func (s *PaymentService) VerifyPayment(ctx context.Context, orderRef, paymentRef, signature string) (uuid.UUID, bool, error) {
	authentic := gateway.VerifySignature(s.Secret, orderRef, paymentRef, signature)

	order, err := s.Repo.GetOrderByPaymentID(ctx, orderRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if authentic {
				// A verified payment with no matching order means the store
				// and the gateway disagree. Never swallowed.
				return uuid.Nil, false, fmt.Errorf("verified payment for unknown order %q: %w", orderRef, ErrIntegrity)
			}
			return uuid.Nil, false, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return uuid.Nil, false, err
	}

	if !authentic {
		return order.ID, false, nil
	}

	// Gateways retry callbacks. Confirmed is terminal: only the call
	// that wins the conditional flip runs the side effects, a replay
	// gets the success answer with nothing decremented or re-published.
	won, err := s.Repo.ConfirmOrderPayment(ctx, order.ID)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !won {
		return order.ID, true, nil
	}

	l := logging.FromContext(ctx)

	// Each line is decremented independently: one bad line must not
	// block the rest of the confirmation.
	for _, item := range order.Items {
		if err := s.Repo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			l.Error("stock decrement failed",
				"order_id", order.ID,
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", err,
			)
		}
	}

	if err := s.Producer.PublishEvent(ctx, order.UserID.String(), map[string]any{
		"type":       "payment_confirmed",
		"orderID":    order.ID,
		"userID":     order.UserID,
		"paymentRef": paymentRef,
	}); err != nil {
		l.Warn("publish payment_confirmed failed", "error", err)
	}

	return order.ID, true, nil
}
