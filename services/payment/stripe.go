package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// StripeGateway implements the hosted-session provider model: a checkout
// session is created up front and the payer is redirected to the session
// URL; status is resolved by looking the session up again.
type StripeGateway struct {
	Logger *zap.Logger
}

// NewStripeGateway creates a Stripe gateway adapter. The API key is set
// globally on the stripe package at startup.
func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{Logger: logger}
}

func (g *StripeGateway) Name() string { return "stripe" }

// CreateCharge creates a checkout session. The session ID is the handle used
// to resolve payment status later.
func (g *StripeGateway) CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:            stripe.Params{Context: ctx},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.ReturnURL),
		CancelURL:         stripe.String(req.ReturnURL),
		CustomerEmail:     stripe.String(req.PayerEmail),
		ClientReferenceID: stripe.String(req.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Booking " + req.Reference),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe session create: %w", err)
	}

	g.Logger.Info("stripe checkout session created",
		zap.String("reference", req.Reference),
		zap.String("session", sess.ID))

	return &ChargeSession{RedirectURL: sess.URL, SessionID: sess.ID}, nil
}

// CheckStatus looks the checkout session up and maps its state onto the
// closed result set.
func (g *StripeGateway) CheckStatus(ctx context.Context, sessionID string) (Status, error) {
	sess, err := session.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return "", fmt.Errorf("stripe session lookup: %w", err)
	}

	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		return StatusPaid, nil
	}
	if sess.Status == stripe.CheckoutSessionStatusExpired {
		return StatusCancelled, nil
	}
	return StatusAwaiting, nil
}
