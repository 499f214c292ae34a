package payments

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/razorpay"
)

// Gateway is the payment provider surface the service depends on.
type Gateway interface {
	CreateOrder(ctx context.Context, params razorpay.OrderParams) (*razorpay.Order, error)
	VerifyPaymentSignature(conf razorpay.PaymentConfirmation) bool
	KeyID() string
	DefaultCurrency() string
}

// CreateOrderInput is the validated payload for opening a gateway order.
type CreateOrderInput struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
	Notes    map[string]string
}

// GatewayOrderDTO is returned to the client so it can launch the payment
// widget. Amount is in minor currency units (paise).
type GatewayOrderDTO struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// Service exposes payment gateway operations.
type Service interface {
	CreateGatewayOrder(ctx context.Context, sess auth.Session, input CreateOrderInput) (*GatewayOrderDTO, error)
	VerifyConfirmation(conf razorpay.PaymentConfirmation) bool
	Configured() bool
}

type service struct {
	gateway Gateway
}

// NewService builds a payments service. A nil gateway is allowed and means
// the deployment has no payment credentials; operations then fail with a
// configuration error instead of at boot.
func NewService(gateway Gateway) Service {
	return &service{gateway: gateway}
}

// Configured reports whether a payment gateway is wired in.
func (s *service) Configured() bool {
	return s.gateway != nil
}

// CreateGatewayOrder validates the request and opens an order with the
// provider. The gateway is not contacted for invalid amounts or when
// credentials are missing.
func (s *service) CreateGatewayOrder(ctx context.Context, sess auth.Session, input CreateOrderInput) (*GatewayOrderDTO, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to make a payment")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid amount")
	}
	if s.gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "payment service not configured")
	}

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderParams{
		Amount:   input.Amount,
		Currency: strings.TrimSpace(input.Currency),
		Receipt:  input.Receipt,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &GatewayOrderDTO{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

// VerifyConfirmation checks a signed payment confirmation. Unconfigured
// deployments reject everything.
func (s *service) VerifyConfirmation(conf razorpay.PaymentConfirmation) bool {
	if s.gateway == nil {
		return false
	}
	return s.gateway.VerifyPaymentSignature(conf)
}
