package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	rzpsdk "github.com/razorpay/razorpay-go"
	rzputils "github.com/razorpay/razorpay-go/utils"
	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/config"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/logger"
)

var (
	errCredentialsRequired = errors.New("razorpay key id and secret are required")
	errLoggerRequired      = errors.New("razorpay logger is required")
)

// minorUnitFactor converts rupees to paise.
var minorUnitFactor = decimal.NewFromInt(100)

type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Client exposes Razorpay order primitives with centralized logging and error mapping.
type Client struct {
	orders    orderCreator
	keyID     string
	keySecret string
	currency  string
	logger    *logger.Logger
}

// Order is the gateway order returned by Razorpay, amounts in minor units.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// OrderParams describes the order to open with the gateway. Amount is in
// major currency units (rupees) and is converted to paise on the wire.
type OrderParams struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
	Notes    map[string]string
}

// PaymentConfirmation carries the fields the gateway posts back after a
// shopper completes payment.
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}

// NewClient initializes the Razorpay wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.RazorpayConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	if !cfg.Configured() {
		return nil, errCredentialsRequired
	}

	sdk := rzpsdk.NewClient(cfg.KeyID, cfg.KeySecret)

	c := &Client{
		orders:    sdk.Order,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		currency:  cfg.Currency,
		logger:    logg,
	}

	logg.Info(ctx, "razorpay client initialized")
	return c, nil
}

// KeyID returns the public key shared with browser checkout widgets.
func (c *Client) KeyID() string {
	if c == nil {
		return ""
	}
	return c.keyID
}

// DefaultCurrency returns the currency used when a request omits one.
func (c *Client) DefaultCurrency() string {
	if c == nil || c.currency == "" {
		return "INR"
	}
	return c.currency
}

// CreateOrder opens a gateway order for the given amount. Gateway rejections
// come back as dependency errors carrying the provider description.
func (c *Client) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	currency := strings.TrimSpace(params.Currency)
	if currency == "" {
		currency = c.DefaultCurrency()
	}

	paise := params.Amount.Mul(minorUnitFactor).Round(0).IntPart()

	data := map[string]interface{}{
		"amount":   paise,
		"currency": currency,
	}
	if params.Receipt != "" {
		data["receipt"] = params.Receipt
	}
	if len(params.Notes) > 0 {
		notes := make(map[string]interface{}, len(params.Notes))
		for k, v := range params.Notes {
			notes[k] = v
		}
		data["notes"] = notes
	}

	c.log(ctx, "request", "create_order", map[string]any{
		"amount_paise": paise,
		"currency":     currency,
		"receipt":      params.Receipt,
	})

	resp, err := c.orders.Create(data, nil)
	if err != nil {
		c.log(ctx, "error", "create_order", map[string]any{"error": err.Error()})
		return nil, pkgerrors.New(pkgerrors.CodeDependency, gatewayDescription(err))
	}

	order := &Order{
		ID:       stringField(resp, "id"),
		Amount:   intField(resp, "amount"),
		Currency: stringField(resp, "currency"),
		Receipt:  stringField(resp, "receipt"),
		Status:   stringField(resp, "status"),
	}
	if order.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gateway returned an order without an id")
	}

	c.log(ctx, "response", "create_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return order, nil
}

// VerifyPaymentSignature checks the HMAC the gateway attached to a payment
// confirmation. A false return means the confirmation must be discarded.
func (c *Client) VerifyPaymentSignature(conf PaymentConfirmation) bool {
	if c == nil || conf.OrderID == "" || conf.PaymentID == "" || conf.Signature == "" {
		return false
	}
	params := map[string]interface{}{
		"razorpay_order_id":   conf.OrderID,
		"razorpay_payment_id": conf.PaymentID,
	}
	return rzputils.VerifyPaymentSignature(params, conf.Signature, c.keySecret)
}

func (c *Client) log(ctx context.Context, phase, operation string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	merged := map[string]any{
		"gateway":   "razorpay",
		"operation": operation,
		"phase":     phase,
	}
	for k, v := range fields {
		merged[k] = v
	}
	c.logger.Debug(c.logger.WithFields(ctx, merged), "razorpay "+operation)
}

// gatewayDescription extracts the provider's human description when present.
func gatewayDescription(err error) string {
	if err == nil {
		return "gateway error"
	}
	return err.Error()
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intField(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
