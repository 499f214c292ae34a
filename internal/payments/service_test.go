package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/razorpay"
)

type stubGateway struct {
	order    *razorpay.Order
	err      error
	verifyOK bool
	created  []razorpay.OrderParams
	verified []razorpay.PaymentConfirmation
	keyID    string
	currency string
}

func (s *stubGateway) CreateOrder(ctx context.Context, params razorpay.OrderParams) (*razorpay.Order, error) {
	s.created = append(s.created, params)
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubGateway) VerifyPaymentSignature(conf razorpay.PaymentConfirmation) bool {
	s.verified = append(s.verified, conf)
	return s.verifyOK
}

func (s *stubGateway) KeyID() string { return s.keyID }

func (s *stubGateway) DefaultCurrency() string { return s.currency }

func ownerSession() auth.Session {
	return auth.Session{UserID: uuid.New(), Role: enums.UserRolePetOwner}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code, msg string) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
	if msg != "" && typed.Error() != msg {
		t.Fatalf("expected message %q, got %q", msg, typed.Error())
	}
}

func TestCreateGatewayOrderHappyPath(t *testing.T) {
	gw := &stubGateway{
		order:    &razorpay.Order{ID: "order_1", Amount: 11997, Currency: "INR"},
		keyID:    "rzp_test_key",
		currency: "INR",
	}
	svc := NewService(gw)

	dto, err := svc.CreateGatewayOrder(context.Background(), ownerSession(), CreateOrderInput{
		Amount:  decimal.RequireFromString("119.97"),
		Receipt: "rcpt-9",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.OrderID != "order_1" || dto.Amount != 11997 || dto.Currency != "INR" || dto.KeyID != "rzp_test_key" {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if len(gw.created) != 1 || gw.created[0].Receipt != "rcpt-9" {
		t.Fatalf("unexpected gateway call %+v", gw.created)
	}
}

func TestCreateGatewayOrderRequiresAuth(t *testing.T) {
	svc := NewService(&stubGateway{})
	_, err := svc.CreateGatewayOrder(context.Background(), auth.Anonymous, CreateOrderInput{
		Amount: decimal.NewFromInt(10),
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized, "")
}

func TestCreateGatewayOrderRejectsNonPositiveAmount(t *testing.T) {
	gw := &stubGateway{}
	svc := NewService(gw)

	for _, amount := range []string{"0", "-1", "-0.01"} {
		_, err := svc.CreateGatewayOrder(context.Background(), ownerSession(), CreateOrderInput{
			Amount: decimal.RequireFromString(amount),
		})
		assertCode(t, err, pkgerrors.CodeValidation, "invalid amount")
	}
	if len(gw.created) != 0 {
		t.Fatal("gateway must not be contacted for invalid amounts")
	}
}

func TestCreateGatewayOrderUnconfigured(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.CreateGatewayOrder(context.Background(), ownerSession(), CreateOrderInput{
		Amount: decimal.NewFromInt(10),
	})
	assertCode(t, err, pkgerrors.CodeConfiguration, "payment service not configured")
	if svc.Configured() {
		t.Fatal("service should report unconfigured")
	}
}

func TestCreateGatewayOrderPassesThroughGatewayError(t *testing.T) {
	gwErr := pkgerrors.New(pkgerrors.CodeDependency, "Order amount less than minimum amount allowed")
	svc := NewService(&stubGateway{err: gwErr})

	_, err := svc.CreateGatewayOrder(context.Background(), ownerSession(), CreateOrderInput{
		Amount: decimal.RequireFromString("0.01"),
	})
	assertCode(t, err, pkgerrors.CodeDependency, "Order amount less than minimum amount allowed")
}

func TestVerifyConfirmation(t *testing.T) {
	gw := &stubGateway{verifyOK: true}
	svc := NewService(gw)

	ok := svc.VerifyConfirmation(razorpay.PaymentConfirmation{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "sig",
	})
	if !ok {
		t.Fatal("expected confirmation to verify")
	}

	if NewService(nil).VerifyConfirmation(razorpay.PaymentConfirmation{}) {
		t.Fatal("unconfigured service must reject confirmations")
	}
}
