package checkout

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/cart"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/orders"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/metrics"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/razorpay"
)

// Metric labels for the two checkout flows.
const (
	VariantPersistFirst = "persist_first"
	VariantGatewayFirst = "gateway_first"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type confirmationVerifier interface {
	VerifyConfirmation(conf razorpay.PaymentConfirmation) bool
	Configured() bool
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, sess auth.Session, input CheckoutInput) (*orders.OrderDTO, error)
	ExecuteWithPayment(ctx context.Context, sess auth.Session, input PaymentCheckoutInput) (*orders.OrderDTO, error)
}

// CheckoutInput captures optional data used during checkout.
type CheckoutInput struct {
	ShippingAddress *string
}

// PaymentCheckoutInput is a checkout carrying a signed payment confirmation.
type PaymentCheckoutInput struct {
	CheckoutInput
	Confirmation razorpay.PaymentConfirmation
}

type service struct {
	tx         txRunner
	cartRepo   cart.CartRepository
	ordersRepo orders.Repository
	verifier   confirmationVerifier
	metrics    *metrics.CheckoutMetrics
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartRepo cart.CartRepository,
	ordersRepo orders.Repository,
	verifier confirmationVerifier,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("confirmation verifier required")
	}
	return &service{
		tx:         tx,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		verifier:   verifier,
		metrics:    checkoutMetrics,
	}, nil
}

// Execute converts the caller's cart into a confirmed order. The order, its
// item snapshots, the confirmation, and the cart clear land in one
// transaction so a failure at any step leaves no partial order behind.
func (s *service) Execute(ctx context.Context, sess auth.Session, input CheckoutInput) (*orders.OrderDTO, error) {
	started := time.Now()
	dto, err := s.run(ctx, sess, input, nil)
	s.observe(VariantPersistFirst, started, err)
	return dto, err
}

// ExecuteWithPayment converts the cart only after the gateway's payment
// confirmation verifies. An invalid signature writes nothing.
func (s *service) ExecuteWithPayment(ctx context.Context, sess auth.Session, input PaymentCheckoutInput) (*orders.OrderDTO, error) {
	started := time.Now()

	if !s.verifier.Configured() {
		err := pkgerrors.New(pkgerrors.CodeConfiguration, "payment service not configured")
		s.observe(VariantGatewayFirst, started, err)
		return nil, err
	}
	if !s.verifier.VerifyConfirmation(input.Confirmation) {
		s.metrics.IncGatewayFailure()
		err := pkgerrors.New(pkgerrors.CodeUnauthorized, "payment confirmation could not be verified")
		s.observe(VariantGatewayFirst, started, err)
		return nil, err
	}

	paymentID := input.Confirmation.PaymentID
	dto, err := s.run(ctx, sess, input.CheckoutInput, &paymentID)
	s.observe(VariantGatewayFirst, started, err)
	return dto, err
}

func (s *service) run(ctx context.Context, sess auth.Session, input CheckoutInput, paymentID *string) (*orders.OrderDTO, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to check out")
	}

	rows, err := s.cartRepo.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	view := cart.BuildView(rows)
	if len(view.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var result *orders.OrderDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		order := &models.Order{
			UserID:          sess.UserID,
			TotalAmount:     view.Total,
			Status:          enums.OrderStatusPending,
			ShippingAddress: input.ShippingAddress,
		}
		created, err := ordersRepo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		items := make([]models.OrderItem, 0, len(view.Items))
		for _, line := range view.Items {
			productID := line.ProductID
			items = append(items, models.OrderItem{
				OrderID:      created.ID,
				ProductID:    &productID,
				ProductName:  line.ProductName,
				ProductPrice: line.ProductPrice,
				Quantity:     line.Quantity,
			})
		}
		if err := ordersRepo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}

		if paymentID != nil {
			if err := ordersRepo.UpdatePayment(ctx, created.ID, *paymentID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach payment")
			}
		}

		if err := ordersRepo.UpdateStatus(ctx, created.ID, enums.OrderStatusConfirmed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm order")
		}

		if err := cartRepo.DeleteByUser(ctx, sess.UserID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}

		created.Status = enums.OrderStatusConfirmed
		created.PaymentID = paymentID
		created.Items = items
		dto := orders.ToDTO(*created)
		result = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) observe(variant string, started time.Time, err error) {
	s.metrics.ObserveDuration(variant, time.Since(started))
	if err == nil {
		s.metrics.IncCompleted(variant)
		return
	}
	reason := "error"
	if typed := pkgerrors.As(err); typed != nil {
		reason = string(typed.Code())
	}
	s.metrics.IncFailed(variant, reason)
}
