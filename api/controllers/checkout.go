package controllers

import (
	"net/http"
	"strings"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/middleware"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/responses"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/validators"
	checkoutsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/checkout"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/logger"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/razorpay"
)

type checkoutRequest struct {
	ShippingAddress *string `json:"shipping_address,omitempty" validate:"omitempty,max=500"`
}

type checkoutConfirmationRequest struct {
	RazorpayOrderID   string  `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string  `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string  `json:"razorpay_signature" validate:"required"`
	ShippingAddress   *string `json:"shipping_address,omitempty" validate:"omitempty,max=500"`
}

// Checkout converts the caller's cart into a confirmed order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		order, err := svc.Execute(r.Context(), middleware.SessionFromContext(r.Context()), checkoutsvc.CheckoutInput{
			ShippingAddress: trimAddress(payload.ShippingAddress),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// CheckoutConfirmPayment verifies the gateway signature first and only then
// converts the cart into an order.
func CheckoutConfirmPayment(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutConfirmationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ExecuteWithPayment(r.Context(), middleware.SessionFromContext(r.Context()), checkoutsvc.PaymentCheckoutInput{
			CheckoutInput: checkoutsvc.CheckoutInput{
				ShippingAddress: trimAddress(payload.ShippingAddress),
			},
			Confirmation: razorpay.PaymentConfirmation{
				OrderID:   strings.TrimSpace(payload.RazorpayOrderID),
				PaymentID: strings.TrimSpace(payload.RazorpayPaymentID),
				Signature: strings.TrimSpace(payload.RazorpaySignature),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func trimAddress(addr *string) *string {
	if addr == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*addr)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
