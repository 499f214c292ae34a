package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/middleware"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/responses"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/validators"
	paymentsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/payments"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/logger"
)

type createPaymentOrderRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency" validate:"omitempty,len=3"`
	Receipt  string            `json:"receipt" validate:"omitempty,max=40"`
	Notes    map[string]string `json:"notes" validate:"omitempty,max=15"`
}

// PaymentCreateOrder registers a payment intent with the gateway and hands
// the client everything it needs to open the payment widget.
func PaymentCreateOrder(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload createPaymentOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateGatewayOrder(r.Context(), middleware.SessionFromContext(r.Context()), paymentsvc.CreateOrderInput{
			Amount:   payload.Amount,
			Currency: strings.ToUpper(strings.TrimSpace(payload.Currency)),
			Receipt:  strings.TrimSpace(payload.Receipt),
			Notes:    payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
