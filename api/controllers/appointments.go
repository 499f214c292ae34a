package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/middleware"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/responses"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/validators"
	appointmentsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/appointments"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/logger"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/razorpay"
)

type bookAppointmentRequest struct {
	VetID           string          `json:"vet_id" validate:"required,uuid4"`
	PetName         string          `json:"pet_name" validate:"required,max=100"`
	OwnerName       string          `json:"owner_name" validate:"required,max=100"`
	AppointmentDate string          `json:"appointment_date" validate:"required"`
	AppointmentTime string          `json:"appointment_time" validate:"required"`
	Reason          string          `json:"reason" validate:"required,max=500"`
	Notes           *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Amount          decimal.Decimal `json:"amount"`
}

type confirmAppointmentPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// AppointmentBook records a pending consultation.
func AppointmentBook(svc appointmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		var payload bookAppointmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vetID, err := uuid.Parse(payload.VetID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vet id"))
			return
		}

		appt, err := svc.Book(r.Context(), middleware.SessionFromContext(r.Context()), appointmentsvc.BookInput{
			VetID:           vetID,
			PetName:         payload.PetName,
			OwnerName:       payload.OwnerName,
			AppointmentDate: strings.TrimSpace(payload.AppointmentDate),
			AppointmentTime: strings.TrimSpace(payload.AppointmentTime),
			Reason:          payload.Reason,
			Notes:           payload.Notes,
			Amount:          payload.Amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, appt)
	}
}

// AppointmentList returns the caller's bookings, or the incoming schedule
// for veterinarians.
func AppointmentList(svc appointmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		appts, err := svc.List(r.Context(), middleware.SessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, appts)
	}
}

// AppointmentConfirmPayment attaches a verified gateway payment to a
// pending booking.
func AppointmentConfirmPayment(svc appointmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		apptID, err := uuid.Parse(chi.URLParam(r, "appointmentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid appointment id"))
			return
		}

		var payload confirmAppointmentPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appt, err := svc.ConfirmPayment(r.Context(), middleware.SessionFromContext(r.Context()), apptID, razorpay.PaymentConfirmation{
			OrderID:   strings.TrimSpace(payload.RazorpayOrderID),
			PaymentID: strings.TrimSpace(payload.RazorpayPaymentID),
			Signature: strings.TrimSpace(payload.RazorpaySignature),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, appt)
	}
}
