package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/razorpay"
)

type confirmationVerifier interface {
	VerifyConfirmation(conf razorpay.PaymentConfirmation) bool
	Configured() bool
}

// BookInput is the validated payload for booking a consultation.
type BookInput struct {
	VetID           uuid.UUID
	PetName         string
	OwnerName       string
	AppointmentDate string
	AppointmentTime string
	Reason          string
	Notes           *string
	Amount          decimal.Decimal
}

// AppointmentDTO is the client-facing appointment representation.
type AppointmentDTO struct {
	ID              uuid.UUID               `json:"id"`
	VetID           uuid.UUID               `json:"vet_id"`
	PetName         string                  `json:"pet_name"`
	OwnerName       string                  `json:"owner_name"`
	AppointmentDate string                  `json:"appointment_date"`
	AppointmentTime string                  `json:"appointment_time"`
	Reason          string                  `json:"reason"`
	Notes           *string                 `json:"notes,omitempty"`
	Amount          decimal.Decimal         `json:"amount"`
	PaymentID       *string                 `json:"payment_id,omitempty"`
	Status          enums.AppointmentStatus `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
}

// Service exposes consultation booking operations.
type Service interface {
	Book(ctx context.Context, sess auth.Session, input BookInput) (*AppointmentDTO, error)
	List(ctx context.Context, sess auth.Session) ([]AppointmentDTO, error)
	ConfirmPayment(ctx context.Context, sess auth.Session, apptID uuid.UUID, conf razorpay.PaymentConfirmation) (*AppointmentDTO, error)
}

type service struct {
	repo     Repository
	verifier confirmationVerifier
}

// NewService builds an appointments service.
func NewService(repo Repository, verifier confirmationVerifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("appointments repository required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("confirmation verifier required")
	}
	return &service{repo: repo, verifier: verifier}, nil
}

// Book records a pending consultation with the chosen vet.
func (s *service) Book(ctx context.Context, sess auth.Session, input BookInput) (*AppointmentDTO, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to book an appointment")
	}
	if err := validateBooking(input); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		PetOwnerID:      sess.UserID,
		VetID:           input.VetID,
		PetName:         strings.TrimSpace(input.PetName),
		OwnerName:       strings.TrimSpace(input.OwnerName),
		AppointmentDate: input.AppointmentDate,
		AppointmentTime: input.AppointmentTime,
		Reason:          strings.TrimSpace(input.Reason),
		Notes:           input.Notes,
		Amount:          input.Amount,
		Status:          enums.AppointmentStatusPending,
	}
	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create appointment")
	}
	dto := toDTO(*created)
	return &dto, nil
}

// List returns the caller's appointments. Vets see their incoming schedule,
// everyone else sees the appointments they booked.
func (s *service) List(ctx context.Context, sess auth.Session) ([]AppointmentDTO, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view appointments")
	}

	var (
		rows []models.Appointment
		err  error
	)
	if sess.Role == enums.UserRoleVeterinarian {
		rows, err = s.repo.ListByVet(ctx, sess.UserID)
	} else {
		rows, err = s.repo.ListByOwner(ctx, sess.UserID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list appointments")
	}

	dtos := make([]AppointmentDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toDTO(row))
	}
	return dtos, nil
}

// ConfirmPayment attaches a verified gateway payment to the appointment and
// confirms it. An invalid signature changes nothing.
func (s *service) ConfirmPayment(ctx context.Context, sess auth.Session, apptID uuid.UUID, conf razorpay.PaymentConfirmation) (*AppointmentDTO, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to confirm a payment")
	}
	if !s.verifier.Configured() {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "payment service not configured")
	}
	if !s.verifier.VerifyConfirmation(conf) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "payment confirmation could not be verified")
	}

	appt, err := s.repo.FindByID(ctx, apptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "appointment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load appointment")
	}
	if appt.PetOwnerID != sess.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "appointment not found")
	}
	if appt.Status != enums.AppointmentStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("appointment is %s, payment can only confirm a pending booking", appt.Status))
	}

	if err := s.repo.AttachPayment(ctx, appt.ID, conf.PaymentID, enums.AppointmentStatusConfirmed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach payment")
	}

	appt.PaymentID = &conf.PaymentID
	appt.Status = enums.AppointmentStatusConfirmed
	dto := toDTO(*appt)
	return &dto, nil
}

func validateBooking(input BookInput) error {
	switch {
	case input.VetID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "vet id is required")
	case strings.TrimSpace(input.PetName) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "pet name is required")
	case strings.TrimSpace(input.OwnerName) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "owner name is required")
	case strings.TrimSpace(input.AppointmentDate) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "appointment date is required")
	case strings.TrimSpace(input.AppointmentTime) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "appointment time is required")
	case strings.TrimSpace(input.Reason) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "reason is required")
	case input.Amount.IsNegative():
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}
	return nil
}

func toDTO(appt models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              appt.ID,
		VetID:           appt.VetID,
		PetName:         appt.PetName,
		OwnerName:       appt.OwnerName,
		AppointmentDate: appt.AppointmentDate,
		AppointmentTime: appt.AppointmentTime,
		Reason:          appt.Reason,
		Notes:           appt.Notes,
		Amount:          appt.Amount,
		PaymentID:       appt.PaymentID,
		Status:          appt.Status,
		CreatedAt:       appt.CreatedAt,
	}
}
