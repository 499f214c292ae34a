package appointments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/razorpay"
)

type stubRepo struct {
	appts map[uuid.UUID]*models.Appointment
}

func newStubRepo() *stubRepo {
	return &stubRepo{appts: map[uuid.UUID]*models.Appointment{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	appt.ID = uuid.New()
	s.appts[appt.ID] = appt
	return appt, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	if appt, ok := s.appts[id]; ok {
		return appt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Appointment, error) {
	var rows []models.Appointment
	for _, appt := range s.appts {
		if appt.PetOwnerID == ownerID {
			rows = append(rows, *appt)
		}
	}
	return rows, nil
}

func (s *stubRepo) ListByVet(ctx context.Context, vetID uuid.UUID) ([]models.Appointment, error) {
	var rows []models.Appointment
	for _, appt := range s.appts {
		if appt.VetID == vetID {
			rows = append(rows, *appt)
		}
	}
	return rows, nil
}

func (s *stubRepo) AttachPayment(ctx context.Context, id uuid.UUID, paymentID string, status enums.AppointmentStatus) error {
	if appt, ok := s.appts[id]; ok {
		appt.PaymentID = &paymentID
		appt.Status = status
	}
	return nil
}

type stubVerifier struct {
	configured bool
	ok         bool
}

func (s *stubVerifier) VerifyConfirmation(conf razorpay.PaymentConfirmation) bool { return s.ok }

func (s *stubVerifier) Configured() bool { return s.configured }

func newTestService(t *testing.T, verifier *stubVerifier) (Service, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	svc, err := NewService(repo, verifier)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, repo
}

func ownerSession() auth.Session {
	return auth.Session{UserID: uuid.New(), Role: enums.UserRolePetOwner}
}

func validBooking() BookInput {
	return BookInput{
		VetID:           uuid.New(),
		PetName:         "Biscuit",
		OwnerName:       "Priya",
		AppointmentDate: "2026-09-14",
		AppointmentTime: "10:30",
		Reason:          "annual vaccination",
		Amount:          decimal.RequireFromString("500.00"),
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	svc, repo := newTestService(t, &stubVerifier{configured: true})
	sess := ownerSession()

	dto, err := svc.Book(context.Background(), sess, validBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Status != enums.AppointmentStatusPending {
		t.Fatalf("expected pending, got %s", dto.Status)
	}
	if repo.appts[dto.ID].PetOwnerID != sess.UserID {
		t.Fatal("appointment should belong to the booking user")
	}
}

func TestBookValidation(t *testing.T) {
	svc, _ := newTestService(t, &stubVerifier{configured: true})
	sess := ownerSession()

	cases := []struct {
		name   string
		mutate func(*BookInput)
	}{
		{"missing vet", func(in *BookInput) { in.VetID = uuid.Nil }},
		{"missing pet name", func(in *BookInput) { in.PetName = "  " }},
		{"missing owner name", func(in *BookInput) { in.OwnerName = "" }},
		{"missing date", func(in *BookInput) { in.AppointmentDate = "" }},
		{"missing time", func(in *BookInput) { in.AppointmentTime = "" }},
		{"missing reason", func(in *BookInput) { in.Reason = "" }},
		{"negative amount", func(in *BookInput) { in.Amount = decimal.RequireFromString("-1") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validBooking()
			tc.mutate(&input)
			_, err := svc.Book(context.Background(), sess, input)
			assertCode(t, err, pkgerrors.CodeValidation)
		})
	}
}

func TestListSplitsByRole(t *testing.T) {
	svc, repo := newTestService(t, &stubVerifier{configured: true})
	owner := ownerSession()
	vetID := uuid.New()

	booking := validBooking()
	booking.VetID = vetID
	if _, err := svc.Book(context.Background(), owner, booking); err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if _, err := svc.Book(context.Background(), ownerSession(), validBooking()); err != nil {
		t.Fatalf("book failed: %v", err)
	}

	mine, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("owner should see 1 appointment, got %d", len(mine))
	}

	vetView, err := svc.List(context.Background(), auth.Session{UserID: vetID, Role: enums.UserRoleVeterinarian})
	if err != nil {
		t.Fatalf("vet list failed: %v", err)
	}
	if len(vetView) != 1 {
		t.Fatalf("vet should see 1 appointment, got %d", len(vetView))
	}
	if len(repo.appts) != 2 {
		t.Fatalf("expected 2 stored appointments, got %d", len(repo.appts))
	}
}

func TestConfirmPaymentHappyPath(t *testing.T) {
	svc, _ := newTestService(t, &stubVerifier{configured: true, ok: true})
	sess := ownerSession()

	dto, err := svc.Book(context.Background(), sess, validBooking())
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	confirmed, err := svc.ConfirmPayment(context.Background(), sess, dto.ID, razorpay.PaymentConfirmation{
		OrderID: "order_1", PaymentID: "pay_1", Signature: "sig",
	})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != enums.AppointmentStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}
	if confirmed.PaymentID == nil || *confirmed.PaymentID != "pay_1" {
		t.Fatalf("expected payment id, got %v", confirmed.PaymentID)
	}
}

func TestConfirmPaymentRejectsInvalidSignature(t *testing.T) {
	svc, repo := newTestService(t, &stubVerifier{configured: true, ok: false})
	sess := ownerSession()

	dto, err := svc.Book(context.Background(), sess, validBooking())
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	_, err = svc.ConfirmPayment(context.Background(), sess, dto.ID, razorpay.PaymentConfirmation{})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
	if repo.appts[dto.ID].Status != enums.AppointmentStatusPending {
		t.Fatal("appointment must stay pending on bad signature")
	}
}

func TestConfirmPaymentEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService(t, &stubVerifier{configured: true, ok: true})

	dto, err := svc.Book(context.Background(), ownerSession(), validBooking())
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	_, err = svc.ConfirmPayment(context.Background(), ownerSession(), dto.ID, razorpay.PaymentConfirmation{
		OrderID: "order_1", PaymentID: "pay_1", Signature: "sig",
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}
