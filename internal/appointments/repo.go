package appointments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
)

// Repository defines the persistence surface required by the appointments service.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, appt *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Appointment, error)
	ListByVet(ctx context.Context, vetID uuid.UUID) ([]models.Appointment, error)
	AttachPayment(ctx context.Context, id uuid.UUID, paymentID string, status enums.AppointmentStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an appointments repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	if err := r.db.WithContext(ctx).Create(appt).Error; err != nil {
		return nil, err
	}
	return appt, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Appointment, error) {
	var rows []models.Appointment
	err := r.db.WithContext(ctx).
		Where("pet_owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

func (r *repository) ListByVet(ctx context.Context, vetID uuid.UUID) ([]models.Appointment, error) {
	var rows []models.Appointment
	err := r.db.WithContext(ctx).
		Where("vet_id = ?", vetID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&rows).
		Error
	return rows, err
}

func (r *repository) AttachPayment(ctx context.Context, id uuid.UUID, paymentID string, status enums.AppointmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{"payment_id": paymentID, "status": status}).
		Error
}
