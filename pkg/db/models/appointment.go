package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
)

// Appointment records a veterinary consultation booking and its payment.
type Appointment struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PetOwnerID      uuid.UUID               `gorm:"column:pet_owner_id;type:uuid;not null;index"`
	VetID           uuid.UUID               `gorm:"column:vet_id;type:uuid;not null;index"`
	PetName         string                  `gorm:"column:pet_name;not null"`
	OwnerName       string                  `gorm:"column:owner_name;not null"`
	AppointmentDate string                  `gorm:"column:appointment_date;not null"`
	AppointmentTime string                  `gorm:"column:appointment_time;not null"`
	Reason          string                  `gorm:"column:reason;not null"`
	Notes           *string                 `gorm:"column:notes"`
	Amount          decimal.Decimal         `gorm:"column:amount;type:numeric(10,2);not null"`
	PaymentID       *string                 `gorm:"column:payment_id"`
	Status          enums.AppointmentStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
