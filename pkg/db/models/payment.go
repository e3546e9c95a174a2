package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment records a tax/fee/penalty payment against a parcel.
type Payment struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	ParcelID    *uuid.UUID        `gorm:"column:parcel_id;type:uuid;index"`
	Parcel      *LandParcel       `gorm:"foreignKey:ParcelID"`
	PayerID     *uuid.UUID        `gorm:"column:payer_id;type:uuid"`
	Payer       *OwnerProfile     `gorm:"foreignKey:PayerID"`
	Amount      decimal.Decimal   `gorm:"column:amount;type:numeric(14,2);not null"`
	PaymentType enums.PaymentType `gorm:"column:payment_type;type:text;not null"`
	PaymentDate time.Time         `gorm:"column:payment_date;autoCreateTime"`
	Status      string            `gorm:"column:status;not null;default:'pending'"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
