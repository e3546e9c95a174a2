package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LandTransaction records a monetary event between two owner profiles over a parcel.
type LandTransaction struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	ParcelID        uuid.UUID             `gorm:"column:parcel_id;type:uuid;not null;index"`
	Parcel          *LandParcel           `gorm:"foreignKey:ParcelID"`
	BuyerID         *uuid.UUID            `gorm:"column:buyer_id;type:uuid"`
	Buyer           *OwnerProfile         `gorm:"foreignKey:BuyerID"`
	SellerID        *uuid.UUID            `gorm:"column:seller_id;type:uuid"`
	Seller          *OwnerProfile         `gorm:"foreignKey:SellerID"`
	TransactionType enums.TransactionType `gorm:"column:transaction_type;type:text;not null"`
	TransactionDate time.Time             `gorm:"column:transaction_date;autoCreateTime"`
	Amount          decimal.Decimal       `gorm:"column:amount;type:numeric(14,2);not null"`
	Status          string                `gorm:"column:status;not null;default:'pending'"`
}

func (t *LandTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
