package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/enums"
)

// Order is the durable record of a committed checkout. TotalPrice is the sum
// of line snapshots captured at submission time and is never recomputed from
// the lines afterwards.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	TotalPrice      decimal.Decimal     `gorm:"column:total_price;type:numeric(10,2);not null"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	DeliveryAddress string              `gorm:"column:delivery_address;not null"`
	Lines           []OrderLine         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	User            *User               `gorm:"foreignKey:UserID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
