package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Meal is a catalog entry users can order. Nutrition values are per serving.
// Only meals with Available = true are eligible for carts.
type Meal struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Calories    int             `gorm:"column:calories;not null;default:0"`
	Protein     int             `gorm:"column:protein;not null;default:0"`
	Carbs       int             `gorm:"column:carbs;not null;default:0"`
	Fats        int             `gorm:"column:fats;not null;default:0"`
	ImageURL    *string         `gorm:"column:image_url"`
	Available   bool            `gorm:"column:available;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
