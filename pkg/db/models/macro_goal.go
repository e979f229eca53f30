package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Defaults applied to the goal row created during registration.
const (
	DefaultCalories = 2000
	DefaultProtein  = 150
	DefaultCarbs    = 200
	DefaultFats     = 65
)

// MacroGoal stores a user's daily macro-nutrient targets. One row per user,
// created with defaults during registration.
type MacroGoal struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Calories  int       `gorm:"column:calories;not null;default:2000"`
	Protein   int       `gorm:"column:protein;not null;default:150"`
	Carbs     int       `gorm:"column:carbs;not null;default:200"`
	Fats      int       `gorm:"column:fats;not null;default:65"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (g *MacroGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
