package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
)

// MealDTO is the transport shape for catalog entries.
type MealDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Calories    int             `json:"calories"`
	Protein     int             `json:"protein"`
	Carbs       int             `json:"carbs"`
	Fats        int             `json:"fats"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateMealDTO carries the payload for adding a catalog entry.
type CreateMealDTO struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Calories    int             `json:"calories" validate:"gte=0"`
	Protein     int             `json:"protein" validate:"gte=0"`
	Carbs       int             `json:"carbs" validate:"gte=0"`
	Fats        int             `json:"fats" validate:"gte=0"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Available   *bool           `json:"available,omitempty"`
}

// UpdateMealDTO carries a full replacement of the meal's editable fields.
type UpdateMealDTO struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Calories    int             `json:"calories" validate:"gte=0"`
	Protein     int             `json:"protein" validate:"gte=0"`
	Carbs       int             `json:"carbs" validate:"gte=0"`
	Fats        int             `json:"fats" validate:"gte=0"`
	ImageURL    *string         `json:"image_url,omitempty"`
}

func FromModel(m *models.Meal) *MealDTO {
	if m == nil {
		return nil
	}
	return &MealDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Calories:    m.Calories,
		Protein:     m.Protein,
		Carbs:       m.Carbs,
		Fats:        m.Fats,
		ImageURL:    m.ImageURL,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromModels(meals []models.Meal) []MealDTO {
	out := make([]MealDTO, 0, len(meals))
	for i := range meals {
		out = append(out, *FromModel(&meals[i]))
	}
	return out
}

func (c CreateMealDTO) ToModel() *models.Meal {
	available := true
	if c.Available != nil {
		available = *c.Available
	}
	return &models.Meal{
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Calories:    c.Calories,
		Protein:     c.Protein,
		Carbs:       c.Carbs,
		Fats:        c.Fats,
		ImageURL:    c.ImageURL,
		Available:   available,
	}
}

func (u UpdateMealDTO) ToColumnMap() map[string]any {
	return map[string]any{
		"name":        u.Name,
		"description": u.Description,
		"price":       u.Price,
		"calories":    u.Calories,
		"protein":     u.Protein,
		"carbs":       u.Carbs,
		"fats":        u.Fats,
		"image_url":   u.ImageURL,
	}
}
