package goals

import (
	"time"

	"github.com/google/uuid"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
)

// GoalDTO is the transport shape returned to clients.
type GoalDTO struct {
	ID        uuid.UUID `json:"id"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fats      int       `json:"fats"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateGoalDTO carries a full replacement of the user's targets.
type UpdateGoalDTO struct {
	Calories int `json:"calories" validate:"required,gt=0,lte=20000"`
	Protein  int `json:"protein" validate:"gte=0,lte=2000"`
	Carbs    int `json:"carbs" validate:"gte=0,lte=2000"`
	Fats     int `json:"fats" validate:"gte=0,lte=2000"`
}

func FromModel(g *models.MacroGoal) *GoalDTO {
	if g == nil {
		return nil
	}
	return &GoalDTO{
		ID:        g.ID,
		Calories:  g.Calories,
		Protein:   g.Protein,
		Carbs:     g.Carbs,
		Fats:      g.Fats,
		UpdatedAt: g.UpdatedAt,
	}
}
