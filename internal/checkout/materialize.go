package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/macroplate/macroplate-backend/internal/cart"
	"github.com/macroplate/macroplate-backend/pkg/db/models"
)

// Line is one cart entry resolved against the catalog, with the price and
// nutrition captured at materialization time. Nutrition values are scaled by
// quantity.
type Line struct {
	MealID    uuid.UUID       `json:"meal_id"`
	MealName  string          `json:"meal_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Calories  int             `json:"calories"`
	Protein   int             `json:"protein"`
	Carbs     int             `json:"carbs"`
	Fats      int             `json:"fats"`
}

// MaterializedCart is the resolved view of a cart. Unresolved lists meal IDs
// that could not be matched to an available catalog entry; callers decide
// whether that blocks the operation. Totals cover only the resolved lines.
type MaterializedCart struct {
	Lines      []Line          `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	Calories   int             `json:"calories"`
	Protein    int             `json:"protein"`
	Carbs      int             `json:"carbs"`
	Fats       int             `json:"fats"`
	Unresolved []uuid.UUID     `json:"unresolved,omitempty"`
}

// Materialize resolves cart entries against the given catalog snapshot. It is
// a pure function: unknown or unavailable meals land in Unresolved instead of
// failing, and totals cover only the resolved lines.
func Materialize(c *cart.Cart, meals []models.Meal) MaterializedCart {
	out := MaterializedCart{
		Lines: []Line{},
		Total: decimal.Zero,
	}
	if c == nil || c.IsEmpty() {
		return out
	}

	byID := make(map[uuid.UUID]*models.Meal, len(meals))
	for i := range meals {
		byID[meals[i].ID] = &meals[i]
	}

	for _, item := range c.Items {
		if item.Quantity < 1 {
			continue
		}
		meal, ok := byID[item.MealID]
		if !ok || !meal.Available {
			out.Unresolved = append(out.Unresolved, item.MealID)
			continue
		}
		lineTotal := meal.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		line := Line{
			MealID:    meal.ID,
			MealName:  meal.Name,
			UnitPrice: meal.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
			Calories:  meal.Calories * item.Quantity,
			Protein:   meal.Protein * item.Quantity,
			Carbs:     meal.Carbs * item.Quantity,
			Fats:      meal.Fats * item.Quantity,
		}
		out.Lines = append(out.Lines, line)
		out.Total = out.Total.Add(lineTotal)
		out.Calories += line.Calories
		out.Protein += line.Protein
		out.Carbs += line.Carbs
		out.Fats += line.Fats
	}
	return out
}
