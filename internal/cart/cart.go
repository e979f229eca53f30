package cart

import "github.com/google/uuid"

// Item is one meal/quantity pair in a cart.
type Item struct {
	MealID   uuid.UUID `json:"meal_id"`
	Quantity int       `json:"quantity"`
}

// Cart is the working order a client assembles before checkout. It lives in
// redis keyed by an opaque cart token, so it survives page reloads and never
// requires authentication.
type Cart struct {
	Items []Item `json:"items"`
}

// SetItem sets the quantity for a meal. A quantity below one removes the
// entry instead of storing a zero or negative line.
func (c *Cart) SetItem(mealID uuid.UUID, quantity int) {
	if quantity < 1 {
		c.Remove(mealID)
		return
	}
	for i := range c.Items {
		if c.Items[i].MealID == mealID {
			c.Items[i].Quantity = quantity
			return
		}
	}
	c.Items = append(c.Items, Item{MealID: mealID, Quantity: quantity})
}

// Remove deletes the meal's entry if present.
func (c *Cart) Remove(mealID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].MealID == mealID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Quantity returns the stored quantity for a meal, zero when absent.
func (c *Cart) Quantity(mealID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].MealID == mealID {
			return c.Items[i].Quantity
		}
	}
	return 0
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// MealIDs returns the meal IDs in insertion order.
func (c *Cart) MealIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for i := range c.Items {
		ids = append(ids, c.Items[i].MealID)
	}
	return ids
}
