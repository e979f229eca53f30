package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	"github.com/macroplate/macroplate-backend/pkg/enums"
)

// OrderDTO is the transport shape for an order and its line snapshots.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	Status          enums.OrderStatus   `json:"status"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	DeliveryAddress string              `json:"delivery_address"`
	Lines           []OrderLineDTO      `json:"lines"`
	Customer        *CustomerDTO        `json:"customer,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// CustomerDTO identifies the owning account on admin order views.
type CustomerDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// OrderLineDTO is one meal snapshot within an order.
type OrderLineDTO struct {
	ID              uuid.UUID       `json:"id"`
	MealID          uuid.UUID       `json:"meal_id"`
	MealName        string          `json:"meal_name"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

// UpdateStatusRequest is the admin payload for advancing an order.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	lines := make([]OrderLineDTO, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderLineDTO{
			ID:              line.ID,
			MealID:          line.MealID,
			MealName:        line.MealName,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.PriceAtPurchase,
		})
	}
	var customer *CustomerDTO
	if o.User != nil {
		customer = &CustomerDTO{
			Email:     o.User.Email,
			FirstName: o.User.FirstName,
			LastName:  o.User.LastName,
		}
	}
	return &OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		TotalPrice:      o.TotalPrice,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		DeliveryAddress: o.DeliveryAddress,
		Lines:           lines,
		Customer:        customer,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromModels(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *FromModel(&orders[i]))
	}
	return out
}
