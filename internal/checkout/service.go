package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/macroplate/macroplate-backend/internal/cart"
	"github.com/macroplate/macroplate-backend/pkg/db/models"
	pkgerrors "github.com/macroplate/macroplate-backend/pkg/errors"
	"github.com/macroplate/macroplate-backend/pkg/logger"
	"github.com/macroplate/macroplate-backend/pkg/metrics"
)

// SubmitRequest is the checkout payload.
type SubmitRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required"`
}

// SubmitResponse returns the committed order view.
type SubmitResponse struct {
	OrderID uuid.UUID        `json:"order_id"`
	Cart    MaterializedCart `json:"cart"`
}

// Service defines the behavior needed by the checkout and cart-view
// controllers.
type Service interface {
	Quote(ctx context.Context, token string) (*MaterializedCart, error)
	Submit(ctx context.Context, token string, userID uuid.UUID, req SubmitRequest) (*SubmitResponse, error)
}

type orderWriter interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateLines(ctx context.Context, lines []models.OrderLine) error
}

type mealCatalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Meal, error)
}

type service struct {
	store   cart.Store
	meals   mealCatalog
	orders  orderWriter
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	Store   cart.Store
	Meals   mealCatalog
	Orders  orderWriter
	Logger  *logger.Logger
	Metrics *metrics.CheckoutMetrics
}

// NewService constructs a checkout service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if params.Meals == nil {
		return nil, fmt.Errorf("meal repository is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		store:   params.Store,
		meals:   params.Meals,
		orders:  params.Orders,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Quote materializes the cart without writing anything.
func (s *service) Quote(ctx context.Context, token string) (*MaterializedCart, error) {
	current, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	meals, err := s.meals.FindByIDs(ctx, current.MealIDs())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve meals")
	}
	result := Materialize(current, meals)
	return &result, nil
}

// Submit turns the cart into a durable order. The order row and its lines are
// written sequentially without a shared transaction; if the lines fail the
// order row stays behind and the caller sees PARTIAL_FAILURE with the order
// id. The cart is only cleared after both writes land.
func (s *service) Submit(ctx context.Context, token string, userID uuid.UUID, req SubmitRequest) (*SubmitResponse, error) {
	resp, err := s.submit(ctx, token, userID, req)
	s.recordOutcome(err)
	return resp, err
}

func (s *service) submit(ctx context.Context, token string, userID uuid.UUID, req SubmitRequest) (*SubmitResponse, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required").
			WithDetails(map[string]any{"reason": "missing_address"})
	}

	current, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
			WithDetails(map[string]any{"reason": "empty_cart"})
	}

	meals, err := s.meals.FindByIDs(ctx, current.MealIDs())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve meals")
	}

	materialized := Materialize(current, meals)
	if len(materialized.Unresolved) > 0 {
		unresolved := make([]string, 0, len(materialized.Unresolved))
		for _, id := range materialized.Unresolved {
			unresolved = append(unresolved, id.String())
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains meals that are no longer offered").
			WithDetails(map[string]any{
				"reason":              "unresolved_meals",
				"unresolved_meal_ids": unresolved,
			})
	}

	order, err := s.orders.Create(ctx, &models.Order{
		UserID:          userID,
		TotalPrice:      materialized.Total,
		DeliveryAddress: address,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	lines := make([]models.OrderLine, 0, len(materialized.Lines))
	for _, line := range materialized.Lines {
		lines = append(lines, models.OrderLine{
			OrderID:         order.ID,
			MealID:          line.MealID,
			MealName:        line.MealName,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.UnitPrice,
		})
	}
	if err := s.orders.CreateLines(ctx, lines); err != nil {
		// The order row committed but its lines did not. Surfacing the order
		// id lets support repair or void the orphan. The cart is preserved so
		// the client has not lost their selection.
		s.logg.Error(
			s.logg.WithField(ctx, "order_id", order.ID.String()),
			"order lines failed after order commit",
			err,
		)
		return nil, pkgerrors.Wrap(pkgerrors.CodePartialFailure, err, "order committed without lines").
			WithDetails(map[string]any{"order_id": order.ID})
	}

	if err := s.store.Clear(ctx, token); err != nil {
		// The order is fully committed at this point; a stale cart is an
		// annoyance, not a failure.
		s.logg.Warn(
			s.logg.WithField(ctx, "order_id", order.ID.String()),
			"clearing cart after checkout failed",
		)
	}

	return &SubmitResponse{
		OrderID: order.ID,
		Cart:    materialized,
	}, nil
}

func (s *service) recordOutcome(err error) {
	if s.metrics == nil {
		return
	}
	if err == nil {
		s.metrics.IncOutcome("accepted")
		return
	}
	appErr := pkgerrors.As(err)
	if appErr == nil {
		s.metrics.IncOutcome("failed")
		return
	}
	switch appErr.Code() {
	case pkgerrors.CodeValidation, pkgerrors.CodeUnauthorized:
		s.metrics.IncOutcome("rejected")
	case pkgerrors.CodePartialFailure:
		s.metrics.IncOutcome("partial_failure")
	default:
		s.metrics.IncOutcome("failed")
	}
}
