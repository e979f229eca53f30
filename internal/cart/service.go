package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	pkgerrors "github.com/macroplate/macroplate-backend/pkg/errors"
)

// Service defines the behavior needed by the cart controller.
type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	SetItem(ctx context.Context, token string, mealID uuid.UUID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, token string, mealID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

type mealFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Meal, error)
}

type service struct {
	store Store
	meals mealFinder
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	Store Store
	Meals mealFinder
}

// NewService constructs a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if params.Meals == nil {
		return nil, fmt.Errorf("meal repository is required")
	}
	return &service{store: params.Store, meals: params.Meals}, nil
}

func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	cart, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func (s *service) SetItem(ctx context.Context, token string, mealID uuid.UUID, quantity int) (*Cart, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	if mealID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meal_id is required").
			WithDetails(map[string]any{"reason": "meal_id is required"})
	}

	// Quantities below one fall through to removal, which needs no catalog
	// lookup.
	if quantity >= 1 {
		meal, err := s.meals.FindByID(ctx, mealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown meal").
					WithDetails(map[string]any{"reason": "unknown meal", "meal_id": mealID})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up meal")
		}
		if !meal.Available {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "meal is not available").
				WithDetails(map[string]any{"reason": "meal is not available", "meal_id": mealID})
		}
	}

	cart, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	cart.SetItem(mealID, quantity)
	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, token string, mealID uuid.UUID) (*Cart, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	cart, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	cart.Remove(mealID)
	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if err := requireToken(token); err != nil {
		return err
	}
	if err := s.store.Clear(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func requireToken(token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required").
			WithDetails(map[string]any{"reason": "cart token is required"})
	}
	return nil
}
