package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	pkgerrors "github.com/macroplate/macroplate-backend/pkg/errors"
)

// Service defines the behavior needed by the meals controllers.
type Service interface {
	ListAvailable(ctx context.Context) ([]MealDTO, error)
	ListAll(ctx context.Context) ([]MealDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*MealDTO, error)
	Create(ctx context.Context, dto CreateMealDTO) (*MealDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateMealDTO) (*MealDTO, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*MealDTO, error)
}

type mealRepository interface {
	ListAvailable(ctx context.Context) ([]models.Meal, error)
	ListAll(ctx context.Context) ([]models.Meal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Meal, error)
	Create(ctx context.Context, dto CreateMealDTO) (*models.Meal, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateMealDTO) (*models.Meal, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*models.Meal, error)
}

type service struct {
	repo mealRepository
}

// ServiceParams bundles the dependencies required to build a catalog service.
type ServiceParams struct {
	Repo mealRepository
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) ListAvailable(ctx context.Context) ([]MealDTO, error) {
	meals, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list meals")
	}
	return FromModels(meals), nil
}

func (s *service) ListAll(ctx context.Context) ([]MealDTO, error) {
	meals, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list meals")
	}
	return FromModels(meals), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*MealDTO, error) {
	meal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "meal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load meal")
	}
	return FromModel(meal), nil
}

func (s *service) Create(ctx context.Context, dto CreateMealDTO) (*MealDTO, error) {
	if err := validatePricing(dto.Price, dto.Calories); err != nil {
		return nil, err
	}
	meal, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create meal")
	}
	return FromModel(meal), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateMealDTO) (*MealDTO, error) {
	if err := validatePricing(dto.Price, dto.Calories); err != nil {
		return nil, err
	}
	meal, err := s.repo.Update(ctx, id, dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "meal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update meal")
	}
	return FromModel(meal), nil
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*MealDTO, error) {
	meal, err := s.repo.SetAvailability(ctx, id, available)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "meal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set meal availability")
	}
	return FromModel(meal), nil
}

func validatePricing(price decimal.Decimal, calories int) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative").
			WithDetails(map[string]any{"reason": "price cannot be negative"})
	}
	if calories < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "calories cannot be negative").
			WithDetails(map[string]any{"reason": "calories cannot be negative"})
	}
	return nil
}
