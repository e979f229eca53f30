package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	pkgerrors "github.com/macroplate/macroplate-backend/pkg/errors"
)

// Service defines the behavior needed by the goals controller.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*GoalDTO, error)
	Update(ctx context.Context, userID uuid.UUID, update UpdateGoalDTO) (*GoalDTO, error)
}

type goalRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.MacroGoal, error)
	Upsert(ctx context.Context, userID uuid.UUID, update UpdateGoalDTO) (*models.MacroGoal, error)
}

type service struct {
	repo goalRepository
}

// ServiceParams bundles the dependencies required to build a goals service.
type ServiceParams struct {
	Repo goalRepository
}

// NewService constructs a goals service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("goals repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*GoalDTO, error) {
	goal, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "macro goal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load macro goal")
	}
	return FromModel(goal), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, update UpdateGoalDTO) (*GoalDTO, error) {
	if update.Calories <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "calories must be positive").
			WithDetails(map[string]any{"reason": "calories must be positive"})
	}
	if update.Protein < 0 || update.Carbs < 0 || update.Fats < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "macro targets cannot be negative").
			WithDetails(map[string]any{"reason": "macro targets cannot be negative"})
	}

	goal, err := s.repo.Upsert(ctx, userID, update)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save macro goal")
	}
	return FromModel(goal), nil
}
