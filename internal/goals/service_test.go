package goals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	pkgerrors "github.com/macroplate/macroplate-backend/pkg/errors"
)

type stubGoalsRepo struct {
	findByUser func(ctx context.Context, userID uuid.UUID) (*models.MacroGoal, error)
	upsert     func(ctx context.Context, userID uuid.UUID, update UpdateGoalDTO) (*models.MacroGoal, error)
}

func (s *stubGoalsRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*models.MacroGoal, error) {
	if s.findByUser != nil {
		return s.findByUser(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGoalsRepo) Upsert(ctx context.Context, userID uuid.UUID, update UpdateGoalDTO) (*models.MacroGoal, error) {
	if s.upsert != nil {
		return s.upsert(ctx, userID, update)
	}
	return &models.MacroGoal{
		ID:       uuid.New(),
		UserID:   userID,
		Calories: update.Calories,
		Protein:  update.Protein,
		Carbs:    update.Carbs,
		Fats:     update.Fats,
	}, nil
}

func TestGetReturnsNotFoundForMissingGoal(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubGoalsRepo{}})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetReturnsGoal(t *testing.T) {
	userID := uuid.New()
	repo := &stubGoalsRepo{
		findByUser: func(ctx context.Context, id uuid.UUID) (*models.MacroGoal, error) {
			if id != userID {
				t.Fatalf("unexpected user id %s", id)
			}
			return &models.MacroGoal{ID: uuid.New(), UserID: id, Calories: 2200, Protein: 160, Carbs: 210, Fats: 70}, nil
		},
	}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	goal, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if goal.Calories != 2200 || goal.Protein != 160 {
		t.Fatalf("unexpected goal payload: %+v", goal)
	}
}

func TestUpdateRejectsNonPositiveCalories(t *testing.T) {
	upsertCalled := false
	repo := &stubGoalsRepo{
		upsert: func(ctx context.Context, userID uuid.UUID, update UpdateGoalDTO) (*models.MacroGoal, error) {
			upsertCalled = true
			return nil, nil
		},
	}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	_, err = svc.Update(context.Background(), uuid.New(), UpdateGoalDTO{Calories: 0, Protein: 100, Carbs: 100, Fats: 50})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if upsertCalled {
		t.Fatal("expected no write for rejected input")
	}
}

func TestUpdateRejectsNegativeMacros(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubGoalsRepo{}})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	_, err = svc.Update(context.Background(), uuid.New(), UpdateGoalDTO{Calories: 2000, Protein: -1, Carbs: 100, Fats: 50})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUpdatePersistsGoal(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubGoalsRepo{}})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	goal, err := svc.Update(context.Background(), uuid.New(), UpdateGoalDTO{Calories: 1800, Protein: 140, Carbs: 180, Fats: 60})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if goal.Calories != 1800 || goal.Fats != 60 {
		t.Fatalf("unexpected goal payload: %+v", goal)
	}
}
