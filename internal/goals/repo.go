package goals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
)

// Repository persists per-user macro goals.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a goals repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDefault inserts the default goal row for a new user.
func (r *Repository) CreateDefault(ctx context.Context, userID uuid.UUID) (*models.MacroGoal, error) {
	goal := models.MacroGoal{
		UserID:   userID,
		Calories: models.DefaultCalories,
		Protein:  models.DefaultProtein,
		Carbs:    models.DefaultCarbs,
		Fats:     models.DefaultFats,
	}
	if err := r.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByUser loads the goal row for the user.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.MacroGoal, error) {
	var goal models.MacroGoal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// Upsert writes the user's goal, inserting the row if it does not exist yet.
func (r *Repository) Upsert(ctx context.Context, userID uuid.UUID, update UpdateGoalDTO) (*models.MacroGoal, error) {
	goal := models.MacroGoal{
		UserID:   userID,
		Calories: update.Calories,
		Protein:  update.Protein,
		Carbs:    update.Carbs,
		Fats:     update.Fats,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "carbs", "fats", "updated_at"}),
		}).
		Create(&goal).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUser(ctx, userID)
}
