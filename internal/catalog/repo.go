package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
)

// Repository exposes meal catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAvailable returns every meal currently offered, newest first.
func (r *Repository) ListAvailable(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

// ListAll returns the full catalog including unavailable meals.
func (r *Repository) ListAll(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

// FindByID loads a single meal.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// FindByIDs returns the meals matching the given IDs. IDs with no matching
// row are silently absent from the result; callers decide how to treat gaps.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Meal, error) {
	if len(ids) == 0 {
		return []models.Meal{}, nil
	}
	var meals []models.Meal
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

// Create inserts a new meal and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateMealDTO) (*models.Meal, error) {
	meal := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// Update applies a full update to the meal row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateMealDTO) (*models.Meal, error) {
	updates := dto.ToColumnMap()
	result := r.db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// SetAvailability toggles whether the meal can be added to carts.
func (r *Repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*models.Meal, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("id = ?", id).
		UpdateColumn("available", available)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}
