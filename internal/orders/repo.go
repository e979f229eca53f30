package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	"github.com/macroplate/macroplate-backend/pkg/enums"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order row. Lines are written separately by the checkout
// workflow; see internal/checkout for why the two writes are not atomic.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Status == "" {
		order.Status = enums.OrderStatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = enums.PaymentStatusPending
	}
	if err := r.db.WithContext(ctx).Omit("Lines", "User").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// CreateLines inserts the order's line snapshots in one batch.
func (r *Repository) CreateLines(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// FindByID loads an order with its lines.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListFilters narrows admin order listings.
type ListFilters struct {
	Status *enums.OrderStatus
	UserID *uuid.UUID
	Limit  int
	// WithUser preloads the owning account for admin views.
	WithUser bool
}

// List returns orders newest first, optionally filtered by status or user.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Lines").
		Order("created_at DESC")
	if filters.WithUser {
		query = query.Preload("User")
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus persists the new status. Transition legality is checked by the
// service; the repo just writes.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
