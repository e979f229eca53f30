package roles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	"github.com/macroplate/macroplate-backend/pkg/enums"
)

// Repository manages role grants. The API only reads grants; writes happen at
// registration time or through the migrate tool.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a roles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Grant assigns a role to a user. Granting an already-held role is a no-op.
func (r *Repository) Grant(ctx context.Context, userID uuid.UUID, role enums.UserRole) error {
	grant := models.UserRole{UserID: userID, Role: role}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		FirstOrCreate(&grant).Error
	return err
}

// HasRole reports whether the user holds the given role.
func (r *Repository) HasRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser returns every role held by the user.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]enums.UserRole, error) {
	var grants []models.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}

	out := make([]enums.UserRole, 0, len(grants))
	for _, g := range grants {
		out = append(out, g.Role)
	}
	return out, nil
}

// PrimaryRole picks the role to embed in an access token. Admin wins over user.
func (r *Repository) PrimaryRole(ctx context.Context, userID uuid.UUID) (enums.UserRole, error) {
	held, err := r.ListForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	primary := enums.UserRoleUser
	for _, role := range held {
		if role == enums.UserRoleAdmin {
			primary = enums.UserRoleAdmin
		}
	}
	return primary, nil
}
