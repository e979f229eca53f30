package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/enums"
)

// UserRole grants a role to a user. The (user_id, role) pair is unique; the
// workflow layer only ever reads it, grants happen at registration or
// out-of-band via the migrate tool.
type UserRole struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_roles_user_role"`
	Role      enums.UserRole `gorm:"column:role;type:text;not null;uniqueIndex:idx_user_roles_user_role"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
