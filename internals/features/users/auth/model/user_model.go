package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserName  string `gorm:"type:varchar(120);not null;column:user_name" json:"user_name"`
	UserEmail string `gorm:"type:varchar(160);not null;uniqueIndex;column:user_email" json:"user_email"`

	// bcrypt hash, never serialized.
	UserPassword string `gorm:"type:varchar(120);not null;column:user_password" json:"-"`

	UserRole     string `gorm:"type:varchar(32);not null;column:user_role" json:"user_role"`
	UserIsActive bool   `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
