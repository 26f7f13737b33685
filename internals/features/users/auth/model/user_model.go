package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
)

// UserModel is a login account. Resident accounts link to their resident row;
// admin and staff accounts have none.
type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(160);not null;uniqueIndex:uq_users_email" json:"user_email"`
	UserPasswordHash string    `gorm:"column:user_password_hash;type:varchar(255);not null" json:"-"`
	UserRole         string    `gorm:"column:user_role;type:varchar(20);not null" json:"user_role"`
	UserName         *string   `gorm:"column:user_name;type:varchar(120)" json:"user_name,omitempty"`

	UserResidentID *uuid.UUID              `gorm:"column:user_resident_id;type:uuid;index:idx_users_resident" json:"user_resident_id,omitempty"`
	Resident       *residentModel.Resident `gorm:"foreignKey:UserResidentID;references:ResidentID;constraint:OnDelete:SET NULL" json:"-"`

	UserVerified                  bool       `gorm:"column:user_verified;not null;default:false" json:"user_verified"`
	UserVerificationToken         *string    `gorm:"column:user_verification_token;type:varchar(64);index:idx_users_verification_token" json:"-"`
	UserVerificationTokenExpireAt *time.Time `gorm:"column:user_verification_expires_at" json:"-"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

// DisplayName falls back to the email when no name is set.
func (u *UserModel) DisplayName() string {
	if u.UserName != nil && *u.UserName != "" {
		return *u.UserName
	}
	return u.UserEmail
}
