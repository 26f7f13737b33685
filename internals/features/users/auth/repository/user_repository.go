// internals/features/users/auth/repository/user_repository.go
package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostelhub_backend/internals/features/users/auth/model"
)

// ErrUserNotFound is returned by the lookups below; callers map it to their
// own error (login never reveals which part was wrong).
var ErrUserNotFound = errors.New("user not found")

func take(q *gorm.DB) (*model.UserModel, error) {
	var u model.UserModel
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindUserByEmail matches case-insensitively; emails are stored lower-cased.
func FindUserByEmail(db *gorm.DB, email string) (*model.UserModel, error) {
	return take(db.Where("user_email = ?", strings.ToLower(strings.TrimSpace(email))))
}

func FindUserByID(db *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	return take(db.Where("user_id = ?", id))
}

func FindUserByVerificationToken(db *gorm.DB, token string) (*model.UserModel, error) {
	return take(db.Where("user_verification_token = ?", token))
}

func ExistsEmail(db *gorm.DB, email string) (bool, error) {
	var n int64
	err := db.Model(&model.UserModel{}).
		Where("user_email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&n).Error
	return n > 0, err
}

func CreateUser(tx *gorm.DB, u *model.UserModel) error {
	return tx.Omit(clause.Associations).Create(u).Error
}

func SaveUser(tx *gorm.DB, u *model.UserModel) error {
	return tx.Omit(clause.Associations).Save(u).Error
}

// FindExpiredUnverified lists registrations whose verification window closed.
func FindExpiredUnverified(db *gorm.DB, now time.Time, limit int) ([]model.UserModel, error) {
	var out []model.UserModel
	err := db.Where("user_verified = ? AND user_verification_expires_at IS NOT NULL AND user_verification_expires_at < ?", false, now).
		Limit(limit).
		Find(&out).Error
	return out, err
}

func DeleteUserByID(tx *gorm.DB, id uuid.UUID) error {
	return tx.Where("user_id = ?", id).Delete(&model.UserModel{}).Error
}
