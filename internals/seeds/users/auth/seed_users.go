package user

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/users/auth/model"
	"hostelhub_backend/internals/features/users/auth/repository"
	authService "hostelhub_backend/internals/features/users/auth/service"
)

//go:embed data_users.json
var usersJSON []byte

type UserSeed struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedResidentUsers creates verified resident accounts linked by email to
// already seeded residents. Existing accounts are skipped.
func SeedResidentUsers(ctx context.Context, db *gorm.DB, hasher authService.Hasher, residents map[string]uuid.UUID, log *zap.Logger) error {
	var inputs []UserSeed
	if err := sonic.Unmarshal(usersJSON, &inputs); err != nil {
		return fmt.Errorf("decode users: %w", err)
	}

	db = db.WithContext(ctx)
	created := 0
	for _, data := range inputs {
		if _, err := repository.FindUserByEmail(db, data.Email); err == nil {
			log.Info("[SEED] user exists, skipped", zap.String("email", data.Email))
			continue
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		rid, ok := residents[data.Email]
		if !ok {
			return fmt.Errorf("user %s: no resident with that email", data.Email)
		}
		hash, err := hasher.Hash(data.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", data.Email, err)
		}

		name := data.UserName
		if err := repository.CreateUser(db, &model.UserModel{
			UserEmail:        data.Email,
			UserPasswordHash: hash,
			UserRole:         constants.RoleResident,
			UserName:         &name,
			UserResidentID:   &rid,
			UserVerified:     true,
		}); err != nil {
			return fmt.Errorf("insert user %s: %w", data.Email, err)
		}
		created++
	}
	log.Info("[SEED] resident users", zap.Int("count", created))
	return nil
}
