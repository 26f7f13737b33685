// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	paymentModel "hostelhub_backend/internals/features/finance/payments/model"
	"hostelhub_backend/internals/features/hostel/allocation"
	residentDTO "hostelhub_backend/internals/features/hostel/residents/dto"
	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	residentRepo "hostelhub_backend/internals/features/hostel/residents/repository"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	"hostelhub_backend/internals/features/users/auth/dto"
	"hostelhub_backend/internals/features/users/auth/model"
	"hostelhub_backend/internals/features/users/auth/repository"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
)

const (
	verificationTokenBytes = 32
	verificationTTL        = 24 * time.Hour
	adminAlias             = "admin"
)

type AuthService struct {
	DB         *gorm.DB
	Runner     *txretry.Runner
	Residents  *residentService.ResidentService
	Hasher     Hasher
	Tokens     *TokenService
	Mailer     Mailer
	Clock      dbtime.Clock
	AdminEmail string
	Log        *zap.Logger
}

func emailKey(email string) string { return "user-email:" + email }

func newVerificationToken() (string, error) {
	b := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

/* ===================== Register ===================== */

// Register creates a pending resident and an unverified resident account in
// one transaction, then mails the verification link.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	req.Normalize()
	pending := residentModel.ResidentStatusPending
	email := req.Email
	resReq := residentDTO.CreateResidentRequest{
		ResidentName:    req.Name,
		ResidentNIC:     req.NIC,
		ResidentContact: req.Contact,
		ResidentEmail:   &email,
		ResidentCourse:  req.Course,
		ResidentStatus:  &pending,
	}
	resReq.Normalize()

	keys := []string{emailKey(req.Email)}
	if resReq.ResidentNIC != nil {
		keys = append(keys, residentService.NICKey(*resReq.ResidentNIC))
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, err
	}
	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var user *model.UserModel
	err = s.Runner.Run(ctx, keys, func(tx *gorm.DB) error {
		exists, err := repository.ExistsEmail(tx, req.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperror.DuplicateEmail(req.Email)
		}

		res, err := s.Residents.CreateTx(tx, resReq)
		if err != nil {
			return err
		}

		expires := s.Clock.Now().Add(verificationTTL)
		name := req.Name
		user = &model.UserModel{
			UserEmail:                     req.Email,
			UserPasswordHash:              hash,
			UserRole:                      constants.RoleResident,
			UserName:                      &name,
			UserResidentID:                &res.ResidentID,
			UserVerificationToken:         &token,
			UserVerificationTokenExpireAt: &expires,
		}
		if err := repository.CreateUser(tx, user); err != nil {
			if txretry.IsUniqueViolation(err) {
				return apperror.DuplicateEmail(req.Email)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.Mailer.SendVerification(ctx, user.UserEmail, req.Name, token); err != nil {
		s.Log.Warn("verification mail failed", zap.String("email", user.UserEmail), zap.Error(err))
	}

	return &dto.RegisterResponse{
		Message:    "Registration successful! Please check your email to verify your account before logging in.",
		Email:      user.UserEmail,
		ResidentID: *user.UserResidentID,
	}, nil
}

/* ===================== Verify ===================== */

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperror.InvalidToken("Invalid verification link.")
	}
	db := s.DB.WithContext(ctx)
	u, err := repository.FindUserByVerificationToken(db, token)
	if errors.Is(err, repository.ErrUserNotFound) {
		return apperror.InvalidToken("Invalid or expired verification link.")
	}
	if err != nil {
		return err
	}
	if u.UserVerificationTokenExpireAt != nil && u.UserVerificationTokenExpireAt.Before(s.Clock.Now()) {
		return apperror.InvalidToken("Verification link has expired. Please register again.")
	}

	u.UserVerified = true
	u.UserVerificationToken = nil
	u.UserVerificationTokenExpireAt = nil
	return repository.SaveUser(db, u)
}

/* ===================== Login ===================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Normalize()
	lookup := req.EmailOrUsername
	if lookup == adminAlias {
		lookup = s.AdminEmail
	}

	u, err := repository.FindUserByEmail(s.DB.WithContext(ctx), lookup)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperror.InvalidCredentials()
	}
	if err != nil {
		return nil, err
	}
	if !u.UserVerified {
		return nil, apperror.EmailNotVerified()
	}
	if err := s.Hasher.Compare(u.UserPasswordHash, req.Password); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	tok, exp, err := s.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:      tok,
		ExpiresAt:  exp,
		Email:      u.UserEmail,
		Name:       u.DisplayName(),
		Role:       u.UserRole,
		ResidentID: u.UserResidentID,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*model.UserModel, error) {
	u, err := repository.FindUserByID(s.DB.WithContext(ctx), userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperror.NotFound("User", userID)
	}
	return u, err
}

/* ===================== Bootstrap & housekeeping ===================== */

// EnsureAdmin creates the admin account, or re-verifies and re-roles an
// existing one. The stored password is never overwritten.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (created bool, err error) {
	err = s.Runner.Run(ctx, []string{emailKey(email)}, func(tx *gorm.DB) error {
		u, err := repository.FindUserByEmail(tx, email)
		switch {
		case err == nil:
			if u.UserVerified && u.UserRole == constants.RoleAdmin {
				return nil
			}
			u.UserVerified = true
			u.UserRole = constants.RoleAdmin
			return repository.SaveUser(tx, u)
		case !errors.Is(err, repository.ErrUserNotFound):
			return err
		}

		hash, err := s.Hasher.Hash(password)
		if err != nil {
			return err
		}
		name := "Admin"
		created = true
		return repository.CreateUser(tx, &model.UserModel{
			UserEmail:        email,
			UserPasswordHash: hash,
			UserRole:         constants.RoleAdmin,
			UserName:         &name,
			UserVerified:     true,
		})
	})
	return created, err
}

// PurgeExpiredRegistrations removes accounts whose verification link expired
// so the email can register again. The linked resident goes with it only
// while it is still an untouched registration: pending, no room, no payments.
// A resident that staff have taken over is kept and just loses the login.
func (s *AuthService) PurgeExpiredRegistrations(ctx context.Context) (int, error) {
	users, err := repository.FindExpiredUnverified(s.DB.WithContext(ctx), s.Clock.Now(), 100)
	if err != nil {
		return 0, err
	}

	purged := 0
	for i := range users {
		u := users[i]
		keys := []string{emailKey(u.UserEmail)}
		if u.UserResidentID != nil {
			keys = append(keys, allocation.ResidentKey(*u.UserResidentID))
		}
		err := s.Runner.Run(ctx, keys, func(tx *gorm.DB) error {
			if err := repository.DeleteUserByID(tx, u.UserID); err != nil {
				return err
			}
			if u.UserResidentID == nil {
				return nil
			}
			return purgeRegistrationResident(tx, *u.UserResidentID)
		})
		if err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

func purgeRegistrationResident(tx *gorm.DB, id uuid.UUID) error {
	res, err := residentRepo.FindResidentForUpdate(tx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return err
	}
	if res.ResidentStatus != residentModel.ResidentStatusPending || res.ResidentRoomID != nil {
		return nil
	}
	var payments int64
	if err := tx.Model(&paymentModel.Payment{}).Where("payment_resident_id = ?", id).Count(&payments).Error; err != nil {
		return err
	}
	if payments > 0 {
		return nil
	}
	return residentRepo.DeleteResidentByID(tx, id)
}
