// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"hostelhub_backend/internals/features/users/auth/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

var errMissingSecret = errors.New("JWT_SECRET is not configured")

// TokenService issues HS256 access tokens. The auth middleware reads the
// same claims back.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
	Clock  dbtime.Clock
}

func NewTokenService(secret string, ttl time.Duration, clock dbtime.Clock) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{Secret: []byte(secret), TTL: ttl, Clock: clock}
}

func (t *TokenService) Issue(u *model.UserModel) (string, time.Time, error) {
	if len(t.Secret) == 0 {
		return "", time.Time{}, errMissingSecret
	}
	now := t.Clock.Now()
	exp := now.Add(t.TTL)

	claims := jwt.MapClaims{
		"sub":   u.UserID.String(),
		"email": u.UserEmail,
		"role":  u.UserRole,
		"name":  u.DisplayName(),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	if u.UserResidentID != nil {
		claims["resident_id"] = u.UserResidentID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
