package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hostelhub_backend/internals/features/users/auth/model"
)

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=120"`
	NIC      *string `json:"nic,omitempty" validate:"omitempty,max=32"`
	Contact  *string `json:"contact,omitempty" validate:"omitempty,phone"`
	Email    string  `json:"email" validate:"required,email,gmail"`
	Course   *string `json:"course,omitempty" validate:"omitempty,max=120"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
}

func (r *LoginRequest) Normalize() {
	r.EmailOrUsername = strings.ToLower(strings.TrimSpace(r.EmailOrUsername))
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type AuthResponse struct {
	Token      string     `json:"token"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	ResidentID *uuid.UUID `json:"resident_id"`
}

type RegisterResponse struct {
	Message    string    `json:"message"`
	Email      string    `json:"email"`
	ResidentID uuid.UUID `json:"resident_id"`
}

type MeResponse struct {
	UserID     uuid.UUID  `json:"user_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	ResidentID *uuid.UUID `json:"resident_id"`
	Verified   bool       `json:"verified"`
}

func ToMeResponse(u *model.UserModel) MeResponse {
	return MeResponse{
		UserID:     u.UserID,
		Email:      u.UserEmail,
		Name:       u.DisplayName(),
		Role:       u.UserRole,
		ResidentID: u.UserResidentID,
		Verified:   u.UserVerified,
	}
}
