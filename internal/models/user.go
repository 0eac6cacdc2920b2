package models

import (
	"fmt"
	"strings"
	"time"

	"auction-backend/internal/apperrors"
)

const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return fmt.Errorf("%w: username too short", apperrors.ErrInvalidInput)
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: invalid email", apperrors.ErrInvalidInput)
	}
	if u.Role == "" {
		u.Role = RoleBuyer
	}
	switch u.Role {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, u.Role)
	}
}
