package services

import (
	"context"
	"fmt"
	"strings"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/auth"
	"auction-backend/internal/authz"
	"auction-backend/internal/models"
	repo "auction-backend/internal/repository"
)

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewUserService(r repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{users: r, tm: tm}
}

func (s *UserService) Signup(ctx context.Context, username, email, password, role string) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Role:     role,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if password == "" {
		return models.User{}, fmt.Errorf("%w: password required", apperrors.ErrInvalidInput)
	}
	if _, err := s.users.GetByUsername(ctx, u.Username); err == nil {
		return models.User{}, apperrors.ErrUsernameTaken
	}
	if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
		return models.User{}, apperrors.ErrEmailTaken
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash
	return s.users.Create(ctx, u)
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	token, _, err := s.tm.Generate(u.ID, u.Role)
	return token, err
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

func (s *UserService) Update(ctx context.Context, actor authz.Actor, id string, upd UserUpdate) (models.User, error) {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if !authz.Can(actor, authz.UserUpdate, authz.Resource{OwnerID: target.ID}) {
		return models.User{}, fmt.Errorf("%w: cannot update this user", apperrors.ErrForbidden)
	}
	if upd.Username != nil {
		target.Username = strings.TrimSpace(*upd.Username)
	}
	if upd.Email != nil {
		target.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.Role != nil {
		target.Role = *upd.Role
	}
	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return models.User{}, err
		}
		target.PasswordHash = hash
	}
	if err := target.Validate(); err != nil {
		return models.User{}, err
	}
	if err := s.users.Update(ctx, target); err != nil {
		return models.User{}, err
	}
	return target, nil
}

func (s *UserService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.UserDelete, authz.Resource{OwnerID: target.ID}) {
		return fmt.Errorf("%w: cannot delete this user", apperrors.ErrForbidden)
	}
	return s.users.Delete(ctx, id)
}
