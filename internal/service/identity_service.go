package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/auth"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/repository"
)

// IdentityService — вход по логину и паролю и управление учётными записями.
type IdentityService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo, now: time.Now}
}

// Login проверяет пароль активного пользователя и отмечает время входа.
// Любая причина отказа (нет пользователя, неактивен, неверный пароль) — ErrInvalidCredentials.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := auth.ValidateUser(ctx, s.userRepo, username)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound),
			errors.Is(err, auth.ErrInvalidUsername),
			errors.Is(err, auth.ErrUserNotFound),
			errors.Is(err, auth.ErrUserInactive):
			return nil, ErrInvalidCredentials
		default:
			return nil, fmt.Errorf("find user: %w", err)
		}
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	at := s.now().UTC()
	if err := s.userRepo.TouchLastLogin(ctx, u.ID, at); err != nil {
		return nil, fmt.Errorf("touch last login: %w", err)
	}
	u.LastLogin = &at
	return u, nil
}

// CurrentUser возвращает активного пользователя сессии.
func (s *IdentityService) CurrentUser(ctx context.Context, id uint) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if !u.IsActive {
		return nil, ErrNotFound
	}
	return u, nil
}

// NewUserParams — данные для создания учётной записи из консоли.
type NewUserParams struct {
	Username  string
	Email     string
	Password  string
	Staff     bool
	Superuser bool
}

// CreateUser создаёт активного пользователя с хешированным паролем.
func (s *IdentityService) CreateUser(ctx context.Context, p NewUserParams) (*model.User, error) {
	username := strings.TrimSpace(p.Username)
	if username == "" {
		return nil, auth.ErrInvalidUsername
	}
	if p.Password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     username,
		Email:        strings.TrimSpace(p.Email),
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      p.Staff || p.Superuser,
		IsSuperuser:  p.Superuser,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	return u, nil
}
