package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/djangocon/conference-site/internal/model"
)

// Ошибки валидации пользователя.
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserInactive    = errors.New("user is inactive")
)

// Источник данных о пользователях.
// В реале это репозиторий на GORM, в тестах — мок.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// ValidateUser:
//   - проверяет, что username не пустой;
//   - вытаскивает пользователя из хранилища;
//   - проверяет, что учётная запись активна.
//
// Ошибка хранилища возвращается как есть; nil без ошибки — ErrUserNotFound.
func ValidateUser(ctx context.Context, store UserStore, username string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrInvalidUsername
	}

	u, err := store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if !u.IsActive {
		return nil, ErrUserInactive
	}

	return u, nil
}
