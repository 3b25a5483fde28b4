package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/model"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// normalizeUsername убирает пробелы по краям; регистр сохраняется.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	n := normalizeUsername(username)
	if n == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", n).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	user.Username = normalizeUsername(user.Username)
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", at).
		Error
}
