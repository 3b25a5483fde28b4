package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/model"
)

type SponsorRepository interface {
	// Активные спонсоры: по порядку уровня, затем по имени.
	ListActive(ctx context.Context) ([]model.Sponsor, error)
	// Все спонсоры, включая неактивных (для выгрузки).
	ListAll(ctx context.Context) ([]model.Sponsor, error)
}

type GormSponsorRepository struct {
	db *gorm.DB
}

func NewGormSponsorRepository(db *gorm.DB) *GormSponsorRepository {
	return &GormSponsorRepository{db: db}
}

func (r *GormSponsorRepository) ListActive(ctx context.Context) ([]model.Sponsor, error) {
	return r.list(ctx, true)
}

func (r *GormSponsorRepository) ListAll(ctx context.Context) ([]model.Sponsor, error) {
	return r.list(ctx, false)
}

func (r *GormSponsorRepository) list(ctx context.Context, onlyActive bool) ([]model.Sponsor, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Sponsor{}).
		Joins("Level").
		Preload("Applicant")
	if onlyActive {
		q = q.Where("sponsors.active = ?", true)
	}

	var sponsors []model.Sponsor
	err := q.
		Order(`"Level"."sort_order" ASC`).
		Order("sponsors.name ASC").
		Find(&sponsors).Error
	if err != nil {
		return nil, err
	}
	return sponsors, nil
}
