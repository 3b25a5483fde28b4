package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/model"
)

type SlotRepository interface {
	// Все слоты расписания по времени начала со всем, что нужно выгрузкам.
	ListOrderedByStart(ctx context.Context) ([]model.Slot, error)
}

// Реализация на GORM.
type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

func (r *GormSlotRepository) ListOrderedByStart(ctx context.Context) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Preload("Day").
		Preload("Kind").
		Preload("Rooms", orderRooms).
		Preload("Content.Speaker.User").
		Preload("Content.Proposal.Kind").
		Preload("Content.Proposal.Talk").
		Preload("Content.Proposal.Tutorial").
		Preload("Content.Proposal.OpenSpace").
		Preload("Content.Proposal.AdditionalSpeakers.Speaker.User").
		Order("start_time ASC").
		Order("day_id ASC").
		Order("id ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func orderRooms(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}
