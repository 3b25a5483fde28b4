package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/model"
)

type PresentationRepository interface {
	// GetByID возвращает доклад вместе со спикерами и слотом.
	GetByID(ctx context.Context, id uint) (*model.Presentation, *model.Slot, error)
}

type GormPresentationRepository struct {
	db *gorm.DB
}

func NewGormPresentationRepository(db *gorm.DB) *GormPresentationRepository {
	return &GormPresentationRepository{db: db}
}

func (r *GormPresentationRepository) GetByID(ctx context.Context, id uint) (*model.Presentation, *model.Slot, error) {
	var p model.Presentation
	err := r.db.WithContext(ctx).
		Preload("Speaker.User").
		Preload("Section.Conference").
		Preload("Proposal.Kind").
		Preload("Proposal.AdditionalSpeakers.Speaker.User").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, nil, err
	}

	if p.SlotID == nil {
		return &p, nil, nil
	}

	var slot model.Slot
	err = r.db.WithContext(ctx).
		Preload("Day").
		Preload("Kind").
		Preload("Rooms", orderRooms).
		First(&slot, "id = ?", *p.SlotID).Error
	if err != nil {
		return nil, nil, err
	}
	return &p, &slot, nil
}
