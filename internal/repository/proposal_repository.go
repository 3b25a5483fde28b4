package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/model"
)

type ProposalRepository interface {
	// Заявки для выгрузки; kindSlug == "" — все виды.
	ListForExport(ctx context.Context, kindSlug string) ([]model.ProposalBase, error)
}

type GormProposalRepository struct {
	db *gorm.DB
}

func NewGormProposalRepository(db *gorm.DB) *GormProposalRepository {
	return &GormProposalRepository{db: db}
}

func (r *GormProposalRepository) ListForExport(ctx context.Context, kindSlug string) ([]model.ProposalBase, error) {
	q := r.db.WithContext(ctx).
		Model(&model.ProposalBase{}).
		Preload("Kind").
		Preload("Talk").
		Preload("Tutorial").
		Preload("OpenSpace").
		Preload("Speaker.User").
		Preload("AdditionalSpeakers", func(db *gorm.DB) *gorm.DB {
			return db.Order("speaker_id ASC")
		}).
		Preload("AdditionalSpeakers.Speaker.User").
		Preload("SupportingDocuments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})

	if kindSlug != "" {
		q = q.
			Joins("JOIN proposal_kinds ON proposal_kinds.id = proposal_bases.kind_id").
			Where("proposal_kinds.slug = ?", kindSlug)
	}

	var proposals []model.ProposalBase
	if err := q.Order("proposal_bases.id ASC").Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}
