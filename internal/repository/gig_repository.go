package repository

import (
	"context"
	"errors"

	"github.com/xlance-app/xlance-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

// GigFilter narrows public marketplace listings.
type GigFilter struct {
	Category string
	Status   model.GigStatus
	Limit    int
	Offset   int
}

type GigRepository interface {
	Create(ctx context.Context, gig *model.Gig) error
	FindByID(ctx context.Context, id uint64) (*model.Gig, error)
	List(ctx context.Context, f GigFilter) ([]model.Gig, int64, error)
	ListBySeller(ctx context.Context, sellerUID string) ([]model.Gig, error)
	Update(ctx context.Context, gig *model.Gig) error
	Delete(ctx context.Context, id uint64) error
	IncrementViews(ctx context.Context, id uint64) error
	SetDB(db *gorm.DB)
}

type gigRepository struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) GigRepository {
	return &gigRepository{db: db}
}

func (r *gigRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *gigRepository) Create(ctx context.Context, gig *model.Gig) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(gig).Error
}

func (r *gigRepository) FindByID(ctx context.Context, id uint64) (*model.Gig, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var gig model.Gig
	if err := r.db.WithContext(ctx).First(&gig, id).Error; err != nil {
		return nil, err
	}
	return &gig, nil
}

func (r *gigRepository) List(ctx context.Context, f GigFilter) ([]model.Gig, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).Model(&model.Gig{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var gigs []model.Gig
	if err := q.Order("created_at desc").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&gigs).Error; err != nil {
		return nil, 0, err
	}
	return gigs, total, nil
}

func (r *gigRepository) ListBySeller(ctx context.Context, sellerUID string) ([]model.Gig, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var gigs []model.Gig
	if err := r.db.WithContext(ctx).
		Where("seller_uid = ?", sellerUID).
		Order("id DESC").
		Find(&gigs).Error; err != nil {
		return nil, err
	}
	return gigs, nil
}

func (r *gigRepository) Update(ctx context.Context, gig *model.Gig) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(gig).Error
}

func (r *gigRepository) Delete(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Delete(&model.Gig{}, id).Error
}

func (r *gigRepository) IncrementViews(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Gig{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}
