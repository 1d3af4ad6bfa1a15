package repository

import (
	"context"

	"github.com/xlance-app/xlance-backend/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	SetDB(db *gorm.DB)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
