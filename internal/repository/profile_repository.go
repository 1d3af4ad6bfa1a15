package repository

import (
	"context"

	"github.com/xlance-app/xlance-backend/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	GetOrCreate(ctx context.Context, uid string) (*model.UserProfile, error)
	FindByUID(ctx context.Context, uid string) (*model.UserProfile, error)
	Update(ctx context.Context, p *model.UserProfile) error
	SetDB(db *gorm.DB)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) SetDB(db *gorm.DB) {
	r.db = db
}

// GetOrCreate backfills a missing profile row with defaults so a signed-in
// user always resolves to a profile.
func (r *profileRepository) GetOrCreate(ctx context.Context, uid string) (*model.UserProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.UserProfile
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		FirstOrCreate(&p, &model.UserProfile{UID: uid, Roles: string(model.RoleClient)}).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByUID(ctx context.Context, uid string) (*model.UserProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.UserProfile
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *model.UserProfile) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(p).Error
}
