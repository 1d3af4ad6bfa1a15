package repository

import (
	"context"

	"github.com/xlance-app/xlance-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EarningsRepository interface {
	Add(ctx context.Context, uid string, amount int64) error
	Deduct(ctx context.Context, uid string, amount int64) error
	Get(ctx context.Context, uid string) (*model.EarningsBalance, error)
	SetDB(db *gorm.DB)
}

type earningsRepository struct {
	db *gorm.DB
}

func NewEarningsRepository(db *gorm.DB) EarningsRepository {
	return &earningsRepository{db: db}
}

func (r *earningsRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *earningsRepository) Add(ctx context.Context, uid string, amount int64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": gorm.Expr("amount + ?", amount)}),
	}).Create(&model.EarningsBalance{UID: uid, Amount: amount}).Error
}

// Deduct fails with gorm.ErrRecordNotFound when the balance cannot cover the
// amount; the conditional update keeps the check and the write atomic.
func (r *earningsRepository) Deduct(ctx context.Context, uid string, amount int64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.EarningsBalance{}).
		Where("uid = ? AND amount >= ?", uid, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *earningsRepository) Get(ctx context.Context, uid string) (*model.EarningsBalance, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var b model.EarningsBalance
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).FirstOrCreate(&b, &model.EarningsBalance{UID: uid}).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
