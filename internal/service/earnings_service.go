package service

import (
	"context"
	"errors"

	"github.com/xlance-app/xlance-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

type EarningsService interface {
	Get(ctx context.Context, uid string) (int64, error)
	Withdraw(ctx context.Context, uid string, amount int64) (int64, error)
	Credit(ctx context.Context, uid string, amount int64) error
}

type earningsService struct {
	repo repository.EarningsRepository
}

func NewEarningsService(repo repository.EarningsRepository) EarningsService {
	return &earningsService{repo: repo}
}

func (s *earningsService) Get(ctx context.Context, uid string) (int64, error) {
	b, err := s.repo.Get(ctx, uid)
	if err != nil {
		return 0, err
	}
	return b.Amount, nil
}

func (s *earningsService) Withdraw(ctx context.Context, uid string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, errors.New("amount must be positive")
	}
	if err := s.repo.Deduct(ctx, uid, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInsufficientBalance
		}
		return 0, err
	}
	return s.Get(ctx, uid)
}

func (s *earningsService) Credit(ctx context.Context, uid string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	return s.repo.Add(ctx, uid, amount)
}
