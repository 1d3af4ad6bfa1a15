package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/repository"
	"gorm.io/gorm"
)

const minGigPrice = 5

type GigInput struct {
	Title        string
	Description  string
	Price        int64
	DeliveryDays int
	Category     string
	Status       string
	ImageURL     *string
}

type GigService interface {
	Create(ctx context.Context, sellerUID string, in GigInput) (*model.Gig, error)
	Get(ctx context.Context, id uint64) (*model.Gig, error)
	GetPublic(ctx context.Context, id uint64) (*model.Gig, error)
	List(ctx context.Context, category string, limit, offset int) ([]model.Gig, int64, error)
	ListMine(ctx context.Context, sellerUID string) ([]model.Gig, error)
	Update(ctx context.Context, id uint64, sellerUID string, in GigInput) (*model.Gig, error)
	SetImage(ctx context.Context, id uint64, sellerUID, imageURL string) (*model.Gig, error)
	Delete(ctx context.Context, id uint64, sellerUID string) error
}

type gigService struct {
	repo repository.GigRepository
}

func NewGigService(repo repository.GigRepository) GigService {
	return &gigService{repo: repo}
}

func validateGigInput(in *GigInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" || len(in.Title) > 120 {
		return errors.New("invalid title")
	}
	if in.Description == "" {
		return errors.New("invalid description")
	}
	if in.Price < minGigPrice {
		return errors.New("price must be at least 5")
	}
	if in.DeliveryDays < 1 {
		return errors.New("delivery time must be at least 1 day")
	}
	if in.Category == "" {
		return errors.New("category is required")
	}
	if in.ImageURL != nil && strings.HasPrefix(strings.TrimSpace(*in.ImageURL), "data:") {
		return errors.New("imageUrl must be a URL, not data URI")
	}
	return nil
}

func parseGigStatus(s string) (model.GigStatus, error) {
	switch model.GigStatus(s) {
	case model.GigStatusActive, model.GigStatusPaused, model.GigStatusDraft:
		return model.GigStatus(s), nil
	case "":
		return model.GigStatusDraft, nil
	}
	return "", errors.New("invalid status")
}

func (s *gigService) Create(ctx context.Context, sellerUID string, in GigInput) (*model.Gig, error) {
	if sellerUID == "" {
		return nil, errors.New("seller is required")
	}
	if err := validateGigInput(&in); err != nil {
		return nil, err
	}
	status, err := parseGigStatus(in.Status)
	if err != nil {
		return nil, err
	}
	gig := &model.Gig{
		SellerUID:    sellerUID,
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		DeliveryDays: in.DeliveryDays,
		Category:     in.Category,
		Status:       status,
		ImageURL:     in.ImageURL,
	}
	if err := s.repo.Create(ctx, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

func (s *gigService) Get(ctx context.Context, id uint64) (*model.Gig, error) {
	gig, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return gig, nil
}

// GetPublic is the marketplace detail read; it bumps the view counter
// best-effort.
func (s *gigService) GetPublic(ctx context.Context, id uint64) (*model.Gig, error) {
	gig, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		log.Printf("gig %d: increment views: %v", id, err)
	} else {
		gig.Views++
	}
	return gig, nil
}

func (s *gigService) List(ctx context.Context, category string, limit, offset int) ([]model.Gig, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, repository.GigFilter{
		Category: category,
		Status:   model.GigStatusActive,
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *gigService) ListMine(ctx context.Context, sellerUID string) ([]model.Gig, error) {
	return s.repo.ListBySeller(ctx, sellerUID)
}

func (s *gigService) Update(ctx context.Context, id uint64, sellerUID string, in GigInput) (*model.Gig, error) {
	gig, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if gig.SellerUID != sellerUID {
		return nil, ErrForbidden
	}
	if err := validateGigInput(&in); err != nil {
		return nil, err
	}
	status, err := parseGigStatus(in.Status)
	if err != nil {
		return nil, err
	}
	gig.Title = in.Title
	gig.Description = in.Description
	gig.Price = in.Price
	gig.DeliveryDays = in.DeliveryDays
	gig.Category = in.Category
	gig.Status = status
	if in.ImageURL != nil {
		gig.ImageURL = in.ImageURL
	}
	if err := s.repo.Update(ctx, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

func (s *gigService) SetImage(ctx context.Context, id uint64, sellerUID, imageURL string) (*model.Gig, error) {
	gig, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if gig.SellerUID != sellerUID {
		return nil, ErrForbidden
	}
	gig.ImageURL = &imageURL
	if err := s.repo.Update(ctx, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

func (s *gigService) Delete(ctx context.Context, id uint64, sellerUID string) error {
	gig, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if gig.SellerUID != sellerUID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
