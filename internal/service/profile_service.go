package service

import (
	"context"
	"errors"
	"strings"

	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/repository"
	"gorm.io/gorm"
)

type ProfileInput struct {
	DisplayName string
	Bio         string
	Skills      []string
	HourlyRate  int64
	AvatarURL   *string
}

type OnboardingInput struct {
	Roles      []string
	Skills     []string
	HourlyRate int64
}

type ProfileService interface {
	GetOrCreate(ctx context.Context, uid string) (*model.UserProfile, error)
	Get(ctx context.Context, uid string) (*model.UserProfile, error)
	Update(ctx context.Context, uid string, in ProfileInput) (*model.UserProfile, error)
	CompleteOnboarding(ctx context.Context, uid string, in OnboardingInput) (*model.UserProfile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// GetOrCreate is self-healing: a signed-in user whose profile row is missing
// gets one with defaults instead of an error.
func (s *profileService) GetOrCreate(ctx context.Context, uid string) (*model.UserProfile, error) {
	if uid == "" {
		return nil, errors.New("uid is required")
	}
	return s.repo.GetOrCreate(ctx, uid)
}

func (s *profileService) Get(ctx context.Context, uid string) (*model.UserProfile, error) {
	p, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func joinSkills(skills []string) string {
	clean := make([]string, 0, len(skills))
	for _, sk := range skills {
		sk = strings.TrimSpace(sk)
		if sk != "" {
			clean = append(clean, sk)
		}
	}
	return strings.Join(clean, ",")
}

func (s *profileService) Update(ctx context.Context, uid string, in ProfileInput) (*model.UserProfile, error) {
	p, err := s.GetOrCreate(ctx, uid)
	if err != nil {
		return nil, err
	}
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.DisplayName == "" || len(in.DisplayName) > 120 {
		return nil, errors.New("invalid display name")
	}
	if in.HourlyRate < 0 {
		return nil, errors.New("invalid hourly rate")
	}
	p.DisplayName = in.DisplayName
	p.Bio = in.Bio
	p.Skills = joinSkills(in.Skills)
	p.HourlyRate = in.HourlyRate
	if in.AvatarURL != nil {
		p.AvatarURL = in.AvatarURL
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) CompleteOnboarding(ctx context.Context, uid string, in OnboardingInput) (*model.UserProfile, error) {
	p, err := s.GetOrCreate(ctx, uid)
	if err != nil {
		return nil, err
	}
	roles, err := model.ParseRoleSet(in.Roles)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, errors.New("at least one role is required")
	}
	if roles.Has(model.RoleFreelancer) && in.HourlyRate < 0 {
		return nil, errors.New("invalid hourly rate")
	}
	p.Roles = roles.String()
	p.Skills = joinSkills(in.Skills)
	p.HourlyRate = in.HourlyRate
	p.Onboarded = true
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
