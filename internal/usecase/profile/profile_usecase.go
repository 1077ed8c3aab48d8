package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
)

type UseCase struct {
	userRepo     repository.UserRepository
	roommateRepo repository.RoommateRepository
	badgeRepo    repository.BadgeRepository
}

func NewUseCase(
	userRepo repository.UserRepository,
	roommateRepo repository.RoommateRepository,
	badgeRepo repository.BadgeRepository,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		roommateRepo: roommateRepo,
		badgeRepo:    badgeRepo,
	}
}

// UpdateRequest carries a partial profile. Nil fields are left untouched.
type UpdateRequest struct {
	FirstName    *string   `json:"first_name" binding:"omitempty,max=100"`
	LastName     *string   `json:"last_name" binding:"omitempty,max=100"`
	Age          *int      `json:"age" binding:"omitempty,min=16,max=120"`
	Gender       *string   `json:"gender" binding:"omitempty,max=50"`
	Occupation   *string   `json:"occupation" binding:"omitempty,max=100"`
	Location     *string   `json:"location" binding:"omitempty,max=200"`
	Bio          *string   `json:"bio" binding:"omitempty,max=1000"`
	Preferences  *[]string `json:"preferences" binding:"omitempty,max=20"`
	ProfileImage *string   `json:"profile_image" binding:"omitempty,max=500"`
}

// RoommateRequest creates or replaces the user's roommate extension.
type RoommateRequest struct {
	Budget         int       `json:"budget" binding:"required,min=0"`
	MoveInDate     time.Time `json:"move_in_date" binding:"required"`
	DurationMonths int       `json:"duration_months" binding:"required,min=1,max=60"`
	LookingForRoom bool      `json:"looking_for_room"`
}

func (uc *UseCase) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// UpdateProfile merges only the supplied fields into the stored user.
// Completion and badges are deliberately not touched here; callers invoke
// RecomputeCompletion separately.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.Occupation != nil {
		user.Occupation = req.Occupation
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}
	if req.ProfileImage != nil {
		user.ProfileImage = req.ProfileImage
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (uc *UseCase) UpsertRoommateProfile(ctx context.Context, userID int, req *RoommateRequest) (*domain.RoommateProfile, error) {
	profile := &domain.RoommateProfile{
		UserID:         userID,
		Budget:         req.Budget,
		MoveInDate:     req.MoveInDate,
		DurationMonths: req.DurationMonths,
		LookingForRoom: req.LookingForRoom,
	}
	if err := uc.roommateRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert roommate profile: %w", err)
	}
	return profile, nil
}

func (uc *UseCase) GetRoommateProfile(ctx context.Context, userID int) (*domain.RoommateProfile, error) {
	return uc.roommateRepo.GetByUserID(ctx, userID)
}

// RecomputeCompletion recomputes the completion percentage, persists it
// if it changed and awards every threshold badge the user has reached.
// Awards are idempotent and never revoked.
func (uc *UseCase) RecomputeCompletion(ctx context.Context, userID int) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pct := CompletionPercent(user)
	if pct != user.Completion {
		if err := uc.userRepo.UpdateCompletion(ctx, userID, pct); err != nil {
			return nil, fmt.Errorf("failed to update completion: %w", err)
		}
		user.Completion = pct
	}

	for _, cb := range completionBadges {
		if pct < cb.Threshold {
			continue
		}
		badge := cb.Badge
		if err := uc.badgeRepo.EnsureByName(ctx, &badge); err != nil {
			return nil, fmt.Errorf("failed to ensure badge %q: %w", badge.Name, err)
		}
		award := domain.UserBadge{
			BadgeID:     badge.ID,
			Name:        badge.Name,
			Description: badge.Description,
			Icon:        badge.Icon,
			Category:    badge.Category,
			AwardedAt:   time.Now(),
		}
		if err := uc.userRepo.AwardBadge(ctx, userID, award); err != nil {
			return nil, fmt.Errorf("failed to award badge %q: %w", badge.Name, err)
		}
	}

	user.Badges, err = uc.userRepo.GetBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
