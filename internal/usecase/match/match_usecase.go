package match

import (
	"context"
	"fmt"
	"sort"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
)

const topMatchLimit = 6

// InsightClient produces a short human-readable blurb for a scored pair.
// Implemented by the gemini client; nil means the feature is off.
type InsightClient interface {
	GenerateMatchInsight(ctx context.Context, name, otherName string, commonTags []string, overall int) (string, error)
}

type UseCase struct {
	userRepo     repository.UserRepository
	roommateRepo repository.RoommateRepository
	insight      InsightClient
}

func NewUseCase(
	userRepo repository.UserRepository,
	roommateRepo repository.RoommateRepository,
	insight InsightClient,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		roommateRepo: roommateRepo,
		insight:      insight,
	}
}

// MatchResult pairs a roommate with their compatibility to the requester.
type MatchResult struct {
	Roommate      *domain.Roommate `json:"roommate"`
	Compatibility Compatibility    `json:"compatibility"`
}

// ListRoommates returns the joined roommate pool, AND-filtered.
func (uc *UseCase) ListRoommates(ctx context.Context, filter repository.RoommateFilter) ([]*domain.Roommate, error) {
	return uc.roommateRepo.List(ctx, filter)
}

// TopMatches scores every other roommate against the requesting user and
// returns at most six, best first. The sort is stable so equal scores
// keep the pool's original order.
func (uc *UseCase) TopMatches(ctx context.Context, userID int) ([]MatchResult, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := uc.roommateRepo.List(ctx, repository.RoommateFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list roommates: %w", err)
	}

	results := make([]MatchResult, 0, len(pool))
	for _, candidate := range pool {
		if candidate.User.ID == userID {
			continue
		}
		results = append(results, MatchResult{
			Roommate:      candidate,
			Compatibility: Score(user, &candidate.User),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Compatibility.Overall > results[j].Compatibility.Overall
	})

	if len(results) > topMatchLimit {
		results = results[:topMatchLimit]
	}
	return results, nil
}

// Insight computes the pair's compatibility and, when an insight client
// is configured, a short explanation of the score.
func (uc *UseCase) Insight(ctx context.Context, userID, otherID int) (*MatchResult, string, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	other, err := uc.userRepo.GetByID(ctx, otherID)
	if err != nil {
		return nil, "", err
	}
	profile, err := uc.roommateRepo.GetByUserID(ctx, otherID)
	if err != nil {
		return nil, "", err
	}

	result := &MatchResult{
		Roommate:      &domain.Roommate{User: *other, Profile: *profile},
		Compatibility: Score(user, other),
	}

	if uc.insight == nil {
		return result, "", nil
	}
	blurb, err := uc.insight.GenerateMatchInsight(
		ctx, user.DisplayName(), other.DisplayName(),
		result.Compatibility.CommonTags, result.Compatibility.Overall,
	)
	if err != nil {
		// The score is the answer; the blurb is decoration.
		return result, "", nil
	}
	return result, blurb, nil
}
