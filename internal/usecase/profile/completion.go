package profile

import (
	"math"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
)

// The fixed set of signals a complete profile carries. Each filled signal
// contributes equally to the percentage.
var completionSignals = []func(*domain.User) bool{
	func(u *domain.User) bool { return filled(u.FirstName) },
	func(u *domain.User) bool { return filled(u.LastName) },
	func(u *domain.User) bool { return u.Age != nil && *u.Age > 0 },
	func(u *domain.User) bool { return filled(u.Gender) },
	func(u *domain.User) bool { return filled(u.Occupation) },
	func(u *domain.User) bool { return filled(u.Location) },
	func(u *domain.User) bool { return filled(u.Bio) },
	func(u *domain.User) bool { return len(u.Preferences) > 0 },
	func(u *domain.User) bool { return filled(u.ProfileImage) },
}

func filled(s *string) bool {
	return s != nil && *s != ""
}

// CompletionPercent is the rounded share of filled signals, 0-100.
func CompletionPercent(u *domain.User) int {
	count := 0
	for _, signal := range completionSignals {
		if signal(u) {
			count++
		}
	}
	return int(math.Round(100 * float64(count) / float64(len(completionSignals))))
}

type completionBadge struct {
	Threshold int
	Badge     domain.Badge
}

// Thresholds are cumulative: hitting 100% earns all four. Awards are
// never revoked when completion later drops.
var completionBadges = []completionBadge{
	{25, domain.Badge{
		Name:           "Profile Starter",
		Description:    "Filled in a quarter of your profile",
		Icon:           "badge-starter",
		Category:       "profile",
		Criteria:       "Reach 25% profile completion",
		PointsRequired: 25,
	}},
	{50, domain.Badge{
		Name:           "Halfway There",
		Description:    "Filled in half of your profile",
		Icon:           "badge-halfway",
		Category:       "profile",
		Criteria:       "Reach 50% profile completion",
		PointsRequired: 50,
	}},
	{75, domain.Badge{
		Name:           "Almost Done",
		Description:    "Filled in three quarters of your profile",
		Icon:           "badge-almost",
		Category:       "profile",
		Criteria:       "Reach 75% profile completion",
		PointsRequired: 75,
	}},
	{100, domain.Badge{
		Name:           "Profile Pro",
		Description:    "Completed every part of your profile",
		Icon:           "badge-pro",
		Category:       "profile",
		Criteria:       "Reach 100% profile completion",
		PointsRequired: 100,
	}},
}
