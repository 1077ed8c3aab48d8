package match

import (
	"math"
	"strings"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
)

// The two schedule tags are mutually exclusive; everything else in a
// preference set is free text.
const (
	tagEarlyBird = "Early bird"
	tagNightOwl  = "Night owl"
)

const (
	weightLifestyle = 0.5
	weightLocation  = 0.3
	weightSchedule  = 0.2
)

// Compatibility is the multi-factor match score between two users.
type Compatibility struct {
	Lifestyle  int      `json:"lifestyle"`
	Location   int      `json:"location"`
	Schedule   int      `json:"schedule"`
	Overall    int      `json:"overall"`
	CommonTags []string `json:"common_tags"`
}

// Score is deterministic and side-effect free. The overall value is the
// weighted blend of the sub-scores, rounded half-up once on the weighted
// sum rather than per sub-score.
func Score(a, b *domain.User) Compatibility {
	lifestyle, common := lifestyleScore(a.Preferences, b.Preferences)
	location := locationScore(a.Location, b.Location)
	schedule := scheduleScore(a.Preferences, b.Preferences)

	overall := int(math.Round(
		weightLifestyle*float64(lifestyle) +
			weightLocation*float64(location) +
			weightSchedule*float64(schedule),
	))

	return Compatibility{
		Lifestyle:  lifestyle,
		Location:   location,
		Schedule:   schedule,
		Overall:    overall,
		CommonTags: common,
	}
}

// lifestyleScore is the Jaccard index of the two tag sets scaled to
// 0-100, or a neutral 50 when both sets are empty. The common tags keep
// a's ordering.
func lifestyleScore(aTags, bTags []string) (int, []string) {
	aSet := toSet(aTags)
	bSet := toSet(bTags)

	union := len(aSet)
	for tag := range bSet {
		if !aSet[tag] {
			union++
		}
	}
	if union == 0 {
		return 50, []string{}
	}

	common := []string{}
	seen := make(map[string]bool)
	for _, tag := range aTags {
		if bSet[tag] && !seen[tag] {
			common = append(common, tag)
			seen[tag] = true
		}
	}

	return int(math.Round(100 * float64(len(common)) / float64(union))), common
}

// locationScore compares normalized locations: 100 for an exact match,
// 75 for a partial one ("Brooklyn, NY" against "Williamsburg, Brooklyn"),
// a neutral 50 otherwise.
func locationScore(a, b *string) int {
	if a == nil || b == nil {
		return 50
	}
	la := strings.ToLower(strings.TrimSpace(*a))
	lb := strings.ToLower(strings.TrimSpace(*b))
	if la == "" || lb == "" {
		return 50
	}
	if la == lb {
		return 100
	}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return 75
	}
	// Comma-separated segments count too, so a borough matches against
	// a neighborhood-plus-borough form.
	for _, sa := range splitSegments(la) {
		for _, sb := range splitSegments(lb) {
			if sa == sb {
				return 75
			}
		}
	}
	return 50
}

func splitSegments(location string) []string {
	parts := strings.Split(location, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func scheduleScore(aTags, bTags []string) int {
	aSched := scheduleTags(aTags)
	bSched := scheduleTags(bTags)
	if len(aSched) == 0 || len(bSched) == 0 {
		return 70
	}
	for tag := range aSched {
		if bSched[tag] {
			return 100
		}
	}
	return 30
}

func scheduleTags(tags []string) map[string]bool {
	result := make(map[string]bool)
	for _, tag := range tags {
		if tag == tagEarlyBird || tag == tagNightOwl {
			result[tag] = true
		}
	}
	return result
}

func toSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[tag] = true
	}
	return set
}
