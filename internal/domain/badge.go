package domain

import "time"

// Badge is a catalog entry, keyed by its unique name. Catalog rows are
// created lazily on first award.
type Badge struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Icon           string    `json:"icon" db:"icon"`
	Category       string    `json:"category" db:"category"`
	Criteria       string    `json:"criteria" db:"criteria"`
	PointsRequired int       `json:"points_required" db:"points_required"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// UserBadge is an immutable award snapshot embedded in the user. A user
// never holds the same badge id twice.
type UserBadge struct {
	BadgeID     int       `json:"badge_id" db:"badge_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	Category    string    `json:"category" db:"category"`
	AwardedAt   time.Time `json:"awarded_at" db:"awarded_at"`
}
