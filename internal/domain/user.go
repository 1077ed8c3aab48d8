package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           int         `json:"id" db:"id"`
	Handle       string      `json:"handle" db:"handle"`
	PasswordHash string      `json:"-" db:"password_hash"`
	FirstName    *string     `json:"first_name" db:"first_name"`
	LastName     *string     `json:"last_name" db:"last_name"`
	Age          *int        `json:"age" db:"age"`
	Gender       *string     `json:"gender" db:"gender"`
	Occupation   *string     `json:"occupation" db:"occupation"`
	Location     *string     `json:"location" db:"location"`
	Bio          *string     `json:"bio" db:"bio"`
	Preferences  []string    `json:"preferences" db:"preferences"`
	ProfileImage *string     `json:"profile_image" db:"profile_image"`
	IsVerified   bool        `json:"is_verified" db:"is_verified"`
	Completion   int         `json:"completion" db:"completion"`
	Badges       []UserBadge `json:"badges" db:"-"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// DisplayName joins the name fields, falling back to the handle when
// neither is set.
func (u *User) DisplayName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	name := strings.TrimSpace(strings.Join(parts, " "))
	if name == "" {
		return u.Handle
	}
	return name
}

func (u *User) HasBadge(badgeID int) bool {
	for _, b := range u.Badges {
		if b.BadgeID == badgeID {
			return true
		}
	}
	return false
}
