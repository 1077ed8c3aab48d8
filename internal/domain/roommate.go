package domain

import "time"

// RoommateProfile is the roommate-search extension of a User. A user
// without one is not part of the roommate pool.
type RoommateProfile struct {
	UserID         int       `json:"user_id" db:"user_id"`
	Budget         int       `json:"budget" db:"budget"`
	MoveInDate     time.Time `json:"move_in_date" db:"move_in_date"`
	DurationMonths int       `json:"duration_months" db:"duration_months"`
	LookingForRoom bool      `json:"looking_for_room" db:"looking_for_room"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Roommate is the joined view of a user and its extension.
type Roommate struct {
	User    User            `json:"user"`
	Profile RoommateProfile `json:"roommate_profile"`
}
