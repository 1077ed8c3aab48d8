package domain

import "time"

type Listing struct {
	ID               int       `json:"id" db:"id"`
	OwnerID          int       `json:"owner_id" db:"owner_id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Location         string    `json:"location" db:"location"`
	Price            int       `json:"price" db:"price"`
	RoomType         string    `json:"room_type" db:"room_type"`
	CurrentRoommates int       `json:"current_roommates" db:"current_roommates"`
	AvailableFrom    time.Time `json:"available_from" db:"available_from"`
	Amenities        []string  `json:"amenities" db:"amenities"`
	Images           []string  `json:"images" db:"images"`
	IsPublic         bool      `json:"is_public" db:"is_public"`
	IsFeatured       bool      `json:"is_featured" db:"is_featured"`
	Rating           int       `json:"rating" db:"rating"` // 0-100, 48 means 4.8
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// VisibleTo reports whether a viewer may see the listing: public listings
// are visible to everyone, private ones only to their owner.
func (l *Listing) VisibleTo(viewerID *int) bool {
	if l.IsPublic {
		return true
	}
	return viewerID != nil && l.OwnerID == *viewerID
}
