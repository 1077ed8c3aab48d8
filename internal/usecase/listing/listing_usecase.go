package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
)

const featuredLimit = 3

type UseCase struct {
	listingRepo repository.ListingRepository
}

func NewUseCase(listingRepo repository.ListingRepository) *UseCase {
	return &UseCase{listingRepo: listingRepo}
}

// CreateRequest carries the client-settable listing fields. Featured
// status and rating are server-controlled.
type CreateRequest struct {
	Title            string    `json:"title" binding:"required,max=200"`
	Description      string    `json:"description" binding:"omitempty,max=2000"`
	Location         string    `json:"location" binding:"required,max=200"`
	Price            int       `json:"price" binding:"required,min=0"`
	RoomType         string    `json:"room_type" binding:"required,roomtype"`
	CurrentRoommates int       `json:"current_roommates" binding:"omitempty,min=0,max=20"`
	AvailableFrom    time.Time `json:"available_from" binding:"required"`
	Amenities        []string  `json:"amenities" binding:"omitempty,max=30"`
	Images           []string  `json:"images" binding:"omitempty,max=10"`
}

func (uc *UseCase) Create(ctx context.Context, ownerID int, req *CreateRequest) (*domain.Listing, error) {
	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	listing := &domain.Listing{
		OwnerID:          ownerID,
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		Price:            req.Price,
		RoomType:         req.RoomType,
		CurrentRoommates: req.CurrentRoommates,
		AvailableFrom:    req.AvailableFrom,
		Amenities:        amenities,
		Images:           images,
		IsPublic:         true,
		IsFeatured:       false,
		Rating:           0, // new listings start unrated
	}
	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

// Get applies the visibility rule before returning. A private listing
// fetched by anyone but its owner reads as not found, indistinguishable
// from a listing that does not exist.
func (uc *UseCase) Get(ctx context.Context, id int, viewerID *int) (*domain.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.VisibleTo(viewerID) {
		return nil, domain.ErrListingNotFound
	}
	return listing, nil
}

func (uc *UseCase) List(ctx context.Context, filter repository.ListingFilter, viewerID *int) ([]*domain.Listing, error) {
	return uc.listingRepo.List(ctx, filter, viewerID)
}

// Featured returns public featured listings only; a private listing is
// never featured to the public feed regardless of its flag.
func (uc *UseCase) Featured(ctx context.Context) ([]*domain.Listing, error) {
	return uc.listingRepo.ListFeatured(ctx, featuredLimit)
}
