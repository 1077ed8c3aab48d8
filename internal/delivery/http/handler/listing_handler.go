package handler

import (
	"net/http"
	"strconv"

	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/flatmatch/flatmatch-backend/internal/usecase/listing"
	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingUseCase *listing.UseCase
}

func NewListingHandler(listingUseCase *listing.UseCase) *ListingHandler {
	return &ListingHandler{listingUseCase: listingUseCase}
}

// Create handles POST /listings
func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req listing.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.listingUseCase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List handles GET /listings. Anonymous viewers see public listings
// only; owners additionally see their private ones.
func (h *ListingHandler) List(c *gin.Context) {
	filter := repository.ListingFilter{
		Location:     c.Query("location"),
		RoomType:     c.Query("room_type"),
		Amenities:    splitCSV(c.Query("amenities")),
		AvailableNow: c.Query("available_now") == "true",
	}
	var err error
	if filter.MinPrice, err = optionalInt(c, "min_price"); err != nil {
		return
	}
	if filter.MaxPrice, err = optionalInt(c, "max_price"); err != nil {
		return
	}

	listings, err := h.listingUseCase.List(c.Request.Context(), filter, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// Featured handles GET /listings/featured
func (h *ListingHandler) Featured(c *gin.Context) {
	listings, err := h.listingUseCase.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// GetByID handles GET /listings/:id. A private listing owned by someone
// else responds 404, the same as a listing that does not exist.
func (h *ListingHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid listing id"})
		return
	}

	found, err := h.listingUseCase.Get(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}
