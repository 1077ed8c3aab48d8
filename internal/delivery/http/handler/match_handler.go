package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/flatmatch/flatmatch-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.UseCase
}

func NewMatchHandler(matchUseCase *match.UseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// ListRoommates handles GET /roommates. All filters are optional and
// AND-combined; absence means no constraint.
func (h *MatchHandler) ListRoommates(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	filter := repository.RoommateFilter{
		Location:     c.Query("location"),
		Gender:       c.Query("gender"),
		Tags:         splitCSV(c.Query("tags")),
		VerifiedOnly: c.Query("verified") == "true",
	}
	var err error
	if filter.MinAge, err = optionalInt(c, "min_age"); err != nil {
		return
	}
	if filter.MaxAge, err = optionalInt(c, "max_age"); err != nil {
		return
	}

	roommates, err := h.matchUseCase.ListRoommates(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roommates)
}

// TopMatches handles GET /matches
func (h *MatchHandler) TopMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	results, err := h.matchUseCase.TopMatches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Insight handles GET /matches/:user_id/insight
func (h *MatchHandler) Insight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	otherID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		return
	}

	result, blurb, err := h.matchUseCase.Insight(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"match":   result,
		"insight": blurb,
	})
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

func optionalInt(c *gin.Context, name string) (*int, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return nil, err
	}
	return &n, nil
}
