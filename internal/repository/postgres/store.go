// Package postgres implements the storage contract on PostgreSQL via sqlx.
package postgres

import (
	"strings"

	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

func NewStore(db *sqlx.DB) *repository.Store {
	return &repository.Store{
		Users:     NewUserRepository(db),
		Roommates: NewRoommateRepository(db),
		Listings:  NewListingRepository(db),
		Messages:  NewMessageRepository(db),
		Badges:    NewBadgeRepository(db),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a contains pattern for ILIKE that treats the
// caller's input literally, never as wildcards.
func likePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func lowered(values []string) []string {
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = strings.ToLower(v)
	}
	return result
}
