package domain

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrDuplicateHandle         = errors.New("handle already taken")
	ErrRoommateProfileNotFound = errors.New("roommate profile not found")
	ErrListingNotFound         = errors.New("listing not found")
	ErrBadgeNotFound           = errors.New("badge not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrCannotMessageSelf       = errors.New("cannot message yourself")
	ErrDurableStoreRequired    = errors.New("durable store required but not configured")
)
