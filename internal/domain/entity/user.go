package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. The role is persisted here rather than
// derived from an allow-list at read time; a configured allow-list only
// promotes matching emails to admin when the account is created.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Role         Role
	Profile      *Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Roles returns the role set carried in access tokens. Admins also hold the
// customer role so customer routes stay reachable for them.
func (u *User) Roles() Roles {
	if u.Role == RoleAdmin {
		return Roles{RoleCustomer, RoleAdmin}
	}

	return Roles{RoleCustomer}
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile carries the spend-derived loyalty state and the owned-games set.
// It is created once at registration with all defaults applied; it is never
// re-merged from partial sources afterwards.
type Profile struct {
	UserID       uuid.UUID
	TotalSpend   int64
	Level        int
	Progress     float64
	OwnedGameIDs []uuid.UUID
	UpdatedAt    time.Time
}

// NewProfile returns a fresh profile with defaulting rules applied once:
// zero spend, level 1, zero progress, empty library.
func NewProfile(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:       userID,
		TotalSpend:   0,
		Level:        1,
		Progress:     0,
		OwnedGameIDs: []uuid.UUID{},
	}
}

// ApplyOrderAmount adds a completed order's amount to the cumulative spend
// and recomputes level and progress from the new total. Amounts of zero or
// less are ignored. Returns true when the level increased.
func (p *Profile) ApplyOrderAmount(amount, bracketSize int64) (leveledUp bool) {
	if amount <= 0 {
		return false
	}

	before := p.Level
	next := ProgressionForSpend(p.TotalSpend+amount, bracketSize)

	p.TotalSpend = next.TotalSpend
	p.Level = next.Level
	p.Progress = next.Progress

	return next.Level > before
}

// OwnsGame reports whether the game is already in the library.
func (p *Profile) OwnsGame(gameID uuid.UUID) bool {
	return slices.Contains(p.OwnedGameIDs, gameID)
}

// GrantGames appends the given games to the library, skipping duplicates.
// The owned set only ever grows.
func (p *Profile) GrantGames(gameIDs ...uuid.UUID) {
	for _, id := range gameIDs {
		if !p.OwnsGame(id) {
			p.OwnedGameIDs = append(p.OwnedGameIDs, id)
		}
	}
}
