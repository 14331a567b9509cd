package store

import "time"

// Link is one protected-link record: an opaque ID mapped to the real
// group invite link, plus who minted it.
type Link struct {
	ID        string
	GroupLink string
	OwnerID   int64
	CreatedAt time.Time
}

// Store defines the interface for protected-link persistence
type Store interface {
	SaveLink(link Link) error
	GetLink(id string) (Link, bool, error)
	DeleteLink(id string) error
	// ListLinks returns the links minted by one owner, newest first.
	ListLinks(ownerID int64) ([]Link, error)
}
