package storage

import (
	"context"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
)

var storeInstance SessionStore

// SetStore sets the global session store instance (call from main.go)
func SetStore(s SessionStore) {
	storeInstance = s
}

// GetStore returns the global session store instance
func GetStore() SessionStore {
	return storeInstance
}

// SessionStore holds per-sender conversation state. A session exists only
// while its dialogue is incomplete; Get returns (nil, nil) for a sender
// with no active session.
type SessionStore interface {
	Get(ctx context.Context, senderID string) (*models.Session, error)
	Put(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, senderID string) error
}

// LeadArchive is an optional secondary destination for completed leads,
// written best-effort alongside the spreadsheet.
type LeadArchive interface {
	SaveLead(lead *models.Lead) error
}
