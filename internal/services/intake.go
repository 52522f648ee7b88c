package services

import (
	"context"
	"fmt"
	"log"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/storage"
)

// FailurePolicy controls what the user is told when the sink append fails
// at the end of a dialogue. The original behavior always reports success;
// "notify" surfaces the failure instead.
type FailurePolicy string

const (
	FailSilently FailurePolicy = "silent"
	FailNotify   FailurePolicy = "notify"
)

// LeadNotifier sends the out-of-band owner alert for a completed lead
type LeadNotifier interface {
	SendWhatsAppMessage(to string, message string) error
}

// IntakeService drives the intake dialogue: it loads the sender's
// session, advances the engine, applies the resulting store mutation and
// runs the completion side effects.
type IntakeService struct {
	store       storage.SessionStore
	engine      *Engine
	sink        Sink
	policy      FailurePolicy
	archive     storage.LeadArchive
	notifier    LeadNotifier
	ownerNumber string
}

// NewIntakeService creates the intake service
func NewIntakeService(store storage.SessionStore, engine *Engine, sink Sink, policy FailurePolicy) *IntakeService {
	if policy != FailNotify {
		policy = FailSilently
	}
	return &IntakeService{
		store:  store,
		engine: engine,
		sink:   sink,
		policy: policy,
	}
}

// WithArchive adds a best-effort secondary lead destination
func (s *IntakeService) WithArchive(archive storage.LeadArchive) *IntakeService {
	s.archive = archive
	return s
}

// WithOwnerAlert enables the WhatsApp alert to the business owner on
// every completed lead
func (s *IntakeService) WithOwnerAlert(notifier LeadNotifier, ownerNumber string) *IntakeService {
	s.notifier = notifier
	s.ownerNumber = ownerNumber
	return s
}

// ProcessMessage handles one inbound message and returns the reply text
func (s *IntakeService) ProcessMessage(ctx context.Context, from, body string) (string, error) {
	session, err := s.store.Get(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to load session for %s: %w", from, err)
	}

	result := s.engine.Advance(session, from, body)
	reply := result.Reply

	if result.Lead != nil {
		if saved := s.saveLead(ctx, result.Lead); !saved && s.policy == FailNotify {
			reply = msgSaveFailed
		}
	}

	if result.Session != nil {
		if err := s.store.Put(ctx, result.Session); err != nil {
			return "", fmt.Errorf("failed to save session for %s: %w", from, err)
		}
	} else if session != nil || result.Lead != nil {
		if err := s.store.Delete(ctx, from); err != nil {
			log.Printf("⚠️  Failed to delete session for %s: %v", from, err)
		}
	}

	return reply, nil
}

// saveLead appends the lead to the sink and runs the best-effort side
// effects. Returns whether the sink append succeeded.
func (s *IntakeService) saveLead(ctx context.Context, lead *models.Lead) bool {
	saved := true
	if err := s.sink.Append(ctx, lead); err != nil {
		log.Printf("❌ ERROR al guardar en Google Sheets: %v", err)
		saved = false
	}

	if s.archive != nil {
		if err := s.archive.SaveLead(lead); err != nil {
			log.Printf("⚠️  Failed to archive lead: %v", err)
		}
	}

	if s.notifier != nil && s.ownerNumber != "" {
		alert := fmt.Sprintf("📥 Nuevo registro:\nNombre: %s\nTeléfono: %s\nCorreo: %s\nServicio: %s (%s)",
			lead.Name, lead.Phone, lead.Email, lead.SelectedOption, lead.ServiceKind)
		if err := s.notifier.SendWhatsAppMessage(s.ownerNumber, alert); err != nil {
			log.Printf("⚠️  Failed to send owner alert: %v", err)
		}
	}

	return saved
}
