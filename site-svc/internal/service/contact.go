package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

var contactStatuses = map[string]bool{
	domain.ContactStatusNew:      true,
	domain.ContactStatusRead:     true,
	domain.ContactStatusReplied:  true,
	domain.ContactStatusArchived: true,
}

type ContactService struct {
	repository ContactRepository
	publisher  EventPublisher
	now        func() time.Time
}

func NewContactService(repository ContactRepository, publisher EventPublisher) *ContactService {
	return &ContactService{repository: repository, publisher: publisher, now: time.Now}
}

func (s *ContactService) Submit(ctx context.Context, contact *domain.Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Message = strings.TrimSpace(contact.Message)
	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		return newValidationError("contact", "Missing required fields: name, email, and message are required")
	}
	if contact.Rating < 0 || contact.Rating > 5 {
		return newValidationError("rating", "Rating must be between 1 and 5")
	}

	contact.Status = domain.ContactStatusNew
	contact.CreatedAt = s.now().UTC()
	if err := s.repository.CreateContact(ctx, contact); err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}

	if s.publisher != nil {
		published := *contact
		if err := s.publisher.Publish(ctx, domain.EventMessage{
			Type:      domain.EventContactSubmitted,
			Contact:   &published,
			Timestamp: contact.CreatedAt,
		}); err != nil {
			log.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to publish contact event")
		}
	}
	return nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.repository.GetContact(ctx, id)
}

// List returns every submission, or only those in status when it is set.
func (s *ContactService) List(ctx context.Context, status string) ([]domain.Contact, error) {
	return s.repository.ListContacts(ctx, status)
}

func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) (*domain.Contact, error) {
	if status == "" {
		return s.repository.GetContact(ctx, id)
	}
	if !contactStatuses[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repository.UpdateContactStatus(ctx, id, status)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repository.DeleteContact(ctx, id)
}
