package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

const (
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"

	// SeatingCapacity is the number of guests the dining room takes per time slot.
	SeatingCapacity = 50
)

var ErrNoAvailability = errors.New("no availability for the requested time and party size")

type ReservationService struct {
	repository ReservationRepository
	publisher  EventPublisher
	now        func() time.Time
}

func NewReservationService(repository ReservationRepository, publisher EventPublisher) *ReservationService {
	return &ReservationService{repository: repository, publisher: publisher, now: time.Now}
}

// Create confirms the reservation if the slot still has room. The seating check
// and the insert happen atomically in the repository.
func (s *ReservationService) Create(ctx context.Context, reservation *domain.Reservation) error {
	if err := validateReservation(reservation); err != nil {
		return err
	}

	reservation.Status = ReservationStatusConfirmed
	reservation.CreatedAt = s.now().UTC()
	if err := s.repository.CreateReservation(ctx, reservation, SeatingCapacity); err != nil {
		if errors.Is(err, ErrNoAvailability) {
			return ErrNoAvailability
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if s.publisher != nil {
		published := *reservation
		if err := s.publisher.Publish(ctx, domain.EventMessage{
			Type:        domain.EventReservationCreated,
			Reservation: &published,
			Timestamp:   reservation.CreatedAt,
		}); err != nil {
			log.Error().Err(err).Int("reservation_id", reservation.ID).Msg("failed to publish reservation event")
		}
	}
	return nil
}

// ReservationPatch holds the fields of a partial update; nil fields are kept.
type ReservationPatch struct {
	Name            *string
	Email           *string
	Phone           *string
	Date            *string
	Time            *string
	Guests          *int
	SpecialRequests *string
	Status          *string
}

func (p ReservationPatch) apply(r *domain.Reservation) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&r.Name, p.Name)
	set(&r.Email, p.Email)
	set(&r.Phone, p.Phone)
	set(&r.Date, p.Date)
	set(&r.Time, p.Time)
	set(&r.SpecialRequests, p.SpecialRequests)
	set(&r.Status, p.Status)
	if p.Guests != nil {
		r.Guests = *p.Guests
	}
}

func (s *ReservationService) Get(ctx context.Context, id int) (*domain.Reservation, error) {
	return s.repository.GetReservation(ctx, id)
}

// Update applies patch and re-checks seating for the resulting slot unless the
// reservation ends up cancelled.
func (s *ReservationService) Update(ctx context.Context, id int, patch ReservationPatch) (*domain.Reservation, error) {
	reservation, err := s.repository.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.apply(reservation)
	if err := validateReservation(reservation); err != nil {
		return nil, err
	}
	if reservation.Status != ReservationStatusConfirmed && reservation.Status != ReservationStatusCancelled {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, reservation.Status)
	}

	if err := s.repository.UpdateReservation(ctx, reservation, SeatingCapacity); err != nil {
		if errors.Is(err, ErrNoAvailability) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	return reservation, nil
}

func (s *ReservationService) Cancel(ctx context.Context, id int) (*domain.Reservation, error) {
	status := ReservationStatusCancelled
	return s.Update(ctx, id, ReservationPatch{Status: &status})
}

func validateReservation(r *domain.Reservation) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	if r.Name == "" || r.Email == "" || r.Date == "" || r.Time == "" {
		return newValidationError("reservation", "Missing required fields: name, email, date, and time are required")
	}
	if r.Guests < 1 {
		return newValidationError("guests", "Number of guests must be at least 1")
	}
	return nil
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.repository.ListReservations(ctx)
}

// Available reports whether guests more people fit into the slot.
func (s *ReservationService) Available(ctx context.Context, date, slot string, guests int) (bool, error) {
	booked, err := s.repository.GuestsBooked(ctx, date, slot)
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return booked+guests <= SeatingCapacity, nil
}
