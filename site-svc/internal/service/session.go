package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	slotCart       = "cart"
	slotOrders     = "orders"
	slotPopupShown = "popupShown"
	slotCheckout   = "checkout"
)

// SessionKey namespaces a slot to one browsing session.
func SessionKey(sessionID, slot string) string {
	return "session:" + sessionID + ":" + slot
}

// Sessions hands out the stores of a session. Callers hold Lock while they
// read-modify-write so that two requests of one session never interleave.
type Sessions struct {
	kv    KV
	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from Sessions.locks once no holder or waiter refers to it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessions(kv KV) *Sessions {
	return &Sessions{kv: kv, locks: make(map[string]*sessionLock)}
}

func (s *Sessions) Lock(sessionID string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			s.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(s.locks, sessionID)
			}
			s.mu.Unlock()
		})
	}
}

func (s *Sessions) Cart(ctx context.Context, sessionID string) (*CartStore, error) {
	return LoadCart(ctx, s.kv, SessionKey(sessionID, slotCart))
}

func (s *Sessions) History(sessionID string) *OrderHistory {
	return NewOrderHistory(s.kv, SessionKey(sessionID, slotOrders))
}

func (s *Sessions) Checkout(ctx context.Context, sessionID string) (CheckoutState, error) {
	raw, err := s.kv.Get(ctx, SessionKey(sessionID, slotCheckout))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return NewCheckoutState(), nil
		}
		return CheckoutState{}, fmt.Errorf("load checkout: %w", err)
	}

	var state CheckoutState
	if err := json.Unmarshal(raw, &state); err != nil || !state.valid() {
		log.Warn().Str("session", sessionID).Msg("resetting unreadable checkout state")
		return NewCheckoutState(), nil
	}
	return state, nil
}

func (s *Sessions) SaveCheckout(ctx context.Context, sessionID string, state CheckoutState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode checkout: %w", err)
	}
	if err := s.kv.Set(ctx, SessionKey(sessionID, slotCheckout), payload); err != nil {
		return fmt.Errorf("save checkout: %w", err)
	}
	return nil
}

// PopupShown reports whether the welcome popup was already displayed this session.
func (s *Sessions) PopupShown(ctx context.Context, sessionID string) (bool, error) {
	raw, err := s.kv.Get(ctx, SessionKey(sessionID, slotPopupShown))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load popup flag: %w", err)
	}
	return string(raw) == "true", nil
}

func (s *Sessions) MarkPopupShown(ctx context.Context, sessionID string) error {
	if err := s.kv.Set(ctx, SessionKey(sessionID, slotPopupShown), []byte("true")); err != nil {
		return fmt.Errorf("save popup flag: %w", err)
	}
	return nil
}
