// Package preference resolves and tracks a shopper's display currency.
//
// Resolution runs once: a supported currency stored on the user's profile wins,
// then locale detection, then the base currency. Explicit changes apply in
// memory at once and are written back to the profile in the background; a
// failed write restores the last value known to be stored.
package preference

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"

	"go.uber.org/zap"
)

// Profiles reads and writes the stored preference. GetCurrencyPreference returns
// "" or domain.ErrNotFound when nothing is stored.
type Profiles interface {
	GetCurrencyPreference(ctx context.Context, userID string) (string, error)
	SetCurrencyPreference(ctx context.Context, userID, code string) error
}

type State int

const (
	StateUninitialized State = iota
	StateResolving
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	default:
		return "uninitialized"
	}
}

// Phase tracks the latest explicit change.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseOptimistic
	PhaseConfirmed
	PhaseRolledBack
)

func (p Phase) String() string {
	switch p {
	case PhaseOptimistic:
		return "optimistic"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseRolledBack:
		return "rolled-back"
	default:
		return "idle"
	}
}

const defaultWriteTimeout = 5 * time.Second

type Service struct {
	profiles Profiles
	userID   string
	detect   func() currency.Code
	logger   *zap.Logger

	writeTimeout time.Duration
	// writeMu orders profile writes so a superseded write never lands after a newer one.
	writeMu sync.Mutex
	wg      sync.WaitGroup

	mu            sync.Mutex
	state         State
	phase         Phase
	current       currency.Code
	persisted     currency.Code
	seq           uint64
	persistedSeq  uint64
	resolvedReady chan struct{}
}

// New builds a preference for userID. An empty userID or nil profiles means an
// anonymous session whose choice is never persisted. detect may be nil.
func New(profiles Profiles, userID string, detect func() currency.Code, logger *zap.Logger) *Service {
	if detect == nil {
		detect = func() currency.Code { return currency.DetectCurrency() }
	}
	return &Service{
		profiles:      profiles,
		userID:        strings.TrimSpace(userID),
		detect:        detect,
		logger:        logging.OrNop(logger),
		writeTimeout:  defaultWriteTimeout,
		current:       currency.Base,
		resolvedReady: make(chan struct{}),
	}
}

func (s *Service) authenticated() bool {
	return s.profiles != nil && s.userID != ""
}

// Resolve chooses the display currency. Only the first call does work; later
// calls wait for it and return the current value.
func (s *Service) Resolve(ctx context.Context) currency.Code {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		<-s.resolvedReady
		return s.Current()
	}
	s.state = StateResolving
	s.mu.Unlock()

	code, fromProfile, persistDetected := s.resolve(ctx)

	s.mu.Lock()
	if s.state == StateResolving {
		s.current = code
		s.state = StateResolved
		if fromProfile {
			s.persisted = code
		}
	}
	code = s.current
	var seq uint64
	if persistDetected && s.seq == 0 {
		s.seq++
		seq = s.seq
	}
	s.closeReadyLocked()
	s.mu.Unlock()

	if seq != 0 {
		s.write(ctx, code, seq, true)
	}
	return code
}

func (s *Service) resolve(ctx context.Context) (code currency.Code, fromProfile, persist bool) {
	if !s.authenticated() {
		return s.detect(), false, false
	}
	stored, err := s.profiles.GetCurrencyPreference(ctx, s.userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("currency preference read failed", zap.String("user_id", s.userID), zap.Error(err))
		return s.detect(), false, false
	}
	if strings.TrimSpace(stored) != "" {
		if info, ok := currency.Lookup(stored); ok {
			return info.Code, true, false
		}
		s.logger.Warn("stored currency preference not supported",
			zap.String("user_id", s.userID),
			zap.Error(&domain.ConfigurationError{Kind: "currency", Value: stored}),
		)
	}
	return s.detect(), false, true
}

// SetUserCurrency switches the display currency. Unsupported codes are rejected
// without touching state.
func (s *Service) SetUserCurrency(ctx context.Context, code string) error {
	info, ok := currency.Lookup(code)
	if !ok {
		err := &domain.ConfigurationError{Kind: "currency", Value: code}
		s.logger.Warn("currency change rejected", zap.String("user_id", s.userID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.current = info.Code
	s.state = StateResolved
	s.closeReadyLocked()
	s.seq++
	seq := s.seq
	if !s.authenticated() {
		s.phase = PhaseIdle
		s.mu.Unlock()
		return nil
	}
	s.phase = PhaseOptimistic
	s.mu.Unlock()

	s.write(ctx, info.Code, seq, false)
	return nil
}

func (s *Service) closeReadyLocked() {
	select {
	case <-s.resolvedReady:
	default:
		close(s.resolvedReady)
	}
}

// write persists code in the background. Completions for a superseded seq do
// not touch in-memory state.
func (s *Service) write(ctx context.Context, code currency.Code, seq uint64, initial bool) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		if s.superseded(seq) {
			return
		}
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
		defer cancel()
		err := s.profiles.SetCurrencyPreference(wctx, s.userID, string(code))
		s.complete(code, seq, initial, err)
	}()
}

func (s *Service) superseded(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq != s.seq
}

func (s *Service) complete(code currency.Code, seq uint64, initial bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		if seq > s.persistedSeq {
			s.persisted = code
			s.persistedSeq = seq
		}
		if seq == s.seq && !initial {
			s.phase = PhaseConfirmed
		}
		return
	}
	s.logger.Warn("currency preference write failed",
		zap.String("user_id", s.userID),
		zap.String("currency", string(code)),
		zap.Bool("initial", initial),
		zap.Error(&domain.PersistenceError{Op: "save", Key: "currency_preference", Err: err}),
	)
	if initial || seq != s.seq {
		return
	}
	s.phase = PhaseRolledBack
	if s.persisted != "" {
		s.current = s.persisted
	}
}

// Wait blocks until background writes finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) Current() currency.Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Persisted is the last value known to be stored on the profile, or "".
func (s *Service) Persisted() currency.Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persisted
}

// FormatPrice renders amount, priced in productCurrency (base when empty), in
// the current display currency.
func (s *Service) FormatPrice(amount float64, productCurrency currency.Code) string {
	if productCurrency == "" {
		productCurrency = currency.Base
	}
	return currency.FormatPriceWithConversion(amount, productCurrency, s.Current())
}

// Convert moves amount from productCurrency into the display currency.
func (s *Service) Convert(amount float64, productCurrency currency.Code) float64 {
	if productCurrency == "" {
		productCurrency = currency.Base
	}
	return currency.Convert(amount, productCurrency, s.Current())
}
