package service

import (
	"context"
	"fmt"
	"sync"

	"allball/practice-server/internal/store"
)

// UI modes. Simple hides the pro screens; the flag is persisted so the coach
// lands where they left off.
const (
	ModeSimple = "simple"
	ModePro    = "pro"
)

// SettingsService is the state container for the two persisted UI flags.
type SettingsService interface {
	Mode() string
	SetMode(ctx context.Context, mode string) error
	OnboardingSeen() bool
	SetOnboardingSeen(ctx context.Context, seen bool)
}

type settingsService struct {
	mu             sync.RWMutex
	mode           string
	onboardingSeen bool
	st             store.Store
}

// NewSettingsService hydrates the flags, defaulting to simple mode with the
// onboarding banner still unseen.
func NewSettingsService(ctx context.Context, st store.Store) SettingsService {
	return &settingsService{
		mode:           store.LoadJSON(ctx, st, store.KeyMode, ModeSimple),
		onboardingSeen: store.LoadJSON(ctx, st, store.KeyOnboardingSeen, false),
		st:             st,
	}
}

func (s *settingsService) Mode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *settingsService) SetMode(ctx context.Context, mode string) error {
	if mode != ModeSimple && mode != ModePro {
		return fmt.Errorf("%w: mode must be %q or %q", ErrValidation, ModeSimple, ModePro)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	store.SaveJSON(ctx, s.st, store.KeyMode, s.mode)
	return nil
}

func (s *settingsService) OnboardingSeen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboardingSeen
}

func (s *settingsService) SetOnboardingSeen(ctx context.Context, seen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onboardingSeen = seen
	store.SaveJSON(ctx, s.st, store.KeyOnboardingSeen, s.onboardingSeen)
}
