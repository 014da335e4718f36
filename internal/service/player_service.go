package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"allball/practice-server/internal/domain"
	"allball/practice-server/internal/store"

	"github.com/google/uuid"
)

// assignmentCleaner removes a deleted player's references from another
// container's assigned-player lists. Implemented by the drill and session
// services so player deletion cascades without constraint enforcement.
type assignmentCleaner interface {
	RemovePlayerReferences(ctx context.Context, playerID string)
}

// PlayerService is the state container for the roster.
type PlayerService interface {
	List(sortBy string) []domain.Player
	Get(id string) (*domain.Player, error)
	Add(ctx context.Context, name, jersey string) (*domain.Player, error)
	Remove(ctx context.Context, id string) error
	AddPerformanceRecord(ctx context.Context, playerID string, rec domain.PerformanceRecord) error
	AppendPerformance(ctx context.Context, playerID string, recs []domain.PerformanceRecord)

	// AttachCleanups registers the containers that hold player references.
	// Called once during wiring; not safe to call after requests start.
	AttachCleanups(cleaners ...assignmentCleaner)
}

type playerService struct {
	mu       sync.RWMutex
	players  []domain.Player
	st       store.Store
	cleaners []assignmentCleaner
}

// NewPlayerService hydrates the roster from the store. A missing or
// malformed blob starts the roster empty.
func NewPlayerService(ctx context.Context, st store.Store) PlayerService {
	players := store.LoadJSON(ctx, st, store.KeyPlayers, []domain.Player{})
	return &playerService{players: players, st: st}
}

func (s *playerService) AttachCleanups(cleaners ...assignmentCleaner) {
	s.cleaners = append(s.cleaners, cleaners...)
}

// persist flushes the whole roster snapshot. Callers must hold the lock.
func (s *playerService) persist(ctx context.Context) {
	store.SaveJSON(ctx, s.st, store.KeyPlayers, s.players)
}

// List returns a sorted copy of the roster. sortBy is "name" (default) or
// "jersey"; jersey sorting treats non-numeric jerseys as zero.
func (s *playerService) List(sortBy string) []domain.Player {
	s.mu.RLock()
	out := make([]domain.Player, len(s.players))
	copy(out, s.players)
	s.mu.RUnlock()

	switch sortBy {
	case "jersey":
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := strconv.Atoi(out[i].Jersey)
			b, _ := strconv.Atoi(out[j].Jersey)
			return a < b
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

func (s *playerService) Get(id string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.players {
		if s.players[i].ID == id {
			p := s.players[i]
			p.PerformanceHistory = append([]domain.PerformanceRecord(nil), p.PerformanceHistory...)
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: player %s", ErrNotFound, id)
}

func (s *playerService) Add(ctx context.Context, name, jersey string) (*domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name cannot be empty", ErrValidation)
	}

	player := domain.Player{
		ID:                 uuid.NewString(),
		Name:               name,
		Jersey:             strings.TrimSpace(jersey),
		PerformanceHistory: []domain.PerformanceRecord{},
	}

	s.mu.Lock()
	s.players = append(s.players, player)
	s.persist(ctx)
	s.mu.Unlock()

	return &player, nil
}

// Remove deletes a player and cascades: the id is filtered out of every
// drill's and the draft session's assigned-player lists.
func (s *playerService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	kept := s.players[:0]
	for _, p := range s.players {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("%w: player %s", ErrNotFound, id)
	}
	s.players = kept
	s.persist(ctx)
	s.mu.Unlock()

	for _, cleaner := range s.cleaners {
		cleaner.RemovePlayerReferences(ctx, id)
	}
	return nil
}

// AddPerformanceRecord appends one manually entered history record. All
// fields are required and the record must have attempts.
func (s *playerService) AddPerformanceRecord(ctx context.Context, playerID string, rec domain.PerformanceRecord) error {
	if playerID == "" || rec.Date == "" || rec.DrillID == "" || rec.Metrics.ShotsAttempted <= 0 {
		return fmt.Errorf("%w: player, date, drill and attempted shots are all required", ErrValidation)
	}
	if rec.Metrics.ShotsMade < 0 {
		rec.Metrics.ShotsMade = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.players {
		if s.players[i].ID == playerID {
			s.players[i].PerformanceHistory = append(s.players[i].PerformanceHistory, rec)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
}

// AppendPerformance appends session-derived history entries. Unknown player
// IDs are skipped silently; a session save must not fail halfway because a
// player was deleted in between.
func (s *playerService) AppendPerformance(ctx context.Context, playerID string, recs []domain.PerformanceRecord) {
	if len(recs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.players {
		if s.players[i].ID == playerID {
			s.players[i].PerformanceHistory = append(s.players[i].PerformanceHistory, recs...)
			s.persist(ctx)
			return
		}
	}
}
