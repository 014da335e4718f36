package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"allball/practice-server/internal/domain"
	"allball/practice-server/internal/store"

	"github.com/google/uuid"
)

// ErrNoVideo is returned when a drill has no demo video attached.
var ErrNoVideo = errors.New("no video available for this drill")

// videoURLPattern accepts any http(s) link, same rule the drill form applied.
var videoURLPattern = regexp.MustCompile(`^https?://.+`)

// DrillInput carries the editable fields of a drill.
type DrillInput struct {
	Title           string
	Duration        int
	Skill           domain.Skill
	Difficulty      domain.Difficulty
	Notes           string
	VideoURL        string
	AssignedPlayers []string
}

// playerDirectory answers whether a player id exists, for validating
// assignments at creation time.
type playerDirectory interface {
	Get(id string) (*domain.Player, error)
}

// DrillService is the state container for the drill library.
type DrillService interface {
	List() []domain.Drill
	Get(id string) (*domain.Drill, error)
	Create(ctx context.Context, in DrillInput) (*domain.Drill, error)
	Update(ctx context.Context, id string, in DrillInput) (*domain.Drill, error)
	Delete(ctx context.Context, id string) error
	Presets() []domain.Drill
	VideoURL(id string) (string, error)
	RemovePlayerReferences(ctx context.Context, playerID string)
}

type drillService struct {
	mu      sync.RWMutex
	drills  []domain.Drill
	st      store.Store
	players playerDirectory
}

// NewDrillService hydrates the library from the store. On a fresh install it
// seeds the default library so a new coach has something to plan with.
func NewDrillService(ctx context.Context, st store.Store, players playerDirectory) DrillService {
	drills := store.LoadJSON(ctx, st, store.KeyDrills, []domain.Drill(nil))
	if drills == nil {
		drills = domain.DefaultDrillLibrary()
		for i := range drills {
			drills[i].ID = uuid.NewString()
		}
		store.SaveJSON(ctx, st, store.KeyDrills, drills)
	}
	return &drillService{drills: drills, st: st, players: players}
}

func (s *drillService) persist(ctx context.Context) {
	store.SaveJSON(ctx, s.st, store.KeyDrills, s.drills)
}

func (s *drillService) List() []domain.Drill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Drill, len(s.drills))
	copy(out, s.drills)
	return out
}

func (s *drillService) Get(id string) (*domain.Drill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.drills {
		if s.drills[i].ID == id {
			d := s.drills[i]
			d.AssignedPlayers = append([]string(nil), d.AssignedPlayers...)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: drill %s", ErrNotFound, id)
}

func (s *drillService) Presets() []domain.Drill {
	out := make([]domain.Drill, len(domain.DrillPresets))
	copy(out, domain.DrillPresets)
	return out
}

// validate normalizes and checks a drill input. Assigned players must exist
// at creation time; unknown ids are rejected rather than silently dropped.
func (s *drillService) validate(in *DrillInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("%w: drill title cannot be empty", ErrValidation)
	}
	if in.Duration <= 0 {
		return fmt.Errorf("%w: drill duration must be a positive number of minutes", ErrValidation)
	}
	if in.Skill == "" {
		in.Skill = domain.SkillCategories[0]
	}
	if !domain.ValidSkill(in.Skill) {
		return fmt.Errorf("%w: unknown skill category %q", ErrValidation, in.Skill)
	}
	if in.Difficulty == "" {
		in.Difficulty = domain.DifficultyLevels[0]
	}
	if !domain.ValidDifficulty(in.Difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, in.Difficulty)
	}
	if in.VideoURL != "" && !videoURLPattern.MatchString(in.VideoURL) {
		return fmt.Errorf("%w: video URL must start with http:// or https://", ErrValidation)
	}
	if in.AssignedPlayers == nil {
		in.AssignedPlayers = []string{}
	}
	for _, pid := range in.AssignedPlayers {
		if _, err := s.players.Get(pid); err != nil {
			return fmt.Errorf("%w: assigned player %s does not exist", ErrValidation, pid)
		}
	}
	return nil
}

func (s *drillService) Create(ctx context.Context, in DrillInput) (*domain.Drill, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	drill := domain.Drill{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Duration:        in.Duration,
		Skill:           in.Skill,
		Difficulty:      in.Difficulty,
		Notes:           in.Notes,
		VideoURL:        in.VideoURL,
		AssignedPlayers: in.AssignedPlayers,
	}

	s.mu.Lock()
	s.drills = append(s.drills, drill)
	s.persist(ctx)
	s.mu.Unlock()

	return &drill, nil
}

func (s *drillService) Update(ctx context.Context, id string, in DrillInput) (*domain.Drill, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drills {
		if s.drills[i].ID == id {
			s.drills[i] = domain.Drill{
				ID:              id,
				Title:           in.Title,
				Duration:        in.Duration,
				Skill:           in.Skill,
				Difficulty:      in.Difficulty,
				Notes:           in.Notes,
				VideoURL:        in.VideoURL,
				AssignedPlayers: in.AssignedPlayers,
			}
			s.persist(ctx)
			d := s.drills[i]
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: drill %s", ErrNotFound, id)
}

// Delete removes a drill from the library. Sessions keep their embedded
// snapshots; nothing is touched retroactively.
func (s *drillService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drills {
		if s.drills[i].ID == id {
			s.drills = append(s.drills[:i], s.drills[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("%w: drill %s", ErrNotFound, id)
}

// VideoURL returns the drill's demo video link, or ErrNoVideo when none is
// attached. The UI shows an error toast instead of opening the video modal.
func (s *drillService) VideoURL(id string) (string, error) {
	drill, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if drill.VideoURL == "" {
		return "", ErrNoVideo
	}
	return drill.VideoURL, nil
}

// RemovePlayerReferences drops the player id from every drill's assignment
// list. Part of the player-deletion cascade.
func (s *drillService) RemovePlayerReferences(ctx context.Context, playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for i := range s.drills {
		kept := s.drills[i].AssignedPlayers[:0]
		for _, pid := range s.drills[i].AssignedPlayers {
			if pid == playerID {
				changed = true
				continue
			}
			kept = append(kept, pid)
		}
		s.drills[i].AssignedPlayers = kept
	}
	if changed {
		s.persist(ctx)
	}
}
