package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"allball/practice-server/internal/domain"
	"allball/practice-server/internal/store"

	"github.com/google/uuid"
)

// historyAppender receives the performance entries produced by a session
// save. Implemented by the player service.
type historyAppender interface {
	AppendPerformance(ctx context.Context, playerID string, recs []domain.PerformanceRecord)
}

// DraftInfo carries the scalar fields of the session form.
type DraftInfo struct {
	Date     string
	Category domain.Category
	Name     string
	Notes    string
}

// DraftState is a read-only view of the form: the draft session plus the id
// of the persisted session being edited, if any.
type DraftState struct {
	Session   domain.Session `json:"session"`
	EditingID string         `json:"editingId,omitempty"`
}

// SessionService is the state container for persisted sessions and the
// in-progress draft form.
//
// Draft lifecycle: an empty Draft is always present. SaveDraft persists it
// (creating or, when EditSession was called first, updating) and resets the
// form to an empty Draft. CancelDraft discards changes the same way.
type SessionService interface {
	List() []domain.Session
	Get(id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*domain.Session, error)

	Draft() DraftState
	UpdateDraftInfo(ctx context.Context, info DraftInfo) error
	AddDrillToDraft(ctx context.Context, drill domain.Drill) (*domain.SessionDrill, error)
	RemoveDrillFromDraft(ctx context.Context, uniqueID string) error
	ReorderDraftDrills(ctx context.Context, dragUniqueID, dropUniqueID string) error
	SetDraftMetric(ctx context.Context, uniqueID, playerID string, metrics domain.ShotMetrics) error
	SaveDraft(ctx context.Context) (*domain.Session, error)
	EditSession(ctx context.Context, id string) error
	CancelDraft(ctx context.Context) error
	LoadTemplateIntoDraft(ctx context.Context, tmpl domain.SessionTemplate) error

	RemovePlayerReferences(ctx context.Context, playerID string)
}

type sessionService struct {
	mu        sync.RWMutex
	sessions  []domain.Session
	draft     domain.Session
	editingID string
	st        store.Store
	history   historyAppender
}

// NewSessionService hydrates persisted sessions from the store. The draft
// form always starts empty; it is deliberately not persisted, a restart is a
// clean slate.
func NewSessionService(ctx context.Context, st store.Store, history historyAppender) SessionService {
	return &sessionService{
		sessions: store.LoadJSON(ctx, st, store.KeySessions, []domain.Session{}),
		draft:    emptyDraft(),
		st:       st,
		history:  history,
	}
}

func emptyDraft() domain.Session {
	return domain.Session{
		Category:           domain.PracticeCategories[0],
		Drills:             []domain.SessionDrill{},
		PerformanceMetrics: domain.PerformanceMetrics{},
	}
}

func (s *sessionService) persist(ctx context.Context) {
	store.SaveJSON(ctx, s.st, store.KeySessions, s.sessions)
}

func (s *sessionService) List() []domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

func (s *sessionService) Get(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			sess := s.sessions[i]
			return &sess, nil
		}
	}
	return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("%w: session %s", ErrNotFound, id)
}

// Duplicate copies a session under a new id with fresh drill-instance ids,
// a cleared date and no performance metrics.
func (s *sessionService) Duplicate(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID != id {
			continue
		}
		src := s.sessions[i]
		dup := domain.Session{
			ID:                 uuid.NewString(),
			Date:               "",
			Category:           src.Category,
			Name:               "Copy of " + src.Name,
			Drills:             reissueUniqueIDs(src.Drills),
			Notes:              src.Notes,
			PerformanceMetrics: domain.PerformanceMetrics{},
		}
		s.sessions = append(s.sessions, dup)
		s.persist(ctx)
		return &dup, nil
	}
	return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
}

func reissueUniqueIDs(drills []domain.SessionDrill) []domain.SessionDrill {
	out := make([]domain.SessionDrill, len(drills))
	for i, d := range drills {
		d.UniqueID = uuid.NewString()
		out[i] = d
	}
	return out
}

func (s *sessionService) Draft() DraftState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DraftState{Session: copySession(s.draft), EditingID: s.editingID}
}

func copySession(src domain.Session) domain.Session {
	out := src
	out.Drills = append([]domain.SessionDrill(nil), src.Drills...)
	for i := range out.Drills {
		out.Drills[i].AssignedPlayers = append([]string(nil), out.Drills[i].AssignedPlayers...)
	}
	out.PerformanceMetrics = domain.PerformanceMetrics{}
	for uid, byPlayer := range src.PerformanceMetrics {
		cp := make(map[string]domain.ShotMetrics, len(byPlayer))
		for pid, m := range byPlayer {
			cp[pid] = m
		}
		out.PerformanceMetrics[uid] = cp
	}
	return out
}

func (s *sessionService) UpdateDraftInfo(_ context.Context, info DraftInfo) error {
	if info.Category != "" && !domain.ValidCategory(info.Category) {
		return fmt.Errorf("%w: unknown practice category %q", ErrValidation, info.Category)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Date = info.Date
	if info.Category != "" {
		s.draft.Category = info.Category
	}
	s.draft.Name = info.Name
	s.draft.Notes = info.Notes
	return nil
}

// AddDrillToDraft embeds a snapshot of the given drill with a fresh
// per-instance id, so the same library drill can appear twice.
func (s *sessionService) AddDrillToDraft(_ context.Context, drill domain.Drill) (*domain.SessionDrill, error) {
	if strings.TrimSpace(drill.Title) == "" {
		return nil, fmt.Errorf("%w: drill title cannot be empty", ErrValidation)
	}
	instance := domain.SessionDrill{Drill: drill, UniqueID: uuid.NewString()}
	if instance.AssignedPlayers == nil {
		instance.AssignedPlayers = []string{}
	}

	s.mu.Lock()
	s.draft.Drills = append(s.draft.Drills, instance)
	s.mu.Unlock()
	return &instance, nil
}

// RemoveDrillFromDraft drops the drill instance and any metrics recorded
// against it, keeping the metrics map consistent with the drill list.
func (s *sessionService) RemoveDrillFromDraft(_ context.Context, uniqueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.draft.Drills {
		if s.draft.Drills[i].UniqueID == uniqueID {
			s.draft.Drills = append(s.draft.Drills[:i], s.draft.Drills[i+1:]...)
			delete(s.draft.PerformanceMetrics, uniqueID)
			return nil
		}
	}
	return fmt.Errorf("%w: drill instance %s", ErrNotFound, uniqueID)
}

// ReorderDraftDrills moves the dragged instance to the dropped-on position,
// splice semantics identical to the drag-and-drop handler in the UI.
func (s *sessionService) ReorderDraftDrills(_ context.Context, dragUniqueID, dropUniqueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dragIdx, dropIdx := -1, -1
	for i := range s.draft.Drills {
		switch s.draft.Drills[i].UniqueID {
		case dragUniqueID:
			dragIdx = i
		case dropUniqueID:
			dropIdx = i
		}
	}
	if dragIdx == -1 || dropIdx == -1 {
		return fmt.Errorf("%w: drill instance", ErrNotFound)
	}

	drills := s.draft.Drills
	dragged := drills[dragIdx]
	drills = append(drills[:dragIdx], drills[dragIdx+1:]...)
	rest := append([]domain.SessionDrill{dragged}, drills[dropIdx:]...)
	s.draft.Drills = append(drills[:dropIdx:dropIdx], rest...)
	return nil
}

// SetDraftMetric records shooting numbers for one player on one drill
// instance. The instance must be part of the draft. Negative numbers are
// coerced to zero.
func (s *sessionService) SetDraftMetric(_ context.Context, uniqueID, playerID string, metrics domain.ShotMetrics) error {
	if metrics.ShotsMade < 0 {
		metrics.ShotsMade = 0
	}
	if metrics.ShotsAttempted < 0 {
		metrics.ShotsAttempted = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for i := range s.draft.Drills {
		if s.draft.Drills[i].UniqueID == uniqueID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: drill instance %s is not in the draft", ErrValidation, uniqueID)
	}
	if s.draft.PerformanceMetrics[uniqueID] == nil {
		s.draft.PerformanceMetrics[uniqueID] = map[string]domain.ShotMetrics{}
	}
	s.draft.PerformanceMetrics[uniqueID][playerID] = metrics
	return nil
}

// SaveDraft validates and persists the draft. A first save creates a session
// and appends one history entry per player with recorded attempts per drill
// instance; saving while editing updates the stored session and appends
// nothing. Either way the form resets to an empty draft.
func (s *sessionService) SaveDraft(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	if s.draft.Date == "" || strings.TrimSpace(s.draft.Name) == "" {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: please fill in date and practice name", ErrValidation)
	}

	saved := copySession(s.draft)
	saved.Name = strings.TrimSpace(saved.Name)
	pruneOrphanMetrics(&saved)

	var historyByPlayer map[string][]domain.PerformanceRecord
	if s.editingID != "" {
		saved.ID = s.editingID
		updated := false
		for i := range s.sessions {
			if s.sessions[i].ID == s.editingID {
				s.sessions[i] = saved
				updated = true
				break
			}
		}
		if !updated {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: session %s", ErrNotFound, s.editingID)
		}
	} else {
		saved.ID = uuid.NewString()
		s.sessions = append(s.sessions, saved)
		historyByPlayer = collectHistory(saved)
	}
	s.persist(ctx)
	s.draft = emptyDraft()
	s.editingID = ""
	s.mu.Unlock()

	for pid, recs := range historyByPlayer {
		s.history.AppendPerformance(ctx, pid, recs)
	}
	return &saved, nil
}

// pruneOrphanMetrics drops metric keys that no longer reference a drill
// instance present in the session.
func pruneOrphanMetrics(sess *domain.Session) {
	valid := make(map[string]bool, len(sess.Drills))
	for _, d := range sess.Drills {
		valid[d.UniqueID] = true
	}
	for uid := range sess.PerformanceMetrics {
		if !valid[uid] {
			delete(sess.PerformanceMetrics, uid)
		}
	}
}

// collectHistory turns the session's metrics into per-player history
// entries. Only entries with attempts qualify; the drill id recorded is the
// library id of the instance the metrics were entered against.
func collectHistory(sess domain.Session) map[string][]domain.PerformanceRecord {
	out := map[string][]domain.PerformanceRecord{}
	for _, d := range sess.Drills {
		byPlayer := sess.PerformanceMetrics[d.UniqueID]
		for pid, metrics := range byPlayer {
			if metrics.ShotsAttempted <= 0 {
				continue
			}
			out[pid] = append(out[pid], domain.PerformanceRecord{
				Date:    sess.Date,
				DrillID: d.ID,
				Metrics: metrics,
			})
		}
	}
	return out
}

// EditSession loads a persisted session into the draft. Metrics start empty;
// editing re-records them rather than replaying history.
func (s *sessionService) EditSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			draft := copySession(s.sessions[i])
			draft.ID = ""
			draft.PerformanceMetrics = domain.PerformanceMetrics{}
			s.draft = draft
			s.editingID = id
			return nil
		}
	}
	return fmt.Errorf("%w: session %s", ErrNotFound, id)
}

// CancelDraft discards the draft, reverting to an empty form.
func (s *sessionService) CancelDraft(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingID == "" && s.draft.Name == "" && len(s.draft.Drills) == 0 {
		return ErrNothingToCancel
	}
	s.draft = emptyDraft()
	s.editingID = ""
	return nil
}

// LoadTemplateIntoDraft overwrites the draft's category, name, drills and
// notes from a template, issuing fresh drill-instance ids. The draft's date
// is kept; metrics reset.
func (s *sessionService) LoadTemplateIntoDraft(_ context.Context, tmpl domain.SessionTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Category = tmpl.Category
	s.draft.Name = tmpl.Name
	s.draft.Drills = reissueUniqueIDs(tmpl.Drills)
	s.draft.Notes = tmpl.Notes
	s.draft.PerformanceMetrics = domain.PerformanceMetrics{}
	s.editingID = ""
	return nil
}

// RemovePlayerReferences cascades a player deletion into the draft: the id
// is dropped from every draft drill's assignments and recorded metrics for
// the form are cleared, mirroring what the roster screen always did.
func (s *sessionService) RemovePlayerReferences(_ context.Context, playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.draft.Drills {
		kept := s.draft.Drills[i].AssignedPlayers[:0]
		for _, pid := range s.draft.Drills[i].AssignedPlayers {
			if pid != playerID {
				kept = append(kept, pid)
			}
		}
		s.draft.Drills[i].AssignedPlayers = kept
	}
	s.draft.PerformanceMetrics = domain.PerformanceMetrics{}
}
