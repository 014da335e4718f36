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

// draftReader exposes the current session form. Implemented by the session
// service; templates are snapshotted from it.
type draftReader interface {
	Draft() DraftState
}

// TemplateService is the state container for reusable session templates.
// A template is decoupled from the form it was saved from: later edits to
// sessions or drills never touch it.
type TemplateService interface {
	List() []domain.SessionTemplate
	Get(id string) (*domain.SessionTemplate, error)
	SaveFromDraft(ctx context.Context, name string) (*domain.SessionTemplate, error)
	Delete(ctx context.Context, id string) error
}

type templateService struct {
	mu        sync.RWMutex
	templates []domain.SessionTemplate
	st        store.Store
	draft     draftReader
}

// NewTemplateService hydrates templates from the store.
func NewTemplateService(ctx context.Context, st store.Store, draft draftReader) TemplateService {
	return &templateService{
		templates: store.LoadJSON(ctx, st, store.KeyTemplates, []domain.SessionTemplate{}),
		st:        st,
		draft:     draft,
	}
}

func (s *templateService) persist(ctx context.Context) {
	store.SaveJSON(ctx, s.st, store.KeyTemplates, s.templates)
}

func (s *templateService) List() []domain.SessionTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SessionTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *templateService) Get(id string) (*domain.SessionTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			t := s.templates[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: template %s", ErrNotFound, id)
}

// SaveFromDraft snapshots the current form's category, drills and notes
// under the given template name.
func (s *templateService) SaveFromDraft(ctx context.Context, name string) (*domain.SessionTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name cannot be empty", ErrValidation)
	}

	form := s.draft.Draft().Session
	tmpl := domain.SessionTemplate{
		ID:       uuid.NewString(),
		Name:     name,
		Category: form.Category,
		Drills:   form.Drills,
		Notes:    form.Notes,
	}

	s.mu.Lock()
	s.templates = append(s.templates, tmpl)
	s.persist(ctx)
	s.mu.Unlock()

	return &tmpl, nil
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("%w: template %s", ErrNotFound, id)
}
