package service

import (
	"context"
	"testing"

	"allball/practice-server/internal/domain"

	"github.com/stretchr/testify/require"
)

func draftDrill(t *testing.T, sessions SessionService, title string, duration int) *domain.SessionDrill {
	t.Helper()
	instance, err := sessions.AddDrillToDraft(context.Background(), domain.Drill{
		ID:              "lib-" + title,
		Title:           title,
		Duration:        duration,
		Skill:           domain.SkillShooting,
		Difficulty:      domain.DifficultyBeginner,
		AssignedPlayers: []string{},
	})
	require.NoError(t, err)
	return instance
}

func draftOrder(sessions SessionService) []string {
	var out []string
	for _, d := range sessions.Draft().Session.Drills {
		out = append(out, d.Title)
	}
	return out
}

func TestDraftStartsEmpty(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)

	draft := sessions.Draft()
	require.Empty(t, draft.EditingID)
	require.Empty(t, draft.Session.Drills)
	require.Equal(t, domain.PracticeCategories[0], draft.Session.Category)
}

func TestAddDrillToDraftIssuesUniqueInstanceIDs(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)

	a := draftDrill(t, sessions, "Spot Shooting", 10)
	b := draftDrill(t, sessions, "Spot Shooting", 10)
	require.NotEqual(t, a.UniqueID, b.UniqueID)
	require.Equal(t, a.ID, b.ID) // same library drill twice
}

func TestRemoveDrillFromDraftDropsItsMetrics(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	instance := draftDrill(t, sessions, "Free Throws", 7)
	require.NoError(t, sessions.SetDraftMetric(ctx, instance.UniqueID, "p1", domain.ShotMetrics{ShotsMade: 8, ShotsAttempted: 10}))

	require.NoError(t, sessions.RemoveDrillFromDraft(ctx, instance.UniqueID))
	draft := sessions.Draft().Session
	require.Empty(t, draft.Drills)
	require.Empty(t, draft.PerformanceMetrics)

	require.ErrorIs(t, sessions.RemoveDrillFromDraft(ctx, instance.UniqueID), ErrNotFound)
}

func TestReorderDraftDrills(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	a := draftDrill(t, sessions, "A", 5)
	b := draftDrill(t, sessions, "B", 5)
	c := draftDrill(t, sessions, "C", 5)

	// Drag A onto C: A slots in where C sat.
	require.NoError(t, sessions.ReorderDraftDrills(ctx, a.UniqueID, c.UniqueID))
	require.Equal(t, []string{"B", "C", "A"}, draftOrder(sessions))

	// Drag A back onto B.
	require.NoError(t, sessions.ReorderDraftDrills(ctx, a.UniqueID, b.UniqueID))
	require.Equal(t, []string{"A", "B", "C"}, draftOrder(sessions))

	require.ErrorIs(t, sessions.ReorderDraftDrills(ctx, a.UniqueID, "missing"), ErrNotFound)
}

func TestSetDraftMetricValidatesInstance(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	err := sessions.SetDraftMetric(ctx, "not-in-draft", "p1", domain.ShotMetrics{})
	require.ErrorIs(t, err, ErrValidation)

	instance := draftDrill(t, sessions, "Free Throws", 7)
	require.NoError(t, sessions.SetDraftMetric(ctx, instance.UniqueID, "p1", domain.ShotMetrics{ShotsMade: -3, ShotsAttempted: -1}))

	metrics := sessions.Draft().Session.PerformanceMetrics[instance.UniqueID]["p1"]
	require.Zero(t, metrics.ShotsMade)
	require.Zero(t, metrics.ShotsAttempted)
}

func TestSaveDraftRequiresDateAndName(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	_, err := sessions.SaveDraft(ctx)
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, sessions.UpdateDraftInfo(ctx, DraftInfo{Date: "2026-03-01", Name: "   "}))
	_, err = sessions.SaveDraft(ctx)
	require.ErrorIs(t, err, ErrValidation)
}

func TestSaveDraftCreateAppendsHistory(t *testing.T) {
	players, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	p, err := players.Add(ctx, "Jordan", "23")
	require.NoError(t, err)

	instance := draftDrill(t, sessions, "Free Throws", 7)
	require.NoError(t, sessions.UpdateDraftInfo(ctx, DraftInfo{Date: "2026-03-01", Name: "Morning Practice"}))
	require.NoError(t, sessions.SetDraftMetric(ctx, instance.UniqueID, p.ID, domain.ShotMetrics{ShotsMade: 6, ShotsAttempted: 10}))
	// Zero attempts never reach history.
	require.NoError(t, sessions.SetDraftMetric(ctx, instance.UniqueID, "bench-player", domain.ShotMetrics{ShotsMade: 0, ShotsAttempted: 0}))

	saved, err := sessions.SaveDraft(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := players.Get(p.ID)
	require.NoError(t, err)
	require.Len(t, got.PerformanceHistory, 1)
	require.Equal(t, "2026-03-01", got.PerformanceHistory[0].Date)
	require.Equal(t, instance.ID, got.PerformanceHistory[0].DrillID) // library id, not instance id

	// Form resets after save.
	draft := sessions.Draft()
	require.Empty(t, draft.Session.Drills)
	require.Empty(t, draft.Session.Name)
	require.Empty(t, draft.EditingID)
}

func TestSaveDraftEditUpdatesWithoutHistory(t *testing.T) {
	players, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	p, err := players.Add(ctx, "Jordan", "23")
	require.NoError(t, err)

	instance := draftDrill(t, sessions, "Free Throws", 7)
	require.NoError(t, sessions.UpdateDraftInfo(ctx, DraftInfo{Date: "2026-03-01", Name: "Morning Practice"}))
	require.NoError(t, sessions.SetDraftMetric(ctx, instance.UniqueID, p.ID, domain.ShotMetrics{ShotsMade: 6, ShotsAttempted: 10}))
	saved, err := sessions.SaveDraft(ctx)
	require.NoError(t, err)

	require.NoError(t, sessions.EditSession(ctx, saved.ID))
	editing := sessions.Draft()
	require.Equal(t, saved.ID, editing.EditingID)
	require.Empty(t, editing.Session.PerformanceMetrics) // metrics re-record on edit

	require.NoError(t, sessions.UpdateDraftInfo(ctx, DraftInfo{Date: "2026-03-02", Name: "Evening Practice"}))
	updated, err := sessions.SaveDraft(ctx)
	require.NoError(t, err)
	require.Equal(t, saved.ID, updated.ID)
	require.Equal(t, "Evening Practice", updated.Name)
	require.Len(t, sessions.List(), 1)

	// Editing never double-appends history.
	got, err := players.Get(p.ID)
	require.NoError(t, err)
	require.Len(t, got.PerformanceHistory, 1)
}

func TestCancelDraft(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	require.ErrorIs(t, sessions.CancelDraft(ctx), ErrNothingToCancel)

	draftDrill(t, sessions, "A", 5)
	require.NoError(t, sessions.CancelDraft(ctx))
	require.Empty(t, sessions.Draft().Session.Drills)
}

func TestDuplicateSession(t *testing.T) {
	players, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	p, err := players.Add(ctx, "Jordan", "23")
	require.NoError(t, err)

	instance := draftDrill(t, sessions, "Free Throws", 7)
	require.NoError(t, sessions.UpdateDraftInfo(ctx, DraftInfo{Date: "2026-03-01", Name: "Morning Practice"}))
	require.NoError(t, sessions.SetDraftMetric(ctx, instance.UniqueID, p.ID, domain.ShotMetrics{ShotsMade: 6, ShotsAttempted: 10}))
	saved, err := sessions.SaveDraft(ctx)
	require.NoError(t, err)

	dup, err := sessions.Duplicate(ctx, saved.ID)
	require.NoError(t, err)
	require.NotEqual(t, saved.ID, dup.ID)
	require.Equal(t, "Copy of Morning Practice", dup.Name)
	require.Empty(t, dup.Date)
	require.Empty(t, dup.PerformanceMetrics)
	require.Len(t, dup.Drills, 1)
	require.NotEqual(t, saved.Drills[0].UniqueID, dup.Drills[0].UniqueID)

	_, err = sessions.Duplicate(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadTemplateIntoDraftKeepsDate(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)
	ctx := context.Background()

	require.NoError(t, sessions.UpdateDraftInfo(ctx, DraftInfo{Date: "2026-03-05", Name: "Scrap Me"}))
	tmpl := domain.SessionTemplate{
		ID:       "t1",
		Name:     "Shooting Day",
		Category: domain.CategorySkills,
		Drills: []domain.SessionDrill{
			{Drill: domain.Drill{ID: "d1", Title: "Spot Shooting", Duration: 10}, UniqueID: "old-uid"},
		},
		Notes: "Keep the pace up.",
	}
	require.NoError(t, sessions.LoadTemplateIntoDraft(ctx, tmpl))

	draft := sessions.Draft().Session
	require.Equal(t, "2026-03-05", draft.Date)
	require.Equal(t, "Shooting Day", draft.Name)
	require.Equal(t, domain.CategorySkills, draft.Category)
	require.Len(t, draft.Drills, 1)
	require.NotEqual(t, "old-uid", draft.Drills[0].UniqueID)
}

func TestSaveTemplateFromDraft(t *testing.T) {
	_, _, sessions, templates, _ := newContainers(t)
	ctx := context.Background()

	_, err := templates.SaveFromDraft(ctx, "  ")
	require.ErrorIs(t, err, ErrValidation)

	draftDrill(t, sessions, "Spot Shooting", 10)
	require.NoError(t, sessions.UpdateDraftInfo(ctx, DraftInfo{Category: domain.CategorySkills, Notes: "note"}))

	tmpl, err := templates.SaveFromDraft(ctx, "Shooting Day")
	require.NoError(t, err)
	require.Equal(t, "Shooting Day", tmpl.Name)
	require.Len(t, tmpl.Drills, 1)

	// Later draft edits never touch the saved template.
	require.NoError(t, sessions.CancelDraft(ctx))
	got, err := templates.Get(tmpl.ID)
	require.NoError(t, err)
	require.Len(t, got.Drills, 1)

	require.NoError(t, templates.Delete(ctx, tmpl.ID))
	require.ErrorIs(t, templates.Delete(ctx, tmpl.ID), ErrNotFound)
}

func TestUpdateDraftInfoRejectsUnknownCategory(t *testing.T) {
	_, _, sessions, _, _ := newContainers(t)
	err := sessions.UpdateDraftInfo(context.Background(), DraftInfo{Category: "Recess"})
	require.ErrorIs(t, err, ErrValidation)
}
