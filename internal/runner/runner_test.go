package runner

import (
	"testing"

	"allball/practice-server/internal/domain"

	"github.com/stretchr/testify/require"
)

func testQueue() []domain.SessionDrill {
	return []domain.SessionDrill{
		{Drill: domain.Drill{Title: "Warm-up Laps", Duration: 1}, UniqueID: "u1"},
		{Drill: domain.Drill{Title: "Spot Shooting", Duration: 2}, UniqueID: "u2"},
		{Drill: domain.Drill{Title: "Scrimmage", Duration: 3}, UniqueID: "u3"},
	}
}

func TestStartSeedsCurrentDrillDuration(t *testing.T) {
	r := New(nil)
	r.Load("Morning Practice", testQueue())

	snap := r.Snapshot()
	require.Equal(t, StateIdle, snap.State)
	require.Zero(t, snap.Remaining)

	r.Start()
	snap = r.Snapshot()
	require.Equal(t, StateRunning, snap.State)
	require.Equal(t, 60, snap.Remaining)
	require.Equal(t, "Warm-up Laps", snap.Current.Title)
}

func TestPauseAndResumeKeepRemaining(t *testing.T) {
	r := New(nil)
	r.Load("Practice", testQueue())
	r.Start()
	r.Tick()
	r.Tick()
	r.Pause()

	snap := r.Snapshot()
	require.Equal(t, StatePaused, snap.State)
	require.Equal(t, 58, snap.Remaining)

	// Ticks are ignored while paused.
	r.Tick()
	require.Equal(t, 58, r.Snapshot().Remaining)

	// Resuming does not reseed.
	r.Start()
	require.Equal(t, 58, r.Snapshot().Remaining)
}

func TestResetOnlyZeroesRemaining(t *testing.T) {
	r := New(nil)
	r.Load("Practice", testQueue())
	r.Start()
	r.Reset()

	snap := r.Snapshot()
	require.Equal(t, StateRunning, snap.State)
	require.Zero(t, snap.Remaining)
}

func TestAddTime(t *testing.T) {
	r := New(nil)
	r.Load("Practice", testQueue())
	r.Start()
	r.AddTime()
	require.Equal(t, 60+TimeIncrement, r.Snapshot().Remaining)
}

func TestNextSeedsAndPrevDoesNot(t *testing.T) {
	r := New(nil)
	r.Load("Practice", testQueue())
	r.Start()

	r.Next()
	snap := r.Snapshot()
	require.Equal(t, 1, snap.Index)
	require.Equal(t, 120, snap.Remaining)

	r.Prev()
	snap = r.Snapshot()
	require.Equal(t, 0, snap.Index)
	require.Equal(t, 120, snap.Remaining) // Prev moves the index only

	r.Prev() // already at the front
	require.Equal(t, 0, r.Snapshot().Index)
}

func TestNextStopsAtEnd(t *testing.T) {
	r := New(nil)
	r.Load("Practice", testQueue())
	r.Next()
	r.Next()
	r.Next()
	require.Equal(t, 2, r.Snapshot().Index)
}

func TestMarkDoneAdvancesAndAutoStarts(t *testing.T) {
	var messages []string
	r := New(func(m string) { messages = append(messages, m) })
	r.Load("Practice", testQueue())

	r.MarkDone()
	snap := r.Snapshot()
	require.Equal(t, StateRunning, snap.State)
	require.Equal(t, 1, snap.Index)
	require.Equal(t, 120, snap.Remaining)
	require.Equal(t, []string{"Started: Spot Shooting"}, messages)
}

func TestCountdownRollsIntoNextDrill(t *testing.T) {
	r := New(nil)
	r.Load("Practice", []domain.SessionDrill{
		{Drill: domain.Drill{Title: "A", Duration: 1}, UniqueID: "u1"},
		{Drill: domain.Drill{Title: "B", Duration: 1}, UniqueID: "u2"},
	})
	r.Start()
	for i := 0; i < 60; i++ {
		r.Tick()
	}

	snap := r.Snapshot()
	require.Equal(t, StateRunning, snap.State)
	require.Equal(t, 1, snap.Index)
	require.Equal(t, 60, snap.Remaining)
}

func TestSessionCompletion(t *testing.T) {
	var messages []string
	r := New(func(m string) { messages = append(messages, m) })
	r.Load("Practice", []domain.SessionDrill{
		{Drill: domain.Drill{Title: "A", Duration: 1}, UniqueID: "u1"},
	})
	r.MarkDone()

	snap := r.Snapshot()
	require.Equal(t, StateComplete, snap.State)
	require.Zero(t, snap.Remaining)
	require.Equal(t, []string{"Session complete!"}, messages)

	// A completed runner ignores Start until reloaded.
	r.Start()
	require.Equal(t, StateComplete, r.Snapshot().State)

	r.Load("Practice", testQueue())
	require.Equal(t, StateIdle, r.Snapshot().State)
}

func TestSnapshotUpNextCapsAtThree(t *testing.T) {
	queue := []domain.SessionDrill{
		{Drill: domain.Drill{Title: "A", Duration: 1}, UniqueID: "u1"},
		{Drill: domain.Drill{Title: "B", Duration: 1}, UniqueID: "u2"},
		{Drill: domain.Drill{Title: "C", Duration: 1}, UniqueID: "u3"},
		{Drill: domain.Drill{Title: "D", Duration: 1}, UniqueID: "u4"},
		{Drill: domain.Drill{Title: "E", Duration: 1}, UniqueID: "u5"},
	}
	r := New(nil)
	r.Load("Practice", queue)

	snap := r.Snapshot()
	require.Len(t, snap.UpNext, 3)
	require.Equal(t, "B", snap.UpNext[0].Title)
	require.Equal(t, "D", snap.UpNext[2].Title)
}

func TestStartWithEmptyQueueIsANoOp(t *testing.T) {
	r := New(nil)
	r.Start()
	require.Equal(t, StateIdle, r.Snapshot().State)
}

func TestPracticeTimer(t *testing.T) {
	timer := NewPracticeTimer()

	active, elapsed := timer.Elapsed()
	require.False(t, active)
	require.Zero(t, elapsed)

	// Ticks only count while active.
	timer.Tick()
	_, elapsed = timer.Elapsed()
	require.Zero(t, elapsed)

	timer.Start()
	timer.Tick()
	timer.Tick()
	timer.Pause()
	timer.Tick()

	active, elapsed = timer.Elapsed()
	require.False(t, active)
	require.Equal(t, 2, elapsed)

	timer.Reset()
	active, elapsed = timer.Elapsed()
	require.False(t, active)
	require.Zero(t, elapsed)
}
