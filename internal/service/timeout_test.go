package service

import (
	"testing"
	"time"

	"github.com/mkarval/brewduel/internal/game"
)

func TestHandleTimedOutBattle_ForcesDrawPhase(t *testing.T) {
	repo := newMockRepo()
	s := testService(t, repo)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	b := createStartedBattle(t, s, repo)
	b.TurnDeadline = fixed.Add(-time.Second)
	handBefore := b.Combatants[0].ZoneSize(game.LocationHand)

	if err := s.HandleTimedOutBattle(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Phase != game.PhaseMain {
		t.Fatalf("a timed-out draw phase must advance to main, got %q", b.Phase)
	}
	if got := b.Combatants[0].ZoneSize(game.LocationHand); got != handBefore+1 {
		t.Fatalf("expected the auto-draw of one card, hand %d -> %d", handBefore, got)
	}
	if b.TurnDeadline.IsZero() {
		t.Fatalf("expected the deadline re-armed for the same human turn")
	}
}

func TestHandleTimedOutBattle_ForcesMainPhase(t *testing.T) {
	repo := newMockRepo()
	s := testService(t, repo)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	b := createStartedBattle(t, s, repo)
	b.Phase = game.PhaseMain
	b.TurnDeadline = fixed.Add(-time.Second)

	if err := s.HandleTimedOutBattle(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ActiveIndex != 1 {
		t.Fatalf("a timed-out main phase must hand the turn over, active=%d", b.ActiveIndex)
	}
	if repo.updated == nil {
		t.Fatalf("timeout resolution must persist the battle")
	}
}

func TestHandleTimedOutBattle_IgnoresLiveDeadlines(t *testing.T) {
	repo := newMockRepo()
	s := testService(t, repo)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	b := createStartedBattle(t, s, repo)
	b.TurnDeadline = fixed.Add(time.Minute)
	phase := b.Phase

	if err := s.HandleTimedOutBattle(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Phase != phase {
		t.Fatalf("a live deadline must not be forced, phase %q -> %q", phase, b.Phase)
	}
}

func TestHandleTimedOutBattle_IgnoresFinishedBattles(t *testing.T) {
	repo := newMockRepo()
	s := testService(t, repo)
	b := &game.Battle{Status: game.StatusFinished, TurnDeadline: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}

	if err := s.HandleTimedOutBattle(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("finished battles must not be touched")
	}
}
