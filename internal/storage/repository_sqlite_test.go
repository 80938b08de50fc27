package storage

import (
	"math/rand"
	"path/filepath"
	"sort"
	"testing"

	"github.com/mkarval/brewduel/internal/catalog"
	"github.com/mkarval/brewduel/internal/deck"
	"github.com/mkarval/brewduel/internal/engine"
	"github.com/mkarval/brewduel/internal/game"
)

func testRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "battles.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return NewSQLiteRepository(db)
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]game.Card{
		{ID: "strike", Name: "Strike", Category: game.CategoryItem, Rarity: game.RarityCommon,
			Effect: game.EffectSpec{Kind: game.EffectDamage, Amount: 12}, Target: game.TargetOpponent},
		{ID: "venom", Name: "Venom", Category: game.CategoryItem, Rarity: game.RarityUncommon,
			Effect: game.EffectSpec{Kind: game.EffectStatus, Status: game.StatusPoison, Magnitude: 4, Duration: 3}, Target: game.TargetOpponent},
		{ID: "filch", Name: "Filch", Category: game.CategoryItem, Rarity: game.RarityUncommon,
			Effect: game.EffectSpec{Kind: game.EffectSteal}, Target: game.TargetOpponent},
		{ID: "hops", Name: "Hops", Category: game.CategoryMaterial, Rarity: game.RarityCommon,
			Effect: game.EffectSpec{Kind: game.EffectGather}, Target: game.TargetSelf},
	})
}

func createTestBattle(t *testing.T, repo Repository, cat *catalog.Catalog, deck1, deck2 []string) *game.Battle {
	t.Helper()
	c1, err := deck.Build(cat, deck1)
	if err != nil {
		t.Fatalf("build deck 1: %v", err)
	}
	c2, err := deck.Build(cat, deck2)
	if err != nil {
		t.Fatalf("build deck 2: %v", err)
	}
	b := &game.Battle{
		JoinCode: "ABCD1234",
		Status:   game.StatusInProgress,
		Combatants: []game.Combatant{
			{PlayerUUID: "p1", PlayerName: "P1", Health: 100, MaxHealth: 100, Cards: c1, MaterialCounts: game.MaterialCounter{}},
			{PlayerUUID: "p2", PlayerName: "P2", Health: 100, MaxHealth: 100, Cards: c2, MaterialCounts: game.MaterialCounter{}},
		},
		TurnCount:   1,
		ActiveIndex: 0,
		Phase:       game.PhaseDraw,
		MaxRounds:   12,
		HandLimit:   7,
	}
	if err := repo.CreateBattle(b); err != nil {
		t.Fatalf("create battle: %v", err)
	}
	return b
}

func zoneIDs(c *game.Combatant, loc game.Location) []string {
	zone := c.Zone(loc)
	ids := make([]string, len(zone))
	for i, inst := range zone {
		ids[i] = inst.InstanceID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// An effect that expires in memory must stay expired after the battle is
// written back and preloaded again. This exercises the stale-row prune in
// UpdateBattle: a plain upsert leaves the dropped status_effects row behind
// and the next reload would resurrect it with its pre-decrement duration.
func TestUpdateBattle_DropsExpiredStatusEffects(t *testing.T) {
	repo := testRepo(t)
	cat := testCatalog()
	eng := engine.New(cat, rand.New(rand.NewSource(1)))

	created := createTestBattle(t, repo, cat, []string{"strike"}, []string{"strike"})
	created.Combatants[0].StatusEffects = []game.StatusEffect{
		{Kind: game.StatusPoison, Magnitude: 4, Remaining: 1},
		{Kind: game.StatusDamageMultiplier, Magnitude: 50, Remaining: 3, Unique: true},
	}
	if err := repo.UpdateBattle(created); err != nil {
		t.Fatalf("persist status effects: %v", err)
	}

	b, err := repo.GetBattleByID(created.ID)
	if err != nil {
		t.Fatalf("reload battle: %v", err)
	}
	if got := len(b.Combatants[0].StatusEffects); got != 2 {
		t.Fatalf("expected 2 persisted status effects, got %d", got)
	}

	// The tick expires the one-turn poison and decrements the multiplier.
	if err := eng.StartTurn(b); err != nil {
		t.Fatalf("start turn: %v", err)
	}
	if got := b.Combatants[0].Health; got != 96 {
		t.Fatalf("expected poison tick to leave 96 health, got %d", got)
	}
	if got := len(b.Combatants[0].StatusEffects); got != 1 {
		t.Fatalf("expected 1 status effect after tick, got %d", got)
	}
	if err := repo.UpdateBattle(b); err != nil {
		t.Fatalf("update battle: %v", err)
	}

	re, err := repo.GetBattleByID(created.ID)
	if err != nil {
		t.Fatalf("reload battle after update: %v", err)
	}
	c := &re.Combatants[0]
	if got := len(c.StatusEffects); got != 1 {
		t.Fatalf("expired status effect came back after reload: %d effect(s) %+v", got, c.StatusEffects)
	}
	if se := c.StatusEffects[0]; se.Kind != game.StatusDamageMultiplier || se.Remaining != 2 {
		t.Fatalf("surviving effect = %+v, want damage_multiplier with 2 remaining", se)
	}
	if c.Health != 96 {
		t.Fatalf("reloaded health = %d, want 96", c.Health)
	}

	// A second tick on the reloaded battle must decrement only the survivor.
	if err := eng.StartTurn(re); err != nil {
		t.Fatalf("start turn on reloaded battle: %v", err)
	}
	if got := re.Combatants[0].Health; got != 96 {
		t.Fatalf("expired poison re-ticked after reload: health %d, want 96", got)
	}
}

// Saves and reloads an in-progress battle across a draw, a steal and a
// discard, asserting the reloaded state matches the in-memory state zone by
// zone. Mid-battle reconstruction is what every intent relies on.
func TestBattleRoundTrip_MidBattleStateSurvivesReload(t *testing.T) {
	repo := testRepo(t)
	cat := testCatalog()
	eng := engine.New(cat, rand.New(rand.NewSource(7)))

	created := createTestBattle(t, repo, cat,
		[]string{"filch", "strike", "hops"}, []string{"strike", "venom"})

	b, err := repo.GetBattleByID(created.ID)
	if err != nil {
		t.Fatalf("reload battle: %v", err)
	}

	// Zone moves: the whole p1 deck goes to hand, one p2 card goes to hand
	// so the steal has something to take.
	if _, err := eng.DrawCard(b, 0, 3); err != nil {
		t.Fatalf("draw: %v", err)
	}
	p2 := &b.Combatants[1]
	if drawn, _ := deck.Draw(p2, 1, b.HandLimit); len(drawn) != 1 {
		t.Fatalf("expected p2 to draw 1 card for setup")
	}

	p1 := &b.Combatants[0]
	var filchID string
	for _, inst := range p1.Zone(game.LocationHand) {
		if inst.CardID == "filch" {
			filchID = inst.InstanceID
		}
	}
	res, err := eng.PlayCard(b, 0, filchID, "p2")
	if err != nil {
		t.Fatalf("play steal: %v", err)
	}
	if !res.Applied || res.StolenInstance == "" {
		t.Fatalf("steal did not apply: %+v", res)
	}
	p1.MaterialCounts["hops"] = 2
	p1.Shield = 5

	if err := repo.UpdateBattle(b); err != nil {
		t.Fatalf("update battle: %v", err)
	}
	re, err := repo.GetBattleByID(created.ID)
	if err != nil {
		t.Fatalf("reload battle after update: %v", err)
	}

	r1, _ := re.CombatantByUUID("p1")
	r2, _ := re.CombatantByUUID("p2")
	if r1 == nil || r2 == nil {
		t.Fatalf("reloaded battle is missing a combatant")
	}

	// The stolen instance must now belong to p1 only.
	if r1.FindInstance(res.StolenInstance) == nil {
		t.Fatalf("stolen instance %s missing from thief after reload", res.StolenInstance)
	}
	if r2.FindInstance(res.StolenInstance) != nil {
		t.Fatalf("stolen instance %s still attached to victim after reload", res.StolenInstance)
	}

	// Every zone must come back with the same instances in the same order.
	for _, loc := range []game.Location{game.LocationDeck, game.LocationHand, game.LocationDiscard} {
		if want, got := zoneIDs(p1, loc), zoneIDs(r1, loc); !equalIDs(want, got) {
			t.Fatalf("p1 %s zone changed across reload: want %v, got %v", loc, want, got)
		}
		if want, got := zoneIDs(p2, loc), zoneIDs(r2, loc); !equalIDs(want, got) {
			t.Fatalf("p2 %s zone changed across reload: want %v, got %v", loc, want, got)
		}
	}

	// Instance conservation across both sides.
	all := append(zoneIDs(r1, game.LocationDeck), zoneIDs(r1, game.LocationHand)...)
	all = append(all, zoneIDs(r1, game.LocationDiscard)...)
	all = append(all, zoneIDs(r2, game.LocationDeck)...)
	all = append(all, zoneIDs(r2, game.LocationHand)...)
	all = append(all, zoneIDs(r2, game.LocationDiscard)...)
	sort.Strings(all)
	if len(all) != 5 {
		t.Fatalf("expected 5 instances after reload, got %d: %v", len(all), all)
	}
	for i := 1; i < len(all); i++ {
		if all[i] == all[i-1] {
			t.Fatalf("instance %s duplicated after reload", all[i])
		}
	}

	if r1.Shield != 5 {
		t.Fatalf("reloaded shield = %d, want 5", r1.Shield)
	}
	if got := r1.MaterialCounts["hops"]; got != 2 {
		t.Fatalf("reloaded material count = %d, want 2", got)
	}
	if re.Phase != b.Phase || re.TurnCount != b.TurnCount || re.ActiveIndex != b.ActiveIndex {
		t.Fatalf("turn bookkeeping changed across reload: %s/%d/%d, want %s/%d/%d",
			re.Phase, re.TurnCount, re.ActiveIndex, b.Phase, b.TurnCount, b.ActiveIndex)
	}
	if len(re.Log) != len(b.Log) {
		t.Fatalf("battle log length changed across reload: %d, want %d", len(re.Log), len(b.Log))
	}
}
