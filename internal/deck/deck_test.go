package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarval/brewduel/internal/catalog"
	"github.com/mkarval/brewduel/internal/game"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]game.Card{
		{ID: "a", Name: "A", Category: game.CategoryItem, Effect: game.EffectSpec{Kind: game.EffectDamage, Amount: 1}},
		{ID: "b", Name: "B", Category: game.CategoryItem, Effect: game.EffectSpec{Kind: game.EffectHeal, Amount: 1}},
		{ID: "c", Name: "C", Category: game.CategoryMaterial, Effect: game.EffectSpec{Kind: game.EffectGather}},
	})
}

func TestBuild_CreatesDeckInstances(t *testing.T) {
	cat := testCatalog()
	cards, err := Build(cat, []string{"a", "b", "a", "c"})
	require.NoError(t, err)
	require.Len(t, cards, 4)

	seen := map[string]bool{}
	for i, ci := range cards {
		assert.Equal(t, game.LocationDeck, ci.Location)
		assert.Equal(t, i, ci.Position)
		assert.False(t, seen[ci.InstanceID], "instance ids must be unique")
		seen[ci.InstanceID] = true
	}
}

func TestBuild_UnknownCard(t *testing.T) {
	cat := testCatalog()
	_, err := Build(cat, []string{"a", "nope"})
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestShuffle_PermutesWithoutLosingCards(t *testing.T) {
	cat := testCatalog()
	cards, err := Build(cat, []string{"a", "a", "b", "b", "c", "c", "a", "b"})
	require.NoError(t, err)
	c := &game.Combatant{Cards: cards}

	Shuffle(c, rand.New(rand.NewSource(42)))

	require.Equal(t, 8, c.ZoneSize(game.LocationDeck))
	positions := map[int]bool{}
	for _, ci := range c.Zone(game.LocationDeck) {
		assert.False(t, positions[ci.Position], "positions must stay distinct")
		positions[ci.Position] = true
	}
}

func TestShuffle_MovesTheDeckHead(t *testing.T) {
	cat := testCatalog()
	ids := make([]string, 0, 30)
	for i := 0; i < 10; i++ {
		ids = append(ids, "a", "b", "c")
	}
	// With 30 cards the head card staying put across several seeds would
	// point at a broken permutation.
	moved := false
	for seed := int64(0); seed < 5; seed++ {
		cards, err := Build(cat, ids)
		require.NoError(t, err)
		c := &game.Combatant{Cards: cards}
		head := c.Zone(game.LocationDeck)[0].InstanceID
		Shuffle(c, rand.New(rand.NewSource(seed)))
		if c.Zone(game.LocationDeck)[0].InstanceID != head {
			moved = true
			break
		}
	}
	assert.True(t, moved, "shuffle never moved the deck head")
}

func TestShuffle_PositionallyUniform(t *testing.T) {
	cat := testCatalog()
	const trials = 4000
	const size = 4
	rng := rand.New(rand.NewSource(99))
	var counts [size][size]int
	for n := 0; n < trials; n++ {
		cards, err := Build(cat, []string{"a", "b", "c", "a"})
		require.NoError(t, err)
		// Tag each slot so frequencies are per starting position.
		for i := range cards {
			cards[i].InstanceID = string(rune('w' + i))
		}
		c := &game.Combatant{Cards: cards}
		Shuffle(c, rng)
		for pos, inst := range c.Zone(game.LocationDeck) {
			counts[int(inst.InstanceID[0]-'w')][pos]++
		}
	}
	// Chi-square over the starting-slot by final-position table. Each cell
	// expects trials/size; with (size-1)^2 = 9 degrees of freedom the 0.001
	// critical value is 27.88, and a positionally biased shuffle exceeds it
	// by orders of magnitude.
	expected := float64(trials) / size
	chi2 := 0.0
	for slot := 0; slot < size; slot++ {
		rowTotal := 0
		for pos := 0; pos < size; pos++ {
			d := float64(counts[slot][pos]) - expected
			chi2 += d * d / expected
			rowTotal += counts[slot][pos]
		}
		require.Equal(t, trials, rowTotal, "slot %d must land somewhere every shuffle", slot)
	}
	assert.Less(t, chi2, 27.88, "shuffle positions deviate from uniform")
}

func TestDraw_CappedByHeadroomAndDeckSize(t *testing.T) {
	cat := testCatalog()
	cards, err := Build(cat, []string{"a", "b", "c", "a", "b", "c", "a", "b"})
	require.NoError(t, err)
	c := &game.Combatant{Cards: cards}

	// Fill the hand to 5 of a 7-card limit, leaving 3 in the deck.
	drawn, short := Draw(c, 5, 7)
	require.Len(t, drawn, 5)
	require.Zero(t, short)

	drawn, short = Draw(c, 5, 7)
	assert.Len(t, drawn, 2, "headroom of 2 caps the draw")
	assert.Equal(t, 3, short)
	assert.Equal(t, 7, c.ZoneSize(game.LocationHand))
	assert.Equal(t, 1, c.ZoneSize(game.LocationDeck))
}

func TestDraw_TakesFromTheDeckHead(t *testing.T) {
	cat := testCatalog()
	cards, err := Build(cat, []string{"a", "b", "c"})
	require.NoError(t, err)
	c := &game.Combatant{Cards: cards}

	drawn, short := Draw(c, 2, 7)
	require.Len(t, drawn, 2)
	require.Zero(t, short)
	assert.Equal(t, "a", drawn[0].CardID)
	assert.Equal(t, "b", drawn[1].CardID)
	assert.Equal(t, 1, c.ZoneSize(game.LocationDeck))
}

func TestDrawExactly_FailsWithoutMoving(t *testing.T) {
	cat := testCatalog()
	cards, err := Build(cat, []string{"a", "b"})
	require.NoError(t, err)
	c := &game.Combatant{Cards: cards}

	_, err = DrawExactly(c, 3, 7)
	assert.ErrorIs(t, err, ErrInsufficientCards)
	assert.Equal(t, 2, c.ZoneSize(game.LocationDeck), "nothing moves on failure")
	assert.Zero(t, c.ZoneSize(game.LocationHand))
}

func TestDiscard_OnlyFromHand(t *testing.T) {
	cat := testCatalog()
	cards, err := Build(cat, []string{"a", "b"})
	require.NoError(t, err)
	c := &game.Combatant{Cards: cards}

	deckCard := c.Zone(game.LocationDeck)[0]
	assert.ErrorIs(t, Discard(c, deckCard.InstanceID), ErrCardNotInHand)
	assert.ErrorIs(t, Discard(c, "missing"), ErrCardNotInHand)

	drawn, _ := Draw(c, 1, 7)
	require.Len(t, drawn, 1)
	require.NoError(t, Discard(c, drawn[0].InstanceID))
	assert.Equal(t, 1, c.ZoneSize(game.LocationDiscard))
	assert.Zero(t, c.ZoneSize(game.LocationHand))
}

func TestMoveTo_AppendsToZoneTail(t *testing.T) {
	cat := testCatalog()
	cards, err := Build(cat, []string{"a", "b", "c"})
	require.NoError(t, err)
	c := &game.Combatant{Cards: cards}

	for _, ci := range c.Zone(game.LocationDeck) {
		MoveTo(c, ci, game.LocationDiscard)
	}
	pile := c.Zone(game.LocationDiscard)
	require.Len(t, pile, 3)
	assert.Equal(t, "a", pile[0].CardID)
	assert.Equal(t, "c", pile[2].CardID)
	assert.Zero(t, c.ZoneSize(game.LocationDeck))
}
