package deck

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mkarval/brewduel/internal/catalog"
	"github.com/mkarval/brewduel/internal/game"
)

var (
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrInsufficientCards = errors.New("insufficient cards in deck")
	ErrUnknownCard       = errors.New("unknown card id")
)

// Build creates fresh card instances for the given card ids, all placed in
// the deck zone in list order. Each instance gets its own uuid.
func Build(cat *catalog.Catalog, cardIDs []string) ([]game.CardInstance, error) {
	out := make([]game.CardInstance, 0, len(cardIDs))
	for i, id := range cardIDs {
		card, ok := cat.Lookup(id)
		if !ok {
			return nil, ErrUnknownCard
		}
		out = append(out, game.CardInstance{
			InstanceID: uuid.NewString(),
			CardID:     card.ID,
			Location:   game.LocationDeck,
			Position:   i,
		})
	}
	return out, nil
}

// Shuffle produces a uniformly random permutation of the combatant's deck
// zone (Fisher-Yates over the zone positions). Other zones are untouched.
func Shuffle(c *game.Combatant, rng *rand.Rand) {
	zone := c.Zone(game.LocationDeck)
	for i := len(zone) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		zone[i].Position, zone[j].Position = zone[j].Position, zone[i].Position
	}
}

// nextPosition returns a position one past the current tail of the zone.
func nextPosition(c *game.Combatant, loc game.Location) int {
	max := -1
	for i := range c.Cards {
		if c.Cards[i].Location == loc && c.Cards[i].Position > max {
			max = c.Cards[i].Position
		}
	}
	return max + 1
}

// MoveTo atomically relocates an instance to the tail of the given zone.
// The instance is never duplicated or dropped: it simply changes location.
func MoveTo(c *game.Combatant, inst *game.CardInstance, loc game.Location) {
	inst.Position = nextPosition(c, loc)
	inst.Location = loc
}

// Draw moves up to count cards from the head of the deck to the tail of the
// hand, additionally capped by the hand limit headroom. It returns the drawn
// instances and the shortfall versus the requested count. Partial draws down
// to zero are valid; Draw never fails.
func Draw(c *game.Combatant, count, handLimit int) (drawn []*game.CardInstance, shortfall int) {
	if count < 0 {
		count = 0
	}
	headroom := handLimit - c.ZoneSize(game.LocationHand)
	if headroom < 0 {
		headroom = 0
	}
	n := count
	if headroom < n {
		n = headroom
	}
	deckCards := c.Zone(game.LocationDeck)
	if len(deckCards) < n {
		n = len(deckCards)
	}
	for i := 0; i < n; i++ {
		MoveTo(c, deckCards[i], game.LocationHand)
		drawn = append(drawn, deckCards[i])
	}
	return drawn, count - n
}

// DrawExactly draws count cards and fails with ErrInsufficientCards when the
// deck cannot supply them. Used when a caller requires a minimum (e.g. the
// opening hand); nothing is moved on failure.
func DrawExactly(c *game.Combatant, count, handLimit int) ([]*game.CardInstance, error) {
	if c.ZoneSize(game.LocationDeck) < count {
		return nil, ErrInsufficientCards
	}
	drawn, short := Draw(c, count, handLimit)
	if short > 0 {
		return nil, ErrInsufficientCards
	}
	return drawn, nil
}

// Discard moves the identified instance from the hand to the tail of the
// discard pile. Fails with ErrCardNotInHand when the instance is not
// currently in this combatant's hand.
func Discard(c *game.Combatant, instanceID string) error {
	inst := c.FindInstance(instanceID)
	if inst == nil || inst.Location != game.LocationHand {
		return ErrCardNotInHand
	}
	MoveTo(c, inst, game.LocationDiscard)
	return nil
}
