package catalog

import (
	"fmt"
	"strings"

	"github.com/mkarval/brewduel/internal/game"
)

// Catalog is the immutable card catalog built from the configured card set.
// It is shared read-only across all battles.
type Catalog struct {
	byID    map[string]game.Card
	ordered []game.Card
}

// New builds a catalog from validated card definitions.
func New(cards []game.Card) *Catalog {
	c := &Catalog{
		byID:    make(map[string]game.Card, len(cards)),
		ordered: make([]game.Card, len(cards)),
	}
	copy(c.ordered, cards)
	for _, card := range cards {
		c.byID[strings.ToLower(card.ID)] = card
	}
	return c
}

// Lookup returns the card definition with the given id (case-insensitive).
func (c *Catalog) Lookup(id string) (game.Card, bool) {
	card, ok := c.byID[strings.ToLower(id)]
	return card, ok
}

// MustLookup is Lookup for ids already validated against the catalog.
func (c *Catalog) MustLookup(id string) game.Card {
	card, ok := c.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown card id %q", id))
	}
	return card
}

// List returns all card definitions in configuration order.
func (c *Catalog) List() []game.Card {
	out := make([]game.Card, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ByCategory returns the definitions of the given category in order.
func (c *Catalog) ByCategory(cat game.Category) []game.Card {
	out := make([]game.Card, 0, len(c.ordered))
	for _, card := range c.ordered {
		if card.Category == cat {
			out = append(out, card)
		}
	}
	return out
}

// Size reports the number of distinct card definitions.
func (c *Catalog) Size() int { return len(c.ordered) }
