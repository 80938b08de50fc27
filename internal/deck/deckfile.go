package deck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkarval/brewduel/internal/catalog"
	"github.com/mkarval/brewduel/internal/keys"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single named deck list in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card id and its count in a deck list.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// Lists holds the parsed deck lists keyed by normalized name.
type Lists struct {
	byName map[string][]string
	names  []string
}

// ParseDeckFile parses a YAML deck-list file and expands each list into a
// flat slice of card ids, validated against the catalog.
func ParseDeckFile(path string, cat *catalog.Catalog) (*Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	if len(df.Decks) == 0 {
		return nil, fmt.Errorf("deck file %s: no decks defined", path)
	}

	ls := &Lists{byName: make(map[string][]string, len(df.Decks))}
	for _, d := range df.Decks {
		if d.Name == "" {
			return nil, fmt.Errorf("deck file %s: deck missing 'name'", path)
		}
		var ids []string
		for _, entry := range d.Cards {
			if _, ok := cat.Lookup(entry.ID); !ok {
				return nil, fmt.Errorf("deck file %s: deck '%s' references unknown card '%s'", path, d.Name, entry.ID)
			}
			if entry.Count <= 0 {
				return nil, fmt.Errorf("deck file %s: deck '%s' card '%s' needs a positive count", path, d.Name, entry.ID)
			}
			for i := 0; i < entry.Count; i++ {
				ids = append(ids, entry.ID)
			}
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("deck file %s: deck '%s' is empty", path, d.Name)
		}
		key := keys.Normalize(d.Name)
		if _, exists := ls.byName[key]; exists {
			return nil, fmt.Errorf("deck file %s: duplicate deck name '%s'", path, d.Name)
		}
		ls.byName[key] = ids
		ls.names = append(ls.names, d.Name)
	}
	return ls, nil
}

// Names returns the deck-list names in file order.
func (l *Lists) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Get returns the expanded card ids for a deck-list name (case-insensitive).
func (l *Lists) Get(name string) ([]string, bool) {
	ids, ok := l.byName[keys.Normalize(name)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, true
}

// Default returns the first deck list in the file.
func (l *Lists) Default() []string {
	if len(l.names) == 0 {
		return nil
	}
	ids, _ := l.Get(l.names[0])
	return ids
}
