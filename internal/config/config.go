package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mkarval/brewduel/internal/game"
)

type cardEntry struct {
	ID       string                     `json:"id"`
	Name     string                     `json:"name"`
	Category string                     `json:"category"`
	Rarity   string                     `json:"rarity"`
	Effect   game.EffectSpec            `json:"effect"`
	Target   string                     `json:"target"`
	Requires []game.MaterialRequirement `json:"requires"`
}

type rawConfig struct {
	CardList []cardEntry `json:"card_list"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	Battle *struct {
		StartingHealth     int `json:"starting_health"`
		HandLimit          int `json:"hand_limit"`
		StartingHandSize   int `json:"starting_hand_size"`
		MaxRounds          int `json:"max_rounds"`
		TurnTimeoutSeconds int `json:"turn_timeout_seconds"`
	} `json:"battle"`
	Rewards *struct {
		WinGold        int `json:"win_gold"`
		WinExperience  int `json:"win_experience"`
		WinReputation  int `json:"win_reputation"`
		LossExperience int `json:"loss_experience"`
		DrawGold       int `json:"draw_gold"`
		RatingStake    int `json:"rating_stake"`
	} `json:"rewards"`
	// Path to the YAML deck-list file, relative to the working directory.
	DeckListPath string `json:"deck_list_path"`
}

// BattleSettings are the tunable rule parameters applied to every battle.
type BattleSettings struct {
	StartingHealth   int
	HandLimit        int
	StartingHandSize int
	MaxRounds        int
	TurnTimeout      time.Duration
}

// RewardTable holds the base payouts used by settlement.
type RewardTable struct {
	WinGold        int
	WinExperience  int
	WinReputation  int
	LossExperience int
	DrawGold       int
	RatingStake    int
}

// LoadedConfig contains the card definitions to seed the catalog with and
// the server parameters to run under.
type LoadedConfig struct {
	Cards         []game.Card
	ServerAddress string
	Battle        BattleSettings
	Rewards       RewardTable
	DeckListPath  string
}

var validStatusKinds = map[game.StatusKind]struct{}{
	game.StatusPoison:           {},
	game.StatusDamageMultiplier: {},
	game.StatusDamageReflection: {},
}

var validEffectKinds = map[game.EffectKind]struct{}{
	game.EffectDamage:    {},
	game.EffectHeal:      {},
	game.EffectShield:    {},
	game.EffectStatus:    {},
	game.EffectSteal:     {},
	game.EffectPeek:      {},
	game.EffectReshuffle: {},
	game.EffectExtraTurn: {},
	game.EffectGather:    {},
}

// LoadConfig reads the configuration file at path and returns the card set,
// battle settings and server address. It requires the key `card_list`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide a 'card_list' array)", path)
	}

	out := make([]game.Card, 0, len(rc.CardList))
	for _, e := range rc.CardList {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'id'", path)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: card '%s' missing 'name'", path, e.ID)
		}
		out = append(out, game.Card{
			ID:       e.ID,
			Name:     e.Name,
			Category: game.Category(e.Category),
			Rarity:   game.Rarity(e.Rarity),
			Effect:   e.Effect,
			Target:   game.TargetRule(e.Target),
			Requires: e.Requires,
		})
	}

	if err := validateCards(path, out); err != nil {
		return nil, err
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	bs := BattleSettings{
		StartingHealth:   100,
		HandLimit:        7,
		StartingHandSize: 4,
		MaxRounds:        12,
		TurnTimeout:      45 * time.Second,
	}
	if rc.Battle != nil {
		if rc.Battle.StartingHealth > 0 {
			bs.StartingHealth = rc.Battle.StartingHealth
		}
		if rc.Battle.HandLimit > 0 {
			bs.HandLimit = rc.Battle.HandLimit
		}
		if rc.Battle.StartingHandSize > 0 {
			bs.StartingHandSize = rc.Battle.StartingHandSize
		}
		if rc.Battle.MaxRounds > 0 {
			bs.MaxRounds = rc.Battle.MaxRounds
		}
		if rc.Battle.TurnTimeoutSeconds > 0 {
			bs.TurnTimeout = time.Duration(rc.Battle.TurnTimeoutSeconds) * time.Second
		}
	}

	rt := RewardTable{
		WinGold:        50,
		WinExperience:  100,
		WinReputation:  5,
		LossExperience: 25,
		DrawGold:       10,
		RatingStake:    16,
	}
	if rc.Rewards != nil {
		if rc.Rewards.WinGold > 0 {
			rt.WinGold = rc.Rewards.WinGold
		}
		if rc.Rewards.WinExperience > 0 {
			rt.WinExperience = rc.Rewards.WinExperience
		}
		if rc.Rewards.WinReputation > 0 {
			rt.WinReputation = rc.Rewards.WinReputation
		}
		if rc.Rewards.LossExperience > 0 {
			rt.LossExperience = rc.Rewards.LossExperience
		}
		if rc.Rewards.DrawGold > 0 {
			rt.DrawGold = rc.Rewards.DrawGold
		}
		if rc.Rewards.RatingStake > 0 {
			rt.RatingStake = rc.Rewards.RatingStake
		}
	}

	deckPath := rc.DeckListPath
	if deckPath == "" {
		deckPath = "./decks.yaml"
	}

	return &LoadedConfig{
		Cards:         out,
		ServerAddress: addr,
		Battle:        bs,
		Rewards:       rt,
		DeckListPath:  deckPath,
	}, nil
}

// validateCards performs cross-entry validation: unique ids, known
// categories, known effect and status kinds, and combination requirements
// that reference existing material cards with positive counts.
func validateCards(path string, cards []game.Card) error {
	byID := make(map[string]game.Card, len(cards))
	for _, c := range cards {
		lid := strings.ToLower(c.ID)
		if _, exists := byID[lid]; exists {
			return fmt.Errorf("config file %s: duplicate card id '%s'", path, c.ID)
		}
		byID[lid] = c
	}
	for _, c := range cards {
		switch c.Category {
		case game.CategoryMaterial, game.CategoryItem, game.CategorySpecial:
		default:
			return fmt.Errorf("config file %s: card '%s' has unknown category '%s'", path, c.ID, c.Category)
		}
		if c.Effect.Kind != game.EffectNone {
			if _, ok := validEffectKinds[c.Effect.Kind]; !ok {
				return fmt.Errorf("config file %s: card '%s' has unknown effect kind '%s'", path, c.ID, c.Effect.Kind)
			}
		}
		if c.Effect.Kind == game.EffectStatus {
			if _, ok := validStatusKinds[c.Effect.Status]; !ok {
				return fmt.Errorf("config file %s: card '%s' has unknown status kind '%s'", path, c.ID, c.Effect.Status)
			}
			if c.Effect.Duration <= 0 {
				return fmt.Errorf("config file %s: card '%s' status effect requires a positive duration", path, c.ID)
			}
		}
		if len(c.Requires) > 0 && c.Category != game.CategorySpecial {
			return fmt.Errorf("config file %s: card '%s' has requirements but is not a special card", path, c.ID)
		}
		for _, req := range c.Requires {
			if req.Count <= 0 {
				return fmt.Errorf("config file %s: card '%s' requirement on '%s' must have a positive count", path, c.ID, req.CardID)
			}
			mat, ok := byID[strings.ToLower(req.CardID)]
			if !ok {
				return fmt.Errorf("config file %s: card '%s' requires unknown card '%s'", path, c.ID, req.CardID)
			}
			if mat.Category != game.CategoryMaterial {
				return fmt.Errorf("config file %s: card '%s' requires '%s' which is not a material", path, c.ID, req.CardID)
			}
		}
	}
	return nil
}
