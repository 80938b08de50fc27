package engine

import (
	"errors"

	"github.com/mkarval/brewduel/internal/game"
)

// Contract violations. These indicate a caller bug (or a stale client acting
// on a battle it no longer controls) and are returned as plain errors.
var (
	ErrBattleAlreadyEnded = errors.New("battle has already ended")
	ErrNotActiveCombatant = errors.New("combatant is not the active turn owner")
	ErrNoSuchTarget       = errors.New("target combatant does not exist")
	ErrInvalidBattle      = errors.New("battle does not have two combatants")
)

// Reason tags an expected, non-fatal outcome. The UI renders these as
// "can't do that right now"; nothing here is a crash.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonWrongPhase            Reason = "WrongPhase"
	ReasonCardNotInHand         Reason = "CardNotInHand"
	ReasonInsufficientMaterials Reason = "InsufficientMaterials"
	ReasonNoLegalTarget         Reason = "NoLegalTarget"
	ReasonNoCardsToSteal        Reason = "NoCardsToSteal"
	ReasonDeckEmpty             Reason = "DeckEmpty"
	ReasonHandFull              Reason = "HandFull"
	ReasonBluffUnavailable      Reason = "BluffUnavailable"
)

// EffectResult is the structured outcome of one resolved effect or intent.
// It reports what changed and by how much for logging and animation hooks.
type EffectResult struct {
	Applied bool   `json:"applied"`
	Reason  Reason `json:"reason,omitempty"`

	CardID string          `json:"card_id,omitempty"`
	Kind   game.EffectKind `json:"kind,omitempty"`
	Target string          `json:"target,omitempty"`

	DamageDealt   int `json:"damage_dealt,omitempty"`
	ShieldAbsorb  int `json:"shield_absorbed,omitempty"`
	Reflected     int `json:"reflected,omitempty"`
	Healed        int `json:"healed,omitempty"`
	ShieldAdded   int `json:"shield_added,omitempty"`
	ExtraTurns    int `json:"extra_turns,omitempty"`
	CardsDrawn    int `json:"cards_drawn,omitempty"`
	DrawShortfall int `json:"draw_shortfall,omitempty"`

	StolenInstance string   `json:"stolen_instance,omitempty"`
	PeekedCards    []string `json:"peeked_cards,omitempty"`

	StatusApplied  game.StatusKind `json:"status_applied,omitempty"`
	StatusReplaced bool            `json:"status_replaced,omitempty"`
}

func failed(r Reason) *EffectResult { return &EffectResult{Applied: false, Reason: r} }

// DetectResult reports a detect check. It verifies the opponent's bluff flag
// and nothing else.
type DetectResult struct {
	WasBluffing bool `json:"was_bluffing"`
}
