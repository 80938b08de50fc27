package game

// Card categories. Material cards feed combination requirements, item cards
// carry a direct effect, special cards additionally require materials in hand.
type Category string

const (
	CategoryMaterial Category = "material"
	CategoryItem     Category = "item"
	CategorySpecial  Category = "special"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// TargetRule declares which combatant a card may be resolved against.
type TargetRule string

const (
	TargetSelf     TargetRule = "self"
	TargetOpponent TargetRule = "opponent"
	TargetAny      TargetRule = "any"
	TargetRandom   TargetRule = "random"
)

// EffectKind is the closed set of card effects. The engine dispatches on it
// in a single switch; callers never compare effect strings themselves.
type EffectKind string

const (
	EffectNone      EffectKind = ""
	EffectDamage    EffectKind = "damage"
	EffectHeal      EffectKind = "heal"
	EffectShield    EffectKind = "shield"
	EffectStatus    EffectKind = "status"
	EffectSteal     EffectKind = "steal"
	EffectPeek      EffectKind = "peek"
	EffectReshuffle EffectKind = "reshuffle"
	EffectExtraTurn EffectKind = "extra_turn"
	EffectGather    EffectKind = "gather"
)

// StatusKind identifies a timed modifier attached to a combatant.
type StatusKind string

const (
	StatusPoison           StatusKind = "poison"
	StatusDamageMultiplier StatusKind = "damage_multiplier"
	StatusDamageReflection StatusKind = "damage_reflection"
)

// EffectSpec is the machine-readable effect payload of a card definition.
// Amount carries the magnitude for damage/heal/shield, the card count for
// peek and the turn count for extra_turn. Status fields are only meaningful
// when Kind == EffectStatus.
type EffectSpec struct {
	Kind      EffectKind `json:"kind"`
	Amount    int        `json:"amount,omitempty"`
	Status    StatusKind `json:"status,omitempty"`
	Magnitude int        `json:"magnitude,omitempty"`
	Duration  int        `json:"duration,omitempty"`
	// Unique status kinds replace an existing instance of the same kind
	// instead of stacking alongside it.
	Unique bool `json:"unique,omitempty"`
}

// MaterialRequirement names a material card id and how many copies must be
// present in hand to play a special card. The copies are consumed on play.
type MaterialRequirement struct {
	CardID string `json:"card_id"`
	Count  int    `json:"count"`
}

// Card is an immutable definition loaded from the configuration file. It is
// never persisted; runtime state lives on CardInstance.
type Card struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Category Category              `json:"category"`
	Rarity   Rarity                `json:"rarity"`
	Effect   EffectSpec            `json:"effect"`
	Target   TargetRule            `json:"target,omitempty"`
	Requires []MaterialRequirement `json:"requires,omitempty"`
}
