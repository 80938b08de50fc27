package game

import (
	"time"

	"gorm.io/gorm"
)

// Location is the zone a card instance currently occupies. An instance is in
// exactly one location at a time; moving it between zones is atomic.
type Location string

const (
	LocationDeck    Location = "deck"
	LocationHand    Location = "hand"
	LocationInPlay  Location = "in_play"
	LocationDiscard Location = "discard"
	LocationExpired Location = "expired"
)

type Phase string

const (
	PhaseDraw Phase = "draw"
	PhaseMain Phase = "main"
	PhaseEnd  Phase = "end"
)

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// IntentType is the discrete set of player intents accepted by the service
// layer. Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type IntentType string

const (
	IntentDrawCard       IntentType = "draw_card"
	IntentPlayCard       IntentType = "play_card"
	IntentEndTurn        IntentType = "end_turn"
	IntentToggleBluff    IntentType = "toggle_bluff"
	IntentActivateDetect IntentType = "activate_detect"
	IntentForfeit        IntentType = "forfeit"
)

// CardInstance is a specific drawable/playable occurrence of a Card
// definition. Position orders instances within their zone (deck head has the
// smallest position; hands preserve insertion order for display).
type CardInstance struct {
	gorm.Model
	CombatantID uint     `json:"-"`
	InstanceID  string   `json:"instance_id" gorm:"index"`
	CardID      string   `json:"card_id"`
	Location    Location `json:"location"`
	Position    int      `json:"position"`
}

// StatusEffect is a timed modifier attached to a combatant. Remaining is
// strictly positive while the effect is active; it is decremented exactly
// once per owning combatant's turn (at turn start) and the row is removed
// the instant it reaches zero.
type StatusEffect struct {
	gorm.Model
	CombatantID uint       `json:"-"`
	Kind        StatusKind `json:"kind"`
	Magnitude   int        `json:"magnitude"`
	Remaining   int        `json:"remaining"`
	Unique      bool       `json:"unique"`
}

// MaterialCounter maps material card id -> non-negative count. Stored as a
// JSON column so the whole battle remains one reconstructible blob.
type MaterialCounter map[string]int

// Combatant is one battle participant. All fields are plain serializable
// data so an in-progress battle can be reconstructed from storage mid-turn.
type Combatant struct {
	gorm.Model
	BattleID   uint   `json:"-"`
	PlayerUUID string `json:"player_uuid"`
	PlayerName string `json:"player_name"`
	IsAI       bool   `json:"is_ai"`

	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	// Shield is an additive counter consumed before health on incoming
	// damage. It never goes negative.
	Shield int `json:"shield"`

	Cards          []CardInstance  `json:"cards"`
	MaterialCounts MaterialCounter `json:"material_counts" gorm:"serializer:json"`
	StatusEffects  []StatusEffect  `json:"status_effects"`

	ExtraTurns int `json:"extra_turns"`
	// CanBluff/IsBluffing reset at the start of every owning turn.
	CanBluff   bool `json:"can_bluff"`
	IsBluffing bool `json:"is_bluffing"`
}

// Store per-battle participants in a dedicated table for clarity
func (Combatant) TableName() string { return "battle_combatants" }

// Zone returns the combatant's card instances in the given location, ordered
// by position. The returned pointers alias the combatant's slice.
func (c *Combatant) Zone(loc Location) []*CardInstance {
	out := make([]*CardInstance, 0, len(c.Cards))
	for i := range c.Cards {
		if c.Cards[i].Location == loc {
			out = append(out, &c.Cards[i])
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Position > out[j].Position; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// ZoneSize reports how many instances occupy the given location.
func (c *Combatant) ZoneSize(loc Location) int {
	n := 0
	for i := range c.Cards {
		if c.Cards[i].Location == loc {
			n++
		}
	}
	return n
}

// FindInstance returns the card instance with the given instance id, or nil.
func (c *Combatant) FindInstance(instanceID string) *CardInstance {
	for i := range c.Cards {
		if c.Cards[i].InstanceID == instanceID {
			return &c.Cards[i]
		}
	}
	return nil
}

// LogEntry is one timestamped line of the append-only battle log.
type LogEntry struct {
	TS   time.Time `json:"ts"`
	Text string    `json:"text"`
}

type LogEntries []LogEntry

// Battle is the whole battle state. It is created with both combatants at
// max health and freshly shuffled decks, mutated only through the engine and
// the service layer, and becomes immutable once Status is finished.
type Battle struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:32"`
	Private  bool   `json:"private"`
	JoinCode string `json:"join_code" gorm:"unique"`

	Combatants []Combatant `json:"combatants"`

	TurnCount   int    `json:"turn_count"`
	ActiveIndex int    `json:"active_index"`
	Phase       Phase  `json:"phase"`
	Status      Status `json:"status"`

	// Winner is the winning combatant's player UUID; empty with IsDraw set
	// when the round cap is reached at equal health.
	Winner  string `json:"winner"`
	IsDraw  bool   `json:"is_draw"`
	Message string `json:"message"`

	Log LogEntries `json:"log" gorm:"serializer:json"`

	MaxRounds  int `json:"max_rounds"`
	HandLimit  int `json:"hand_limit"`
	Difficulty int `json:"difficulty"`

	// TurnDeadline bounds the active combatant's current phase; the scanner
	// forces the phase forward once it passes. Zero means no deadline.
	TurnDeadline time.Time `json:"turn_deadline"`

	// RewardsGranted guards settlement side effects so rewards are applied
	// exactly once even if settlement is re-entered.
	RewardsGranted bool `json:"-"`
}

// Active returns the combatant whose turn it is, or nil when the battle has
// fewer than two participants.
func (b *Battle) Active() *Combatant {
	if len(b.Combatants) != 2 || b.ActiveIndex < 0 || b.ActiveIndex > 1 {
		return nil
	}
	return &b.Combatants[b.ActiveIndex]
}

// Opponent returns the non-active combatant relative to index i.
func (b *Battle) Opponent(i int) *Combatant {
	if len(b.Combatants) != 2 {
		return nil
	}
	return &b.Combatants[1-i]
}

// CombatantByUUID returns the participant with the given player UUID along
// with its index, or (nil, -1).
func (b *Battle) CombatantByUUID(uuid string) (*Combatant, int) {
	for i := range b.Combatants {
		if b.Combatants[i].PlayerUUID == uuid {
			return &b.Combatants[i], i
		}
	}
	return nil, -1
}

// Terminal reports whether the battle has finished; terminal battles accept
// no further mutation.
func (b *Battle) Terminal() bool { return b.Status == StatusFinished }

// AppendLog records one battle-log line with the current wall-clock time.
func (b *Battle) AppendLog(text string) {
	b.Log = append(b.Log, LogEntry{TS: time.Now().UTC(), Text: text})
}

// MaterialDrop is a material id and count included in battle rewards.
type MaterialDrop struct {
	CardID string `json:"card_id"`
	Count  int    `json:"count"`
}

// Reward is the settlement payout reported to the progression layer. It is
// computed as a pure function of the battle result and the difficulty and
// streak inputs; the engine never mutates profiles directly.
type Reward struct {
	Gold        int            `json:"gold"`
	Experience  int            `json:"experience"`
	Reputation  int            `json:"reputation"`
	RatingDelta int            `json:"rating_delta"`
	Materials   []MaterialDrop `json:"materials"`
}

// PlayerProfile stores unique player identity and aggregate progression.
type PlayerProfile struct {
	gorm.Model
	PlayerUUID    string `json:"player_uuid" gorm:"uniqueIndex"`
	PlayerName    string `json:"player_name"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Draws         int    `json:"draws"`
	Forfeits      int    `json:"forfeits"`
	WinStreak     int    `json:"win_streak"`
	Rating        int    `json:"rating"`
	Gold          int    `json:"gold"`
	Experience    int    `json:"experience"`
	Reputation    int    `json:"reputation"`
}

// Unify the global profile table name as "player_profiles"
func (PlayerProfile) TableName() string { return "player_profiles" }
