package engine

import (
	"strconv"

	"github.com/mkarval/brewduel/internal/deck"
	"github.com/mkarval/brewduel/internal/game"
)

// PlayCard is the main-phase action: it runs the legality gate, consumes any
// combination materials, relocates the played instance and resolves its
// effect against the resolved target. The whole call is one atomic mutation
// of the battle; a failed gate leaves the state untouched.
func (e *Engine) PlayCard(b *game.Battle, actorIdx int, instanceID, targetUUID string) (*EffectResult, error) {
	if b.Terminal() {
		return nil, ErrBattleAlreadyEnded
	}
	if len(b.Combatants) != 2 {
		return nil, ErrInvalidBattle
	}
	if actorIdx != b.ActiveIndex {
		return nil, ErrNotActiveCombatant
	}
	if b.Phase != game.PhaseMain {
		return failed(ReasonWrongPhase), nil
	}

	actor := b.Active()
	inst := actor.FindInstance(instanceID)
	if inst == nil || inst.Location != game.LocationHand {
		return failed(ReasonCardNotInHand), nil
	}
	card, ok := e.cat.Lookup(inst.CardID)
	if !ok {
		// instances are only ever built from the catalog
		return nil, deck.ErrUnknownCard
	}

	if !requirementsSatisfiable(actor, card, inst.InstanceID) {
		return failed(ReasonInsufficientMaterials), nil
	}

	target, reason, err := e.resolveTarget(b, actorIdx, card, targetUUID)
	if err != nil {
		return nil, err
	}
	if reason != ReasonNone {
		return failed(reason), nil
	}
	if card.Effect.Kind == game.EffectSteal && target.ZoneSize(game.LocationHand) == 0 {
		return failed(ReasonNoCardsToSteal), nil
	}

	bc := e.ctx(b)
	consumeMaterials(bc, actor, card, inst.InstanceID)

	// The played card leaves the hand before its effect resolves so a
	// reshuffle never returns it to the deck. Materials stay in play;
	// everything else goes to the discard pile.
	if card.Category == game.CategoryMaterial {
		deck.MoveTo(actor, inst, game.LocationInPlay)
	} else {
		deck.MoveTo(actor, inst, game.LocationDiscard)
	}

	res := bc.resolveEffect(actor, target, card)
	res.CardID = card.ID
	res.Kind = card.Effect.Kind
	if target != nil {
		res.Target = target.PlayerUUID
	}
	bc.checkHealthSettlement()
	return res, nil
}

// requirementsSatisfiable counts the actor's hand by card id (excluding the
// played instance itself) against the card's combination requirement.
func requirementsSatisfiable(actor *game.Combatant, card game.Card, playedInstanceID string) bool {
	if len(card.Requires) == 0 {
		return true
	}
	counts := make(map[string]int)
	for i := range actor.Cards {
		ci := &actor.Cards[i]
		if ci.Location != game.LocationHand || ci.InstanceID == playedInstanceID {
			continue
		}
		counts[ci.CardID]++
	}
	for _, req := range card.Requires {
		if counts[req.CardID] < req.Count {
			return false
		}
	}
	return true
}

// consumeMaterials discards the required material instances. Callers check
// satisfiability first, so this always finds enough copies.
func consumeMaterials(bc *battleContext, actor *game.Combatant, card game.Card, playedInstanceID string) {
	for _, req := range card.Requires {
		need := req.Count
		for i := range actor.Cards {
			if need == 0 {
				break
			}
			ci := &actor.Cards[i]
			if ci.Location != game.LocationHand || ci.InstanceID == playedInstanceID || ci.CardID != req.CardID {
				continue
			}
			deck.MoveTo(actor, ci, game.LocationDiscard)
			need--
		}
		bc.addf(actor.PlayerName, " consumes ", strconv.Itoa(req.Count), "x ", bc.e.cat.MustLookup(req.CardID).Name)
	}
}

// resolveTarget applies the card's target rule. A missing explicit target
// for an "any" card is an expected no-legal-target outcome; a named target
// that is not in the battle is a caller bug.
func (e *Engine) resolveTarget(b *game.Battle, actorIdx int, card game.Card, targetUUID string) (*game.Combatant, Reason, error) {
	rule := card.Target
	if rule == "" {
		rule = defaultTargetRule(card.Effect.Kind)
	}
	switch rule {
	case game.TargetSelf:
		return &b.Combatants[actorIdx], ReasonNone, nil
	case game.TargetOpponent:
		return b.Opponent(actorIdx), ReasonNone, nil
	case game.TargetRandom:
		return &b.Combatants[e.rng.Intn(2)], ReasonNone, nil
	case game.TargetAny:
		if targetUUID == "" {
			return nil, ReasonNoLegalTarget, nil
		}
		t, _ := b.CombatantByUUID(targetUUID)
		if t == nil {
			return nil, ReasonNone, ErrNoSuchTarget
		}
		return t, ReasonNone, nil
	default:
		return b.Opponent(actorIdx), ReasonNone, nil
	}
}

// defaultTargetRule picks the natural target for cards whose definition
// omits one: hostile effects aim at the opponent, the rest at the player.
func defaultTargetRule(kind game.EffectKind) game.TargetRule {
	switch kind {
	case game.EffectDamage, game.EffectStatus, game.EffectSteal, game.EffectPeek:
		return game.TargetOpponent
	default:
		return game.TargetSelf
	}
}

// resolveEffect is the single dispatch point for the closed set of effect
// kinds. Every branch mutates the battle exactly once and reports what
// changed in the result.
func (bc *battleContext) resolveEffect(actor, target *game.Combatant, card game.Card) *EffectResult {
	spec := card.Effect
	res := &EffectResult{Applied: true}
	switch spec.Kind {
	case game.EffectDamage:
		amount := outgoingDamage(actor, spec.Amount)
		absorbed, dealt := applyDamage(target, amount)
		res.DamageDealt = dealt
		res.ShieldAbsorb = absorbed
		bc.addf(actor.PlayerName, " plays ", card.Name, ": ", strconv.Itoa(dealt), " damage to ", target.PlayerName,
			shieldTag(absorbed))
		if pct := reflectionPercent(target); pct > 0 && target != actor {
			reflected := (absorbed + dealt) * pct / 100
			if reflected > 0 {
				applyDamage(actor, reflected)
				res.Reflected = reflected
				bc.addf(target.PlayerName, " reflects ", strconv.Itoa(reflected), " damage back")
			}
		}

	case game.EffectHeal:
		res.Healed = applyHeal(target, spec.Amount)
		bc.addf(actor.PlayerName, " plays ", card.Name, ": ", target.PlayerName, " heals ", strconv.Itoa(res.Healed))

	case game.EffectShield:
		target.Shield += spec.Amount
		res.ShieldAdded = spec.Amount
		bc.addf(actor.PlayerName, " plays ", card.Name, ": ", target.PlayerName, " gains ", strconv.Itoa(spec.Amount), " shield")

	case game.EffectStatus:
		res.StatusApplied = spec.Status
		res.StatusReplaced = attachStatus(target, spec.Status, spec.Magnitude, spec.Duration, spec.Unique)
		bc.addf(actor.PlayerName, " plays ", card.Name, ": ", string(spec.Status), " on ", target.PlayerName,
			" for ", strconv.Itoa(spec.Duration), " turn(s)")

	case game.EffectSteal:
		// PlayCard rejects steals against an empty hand before the card
		// leaves the actor's hand, so a pick is always available here.
		res.StolenInstance = bc.stealRandomCard(actor, target)
		bc.addf(actor.PlayerName, " plays ", card.Name, " and steals a card from ", target.PlayerName)

	case game.EffectPeek:
		n := spec.Amount
		if n <= 0 {
			n = 1
		}
		top := target.Zone(game.LocationDeck)
		for i := 0; i < len(top) && i < n; i++ {
			res.PeekedCards = append(res.PeekedCards, top[i].CardID)
		}
		bc.addf(actor.PlayerName, " plays ", card.Name, " and peeks at ", strconv.Itoa(len(res.PeekedCards)), " card(s)")

	case game.EffectReshuffle:
		for _, ci := range target.Zone(game.LocationHand) {
			deck.MoveTo(target, ci, game.LocationDeck)
		}
		deck.Shuffle(target, bc.e.rng)
		drawn, _ := deck.Draw(target, bc.b.HandLimit, bc.b.HandLimit)
		res.CardsDrawn = len(drawn)
		bc.addf(actor.PlayerName, " plays ", card.Name, ": ", target.PlayerName, " reshuffles and draws ", strconv.Itoa(len(drawn)))

	case game.EffectExtraTurn:
		n := spec.Amount
		if n <= 0 {
			n = 1
		}
		target.ExtraTurns += n
		res.ExtraTurns = n
		bc.addf(actor.PlayerName, " plays ", card.Name, ": ", target.PlayerName, " gains ", strconv.Itoa(n), " extra turn(s)")

	case game.EffectGather:
		if actor.MaterialCounts == nil {
			actor.MaterialCounts = game.MaterialCounter{}
		}
		actor.MaterialCounts[card.ID]++
		bc.addf(actor.PlayerName, " sets ", card.Name, " on the table")

	default:
		bc.addf(actor.PlayerName, " plays ", card.Name)
	}
	return res
}

// stealRandomCard removes one uniformly random instance from the target's
// hand and appends it to the actor's hand, transferring ownership. Returns
// the instance id, or "" when the target's hand is empty.
func (bc *battleContext) stealRandomCard(actor, target *game.Combatant) string {
	hand := target.Zone(game.LocationHand)
	if len(hand) == 0 {
		return ""
	}
	pick := hand[bc.e.rng.Intn(len(hand))]
	taken := *pick
	for i := range target.Cards {
		if target.Cards[i].InstanceID == taken.InstanceID {
			target.Cards = append(target.Cards[:i], target.Cards[i+1:]...)
			break
		}
	}
	taken.CombatantID = actor.ID
	taken.Location = game.LocationHand
	actor.Cards = append(actor.Cards, taken)
	moved := actor.FindInstance(taken.InstanceID)
	deck.MoveTo(actor, moved, game.LocationHand)
	return taken.InstanceID
}

func shieldTag(absorbed int) string {
	if absorbed > 0 {
		return " (" + strconv.Itoa(absorbed) + " absorbed by shield)"
	}
	return ""
}
