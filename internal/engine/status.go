package engine

import (
	"strconv"

	"github.com/mkarval/brewduel/internal/game"
)

// applyDamage routes one damage instance through the shield-then-health
// pipeline: the shield absorbs first, overflow hits health, health never
// drops below zero and the shield never goes negative.
func applyDamage(t *game.Combatant, amount int) (absorbed, dealt int) {
	if amount <= 0 {
		return 0, 0
	}
	absorbed = minInt(t.Shield, amount)
	t.Shield -= absorbed
	dealt = amount - absorbed
	t.Health -= dealt
	if t.Health < 0 {
		t.Health = 0
	}
	return absorbed, dealt
}

// applyHeal raises health, clamped to the combatant's maximum.
func applyHeal(t *game.Combatant, amount int) int {
	if amount <= 0 {
		return 0
	}
	healed := minInt(amount, t.MaxHealth-t.Health)
	t.Health += healed
	return healed
}

// outgoingDamage scales a base amount by the attacker's active
// damage_multiplier statuses. Each stack contributes its magnitude as a
// percentage bonus.
func outgoingDamage(attacker *game.Combatant, base int) int {
	bonus := 0
	for i := range attacker.StatusEffects {
		if attacker.StatusEffects[i].Kind == game.StatusDamageMultiplier {
			bonus += attacker.StatusEffects[i].Magnitude
		}
	}
	if bonus == 0 {
		return base
	}
	out := base * (100 + bonus) / 100
	if out < 0 {
		out = 0
	}
	return out
}

// reflectionPercent sums the target's active damage_reflection magnitudes.
func reflectionPercent(t *game.Combatant) int {
	pct := 0
	for i := range t.StatusEffects {
		if t.StatusEffects[i].Kind == game.StatusDamageReflection {
			pct += t.StatusEffects[i].Magnitude
		}
	}
	return pct
}

// attachStatus appends a new status effect, or replaces the existing one of
// the same kind when the definition marks it unique.
func attachStatus(t *game.Combatant, kind game.StatusKind, magnitude, duration int, unique bool) (replaced bool) {
	if unique {
		for i := range t.StatusEffects {
			if t.StatusEffects[i].Kind == kind {
				t.StatusEffects[i].Magnitude = magnitude
				t.StatusEffects[i].Remaining = duration
				t.StatusEffects[i].Unique = true
				return true
			}
		}
	}
	t.StatusEffects = append(t.StatusEffects, game.StatusEffect{
		Kind:      kind,
		Magnitude: magnitude,
		Remaining: duration,
		Unique:    unique,
	})
	return false
}

// tickStatuses runs at the start of the owning combatant's turn, uniformly:
// poison deals its magnitude through the damage pipeline, every effect's
// remaining duration is decremented exactly once, and expired effects are
// removed the instant they reach zero.
func (bc *battleContext) tickStatuses(c *game.Combatant) {
	kept := c.StatusEffects[:0]
	for i := range c.StatusEffects {
		se := c.StatusEffects[i]
		if se.Kind == game.StatusPoison {
			absorbed, dealt := applyDamage(c, se.Magnitude)
			bc.addf(c.PlayerName, " suffers ", strconv.Itoa(absorbed+dealt), " poison damage")
		}
		se.Remaining--
		if se.Remaining > 0 {
			kept = append(kept, se)
		} else {
			bc.addf(c.PlayerName, "'s ", string(se.Kind), " wears off")
		}
	}
	c.StatusEffects = kept
}
