package api

import (
	"encoding/json"
	"math/rand"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mkarval/brewduel/internal/game"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// generateJoinCode creates a short alphanumeric code for joining battles.
func generateJoinCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

var joinCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeJoinCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// MarshalForContext marshals a battle-bearing value into JSON and redacts
// hidden information for the session player: deck order is hidden from
// everyone, and an opponent's hand contents and bluff posture are hidden
// from the requesting player. The engine state itself is never mutated.
func MarshalForContext(c *gin.Context, v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	currentUUID := ""
	if c != nil {
		if v, ok := c.Get(ctxPlayerUUID); ok {
			if s, _ := v.(string); s != "" {
				currentUUID = s
			}
		}
	}
	redactHidden(out, currentUUID)
	return out, nil
}

// redactHidden walks a marshalled JSON structure and blanks the card ids of
// face-down zones. For the session player's own combatant only the deck is
// hidden; for every other combatant the hand is hidden too, along with the
// is_bluffing flag (that is what detect is for).
func redactHidden(v interface{}, currentUUID string) {
	switch vv := v.(type) {
	case map[string]interface{}:
		if uuidVal, ok := vv["player_uuid"].(string); ok {
			if _, hasCards := vv["cards"]; hasCards {
				redactCombatant(vv, uuidVal == currentUUID && currentUUID != "")
				return
			}
		}
		for _, val := range vv {
			redactHidden(val, currentUUID)
		}
	case []interface{}:
		for i := range vv {
			redactHidden(vv[i], currentUUID)
		}
	}
}

func redactCombatant(m map[string]interface{}, own bool) {
	if !own {
		delete(m, "is_bluffing")
	}
	cards, _ := m["cards"].([]interface{})
	for _, cv := range cards {
		cm, ok := cv.(map[string]interface{})
		if !ok {
			continue
		}
		loc, _ := cm["location"].(string)
		hidden := loc == string(game.LocationDeck) || (!own && loc == string(game.LocationHand))
		if hidden {
			delete(cm, "card_id")
		}
	}
}
