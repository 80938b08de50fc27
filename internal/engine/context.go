package engine

import (
	"math/rand"
	"strings"
	"time"

	"github.com/mkarval/brewduel/internal/catalog"
	"github.com/mkarval/brewduel/internal/game"
)

var zeroTime time.Time

// Engine is the single authoritative battle engine. All battle mutation goes
// through it; the API and renderers only ever read snapshots. It holds no
// per-battle state, so one engine serves every battle.
type Engine struct {
	cat *catalog.Catalog
	rng *rand.Rand
}

// New creates an engine over the given catalog. rng is the uniform random
// source used for shuffles, steals and random targeting; tests pass a seeded
// source.
func New(cat *catalog.Catalog, rng *rand.Rand) *Engine {
	return &Engine{cat: cat, rng: rng}
}

// battleContext carries one battle through a single engine operation and
// accumulates log lines.
type battleContext struct {
	e *Engine
	b *game.Battle
}

func (e *Engine) ctx(b *game.Battle) *battleContext {
	return &battleContext{e: e, b: b}
}

func (bc *battleContext) add(msg string) { bc.b.AppendLog(msg) }

func (bc *battleContext) addf(parts ...string) { bc.add(strings.Join(parts, "")) }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
