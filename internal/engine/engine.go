// Package engine exposes the random engine: two independently locked
// generator tiers plus the distribution and geometric sampling operations
// built on their primitive draws.
//
// Integer ranges are 32-bit throughout: every derived value comes from a
// single unbiased 32-bit draw, matching the generators' raw output width.
package engine

import (
	"sync"

	"github.com/louisbranch/randomix/internal/rng"
)

// Tier selects which generator backs an operation. Callers pick per call:
// TierFast when determinism and speed matter, TierSecure when
// unpredictability does. The two tiers are never mixed within one
// operation.
type Tier int

const (
	// TierFast is the statistically sound, non-cryptographic PCG32 tier.
	TierFast Tier = iota
	// TierSecure is the ChaCha20 tier with automatic entropy reseeding.
	TierSecure
)

// String returns the tier name used in telemetry attributes.
func (t Tier) String() string {
	if t == TierSecure {
		return "secure"
	}
	return "fast"
}

// Config tunes engine construction. The zero value selects defaults:
// clock-seeded fast tier, entropy-seeded secure tier, 1 GiB reseed
// threshold.
type Config struct {
	// FastSeed seeds the fast tier; 0 selects a clock-based seed.
	FastSeed uint64 `env:"RANDOMIX_FAST_SEED"`
	// SecureSeed seeds the secure tier; 0 selects an entropy-based seed.
	SecureSeed uint64 `env:"RANDOMIX_SECURE_SEED"`
	// ReseedBytes is the output volume between automatic rekeys of the
	// secure tier; 0 selects rng.DefaultReseedBytes.
	ReseedBytes uint64 `env:"RANDOMIX_RESEED_BYTES"`
}

type guarded struct {
	mu  sync.Mutex
	src rng.Source
}

// Engine owns the two process-wide generator instances. Every operation
// locks the chosen tier's mutex for its full duration, so the draws of one
// logical operation never interleave with another caller's. The two locks
// are independent: fast-tier callers never block on secure-tier activity.
type Engine struct {
	fast    guarded
	secure  guarded
	chacha  *rng.ChaCha20
	metrics *metrics
}

// New builds an engine from cfg.
func New(cfg Config) *Engine {
	cc := rng.NewChaCha20(cfg.SecureSeed, cfg.ReseedBytes)
	e := &Engine{chacha: cc}
	e.metrics = newMetrics(func() int64 { return int64(cc.Reseeds()) })
	e.fast.src = rng.NewPCG32(cfg.FastSeed)
	e.secure.src = cc
	return e
}

// Seed explicitly reseeds one tier. A zero seed selects a fresh clock- or
// entropy-based seed, matching construction.
func (e *Engine) Seed(t Tier, seed uint64) {
	g := e.tier(t)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.src.Seed(seed)
}

// Close zeroes the secure tier's cipher state. The engine must not be
// used afterwards.
func (e *Engine) Close() {
	e.secure.mu.Lock()
	defer e.secure.mu.Unlock()
	e.chacha.Close()
}

func (e *Engine) tier(t Tier) *guarded {
	if t == TierSecure {
		return &e.secure
	}
	return &e.fast
}

// atomically runs fn against the tier's generator under that tier's lock
// and records the operation. All draws for one logical operation happen
// inside fn; nothing else in the engine touches generator state.
func (e *Engine) atomically(t Tier, op string, fn func(src rng.Source)) {
	g := e.tier(t)
	g.mu.Lock()
	fn(g.src)
	g.mu.Unlock()
	e.metrics.operation(t, op)
}

// Uint32 returns a raw 32-bit draw from the chosen tier.
func (e *Engine) Uint32(t Tier) uint32 {
	var v uint32
	e.atomically(t, "uint32", func(src rng.Source) {
		v = src.Uint32()
	})
	return v
}

// Float32 returns a uniform value in [0, 1) from the chosen tier.
func (e *Engine) Float32(t Tier) float32 {
	var v float32
	e.atomically(t, "float32", func(src rng.Source) {
		v = src.Float32()
	})
	return v
}

// Bounded returns a uniform value in [0, bound) from the chosen tier. A
// zero bound returns zero.
func (e *Engine) Bounded(t Tier, bound uint32) uint32 {
	var v uint32
	e.atomically(t, "bounded", func(src rng.Source) {
		v = src.Bounded(bound)
	})
	return v
}
