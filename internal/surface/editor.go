package surface

import (
	"math"
	"sync"

	"planetsynth/internal/prompt"
	"planetsynth/pkg/core"
	"planetsynth/pkg/params"
)

// Editor owns the live parameter vector. Every mutation stores a complete,
// validated vector and bumps the generation counter; readers take snapshots
// and never observe a half-applied edit.
type Editor struct {
	mu         sync.RWMutex
	vec        params.Vector
	gen        uint64
	rng        *core.RNG
	translator prompt.Translator

	watchMu  sync.Mutex
	watchers map[int]chan uint64
	nextID   int
}

// NewEditor starts from initial merged over defaults. A nil translator falls
// back to the keyword table; a nil rng uses the global source.
func NewEditor(initial params.Vector, rng *core.RNG, tr prompt.Translator) *Editor {
	if tr == nil {
		tr = prompt.NewKeywords(rng)
	}
	return &Editor{
		vec:        params.Merge(params.DefaultsWith(rng), initial),
		rng:        rng,
		translator: tr,
		watchers:   make(map[int]chan uint64),
	}
}

// Name reports the preset the vector came from, or "custom".
func (e *Editor) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if wt := e.vec.Text(params.KeyWorldType); wt != "" {
		return wt
	}
	return "custom"
}

// Vector returns a copy of the current vector.
func (e *Editor) Vector() params.Vector {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vec.Clone()
}

// Planet returns the typed snapshot of the current vector.
func (e *Editor) Planet() params.Planet {
	p, _ := e.Snapshot()
	return p
}

// Snapshot returns the typed parameters together with the generation they
// belong to.
func (e *Editor) Snapshot() (params.Planet, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return params.Resolve(e.vec), e.gen
}

// Generation returns the edit counter.
func (e *Editor) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gen
}

// Set merges overrides into the current vector.
func (e *Editor) Set(overrides params.Vector) uint64 {
	return e.update(func(cur params.Vector) params.Vector {
		return params.Merge(cur, overrides)
	})
}

// SetFloatParameter updates one numeric schema field. It returns false for
// unknown or non-numeric keys.
func (e *Editor) SetFloatParameter(key string, value float64) bool {
	s, ok := params.Lookup(key)
	if !ok || s.Kind != params.KindNumber {
		return false
	}
	e.Set(params.Vector{key: params.Number(value)})
	return true
}

// SetIntParameter updates an integer schema field.
func (e *Editor) SetIntParameter(key string, value int) bool {
	return e.SetFloatParameter(key, float64(value))
}

// SetColor updates a color field. Malformed hex is stored as given and read
// back as the fallback color.
func (e *Editor) SetColor(key, hex string) bool {
	s, ok := params.Lookup(key)
	if !ok || s.Kind != params.KindString {
		return false
	}
	e.Set(params.Vector{key: params.Text(hex)})
	return true
}

// ApplyPreset replaces the vector with the named preset over fresh defaults.
// Unknown names leave the vector and generation untouched.
func (e *Editor) ApplyPreset(name string) bool {
	e.mu.Lock()
	next, ok := params.ApplyPresetWith(e.rng, e.vec, name)
	if !ok {
		e.mu.Unlock()
		return false
	}
	e.vec = next
	e.gen++
	gen := e.gen
	e.mu.Unlock()
	e.notify(gen)
	return true
}

// ApplyPrompt translates text and merges the result over fresh defaults. It
// returns the keywords that matched.
func (e *Editor) ApplyPrompt(text string) []string {
	partial := e.translator.Translate(text)
	e.update(func(params.Vector) params.Vector {
		return params.Merge(params.DefaultsWith(e.rng), partial)
	})
	return prompt.Matches(text)
}

// Reseed draws a new seed different from the current one and returns it.
func (e *Editor) Reseed() float64 {
	var seed float64
	e.update(func(cur params.Vector) params.Vector {
		prev := cur.Float(params.KeySeed)
		seed = e.rng.Seed()
		for i := 0; i < 8 && seed == prev; i++ {
			seed = e.rng.Seed()
		}
		next := cur.Clone()
		next.Set(params.KeySeed, seed)
		return next
	})
	return seed
}

// Reset restores schema defaults with a fresh seed.
func (e *Editor) Reset() {
	e.update(func(params.Vector) params.Vector {
		return params.DefaultsWith(e.rng)
	})
}

// Nudge adds delta to a numeric field; the result is clamped to the schema.
func (e *Editor) Nudge(key string, delta float64) bool {
	s, ok := params.Lookup(key)
	if !ok || s.Kind != params.KindNumber || math.IsNaN(delta) {
		return false
	}
	e.update(func(cur params.Vector) params.Vector {
		return params.Merge(cur, params.Vector{key: params.Number(cur.Float(key) + delta)})
	})
	return true
}

func (e *Editor) update(fn func(params.Vector) params.Vector) uint64 {
	e.mu.Lock()
	e.vec = params.Validate(fn(e.vec.Clone()))
	e.gen++
	gen := e.gen
	e.mu.Unlock()
	e.notify(gen)
	return gen
}

// Watch returns a channel that receives the latest generation after each
// edit. Slow readers only ever see the newest value. The returned func
// stops the subscription and closes the channel.
func (e *Editor) Watch() (<-chan uint64, func()) {
	ch := make(chan uint64, 1)
	e.watchMu.Lock()
	id := e.nextID
	e.nextID++
	e.watchers[id] = ch
	e.watchMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.watchMu.Lock()
			delete(e.watchers, id)
			e.watchMu.Unlock()
			close(ch)
		})
	}
}

func (e *Editor) notify(gen uint64) {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()
	for _, ch := range e.watchers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- gen:
		default:
		}
	}
}
