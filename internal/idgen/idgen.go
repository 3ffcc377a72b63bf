// Package idgen produces the short human-readable business identifiers
// printed on receipts and quoted by customers over the phone.
package idgen

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	// PrefixWarranty identifies warranty record IDs.
	PrefixWarranty = "WR"
	// PrefixClaim identifies warranty claim IDs.
	PrefixClaim = "WC"
)

// Generator builds identifiers of the form PREFIX-XXXXXXXX-XXX where the
// first block is the last eight digits of the current unix-millisecond
// timestamp and the second a zero-padded random suffix. Uniqueness is
// enforced by the database; callers retry on collision.
type Generator struct {
	mu  sync.Mutex
	now func() time.Time
	rng *rand.Rand
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return &Generator{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewWithSource returns a Generator with an injected clock and randomness
// source, for tests.
func NewWithSource(now func() time.Time, src rand.Source) *Generator {
	return &Generator{now: now, rng: rand.New(src)}
}

// Generate returns a fresh identifier with the given prefix.
func (g *Generator) Generate(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	millis := g.now().UnixMilli()
	stamp := fmt.Sprintf("%d", millis)
	if len(stamp) > 8 {
		stamp = stamp[len(stamp)-8:]
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, stamp, g.rng.Intn(1000))
}
