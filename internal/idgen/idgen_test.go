package idgen

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateFormat(t *testing.T) {
	g := New()
	id := g.Generate(PrefixWarranty)
	assert.Regexp(t, regexp.MustCompile(`^WR-\d{8}-\d{3}$`), id)

	id = g.Generate(PrefixClaim)
	assert.Regexp(t, regexp.MustCompile(`^WC-\d{8}-\d{3}$`), id)
}

func TestGenerateUsesLastEightTimestampDigits(t *testing.T) {
	ts := time.UnixMilli(1717420800123)
	g := NewWithSource(fixedClock(ts), rand.NewSource(1))

	id := g.Generate(PrefixWarranty)
	require.Len(t, id, len("WR-")+8+len("-")+3)
	assert.Equal(t, "20800123", id[3:11])
}

func TestGenerateZeroPadsRandomSuffix(t *testing.T) {
	ts := time.UnixMilli(1717420800123)
	// Seed 42 yields a first Intn(1000) below 100, exercising the padding.
	g := NewWithSource(fixedClock(ts), rand.NewSource(42))

	seen := false
	for i := 0; i < 50; i++ {
		id := g.Generate(PrefixClaim)
		require.Regexp(t, regexp.MustCompile(`^WC-\d{8}-\d{3}$`), id)
		if id[12] == '0' {
			seen = true
		}
	}
	assert.True(t, seen, "expected at least one zero-padded suffix in 50 draws")
}
