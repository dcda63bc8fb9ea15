package versionbump

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

const alnum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-"

// generator produces random versions and labels for the algebraic tests.
// It is seeded so failures reproduce.
type generator struct {
	r *rand.Rand
}

func newGenerator(seed uint64) *generator {
	return &generator{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *generator) number() uint64 {
	switch g.r.IntN(4) {
	case 0:
		return 0
	case 1:
		return uint64(g.r.IntN(10))
	case 2:
		return uint64(g.r.IntN(1000))
	}
	return g.r.Uint64N(math.MaxUint64)
}

func (g *generator) segment() string {
	if g.r.IntN(2) == 0 {
		return strconv.FormatUint(g.number(), 10)
	}
	n := 1 + g.r.IntN(8)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alnum[g.r.IntN(len(alnum))])
	}
	// Guarantee a non-digit so the segment is alphanumeric and leading
	// zeros are allowed.
	b.WriteByte(alnum[g.r.IntN(52)])
	return b.String()
}

func (g *generator) label() string {
	n := 1 + g.r.IntN(4)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.segment()
	}
	return strings.Join(parts, ".")
}

func (g *generator) optionalLabel() string {
	if g.r.IntN(2) == 0 {
		return ""
	}
	return g.label()
}

func (g *generator) versionString() string {
	s := strconv.FormatUint(g.number(), 10) + "." +
		strconv.FormatUint(g.number(), 10) + "." +
		strconv.FormatUint(g.number(), 10)
	if pre := g.optionalLabel(); pre != "" {
		s += "-" + pre
	}
	if build := g.optionalLabel(); build != "" {
		s += "+" + build
	}
	return s
}

func (g *generator) version() Version {
	return MustParseVersion(g.versionString())
}
