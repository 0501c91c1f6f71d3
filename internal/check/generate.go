package check

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// edgeValues sit on digit and word boundaries, where carries and borrows
// change length.
var edgeValues = []string{
	"0",
	"1",
	"2147483647",
	"2147483648",
	"4294967295",
	"4294967296",
	"4611686018427387903",
	"4611686018427387904",
	"9903520314283042199192993791",
	"9903520314283042199192993792",
}

type generator struct {
	rng       *rand.Rand
	maxDigits int
}

// decimal returns a literal of 1..maxDigits digits, sometimes an edge value
// and, with leadingZeros, sometimes zero-padded.
func (g *generator) decimal(leadingZeros bool) string {
	if g.rng.IntN(8) == 0 {
		return edgeValues[g.rng.IntN(len(edgeValues))]
	}
	n := 1 + g.rng.IntN(g.maxDigits)
	var sb strings.Builder
	sb.Grow(n + 3)
	if leadingZeros && g.rng.IntN(4) == 0 {
		sb.WriteString(strings.Repeat("0", 1+g.rng.IntN(3)))
	}
	sb.WriteByte(byte('1' + g.rng.IntN(9)))
	for i := 1; i < n; i++ {
		sb.WriteByte(byte('0' + g.rng.IntN(10)))
	}
	return sb.String()
}

// nonzero returns a literal that does not denote zero.
func (g *generator) nonzero() string {
	for {
		if s := g.decimal(false); strings.Trim(s, "0") != "" {
			return s
		}
	}
}

// shift returns a shift count that crosses a few digit boundaries.
func (g *generator) shift() string {
	return strconv.Itoa(g.rng.IntN(4 * 31))
}
