package trade

import (
	"sort"
	"strings"

	"github.com/rbeiter/tw2002-client/internal/database"
)

// The game numbers the eight possible buy/sell codes 1-8. Fixed lookup, not
// derived from the letters.
var classNumbers = map[string]int{
	"BBS": 1, "BSB": 2, "SBB": 3, "SSB": 4,
	"SBS": 5, "BSS": 6, "SSS": 7, "BBB": 8,
}

// ClassNumber returns the game's class number for a 3-letter trade code, or
// 0 if the code is unknown.
func ClassNumber(class string) int {
	return classNumbers[class]
}

// Complement swaps buys for sells per position, leaving wildcards alone. A
// port matching the complement of a pattern trades back exactly what a port
// matching the pattern trades away.
func Complement(pattern string) string {
	var b strings.Builder
	for _, c := range pattern {
		switch c {
		case 'B':
			b.WriteRune('S')
		case 'S':
			b.WriteRune('B')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Matches reports whether a port's class satisfies a pattern over {B,S,?}.
func Matches(class, pattern string) bool {
	if len(class) != len(pattern) {
		return false
	}
	for i := range pattern {
		if pattern[i] != '?' && pattern[i] != class[i] {
			return false
		}
	}
	return true
}

// Pair is a candidate trade pair: two one-hop-adjacent ports with
// complementary stances on the commodities the caller cares about. A and B
// are ordered by sector number; the pair is unordered by identity.
type Pair struct {
	A, B database.Port

	// Scores sum both ports' figures over the non-wildcard commodity
	// positions only.
	PctScore int
	AmtScore int
}

func score(a, b database.Port, pattern string) (pctScore, amtScore int) {
	if pattern[0] != '?' {
		pctScore += a.OrePct + b.OrePct
		amtScore += a.OreAmt + b.OreAmt
	}
	if pattern[1] != '?' {
		pctScore += a.OrgPct + b.OrgPct
		amtScore += a.OrgAmt + b.OrgAmt
	}
	if pattern[2] != '?' {
		pctScore += a.EquPct + b.EquPct
		amtScore += a.EquAmt + b.EquAmt
	}
	return pctScore, amtScore
}

// FindPairs searches the store for adjacent complementary port pairs.
// Results are sorted ascending by percentage score, then amount score.
func FindPairs(store *database.Store, pattern string) ([]Pair, error) {
	pattern = strings.ToUpper(pattern)
	opposite := Complement(pattern)

	ports, err := store.Ports()
	if err != nil {
		return nil, err
	}

	bySector := make(map[int]database.Port, len(ports))
	for _, p := range ports {
		bySector[p.Sector] = p
	}

	// candidate pairs are unordered: {A,B} and {B,A} collapse to one key
	seen := make(map[[2]int]bool)
	var pairs []Pair
	for _, a := range ports {
		if !Matches(a.Class, pattern) {
			continue
		}
		warps, err := store.WarpsFrom(a.Sector)
		if err != nil {
			return nil, err
		}
		for _, dest := range warps {
			b, isPort := bySector[dest]
			if !isPort || !Matches(b.Class, opposite) {
				continue
			}

			key := [2]int{a.Sector, b.Sector}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			pair := Pair{A: bySector[key[0]], B: bySector[key[1]]}
			pair.PctScore, pair.AmtScore = score(pair.A, pair.B, pattern)
			pairs = append(pairs, pair)
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].PctScore != pairs[j].PctScore {
			return pairs[i].PctScore < pairs[j].PctScore
		}
		if pairs[i].AmtScore != pairs[j].AmtScore {
			return pairs[i].AmtScore < pairs[j].AmtScore
		}
		return pairs[i].A.Sector < pairs[j].A.Sector
	})

	return pairs, nil
}
