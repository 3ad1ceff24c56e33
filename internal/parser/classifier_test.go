package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portLine(sector int, oreBS, orgBS, equBS string, amts, pcts [3]int) string {
	return fmt.Sprintf("%4d %s %4d %3d%% %s %4d %3d%% %s %4d %3d%%",
		sector, oreBS, amts[0], pcts[0], orgBS, amts[1], pcts[1], equBS, amts[2], pcts[2])
}

func TestParsePortList(t *testing.T) {
	line := portLine(234, "-", " ", "-", [3]int{1940, 410, 1720}, [3]int{97, 55, 87})

	op, ok := parsePortList(line)
	require.True(t, ok, "line %q should match", line)

	assert.Equal(t, 234, op.Port.Sector)
	assert.Equal(t, "BSB", op.Port.Class)
	assert.Equal(t, 1940, op.Port.OreAmt)
	assert.Equal(t, 97, op.Port.OrePct)
	assert.Equal(t, 410, op.Port.OrgAmt)
	assert.Equal(t, 55, op.Port.OrgPct)
	assert.Equal(t, 1720, op.Port.EquAmt)
	assert.Equal(t, 87, op.Port.EquPct)
}

func TestParsePortListClassCodes(t *testing.T) {
	tests := []struct {
		ore, org, equ string
		class         string
	}{
		{"-", "-", " ", "BBS"},
		{" ", " ", " ", "SSS"},
		{"-", "-", "-", "BBB"},
		{" ", "-", " ", "SBS"},
	}
	for _, tt := range tests {
		op, ok := parsePortList(portLine(1, tt.ore, tt.org, tt.equ, [3]int{1, 2, 3}, [3]int{10, 20, 30}))
		require.True(t, ok)
		assert.Equal(t, tt.class, op.Port.Class)
	}
}

func TestParsePortListRejectsWidthMismatch(t *testing.T) {
	// five-digit sector breaks the fixed-width column layout
	_, ok := parsePortList("12345 - 1940  97%    410  55% - 1720  87%")
	assert.False(t, ok)

	_, ok = parsePortList("not a port row")
	assert.False(t, ok)
}

func TestParseWarpList(t *testing.T) {
	op, ok := parseWarpList("   1    2    3    4    5    6    7")
	require.True(t, ok)
	assert.Equal(t, 1, op.Source)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7}, op.Destinations)

	op, ok = parseWarpList(" 930  731")
	require.True(t, ok)
	assert.Equal(t, 930, op.Source)
	assert.Equal(t, []int{731}, op.Destinations)
}

func TestParseWarpListRejectsBareSector(t *testing.T) {
	_, ok := parseWarpList("   1")
	assert.False(t, ok)
}

func TestSplitDigitFieldsRejectRow(t *testing.T) {
	// the fixed-width patterns admit interior spaces, so a field whose
	// digits are split by padding must reject the whole row rather than
	// record sector 0
	_, ok := parseWarpList(" 1 2    3")
	assert.False(t, ok)

	_, ok = parsePortList(" 2 4 - 1940  97%    410  55% - 1720  87%")
	assert.False(t, ok)

	_, ok = parseFighterRow("   5 0         1000      Personal    Defensive")
	assert.False(t, ok)

	_, ok = parsePlanetList("  5 23     #3   New Terra        Class M, Earth Type    No Citadel")
	assert.False(t, ok)
}

func TestFighterScanHeader(t *testing.T) {
	assert.True(t, clearFightersRe.MatchString("                 Deployed  Fighter  Scan"))
	assert.True(t, clearFightersRe.MatchString("Deployed  Fighter  Scan"))
	assert.False(t, clearFightersRe.MatchString("Deployed Fighter Scan")) // single spaces: different report
}

func TestParseFighterRow(t *testing.T) {
	tests := []struct {
		line   string
		sector int
	}{
		{fmt.Sprintf(" %5d %12d      Personal    Defensive", 520, 1000), 520},
		{fmt.Sprintf(" %5d %12d      Corp        Offensive", 14, 50), 14},
		{fmt.Sprintf(" %5d %12d      Corp        Toll", 9999, 25000), 9999},
	}
	for _, tt := range tests {
		op, ok := parseFighterRow(tt.line)
		require.True(t, ok, "line %q should match", tt.line)
		assert.Equal(t, tt.sector, op.Sector)
	}

	_, ok := parseFighterRow("   520         1000      Alien       Defensive")
	assert.False(t, ok)
}

func TestParsePlanetList(t *testing.T) {
	op, ok := parsePlanetList("   523     #3   New Terra        Class M, Earth Type    No Citadel")
	require.True(t, ok)
	assert.Equal(t, 523, op.Planet.Sector)
	assert.Equal(t, 3, op.Planet.ID)
	assert.Equal(t, "New Terra", op.Planet.Name)
	assert.Equal(t, "M", op.Planet.Class)
	assert.Equal(t, 0, op.Planet.Citadel)

	op, ok = parsePlanetList("  1048  T  #12  Sanctuary        Class H, Desert Wasteland    Level 2")
	require.True(t, ok)
	assert.Equal(t, 1048, op.Planet.Sector)
	assert.Equal(t, 12, op.Planet.ID)
	assert.Equal(t, "Sanctuary", op.Planet.Name)
	assert.Equal(t, "H", op.Planet.Class)
	assert.Equal(t, 2, op.Planet.Citadel)
}

func TestParseCompleteRoute(t *testing.T) {
	op, ok := parseCompleteRoute("FM > 100   TO > 200 (A) 100 > 150 > 200")
	require.True(t, ok)
	assert.Equal(t, []int{100, 150, 200}, op.Sectors)

	op, ok = parseCompleteRoute("The shortest path (11 hops, 22 turns) from sector 1 to sector 5 is: 1 > 3 > 5")
	require.True(t, ok)
	assert.Equal(t, []int{1, 3, 5}, op.Sectors)

	_, ok = parseCompleteRoute("FM > 100")
	assert.False(t, ok)
}

func TestRouteOpeningAndContinuation(t *testing.T) {
	assert.True(t, isRouteOpening("FM > 100"))
	assert.True(t, isRouteOpening("The shortest path (11 hops, 22 turns) from sector 1 to sector 5 is:"))
	assert.False(t, isRouteOpening("FM > 100   TO > 200"))

	assert.True(t, isRouteContinuation("  TO > 200 (A) 100 > 150 > 200"))
	assert.True(t, isRouteContinuation("  300 > 350 > 400"))
	assert.False(t, isRouteContinuation("Command [TL=00:00:00]:[100] (?=Help)? :"))
	assert.False(t, isRouteContinuation("ALL CLEAR 5")) // bare uppercase is prose, not an annotation
}
