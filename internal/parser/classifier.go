package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rbeiter/tw2002-client/internal/database"
)

// Line shapes for the reports worth recording. All numeric fields are
// fixed-width and space-padded; a width mismatch means "not this report",
// never an error. The CIM port and warp reports are the strictest, which is
// why they get exact column counts while the prose-embedded reports
// (fighters, planets) tolerate free whitespace.
var (
	// Computer Interrogation Mode port report row
	portListRe = regexp.MustCompile(`^(?P<sector>[ 0-9]{3}[0-9]) (?P<ore_bs>[ -]) (?P<ore_amt>[ 0-9]{3}[0-9]) (?P<ore_pct>[ 0-9]{2}[0-9])% (?P<org_bs>[ -]) (?P<org_amt>[ 0-9]{3}[0-9]) (?P<org_pct>[ 0-9]{2}[0-9])% (?P<equ_bs>[ -]) (?P<equ_amt>[ 0-9]{3}[0-9]) (?P<equ_pct>[ 0-9]{2}[0-9])%$`)

	// CIM warp report row: source sector followed by its one-hop destinations
	warpListRe = regexp.MustCompile(`^(?P<sector>[ 0-9]{3}[0-9])(?P<warps>(?: [ 0-9]{3}[0-9])+)$`)

	// route plans, announced either by CIM or the Computer > F course plotter
	routeFromCIMRe     = regexp.MustCompile(`^FM > [0-9]+$`)
	routeFromCFRe      = regexp.MustCompile(`^The shortest path .* from sector [0-9]+ to sector [0-9]+ is:$`)
	routeRestRe        = regexp.MustCompile(`^(?:  TO)?(?:\([A-Z]\)|[0-9 >])+$`)
	routeCompleteCIMRe = regexp.MustCompile(`^FM > [0-9]+   TO > [0-9]+ (?P<route>(?:\([A-Z]\)|[0-9 >])+)$`)
	routeCompleteCFRe  = regexp.MustCompile(`^The shortest path .* from sector [0-9]+ to sector [0-9]+ is: (?P<route>(?:\([A-Z]\)|[0-9 >])+)$`)

	// deployed fighter scan
	clearFightersRe = regexp.MustCompile(`^\s*Deployed  Fighter  Scan`)
	saveFightersRe  = regexp.MustCompile(`^ (?P<sector>[0-9 ]{4}[0-9])\s+[0-9]+\s+(?:Personal|Corp)\s+(?:Defensive|Offensive|Toll)`)

	// planet inventory row
	planetListRe = regexp.MustCompile(`^\s*(?P<sector>[0-9 ]{4}[0-9])\s+T?\s+#(?P<id>[0-9]+)\s+(?P<name>.*?)\s+Class (?P<class>[A-Z]), .*(?P<citadel>No Citadel|Level [0-9])`)

	numberRe = regexp.MustCompile(`[0-9]+`)
)

// atoi parses a space-padded fixed-width number field. The field patterns
// admit interior spaces, so padding that splits the digits (e.g. "1 23")
// still fails here and the row is rejected.
func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func group(re *regexp.Regexp, match []string, name string) string {
	return match[re.SubexpIndex(name)]
}

// numbers extracts every decimal run in s, in order.
func numbers(s string) []int {
	var out []int
	for _, m := range numberRe.FindAllString(s, -1) {
		n, _ := strconv.Atoi(m)
		out = append(out, n)
	}
	return out
}

// parseFighterRow extracts the sector from one fighter scan row.
func parseFighterRow(line string) (FighterLocation, bool) {
	m := saveFightersRe.FindStringSubmatch(line)
	if m == nil {
		return FighterLocation{}, false
	}
	sector, err := atoi(group(saveFightersRe, m, "sector"))
	if err != nil {
		return FighterLocation{}, false
	}
	return FighterLocation{Sector: sector}, true
}

// parseWarpList extracts a source sector and its one-hop destinations.
func parseWarpList(line string) (WarpList, bool) {
	m := warpListRe.FindStringSubmatch(line)
	if m == nil {
		return WarpList{}, false
	}
	source, err := atoi(group(warpListRe, m, "sector"))
	if err != nil {
		return WarpList{}, false
	}
	return WarpList{
		Source:       source,
		Destinations: numbers(group(warpListRe, m, "warps")),
	}, true
}

// parsePortList extracts a CIM port row. In the report a blank buy/sell
// column means the port sells the commodity and a dash means it buys.
func parsePortList(line string) (PortReport, bool) {
	m := portListRe.FindStringSubmatch(line)
	if m == nil {
		return PortReport{}, false
	}

	class := group(portListRe, m, "ore_bs") + group(portListRe, m, "org_bs") + group(portListRe, m, "equ_bs")
	class = strings.NewReplacer(" ", "S", "-", "B").Replace(class)

	var fields [7]int
	for i, name := range []string{"sector", "ore_amt", "ore_pct", "org_amt", "org_pct", "equ_amt", "equ_pct"} {
		n, err := atoi(group(portListRe, m, name))
		if err != nil {
			return PortReport{}, false
		}
		fields[i] = n
	}

	return PortReport{Port: database.Port{
		Sector: fields[0],
		Class:  class,
		OreAmt: fields[1],
		OrePct: fields[2],
		OrgAmt: fields[3],
		OrgPct: fields[4],
		EquAmt: fields[5],
		EquPct: fields[6],
	}}, true
}

// parsePlanetList extracts one planet inventory row. "No Citadel" maps to
// level 0, "Level N" to N.
func parsePlanetList(line string) (PlanetReport, bool) {
	m := planetListRe.FindStringSubmatch(line)
	if m == nil {
		return PlanetReport{}, false
	}

	sector, err := atoi(group(planetListRe, m, "sector"))
	if err != nil {
		return PlanetReport{}, false
	}
	id, err := atoi(group(planetListRe, m, "id"))
	if err != nil {
		return PlanetReport{}, false
	}

	citadel := 0
	if text := group(planetListRe, m, "citadel"); strings.HasPrefix(text, "Level") {
		citadel, _ = atoi(text[len("Level"):])
	}

	return PlanetReport{Planet: database.Planet{
		Sector:  sector,
		ID:      id,
		Name:    strings.TrimSpace(group(planetListRe, m, "name")),
		Class:   group(planetListRe, m, "class"),
		Citadel: citadel,
	}}, true
}

// parseCompleteRoute matches a fully assembled route report (either style)
// and extracts the plotted sector sequence. The leading FM/TO (or from/to)
// sectors are part of the fixed header; only the route tail is extracted.
func parseCompleteRoute(line string) (RouteList, bool) {
	for _, re := range []*regexp.Regexp{routeCompleteCIMRe, routeCompleteCFRe} {
		if m := re.FindStringSubmatch(line); m != nil {
			route := numbers(group(re, m, "route"))
			if len(route) >= 2 {
				return RouteList{Sectors: route}, true
			}
		}
	}
	return RouteList{}, false
}

// isRouteOpening reports whether line announces a route plan that will be
// completed on following lines.
func isRouteOpening(line string) bool {
	return routeFromCIMRe.MatchString(line) || routeFromCFRe.MatchString(line)
}

// isRouteContinuation reports whether line looks like the wrapped tail of a
// route plan: a sector/arrow list, possibly with parenthesized annotations
// like "(A)". Bare letters do not qualify, so prose never extends a plan.
func isRouteContinuation(line string) bool {
	return routeRestRe.MatchString(line)
}
