package trade

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rbeiter/tw2002-client/internal/database"
	"github.com/rbeiter/tw2002-client/internal/graph"
)

const directWarp = "  *** Direct warp available ***"

var (
	classColor = color.New(color.FgCyan)
	hopsColor  = color.New(color.FgYellow)
)

// Reporter renders candidate pairs with navigational hints: for each port,
// the route from the nearest deployed fighter, and the route from the
// nearest unexplored blind warp when that would be a strictly shorter
// approach.
type Reporter struct {
	planner  *graph.Planner
	fighters []int
	blind    []int
}

// NewReporter builds a reporter from the store's current fighter and
// blind-warp sets.
func NewReporter(store *database.Store, planner *graph.Planner) (*Reporter, error) {
	fighters, err := store.FighterSectors()
	if err != nil {
		return nil, err
	}
	blind, err := store.BlindWarps()
	if err != nil {
		return nil, err
	}
	return &Reporter{planner: planner, fighters: fighters, blind: blind}, nil
}

// Write renders every pair to w, best candidates first.
func (r *Reporter) Write(w io.Writer, pairs []Pair) error {
	for _, pair := range pairs {
		for _, port := range []database.Port{pair.A, pair.B} {
			if err := r.writePort(w, port); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) writePort(w io.Writer, port database.Port) error {
	if _, err := fmt.Fprint(w, formatPort(port)); err != nil {
		return err
	}

	fighterRoute, haveFighter := r.planner.ShortestRoute(port.Sector, r.fighters, graph.Reverse)
	switch {
	case haveFighter && graph.Hops(fighterRoute) == 0:
		// a fighter is already in this sector
		fmt.Fprintln(w, directWarp)
		return nil
	case haveFighter:
		fmt.Fprintf(w, "\n\t\tRoute from nearest fighter (%s hops):\t%s\n",
			hopsColor.Sprintf("%d", graph.Hops(fighterRoute)), joinRoute(fighterRoute))
	default:
		fmt.Fprintln(w, "  (no route from deployed fighters known)")
	}

	blindRoute, haveBlind := r.planner.ShortestRoute(port.Sector, r.blind, graph.Reverse)
	if haveBlind && (!haveFighter || graph.Hops(blindRoute) < graph.Hops(fighterRoute)) {
		fmt.Fprintf(w, "\t\tNearest unexplored blind warp (%s hops):\t%s\n",
			hopsColor.Sprintf("%d", graph.Hops(blindRoute)), joinRoute(blindRoute))
	}

	return nil
}

// formatPort renders one port's full state on a single line.
func formatPort(p database.Port) string {
	return fmt.Sprintf("Sector: %4d  Class: %d (%s)   Ore: %4d %3d%%  Org: %4d %3d%%  Equ: %4d %3d%%",
		p.Sector, ClassNumber(p.Class), classColor.Sprint(p.Class),
		p.OreAmt, p.OrePct,
		p.OrgAmt, p.OrgPct,
		p.EquAmt, p.EquPct)
}

func joinRoute(route []int) string {
	parts := make([]string, len(route))
	for i, sector := range route {
		parts[i] = fmt.Sprintf("%d", sector)
	}
	return strings.Join(parts, " > ")
}
