package parser

import (
	"fmt"

	"github.com/rbeiter/tw2002-client/internal/database"
)

// The classifier emits these typed records; each knows how to apply itself
// against the store when the queue consumer gets to it.

// ClearFighters wipes the fighter table. Emitted for a deployed-fighter scan
// header, because the scan that follows is authoritative.
type ClearFighters struct{}

func (ClearFighters) Apply(store *database.Store) error { return store.ClearFighters() }
func (ClearFighters) String() string                    { return "clear fighter locations" }

// FighterLocation records one sector from a fighter scan row.
type FighterLocation struct {
	Sector int
}

func (o FighterLocation) Apply(store *database.Store) error { return store.SaveFighter(o.Sector) }
func (o FighterLocation) String() string {
	return fmt.Sprintf("fighter location (sector %d)", o.Sector)
}

// WarpList records a sector's full outgoing warp list and marks it explored.
type WarpList struct {
	Source       int
	Destinations []int
}

func (o WarpList) Apply(store *database.Store) error {
	return store.SaveWarpList(o.Source, o.Destinations)
}

func (o WarpList) String() string {
	return fmt.Sprintf("warp list (sector %d, %d warps)", o.Source, len(o.Destinations))
}

// PortReport replaces a sector's port record.
type PortReport struct {
	Port database.Port
}

func (o PortReport) Apply(store *database.Store) error { return store.SavePort(o.Port) }
func (o PortReport) String() string {
	return fmt.Sprintf("port report (sector %d, class %s)", o.Port.Sector, o.Port.Class)
}

// PlanetReport replaces a planet record.
type PlanetReport struct {
	Planet database.Planet
}

func (o PlanetReport) Apply(store *database.Store) error { return store.SavePlanet(o.Planet) }
func (o PlanetReport) String() string {
	return fmt.Sprintf("planet report (#%d in sector %d)", o.Planet.ID, o.Planet.Sector)
}

// RouteList records each consecutive pair of a plotted route as a warp.
type RouteList struct {
	Sectors []int
}

func (o RouteList) Apply(store *database.Store) error { return store.SaveRoute(o.Sectors) }
func (o RouteList) String() string {
	return fmt.Sprintf("route list (%d sectors)", len(o.Sectors))
}
