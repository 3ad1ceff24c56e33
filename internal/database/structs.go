package database

// Port is one sector's trading post as last observed. Class is the 3-letter
// buy/sell code over {B,S} for Fuel Ore, Organics and Equipment in that order.
type Port struct {
	Sector   int
	Class    string
	OreAmt   int
	OrePct   int
	OrgAmt   int
	OrgPct   int
	EquAmt   int
	EquPct   int
	LastSeen string
}

// Warp is a one-way connection between two sectors.
type Warp struct {
	Source      int
	Destination int
}

// Planet is a named planet keyed by its game-assigned id. Citadel 0 means no
// citadel has been built.
type Planet struct {
	Sector  int
	ID      int
	Name    string
	Class   string
	Citadel int
}
