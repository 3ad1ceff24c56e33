package parser

// routeAccumulator reassembles route-plan reports that the game client wraps
// across several lines. It holds at most one report in progress; unrelated
// output abandons the buffer.
type routeAccumulator struct {
	buffer string
}

func (a *routeAccumulator) active() bool {
	return a.buffer != ""
}

func (a *routeAccumulator) start(line string) {
	a.buffer = line
}

func (a *routeAccumulator) append(line string) {
	a.buffer += " " + line
}

// flush returns the accumulated report and resets to idle.
func (a *routeAccumulator) flush() string {
	buffer := a.buffer
	a.buffer = ""
	return buffer
}

func (a *routeAccumulator) abandon() {
	a.buffer = ""
}
