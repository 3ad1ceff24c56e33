package parser

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/rbeiter/tw2002-client/internal/ansi"
	"github.com/rbeiter/tw2002-client/internal/log"
	"github.com/rbeiter/tw2002-client/internal/queue"
)

// Sink receives the operations a session extracts. Enqueue reports whether
// the operation was accepted.
type Sink interface {
	Enqueue(op queue.Op) bool
}

// Session is one ingestion pass over a transcript stream. It owns all
// mutable parsing state (the ANSI stripper and the in-progress route
// buffer), so independent sessions can run concurrently against separate
// sinks.
type Session struct {
	sink     Sink
	stripper *ansi.Stripper
	decoder  *encoding.Decoder
	route    routeAccumulator
	trace    bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTrace enables per-line debug logging (CLI verbosity 3).
func WithTrace(enabled bool) SessionOption {
	return func(s *Session) { s.trace = enabled }
}

// NewSession creates a session emitting into sink. Game output is decoded as
// CP437, the character set BBS door games are written against.
func NewSession(sink Sink, opts ...SessionOption) *Session {
	s := &Session{
		sink:     sink,
		stripper: ansi.NewStripper(),
		decoder:  charmap.CodePage437.NewDecoder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessLine classifies one raw transcript line and enqueues whatever facts
// it carries. Lines that match no report shape are ignored; transcripts are
// mostly prose and formatting noise.
func (s *Session) ProcessLine(raw []byte) {
	stripped := s.stripper.Strip(raw)

	decoded, err := s.decoder.Bytes(stripped)
	if err != nil {
		log.Debug("skipping undecodable line", "error", err)
		return
	}

	line := strings.TrimRight(string(decoded), " \t\r\n")
	if s.trace {
		log.Debug("line", "text", line)
	}

	s.classify(line)
}

// classify runs the report checks in priority order. Warp and port rows
// short-circuit; fighter rows and planet rows fall through so the same line
// can still complete or abandon a route accumulation below them.
func (s *Session) classify(line string) {
	if clearFightersRe.MatchString(line) {
		log.Debug("fighter scan header")
		s.emit(ClearFighters{})
		return
	}

	if op, ok := parseFighterRow(line); ok {
		s.emit(op)
	}

	if op, ok := parseWarpList(line); ok {
		s.emit(op)
		return
	}

	if op, ok := parsePortList(line); ok {
		s.emit(op)
		return
	}

	if op, ok := parsePlanetList(line); ok {
		s.emit(op)
	}

	// An in-progress route accumulation consumes blank and continuation
	// lines. A blank line means the report is complete: re-run the completed
	// buffer through the one-line checks below. Anything else abandons it.
	if s.route.active() {
		if line == "" {
			line = s.route.flush()
		} else if isRouteContinuation(line) {
			s.route.append(line)
		} else {
			s.route.abandon()
		}
	}

	if op, ok := parseCompleteRoute(line); ok {
		s.emit(op)
		return
	}

	if isRouteOpening(line) {
		s.route.start(line)
	}
}

func (s *Session) emit(op queue.Op) {
	if !s.sink.Enqueue(op) {
		log.Warn("operation dropped, sink closed", "op", op.String())
	}
}
