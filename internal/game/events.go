package game

import "fmt"

// EventKind classifies cluster feed entries so the UI can color them.
type EventKind int

const (
	EventInfo EventKind = iota
	EventScheduled
	EventGranted
	EventCleared
	EventPolicy
	EventGameOver
)

// Event is one line of the cluster feed, newest last.
type Event struct {
	Seq  int
	Kind EventKind
	Text string
}

// maxEvents bounds the feed; older entries fall off the front.
const maxEvents = 64

func (g *Game) pushEvent(kind EventKind, format string, args ...any) {
	g.eventSeq++
	g.Events = append(g.Events, Event{Seq: g.eventSeq, Kind: kind, Text: fmt.Sprintf(format, args...)})
	if len(g.Events) > maxEvents {
		g.Events = g.Events[len(g.Events)-maxEvents:]
	}
}
