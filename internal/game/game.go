// Package game implements the kubebucket engine: a falling-block
// simulation where pod pieces descend a grid into node buckets, consume
// their capacity and stack into clearable rows, while upgrade pieces
// extend capacity. The package does no I/O and starts no goroutines;
// all mutation goes through a single *Game handle owned by the caller,
// and every random draw comes from the injected rng so a fixed seed
// replays an identical run.
package game

import (
	"fmt"
	"math/rand"
)

// Phase is the run lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// GameOverCause separates the two terminal conditions.
type GameOverCause int

const (
	// CauseCapacity: a landed pod's demand did not fit its node.
	CauseCapacity GameOverCause = iota
	// CauseOverflow: the spawn cell was occupied when promoting a piece.
	CauseOverflow
)

// GameOverInfo captures why a run ended.
type GameOverInfo struct {
	Cause     GameOverCause
	NodeIndex int    // CauseCapacity only
	PodKind   string // CauseCapacity only
	Reason    string
}

// Game owns every piece of run state. Create with New, drive with Start,
// Tick and the input commands, and read any exported field to render.
type Game struct {
	Rules   Rules
	Catalog *Catalog

	Board  *Board
	Phase  Phase
	Score  int
	Level  int
	Lines  int
	Placed int

	Current *Piece
	Next    *Piece

	Constraints []Constraint
	Over        *GameOverInfo

	Events      []Event
	UtilHistory []float64

	rng      *rand.Rand
	spawner  *Spawner
	eventSeq int
}

// New builds an idle game on a fresh board.
func New(rules Rules, cat *Catalog, rng *rand.Rand) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	g := &Game{Rules: rules, Catalog: cat, rng: rng}
	g.init()
	return g, nil
}

func (g *Game) init() {
	g.Board = NewBoard(g.Rules.BoardWidth, g.Rules.BoardHeight, g.Catalog, g.rng)
	g.spawner = NewSpawner(g.Catalog, g.rng, g.Rules.UpgradeChance, g.Rules.BoardWidth)
	g.Phase = PhaseIdle
	g.Score = 0
	g.Level = 1
	g.Lines = 0
	g.Placed = 0
	g.Current = nil
	g.Next = nil
	g.Constraints = nil
	g.Over = nil
	g.Events = nil
	g.UtilHistory = nil
	g.eventSeq = 0
}

// Start begins a run from idle, rolling the first policy set and
// spawning the current and queued pieces.
func (g *Game) Start() {
	if g.Phase != PhaseIdle {
		return
	}
	g.Phase = PhaseRunning
	g.Constraints = rollConstraints(g.Catalog, g.rng)
	g.pushEvent(EventInfo, "cluster up: %d nodes ready", g.Board.W)
	if len(g.Constraints) > 0 {
		g.pushEvent(EventPolicy, "active policies: %s", describeConstraints(g.Constraints))
	}
	g.Current = g.spawner.Spawn()
	g.Next = g.spawner.Spawn()
}

// Reset returns to idle with a rebuilt board and empty ledgers.
func (g *Game) Reset() {
	g.init()
}

// TogglePause starts an idle game, otherwise flips running and paused.
// A finished game ignores it; restart goes through Reset.
func (g *Game) TogglePause() {
	switch g.Phase {
	case PhaseIdle:
		g.Start()
	case PhaseRunning:
		g.Phase = PhasePaused
	case PhasePaused:
		g.Phase = PhaseRunning
	}
}

// Tick applies one gravity step to the current piece. A blocked step
// means the piece has landed and runs the placement pipeline.
func (g *Game) Tick() {
	if g.Phase != PhaseRunning {
		return
	}
	if g.Board.Move(g.Current, 0, 1) == Blocked {
		g.lockCurrent()
	}
}

// MoveLeft nudges the current piece one column left; blocked moves are
// silently ignored.
func (g *Game) MoveLeft() {
	g.nudge(-1)
}

// MoveRight nudges the current piece one column right.
func (g *Game) MoveRight() {
	g.nudge(1)
}

func (g *Game) nudge(d int) {
	if g.Phase != PhaseRunning {
		return
	}
	g.Board.Move(g.Current, d, 0)
}

// HardDrop teleports the current piece to its landing row and places it
// immediately.
func (g *Game) HardDrop() {
	if g.Phase != PhaseRunning {
		return
	}
	g.Current.Row = g.Board.FindLandingRow(g.Current)
	g.lockCurrent()
}

// lockCurrent runs the placement pipeline for the landed piece: ledger
// effect, placement score, row sweep, spread bonus, level recompute,
// policy rotation, next-piece promotion. Every bonus uses the level in
// effect when the placement began.
func (g *Game) lockCurrent() {
	p := g.Current
	level := g.Level
	target := g.Board.ResolveLandingTarget(p.Col, p.Row)
	node := g.Board.Nodes[p.Col]

	if p.IsUpgrade() {
		node.GrantCapacity(p.Amount)
		g.pushEvent(EventGranted, "%s absorbed by %s (%s)", p.Kind.Name, node.Name(), p.Amount.Label())
	} else {
		if !node.CanAccept(p.Amount) {
			g.failCapacity(node, p)
			return
		}
		hits := CountSatisfied(g.Constraints, p, node, g.Rules)
		node.Consume(p.ID, p.Kind, p.Amount)
		g.Board.SetLanded(p, target.Row)
		sb := scorePlacement(g.Rules, g.Board.Nodes, node, p, hits, level)
		g.Score += sb.Total
		g.pushEvent(EventScheduled, "scheduled %s-%d on %s (+%d)", p.Kind.Name, p.ID, node.Name(), sb.Total)
	}

	if cleared := g.Board.ClearFullRows(); cleared > 0 {
		g.Lines += cleared
		bonus := cleared * g.Rules.LineBonus * level
		g.Score += bonus
		g.pushEvent(EventCleared, "compacted %d full row(s) (+%d)", cleared, bonus)
	}
	if p.IsPod() && cpuVariance(g.Board.Nodes) < g.Rules.SpreadVariance {
		g.Score += g.Rules.SpreadBonus * level
	}
	g.Level = g.Score/g.Rules.LevelStep + 1
	g.recordUtilization()

	g.Placed++
	if g.Rules.ConstraintEvery > 0 && g.Placed%g.Rules.ConstraintEvery == 0 {
		g.Constraints = rollConstraints(g.Catalog, g.rng)
		g.pushEvent(EventPolicy, "policy update: %s", describeConstraints(g.Constraints))
	}

	g.promoteNext()
}

func (g *Game) failCapacity(n *Node, p *Piece) {
	reason := fmt.Sprintf("pod %s rejected by %s: insufficient %s",
		p.Kind.Name, n.Name(), dimList(n.Insufficient(p.Amount)))
	g.Over = &GameOverInfo{
		Cause:     CauseCapacity,
		NodeIndex: n.Index,
		PodKind:   p.Kind.Name,
		Reason:    reason,
	}
	g.Phase = PhaseGameOver
	g.pushEvent(EventGameOver, "%s", reason)
}

// promoteNext makes the queued piece current and mints a replacement.
// An occupied spawn cell ends the run with no further score change.
func (g *Game) promoteNext() {
	g.Current = g.Next
	g.Next = g.spawner.Spawn()
	if !g.Board.IsValidPosition(g.Current.Col, g.Current.Row) {
		g.Over = &GameOverInfo{
			Cause:  CauseOverflow,
			Reason: "cluster overflow: no room to admit new pods",
		}
		g.Phase = PhaseGameOver
		g.pushEvent(EventGameOver, "%s", g.Over.Reason)
	}
}

// PodsPlaced counts pods scheduled across all nodes this run. Unlike
// Placed it excludes upgrades.
func (g *Game) PodsPlaced() int {
	total := 0
	for _, n := range g.Board.Nodes {
		total += len(n.Pods)
	}
	return total
}

// maxUtilHistory bounds the sparkline buffer.
const maxUtilHistory = 120

func (g *Game) recordUtilization() {
	_, _, avg := utilizationSpread(g.Board.Nodes)
	g.UtilHistory = append(g.UtilHistory, avg)
	if len(g.UtilHistory) > maxUtilHistory {
		g.UtilHistory = g.UtilHistory[len(g.UtilHistory)-maxUtilHistory:]
	}
}
