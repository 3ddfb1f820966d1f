// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ThanhChinhBK/kubebucket/internal/config"
	"github.com/ThanhChinhBK/kubebucket/internal/domain"
	"github.com/ThanhChinhBK/kubebucket/internal/game"
	"github.com/ThanhChinhBK/kubebucket/internal/ui/styles"
	"github.com/ThanhChinhBK/kubebucket/internal/ui/widgets"
)

type Screen int

const (
	ScreenMenu Screen = iota
	ScreenGame
	ScreenScores
	ScreenEntry
)

type tickMsg time.Time
type scoresMsg []domain.ScoreEntry
type savedMsg struct{}
type errMsg struct{ error }

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	g     *game.Game
	cfg   config.Config
	store domain.ScoreStore
	log   *slog.Logger

	screen Screen

	// widgets
	scoreTable table.Model
	feedVP     viewport.Model
	nameInput  textinput.Model

	// leaderboard cache
	scores   []domain.ScoreEntry
	recorded bool // this run's game over already handled

	width, height int
	err           error
}

func New(cfg config.Config, g *game.Game, store domain.ScoreStore, logger *slog.Logger) Model {
	ctx, cancel := context.WithCancel(context.Background())

	t := table.New()
	t.SetHeight(domain.MaxScores + 1)
	t.SetWidth(64)

	ti := textinput.New()
	ti.Placeholder = "operator"
	ti.CharLimit = 12
	ti.Width = 16

	m := Model{
		ctx:        ctx,
		cancel:     cancel,
		g:          g,
		cfg:        cfg,
		store:      store,
		log:        logger,
		screen:     ScreenMenu,
		scoreTable: t,
		nameInput:  ti,
		feedVP:     viewport.New(40, 10),
	}
	m.rebuildScoreTable()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadScores(),
		tick(m.cfg.TickInterval(1)),
	)
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadScores() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.store.Load(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return scoresMsg(entries)
	}
}

func (m Model) saveScores(entries []domain.ScoreEntry) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Save(m.ctx, entries); err != nil {
			return errMsg{err}
		}
		return savedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		var cmd tea.Cmd
		m.feedVP, cmd = m.feedVP.Update(msg)
		return m, cmd

	case tickMsg:
		var cmd tea.Cmd
		if m.screen == ScreenGame {
			m.g.Tick()
			cmd = m.afterEngineStep()
		}
		// re-arm at the current level's speed so the fall accelerates
		return m, tea.Batch(cmd, tick(m.cfg.TickInterval(m.g.Level)))

	case scoresMsg:
		m.scores = msg
		m.rebuildScoreTable()
		return m, nil

	case savedMsg:
		return m, nil

	case errMsg:
		m.err = msg.error
		m.log.Error("score store failure", "err", msg.error)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}
	switch m.screen {
	case ScreenMenu:
		return m.handleMenuKey(msg)
	case ScreenGame:
		return m.handleGameKey(msg)
	case ScreenScores:
		return m.handleScoresKey(msg)
	case ScreenEntry:
		return m.handleEntryKey(msg)
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "p", " ":
		m.startRun()
		return m, nil
	case "h":
		m.screen = ScreenScores
		return m, m.loadScores()
	case "q", "esc":
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.g.Phase == game.PhaseGameOver {
		switch msg.String() {
		case "r":
			m.startRun()
			return m, nil
		case "enter", "esc":
			m.screen = ScreenMenu
			return m, nil
		case "q":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.g.MoveLeft()
	case "right", "l":
		m.g.MoveRight()
	case "down", "j":
		// soft drop: one extra gravity step
		m.g.Tick()
	case " ":
		m.g.HardDrop()
	case "p":
		m.g.TogglePause()
	case "esc":
		if m.g.Phase == game.PhaseRunning {
			m.g.TogglePause()
		}
		m.screen = ScreenMenu
		return m, nil
	case "q":
		m.cancel()
		return m, tea.Quit
	}
	return m, m.afterEngineStep()
}

func (m Model) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.screen = ScreenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.scoreTable, cmd = m.scoreTable.Update(msg)
	return m, cmd
}

func (m Model) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.finishRun(m.nameInput.Value())
	case "esc":
		m.nameInput.Blur()
		m.nameInput.Reset()
		m.screen = ScreenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// startRun resumes a paused run or begins a fresh one.
func (m *Model) startRun() {
	switch m.g.Phase {
	case game.PhasePaused:
		m.g.TogglePause()
	case game.PhaseRunning:
		// nothing to do, just show the board again
	case game.PhaseGameOver:
		m.g.Reset()
		m.g.Start()
		m.recorded = false
	default:
		m.g.Start()
		m.recorded = false
	}
	m.screen = ScreenGame
	m.refreshFeed()
}

// afterEngineStep reacts to whatever the engine just did: refreshes the
// event feed and, once per run, routes game over to name entry when the
// score makes the table.
func (m *Model) afterEngineStep() tea.Cmd {
	m.refreshFeed()
	if m.g.Phase != game.PhaseGameOver || m.recorded {
		return nil
	}
	m.recorded = true
	m.log.Info("run ended",
		"reason", m.g.Over.Reason,
		"score", m.g.Score,
		"level", m.g.Level,
		"lines", m.g.Lines,
		"pods", m.g.PodsPlaced())
	if m.g.Score > 0 && domain.Qualifies(m.scores, m.g.Score) {
		m.screen = ScreenEntry
		m.nameInput.Focus()
		return textinput.Blink
	}
	return nil
}

// finishRun records the ended run under the given name and persists the
// table.
func (m *Model) finishRun(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "anon"
	}
	entry := domain.ScoreEntry{
		Name:   name,
		Score:  m.g.Score,
		Level:  m.g.Level,
		Lines:  m.g.Lines,
		Pods:   m.g.PodsPlaced(),
		Played: time.Now(),
	}
	m.scores = domain.InsertScore(m.scores, entry)
	m.rebuildScoreTable()
	m.nameInput.Blur()
	m.nameInput.Reset()
	m.screen = ScreenScores
	m.log.Info("score recorded", "name", name, "score", entry.Score)
	return m.saveScores(m.scores)
}

func (m *Model) refreshFeed() {
	var b strings.Builder
	for _, e := range m.g.Events {
		b.WriteString(m.styleEvent(e))
		b.WriteByte('\n')
	}
	m.feedVP.SetContent(b.String())
	m.feedVP.GotoBottom()
}

func (m Model) styleEvent(e game.Event) string {
	switch e.Kind {
	case game.EventScheduled:
		return styles.Good.Render(e.Text)
	case game.EventGranted:
		return styles.Upgrade.Render(e.Text)
	case game.EventCleared:
		return styles.Accent.Render(e.Text)
	case game.EventPolicy:
		return styles.Warn.Render(e.Text)
	case game.EventGameOver:
		return styles.Danger.Render(e.Text)
	default:
		return styles.Faint.Render(e.Text)
	}
}

func (m *Model) rebuildScoreTable() {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "NAME", Width: 14},
		{Title: "SCORE", Width: 8},
		{Title: "LVL", Width: 4},
		{Title: "LINES", Width: 6},
		{Title: "PODS", Width: 5},
		{Title: "PLAYED", Width: 17},
	}
	var rows []table.Row
	for i, e := range m.scores {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Level),
			fmt.Sprintf("%d", e.Lines),
			fmt.Sprintf("%d", e.Pods),
			e.Played.Format("2006-01-02 15:04"),
		})
	}
	m.scoreTable.SetColumns(cols)
	m.scoreTable.SetRows(rows)
	m.scoreTable.Focus()
}

// layout budgets widget sizes from the terminal size.
func (m *Model) layout() {
	boardW := m.g.Board.W*cellWidth + 4
	m.feedVP.Width = m.sidePanelWidth(boardW)
	m.feedVP.Height = clamp(m.height-m.g.Board.H-10, 6, 16)
	m.scoreTable.SetWidth(clamp(m.width-4, 40, 72))
}

func (m Model) View() string {
	head := styles.Header.Render(fmt.Sprintf(
		"kubebucket  │ score: %d  level: %d  lines: %d  phase: %s",
		m.g.Score, m.g.Level, m.g.Lines, m.g.Phase))
	if m.err != nil {
		head += "  " + styles.Danger.Render(fmt.Sprintf("store error: %v", m.err))
	}

	var body string
	switch m.screen {
	case ScreenMenu:
		body = m.viewMenu()
	case ScreenScores:
		body = m.viewScores()
	default:
		body = m.viewGame()
	}

	footer := styles.Footer.Render(m.footerHint())
	main := lipgloss.JoinVertical(lipgloss.Left, head, body, footer)

	if overlay := m.overlay(); overlay != "" {
		return main + "\n" + overlay
	}
	return main
}

func (m Model) footerHint() string {
	switch m.screen {
	case ScreenMenu:
		return "[enter] play • [h] high scores • [q] quit"
	case ScreenScores:
		return "↑/↓ scroll • [esc] back"
	case ScreenEntry:
		return "type a name • [enter] save • [esc] skip"
	default:
		return "←/→ move • ↓ nudge • [space] drop • [p] pause • [esc] menu • [q] quit"
	}
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("kubebucket — a container scheduling arcade"))
	b.WriteString("\n\n")
	b.WriteString("Pods fall into node buckets and consume cpu, memory, disk and gpu.\n")
	b.WriteString("Fill a row to compact it. Overrun a node and the cluster goes down.\n\n")

	b.WriteString(styles.Header.Render("workloads"))
	b.WriteByte('\n')
	for _, k := range m.g.Catalog.Pods {
		b.WriteString(fmt.Sprintf("  %s %-10s %s\n",
			styles.Piece(k.Color).Render(k.Symbol),
			k.Name,
			styles.Faint.Render(string(k.Role))))
	}
	b.WriteString(styles.Header.Render("upgrades"))
	b.WriteByte('\n')
	for _, k := range m.g.Catalog.Upgrades {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			styles.Upgrade.Render(k.Symbol),
			k.Name))
	}
	if len(m.scores) > 0 {
		b.WriteString(fmt.Sprintf("\nbest run: %s by %s\n",
			styles.Accent.Render(fmt.Sprintf("%d", m.scores[0].Score)),
			m.scores[0].Name))
	}
	if m.g.Phase == game.PhasePaused {
		b.WriteString("\n" + styles.Warn.Render("run paused — [enter] resumes"))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) viewScores() string {
	title := styles.Title.Render(" high scores ")
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			title + "\n\n" + styles.Faint.Render("no finished runs yet"))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, m.scoreTable.View()))
}

func (m Model) viewGame() string {
	board := styles.Box.Render(m.renderBoard())
	nodes := styles.Box.Render(m.renderNodes())
	left := lipgloss.JoinVertical(lipgloss.Left, board, nodes)

	side := styles.Box.Width(m.feedVP.Width + 2).Render(m.renderSide())
	feed := styles.Box.Width(m.feedVP.Width + 2).Render(
		styles.Header.Render("cluster events") + "\n" + m.feedVP.View())
	right := lipgloss.JoinVertical(lipgloss.Left, side, feed)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

const cellWidth = 3

func (m Model) renderBoard() string {
	b := m.g.Board
	var sb strings.Builder
	for row := 0; row < b.H; row++ {
		for col := 0; col < b.W; col++ {
			sb.WriteString(m.cellGlyph(col, row))
		}
		if row < b.H-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (m Model) cellGlyph(col, row int) string {
	if cur := m.g.Current; cur != nil && m.g.Phase != game.PhaseIdle &&
		cur.Col == col && cur.Row == row {
		return styles.Piece(cur.Kind.Color).Render(fmt.Sprintf(" %-2s", cur.Kind.Symbol))
	}
	cell := m.g.Board.Cell(col, row)
	switch cell.Kind {
	case game.CellPod:
		return styles.Piece(cell.Piece.Kind.Color).Render(fmt.Sprintf(" %-2s", cell.Piece.Kind.Symbol))
	case game.CellNode:
		return styles.NodeTag.Render(fmt.Sprintf(" N%d", cell.Node))
	default:
		return styles.Faint.Render("  ·")
	}
}

func (m Model) renderNodes() string {
	var lines []string
	for _, n := range m.g.Board.Nodes {
		lines = append(lines, fmt.Sprintf("%s %s %s  %s",
			styles.NodeTag.Render(fmt.Sprintf("N%d", n.Index)),
			styles.Faint.Render(fmt.Sprintf("%-8s", shortTag(n.Tag))),
			widgets.Meter("cpu", n.Used.CPU, n.Total.CPU, 8),
			widgets.Meter("mem", n.Used.Memory, n.Total.Memory, 8)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSide() string {
	g := m.g
	var parts []string

	if cur := g.Current; cur != nil && g.Phase != game.PhaseIdle {
		parts = append(parts,
			styles.Title.Render("current"),
			fmt.Sprintf("%s %s", styles.Piece(cur.Kind.Color).Render(cur.Kind.Symbol), cur.Kind.Name),
			styles.Faint.Render(cur.Amount.Label()),
			"")

		target := g.Board.Nodes[cur.Col]
		parts = append(parts,
			styles.Title.Render("target "+target.Name()),
			styles.NodeTag.Render(target.Tag))
		for _, d := range game.Dimensions {
			parts = append(parts, widgets.Meter(d.Short(), target.Used.Get(d), target.Total.Get(d), 10))
		}
		if cur.IsPod() {
			if missing := game.MissingDependencies(cur.Kind, target); len(missing) > 0 {
				parts = append(parts, styles.Warn.Render("waiting on: "+joinRoles(missing)))
			}
			if !target.CanAccept(cur.Amount) {
				parts = append(parts, styles.Danger.Render("won't fit here"))
			}
		}
		parts = append(parts, "")
	}

	if g.Next != nil {
		parts = append(parts,
			styles.Title.Render("next"),
			fmt.Sprintf("%s %s", styles.Piece(g.Next.Kind.Color).Render(g.Next.Kind.Symbol), g.Next.Kind.Name),
			"")
	}

	parts = append(parts, styles.Title.Render("policies"))
	if len(g.Constraints) == 0 {
		parts = append(parts, styles.Faint.Render("none active"))
	} else {
		for _, c := range g.Constraints {
			parts = append(parts, styles.Warn.Render(c.String()))
		}
	}

	if len(g.UtilHistory) > 0 {
		parts = append(parts, "",
			styles.Title.Render("cluster load"),
			widgets.Spark8(g.UtilHistory, 24))
	}
	return strings.Join(parts, "\n")
}

func (m Model) overlay() string {
	switch {
	case m.screen == ScreenEntry:
		content := lipgloss.JoinVertical(lipgloss.Left,
			styles.Title.Render(" cluster down — that run makes the table "),
			fmt.Sprintf("score %d  level %d  lines %d", m.g.Score, m.g.Level, m.g.Lines),
			"",
			"name: "+m.nameInput.View(),
			styles.Faint.Render("[enter] save  [esc] skip"))
		box := styles.Box.BorderForeground(lipgloss.Color("#7DCE13")).Width(46)
		return lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, box.Render(content))

	case m.screen == ScreenGame && m.g.Phase == game.PhaseGameOver:
		reason := ""
		if m.g.Over != nil {
			reason = m.g.Over.Reason
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			styles.GameOver.Render(" cluster down "),
			reason,
			fmt.Sprintf("final score %d at level %d", m.g.Score, m.g.Level),
			"",
			styles.Faint.Render("[r] restart  [enter] menu"))
		box := styles.Box.BorderForeground(lipgloss.Color("#FF5F87")).Width(52)
		return lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, box.Render(content))
	}
	return ""
}
