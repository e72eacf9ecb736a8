// Package tui is the terminal host. It polls snapshots, draws them and turns
// key presses into tracker input; it holds no game logic of its own.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pingpong/internal/input"
	"github.com/lox/pingpong/internal/pong"
)

// Input receives key events. *input.Tracker implements it.
type Input interface {
	Press(key string)
	Release(key string)
}

// SnapshotSource returns the latest snapshot and whether there is one yet.
type SnapshotSource func() (pong.Snapshot, bool)

// Options configures a Model.
type Options struct {
	Title string

	// Input is nil for a read-only view.
	Input Input

	// Clock drives key-hold timers; defaults to the real clock.
	Clock quartz.Clock

	// KeyHold is how long a movement key stays held after a press. Terminals
	// only report presses, so key repeat keeps a held key alive.
	KeyHold time.Duration

	// Refresh is the redraw interval.
	Refresh time.Duration

	// Status returns an extra line shown under the arena.
	Status func() string

	// Done ends the program when closed, e.g. when a feed disconnects.
	Done <-chan struct{}

	Logger *log.Logger
}

type refreshMsg time.Time

type doneMsg struct{}

// Model is the bubbletea model for play and watch.
type Model struct {
	source  SnapshotSource
	input   Input
	clock   quartz.Clock
	keyHold time.Duration
	refresh time.Duration
	status  func() string
	done    <-chan struct{}
	title   string
	logger  *log.Logger

	keys  keyMap
	help  help.Model
	holds map[input.Key]*quartz.Timer

	snap     pong.Snapshot
	haveSnap bool
	width    int
	quitting bool
}

// NewModel creates a model reading from source.
func NewModel(source SnapshotSource, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.KeyHold <= 0 {
		opts.KeyHold = 200 * time.Millisecond
	}
	if opts.Refresh <= 0 {
		opts.Refresh = time.Second / 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Title == "" {
		opts.Title = "PING PONG"
	}

	return &Model{
		source:  source,
		input:   opts.Input,
		clock:   opts.Clock,
		keyHold: opts.KeyHold,
		refresh: opts.Refresh,
		status:  opts.Status,
		done:    opts.Done,
		title:   opts.Title,
		logger:  opts.Logger.WithPrefix("tui"),
		keys:    newKeyMap(opts.Input == nil),
		help:    help.New(),
		holds:   make(map[input.Key]*quartz.Timer),
	}
}

// Init starts the redraw loop.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.poll(), m.scheduleRefresh()}
	if m.done != nil {
		done := m.done
		cmds = append(cmds, func() tea.Msg {
			<-done
			return doneMsg{}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m *Model) poll() tea.Cmd {
	return func() tea.Msg { return refreshMsg(time.Now()) }
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		if snap, ok := m.source(); ok {
			m.snap, m.haveSnap = snap, true
		}
		return m, m.scheduleRefresh()

	case doneMsg:
		m.logger.Info("Feed ended")
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.hold(msg.String())
		case key.Matches(msg, m.keys.Pause), key.Matches(msg, m.keys.Start):
			m.input.Press(msg.String())
			m.input.Release(msg.String())
		}
	}
	return m, nil
}

// hold presses a movement key and (re)arms the timer that releases it.
func (m *Model) hold(raw string) {
	k := input.Normalize(raw)
	m.input.Press(raw)

	if t, ok := m.holds[k]; ok {
		t.Reset(m.keyHold)
		return
	}
	tracker := m.input
	m.holds[k] = m.clock.AfterFunc(m.keyHold, func() {
		tracker.Release(string(k))
	}, "hold", string(k))
}

// Stop cancels pending key releases and releases every held key.
func (m *Model) Stop() {
	for k, t := range m.holds {
		t.Stop()
		if m.input != nil {
			m.input.Release(string(k))
		}
		delete(m.holds, k)
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.haveSnap {
		return InfoStyle.Render("Waiting for the first frame...")
	}

	l := m.snap.Layout
	maxCols := 78
	if m.width > 0 {
		maxCols = min(m.width-2, 118)
	}
	cols, rows := arenaSize(l, maxCols)

	sections := []string{
		m.renderHeader(cols + 2),
		renderArena(m.snap, cols, rows),
		m.renderBanner(),
	}
	if m.status != nil {
		if s := m.status(); s != "" {
			sections = append(sections, InfoStyle.Render(s))
		}
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader(width int) string {
	s := m.snap.State
	title := HeaderStyle.Render(m.title)
	score := ScoreStyle.Render(fmt.Sprintf("YOU %d : %d AI", s.PlayerScore, s.AIScore))
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(score), 1)
	return title + strings.Repeat(" ", gap) + score
}

func (m *Model) renderBanner() string {
	s := m.snap.State
	switch s.Phase {
	case pong.Idle:
		return WarningStyle.Render(fmt.Sprintf("First to %d. Press Enter to start.", m.snap.Layout.WinScore))
	case pong.Paused:
		return WarningStyle.Render("PAUSED. Press Space to resume.")
	case pong.Finished:
		if s.Winner == pong.PlayerSide {
			return SuccessStyle.Render("You win! Press Enter to play again.")
		}
		return ErrorStyle.Render("AI wins. Press Enter to play again.")
	}
	return InfoStyle.Render(fmt.Sprintf("Frame %d", m.snap.Frame))
}

// Run runs the program until the user quits or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	defer m.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
