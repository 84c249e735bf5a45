// Package tui provides the Bubble Tea game interface.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/scripttyper/internal/clock"
	"github.com/verte-zerg/scripttyper/internal/game"
	"github.com/verte-zerg/scripttyper/internal/model"
)

type tab int

const (
	tabType tab = iota
	tabShop
	tabLog
)

var tabNames = []string{"Type", "Shop", "Log"}

const (
	welcomeWord  = "Welcome"
	commentTTL   = 3 * time.Second
	refreshEvery = time.Second
)

// StateChangedMsg tells the model to re-read engine state. Send it from
// outside the Bubble Tea loop, e.g. from an engine change listener.
type StateChangedMsg struct{}

type tickMsg time.Time

type commentExpiredMsg struct {
	id string
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	alarmStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	positiveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	activeNavStyle   = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F0F0F0")).
				Bold(true).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea game UI. It holds a snapshot of the engine
// state and forwards every input to the engine.
type Model struct {
	engine *game.Engine
	clk    clock.Clock
	keys   keyMap
	help   help.Model

	st game.State

	width  int
	height int
	active tab

	welcome   []rune
	notice    string
	commentID string
	logView   viewport.Model
}

// NewModel constructs the game UI for engine.
func NewModel(engine *game.Engine, clk clock.Clock) *Model {
	if clk == nil {
		clk = clock.Real{}
	}
	m := &Model{
		engine:  engine,
		clk:     clk,
		keys:    newKeyMap(),
		help:    help.New(),
		logView: viewport.New(0, 0),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.refresh())
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case StateChangedMsg:
		return m, m.refresh()
	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())
	case commentExpiredMsg:
		if len(m.st.Comments) > 0 && m.st.Comments[0].ID == msg.id {
			m.engine.PopComment()
		}
		return m, m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if !m.st.Player.WelcomeComplete {
		m.handleWelcome(msg)
		return m, m.refresh()
	}
	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.active = (m.active + 1) % tab(len(tabNames))
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.active = (m.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return m, nil
	}
	switch m.active {
	case tabShop:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleShop(msg)
	case tabLog:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if !key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown) {
			return m, nil
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	default:
		m.handleTyping(msg)
	}
	return m, m.refresh()
}

func (m *Model) handleWelcome(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(m.welcome) > 0 {
			m.welcome = m.welcome[:len(m.welcome)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if len(m.welcome) < len([]rune(welcomeWord)) {
				m.welcome = append(m.welcome, r)
			}
		}
	}
	if string(m.welcome) == welcomeWord {
		m.engine.CompleteWelcome()
	}
}

func (m *Model) handleTyping(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Start):
		if m.st.Run.Status != model.RunActive {
			m.report(m.engine.Start(game.StartOptions{}), m.startRefusal())
		}
	case key.Matches(msg, m.keys.Skip):
		m.report(m.engine.Skip(), "Can't skip right now.")
	case msg.Type == tea.KeySpace:
		m.typeRunes([]rune{' '})
	case msg.Type == tea.KeyRunes:
		m.typeRunes(msg.Runes)
	}
}

// typeRunes drops input while an alarm is counting down.
func (m *Model) typeRunes(runes []rune) {
	if m.st.Alarm.Pending {
		return
	}
	for _, r := range runes {
		m.engine.Type(r)
	}
}

func (m *Model) startRefusal() string {
	switch {
	case len(m.st.Texts) == 0:
		return "No texts loaded."
	case m.st.Player.Paper <= 0:
		return "Out of paper. Buy more in the shop."
	default:
		return "Can't start right now."
	}
}

func (m *Model) handleShop(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Buy):
		idx := int(msg.Runes[0] - '1')
		shelf := game.VisibleItems(m.st)
		if idx < 0 || idx >= len(shelf) {
			return
		}
		m.report(m.engine.Buy(shelf[idx].ID), "Not enough to buy "+shelf[idx].Name+".")
	case key.Matches(msg, m.keys.CraftArt):
		m.report(m.engine.CraftArticle(1), "Not enough chars for an article.")
	case key.Matches(msg, m.keys.CraftBook):
		m.report(m.engine.CraftBook(1), "Not enough chars for a book.")
	case key.Matches(msg, m.keys.SellArt):
		m.report(m.engine.SellArticle(1), "No articles to sell.")
	case key.Matches(msg, m.keys.SellBook):
		m.report(m.engine.SellBook(1), "No books to sell.")
	case key.Matches(msg, m.keys.ArtDown):
		m.engine.AdjustPrice(game.Article, game.PriceDown)
	case key.Matches(msg, m.keys.ArtUp):
		m.engine.AdjustPrice(game.Article, game.PriceUp)
	case key.Matches(msg, m.keys.BookDown):
		m.engine.AdjustPrice(game.Book, game.PriceDown)
	case key.Matches(msg, m.keys.BookUp):
		m.engine.AdjustPrice(game.Book, game.PriceUp)
	case key.Matches(msg, m.keys.Paper):
		m.report(m.engine.BuyPaper(), "Not enough money for paper.")
	}
}

func (m *Model) report(ok bool, refusal string) {
	if ok {
		m.notice = ""
		return
	}
	m.notice = refusal
}

// refresh re-reads the engine and arms expiry for a newly shown comment.
func (m *Model) refresh() tea.Cmd {
	m.st = m.engine.Snapshot()
	m.logView.SetContent(renderLog(m.st.Logs))
	if len(m.st.Comments) == 0 {
		m.commentID = ""
		return nil
	}
	head := m.st.Comments[0].ID
	if head == m.commentID {
		return nil
	}
	m.commentID = head
	return tea.Tick(commentTTL, func(time.Time) tea.Msg { return commentExpiredMsg{id: head} })
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, body, _ := m.layoutHeights()
	m.logView.Width = m.width
	m.logView.Height = body
	m.help.Width = m.width
}

func (m *Model) layoutHeights() (header, body, footer int) {
	header = 4
	footer = 2
	body = max(1, m.height-header-footer)
	return header, body, footer
}
