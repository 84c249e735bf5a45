package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/scripttyper/internal/game"
	"github.com/verte-zerg/scripttyper/internal/model"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if !m.st.Player.WelcomeComplete {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderWelcome())
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) renderWelcome() string {
	target := []rune(welcomeWord)
	var b strings.Builder
	for i, r := range target {
		switch {
		case i >= len(m.welcome):
			b.WriteString(pendingStyle.Render(string(r)))
		case m.welcome[i] == r:
			b.WriteString(correctStyle.Render(string(r)))
		default:
			b.WriteString(incorrectStyle.Render(string(r)))
		}
	}
	content := strings.Join([]string{
		cardValueStyle.Render("Welcome"),
		mutedStyle.Render("Type the word below to begin."),
		"",
		b.String(),
	}, "\n")
	return modalStyle.Render(content)
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.active {
			parts = append(parts, activeNavStyle.Render(name))
		} else {
			parts = append(parts, inactiveNavStyle.Render(name))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return tabs + "\n" + m.renderScoreboard()
}

func (m *Model) renderScoreboard() string {
	p := m.st.Player
	line := fmt.Sprintf("Chars %d  Lifetime %d  Pages %d  Books %d  Money %d  Paper %d  Skips %d",
		p.Chars, p.LifetimeChars, game.Pages(m.st), game.Books(m.st), p.Money, p.Paper, p.Skips)
	out := mutedStyle.Render(truncateLine(line, m.width))
	if a := m.st.LastAward; a != nil && lipgloss.Width(out) < m.width-8 {
		out += positiveStyle.Render(fmt.Sprintf("  +%d", a.Amount))
	}
	return out
}

func (m *Model) renderBody() string {
	switch m.active {
	case tabShop:
		return m.renderShop()
	case tabLog:
		return m.logView.View()
	default:
		return m.renderTyping()
	}
}

func (m *Model) renderTyping() string {
	var lines []string
	if m.st.Alarm.Pending {
		lines = append(lines, alarmStyle.Render(fmt.Sprintf("ALARM incoming in %ds: prepare!", m.st.Alarm.Countdown)), "")
	}
	run := m.st.Run
	if run.Status != model.RunActive || run.Text == nil {
		lines = append(lines, mutedStyle.Render("Press enter to begin typing a random text. ctrl+s skips while active."))
		return strings.Join(lines, "\n")
	}

	title := fmt.Sprintf("%s • %s", run.Text.Title, run.Text.Genre)
	if run.Alarm {
		title += "  " + alarmStyle.Render("ALARM")
	}
	lines = append(lines, mutedStyle.Render(title), "")

	contentWidth := max(1, int(float64(m.width)*0.70))
	lines = append(lines, wrapStyledRunes(buildStyledRunes(run.Text.Runes(), run.Typed), contentWidth), "")

	elapsed := 0
	if run.StartedAt != nil {
		elapsed = int(m.clk.Now().Sub(*run.StartedAt).Seconds())
	}
	status := fmt.Sprintf("Correct %s  Wrong %s  Typed %d/%d  Time %ds  Progress %d%%",
		correctStyle.Render(fmt.Sprint(run.Correct)),
		incorrectStyle.Render(fmt.Sprint(run.Wrong)),
		len(run.Typed), len(run.Text.Runes()), elapsed, game.Progress(m.st))
	if run.TimeLimitSec > 0 {
		status += alarmStyle.Render(fmt.Sprintf("  Left %ds", max(0, run.TimeLimitSec-elapsed)))
	}
	lines = append(lines, status)
	return strings.Join(lines, "\n")
}

func (m *Model) renderShop() string {
	var store []string
	store = append(store, cardTitleStyle.Render("Store"))
	shelf := game.VisibleItems(m.st)
	if len(shelf) == 0 {
		store = append(store, mutedStyle.Render("No items available yet. Keep progressing!"))
	}
	p := m.st.Player
	for i, it := range shelf {
		cost := fmt.Sprintf("%d chars", it.Cost.Chars)
		if it.Cost.Money > 0 {
			cost += fmt.Sprintf(", %d money", it.Cost.Money)
		}
		style := mutedStyle
		if p.Chars >= it.Cost.Chars && p.Money >= it.Cost.Money {
			style = correctStyle
		}
		store = append(store, style.Render(fmt.Sprintf("%d) %s: %s (%s)", i+1, it.Name, it.Desc, cost)))
	}
	if owned := game.OwnedItems(m.st); len(owned) > 0 {
		names := make([]string, len(owned))
		for i, it := range owned {
			names[i] = it.Name
		}
		store = append(store, "", mutedStyle.Render("Owned: "+strings.Join(names, ", ")))
	}
	if unlocked := game.UnlockedAchievements(m.st); len(unlocked) > 0 {
		names := make([]string, len(unlocked))
		for i, a := range unlocked {
			names[i] = a.Name
		}
		store = append(store, mutedStyle.Render("Achievements: "+strings.Join(names, ", ")))
	}

	cards := []string{
		metricCard("Articles", fmt.Sprintf("%d @ %d", p.Inventory.Articles, p.Prices.Article)),
		metricCard("Books", fmt.Sprintf("%d @ %d", p.Inventory.Books, p.Prices.Book)),
		metricCard("Article cost", fmt.Sprintf("%d chars", m.engine.UnitCost(game.Article))),
		metricCard("Book cost", fmt.Sprintf("%d chars", m.engine.UnitCost(game.Book))),
	}
	var business string
	if m.width < 80 {
		business = strings.Join(cards, "\n")
	} else {
		business = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	return strings.Join(store, "\n") + "\n\n" + cardTitleStyle.Render("Business") + "\n" + business
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderFooter() string {
	var status string
	switch {
	case len(m.st.Comments) > 0:
		c := m.st.Comments[0]
		style := positiveStyle
		if c.Tone == model.ToneNegative {
			style = incorrectStyle
		}
		status = style.Render(c.Text)
	case m.notice != "":
		status = mutedStyle.Render(m.notice)
	}
	bindings := m.keys.forTab(m.active)
	if !m.st.Player.WelcomeComplete {
		bindings = []key.Binding{m.keys.ForceQuit}
	}
	return status + "\n" + m.help.ShortHelpView(bindings)
}

// renderLog lists events newest first.
func renderLog(events []model.GameEvent) string {
	if len(events) == 0 {
		return mutedStyle.Render("No events yet.")
	}
	lines := make([]string, 0, len(events))
	for _, e := range slices.Backward(events) {
		lines = append(lines, mutedStyle.Render(e.TS.Local().Format("15:04:05"))+" "+e.Message)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
