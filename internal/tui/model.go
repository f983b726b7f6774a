package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/vedannt004/careerprep-chatbot/internal/controller"
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4f4f5")).
			Background(lipgloss.Color("#3f3f46")).
			Bold(true).
			Padding(0, 1)

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3f3f46"))

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	presentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	micOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
)

const (
	headerLines = 2
	footerLines = 4
	itemBullet  = "• "
)

var tabTitles = map[controller.Tab]string{
	controller.TabInterview: "Mock Interview",
	controller.TabResume:    "Resume / ATS",
}

// Messages posted by UI into the running program.
type (
	tabsMsg        []controller.TabState
	clearMsg       struct{}
	appendMsg      struct{ msg controller.Message }
	inputMsg       struct{ text string }
	resumeMsg      struct{ text string }
	scoreMsg       struct{ card controller.ScoreCard }
	alertMsg       struct{ text string }
	noticeMsg      struct{ text string }
	voiceStatusMsg struct{ text string }
	listeningMsg   struct{ on bool }
	badgeMsg       struct{ badge controller.Badge }
)

// doneMsg ends one background task started by Update.
type doneMsg struct {
	action string
	err    error
}

// alertError is a task failure the controller did not already report.
type alertError struct{ text string }

func (e alertError) Error() string { return e.text }

type model struct {
	ctx    context.Context
	ctrl   Controller
	copy   func(string) error
	logger zerolog.Logger

	input   textinput.Model
	body    viewport.Model
	spinner spinner.Model
	width   int
	height  int

	active    controller.Tab
	lines     []controller.Message
	resume    string
	jobDesc   string
	score     *controller.ScoreCard
	alert     string
	notice    string
	voice     string
	listening bool
	badge     controller.Badge
	tts       bool
	autoSend  bool
	pending   int
	quitting  bool
}

func newModel(ctx context.Context, ctrl Controller, copyFn func(string) error, logger zerolog.Logger) model {
	ti := textinput.New()
	// plain prompt; styled prompts break the input width math
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "Type your answer, or /help"
	ti.CharLimit = 4000
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a"))

	m := model{
		ctx:      ctx,
		ctrl:     ctrl,
		copy:     copyFn,
		logger:   logger,
		input:    ti,
		body:     viewport.New(0, 0),
		spinner:  sp,
		active:   controller.TabInterview,
		badge:    controller.BadgeFor(false),
		tts:      ctrl.TTSEnabled(),
		autoSend: ctrl.AutoSend(),
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tea.SetWindowTitle("careerprep"),
		func() tea.Msg {
			_ = ctrl.SelectTab(controller.TabInterview)
			// an unreachable server leaves the badge off
			_, _ = ctrl.LoadStatus(ctx)
			return nil
		},
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyTab:
			return m.startTask("select tab", m.selectTabTask(m.nextTab()))
		case tea.KeyCtrlT:
			return m.startTask("toggle mic", m.toggleMicTask())
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			m.alert = ""
			m.notice = ""
			return m.submit(line)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tabsMsg:
		for _, t := range msg {
			if t.Active {
				m.active = t.Tab
			}
		}
		m.refresh()
		return m, nil

	case clearMsg:
		m.lines = nil
		m.refresh()
		return m, nil

	case appendMsg:
		m.lines = append(m.lines, msg.msg)
		m.refresh()
		return m, nil

	case inputMsg:
		m.input.SetValue(msg.text)
		m.input.CursorEnd()
		return m, nil

	case resumeMsg:
		m.resume = msg.text
		m.refresh()
		return m, nil

	case scoreMsg:
		card := msg.card
		m.score = &card
		m.refresh()
		return m, nil

	case alertMsg:
		m.alert = msg.text
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case voiceStatusMsg:
		m.voice = msg.text
		return m, nil

	case listeningMsg:
		m.listening = msg.on
		return m, nil

	case badgeMsg:
		m.badge = msg.badge
		return m, nil

	case doneMsg:
		if m.pending > 0 {
			m.pending--
		}
		var ae alertError
		if errors.As(msg.err, &ae) {
			m.alert = ae.text
		} else if msg.err != nil {
			m.logger.Debug().Err(msg.err).Str("action", msg.action).Msg("task finished with error")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startTask runs fn off the event loop. Controller calls that render must
// go through here: the view posts back into the program.
func (m model) startTask(action string, fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.pending++
	ctx := m.ctx
	return m, func() tea.Msg {
		return doneMsg{action: action, err: fn(ctx)}
	}
}

func (m model) nextTab() controller.Tab {
	for i, t := range controller.Tabs {
		if t == m.active {
			return controller.Tabs[(i+1)%len(controller.Tabs)]
		}
	}
	return controller.TabInterview
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height

	m.body.Width = width
	bodyHeight := height - headerLines - footerLines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.body.Height = bodyHeight

	promptLen := lipgloss.Width(m.input.Prompt)
	if width > promptLen+1 {
		m.input.Width = width - promptLen - 1
	}
	m.refresh()
}

func (m *model) refresh() {
	m.body.SetContent(m.content())
	if m.active == controller.TabInterview {
		m.body.GotoBottom()
	}
}

func (m model) contentWidth() int {
	if m.body.Width > 0 {
		return m.body.Width
	}
	return 80
}

func (m model) content() string {
	if m.active == controller.TabResume {
		return m.resumeContent()
	}
	return m.transcriptContent()
}

func (m model) transcriptContent() string {
	if len(m.lines) == 0 {
		return hintStyle.Render("Type /start to begin a mock interview.")
	}

	w := m.contentWidth()
	var b strings.Builder
	for i, line := range m.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		switch line.Role {
		case controller.RoleUser:
			b.WriteString(userStyle.Width(w).Render("you> " + line.Text))
		case controller.RoleBot:
			b.WriteString(botStyle.Width(w).Render("coach> " + line.Text))
		default:
			b.WriteString(systemStyle.Width(w).Render(line.Text))
		}
	}
	return b.String()
}

func (m model) resumeContent() string {
	wrap := lipgloss.NewStyle().Width(m.contentWidth())
	var b strings.Builder

	b.WriteString(headingStyle.Render("Resume"))
	b.WriteString("\n")
	if m.resume == "" {
		b.WriteString(hintStyle.Render("No resume yet. Use /upload <path> or /resume <text>."))
	} else {
		b.WriteString(wrap.Render(m.resume))
	}

	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render("Job description"))
	b.WriteString("\n")
	if m.jobDesc == "" {
		b.WriteString(hintStyle.Render("Paste one with /jd <text>, then /score."))
	} else {
		b.WriteString(wrap.Render(m.jobDesc))
	}

	if m.score != nil {
		b.WriteString("\n\n")
		b.WriteString(headingStyle.Render(fmt.Sprintf("ATS score: %d/100", m.score.Score)))
		b.WriteString("\n")
		writeKeywords(&b, "Present keywords", m.score.Present, presentStyle)
		writeKeywords(&b, "Missing keywords", m.score.Missing, missingStyle)
	}
	return b.String()
}

func writeKeywords(b *strings.Builder, title string, keywords []string, style lipgloss.Style) {
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n")
	if len(keywords) == 0 {
		b.WriteString(hintStyle.Render("  (none)"))
		b.WriteString("\n")
		return
	}
	for _, kw := range keywords {
		b.WriteString("  ")
		b.WriteString(style.Render(itemBullet + kw))
		b.WriteString("\n")
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.separator())
	b.WriteString("\n")
	b.WriteString(m.body.View())
	b.WriteString("\n")
	b.WriteString(m.separator())
	b.WriteString("\n")
	b.WriteString(m.messageLine())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) header() string {
	var tabs []string
	for _, t := range controller.Tabs {
		style := tabStyle
		if t == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(tabTitles[t]))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	right := lipgloss.NewStyle().Foreground(lipgloss.Color(m.badge.Color)).Render(m.badge.Text)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m model) separator() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	return sepStyle.Render(strings.Repeat("─", w))
}

func (m model) messageLine() string {
	switch {
	case m.alert != "":
		return alertStyle.Render("! " + m.alert)
	case m.notice != "":
		return noticeStyle.Render(m.notice)
	}
	return ""
}

func (m model) statusLine() string {
	var parts []string
	if m.pending > 0 {
		parts = append(parts, m.spinner.View()+" waiting for the server")
	}
	if m.listening {
		parts = append(parts, micOnStyle.Render("● mic"))
	}
	if m.voice != "" {
		parts = append(parts, m.voice)
	}
	parts = append(parts, hintStyle.Render(fmt.Sprintf("tts %s · auto-send %s", onOff(m.tts), onOff(m.autoSend))))
	return strings.Join(parts, "  ")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
