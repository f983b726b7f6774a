// Package tui is the terminal front-end for the practice assistant. It shows
// the mock-interview transcript and the resume checker as two tabs and
// renders whatever the controller reports through [controller.View].
package tui

import (
	"context"
	"errors"
	"sync/atomic"

	cb "github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/vedannt004/careerprep-chatbot/internal/controller"
	"github.com/vedannt004/careerprep-chatbot/internal/dto"
)

// Controller is the set of user actions the terminal can trigger.
type Controller interface {
	SelectTab(tab controller.Tab) error
	StartInterview(ctx context.Context) error
	Send(ctx context.Context, text string) error
	ExtractResume(ctx context.Context, path string) error
	Score(ctx context.Context) error
	LoadStatus(ctx context.Context) (*dto.StatusResponse, error)
	ShowHistory(ctx context.Context) error
	ToggleListening() error

	SetMode(mode string)
	SetRole(role string)
	SetCompany(company string)
	SetDifficulty(difficulty string)
	SetTTS(enabled bool)
	SetAutoSend(enabled bool)
	SetResumeText(text string)
	SetJobDescription(text string)

	Mode() string
	Settings() controller.Settings
	TTSEnabled() bool
	AutoSend() bool
	LastQuestion() string
}

var errNotBound = errors.New("tui: no controller bound")

var _ controller.View = (*UI)(nil)

// UI owns the Bubble Tea program. Its View methods are safe to call from
// any goroutine once Run has started; earlier calls are dropped.
type UI struct {
	program *tea.Program
	ctrl    Controller
	done    atomic.Bool
	logger  zerolog.Logger
	copy    func(string) error
}

func New(logger zerolog.Logger) *UI {
	return &UI{
		logger: logger.With().Str("component", "tui").Logger(),
		copy:   cb.WriteAll,
	}
}

// Bind attaches the controller. Call before Run.
func (u *UI) Bind(ctrl Controller) { u.ctrl = ctrl }

// Run starts the event loop and blocks until the user quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	if u.ctrl == nil {
		return errNotBound
	}

	m := newModel(ctx, u.ctrl, u.copy, u.logger)
	u.program = tea.NewProgram(m, tea.WithAltScreen())

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			u.Quit()
		case <-stop:
		}
	}()

	_, err := u.program.Run()
	u.done.Store(true)
	return err
}

func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

func (u *UI) send(msg tea.Msg) {
	if u.program != nil && !u.done.Load() {
		u.program.Send(msg)
	}
}

func (u *UI) RenderTabs(tabs []controller.TabState) {
	u.send(tabsMsg(append([]controller.TabState(nil), tabs...)))
}

func (u *UI) ClearTranscript() { u.send(clearMsg{}) }

func (u *UI) AppendMessage(msg controller.Message) { u.send(appendMsg{msg: msg}) }

func (u *UI) SetInput(text string) { u.send(inputMsg{text: text}) }

func (u *UI) SetResumeText(text string) { u.send(resumeMsg{text: text}) }

func (u *UI) ShowScore(card controller.ScoreCard) { u.send(scoreMsg{card: card}) }

func (u *UI) Alert(text string) { u.send(alertMsg{text: text}) }

func (u *UI) SetVoiceStatus(text string) { u.send(voiceStatusMsg{text: text}) }

func (u *UI) SetListening(listening bool) { u.send(listeningMsg{on: listening}) }

func (u *UI) SetBadge(badge controller.Badge) { u.send(badgeMsg{badge: badge}) }
