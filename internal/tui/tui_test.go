package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/vedannt004/careerprep-chatbot/internal/controller"
	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/speech"
)

type fakeController struct {
	mu         sync.Mutex
	sent       []string
	tabs       []controller.Tab
	uploads    []string
	started    int
	scored     int
	toggleErr  error
	settings   controller.Settings
	mode       string
	tts        bool
	autoSend   bool
	resumeText string
	jobDesc    string
	question   string
}

func (f *fakeController) SelectTab(tab controller.Tab) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs = append(f.tabs, tab)
	return nil
}

func (f *fakeController) StartInterview(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return nil
}

func (f *fakeController) Send(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeController) ExtractResume(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, path)
	return nil
}

func (f *fakeController) Score(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scored++
	return nil
}

func (f *fakeController) LoadStatus(ctx context.Context) (*dto.StatusResponse, error) {
	return &dto.StatusResponse{}, nil
}

func (f *fakeController) ShowHistory(ctx context.Context) error { return nil }

func (f *fakeController) ToggleListening() error { return f.toggleErr }

func (f *fakeController) SetMode(mode string) { f.mode = mode }

func (f *fakeController) SetRole(role string) { f.settings.Role = role }

func (f *fakeController) SetCompany(company string) { f.settings.Company = company }

func (f *fakeController) SetDifficulty(difficulty string) { f.settings.Difficulty = difficulty }

func (f *fakeController) SetTTS(enabled bool) { f.tts = enabled }

func (f *fakeController) SetAutoSend(enabled bool) { f.autoSend = enabled }

func (f *fakeController) SetResumeText(text string) { f.resumeText = text }

func (f *fakeController) SetJobDescription(text string) { f.jobDesc = text }

func (f *fakeController) Mode() string { return f.mode }

func (f *fakeController) Settings() controller.Settings { return f.settings }

func (f *fakeController) TTSEnabled() bool { return f.tts }

func (f *fakeController) AutoSend() bool { return f.autoSend }

func (f *fakeController) LastQuestion() string { return f.question }

func testModel(ctrl *fakeController) model {
	m := newModel(context.Background(), ctrl, func(string) error { return nil }, zerolog.Nop())
	m.resize(100, 30)
	return m
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// enter types line into the input and presses Enter.
func enter(t *testing.T, m model, line string) (model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// finish runs a task command and feeds its result back.
func finish(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m, _ = update(t, m, cmd())
	return m
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
		ok   bool
	}{
		{"hello there", command{}, false},
		{"/start", command{name: "start"}, true},
		{"  /TAB   Resume ", command{name: "tab", arg: "Resume"}, true},
		{"/upload /tmp/my cv.pdf", command{name: "upload", arg: "/tmp/my cv.pdf"}, true},
		{"/", command{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := parseCommand(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseCommand(%q) = %+v, %v; want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseToggle(t *testing.T) {
	if v, _ := parseToggle("", true); v {
		t.Error("empty argument should flip")
	}
	if v, _ := parseToggle("ON", false); !v {
		t.Error("ON should enable")
	}
	if _, err := parseToggle("maybe", false); err == nil {
		t.Error("expected error for unknown value")
	}
}

func TestModel_EnterSendsAnswer(t *testing.T) {
	ctrl := &fakeController{}
	m := testModel(ctrl)

	m, cmd := enter(t, m, "   ")
	if cmd != nil {
		t.Error("blank input must not start a task")
	}

	m, cmd = enter(t, m, "  I led the migration.  ")
	if m.pending != 1 {
		t.Errorf("pending = %d, want 1", m.pending)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	m = finish(t, m, cmd)
	if m.pending != 0 {
		t.Errorf("pending = %d after done", m.pending)
	}
	if len(ctrl.sent) != 1 || ctrl.sent[0] != "I led the migration." {
		t.Errorf("sent = %q", ctrl.sent)
	}
}

func TestModel_Commands(t *testing.T) {
	ctrl := &fakeController{tts: true, question: "Tell me about a conflict."}
	var copied string
	m := newModel(context.Background(), ctrl, func(s string) error {
		copied = s
		return nil
	}, zerolog.Nop())

	m, _ = enter(t, m, "/tts off")
	if ctrl.tts || m.tts {
		t.Error("/tts off did not disable voice output")
	}

	m, _ = enter(t, m, "/difficulty hard")
	if ctrl.settings.Difficulty != "Hard" {
		t.Errorf("difficulty = %q", ctrl.settings.Difficulty)
	}

	m, _ = enter(t, m, "/mode nonsense")
	if m.alert == "" || ctrl.mode != "" {
		t.Error("unknown mode should alert without changing the mode")
	}

	m, _ = enter(t, m, "/mode softskills")
	if ctrl.mode != dto.ModeSoftSkills {
		t.Errorf("mode = %q", ctrl.mode)
	}

	m, _ = enter(t, m, "/copy")
	if copied != "Tell me about a conflict." {
		t.Errorf("copied %q", copied)
	}

	m, cmd := enter(t, m, `/upload "/tmp/cv.pdf"`)
	m = finish(t, m, cmd)
	if len(ctrl.uploads) != 1 || ctrl.uploads[0] != "/tmp/cv.pdf" {
		t.Errorf("uploads = %q", ctrl.uploads)
	}

	m, cmd = enter(t, m, "/start")
	m = finish(t, m, cmd)
	if ctrl.started != 1 {
		t.Error("/start did not start an interview")
	}

	m, _ = enter(t, m, "/bogus")
	if !strings.Contains(m.alert, "/bogus") {
		t.Errorf("alert = %q", m.alert)
	}

	_, cmd = enter(t, m, "/quit")
	if cmd == nil {
		t.Error("/quit should return tea.Quit")
	}
}

func TestModel_MicErrors(t *testing.T) {
	ctrl := &fakeController{toggleErr: errors.New("device busy")}
	m := testModel(ctrl)

	m, cmd := enter(t, m, "/mic")
	m = finish(t, m, cmd)
	if !strings.Contains(m.alert, "device busy") {
		t.Errorf("alert = %q", m.alert)
	}

	ctrl.toggleErr = speech.ErrUnsupported
	m.alert = ""
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = finish(t, m, cmd)
	if m.alert != "" {
		t.Errorf("unsupported provider alerts through the view, got %q", m.alert)
	}
}

func TestModel_TabsActivateOnePanel(t *testing.T) {
	ctrl := &fakeController{}
	m := testModel(ctrl)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = finish(t, m, cmd)
	if len(ctrl.tabs) != 1 || ctrl.tabs[0] != controller.TabResume {
		t.Errorf("tabs = %v", ctrl.tabs)
	}

	m, _ = update(t, m, tabsMsg{
		{Tab: controller.TabInterview},
		{Tab: controller.TabResume, Active: true},
	})
	if m.active != controller.TabResume {
		t.Errorf("active = %s", m.active)
	}
	if !strings.Contains(m.content(), "Job description") {
		t.Error("resume panel not rendered")
	}
}

func TestModel_ScoreCard(t *testing.T) {
	m := testModel(&fakeController{})
	m, _ = update(t, m, tabsMsg{{Tab: controller.TabResume, Active: true}})
	m, _ = update(t, m, scoreMsg{card: controller.ScoreCard{
		Score:   50,
		Present: []string{"teamwork"},
		Missing: []string{"SQL"},
	}})

	content := m.content()
	if got := strings.Count(content, itemBullet); got != 2 {
		t.Errorf("rendered %d keyword items, want 2", got)
	}
	if strings.Count(content, "teamwork") != 1 || strings.Count(content, "SQL") != 1 {
		t.Errorf("unexpected keyword rendering:\n%s", content)
	}

	// a new score replaces the lists
	m, _ = update(t, m, scoreMsg{card: controller.ScoreCard{Score: 0}})
	if strings.Contains(m.content(), itemBullet) {
		t.Error("old keywords were not cleared")
	}
}

func TestModel_ViewMessages(t *testing.T) {
	m := testModel(&fakeController{})
	m, _ = update(t, m, appendMsg{msg: controller.Message{Role: controller.RoleBot, Text: "Why this company?"}})
	m, _ = update(t, m, inputMsg{text: "because"})
	m, _ = update(t, m, badgeMsg{badge: controller.BadgeFor(true)})
	m, _ = update(t, m, listeningMsg{on: true})

	if m.input.Value() != "because" {
		t.Errorf("input = %q", m.input.Value())
	}
	view := m.View()
	for _, want := range []string{"Why this company?", "AI: On (OpenAI)", "mic"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(t, m, clearMsg{})
	if len(m.lines) != 0 {
		t.Error("transcript not cleared")
	}
}

func TestUI_DropsBeforeRun(t *testing.T) {
	u := New(zerolog.Nop())
	u.AppendMessage(controller.Message{Text: "ignored"})
	u.Alert("ignored")
	u.RenderTabs(nil)

	if err := u.Run(context.Background()); !errors.Is(err, errNotBound) {
		t.Errorf("Run() without controller = %v", err)
	}
}
