package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vedannt004/careerprep-chatbot/internal/client"
	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/speech"
)

const (
	StartMessage        = "Starting mock interview. Answer the questions in 120–180 words using STAR (Situation, Task, Action, Result)."
	NoFileAlert         = "Select a resume file first."
	UnsupportedMicAlert = "Speech recognition is not supported here. Check that a microphone and audio server are available."
	BusyAlert           = "Still waiting for the previous reply."
	ListeningStatus     = "Listening..."

	defaultDifficulty = "Medium"
	defaultRole       = "general"
	speechJoiner      = ". "

	aiOnText   = "AI: On (OpenAI)"
	aiOffText  = "AI: Off (Local Mode)"
	aiOnColor  = "#8ef5b5"
	aiOffColor = "#ffd27a"
)

type Tab string

const (
	TabInterview Tab = "interview"
	TabResume    Tab = "resume"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabInterview, TabResume}

var ErrUnknownTab = errors.New("unknown tab")

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleBot    Role = "bot"
)

type Message struct {
	Role Role
	Text string
}

// TabState is one tab/panel pair.
type TabState struct {
	Tab    Tab
	Active bool
}

type ScoreCard struct {
	Score   int
	Present []string
	Missing []string
}

type Badge struct {
	Text  string
	Color string
}

type Settings struct {
	Role       string
	Company    string
	Difficulty string
}

// API is the part of the HTTP client the controller drives.
type API interface {
	Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
	UploadResume(ctx context.Context, filename string, r io.Reader) (*dto.UploadResumeResponse, error)
	ATSScore(ctx context.Context, req dto.ATSScoreRequest) (*dto.ATSScoreResponse, error)
	Status(ctx context.Context) (*dto.StatusResponse, error)
	History(ctx context.Context) (*dto.HistoryResponse, error)
	NewSession() string
	Pending(endpoint string) bool
}

// View renders controller state. Calls may come from any goroutine.
type View interface {
	RenderTabs(tabs []TabState)
	ClearTranscript()
	AppendMessage(msg Message)
	SetInput(text string)
	SetResumeText(text string)
	ShowScore(card ScoreCard)
	Alert(text string)
	SetVoiceStatus(text string)
	SetListening(listening bool)
	SetBadge(badge Badge)
}

type Controller struct {
	api      API
	view     View
	provider speech.Provider
	language string
	logger   zerolog.Logger

	mu                sync.Mutex
	askedIdx          int
	mode              string
	listening         bool
	interimTranscript string
	activeTab         Tab
	settings          Settings
	ttsEnabled        bool
	autoSend          bool
	resumeText        string
	jobDesc           string
	recognizer        speech.Recognizer
	synthesizer       speech.Synthesizer
	synthUnavailable  bool
	lastQuestion      string

	// voiceMu serialises recognizer and synthesizer construction.
	voiceMu sync.Mutex

	bg sync.WaitGroup
}

type Options struct {
	Language   string
	TTSEnabled bool
	AutoSend   bool
	Settings   Settings
}

func New(api API, view View, provider speech.Provider, opts Options, logger zerolog.Logger) *Controller {
	if provider == nil {
		provider = speech.Unsupported{Reason: "no provider"}
	}
	if opts.Settings.Role == "" {
		opts.Settings.Role = defaultRole
	}
	if opts.Settings.Difficulty == "" {
		opts.Settings.Difficulty = defaultDifficulty
	}
	return &Controller{
		api:        api,
		view:       view,
		provider:   provider,
		language:   opts.Language,
		logger:     logger.With().Str("component", "controller").Logger(),
		mode:       dto.ModeInterview,
		activeTab:  TabInterview,
		settings:   opts.Settings,
		ttsEnabled: opts.TTSEnabled,
		autoSend:   opts.AutoSend,
	}
}

// SelectTab activates tab and deactivates every other one.
func (c *Controller) SelectTab(tab Tab) error {
	valid := false
	for _, t := range Tabs {
		if t == tab {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}

	c.mu.Lock()
	c.activeTab = tab
	c.mu.Unlock()

	c.view.RenderTabs(tabStates(tab))
	return nil
}

func tabStates(active Tab) []TabState {
	states := make([]TabState, len(Tabs))
	for i, t := range Tabs {
		states[i] = TabState{Tab: t, Active: t == active}
	}
	return states
}

// StartInterview resets the transcript and index, opens a new practice
// session and asks for the first question.
func (c *Controller) StartInterview(ctx context.Context) error {
	if c.api.Pending(client.EndpointChat) {
		c.view.Alert(BusyAlert)
		return client.ErrBusy
	}

	c.mu.Lock()
	c.askedIdx = 0
	c.mode = dto.ModeInterview
	req := c.chatRequestLocked("")
	c.mu.Unlock()

	c.api.NewSession()
	c.view.ClearTranscript()
	c.view.AppendMessage(Message{Role: RoleSystem, Text: StartMessage})

	resp, err := c.api.Chat(ctx, req)
	if err != nil {
		return c.fail("start interview", err)
	}

	// the reply to an empty answer is ignored
	if resp.NextQuestion != "" {
		c.view.AppendMessage(Message{Role: RoleBot, Text: resp.NextQuestion})
	}
	c.mu.Lock()
	if resp.AskedIdx != nil {
		c.askedIdx = *resp.AskedIdx
	}
	if resp.NextQuestion != "" {
		c.lastQuestion = resp.NextQuestion
	}
	c.mu.Unlock()
	return nil
}

// Send submits one answer. Blank input is ignored without a request.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if c.api.Pending(client.EndpointChat) {
		c.view.Alert(BusyAlert)
		return client.ErrBusy
	}

	c.view.AppendMessage(Message{Role: RoleUser, Text: text})
	c.view.SetInput("")

	c.mu.Lock()
	req := c.chatRequestLocked(text)
	c.mu.Unlock()

	resp, err := c.api.Chat(ctx, req)
	if err != nil {
		return c.fail("send", err)
	}

	if resp.Reply != "" {
		c.view.AppendMessage(Message{Role: RoleBot, Text: resp.Reply})
	}
	if resp.NextQuestion != "" {
		c.view.AppendMessage(Message{Role: RoleBot, Text: resp.NextQuestion})
	}

	c.mu.Lock()
	if resp.AskedIdx != nil {
		c.askedIdx = *resp.AskedIdx
	}
	if resp.NextQuestion != "" {
		c.lastQuestion = resp.NextQuestion
	}
	tts := c.ttsEnabled
	c.mu.Unlock()

	if tts {
		c.Speak(joinSpeech(resp.Reply, resp.NextQuestion))
	}
	return nil
}

func joinSpeech(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, speechJoiner)
}

func (c *Controller) chatRequestLocked(message string) dto.ChatRequest {
	difficulty := c.settings.Difficulty
	if difficulty == "" {
		difficulty = defaultDifficulty
	}
	return dto.ChatRequest{
		Mode:       c.mode,
		Message:    message,
		Role:       c.settings.Role,
		Company:    strings.TrimSpace(c.settings.Company),
		Difficulty: difficulty,
		AskedIdx:   dto.Index(c.askedIdx),
	}
}

// ExtractResume uploads the file at path and fills the resume text.
func (c *Controller) ExtractResume(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		c.view.Alert(NoFileAlert)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		c.view.Alert(fmt.Sprintf("Could not open %s.", filepath.Base(path)))
		return err
	}
	defer f.Close()

	resp, err := c.api.UploadResume(ctx, filepath.Base(path), f)
	if err != nil {
		return c.fail("upload resume", err)
	}
	if resp.Error != "" {
		c.view.Alert(resp.Error)
		return nil
	}

	c.mu.Lock()
	c.resumeText = resp.Text
	c.mu.Unlock()
	c.view.SetResumeText(resp.Text)
	return nil
}

// Score submits the resume text and job description and renders the result.
func (c *Controller) Score(ctx context.Context) error {
	c.mu.Lock()
	req := dto.ATSScoreRequest{ResumeText: c.resumeText, JobDesc: c.jobDesc}
	c.mu.Unlock()

	resp, err := c.api.ATSScore(ctx, req)
	if err != nil {
		return c.fail("score resume", err)
	}

	card := ScoreCard{
		Score:   resp.Score,
		Present: append([]string{}, resp.PresentKeywords...),
		Missing: append([]string{}, resp.MissingKeywords...),
	}
	c.view.ShowScore(card)
	return nil
}

// LoadStatus reads the AI flag from the server and updates the badge. The
// badge reads off when the server cannot be reached.
func (c *Controller) LoadStatus(ctx context.Context) (*dto.StatusResponse, error) {
	resp, err := c.api.Status(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("status unavailable")
		c.view.SetBadge(BadgeFor(false))
		return nil, err
	}
	c.view.SetBadge(BadgeFor(resp.AIEnabled))
	return resp, nil
}

func BadgeFor(aiEnabled bool) Badge {
	if aiEnabled {
		return Badge{Text: aiOnText, Color: aiOnColor}
	}
	return Badge{Text: aiOffText, Color: aiOffColor}
}

// ShowHistory appends the persisted turns of the current session.
func (c *Controller) ShowHistory(ctx context.Context) error {
	resp, err := c.api.History(ctx)
	if err != nil {
		return c.fail("load history", err)
	}
	if len(resp.Turns) == 0 && len(resp.Reports) == 0 {
		c.view.AppendMessage(Message{Role: RoleSystem, Text: "No saved answers for this session yet."})
		return nil
	}
	for _, t := range resp.Turns {
		if t.Answer == "" {
			continue
		}
		c.view.AppendMessage(Message{Role: RoleSystem, Text: fmt.Sprintf("Q%d answer: %s", t.AskedIdx, t.Answer)})
	}
	for _, r := range resp.Reports {
		c.view.AppendMessage(Message{Role: RoleSystem, Text: fmt.Sprintf("ATS score %d (%d missing keywords)", r.Score, len(r.MissingKeywords))})
	}
	return nil
}

// fail surfaces a request error as an alert.
func (c *Controller) fail(action string, err error) error {
	c.logger.Error().Err(err).Str("action", action).Msg("request failed")
	switch {
	case errors.Is(err, client.ErrBusy):
		c.view.Alert(BusyAlert)
	case errors.Is(err, context.Canceled):
	default:
		var apiErr *client.Error
		if errors.As(err, &apiErr) {
			c.view.Alert(apiErr.Message)
		} else {
			c.view.Alert("Could not reach the server. Check that it is running and try again.")
		}
	}
	return err
}

func (c *Controller) SetMode(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

func (c *Controller) SetRole(role string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.Role = role
}

func (c *Controller) SetCompany(company string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.Company = company
}

func (c *Controller) SetDifficulty(difficulty string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.Difficulty = difficulty
}

func (c *Controller) SetTTS(enabled bool) {
	c.mu.Lock()
	synth := c.synthesizer
	c.ttsEnabled = enabled
	c.mu.Unlock()
	if !enabled && synth != nil {
		synth.Cancel()
	}
}

func (c *Controller) SetAutoSend(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSend = enabled
}

func (c *Controller) SetResumeText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumeText = text
}

func (c *Controller) SetJobDescription(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobDesc = text
}

func (c *Controller) AskedIdx() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.askedIdx
}

func (c *Controller) Mode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

func (c *Controller) TTSEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttsEnabled
}

func (c *Controller) AutoSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoSend
}

func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

func (c *Controller) InterimTranscript() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interimTranscript
}

// LastQuestion is the most recent question asked by the interviewer.
func (c *Controller) LastQuestion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQuestion
}

// Wait blocks until background work started by voice callbacks is done.
func (c *Controller) Wait() {
	c.bg.Wait()
}

func (c *Controller) Close() {
	c.mu.Lock()
	rec, synth := c.recognizer, c.synthesizer
	c.mu.Unlock()

	if rec != nil {
		rec.Stop()
	}
	if synth != nil {
		synth.Cancel()
	}
	c.bg.Wait()
	c.provider.Close()
}
