package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vedannt004/careerprep-chatbot/internal/controller"
	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/speech"
)

const helpText = `Commands:
  /start                 begin a new mock interview
  /tab interview|resume  switch tabs (or press Tab)
  /upload <path>         extract text from a PDF, DOCX or TXT resume
  /resume <text>         set the resume text directly
  /jd <text>             set the job description
  /score                 score the resume against the job description
  /mic                   start or stop voice input (or press Ctrl+T)
  /tts [on|off]          read replies aloud
  /autosend [on|off]     send a final voice transcript automatically
  /role <role>           interview role, e.g. software_engineer
  /company <name>        company to tailor questions to
  /difficulty <level>    Easy, Medium or Hard
  /mode <mode>           interview, softskills or general
  /history               show saved answers for this session
  /copy                  copy the last question to the clipboard
  /status                refresh the AI badge
  /quit                  exit
Anything else is sent as your answer.`

var difficulties = []string{"Easy", "Medium", "Hard"}

var modes = []string{dto.ModeInterview, dto.ModeSoftSkills, dto.ModeGeneral}

type command struct {
	name string
	arg  string
}

// parseCommand splits a slash command into its name and argument. Plain
// text is not a command.
func parseCommand(line string) (command, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return command{}, false
	}
	name, arg, _ := strings.Cut(line[1:], " ")
	return command{
		name: strings.ToLower(strings.TrimSpace(name)),
		arg:  strings.TrimSpace(arg),
	}, true
}

// parseToggle reads on/off; an empty argument flips current.
func parseToggle(arg string, current bool) (bool, error) {
	switch strings.ToLower(arg) {
	case "":
		return !current, nil
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return current, fmt.Errorf("expected on or off, got %q", arg)
}

func pick(options []string, value string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, value) {
			return o, true
		}
	}
	return "", false
}

func parseTab(arg string) (controller.Tab, bool) {
	switch strings.ToLower(arg) {
	case "interview", "chat":
		return controller.TabInterview, true
	case "resume", "ats":
		return controller.TabResume, true
	}
	return "", false
}

func (m model) submit(line string) (tea.Model, tea.Cmd) {
	cmd, ok := parseCommand(line)
	if !ok {
		text := strings.TrimSpace(line)
		if text == "" {
			return m, nil
		}
		ctrl := m.ctrl
		return m.startTask("send", func(ctx context.Context) error {
			return ctrl.Send(ctx, text)
		})
	}

	ctrl := m.ctrl
	switch cmd.name {
	case "start":
		return m.startTask("start interview", ctrl.StartInterview)

	case "tab":
		tab, ok := parseTab(cmd.arg)
		if !ok {
			m.alert = "Usage: /tab interview|resume"
			return m, nil
		}
		return m.startTask("select tab", m.selectTabTask(tab))

	case "upload":
		path := strings.Trim(cmd.arg, `"'`)
		return m.startTask("upload resume", func(ctx context.Context) error {
			return ctrl.ExtractResume(ctx, path)
		})

	case "resume":
		ctrl.SetResumeText(cmd.arg)
		m.resume = cmd.arg
		m.refresh()
		return m, nil

	case "jd":
		ctrl.SetJobDescription(cmd.arg)
		m.jobDesc = cmd.arg
		m.refresh()
		return m, nil

	case "score":
		return m.startTask("score resume", ctrl.Score)

	case "mic":
		return m.startTask("toggle mic", m.toggleMicTask())

	case "tts":
		v, err := parseToggle(cmd.arg, m.tts)
		if err != nil {
			m.alert = "Usage: /tts [on|off]"
			return m, nil
		}
		ctrl.SetTTS(v)
		m.tts = v
		m.notice = "Voice output " + onOff(v) + "."
		return m, nil

	case "autosend":
		v, err := parseToggle(cmd.arg, m.autoSend)
		if err != nil {
			m.alert = "Usage: /autosend [on|off]"
			return m, nil
		}
		ctrl.SetAutoSend(v)
		m.autoSend = v
		m.notice = "Auto-send " + onOff(v) + "."
		return m, nil

	case "role":
		if cmd.arg == "" {
			m.notice = "Role: " + ctrl.Settings().Role
			return m, nil
		}
		ctrl.SetRole(cmd.arg)
		m.notice = "Role set to " + cmd.arg + "."
		return m, nil

	case "company":
		ctrl.SetCompany(cmd.arg)
		if cmd.arg == "" {
			m.notice = "Company cleared."
		} else {
			m.notice = "Company set to " + cmd.arg + "."
		}
		return m, nil

	case "difficulty":
		level, ok := pick(difficulties, cmd.arg)
		if !ok {
			m.alert = "Usage: /difficulty " + strings.Join(difficulties, "|")
			return m, nil
		}
		ctrl.SetDifficulty(level)
		m.notice = "Difficulty set to " + level + "."
		return m, nil

	case "mode":
		mode, ok := pick(modes, cmd.arg)
		if !ok {
			m.alert = "Usage: /mode " + strings.Join(modes, "|")
			return m, nil
		}
		ctrl.SetMode(mode)
		m.notice = "Mode set to " + mode + "."
		return m, nil

	case "history":
		return m.startTask("load history", ctrl.ShowHistory)

	case "status":
		return m.startTask("load status", func(ctx context.Context) error {
			_, err := ctrl.LoadStatus(ctx)
			return err
		})

	case "copy":
		q := ctrl.LastQuestion()
		if q == "" {
			m.notice = "No question to copy yet."
			return m, nil
		}
		if err := m.copy(q); err != nil {
			m.logger.Warn().Err(err).Msg("clipboard write failed")
			m.alert = "Could not copy to the clipboard."
			return m, nil
		}
		m.notice = "Copied the last question."
		return m, nil

	case "help", "?":
		m.lines = append(m.lines, controller.Message{Role: controller.RoleSystem, Text: helpText})
		m.refresh()
		if m.active != controller.TabInterview {
			return m.startTask("select tab", m.selectTabTask(controller.TabInterview))
		}
		return m, nil

	case "quit", "exit", "q":
		m.quitting = true
		return m, tea.Quit
	}

	m.alert = fmt.Sprintf("Unknown command /%s. Type /help.", cmd.name)
	return m, nil
}

func (m model) selectTabTask(tab controller.Tab) func(context.Context) error {
	ctrl := m.ctrl
	return func(context.Context) error {
		return ctrl.SelectTab(tab)
	}
}

// toggleMicTask reports device failures; an unsupported provider has
// already alerted through the view.
func (m model) toggleMicTask() func(context.Context) error {
	ctrl := m.ctrl
	return func(context.Context) error {
		err := ctrl.ToggleListening()
		if err != nil && !errors.Is(err, speech.ErrUnsupported) {
			return alertError{text: "Microphone error: " + err.Error()}
		}
		return err
	}
}
