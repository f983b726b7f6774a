// Command careerprep is the terminal client for the practice server: a
// mock-interview chat and a resume checker, with optional voice input and
// output through the local audio device.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/vedannt004/careerprep-chatbot/internal/audio"
	"github.com/vedannt004/careerprep-chatbot/internal/client"
	"github.com/vedannt004/careerprep-chatbot/internal/controller"
	"github.com/vedannt004/careerprep-chatbot/internal/speech"
	"github.com/vedannt004/careerprep-chatbot/internal/tui"
)

func main() {
	_ = godotenv.Load()

	serverFlag := flag.String("server", getEnv("CAREERPREP_SERVER", "http://localhost:5000"), "Base URL of the practice server")
	sessionFlag := flag.String("session", getEnv("CAREERPREP_SESSION", ""), "Resume an existing practice session ID")
	langFlag := flag.String("lang", getEnv("CAREERPREP_LANG", "en-US"), "Speech language (BCP-47)")
	voiceFlag := flag.String("voice", getEnv("CAREERPREP_VOICE", ""), "Voice for spoken replies")
	ttsFlag := flag.Bool("tts", getEnvBool("CAREERPREP_TTS", false), "Read replies aloud")
	autoSendFlag := flag.Bool("autosend", getEnvBool("CAREERPREP_AUTOSEND", true), "Send a final voice transcript automatically")
	noVoiceFlag := flag.Bool("novoice", getEnvBool("CAREERPREP_NO_VOICE", false), "Disable microphone and speaker")
	roleFlag := flag.String("role", getEnv("CAREERPREP_ROLE", "general"), "Interview role")
	companyFlag := flag.String("company", getEnv("CAREERPREP_COMPANY", ""), "Company to tailor questions to")
	difficultyFlag := flag.String("difficulty", getEnv("CAREERPREP_DIFFICULTY", "Medium"), "Easy, Medium or Hard")
	timeoutFlag := flag.Duration("timeout", 60*time.Second, "HTTP request timeout")
	logFlag := flag.String("log", getEnv("CAREERPREP_LOG", "careerprep.log"), "Diagnostics log file")
	debugFlag := flag.Bool("debug", false, "Verbose diagnostics log")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "careerprep needs an interactive terminal")
		os.Exit(1)
	}

	logger, closeLog, err := openLog(*logFlag, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opts := []client.Option{client.WithHTTPClient(&http.Client{Timeout: *timeoutFlag})}
	if *sessionFlag != "" {
		opts = append(opts, client.WithSessionID(*sessionFlag))
	}
	api := client.New(*serverFlag, opts...)
	logger.Info().Str("server", *serverFlag).Str("session", api.SessionID()).Msg("starting")

	provider := speech.Select(*noVoiceFlag, audio.NewContext, api, speech.DeviceConfig{
		Language: *langFlag,
		Voice:    *voiceFlag,
	}, logger)
	logger.Info().Str("provider", provider.Name()).Msg("speech provider selected")

	ui := tui.New(logger)
	ctrl := controller.New(api, ui, provider, controller.Options{
		Language:   *langFlag,
		TTSEnabled: *ttsFlag,
		AutoSend:   *autoSendFlag,
		Settings: controller.Settings{
			Role:       *roleFlag,
			Company:    *companyFlag,
			Difficulty: *difficultyFlag,
		},
	}, logger)
	ui.Bind(ctrl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := ui.Run(ctx)
	ctrl.Close()
	if runErr != nil {
		logger.Error().Err(runErr).Msg("terminal UI failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
	logger.Info().Msg("bye")
}

func openLog(path string, debug bool) (zerolog.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Int("pid", os.Getpid()).Logger()
	return logger, func() { f.Close() }, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
