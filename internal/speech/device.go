package speech

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vedannt004/careerprep-chatbot/internal/audio"
)

const (
	DefaultInterimEvery = 1200 * time.Millisecond
	defaultVoice        = "alloy"
	defaultLanguage     = "en-US"
)

type DeviceConfig struct {
	Language     string
	Voice        string
	InterimEvery time.Duration
	Endpoint     audio.EndpointConfig
}

// DeviceProvider captures from the local microphone and plays through the
// local output, with recognition and synthesis done by the server.
type DeviceProvider struct {
	actx   audio.Context
	api    API
	cfg    DeviceConfig
	logger zerolog.Logger
}

func NewDeviceProvider(actx audio.Context, api API, cfg DeviceConfig, logger zerolog.Logger) *DeviceProvider {
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.Voice == "" {
		cfg.Voice = defaultVoice
	}
	if cfg.InterimEvery <= 0 {
		cfg.InterimEvery = DefaultInterimEvery
	}
	cfg.Endpoint.SampleRate = audio.SampleRate
	return &DeviceProvider{
		actx:   actx,
		api:    api,
		cfg:    cfg,
		logger: logger.With().Str("component", "speech").Logger(),
	}
}

func (p *DeviceProvider) Name() string { return "device" }

func (p *DeviceProvider) SupportsRecognition() bool { return true }

func (p *DeviceProvider) SupportsSynthesis() bool { return true }

func (p *DeviceProvider) NewRecognizer(cfg RecognizerConfig, h Handlers) (Recognizer, error) {
	if cfg.Language == "" {
		cfg.Language = p.cfg.Language
	}
	return newDeviceRecognizer(p.actx, p.api, cfg, p.cfg, h, p.logger), nil
}

func (p *DeviceProvider) NewSynthesizer() (Synthesizer, error) {
	player, err := p.actx.NewPlayer()
	if err != nil {
		return nil, fmt.Errorf("opening playback: %w", err)
	}
	return newDeviceSynthesizer(p.api, player, p.cfg.Voice, p.cfg.Language, p.logger), nil
}

func (p *DeviceProvider) Close() {
	p.actx.Close()
}

// Select checks the audio system and falls back to Unsupported when it
// cannot be opened or voice is disabled.
func Select(disabled bool, open func() (audio.Context, error), api API, cfg DeviceConfig, logger zerolog.Logger) Provider {
	if disabled {
		return Unsupported{Reason: "voice disabled"}
	}
	actx, err := open()
	if err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, voice features disabled")
		return Unsupported{Reason: err.Error()}
	}
	return NewDeviceProvider(actx, api, cfg, logger)
}
