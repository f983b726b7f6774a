package speech

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vedannt004/careerprep-chatbot/internal/audio"
	"github.com/vedannt004/careerprep-chatbot/internal/dto"
)

const (
	maxSpeechInput = 4096
	speechFormat   = "wav"
)

type deviceSynthesizer struct {
	api      API
	player   audio.Player
	voice    string
	language string
	logger   zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64

	// serial holds one utterance at a time so a superseded request has
	// released its endpoint before the next one is sent.
	serial sync.Mutex
}

func newDeviceSynthesizer(api API, player audio.Player, voice, language string, logger zerolog.Logger) *deviceSynthesizer {
	return &deviceSynthesizer{
		api:      api,
		player:   player,
		voice:    voice,
		language: language,
		logger:   logger,
	}
}

func (s *deviceSynthesizer) Speak(ctx context.Context, text string) error {
	text = clipSentences(strings.TrimSpace(text), maxSpeechInput)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()
	defer s.release(gen, cancel)

	s.serial.Lock()
	defer s.serial.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.api.Speech(ctx, dto.SpeechRequest{
		Input:    text,
		Voice:    s.voice,
		Language: s.language,
		Format:   speechFormat,
	})
	if err != nil {
		return fmt.Errorf("synthesizing speech: %w", err)
	}

	samples, err := audio.PlaybackSamples(data)
	if err != nil {
		return fmt.Errorf("decoding speech: %w", err)
	}

	s.logger.Debug().Int("chars", len(text)).Int("samples", len(samples)).Msg("speaking")
	return s.player.Play(ctx, samples)
}

// release clears the current cancel func if no newer utterance replaced it.
func (s *deviceSynthesizer) release(gen uint64, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.cancel = nil
	}
}

func (s *deviceSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
