package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vedannt004/careerprep-chatbot/internal/audio"
)

const (
	chunkQueue       = 256
	prerollChunks    = 8
	finalizeTimeout  = 30 * time.Second
	minInterimGrowth = audio.SampleRate / 2
	utteranceFile    = "utterance.flac"
)

type deviceRecognizer struct {
	actx     audio.Context
	api      API
	cfg      RecognizerConfig
	interval time.Duration
	endpoint audio.EndpointConfig
	handlers Handlers
	logger   zerolog.Logger

	mu        sync.Mutex
	listening bool
	cancel    context.CancelFunc
	results   []Result
	done      chan struct{}
}

func newDeviceRecognizer(actx audio.Context, api API, cfg RecognizerConfig, dcfg DeviceConfig, h Handlers, logger zerolog.Logger) *deviceRecognizer {
	return &deviceRecognizer{
		actx:     actx,
		api:      api,
		cfg:      cfg,
		interval: dcfg.InterimEvery,
		endpoint: dcfg.Endpoint,
		handlers: h,
		logger:   logger,
	}
}

func (r *deviceRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

// Start opens the microphone and begins a new listening session. Calling
// Start while listening is a no-op.
func (r *deviceRecognizer) Start() error {
	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return nil
	}
	if r.done != nil {
		done := r.done
		r.mu.Unlock()
		<-done
		r.mu.Lock()
	}

	capture, err := r.actx.NewCapture(audio.CaptureConfig{SampleRate: audio.SampleRate, Channels: audio.Channels})
	if err != nil {
		r.mu.Unlock()
		return r.fail(fmt.Errorf("opening microphone: %w", err))
	}

	chunks := make(chan []int16, chunkQueue)
	capture.SetCallback(func(samples []int16) {
		select {
		case chunks <- samples:
		default:
		}
	})
	if err := capture.Start(); err != nil {
		capture.Close()
		r.mu.Unlock()
		return r.fail(fmt.Errorf("starting microphone: %w", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.listening = true
	r.cancel = cancel
	r.results = nil
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	r.logger.Info().Str("language", r.cfg.Language).Msg("listening")
	if r.handlers.OnStart != nil {
		r.handlers.OnStart()
	}

	go r.run(ctx, capture, chunks, done)
	return nil
}

// Stop ends the session. A pending utterance is still transcribed and
// delivered as a final result before OnEnd fires.
func (r *deviceRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *deviceRecognizer) fail(err error) error {
	r.logger.Error().Err(err).Msg("recognition failed")
	if r.handlers.OnError != nil {
		r.handlers.OnError(err)
	}
	return err
}

// utterance is the audio of the result currently being recognised.
type utterance struct {
	index   int
	samples []int16
	lastLen int
}

func (r *deviceRecognizer) run(ctx context.Context, capture audio.CaptureDevice, chunks <-chan []int16, done chan struct{}) {
	var interims sync.WaitGroup
	defer func() {
		capture.ClearCallback()
		capture.Stop()
		capture.Close()
		interims.Wait()

		r.mu.Lock()
		r.listening = false
		r.mu.Unlock()

		r.logger.Info().Msg("stopped listening")
		if r.handlers.OnEnd != nil {
			r.handlers.OnEnd()
		}
		close(done)
	}()

	ep := audio.NewEndpointer(r.endpoint)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var (
		preroll [][]int16
		current *utterance
	)

	for {
		select {
		case <-ctx.Done():
			if current != nil {
				interims.Wait()
				fctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
				r.finalize(fctx, current)
				cancel()
			}
			return

		case chunk := <-chunks:
			switch ep.Process(chunk) {
			case audio.EndpointSpeechStart:
				current = &utterance{index: r.nextIndex()}
				for _, c := range preroll {
					current.samples = append(current.samples, c...)
				}
				current.samples = append(current.samples, chunk...)
				preroll = nil
			case audio.EndpointSpeechEnd:
				current.samples = append(current.samples, chunk...)
				interims.Wait()
				r.finalize(ctx, current)
				current = nil
			default:
				if current != nil {
					current.samples = append(current.samples, chunk...)
					continue
				}
				preroll = append(preroll, chunk)
				if len(preroll) > prerollChunks {
					preroll = preroll[1:]
				}
			}

		case <-ticker.C:
			if !r.cfg.Interim || current == nil || len(current.samples)-current.lastLen < minInterimGrowth {
				continue
			}
			current.lastLen = len(current.samples)
			snapshot := append([]int16(nil), current.samples...)
			index := current.index
			interims.Add(1)
			go func() {
				defer interims.Done()
				r.interim(ctx, index, snapshot)
			}()
		}
	}
}

// nextIndex reserves a slot for a new utterance and returns its index.
func (r *deviceRecognizer) nextIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, Result{})
	return len(r.results) - 1
}

func (r *deviceRecognizer) interim(ctx context.Context, index int, samples []int16) {
	text, err := r.transcribe(ctx, samples)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			r.logger.Debug().Err(err).Msg("interim transcription skipped")
		}
		return
	}
	r.emit(index, Result{Transcript: text})
}

func (r *deviceRecognizer) finalize(ctx context.Context, u *utterance) {
	text, err := r.transcribe(ctx, u.samples)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			r.fail(fmt.Errorf("transcribing utterance: %w", err))
		}
		text = ""
	}
	r.emit(u.index, Result{Transcript: text, Final: true})
}

func (r *deviceRecognizer) transcribe(ctx context.Context, samples []int16) (string, error) {
	start := time.Now()
	data, err := audio.EncodeFLAC(samples)
	if err != nil {
		return "", err
	}
	text, err := r.api.Transcribe(ctx, utteranceFile, data, r.cfg.Language)
	if err != nil {
		return "", err
	}
	r.logger.Debug().
		Float64("audio_s", float64(len(samples))/audio.SampleRate).
		Int("flac_bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("transcription")
	return strings.TrimSpace(text), nil
}

// emit stores the result and notifies the handler. A final result is never
// overwritten by a late interim one.
func (r *deviceRecognizer) emit(index int, res Result) {
	r.mu.Lock()
	if index >= len(r.results) || r.results[index].Final {
		r.mu.Unlock()
		return
	}
	r.results[index] = res
	ev := ResultEvent{ResultIndex: index, Results: append([]Result(nil), r.results...)}
	r.mu.Unlock()

	if r.handlers.OnResult != nil {
		r.handlers.OnResult(ev)
	}
}
