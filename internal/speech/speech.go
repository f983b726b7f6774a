package speech

import (
	"context"
	"errors"

	"github.com/vedannt004/careerprep-chatbot/internal/dto"
)

var ErrUnsupported = errors.New("speech is not supported in this environment")

// Result is one recognised utterance. Interim results are replaced by later
// results at the same index until one arrives with Final set.
type Result struct {
	Transcript string
	Final      bool
}

// ResultEvent carries every result of the listening session. Entries before
// ResultIndex have not changed since the previous event.
type ResultEvent struct {
	ResultIndex int
	Results     []Result
}

// Handlers are invoked from recognizer goroutines.
type Handlers struct {
	OnStart  func()
	OnEnd    func()
	OnError  func(error)
	OnResult func(ResultEvent)
}

type RecognizerConfig struct {
	Language string
	Interim  bool
}

type Recognizer interface {
	Start() error
	Stop()
	Listening() bool
}

// Synthesizer speaks one utterance at a time. Speak cancels whatever is
// being spoken before starting and blocks until playback ends.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
	Cancel()
}

type Provider interface {
	Name() string
	SupportsRecognition() bool
	SupportsSynthesis() bool
	NewRecognizer(cfg RecognizerConfig, h Handlers) (Recognizer, error)
	NewSynthesizer() (Synthesizer, error)
	Close()
}

// API is the server side of speech: transcription and synthesis.
type API interface {
	Transcribe(ctx context.Context, filename string, audio []byte, language string) (string, error)
	Speech(ctx context.Context, req dto.SpeechRequest) ([]byte, error)
}

// Unsupported is selected when no audio device can be opened.
type Unsupported struct {
	Reason string
}

func (u Unsupported) Name() string { return "unsupported" }

func (u Unsupported) SupportsRecognition() bool { return false }

func (u Unsupported) SupportsSynthesis() bool { return false }

func (u Unsupported) NewRecognizer(RecognizerConfig, Handlers) (Recognizer, error) {
	return nil, ErrUnsupported
}

func (u Unsupported) NewSynthesizer() (Synthesizer, error) {
	return nil, ErrUnsupported
}

func (u Unsupported) Close() {}
