package audio

import "time"

const (
	DefaultSpeechThreshold = 0.02
	DefaultMinSpeech       = 150 * time.Millisecond
	DefaultHangover        = 900 * time.Millisecond
)

type EndpointEvent int

const (
	EndpointNone        EndpointEvent = iota
	EndpointSpeechStart               // enough consecutive voiced audio
	EndpointSpeechEnd                 // trailing silence after speech
)

type EndpointConfig struct {
	SampleRate int
	Threshold  float64
	MinSpeech  time.Duration
	Hangover   time.Duration
}

// Endpointer splits a capture stream into utterances using an RMS energy
// gate with a hangover period.
type Endpointer struct {
	threshold   float64
	minSpeech   int
	hangover    int
	voicedRun   int
	silentRun   int
	inUtterance bool
	lastLevel   float64
}

func NewEndpointer(cfg EndpointConfig) *Endpointer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = SampleRate
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultSpeechThreshold
	}
	if cfg.MinSpeech <= 0 {
		cfg.MinSpeech = DefaultMinSpeech
	}
	if cfg.Hangover <= 0 {
		cfg.Hangover = DefaultHangover
	}
	return &Endpointer{
		threshold: cfg.Threshold,
		minSpeech: samplesFor(cfg.MinSpeech, cfg.SampleRate),
		hangover:  samplesFor(cfg.Hangover, cfg.SampleRate),
	}
}

func samplesFor(d time.Duration, rate int) int {
	return int(d * time.Duration(rate) / time.Second)
}

// Process consumes one chunk and reports a transition, if any.
func (e *Endpointer) Process(chunk []int16) EndpointEvent {
	e.lastLevel = Level(chunk)
	voiced := e.lastLevel >= e.threshold

	if voiced {
		e.voicedRun += len(chunk)
		e.silentRun = 0
	} else {
		e.silentRun += len(chunk)
		if !e.inUtterance {
			e.voicedRun = 0
		}
	}

	switch {
	case !e.inUtterance && e.voicedRun >= e.minSpeech:
		e.inUtterance = true
		return EndpointSpeechStart
	case e.inUtterance && e.silentRun >= e.hangover:
		e.inUtterance = false
		e.voicedRun = 0
		return EndpointSpeechEnd
	}
	return EndpointNone
}

func (e *Endpointer) InUtterance() bool { return e.inUtterance }

func (e *Endpointer) LastLevel() float64 { return e.lastLevel }

func (e *Endpointer) Reset() {
	e.voicedRun = 0
	e.silentRun = 0
	e.inUtterance = false
}
