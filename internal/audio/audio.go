package audio

import (
	"context"
	"errors"
)

// Capture format expected by the transcription endpoint.
const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
)

// PlaybackRate is the rate every playback device is opened at. Decoded
// audio at any other rate is resampled first.
const PlaybackRate = 24000

var ErrNoDevice = errors.New("no audio device available")

type DataCallback func(samples []int16)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

// Context owns the platform audio connection.
type Context interface {
	NewCapture(config CaptureConfig) (CaptureDevice, error)
	NewPlayer() (Player, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
}

// Player plays mono 16-bit samples at PlaybackRate. Play blocks until the
// samples have been played or ctx is cancelled.
type Player interface {
	Play(ctx context.Context, samples []int16) error
	Close()
}
