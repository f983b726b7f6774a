package audio

import (
	"context"
	"sync"
	"time"
)

const fakeChunkSize = 1600 // 100ms at 16kHz

// FakeContext replays fixed samples as capture input and records playback.
type FakeContext struct {
	Input []int16

	// BlockPlayback makes Play wait for ctx cancellation, which lets tests
	// observe an in-flight utterance.
	BlockPlayback bool

	mu     sync.Mutex
	played [][]int16
}

func NewFakeContext(input []int16) *FakeContext {
	return &FakeContext{Input: input}
}

func (f *FakeContext) NewCapture(_ CaptureConfig) (CaptureDevice, error) {
	return &FakeCapture{input: f.Input}, nil
}

func (f *FakeContext) NewPlayer() (Player, error) {
	return &fakePlayer{ctx: f}, nil
}

func (f *FakeContext) Close() {}

// Played returns every sample slice handed to a player.
func (f *FakeContext) Played() [][]int16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]int16(nil), f.played...)
}

type FakeCapture struct {
	input []int16

	mu       sync.Mutex
	cb       DataCallback
	stopCh   chan struct{}
	feedDone chan struct{}
}

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *FakeCapture) ClearCallback() {
	f.mu.Lock()
	f.cb = nil
	f.mu.Unlock()
}

// Start feeds the input followed by silence until Stop.
func (f *FakeCapture) Start() error {
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})

	go func() {
		defer close(f.feedDone)
		pos := 0
		silence := make([]int16, fakeChunkSize)
		for {
			select {
			case <-f.stopCh:
				return
			case <-time.After(time.Millisecond):
			}

			f.mu.Lock()
			cb := f.cb
			f.mu.Unlock()
			if cb == nil {
				continue
			}
			if pos < len(f.input) {
				end := min(pos+fakeChunkSize, len(f.input))
				chunk := make([]int16, end-pos)
				copy(chunk, f.input[pos:end])
				cb(chunk)
				pos = end
			} else {
				cb(silence)
			}
		}
	}()
	return nil
}

func (f *FakeCapture) Stop() {
	if f.stopCh == nil {
		return
	}
	select {
	case <-f.stopCh:
	default:
		close(f.stopCh)
	}
	<-f.feedDone
}

func (f *FakeCapture) Close() {}

type fakePlayer struct {
	ctx *FakeContext
}

func (p *fakePlayer) Play(ctx context.Context, samples []int16) error {
	p.ctx.mu.Lock()
	p.ctx.played = append(p.ctx.played, samples)
	block := p.ctx.BlockPlayback
	p.ctx.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (p *fakePlayer) Close() {}
