//go:build !linux

package audio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

type malgoContext struct {
	ctx *malgo.AllocatedContext
}

func NewContext() (Context, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("malgo: %w", err)
	}
	return &malgoContext{ctx: ctx}, nil
}

func (m *malgoContext) NewCapture(config CaptureConfig) (CaptureDevice, error) {
	if config.SampleRate == 0 {
		config.SampleRate = SampleRate
	}
	if config.Channels == 0 {
		config.Channels = Channels
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = config.Channels
	deviceConfig.SampleRate = config.SampleRate

	c := &malgoCapture{}
	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			if cb := c.callback.Load(); cb != nil {
				(*cb)(PCMToSamples(input))
			}
		},
	}

	dev, err := malgo.InitDevice(m.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return nil, fmt.Errorf("malgo capture device: %w", err)
	}
	c.device = dev
	return c, nil
}

func (m *malgoContext) NewPlayer() (Player, error) {
	return &malgoPlayer{ctx: m.ctx}, nil
}

func (m *malgoContext) Close() {
	_ = m.ctx.Uninit()
	m.ctx.Free()
}

type malgoCapture struct {
	device   *malgo.Device
	callback atomic.Pointer[DataCallback]
}

func (c *malgoCapture) Start() error {
	return c.device.Start()
}

func (c *malgoCapture) Stop() {
	_ = c.device.Stop()
}

func (c *malgoCapture) Close() {
	c.device.Uninit()
}

func (c *malgoCapture) SetCallback(cb DataCallback) {
	c.callback.Store(&cb)
}

func (c *malgoCapture) ClearCallback() {
	c.callback.Store(nil)
}

type malgoPlayer struct {
	ctx *malgo.AllocatedContext
	mu  sync.Mutex
}

func (p *malgoPlayer) Play(ctx context.Context, samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	pcm := make([]byte, len(samples)*2)
	SamplesToPCM(samples, pcm)

	var pos atomic.Uint32
	finished := make(chan struct{})
	var once sync.Once

	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = Channels
	config.SampleRate = PlaybackRate

	callbacks := malgo.DeviceCallbacks{
		Data: func(output, _ []byte, _ uint32) {
			start := pos.Load()
			n := uint32(copy(output, pcm[start:]))
			clear(output[n:])
			pos.Store(start + n)
			if int(start+n) >= len(pcm) {
				once.Do(func() { close(finished) })
			}
		},
	}

	device, err := malgo.InitDevice(p.ctx.Context, config, callbacks)
	if err != nil {
		return fmt.Errorf("malgo playback device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("malgo playback: %w", err)
	}
	defer device.Stop()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *malgoPlayer) Close() {}
