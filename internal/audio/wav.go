package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	wavHeaderSize = 44
	wavFormatPCM  = 1
)

var ErrInvalidWAV = errors.New("invalid wav data")

// WAV is decoded PCM audio.
type WAV struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// DecodeWAV reads a 16-bit PCM RIFF file. Streamed files often carry a
// placeholder data size, so the data chunk is clamped to what is present.
func DecodeWAV(data []byte) (*WAV, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrInvalidWAV
	}

	var (
		w       WAV
		bits    int
		haveFmt bool
	)
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if size < 0 || body+size > len(data) {
			size = len(data) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrInvalidWAV)
			}
			if format := binary.LittleEndian.Uint16(data[body:]); format != wavFormatPCM {
				return nil, fmt.Errorf("%w: unsupported format %d", ErrInvalidWAV, format)
			}
			w.Channels = int(binary.LittleEndian.Uint16(data[body+2:]))
			w.SampleRate = int(binary.LittleEndian.Uint32(data[body+4:]))
			bits = int(binary.LittleEndian.Uint16(data[body+14:]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data before fmt", ErrInvalidWAV)
			}
			if bits != BitsPerSample {
				return nil, fmt.Errorf("%w: %d-bit samples", ErrInvalidWAV, bits)
			}
			w.Samples = PCMToSamples(data[body : body+size])
			return &w, nil
		}

		pos = body + size + size%2
	}
	return nil, fmt.Errorf("%w: missing data chunk", ErrInvalidWAV)
}

// EncodeWAV writes mono 16-bit samples as a RIFF file.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	dataSize := len(samples) * 2
	buf := make([]byte, wavHeaderSize+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(buf[22:24], Channels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*Channels*BitsPerSample/8))
	binary.LittleEndian.PutUint16(buf[32:34], Channels*BitsPerSample/8)
	binary.LittleEndian.PutUint16(buf[34:36], BitsPerSample)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	SamplesToPCM(samples, buf[wavHeaderSize:])
	return buf
}

// PlaybackSamples decodes a WAV file into mono samples at PlaybackRate.
func PlaybackSamples(data []byte) ([]int16, error) {
	w, err := DecodeWAV(data)
	if err != nil {
		return nil, err
	}
	return Resample(Downmix(w.Samples, w.Channels), w.SampleRate, PlaybackRate), nil
}
