// Package decoder wraps the external MP3 decoder used solely to produce PCM
// for PSNR comparison. It is a black box from the codec's point of view:
// embed/extract never call it.
package decoder

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tosone/minimp3"
)

// PCM is a decoded mono PCM track: interleaved 16-bit little-endian samples
// downmixed to mono, normalized to [-1, 1] as float64, plus the decoder's
// reported sample rate.
type PCM struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// DecodeMP3ToPCM decodes mp3Data via the external minimp3 decoder and
// returns a mono, normalized sample set.
func DecodeMP3ToPCM(mp3Data []byte) (PCM, error) {
	dec, data, err := minimp3.DecodeFull(mp3Data)
	if err != nil {
		return PCM{}, fmt.Errorf("decode mp3: %w", err)
	}
	defer dec.Close()

	samples := downmixToMono(data, dec.Channels)
	return PCM{Samples: samples, SampleRate: dec.SampleRate, Channels: dec.Channels}, nil
}

// downmixToMono converts interleaved little-endian 16-bit PCM bytes into a
// single normalized channel by averaging across channels.
func downmixToMono(data []byte, channels int) []float64 {
	if channels <= 0 {
		channels = 1
	}
	frameBytes := 2 * channels
	frames := len(data) / frameBytes
	out := make([]float64, frames)

	for i := 0; i < frames; i++ {
		var sum int32
		base := i * frameBytes
		for c := 0; c < channels; c++ {
			off := base + c*2
			raw := int16(uint16(data[off]) | uint16(data[off+1])<<8)
			sum += int32(raw)
		}
		avg := float64(sum) / float64(channels)
		out[i] = avg / 32768.0
	}
	return out
}

// EncodeMonoWAV writes normalized mono PCM to a 16-bit WAV file, used for
// optional debug inspection of a decoded track.
func EncodeMonoWAV(path string, pcm PCM) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, pcm.SampleRate, 16, 1, 1)

	ints := make([]int, len(pcm.Samples))
	for i, s := range pcm.Samples {
		v := int(s * 32768.0)
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		ints[i] = v
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: pcm.SampleRate},
		Data:   ints,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return enc.Close()
}
