package audio

import (
	"fmt"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// decodeChunkFrames is the number of frames read per PCMBuffer call.
// Recordings are tens of seconds long; streaming in chunks keeps peak
// memory at one chunk instead of one file.
const decodeChunkFrames = 65536

// DecodeFile decodes a WAV file into a mono floating point time series.
//
// Samples are normalized to [-1, 1]. Multichannel recordings are downmixed
// to mono by averaging channels, so a simultaneous two-channel acquisition
// yields the same shape as a single-channel one. The native sample rate is
// returned unchanged.
//
// Supported encodings are 16, 24 and 32 bit PCM with one or two channels,
// which covers everything in the ICBHI corpus.
//
// Example:
//
//	samples, rate, err := audio.DecodeFile("/data/.../101_1b1_Al_sc_Meditron.wav")
//	fmt.Printf("%.1fs at %d Hz\n", float64(len(samples))/float64(rate), rate)
func DecodeFile(path string) ([]float64, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()

	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	divisor, err := sampleDivisor(int(decoder.BitDepth))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	numChans := int(decoder.NumChans)
	if numChans != 1 && numChans != 2 {
		return nil, 0, fmt.Errorf("%s: unsupported channel count %d", path, numChans)
	}

	sampleRate := int(decoder.SampleRate)
	buf := &goaudio.IntBuffer{
		Data: make([]int, decodeChunkFrames*numChans),
		Format: &goaudio.Format{
			SampleRate:  sampleRate,
			NumChannels: numChans,
		},
	}

	var samples []float64
	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			break
		}

		// Downmix interleaved frames to mono.
		for frame := 0; frame+numChans <= n; frame += numChans {
			var sum float64
			for ch := 0; ch < numChans; ch++ {
				sum += float64(buf.Data[frame+ch]) / divisor
			}
			samples = append(samples, sum/float64(numChans))
		}
	}

	return samples, sampleRate, nil
}

// sampleDivisor returns the normalization divisor for a PCM bit depth.
func sampleDivisor(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// Duration returns the playing time of a decoded sample series.
func Duration(samples []float64, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	seconds := float64(len(samples)) / float64(sampleRate)
	return time.Duration(seconds * float64(time.Second))
}
