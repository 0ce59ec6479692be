package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV writes a 16-bit PCM file with the given interleaved samples.
func writeTestWAV(t *testing.T, path string, data []int, sampleRate, numChans int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, numChans, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: numChans},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("writing WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing WAV: %v", err)
	}
}

func TestDecodeFile_Mono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")
	writeTestWAV(t, path, []int{0, 16384, -16384, 32767}, 4000, 1)

	samples, rate, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	if rate != 4000 {
		t.Errorf("sample rate = %d, want 4000", rate)
	}
	if len(samples) != 4 {
		t.Fatalf("got %d samples, want 4", len(samples))
	}

	want := []float64{0, 0.5, -0.5, 32767.0 / 32768.0}
	for i := range want {
		if math.Abs(samples[i]-want[i]) > 1e-9 {
			t.Errorf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestDecodeFile_StereoDownmix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	// Two frames: (16384, 0) and (-16384, -16384).
	writeTestWAV(t, path, []int{16384, 0, -16384, -16384}, 8000, 2)

	samples, rate, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	if rate != 8000 {
		t.Errorf("sample rate = %d, want 8000", rate)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if math.Abs(samples[0]-0.25) > 1e-9 {
		t.Errorf("samples[0] = %v, want 0.25 (average of both channels)", samples[0])
	}
	if math.Abs(samples[1]+0.5) > 1e-9 {
		t.Errorf("samples[1] = %v, want -0.5", samples[1])
	}
}

func TestDecodeFile_NotWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")
	if err := os.WriteFile(path, []byte("this is not audio"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := DecodeFile(path); err == nil {
		t.Error("expected error for non-WAV input")
	}
}

func TestDuration(t *testing.T) {
	samples := make([]float64, 22050)
	if got := Duration(samples, 22050); got != time.Second {
		t.Errorf("Duration = %v, want 1s", got)
	}
	if got := Duration(samples, 0); got != 0 {
		t.Errorf("Duration with zero rate = %v, want 0", got)
	}
}
