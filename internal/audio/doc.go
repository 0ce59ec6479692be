// Package audio decodes the corpus WAV files into numeric sample series.
//
// DecodeFile is the single entry point: it turns a WAV file into a mono
// []float64 normalized to [-1, 1] plus its native sample rate:
//
//	samples, rate, err := audio.DecodeFile(path)
//
// Multichannel recordings are downmixed by channel averaging. Decoding is
// streaming; only one chunk of PCM data is held in memory at a time.
package audio
