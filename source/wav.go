package source

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
)

// WavReader produces normalized float64 samples decoded from a wav file.
// Channels stay interleaved in the output pipe. This block cannot be reused
// for consequent runs.
type WavReader struct {
	file    *os.File
	decoder *wav.Decoder
	depth   signal.BitDepth
	ib      *audio.IntBuffer
	out     pipebuf.Writer[float64]
	done    bool
}

// NewWavReader opens path and validates the wav header.
func NewWavReader(path string, out pipebuf.Writer[float64]) (*WavReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		if err := file.Close(); err != nil {
			return nil, fmt.Errorf("wav is not valid, failed to close %v", path)
		}
		return nil, fmt.Errorf("%v is not a valid wav file", path)
	}
	depth := signal.BitDepth(decoder.BitDepth)
	if !depth.Supported() {
		file.Close()
		return nil, signal.ErrUnsupportedBitDepth
	}
	return &WavReader{
		file:    file,
		decoder: decoder,
		depth:   depth,
		ib: &audio.IntBuffer{
			Format:         decoder.Format(),
			SourceBitDepth: int(decoder.BitDepth),
		},
		out: out,
	}, nil
}

// SampleRate returns wav's sample rate.
func (r *WavReader) SampleRate() int {
	return int(r.decoder.SampleRate)
}

// NumChannels returns wav's number of channels.
func (r *WavReader) NumChannels() int {
	return r.decoder.Format().NumChannels
}

// Step decodes up to the output pipe's writable capacity.
func (r *WavReader) Step() (sdrpipe.Status, error) {
	if r.done {
		return sdrpipe.Blocked, nil
	}
	n := r.out.Writable()
	if n == 0 {
		return sdrpipe.Blocked, nil
	}
	if cap(r.ib.Data) < n {
		r.ib.Data = make([]int, n)
	}
	r.ib.Data = r.ib.Data[:n]
	read, err := r.decoder.PCMBuffer(r.ib)
	if err != nil {
		return sdrpipe.Blocked, fmt.Errorf("wav decode: %w", err)
	}
	if read == 0 {
		r.done = true
		return sdrpipe.Blocked, nil
	}
	wr := r.out.Wr()
	for i, v := range r.ib.Data[:read] {
		wr[i] = r.depth.AsFloat(v)
	}
	r.out.Written(read)
	return sdrpipe.Progress, nil
}

// Flush closes the file.
func (r *WavReader) Flush() error {
	return r.file.Close()
}
