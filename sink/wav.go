package sink

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
)

// WavWriter encodes normalized float64 samples into a wav file. Channels
// are expected interleaved in the input pipe. This block cannot be reused
// for consequent runs.
type WavWriter struct {
	in      pipebuf.Reader[float64]
	file    *os.File
	encoder *wav.Encoder
	depth   signal.BitDepth
	ib      *audio.IntBuffer
}

// NewWavWriter creates the destination file and the encoder.
func NewWavWriter(in pipebuf.Reader[float64], path string, sampleRate, numChannels int, depth signal.BitDepth) (*WavWriter, error) {
	if !depth.Supported() {
		return nil, signal.ErrUnsupportedBitDepth
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &WavWriter{
		in:      in,
		file:    file,
		encoder: wav.NewEncoder(file, sampleRate, int(depth), numChannels, 1),
		depth:   depth,
		ib: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: numChannels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: int(depth),
		},
	}, nil
}

// Step encodes all currently readable samples.
func (w *WavWriter) Step() (sdrpipe.Status, error) {
	n := w.in.Readable()
	if n == 0 {
		return sdrpipe.Blocked, nil
	}
	if cap(w.ib.Data) < n {
		w.ib.Data = make([]int, n)
	}
	w.ib.Data = w.ib.Data[:n]
	for i, v := range w.in.Rd()[:n] {
		w.ib.Data[i] = w.depth.AsInt(v)
	}
	if err := w.encoder.Write(w.ib); err != nil {
		return sdrpipe.Blocked, fmt.Errorf("wav encode: %w", err)
	}
	w.in.Read(n)
	return sdrpipe.Progress, nil
}

// Flush finalizes the encoder and closes the file.
func (w *WavWriter) Flush() error {
	if err := w.encoder.Close(); err != nil {
		return err
	}
	return w.file.Close()
}
