package audio

import "sync"

// chunkSize is the number of samples decoded per chunk.
const chunkSize = 4096

// sampleBuffer decouples network decoding from the speaker. The decoder
// goroutine pushes chunks; the speaker pulls without ever blocking and
// hears silence on underrun.
type sampleBuffer struct {
	chunks chan [][2]float64

	// owned by the speaker goroutine
	cur [][2]float64

	once sync.Once
}

func newSampleBuffer(capacity int) *sampleBuffer {
	return &sampleBuffer{chunks: make(chan [][2]float64, capacity)}
}

// finish marks the end of the stream. Safe to call more than once.
func (b *sampleBuffer) finish() {
	b.once.Do(func() { close(b.chunks) })
}

// Stream implements beep.Streamer.
func (b *sampleBuffer) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		if len(b.cur) == 0 {
			select {
			case chunk, ok := <-b.chunks:
				if !ok {
					if filled == 0 {
						return 0, false
					}
					return filled, true
				}
				b.cur = chunk
				continue
			default:
				// Underrun: pad with silence.
				clear(samples[filled:])
				return len(samples), true
			}
		}
		n := copy(samples[filled:], b.cur)
		b.cur = b.cur[n:]
		filled += n
	}
	return filled, true
}

// Err implements beep.Streamer.
func (b *sampleBuffer) Err() error {
	return nil
}
