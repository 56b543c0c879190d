package audio

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3Decoder turns an MP3 byte stream into stereo float samples.
type mp3Decoder struct {
	decoder *mp3.Decoder
	format  beep.Format
	readBuf []byte // reusable buffer for reading
}

// decodeMP3 reads the first frame header from r and returns a decoder.
func decodeMP3(r io.Reader) (*mp3Decoder, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}

	return &mp3Decoder{
		decoder: decoder,
		format: beep.Format{
			SampleRate:  beep.SampleRate(sampleRate),
			NumChannels: 2, // go-mp3 always outputs stereo
			Precision:   2, // 16-bit
		},
		readBuf: make([]byte, 8192),
	}, nil
}

// ReadSamples fills samples and returns how many were decoded. It returns
// io.EOF once the stream is exhausted.
func (d *mp3Decoder) ReadSamples(samples [][2]float64) (int, error) {
	// 4 bytes per sample (stereo 16-bit)
	bytesNeeded := len(samples) * 4
	if len(d.readBuf) < bytesNeeded {
		d.readBuf = make([]byte, bytesNeeded)
	}

	bytesRead, err := io.ReadFull(d.decoder, d.readBuf[:bytesNeeded])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}

	n := bytesRead / 4
	for i := range n {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(d.readBuf[offset:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(d.readBuf[offset+2:])) //nolint:gosec // audio samples
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
