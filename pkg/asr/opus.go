package asr

import (
	"encoding/binary"
	"fmt"
	"sync"

	"gopkg.in/hraban/opus.v2"
)

// maxOpusFrameSamples is the largest Opus frame (120ms at 48kHz).
const maxOpusFrameSamples = 5760

// opusReader decodes length-prefixed Opus packets to PCM16.
//
// The wire format is a concatenation of [2-byte big-endian length][packet].
// Opus decoders carry state between packets, so decoding is serialized.
type opusReader struct {
	mu  sync.Mutex
	dec *opus.Decoder
}

func newOpusReader(sampleRate, channels int) (*opusReader, error) {
	dec, err := opus.NewDecoder(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &opusReader{dec: dec}, nil
}

// decode converts a packet stream into little-endian PCM16 bytes.
func (r *opusReader) decode(stream []byte) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pcm []byte
	frame := make([]int16, maxOpusFrameSamples)

	for len(stream) > 0 {
		if len(stream) < 2 {
			return nil, fmt.Errorf("truncated packet header")
		}
		size := int(binary.BigEndian.Uint16(stream))
		stream = stream[2:]
		if size == 0 || size > len(stream) {
			return nil, fmt.Errorf("packet length %d exceeds remaining %d bytes", size, len(stream))
		}

		n, err := r.dec.Decode(stream[:size], frame)
		if err != nil {
			return nil, fmt.Errorf("decode packet: %w", err)
		}
		stream = stream[size:]

		for _, sample := range frame[:n] {
			pcm = append(pcm, byte(sample), byte(sample>>8))
		}
	}
	return pcm, nil
}

// encodeOpusPackets frames packets in the reader's wire format.
// Shared with tests and remote callers that produce Opus input.
func encodeOpusPackets(packets [][]byte) []byte {
	var out []byte
	for _, p := range packets {
		var hdr [2]byte
		binary.BigEndian.PutUint16(hdr[:], uint16(len(p)))
		out = append(out, hdr[:]...)
		out = append(out, p...)
	}
	return out
}

// FrameOpusPackets exposes the wire framing for callers that feed
// EncodingOpus services.
func FrameOpusPackets(packets [][]byte) []byte {
	return encodeOpusPackets(packets)
}
