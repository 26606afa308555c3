package index

import (
	"encoding/binary"
	"fmt"
	"math"
)

// VectorCodec serializes embedding vectors to and from the BLOB column.
// The codec is injected into the store so the wire format is an explicit
// choice of the caller rather than ambient process state.
type VectorCodec interface {
	Encode(vec []float32) []byte
	Decode(data []byte) ([]float32, error)
}

// Float32Codec stores vectors as little-endian IEEE-754 float32 words.
// Fixed-width binary keeps the round-trip bit-exact; decimal text would
// lose precision.
type Float32Codec struct{}

// Encode packs a vector into a 4*len(vec) byte blob.
func (Float32Codec) Encode(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Decode unpacks a blob produced by Encode.
func (Float32Codec) Decode(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
