package db

import (
	"encoding/binary"
	"math"
)

// EncodeVector packs a float32 vector into the little-endian byte layout
// FT expects for VECTOR fields, both in stored hashes and in KNN PARAMS.
func EncodeVector(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
