package db

import (
	"encoding/binary"
	"math"
)

// EncodeVector encodes v as the little-endian FLOAT32 blob stored in hash fields
// and passed as a KNN query parameter.
func EncodeVector(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
