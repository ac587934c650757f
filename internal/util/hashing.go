package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// HashMatrix fingerprints the shapes and values of ms, in order.
func HashMatrix(ms ...mat.Matrix) string {
	buffer := GetBytesBuffer()
	defer PutBytesBuffer(buffer)
	for _, m := range ms {
		rows, cols := m.Dims()
		buffer.WriteString(strconv.Itoa(rows))
		buffer.WriteByte('x')
		buffer.WriteString(strconv.Itoa(cols))
		buffer.WriteByte(';')
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				buffer.WriteString(strconv.FormatFloat(m.At(i, j), 'g', -1, 64))
				buffer.WriteByte(',')
			}
		}
	}
	sum := sha256.Sum256(buffer.Bytes())
	return hex.EncodeToString(sum[:])
}
