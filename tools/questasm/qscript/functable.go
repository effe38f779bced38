package qscript

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Unassigned marks a function table slot with no offset.
const Unassigned = 0xFFFFFFFF

// DecodeFunctionTable reads the offsets of a function table.
func DecodeFunctionTable(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("function table: %w (0x%X bytes is not a multiple of 4)", ErrShortBuffer, len(b))
	}
	offsets := make([]uint32, len(b)/4)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return offsets, nil
}

// EncodeFunctionTable writes offsets in function table format.
func EncodeFunctionTable(offsets []uint32) []byte {
	var buf bytes.Buffer
	for _, off := range offsets {
		encodeU32(&buf, off)
	}
	return buf.Bytes()
}
