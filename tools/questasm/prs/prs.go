// Package prs implements the PRS sliding-window compression format used for
// image payloads embedded in quest scripts.
//
// A PRS stream interleaves control bytes with data. Control bits are
// consumed least significant bit first and select one of three commands:
//
//	1        literal: copy the next data byte
//	0 0 b b  short copy: 2 to 5 bytes from up to 0x100 bytes back
//	0 1      long copy: a u16 gives a 13-bit distance and 3-bit count; a
//	         zero distance ends the stream
package prs

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when the input ends before the stop command.
var ErrUnexpectedEOF = errors.New("prs: unexpected end of input")

// Result is the output of DecompressWithMeta.
type Result struct {
	Data           []byte
	InputBytesUsed int // bytes of input up to and including the stop command
}

type reader struct {
	data     []byte
	pos      int
	ctrl     byte
	ctrlBits int
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBit() (bool, error) {
	if r.ctrlBits == 0 {
		b, err := r.readByte()
		if err != nil {
			return false, err
		}
		r.ctrl = b
		r.ctrlBits = 8
	}
	bit := r.ctrl&1 != 0
	r.ctrl >>= 1
	r.ctrlBits--
	return bit, nil
}

// Decompress decodes a complete PRS stream.
func Decompress(data []byte) ([]byte, error) {
	res, err := DecompressWithMeta(data)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// DecompressWithMeta decodes a PRS stream and reports how much input it
// consumed, so callers can find data following the stream.
func DecompressWithMeta(data []byte) (Result, error) {
	r := &reader{data: data}
	var out []byte
	for {
		literal, err := r.readBit()
		if err != nil {
			return Result{}, err
		}
		if literal {
			b, err := r.readByte()
			if err != nil {
				return Result{}, err
			}
			out = append(out, b)
			continue
		}

		long, err := r.readBit()
		if err != nil {
			return Result{}, err
		}
		var offset, count int
		if long {
			lo, err := r.readByte()
			if err != nil {
				return Result{}, err
			}
			hi, err := r.readByte()
			if err != nil {
				return Result{}, err
			}
			a := int(lo) | int(hi)<<8
			if a>>3 == 0 {
				return Result{Data: out, InputBytesUsed: r.pos}, nil
			}
			offset = a>>3 - 0x2000
			if a&7 != 0 {
				count = a&7 + 2
			} else {
				n, err := r.readByte()
				if err != nil {
					return Result{}, err
				}
				count = int(n) + 1
			}
		} else {
			hi, err := r.readBit()
			if err != nil {
				return Result{}, err
			}
			lo, err := r.readBit()
			if err != nil {
				return Result{}, err
			}
			count = 2
			if hi {
				count += 2
			}
			if lo {
				count++
			}
			b, err := r.readByte()
			if err != nil {
				return Result{}, err
			}
			offset = int(b) - 0x100
		}

		start := len(out) + offset
		if start < 0 {
			return Result{}, fmt.Errorf("prs: backreference %d before start of output at input offset %d", offset, r.pos)
		}
		for i := 0; i < count; i++ {
			out = append(out, out[start+i])
		}
	}
}

type writer struct {
	out      []byte
	ctrlPos  int
	ctrlBits int
}

func (w *writer) writeBit(bit bool) {
	if w.ctrlBits == 8 {
		w.ctrlPos = len(w.out)
		w.out = append(w.out, 0)
		w.ctrlBits = 0
	}
	if bit {
		w.out[w.ctrlPos] |= 1 << w.ctrlBits
	}
	w.ctrlBits++
}

const (
	maxShortDistance = 0x100
	maxLongDistance  = 0x1FFF
	maxCopy          = 0x100
)

// Compress encodes data as a PRS stream using greedy longest-match search.
func Compress(data []byte) []byte {
	w := &writer{out: []byte{0}}
	for pos := 0; pos < len(data); {
		dist, n := longestMatch(data, pos)
		switch {
		case n >= 2 && n <= 5 && dist <= maxShortDistance:
			w.writeBit(false)
			w.writeBit(false)
			w.writeBit((n-2)&2 != 0)
			w.writeBit((n-2)&1 != 0)
			w.out = append(w.out, byte(0x100-dist))
		case n >= 3:
			w.writeBit(false)
			w.writeBit(true)
			a := (0x2000 - dist) << 3
			if n <= 9 {
				a |= n - 2
				w.out = append(w.out, byte(a), byte(a>>8))
			} else {
				w.out = append(w.out, byte(a), byte(a>>8), byte(n-1))
			}
		default:
			n = 1
			w.writeBit(true)
			w.out = append(w.out, data[pos])
		}
		pos += n
	}
	w.writeBit(false)
	w.writeBit(true)
	return append(w.out, 0, 0)
}

// longestMatch finds the longest earlier copy of the bytes at pos.
func longestMatch(data []byte, pos int) (dist, n int) {
	for d := 1; d <= maxLongDistance && d <= pos; d++ {
		l := 0
		for l < maxCopy && pos+l < len(data) && data[pos+l-d] == data[pos+l] {
			l++
		}
		if l > n || (l == n && l >= 2 && l <= 5 && d <= maxShortDistance && dist > maxShortDistance) {
			dist, n = d, l
		}
	}
	return dist, n
}
