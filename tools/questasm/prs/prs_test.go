package prs

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	noise := make([]byte, 3000)
	rng.Read(noise)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single", []byte{0x42}},
		{"short run", []byte("aaaa")},
		{"long run", bytes.Repeat([]byte{0}, 1000)},
		{"text", []byte("the quick brown fox jumps over the lazy dog; the quick brown fox")},
		{"pattern", bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7}, 200)},
		{"far match", append(append(append([]byte{}, noise[:500]...), noise[:2000]...), noise[:40]...)},
		{"noise", noise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := Compress(tt.data)
			got, err := Decompress(comp)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("round trip: got %d bytes, want %d", len(got), len(tt.data))
			}
		})
	}
}

func TestCompressShrinksRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("ABCD"), 256)
	comp := Compress(data)
	if len(comp) >= len(data)/4 {
		t.Errorf("compressed size: got %d, want < %d", len(comp), len(data)/4)
	}
}

func TestDecompressWithMeta(t *testing.T) {
	data := []byte("image payload image payload")
	comp := Compress(data)
	trailer := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	res, err := DecompressWithMeta(append(append([]byte{}, comp...), trailer...))
	if err != nil {
		t.Fatalf("DecompressWithMeta: %v", err)
	}
	if !bytes.Equal(res.Data, data) {
		t.Errorf("data: got %q, want %q", res.Data, data)
	}
	if res.InputBytesUsed != len(comp) {
		t.Errorf("InputBytesUsed: got %d, want %d", res.InputBytesUsed, len(comp))
	}
}

func TestDecompressHandEncoded(t *testing.T) {
	// Control bits, LSB first: 1 1 (literals "a" "b"), 0 0 1 0 (short copy
	// of 4 from 2 back), 0 1 (stop).
	in := []byte{0b1001_0011, 'a', 'b', 0xFE, 0x00, 0x00}
	got, err := Decompress(in)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if want := []byte("ababab"); !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecompressErrors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		eof  bool
	}{
		{"empty", nil, true},
		{"missing literal", []byte{0x01}, true},
		{"missing stop", []byte{0x01, 'x'}, true},
		// Short copy from 1 byte back with no output yet.
		{"backreference before start", []byte{0x00, 0xFF}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.in)
			if err == nil {
				t.Fatal("Decompress: got nil error")
			}
			if got := errors.Is(err, ErrUnexpectedEOF); got != tt.eof {
				t.Errorf("errors.Is(err, ErrUnexpectedEOF): got %v, want %v (%v)", got, tt.eof, err)
			}
		})
	}
}
