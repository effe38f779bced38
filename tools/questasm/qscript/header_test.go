package qscript

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// buildScript assembles a script buffer from raw code and function table
// offsets.
func buildScript(t *testing.T, v Version, h *Header, code []byte, offsets []uint32) []byte {
	t.Helper()
	if h == nil {
		h = &Header{Name: Text{Str: "test"}}
	}
	ft := EncodeFunctionTable(offsets)
	hdr, err := h.Encode(v, len(code), len(ft))
	if err != nil {
		t.Fatalf("Header.Encode: %v", err)
	}
	var buf bytes.Buffer
	buf.Write(hdr)
	buf.Write(code)
	buf.Write(ft)
	return buf.Bytes()
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		v    Version
		want Layout
		size int
	}{
		{DCNTE, LayoutDCNTE, 0x20},
		{DC112000, LayoutDCNTE, 0x20},
		{DCV1, LayoutDC, 0x1D4},
		{DCV2, LayoutDC, 0x1D4},
		{PCNTE, LayoutPC, 0x394},
		{PCV2, LayoutPC, 0x394},
		{GCNTE, LayoutGC, 0x1D4},
		{GCV3, LayoutGC, 0x1D4},
		{GCEp3NTE, LayoutGC, 0x1D4},
		{GCEp3, LayoutGC, 0x1D4},
		{XBV3, LayoutGC, 0x1D4},
		{BBV4, LayoutBB, 0x398},
	}
	for _, tt := range tests {
		got := LayoutFor(tt.v)
		if got != tt.want {
			t.Errorf("LayoutFor(%s): got %s, want %s", tt.v, got, tt.want)
		}
		if got.Size() != tt.size {
			t.Errorf("%s size: got 0x%X, want 0x%X", got, got.Size(), tt.size)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Version
		h    Header
	}{
		{"dc_nte", DCNTE, Header{
			Name: Text{Str: strings.Repeat("N", 0x10)},
		}},
		{"dc_v1", DCV1, Header{
			Language: 1, QuestNumber: 0x1234, Unused: 0xDEADBEEF, Unknown1: 5,
			Name:      Text{Str: strings.Repeat("n", 0x20)},
			ShortDesc: Text{Str: strings.Repeat("s", 0x80)},
			LongDesc:  Text{Str: strings.Repeat("l", 0x120)},
		}},
		{"pc_v2", PCV2, Header{
			Language: 1, QuestNumber: 0xBEEF,
			Name:      Text{Str: strings.Repeat("名", 0x20)},
			ShortDesc: Text{Str: strings.Repeat("s", 0x80)},
			LongDesc:  Text{Str: strings.Repeat("l", 0x120)},
		}},
		{"gc_v3 japanese", GCV3, Header{
			Language: 0, QuestNumber: 0xFF, Episode: 1,
			Name:      Text{Str: strings.Repeat("テスト", 5)},
			ShortDesc: Text{Str: "short"},
			LongDesc:  Text{Str: "long\ndescription"},
		}},
		{"gc_v3 english", GCV3, Header{
			Language: 1, QuestNumber: 58, Unknown1: 0xFF,
			Name:      Text{Str: "Café"},
			ShortDesc: Text{Str: strings.Repeat("s", 0x80)},
			LongDesc:  Text{Str: strings.Repeat("l", 0x120)},
		}},
		{"bb_v4", BBV4, Header{
			QuestNumber: 0xFFFF, Episode: 2, MaxPlayers: 4, Joinable: 3,
			Unused: 1, Unused2: 0x8001, Unknown2: 1,
			Name:      Text{Str: strings.Repeat("b", 0x20)},
			ShortDesc: Text{Str: strings.Repeat("s", 0x80)},
			LongDesc:  Text{Str: strings.Repeat("l", 0x120)},
		}},
		{"raw name", XBV3, Header{
			Name: Text{Raw: []byte{0x41, 0xFF}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildScript(t, tt.v, &tt.h, []byte{0x01, 0, 0, 0}, []uint32{0})
			got, err := DecodeHeader(data, tt.v)
			if err != nil {
				t.Fatalf("DecodeHeader: %v", err)
			}
			size := uint32(LayoutFor(tt.v).Size())
			if got.CodeOffset != size {
				t.Errorf("CodeOffset: got 0x%X, want 0x%X", got.CodeOffset, size)
			}
			if got.FunctionTableOffset != size+4 {
				t.Errorf("FunctionTableOffset: got 0x%X, want 0x%X", got.FunctionTableOffset, size+4)
			}
			if got.Size != uint32(len(data)) {
				t.Errorf("Size: got 0x%X, want 0x%X", got.Size, len(data))
			}
			if got.Language != tt.h.Language || got.QuestNumber != tt.h.QuestNumber ||
				got.Episode != tt.h.Episode || got.MaxPlayers != tt.h.MaxPlayers || got.Joinable != tt.h.Joinable ||
				got.Unused != tt.h.Unused || got.Unknown1 != tt.h.Unknown1 ||
				got.Unused2 != tt.h.Unused2 || got.Unknown2 != tt.h.Unknown2 {
				t.Errorf("fields: got %+v, want %+v", got, tt.h)
			}
			for _, f := range []struct {
				name      string
				got, want Text
			}{
				{"name", got.Name, tt.h.Name},
				{"short_desc", got.ShortDesc, tt.h.ShortDesc},
				{"long_desc", got.LongDesc, tt.h.LongDesc},
			} {
				if f.got.String() != f.want.String() {
					t.Errorf("%s: got %s, want %s", f.name, f.got, f.want)
				}
			}
		})
	}
}

func TestHeaderTruncatesLongText(t *testing.T) {
	h := &Header{Language: 1, Name: Text{Str: strings.Repeat("x", 0x30)}}
	data := buildScript(t, GCV3, h, nil, nil)
	got, err := DecodeHeader(data, GCV3)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if want := strings.Repeat("x", 0x20); got.Name.Str != want {
		t.Errorf("name: got %q, want %q", got.Name.Str, want)
	}

	// Multi-byte characters are never split.
	h = &Header{Name: Text{Str: "a" + strings.Repeat("あ", 0x10)}}
	data = buildScript(t, GCV3, h, nil, nil)
	if got, err = DecodeHeader(data, GCV3); err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if want := "a" + strings.Repeat("あ", 0x0F); got.Name.Str != want {
		t.Errorf("name: got %q, want %q", got.Name.Str, want)
	}
}

func TestHeaderEncodeErrors(t *testing.T) {
	if _, err := (&Header{QuestNumber: 0x100}).Encode(GCV3, 0, 0); err == nil {
		t.Error("quest number 0x100 on GC: got nil error")
	}
	if _, err := (&Header{}).Encode(BBPatch, 0, 0); !errors.Is(err, ErrNoScripts) {
		t.Errorf("BB_PATCH: got %v, want ErrNoScripts", err)
	}
}

func TestDecodeHeaderErrors(t *testing.T) {
	good := buildScript(t, DCV2, nil, []byte{0x01, 0, 0, 0}, []uint32{0})
	patch := func(off int, v uint32) []byte {
		b := bytes.Clone(good)
		b[off] = byte(v)
		b[off+1] = byte(v >> 8)
		b[off+2] = byte(v >> 16)
		b[off+3] = byte(v >> 24)
		return b
	}

	tests := []struct {
		name string
		data []byte
		v    Version
		want error
	}{
		{"short", good[:0x100], DCV2, ErrShortBuffer},
		{"code inside header", patch(0, 0x10), DCV2, ErrBadOffset},
		{"code after function table", patch(0, 0x1D8+4), DCV2, ErrBadOffset},
		{"function table past end", patch(4, 0x1000), DCV2, ErrBadOffset},
		{"patch version", good, PCPatch, ErrNoScripts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeHeader(tt.data, tt.v)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
