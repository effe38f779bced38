package qscript

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Layout is one of the binary header formats.
type Layout uint8

const (
	LayoutDCNTE Layout = iota // DC prototypes: name only
	LayoutDC                  // DC v1 and v2
	LayoutPC                  // PC, UTF-16 text
	LayoutGC                  // GameCube and Xbox, 8-bit quest number plus episode
	LayoutBB                  // Blue Burst, UTF-16 text plus join policy
)

var layoutNames = [...]string{
	LayoutDCNTE: "dc_nte",
	LayoutDC:    "dc",
	LayoutPC:    "pc",
	LayoutGC:    "gc",
	LayoutBB:    "bb",
}

func (l Layout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return "???"
}

// LayoutFor returns the header layout used by version v.
func LayoutFor(v Version) Layout {
	switch {
	case v == DCNTE || v == DC112000:
		return LayoutDCNTE
	case v == DCV1 || v == DCV2:
		return LayoutDC
	case v == PCNTE || v == PCV2:
		return LayoutPC
	case v == BBV4:
		return LayoutBB
	default:
		return LayoutGC
	}
}

// Text field geometry of each layout, in bytes.
type layoutGeometry struct {
	size                     int
	nameOff, nameLen         int
	shortOff, shortLen       int
	longOff, longLen         int
	hasLanguage, hasDescs    bool
	hasEpisode, hasJoinFlags bool
	hasUnknown1              bool // byte 0x11
	hasBBReserved            bool // u16 at 0x12 and byte 0x17
	questNumberWidth         int
}

var layouts = [...]layoutGeometry{
	LayoutDCNTE: {size: 0x20, nameOff: 0x10, nameLen: 0x10},
	LayoutDC: {size: 0x1D4, nameOff: 0x14, nameLen: 0x20, shortOff: 0x34, shortLen: 0x80, longOff: 0xB4, longLen: 0x120,
		hasLanguage: true, hasDescs: true, hasUnknown1: true, questNumberWidth: 2},
	LayoutPC: {size: 0x394, nameOff: 0x14, nameLen: 0x40, shortOff: 0x54, shortLen: 0x100, longOff: 0x154, longLen: 0x240,
		hasLanguage: true, hasDescs: true, hasUnknown1: true, questNumberWidth: 2},
	LayoutGC: {size: 0x1D4, nameOff: 0x14, nameLen: 0x20, shortOff: 0x34, shortLen: 0x80, longOff: 0xB4, longLen: 0x120,
		hasLanguage: true, hasDescs: true, hasEpisode: true, hasUnknown1: true, questNumberWidth: 1},
	LayoutBB: {size: 0x398, nameOff: 0x18, nameLen: 0x40, shortOff: 0x58, shortLen: 0x100, longOff: 0x158, longLen: 0x240,
		hasDescs: true, hasEpisode: true, hasJoinFlags: true, hasBBReserved: true, questNumberWidth: 2},
}

// Size is the fixed byte size of headers in layout l.
func (l Layout) Size() int { return layouts[l].size }

// Header is the metadata block at the start of every script. Fields a
// layout has no room for are zero after decoding and ignored on encoding.
type Header struct {
	CodeOffset          uint32
	FunctionTableOffset uint32
	Size                uint32

	Language    uint8
	QuestNumber uint16
	Episode     uint8 // raw header byte; see EpisodeFromHeader
	MaxPlayers  uint8
	Joinable    uint8 // nonzero if players may join in progress

	// Bytes with no known meaning, kept so scripts re-encode unchanged.
	Unused   uint32 // 0x0C
	Unknown1 uint8  // 0x11, DC/PC/GC layouts
	Unused2  uint16 // 0x12, BB layout
	Unknown2 uint8  // 0x17, BB layout

	Name      Text
	ShortDesc Text
	LongDesc  Text
}

var (
	// ErrShortBuffer is returned when a buffer ends before a structure it
	// must contain.
	ErrShortBuffer = errors.New("buffer too small")
	// ErrBadOffset is returned when a header offset points outside the buffer.
	ErrBadOffset = errors.New("offset out of range")
)

// DecodeHeader parses the header at the start of data and checks that the
// code segment and function table it describes lie inside data.
func DecodeHeader(data []byte, v Version) (*Header, error) {
	if err := checkVersion(v); err != nil {
		return nil, err
	}
	layout := LayoutFor(v)
	g := &layouts[layout]
	if len(data) < g.size {
		return nil, fmt.Errorf("%s header: %w (have 0x%X bytes, need 0x%X)", layout, ErrShortBuffer, len(data), g.size)
	}

	h := &Header{
		CodeOffset:          binary.LittleEndian.Uint32(data[0:]),
		FunctionTableOffset: binary.LittleEndian.Uint32(data[4:]),
		Size:                binary.LittleEndian.Uint32(data[8:]),
		Unused:              binary.LittleEndian.Uint32(data[0xC:]),
	}
	switch layout {
	case LayoutDC, LayoutPC:
		h.Language = data[0x10]
		h.Unknown1 = data[0x11]
		h.QuestNumber = binary.LittleEndian.Uint16(data[0x12:])
	case LayoutGC:
		h.Language = data[0x10]
		h.Unknown1 = data[0x11]
		h.QuestNumber = uint16(data[0x12])
		h.Episode = data[0x13]
	case LayoutBB:
		h.QuestNumber = binary.LittleEndian.Uint16(data[0x10:])
		h.Unused2 = binary.LittleEndian.Uint16(data[0x12:])
		h.Episode = data[0x14]
		h.MaxPlayers = data[0x15]
		h.Joinable = data[0x16]
		h.Unknown2 = data[0x17]
	}

	h.decodeText(data, g, TextEncoding(v, h.Language))

	if h.CodeOffset < uint32(g.size) || h.CodeOffset > h.FunctionTableOffset {
		return nil, fmt.Errorf("code offset 0x%X: %w", h.CodeOffset, ErrBadOffset)
	}
	if h.FunctionTableOffset > uint32(len(data)) {
		return nil, fmt.Errorf("function table offset 0x%X: %w", h.FunctionTableOffset, ErrBadOffset)
	}
	return h, nil
}

func (h *Header) decodeText(data []byte, g *layoutGeometry, enc Encoding) {
	h.Name = enc.decodeField(data[g.nameOff : g.nameOff+g.nameLen])
	if g.hasDescs {
		h.ShortDesc = enc.decodeField(data[g.shortOff : g.shortOff+g.shortLen])
		h.LongDesc = enc.decodeField(data[g.longOff : g.longOff+g.longLen])
	}
}

// Encode builds the header for a script with the given segment sizes. The
// three offsets are computed; h's offset fields are not consulted.
func (h *Header) Encode(v Version, codeSize, functionTableSize int) ([]byte, error) {
	if err := checkVersion(v); err != nil {
		return nil, err
	}
	layout := LayoutFor(v)
	g := &layouts[layout]
	if g.questNumberWidth == 1 && h.QuestNumber > 0xFF {
		return nil, fmt.Errorf("quest number %d does not fit in %s header", h.QuestNumber, layout)
	}

	buf := make([]byte, g.size)
	codeOffset := uint32(g.size)
	functionTableOffset := codeOffset + uint32(codeSize)
	binary.LittleEndian.PutUint32(buf[0:], codeOffset)
	binary.LittleEndian.PutUint32(buf[4:], functionTableOffset)
	binary.LittleEndian.PutUint32(buf[8:], functionTableOffset+uint32(functionTableSize))
	binary.LittleEndian.PutUint32(buf[0xC:], h.Unused)
	switch layout {
	case LayoutDC, LayoutPC:
		buf[0x10] = h.Language
		buf[0x11] = h.Unknown1
		binary.LittleEndian.PutUint16(buf[0x12:], h.QuestNumber)
	case LayoutGC:
		buf[0x10] = h.Language
		buf[0x11] = h.Unknown1
		buf[0x12] = uint8(h.QuestNumber)
		buf[0x13] = h.Episode
	case LayoutBB:
		binary.LittleEndian.PutUint16(buf[0x10:], h.QuestNumber)
		binary.LittleEndian.PutUint16(buf[0x12:], h.Unused2)
		buf[0x14] = h.Episode
		buf[0x15] = h.MaxPlayers
		buf[0x16] = h.Joinable
		buf[0x17] = h.Unknown2
	}

	enc := TextEncoding(v, h.Language)
	if err := enc.encodeField(buf[g.nameOff:g.nameOff+g.nameLen], h.Name); err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	if g.hasDescs {
		if err := enc.encodeField(buf[g.shortOff:g.shortOff+g.shortLen], h.ShortDesc); err != nil {
			return nil, fmt.Errorf("short description: %w", err)
		}
		if err := enc.encodeField(buf[g.longOff:g.longOff+g.longLen], h.LongDesc); err != nil {
			return nil, fmt.Errorf("long description: %w", err)
		}
	}
	return buf, nil
}
