package qscript

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fuzziqersoftware/newserv-sub000/tools/questasm/prs"
)

type fieldKind uint8

const (
	fU8 fieldKind = iota
	fU16
	fI16
	fU32
	fI32
	fF32
	fHex64
	fName      // 16-byte ASCII name
	fBytes     // n raw bytes
	fSectionID // u8 with name
	fCharClass // u8 with name
)

type field struct {
	name string
	off  int
	kind fieldKind
	n    int // fBytes only
}

// record is a fixed-size structure a data label can be interpreted as.
type record struct {
	role   Role
	name   string
	size   int
	fields []field
}

var records = []record{
	{RoleVisualConfig, "PlayerVisualConfig", 0x50, []field{
		{"name", 0x00, fName, 0},
		{"a2", 0x10, fHex64, 0},
		{"name_color", 0x18, fU32, 0},
		{"extra_model", 0x1C, fU8, 0},
		{"npc_saved", 0x1D, fBytes, 0x0B},
		{"a3", 0x28, fF32, 0},
		{"checksum", 0x2C, fU32, 0},
		{"section_id", 0x30, fSectionID, 0},
		{"char_class", 0x31, fCharClass, 0},
		{"validation", 0x32, fU8, 0},
		{"version", 0x33, fU8, 0},
		{"class_flags", 0x34, fU32, 0},
		{"costume", 0x38, fU16, 0},
		{"skin", 0x3A, fU16, 0},
		{"face", 0x3C, fU16, 0},
		{"head", 0x3E, fU16, 0},
		{"hair", 0x40, fU16, 0},
		{"hair_r", 0x42, fU16, 0},
		{"hair_g", 0x44, fU16, 0},
		{"hair_b", 0x46, fU16, 0},
		{"proportion_x", 0x48, fF32, 0},
		{"proportion_y", 0x4C, fF32, 0},
	}},
	{RolePlayerStats, "PlayerStats", 0x24, []field{
		{"atp", 0x00, fU16, 0},
		{"mst", 0x02, fU16, 0},
		{"evp", 0x04, fU16, 0},
		{"hp", 0x06, fU16, 0},
		{"dfp", 0x08, fU16, 0},
		{"ata", 0x0A, fU16, 0},
		{"lck", 0x0C, fU16, 0},
		{"esp", 0x0E, fU16, 0},
		{"height", 0x10, fF32, 0},
		{"a3", 0x14, fF32, 0},
		{"level", 0x18, fU32, 0},
		{"experience", 0x1C, fU32, 0},
		{"meseta", 0x20, fU32, 0},
	}},
	{RoleResistData, "ResistData", 0x20, []field{
		{"evp_bonus", 0x00, fI16, 0},
		{"efr", 0x02, fU16, 0},
		{"eic", 0x04, fU16, 0},
		{"eth", 0x06, fU16, 0},
		{"elt", 0x08, fU16, 0},
		{"edk", 0x0A, fU16, 0},
		{"a6", 0x0C, fU32, 0},
		{"a7", 0x10, fU32, 0},
		{"a8", 0x14, fU32, 0},
		{"a9", 0x18, fU32, 0},
		{"dfp_bonus", 0x1C, fI32, 0},
	}},
	{RoleAttackData, "AttackData", 0x30, []field{
		{"min_atp", 0x00, fI16, 0},
		{"max_atp", 0x02, fI16, 0},
		{"min_ata", 0x04, fI16, 0},
		{"max_ata", 0x06, fI16, 0},
		{"distance_x", 0x08, fF32, 0},
		{"angle", 0x0C, fU32, 0},
		{"distance_y", 0x10, fF32, 0},
		{"a8", 0x14, fU16, 0},
		{"a9", 0x16, fU16, 0},
		{"a10", 0x18, fU16, 0},
		{"a11", 0x1A, fU16, 0},
		{"a12", 0x1C, fU32, 0},
		{"a13", 0x20, fU32, 0},
		{"a14", 0x24, fU32, 0},
		{"a15", 0x28, fU32, 0},
		{"a16", 0x2C, fU32, 0},
	}},
	{RoleMovementData, "MovementData", 0x30, []field{
		{"fparam1", 0x00, fF32, 0},
		{"fparam2", 0x04, fF32, 0},
		{"fparam3", 0x08, fF32, 0},
		{"fparam4", 0x0C, fF32, 0},
		{"fparam5", 0x10, fF32, 0},
		{"fparam6", 0x14, fF32, 0},
		{"iparam1", 0x18, fU32, 0},
		{"iparam2", 0x1C, fU32, 0},
		{"iparam3", 0x20, fU32, 0},
		{"iparam4", 0x24, fU32, 0},
		{"iparam5", 0x28, fU32, 0},
		{"iparam6", 0x2C, fU32, 0},
	}},
}

var sectionIDNames = [...]string{
	"Viridia", "Greennill", "Skyly", "Bluefull", "Purplenum",
	"Pinkal", "Redria", "Oran", "Yellowboze", "Whitill",
}

var charClassNames = [...]string{
	"HUmar", "HUnewearl", "HUcast", "RAmar", "RAcast", "RAcaseal",
	"FOmarl", "FOnewm", "FOnewearl", "HUcaseal", "FOmar", "RAmarl",
}

func nameOr(names []string, i uint8) string {
	if int(i) < len(names) {
		return names[i]
	}
	return "unknown"
}

func formatField(b []byte, f field) string {
	p := b[f.off:]
	switch f.kind {
	case fU8:
		return fmt.Sprintf("%02X", p[0])
	case fU16:
		v := binary.LittleEndian.Uint16(p)
		return fmt.Sprintf("%04X /* %d */", v, v)
	case fI16:
		v := binary.LittleEndian.Uint16(p)
		return fmt.Sprintf("%04X /* %d */", v, int16(v))
	case fU32:
		v := binary.LittleEndian.Uint32(p)
		return fmt.Sprintf("%08X /* %d */", v, v)
	case fI32:
		v := binary.LittleEndian.Uint32(p)
		return fmt.Sprintf("%08X /* %d */", v, int32(v))
	case fF32:
		v := binary.LittleEndian.Uint32(p)
		return fmt.Sprintf("%08X /* %s */", v, formatFloat(v))
	case fHex64:
		return fmt.Sprintf("%016X", binary.LittleEndian.Uint64(p))
	case fName:
		raw := p[:0x10]
		return ShiftJIS.DecodeText(raw[:terminatedLen(raw, 1)]).String()
	case fBytes:
		return hexBytes(p[:f.n])
	case fSectionID:
		return fmt.Sprintf("%02X (%s)", p[0], nameOr(sectionIDNames[:], p[0]))
	case fCharClass:
		return fmt.Sprintf("%02X (%s)", p[0], nameOr(charClassNames[:], p[0]))
	}
	return "?"
}

// renderRecord appends the comment lines interpreting region as rec.
// base is the code offset of region, used for the hex dump of leftovers.
func renderRecord(lines []string, rec *record, region []byte, base int) []string {
	if len(region) < rec.size {
		lines = append(lines, fmt.Sprintf("  // As raw data (0x%X bytes; too small for referenced type)", len(region)))
		return appendHexComment(lines, region, base)
	}
	lines = append(lines, "  // As "+rec.name)
	for _, f := range rec.fields {
		lines = append(lines, fmt.Sprintf("  //   %-13s%s", f.name, formatField(region, f)))
	}
	if len(region) > rec.size {
		lines = append(lines, "  // Extra data after structure")
		lines = appendHexComment(lines, region[rec.size:], base+rec.size)
	}
	return lines
}

const f8f2EntrySize = 0x10

func renderF8F2(lines []string, region []byte, base int) []string {
	lines = append(lines, "  // As F8F2 entries")
	n := len(region) / f8f2EntrySize * f8f2EntrySize
	for off := 0; off < n; off += f8f2EntrySize {
		var vals []string
		for i := 0; i < 4; i++ {
			vals = append(vals, formatFloat(binary.LittleEndian.Uint32(region[off+i*4:])))
		}
		lines = append(lines, "  //   entry        "+strings.Join(vals, ", "))
	}
	if n < len(region) {
		lines = append(lines, "  // Extra data after structures")
		lines = appendHexComment(lines, region[n:], base+n)
	}
	return lines
}

func renderImage(lines []string, region []byte, base int) []string {
	res, err := prs.DecompressWithMeta(region)
	if err != nil {
		return append(lines, fmt.Sprintf("  // Could not decompress image data: %v", err))
	}
	lines = append(lines, fmt.Sprintf("  // As decompressed image data (0x%X bytes)", len(res.Data)))
	lines = appendHexComment(lines, res.Data, 0)
	if res.InputBytesUsed < len(region) {
		lines = append(lines, "  // Extra data after compressed data")
		lines = appendHexComment(lines, region[res.InputBytesUsed:], base+res.InputBytesUsed)
	}
	return lines
}

func renderString(lines []string, region []byte, enc Encoding) []string {
	b := region[:terminatedLen(region, enc.UnitSize())]
	return append(lines, "  // As string: "+enc.DecodeText(b).String())
}

// appendHexComment appends a commented hex and ASCII dump of b.
func appendHexComment(lines []string, b []byte, base int) []string {
	for off := 0; off < len(b); off += 16 {
		end := off + 16
		if end > len(b) {
			end = len(b)
		}
		var ascii strings.Builder
		for _, c := range b[off:end] {
			if c >= 0x20 && c < 0x7F {
				ascii.WriteByte(c)
			} else {
				ascii.WriteByte('.')
			}
		}
		lines = append(lines, fmt.Sprintf("  // %04X | %-47s | %s", base+off, hexBytes(b[off:end]), ascii.String()))
	}
	return lines
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, " ")
}

// formatFloat renders float bits as the shortest decimal that reads back
// to the same bits, or as raw hex when that is impossible.
func formatFloat(bits uint32) string {
	f := math.Float32frombits(bits)
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return fmt.Sprintf("0x%08X", bits)
	}
	if f == 0 && bits != 0 {
		return "-0.0"
	}
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
