package qscript

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// ArgKind is the encoding of one instruction argument.
type ArgKind uint8

const (
	Label16       ArgKind = iota // function table index, u16
	Label16Set                   // u8 count, then count u16 indexes
	Label32                      // function table index, u32
	Reg                          // register number, u8
	RegSet                       // u8 count, then count register numbers
	RegSetFixed                  // first of Count consecutive registers, u8
	Reg32                        // register number, u32
	Reg32SetFixed                // first of Count consecutive registers, u32
	Int8
	Int16
	Int32
	Float32
	CString // NUL-terminated, 16-bit units on UTF-16 versions
)

var argKindNames = [...]string{
	Label16:       "label16",
	Label16Set:    "label16_set",
	Label32:       "label32",
	Reg:           "reg",
	RegSet:        "reg_set",
	RegSetFixed:   "reg_set_fixed",
	Reg32:         "reg32",
	Reg32SetFixed: "reg32_set_fixed",
	Int8:          "int8",
	Int16:         "int16",
	Int32:         "int32",
	Float32:       "float32",
	CString:       "cstring",
}

func (k ArgKind) String() string {
	if int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return "???"
}

// IsLabel reports whether k refers to one or more function table entries.
func (k ArgKind) IsLabel() bool {
	return k == Label16 || k == Label16Set || k == Label32
}

// IsRegister reports whether k names one or more registers.
func (k ArgKind) IsRegister() bool {
	switch k {
	case Reg, RegSet, RegSetFixed, Reg32, Reg32SetFixed:
		return true
	}
	return false
}

// Role is the set of interpretations inferred for the bytes at a label.
// A label referenced in different ways carries more than one role.
type Role uint16

const (
	RoleCode Role = 1 << iota
	RoleData
	RoleString
	RolePlayerStats
	RoleVisualConfig
	RoleResistData
	RoleAttackData
	RoleMovementData
	RoleImage
	RoleF8F2
)

var roleNames = []struct {
	role Role
	name string
}{
	{RoleCode, "code"},
	{RoleData, "data"},
	{RoleString, "string"},
	{RolePlayerStats, "player_stats"},
	{RoleVisualConfig, "visual_config"},
	{RoleResistData, "resist_data"},
	{RoleAttackData, "attack_data"},
	{RoleMovementData, "movement_data"},
	{RoleImage, "image"},
	{RoleF8F2, "f8f2_data"},
}

func (r Role) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	for _, rn := range roleNames {
		if r&rn.role != 0 {
			parts = append(parts, rn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Arg describes one argument of an opcode.
type Arg struct {
	Kind  ArgKind
	Role  Role   // label kinds only
	Count int    // RegSetFixed and Reg32SetFixed only
	Name  string // optional, for documentation
}

// Flags holds an opcode's version availability mask in its low bits and
// behavior flags above them.
type Flags uint32

const (
	// FlagArgs marks opcodes that take their operands from the argument
	// stack on versions that use it.
	FlagArgs Flags = 1 << (16 + iota)
	// FlagPreserve marks push instructions; the argument stack is cleared
	// after every instruction without it.
	FlagPreserve
	// FlagReturn marks instructions that execution never falls through.
	FlagReturn
	// FlagEpisode marks instructions whose integer argument declares the
	// quest's episode.
	FlagEpisode

	VersionMask Flags = Flags(1)<<NumVersions - 1
)

// OpcodeDef is one entry of the instruction set table.
type OpcodeDef struct {
	Code  uint16
	Name  string
	Args  []Arg
	Flags Flags
}

// AvailableIn reports whether d exists on version v.
func (d *OpcodeDef) AvailableIn(v Version) bool {
	return d.Flags&v.mask() != 0
}

// UsesArgStack reports whether d's operands come from the argument stack on v.
func (d *OpcodeDef) UsesArgStack(v Version) bool {
	return d.Flags&FlagArgs != 0 && v.UsesArgStack()
}

// IsReturn reports whether d ends a function.
func (d *OpcodeDef) IsReturn() bool { return d.Flags&FlagReturn != 0 }

// OpcodeSize is the encoded size of d's opcode in bytes.
func (d *OpcodeDef) OpcodeSize() int {
	if d.Code > 0xFF {
		return 2
	}
	return 1
}

func (d *OpcodeDef) String() string {
	return fmt.Sprintf("%04X %s", d.Code, d.Name)
}

// isExtendedPrefix reports whether b starts a two-byte opcode.
func isExtendedPrefix(b byte) bool {
	return b&0xFE == 0xF8
}

type opcodeIndex struct {
	byCode map[uint16]*OpcodeDef
	byName map[string]*OpcodeDef
	sorted []*OpcodeDef
}

func newOpcodeIndex(defs []OpcodeDef, v Version) (*opcodeIndex, error) {
	idx := &opcodeIndex{
		byCode: make(map[uint16]*OpcodeDef),
		byName: make(map[string]*OpcodeDef),
	}
	for i := range defs {
		d := &defs[i]
		if !d.AvailableIn(v) {
			continue
		}
		if prev, ok := idx.byCode[d.Code]; ok {
			return nil, fmt.Errorf("%s: opcode %04X defined twice (%s, %s)", v, d.Code, prev.Name, d.Name)
		}
		key := strings.ToLower(d.Name)
		if prev, ok := idx.byName[key]; ok {
			return nil, fmt.Errorf("%s: mnemonic %s defined twice (%04X, %04X)", v, d.Name, prev.Code, d.Code)
		}
		idx.byCode[d.Code] = d
		idx.byName[key] = d
		idx.sorted = append(idx.sorted, d)
	}
	slices.SortFunc(idx.sorted, func(a, b *OpcodeDef) int {
		return int(a.Code) - int(b.Code)
	})
	return idx, nil
}

var opcodeIndexes [NumVersions]struct {
	once sync.Once
	idx  *opcodeIndex
}

func indexFor(v Version) *opcodeIndex {
	e := &opcodeIndexes[v]
	e.once.Do(func() {
		idx, err := newOpcodeIndex(opcodeDefs, v)
		if err != nil {
			panic("qscript: " + err.Error())
		}
		e.idx = idx
	})
	return e.idx
}

// LookupCode finds the definition of an opcode on version v.
func LookupCode(code uint16, v Version) (*OpcodeDef, bool) {
	if v >= NumVersions {
		return nil, false
	}
	d, ok := indexFor(v).byCode[code]
	return d, ok
}

// LookupName finds the definition of a mnemonic on version v.
// Mnemonics are matched case-insensitively.
func LookupName(name string, v Version) (*OpcodeDef, bool) {
	if v >= NumVersions {
		return nil, false
	}
	d, ok := indexFor(v).byName[strings.ToLower(name)]
	return d, ok
}

// Opcodes returns every definition available on v, ordered by code.
func Opcodes(v Version) []*OpcodeDef {
	if v >= NumVersions {
		return nil
	}
	return slices.Clone(indexFor(v).sorted)
}
