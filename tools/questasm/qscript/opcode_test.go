package qscript

import (
	"errors"
	"strings"
	"testing"
)

func TestParseVersion(t *testing.T) {
	for v := PCPatch; v < NumVersions; v++ {
		got, err := ParseVersion(strings.ToLower(v.String()))
		if err != nil {
			t.Errorf("ParseVersion(%s): %v", v, err)
			continue
		}
		if got != v {
			t.Errorf("ParseVersion(%s): got %s", v, got)
		}
	}
	if _, err := ParseVersion("DC_V3"); err == nil {
		t.Error("ParseVersion(DC_V3): got nil error")
	}
}

func TestVersionFamilies(t *testing.T) {
	for v := DCNTE; v < NumVersions; v++ {
		n := 0
		for _, in := range []bool{v.IsV1(), v.IsV2(), v.IsV3(), v.IsV4()} {
			if in {
				n++
			}
		}
		if n != 1 {
			t.Errorf("%s: in %d families, want 1", v, n)
		}
	}
	for _, v := range []Version{PCPatch, BBPatch} {
		if err := checkVersion(v); !errors.Is(err, ErrNoScripts) {
			t.Errorf("checkVersion(%s): got %v, want ErrNoScripts", v, err)
		}
	}
}

func TestOpcodeTableConsistent(t *testing.T) {
	for v := DCNTE; v < NumVersions; v++ {
		idx, err := newOpcodeIndex(opcodeDefs, v)
		if err != nil {
			t.Errorf("%s: %v", v, err)
			continue
		}
		if len(idx.sorted) == 0 {
			t.Errorf("%s: no opcodes", v)
		}
		for _, d := range idx.sorted {
			if d.Code > 0xFF && !isExtendedPrefix(byte(d.Code>>8)) {
				t.Errorf("%s: %s has no extended prefix", v, d)
			}
			if d.Code <= 0xFF && isExtendedPrefix(byte(d.Code)) {
				t.Errorf("%s: %s uses a prefix byte as opcode", v, d)
			}
			if d.UsesArgStack(v) && d.Flags&FlagPreserve != 0 {
				t.Errorf("%s: push instruction %s takes stack arguments", v, d)
			}
		}
	}
}

func TestOpcodeIndexCollisions(t *testing.T) {
	tests := []struct {
		name string
		defs []OpcodeDef
		want string
	}{
		{"code", []OpcodeDef{
			{0x01, "one", nil, fV3},
			{0x01, "uno", nil, v34},
		}, "opcode 0001 defined twice"},
		{"name", []OpcodeDef{
			{0x01, "one", nil, fV3},
			{0x02, "ONE", nil, fV3},
		}, "mnemonic ONE defined twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newOpcodeIndex(tt.defs, GCV3)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}

	// The same code on disjoint versions is fine.
	defs := []OpcodeDef{{0x0A, "leta", nil, v12}, {0x0A, "letb", nil, v34}}
	if _, err := newOpcodeIndex(defs, GCV3); err != nil {
		t.Errorf("disjoint versions: %v", err)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		v    Version
		code uint16
		ok   bool
	}{
		{"ret", DCNTE, 0x01, true},
		{"RET", BBV4, 0x01, true},
		{"leta", DCV1, 0x0A, true},
		{"leta", GCV3, 0x0C, true},
		{"letb", GCV3, 0x0A, true},
		{"letb", DCV2, 0, false},
		{"set_episode", BBV4, 0xF8BC, true},
		{"set_episode", PCV2, 0, false},
		{"get_physical_data", DCV2, 0xF892, true},
		{"get_physical_data", DCV1, 0, false},
		{"no_such_thing", GCV3, 0, false},
	}
	for _, tt := range tests {
		d, ok := LookupName(tt.name, tt.v)
		if ok != tt.ok {
			t.Errorf("LookupName(%s, %s): got ok=%v, want %v", tt.name, tt.v, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if d.Code != tt.code {
			t.Errorf("LookupName(%s, %s): got %04X, want %04X", tt.name, tt.v, d.Code, tt.code)
		}
		if back, ok := LookupCode(d.Code, tt.v); !ok || back != d {
			t.Errorf("LookupCode(%04X, %s): got %v, want %v", d.Code, tt.v, back, d)
		}
	}
	if _, ok := LookupCode(0x0E, GCV3); ok {
		t.Error("LookupCode(000E, GC_V3): got ok")
	}
}

func TestOpcodeFlags(t *testing.T) {
	msgV2, _ := LookupName("message", DCV2)
	msgV3, _ := LookupName("message", GCV3)
	if msgV2.UsesArgStack(DCV2) {
		t.Error("message uses the argument stack on DC_V2")
	}
	if !msgV3.UsesArgStack(GCV3) {
		t.Error("message does not use the argument stack on GC_V3")
	}
	for _, name := range []string{"ret", "jmp", "switch_jmp"} {
		d, _ := LookupName(name, GCV3)
		if !d.IsReturn() {
			t.Errorf("%s is not a return", name)
		}
	}
	if d, _ := LookupName("call", GCV3); d.IsReturn() {
		t.Error("call is a return")
	}
	if d, _ := LookupName("set_episode", GCV3); d.Flags&FlagEpisode == 0 {
		t.Error("set_episode is not marked as declaring the episode")
	}
	if d, _ := LookupName("set_episode", GCV3); d.OpcodeSize() != 2 {
		t.Errorf("set_episode opcode size: got %d, want 2", d.OpcodeSize())
	}
}

func TestOpcodesSorted(t *testing.T) {
	ops := Opcodes(BBV4)
	for i := 1; i < len(ops); i++ {
		if ops[i-1].Code >= ops[i].Code {
			t.Fatalf("Opcodes(BB_V4)[%d]: %s after %s", i, ops[i], ops[i-1])
		}
	}
	ops[0] = nil
	if Opcodes(BBV4)[0] == nil {
		t.Error("Opcodes returned the shared slice")
	}
	if n := len(Opcodes(PCPatch)); n != 0 {
		t.Errorf("Opcodes(PC_PATCH): got %d, want 0", n)
	}
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		r    Role
		want string
	}{
		{0, "none"},
		{RoleCode, "code"},
		{RoleCode | RoleData, "code|data"},
		{RoleString | RoleImage, "string|image"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Role(%d).String(): got %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestFunctionTable(t *testing.T) {
	offsets := []uint32{0, 0x10, Unassigned, 0x1234}
	b := EncodeFunctionTable(offsets)
	if len(b) != 16 {
		t.Fatalf("encoded size: got %d, want 16", len(b))
	}
	got, err := DecodeFunctionTable(b)
	if err != nil {
		t.Fatalf("DecodeFunctionTable: %v", err)
	}
	for i := range offsets {
		if got[i] != offsets[i] {
			t.Errorf("offset %d: got 0x%X, want 0x%X", i, got[i], offsets[i])
		}
	}
	if _, err := DecodeFunctionTable(b[:7]); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("partial entry: got %v, want ErrShortBuffer", err)
	}
}
