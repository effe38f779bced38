package qscript

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/fuzziqersoftware/newserv-sub000/tools/questasm/prs"
)

func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no golden files")
	}
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			parts := map[string]string{}
			for _, f := range ar.Files {
				parts[f.Name] = string(f.Data)
			}

			bin, err := Assemble(parts["input.asm"])
			if err != nil {
				t.Fatalf("Assemble(input.asm): %v", err)
			}
			v, err := ParseVersion(strings.Fields(parts["want.txt"])[1])
			if err != nil {
				t.Fatal(err)
			}
			got, err := Disassemble(bin, v, nil)
			if err != nil {
				t.Fatalf("Disassemble: %v", err)
			}
			if got != parts["want.txt"] {
				t.Errorf("disassembly mismatch\ngot:\n%s\nwant:\n%s", got, parts["want.txt"])
			}

			again, err := Assemble(got)
			if err != nil {
				t.Fatalf("Assemble(disassembly): %v", err)
			}
			if !bytes.Equal(again, bin) {
				t.Errorf("reassembled script differs\ngot:  % X\nwant: % X", again, bin)
			}
		})
	}
}

func TestThreadExitScenario(t *testing.T) {
	code := []byte{
		0x04, 0x01, 0x00, // thread label0001
		0x03, 0x00, 0x00, 0x00, 0x00, // exit 0
		0x01,             // ret
		0x00, 0x00, 0x00, // padding
	}
	for _, v := range []Version{DCNTE, DCV1, DCV2, PCV2, GCV3, XBV3, BBV4} {
		t.Run(v.String(), func(t *testing.T) {
			data := buildScript(t, v, nil, code, []uint32{0, 3})
			text, err := Disassemble(data, v, nil)
			if err != nil {
				t.Fatalf("Disassemble: %v", err)
			}
			for _, want := range []string{
				"\nstart:\n  thread label0001 /* 0003 */\n",
				"\nlabel0001@1:\n  // Referenced by instruction at 0000\n  exit 0x0\n  ret\n",
			} {
				if !strings.Contains(text, want) {
					t.Errorf("output lacks %q:\n%s", want, text)
				}
			}

			got, err := Assemble(text)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("round trip\ngot:  % X\nwant: % X", got, data)
			}
			h, err := DecodeHeader(got, v)
			if err != nil {
				t.Fatal(err)
			}
			_, ft, err := splitSegments(got, h)
			if err != nil {
				t.Fatal(err)
			}
			if len(ft) != 2 {
				t.Errorf("function table length: got %d, want 2", len(ft))
			}
		})
	}
}

// assembleRoundTrip assembles src, disassembles the result and checks that
// reassembling the disassembly gives the same bytes.
func assembleRoundTrip(t *testing.T, src string) (string, []byte) {
	t.Helper()
	bin, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	v, err := ParseVersion(strings.Fields(src)[1])
	if err != nil {
		t.Fatal(err)
	}
	text, err := Disassemble(bin, v, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	again, err := Assemble(text)
	if err != nil {
		t.Fatalf("Assemble(disassembly): %v\n%s", err, text)
	}
	if !bytes.Equal(again, bin) {
		t.Errorf("round trip\ngot:  % X\nwant: % X\n%s", again, bin, text)
	}
	return text, bin
}

// TestBinaryRoundTrip disassembles hand-built scripts and checks that the
// output reassembles to the same bytes, function table and header included.
func TestBinaryRoundTrip(t *testing.T) {
	ret := []byte{0x01, 0, 0, 0}
	name := Text{Str: "t"}
	tests := []struct {
		name    string
		v       Version
		h       Header
		code    []byte
		offsets []uint32
		want    []string
	}{
		{"trailing unassigned slot", GCV3, Header{Name: name}, ret,
			[]uint32{0, Unassigned}, []string{".function_table_size 2"}},
		{"several trailing slots", BBV4, Header{Name: name}, ret,
			[]uint32{0, Unassigned, Unassigned, Unassigned}, []string{".function_table_size 4"}},
		{"offset past the code", GCV3, Header{Name: name}, ret,
			[]uint32{0, 0x1234, Unassigned, 0}, []string{".label label0001@1 0x1234"}},
		{"start outside the code", DCV2, Header{Name: name}, ret,
			[]uint32{Unassigned, 0}, []string{".label start 0xFFFFFFFF", "label0001@1:"}},
		{"empty function table", GCV3, Header{Name: name}, ret,
			nil, []string{".function_table_size 0", ".data 01"}},
		{"dc reserved bytes", DCV1, Header{Name: name, Language: 1, Unused: 0xDEADBEEF, Unknown1: 5}, ret,
			[]uint32{0}, []string{".header_unused 0xDEADBEEF", ".header_unknown1 0x5"}},
		{"gc reserved byte", GCV3, Header{Name: name, Unknown1: 0x80}, ret,
			[]uint32{0}, []string{".header_unknown1 0x80"}},
		{"bb reserved bytes", BBV4, Header{Name: name, Joinable: 2, Unused2: 0x8001, Unknown2: 1}, ret,
			[]uint32{0}, []string{".joinable 2", ".header_unused2 0x8001", ".header_unknown2 0x1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := buildScript(t, tt.v, &tt.h, tt.code, tt.offsets)
			text, err := Disassemble(bin, tt.v, nil)
			if err != nil {
				t.Fatalf("Disassemble: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("missing %q in\n%s", w, text)
				}
			}
			again, err := Assemble(text)
			if err != nil {
				t.Fatalf("Assemble(disassembly): %v\n%s", err, text)
			}
			if !bytes.Equal(again, bin) {
				t.Errorf("round trip\ngot:  % X\nwant: % X\n%s", again, bin, text)
			}
		})
	}
}

func TestUnassignedLabelReference(t *testing.T) {
	text, _ := assembleRoundTrip(t, `
.version DC_V1
.label later@1 0xFFFFFFFF
start:
  thread later
  ret
`)
	for _, want := range []string{
		".label label0001@1 0xFFFFFFFF",
		"thread label0001 /* unassigned */",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in\n%s", want, text)
		}
	}
}

const statsData = `
  .data 01 00 02 00 03 00 04 00 05 00 06 00 07 00 08 00
  .data 00 00 C0 3F 00 00 00 00 0A 00 00 00 E8 03 00 00
  .data 64 00 00 00
`

func TestRoundTripVersions(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"dc_v1", `
.version DC_V1
.quest_num 12
.language 1
.name "Forest"
.short_desc "Short"
.long_desc "Long"
start:
  leti r1, 100
  message 0x1, "Caf\u00e9"
  jmpi_eq r1, -1, done
  switch_call r1, (sub, done)
  ret
sub:
  ret
done:
  exit 0x1
  ret
`},
		{"pc_v2", `
.version PC_V2
.quest_num 0x1234
.language 1
.name "名前"
start:
  message 0x1, "ようこそ"
  get_physical_data stats
  ret
stats:` + statsData},
		{"gc_v3", `
.version GC_V3
.quest_num 58
.language 1
.episode Episode2
.name "Test quest"
.short_desc "Short"
.long_desc "Long description"
start:
  set_episode 1
  leti r10, 0x1234
  message 0x10, "Hello"
  thread worker
  get_physical_data stats
  switch_jmp r10, (worker, done)
worker:
  jmpi_eq r10, 5, done
  ret
done:
  ret
stats:` + statsData},
		{"bb_v4", `
.version BB_V4
.quest_num 7
.episode Episode2
.max_players 2
.name "BB"
start:
  message r3, "\u3042"
  leto r4, helper
  ret
helper@9:
  ret
  .data "xyz"
  .zero 3
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assembleRoundTrip(t, tt.src)
		})
	}
}

func TestRecordRendering(t *testing.T) {
	text, _ := assembleRoundTrip(t, `
.version GC_V3
.language 1
.name "records"
start:
  get_physical_data stats
  get_resist_data short
  ret
stats:`+statsData+`
short:
  .data 01 00 00 00
`)
	for _, want := range []string{
		"// As PlayerStats",
		"//   atp          0001 /* 1 */",
		"//   height       3FC00000 /* 1.5 */",
		"//   meseta       00000064 /* 100 */",
		"// As raw data (0x7 bytes; too small for referenced type)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestVisualConfigRendering(t *testing.T) {
	rec := make([]byte, 0x50)
	copy(rec, "Ash")
	rec[0x30] = 2 // section ID
	rec[0x31] = 6 // class
	lines := renderRecord(nil, &records[0], append(rec, 0xAA), 0x100)
	text := strings.Join(lines, "\n")
	for _, want := range []string{
		"// As PlayerVisualConfig",
		`//   name         "Ash"`,
		"//   section_id   02 (Skyly)",
		"//   char_class   06 (FOmarl)",
		"// Extra data after structure",
		"// 0150 | AA",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestStackMismatch(t *testing.T) {
	code := []byte{
		0x4A, 0x05, // arg_pushb 5
		0x50,       // message, one argument short
		0x01,       // ret
	}
	var logBuf bytes.Buffer
	opts := &DisassembleOptions{Logger: log.New(&logBuf, "", 0)}
	data := buildScript(t, GCV3, nil, code, []uint32{0})
	text, err := Disassemble(data, GCV3, opts)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	want := "  message ... /* matching error: expected 2 arguments, received 1 arguments */\n"
	if !strings.Contains(text, want) {
		t.Errorf("output lacks %q:\n%s", want, text)
	}
	if !strings.Contains(logBuf.String(), "WARNING: 0002: message expects 2 arguments, received 1") {
		t.Errorf("log: got %q", logBuf.String())
	}
	got, err := Assemble(text)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip\ngot:  % X\nwant: % X", got, data)
	}
}

func TestUnknownOpcode(t *testing.T) {
	code := []byte{
		0x4A, 0x05, // arg_pushb 5
		0x0E,       // not an opcode; clears the stack
		0x4E, 'a', 0x00, // arg_pushs "a"
		0x4A, 0x07, // arg_pushb 7
		0x50, // message
		0x01, // ret
		0x00, 0x00,
	}
	data := buildScript(t, GCV3, nil, code, []uint32{0})
	s, err := Analyze(data, GCV3, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	msg := s.Insts[8]
	if msg == nil || msg.Def == nil || msg.Def.Name != "message" {
		t.Fatalf("instruction at 0008: got %+v", msg)
	}
	if msg.StackMismatch {
		t.Errorf("message: stack mismatch, received %d", msg.StackReceived)
	}
	if len(msg.Stack) != 2 || msg.Stack[0].Kind != StackString || msg.Stack[1].Value != 7 {
		t.Errorf("message stack: got %+v", msg.Stack)
	}

	text, err := Disassemble(data, GCV3, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if want := "  .data 0E /* unknown opcode 000E */\n"; !strings.Contains(text, want) {
		t.Errorf("output lacks %q:\n%s", want, text)
	}
	got, err := Assemble(text)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip\ngot:  % X\nwant: % X", got, data)
	}
}

func TestTruncatedInstruction(t *testing.T) {
	code := []byte{0x01, 0x09, 0x02, 0x03} // ret; leti missing bytes
	data := buildScript(t, DCV2, nil, code, []uint32{0, 1})
	text, err := Disassemble(data, DCV2, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if !strings.Contains(text, "/* failed: ") {
		t.Errorf("output lacks failure comment:\n%s", text)
	}
	got, err := Assemble(text)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip\ngot:  % X\nwant: % X", got, data)
	}
}

func TestUnreferencedLabel(t *testing.T) {
	code := []byte{0x01, 0x02, 0x01, 0x00} // ret; sync; ret
	data := buildScript(t, GCV3, nil, code, []uint32{0, 1})
	s, err := Analyze(data, GCV3, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	l := s.Labels[1]
	if l.Roles != RoleCode|RoleData || !l.Guessed {
		t.Errorf("label0001: got roles %s guessed %v, want code|data guessed", l.Roles, l.Guessed)
	}
	if len(s.Diagnostics) != 1 || s.Diagnostics[0] != "label0001: could not determine data type" {
		t.Errorf("diagnostics: got %q", s.Diagnostics)
	}

	text, err := Disassemble(data, GCV3, nil)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	want := "label0001@1:\n  // Could not determine data type; disassembling as code and raw data\n" +
		"  // As raw data (0x3 bytes)\n  // 0001 | 02 01 00                                        | ...\n" +
		"  sync\n  ret\n"
	if !strings.Contains(text, want) {
		t.Errorf("output lacks %q:\n%s", want, text)
	}
}

func TestRoleInferenceDeterministic(t *testing.T) {
	bin, err := Assemble(`
.version GC_V3
.language 1
.name "roles"
start:
  get_physical_data both
  thread both
  npc_action_string r1, r2, text
  call_image_data 0, image
  ret
both:
  ret
  .zero 0x23
text:
  .data "\x01abc"
  .zero 1
image:
  .zero 4
`)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	snapshot := func() string {
		s, err := Analyze(bin, GCV3, nil)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		var b strings.Builder
		for _, l := range s.Labels {
			fmt.Fprintf(&b, "%s %s %v\n", l.Name(), l.Roles, l.References)
		}
		return b.String()
	}
	first := snapshot()
	for i := 0; i < 5; i++ {
		if got := snapshot(); got != first {
			t.Fatalf("run %d:\n%s\nwant:\n%s", i, got, first)
		}
	}

	s, _ := Analyze(bin, GCV3, nil)
	wantRoles := []Role{RoleCode, RoleCode | RolePlayerStats, RoleString, RoleImage}
	for i, want := range wantRoles {
		if got := s.Labels[i].Roles; got != want {
			t.Errorf("%s roles: got %s, want %s", s.Labels[i].Name(), got, want)
		}
	}
	if got := s.Labels[1].References; !reflect.DeepEqual(got, []int{0, 4}) {
		t.Errorf("label0001 references: got %v, want [0 4]", got)
	}
}

func TestShowOffsets(t *testing.T) {
	code := []byte{0x03, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00}
	data := buildScript(t, DCV1, nil, code, []uint32{0})
	text, err := Disassemble(data, DCV1, &DisassembleOptions{ShowOffsets: true})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	for _, want := range []string{
		"  /* 0000 0301000000      */ exit 0x1\n",
		"  /* 0005 01              */ ret\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
	got, err := Assemble(text)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip\ngot:  % X\nwant: % X", got, data)
	}
}

func TestLanguageOverride(t *testing.T) {
	h := &Header{Language: 1, Name: Text{Raw: []byte{0x83, 0x65}}}
	data := buildScript(t, GCV3, h, []byte{0x01, 0, 0, 0}, []uint32{0})
	text, err := Disassemble(data, GCV3, &DisassembleOptions{OverrideLanguage: true, Language: 0})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if !strings.Contains(text, ".language 1\n") || !strings.Contains(text, `.name "テ"`) {
		t.Errorf("unexpected header:\n%s", text)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		bits uint32
		want string
	}{
		{0x3FC00000, "1.5"},
		{0x3F800000, "1.0"},
		{0x00000000, "0.0"},
		{0x80000000, "-0.0"},
		{0x3DCCCCCD, "0.1"},
		{0x60AD78EC, "1e+20"},
		{0x7FC00000, "0x7FC00000"},
		{0xFF800000, "0xFF800000"},
	}
	for _, tt := range tests {
		got := formatFloat(tt.bits)
		if got != tt.want {
			t.Errorf("formatFloat(0x%08X): got %s, want %s", tt.bits, got, tt.want)
		}
		back, err := parseFloat(got)
		if err != nil || back != tt.bits {
			t.Errorf("parseFloat(%s): got 0x%08X, %v", got, back, err)
		}
	}
}

func TestImageRendering(t *testing.T) {
	payload := []byte("abcabcabcabc")
	region := append(prs.Compress(payload), 0xEE, 0xFF)
	text := strings.Join(renderImage(nil, region, 0x40), "\n")
	for _, want := range []string{
		"// As decompressed image data (0xC bytes)",
		"// 0000 | 61 62 63 61 62 63 61 62 63 61 62 63",
		"// Extra data after compressed data",
		"EE FF",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}

	text = strings.Join(renderImage(nil, []byte{0x00, 0x00}, 0), "\n")
	if !strings.Contains(text, "// Could not decompress image data") {
		t.Errorf("bad image: got %q", text)
	}
}

func TestF8F2Rendering(t *testing.T) {
	region := []byte{
		0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0x40,
		0x00, 0x00, 0x40, 0x40, 0x00, 0x00, 0x80, 0x40,
		0x01, 0x02,
	}
	text := strings.Join(renderF8F2(nil, region, 0), "\n")
	for _, want := range []string{
		"// As F8F2 entries",
		"//   entry        1.0, 2.0, 3.0, 4.0",
		"// Extra data after structures",
		"// 0010 | 01 02",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
}
