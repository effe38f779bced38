package qscript

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMissingVersion is returned for source without a .version directive.
	ErrMissingVersion = errors.New("missing .version directive")
	// ErrUndefinedLabel is returned for references to undeclared labels.
	ErrUndefinedLabel = errors.New("undefined label")
	// ErrDuplicateLabel is returned when a label name or index is declared twice.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrArgCount is returned when an instruction has the wrong number of arguments.
	ErrArgCount = errors.New("wrong argument count")
)

// AssembleError is an assembly failure at a source line.
type AssembleError struct {
	Line int // 1-based
	Err  error
}

func (e *AssembleError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *AssembleError) Unwrap() error { return e.Err }

func encodeU8(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v))
}

func encodeU16(buf *bytes.Buffer, v uint32) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	buf.Write(b[:])
}

func encodeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// encodeOpcode writes a one-byte opcode, or prefix and low byte for
// extended opcodes.
func encodeOpcode(buf *bytes.Buffer, code uint16) {
	if code > 0xFF {
		buf.WriteByte(byte(code >> 8))
	}
	buf.WriteByte(byte(code))
}

// maxLabelIndex is the largest index a 16-bit label reference can hold.
const maxLabelIndex = 0xFFFF

type srcLine struct {
	num  int
	text string
}

type asmLabel struct {
	name   string
	index  int // -1 until assigned
	line   int
	offset int // -1 until reached

	// outside labels come from .label and hold raw instead of a code offset.
	outside bool
	raw     uint32
}

type assembler struct {
	lines []srcLine

	v       Version
	h       Header
	enc     Encoding
	texts   []textDirective
	verLine int

	labels map[string]*asmLabel
	order  []*asmLabel

	tableSize     int // -1 unless .function_table_size was given
	tableSizeLine int

	code bytes.Buffer
}

type textDirective struct {
	line int
	dst  *Text
	t    Text
}

// Assemble builds a script from assembler source. It never returns a
// partial buffer; every error is an *AssembleError.
func Assemble(src string) ([]byte, error) {
	a := &assembler{labels: make(map[string]*asmLabel), tableSize: -1}
	for i, text := range stripComments(src) {
		if text = strings.TrimSpace(text); text != "" {
			a.lines = append(a.lines, srcLine{num: i + 1, text: text})
		}
	}
	if err := a.directives(); err != nil {
		return nil, err
	}
	if err := a.declareLabels(); err != nil {
		return nil, err
	}
	if err := a.generate(); err != nil {
		return nil, err
	}
	return a.link()
}

func lineErr(line int, format string, args ...any) error {
	return &AssembleError{Line: line, Err: fmt.Errorf(format, args...)}
}

// directiveName splits a line into its lowercased first word and the rest.
func directiveName(text string) (name, rest string) {
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		return strings.ToLower(text[:i]), strings.TrimSpace(text[i+1:])
	}
	return strings.ToLower(text), ""
}

// directives reads the version and header metadata.
func (a *assembler) directives() error {
	for _, l := range a.lines {
		name, rest := directiveName(l.text)
		if name != ".version" {
			continue
		}
		if a.verLine != 0 {
			return lineErr(l.num, ".version already given on line %d", a.verLine)
		}
		v, err := ParseVersion(rest)
		if err != nil {
			return &AssembleError{Line: l.num, Err: err}
		}
		if err := checkVersion(v); err != nil {
			return &AssembleError{Line: l.num, Err: err}
		}
		a.v, a.verLine = v, l.num
	}
	if a.verLine == 0 {
		line := 1
		if len(a.lines) > 0 {
			line = a.lines[0].num
		}
		return &AssembleError{Line: line, Err: ErrMissingVersion}
	}

	g := &layouts[LayoutFor(a.v)]
	for _, l := range a.lines {
		name, rest := directiveName(l.text)
		var ok bool
		var err error
		switch name {
		case ".quest_num":
			ok = g.questNumberWidth > 0
			var n uint32
			if n, err = parseInt(rest, 8*g.questNumberWidth); err == nil {
				a.h.QuestNumber = uint16(n)
			}
		case ".language":
			ok = g.hasLanguage
			var n uint32
			if n, err = parseInt(rest, 8); err == nil {
				a.h.Language = uint8(n)
			}
		case ".episode":
			ok = g.hasEpisode
			a.h.Episode, err = parseHeaderEpisode(a.v, rest)
		case ".max_players":
			ok = g.hasJoinFlags
			var n uint32
			if n, err = parseInt(rest, 8); err == nil {
				a.h.MaxPlayers = uint8(n)
			}
		case ".joinable":
			ok = g.hasJoinFlags
			a.h.Joinable = 1
			if rest != "" {
				var n uint32
				if n, err = parseInt(rest, 8); err == nil {
					a.h.Joinable = uint8(n)
				}
			}
		case ".header_unused":
			ok = true
			a.h.Unused, err = parseInt(rest, 32)
		case ".header_unknown1":
			ok = g.hasUnknown1
			var n uint32
			if n, err = parseInt(rest, 8); err == nil {
				a.h.Unknown1 = uint8(n)
			}
		case ".header_unused2":
			ok = g.hasBBReserved
			var n uint32
			if n, err = parseInt(rest, 16); err == nil {
				a.h.Unused2 = uint16(n)
			}
		case ".header_unknown2":
			ok = g.hasBBReserved
			var n uint32
			if n, err = parseInt(rest, 8); err == nil {
				a.h.Unknown2 = uint8(n)
			}
		case ".function_table_size":
			ok = true
			if a.tableSizeLine != 0 {
				err = fmt.Errorf("already given on line %d", a.tableSizeLine)
				break
			}
			var n uint32
			if n, err = parseInt(rest, 32); err == nil && n > maxLabelIndex+1 {
				err = fmt.Errorf("%d entries is more than %d", n, maxLabelIndex+1)
			}
			a.tableSize, a.tableSizeLine = int(n), l.num
		case ".name":
			ok = true
			err = a.text(l.num, &a.h.Name, rest)
		case ".short_desc":
			ok = g.hasDescs
			err = a.text(l.num, &a.h.ShortDesc, rest)
		case ".long_desc":
			ok = g.hasDescs
			err = a.text(l.num, &a.h.LongDesc, rest)
		default:
			continue
		}
		if !ok {
			return lineErr(l.num, "%s is not stored in %s headers", name, LayoutFor(a.v))
		}
		if err != nil {
			return lineErr(l.num, "%s: %w", name, err)
		}
	}

	// The language may follow the text directives, so check them last.
	a.enc = TextEncoding(a.v, a.h.Language)
	for _, td := range a.texts {
		if _, err := a.enc.EncodeText(td.t); err != nil {
			return lineErr(td.line, "text: %w", err)
		}
		*td.dst = td.t
	}
	return nil
}

func (a *assembler) text(line int, dst *Text, s string) error {
	t, err := ParseText(s)
	if err != nil {
		return err
	}
	a.texts = append(a.texts, textDirective{line: line, dst: dst, t: t})
	return nil
}

// parseHeaderEpisode accepts an episode name or a raw header byte.
func parseHeaderEpisode(v Version, s string) (uint8, error) {
	if isIntLiteral(s) {
		n, err := parseInt(s, 8)
		return uint8(n), err
	}
	ep, err := ParseEpisode(s)
	if err != nil {
		return 0, err
	}
	b, ok := headerEpisodeByte(v, ep)
	if !ok {
		return 0, fmt.Errorf("%s cannot be declared on %s", ep, v)
	}
	return b, nil
}

// declareLabels collects label declarations and assigns their indexes.
func (a *assembler) declareLabels() error {
	used := map[int]*asmLabel{}
	for _, l := range a.lines {
		lbl, err := a.declaration(l)
		if err != nil {
			return err
		}
		if lbl == nil {
			continue
		}
		if prev, ok := a.labels[lbl.name]; ok {
			return &AssembleError{Line: l.num, Err: fmt.Errorf("%w: %s (first declared on line %d)", ErrDuplicateLabel, lbl.name, prev.line)}
		}
		if lbl.index >= 0 {
			if prev, ok := used[lbl.index]; ok {
				return &AssembleError{Line: l.num, Err: fmt.Errorf("%w: index %d already used by %s", ErrDuplicateLabel, lbl.index, prev.name)}
			}
			used[lbl.index] = lbl
		}
		a.labels[lbl.name] = lbl
		a.order = append(a.order, lbl)
	}
	if _, ok := a.labels["start"]; !ok && a.tableSize != 0 {
		return &AssembleError{Line: a.verLine, Err: fmt.Errorf("%w: start", ErrUndefinedLabel)}
	}

	next := 0
	for _, lbl := range a.order {
		if lbl.index >= 0 {
			continue
		}
		for used[next] != nil {
			next++
		}
		lbl.index = next
		used[next] = lbl
	}
	return nil
}

// declaration parses a label declaration, either "name[@N]:" or
// ".label name[@N] offset". It returns nil for any other line.
func (a *assembler) declaration(l srcLine) (*asmLabel, error) {
	var name, index string
	lbl := &asmLabel{index: -1, line: l.num, offset: -1}
	if m := labelDeclRE.FindStringSubmatch(l.text); m != nil {
		name, index = m[1], m[2]
	} else if m := outsideLabelRE.FindStringSubmatch(l.text); m != nil {
		name, index = m[1], m[2]
		raw, err := parseInt(m[3], 32)
		if err != nil {
			return nil, lineErr(l.num, ".label: %w", err)
		}
		lbl.outside, lbl.raw = true, raw
	} else {
		if n, _ := directiveName(l.text); n == ".label" {
			return nil, lineErr(l.num, ".label: expected name and offset")
		}
		return nil, nil
	}

	if !isLabelName(name) {
		return nil, lineErr(l.num, "invalid label name %q", name)
	}
	lbl.name = name
	if name == "start" {
		lbl.index = 0
	}
	if index != "" {
		n, err := strconv.ParseUint(index, 10, 32)
		if err != nil || n > maxLabelIndex {
			return nil, lineErr(l.num, "invalid label index %s", index)
		}
		if lbl.index == 0 && n != 0 {
			return nil, lineErr(l.num, "start must have index 0")
		}
		lbl.index = int(n)
	}
	return lbl, nil
}

// generate emits code and records label offsets.
func (a *assembler) generate() error {
	for _, l := range a.lines {
		if m := labelDeclRE.FindStringSubmatch(l.text); m != nil {
			a.labels[m[1]].offset = a.code.Len()
			continue
		}
		var err error
		if strings.HasPrefix(l.text, ".") {
			err = a.dataDirective(l.text)
		} else {
			err = a.instruction(l.text)
		}
		if err != nil {
			var ae *AssembleError
			if errors.As(err, &ae) {
				return err
			}
			return &AssembleError{Line: l.num, Err: err}
		}
	}
	return nil
}

func (a *assembler) dataDirective(text string) error {
	name, rest := directiveName(text)
	switch name {
	case ".data":
		if strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, `x"`) {
			t, err := ParseText(rest)
			if err != nil {
				return err
			}
			b, err := a.enc.EncodeText(t)
			if err != nil {
				return err
			}
			a.code.Write(b)
			return nil
		}
		b, err := hex.DecodeString(strings.Join(strings.Fields(rest), ""))
		if err != nil {
			return fmt.Errorf(".data: invalid hex: %w", err)
		}
		a.code.Write(b)
	case ".zero":
		n, err := parseInt(rest, 24)
		if err != nil {
			return fmt.Errorf(".zero: %w", err)
		}
		a.code.Write(make([]byte, n))
	case ".version", ".quest_num", ".language", ".episode", ".max_players",
		".joinable", ".name", ".short_desc", ".long_desc", ".header_unused",
		".header_unknown1", ".header_unused2", ".header_unknown2",
		".function_table_size", ".label":
	default:
		return fmt.Errorf("unknown directive %s", name)
	}
	return nil
}

func (a *assembler) instruction(text string) error {
	mnemonic, rest := directiveName(text)
	def, ok := LookupName(mnemonic, a.v)
	if !ok {
		return fmt.Errorf("unknown instruction %s on %s", mnemonic, a.v)
	}
	stack := def.UsesArgStack(a.v)
	if rest == "..." {
		if !stack && len(def.Args) > 0 {
			return fmt.Errorf("%w: %s does not take pushed arguments on %s", ErrArgCount, def.Name, a.v)
		}
		encodeOpcode(&a.code, def.Code)
		return nil
	}
	toks, err := splitArgs(rest)
	if err != nil {
		return err
	}
	if len(toks) != len(def.Args) {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgCount, def.Name, len(def.Args), len(toks))
	}
	if stack {
		for i, arg := range def.Args {
			if err := a.push(arg, toks[i]); err != nil {
				return fmt.Errorf("%s argument %d: %w", def.Name, i+1, err)
			}
		}
		encodeOpcode(&a.code, def.Code)
		return nil
	}
	var buf bytes.Buffer
	encodeOpcode(&buf, def.Code)
	for i, arg := range def.Args {
		if err := a.encodeArg(&buf, arg, toks[i]); err != nil {
			return fmt.Errorf("%s argument %d: %w", def.Name, i+1, err)
		}
	}
	a.code.Write(buf.Bytes())
	return nil
}

func (a *assembler) labelIndex(name string) (uint32, error) {
	lbl, ok := a.labels[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedLabel, name)
	}
	return uint32(lbl.index), nil
}

func (a *assembler) encodeArg(buf *bytes.Buffer, arg Arg, tok string) error {
	switch arg.Kind {
	case Label16, Label32:
		idx, err := a.labelIndex(tok)
		if err != nil {
			return err
		}
		if arg.Kind == Label32 {
			encodeU32(buf, idx)
		} else if idx > 0xFFFF {
			return fmt.Errorf("label %s index %d does not fit in 16 bits", tok, idx)
		} else {
			encodeU16(buf, idx)
		}
	case Label16Set:
		items, err := splitSet(tok)
		if err != nil {
			return err
		}
		if len(items) > 0xFF {
			return fmt.Errorf("too many labels in %s", tok)
		}
		encodeU8(buf, uint32(len(items)))
		for _, it := range items {
			idx, err := a.labelIndex(it)
			if err != nil {
				return err
			}
			if idx > 0xFFFF {
				return fmt.Errorf("label %s index %d does not fit in 16 bits", it, idx)
			}
			encodeU16(buf, idx)
		}
	case Reg, Reg32:
		n, ok := parseReg(tok)
		if !ok || (arg.Kind == Reg && n > 0xFF) {
			return fmt.Errorf("invalid register %q", tok)
		}
		if arg.Kind == Reg32 {
			encodeU32(buf, n)
		} else {
			encodeU8(buf, n)
		}
	case RegSet:
		items, err := splitSet(tok)
		if err != nil {
			return err
		}
		if len(items) > 0xFF {
			return fmt.Errorf("too many registers in %s", tok)
		}
		encodeU8(buf, uint32(len(items)))
		for _, it := range items {
			n, ok := parseReg(it)
			if !ok || n > 0xFF {
				return fmt.Errorf("invalid register %q", it)
			}
			encodeU8(buf, n)
		}
	case RegSetFixed, Reg32SetFixed:
		first, err := parseFixedRun(tok, arg.Count)
		if err != nil {
			return err
		}
		if arg.Kind == Reg32SetFixed {
			encodeU32(buf, first)
		} else if first > 0xFF {
			return fmt.Errorf("invalid register %q", tok)
		} else {
			encodeU8(buf, first)
		}
	case Int8:
		n, err := parseInt(tok, 8)
		if err != nil {
			return err
		}
		encodeU8(buf, n)
	case Int16:
		n, err := parseInt(tok, 16)
		if err != nil {
			return err
		}
		encodeU16(buf, n)
	case Int32:
		n, err := parseInt(tok, 32)
		if err != nil {
			return err
		}
		encodeU32(buf, n)
	case Float32:
		n, err := parseFloat(tok)
		if err != nil {
			return err
		}
		encodeU32(buf, n)
	case CString:
		return a.encodeString(buf, tok)
	default:
		return fmt.Errorf("invalid argument kind %s", arg.Kind)
	}
	return nil
}

// parseFixedRun accepts "rA-rB" spanning exactly count registers, or
// just the first register "rA".
func parseFixedRun(tok string, count int) (uint32, error) {
	if n, ok := parseReg(tok); ok {
		return n, nil
	}
	first, n, ok := parseRegRange(tok)
	if !ok {
		return 0, fmt.Errorf("invalid register range %q", tok)
	}
	if n != count {
		return 0, fmt.Errorf("register range %s has %d registers, want %d", tok, n, count)
	}
	return first, nil
}

func (a *assembler) encodeString(buf *bytes.Buffer, tok string) error {
	t, err := ParseText(tok)
	if err != nil {
		return err
	}
	b, err := a.enc.EncodeText(t)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.Write(make([]byte, a.enc.UnitSize()))
	return nil
}

// push emits the push instruction that supplies tok as arg.
func (a *assembler) push(arg Arg, tok string) error {
	var buf bytes.Buffer
	regArg := func(code uint16, n uint32) error {
		if n > 0xFF {
			return fmt.Errorf("invalid register r%d", n)
		}
		encodeOpcode(&buf, code)
		encodeU8(&buf, n)
		return nil
	}
	labelAddr := func(name string) error {
		idx, err := a.labelIndex(name)
		if err != nil {
			return err
		}
		encodeOpcode(&buf, opArgPushO)
		encodeU16(&buf, idx)
		return nil
	}

	var err error
	switch {
	case arg.Kind == CString:
		encodeOpcode(&buf, opArgPushS)
		err = a.encodeString(&buf, tok)

	case arg.Kind.IsRegister():
		if m := regIndRE.FindStringSubmatch(tok); m != nil {
			n, _ := strconv.ParseUint(m[1], 10, 32)
			err = regArg(opArgPushR, uint32(n))
		} else if arg.Count > 0 {
			var first uint32
			if first, err = parseFixedRun(tok, arg.Count); err == nil {
				err = regArg(opArgPushB, first)
			}
		} else if n, ok := parseReg(tok); ok {
			err = regArg(opArgPushB, n)
		} else {
			err = fmt.Errorf("invalid register %q", tok)
		}

	case arg.Kind == Float32:
		if n, ok := parseReg(tok); ok {
			err = regArg(opArgPushR, n)
		} else {
			var bits uint32
			if bits, err = parseFloat(tok); err == nil {
				encodeOpcode(&buf, opArgPushL)
				encodeU32(&buf, bits)
			}
		}

	default:
		if n, ok := parseReg(tok); ok {
			err = regArg(opArgPushR, n)
		} else if strings.HasPrefix(tok, "&") {
			target := tok[1:]
			if n, ok := parseReg(target); ok && !arg.Kind.IsLabel() {
				err = regArg(opArgPushA, n)
			} else if isLabelName(target) {
				err = labelAddr(target)
			} else {
				err = fmt.Errorf("invalid address %q", tok)
			}
		} else if isIntLiteral(tok) {
			var n uint32
			if n, err = parseInt(tok, 32); err == nil {
				pushNarrowed(&buf, n)
			}
		} else if isLabelName(tok) {
			var idx uint32
			if idx, err = a.labelIndex(tok); err == nil {
				pushNarrowed(&buf, idx)
			}
		} else {
			err = fmt.Errorf("invalid argument %q", tok)
		}
	}
	if err != nil {
		return err
	}
	a.code.Write(buf.Bytes())
	return nil
}

// pushNarrowed pushes n with the smallest immediate push that holds it.
func pushNarrowed(buf *bytes.Buffer, n uint32) {
	switch {
	case n <= 0xFF:
		encodeOpcode(buf, opArgPushB)
		encodeU8(buf, n)
	case n <= 0xFFFF:
		encodeOpcode(buf, opArgPushW)
		encodeU16(buf, n)
	default:
		encodeOpcode(buf, opArgPushL)
		encodeU32(buf, n)
	}
}

// link pads the code, builds the function table and prepends the header.
func (a *assembler) link() ([]byte, error) {
	for a.code.Len()%4 != 0 {
		a.code.WriteByte(0)
	}

	size := 0
	for _, lbl := range a.order {
		if lbl.index+1 > size {
			size = lbl.index + 1
		}
	}
	if a.tableSize >= 0 {
		if a.tableSize < size {
			return nil, lineErr(a.tableSizeLine, ".function_table_size: %d entries cannot hold label index %d", a.tableSize, size-1)
		}
		size = a.tableSize
	}
	offsets := make([]uint32, size)
	for i := range offsets {
		offsets[i] = Unassigned
	}
	for _, lbl := range a.order {
		if lbl.outside {
			offsets[lbl.index] = lbl.raw
		} else {
			offsets[lbl.index] = uint32(lbl.offset)
		}
	}
	ft := EncodeFunctionTable(offsets)

	hdr, err := a.h.Encode(a.v, a.code.Len(), len(ft))
	if err != nil {
		return nil, &AssembleError{Line: a.verLine, Err: fmt.Errorf("header: %w", err)}
	}
	out := make([]byte, 0, len(hdr)+a.code.Len()+len(ft))
	out = append(out, hdr...)
	out = append(out, a.code.Bytes()...)
	return append(out, ft...), nil
}
