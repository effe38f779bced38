package qscript

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Disassemble renders a script as assembler source. The output always
// reassembles; problems with individual instructions become comments and
// .data lines rather than errors.
func Disassemble(data []byte, v Version, opts *DisassembleOptions) (string, error) {
	if opts == nil {
		opts = &DisassembleOptions{}
	}
	s, err := Analyze(data, v, opts)
	if err != nil {
		return "", err
	}
	p := &printer{s: s, showOffsets: opts.ShowOffsets}
	return p.render(), nil
}

type printer struct {
	s           *Script
	showOffsets bool
	lines       []string
	trimFrom    int // trailing padding from here on is implied by the assembler
}

func (p *printer) emit(format string, args ...any) {
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
}

func (p *printer) render() string {
	s := p.s
	h := s.Header
	g := &layouts[LayoutFor(s.Version)]

	p.emit(".version %s", s.Version)
	if g.questNumberWidth > 0 {
		p.emit(".quest_num %d", h.QuestNumber)
	}
	if g.hasLanguage {
		p.emit(".language %d", h.Language)
	}
	if g.hasEpisode {
		if ep := EpisodeFromHeader(s.Version, h.Episode); episodeByteMatches(s.Version, ep, h.Episode) {
			p.emit(".episode %s", ep)
		} else {
			p.emit(".episode %d", h.Episode)
		}
	}
	if g.hasJoinFlags {
		p.emit(".max_players %d", h.MaxPlayers)
		switch h.Joinable {
		case 0:
		case 1:
			p.emit(".joinable")
		default:
			p.emit(".joinable %d", h.Joinable)
		}
	}
	if h.Unused != 0 {
		p.emit(".header_unused 0x%X", h.Unused)
	}
	if g.hasUnknown1 && h.Unknown1 != 0 {
		p.emit(".header_unknown1 0x%X", h.Unknown1)
	}
	if g.hasBBReserved {
		if h.Unused2 != 0 {
			p.emit(".header_unused2 0x%X", h.Unused2)
		}
		if h.Unknown2 != 0 {
			p.emit(".header_unknown2 0x%X", h.Unknown2)
		}
	}
	p.emit(".name %s", h.Name)
	if g.hasDescs {
		p.emit(".short_desc %s", h.ShortDesc)
		p.emit(".long_desc %s", h.LongDesc)
	}

	p.trimFrom = paddingStart(s.Code)

	// Group labels sharing an offset; they share one region.
	var placed []*Label
	for _, l := range s.Labels {
		if l.Offset <= uint32(len(s.Code)) {
			placed = append(placed, l)
		}
	}
	p.emitOutsideLabels(placed)
	slices.SortStableFunc(placed, func(a, b *Label) int {
		if a.Offset != b.Offset {
			if a.Offset < b.Offset {
				return -1
			}
			return 1
		}
		return a.Index - b.Index
	})

	// A label inside the padding pins it in place.
	if n := len(placed); n > 0 && int(placed[n-1].Offset) > p.trimFrom {
		p.trimFrom = len(s.Code)
	}

	first := len(s.Code)
	if len(placed) > 0 {
		first = int(placed[0].Offset)
	}
	if first > 0 {
		p.emitData(0, first)
	}

	for i := 0; i < len(placed); {
		j := i
		var roles Role
		for j < len(placed) && placed[j].Offset == placed[i].Offset {
			roles |= placed[j].Roles
			j++
		}
		start := int(placed[i].Offset)
		end := len(s.Code)
		if j < len(placed) {
			end = int(placed[j].Offset)
		}

		p.emit("")
		for _, l := range placed[i:j] {
			p.emitLabelHeader(l)
		}
		p.emitRoles(roles, start, end)
		if roles&RoleCode != 0 {
			p.emitCode(start, end)
		} else {
			p.emitData(start, end)
		}
		i = j
	}
	return strings.Join(p.lines, "\n") + "\n"
}

// emitOutsideLabels declares the function table slots that do not point
// into the code: start when it is one of them, any slot holding an offset
// other than Unassigned, and Unassigned slots that instructions refer to.
// The table length is given explicitly when trailing slots would otherwise
// be lost.
func (p *printer) emitOutsideLabels(placed []*Label) {
	last := -1
	for _, l := range placed {
		if l.Index > last {
			last = l.Index
		}
	}
	var decls []string
	for _, l := range p.s.Labels {
		if l.Offset <= uint32(len(p.s.Code)) {
			continue
		}
		if l.Index != 0 && l.Offset == Unassigned && len(l.References) == 0 {
			continue
		}
		if l.Index == 0 {
			decls = append(decls, fmt.Sprintf(".label start 0x%X", l.Offset))
		} else {
			decls = append(decls, fmt.Sprintf(".label %s@%d 0x%X", l.Name(), l.Index, l.Offset))
		}
		if l.Index > last {
			last = l.Index
		}
	}
	if n := len(p.s.Labels); n != last+1 || n == 0 {
		p.emit(".function_table_size %d", n)
	}
	p.lines = append(p.lines, decls...)
}

func episodeByteMatches(v Version, ep Episode, b uint8) bool {
	want, ok := headerEpisodeByte(v, ep)
	return ok && want == b
}

// paddingStart returns where the zero padding the assembler would add
// again begins, or len(code) if there is none to drop.
func paddingStart(code []byte) int {
	n := len(code)
	if n%4 != 0 {
		return n
	}
	t := n
	for t > 0 && n-t < 3 && code[t-1] == 0 {
		t--
	}
	return t
}

func (p *printer) emitLabelHeader(l *Label) {
	if l.Index == 0 {
		p.emit("start:")
	} else {
		p.emit("%s@%d:", l.Name(), l.Index)
	}
	refs := make([]string, len(l.References))
	for i, r := range l.References {
		refs[i] = fmt.Sprintf("%04X", r)
	}
	switch len(refs) {
	case 0:
	case 1:
		p.emit("  // Referenced by instruction at %s", refs[0])
	default:
		p.emit("  // Referenced by instructions at %s", strings.Join(refs, ", "))
	}
	if l.Guessed {
		p.emit("  // Could not determine data type; disassembling as code and raw data")
	}
}

// emitRoles writes one commented interpretation per data role.
func (p *printer) emitRoles(roles Role, start, end int) {
	region := p.s.Code[start:end]
	if roles&RoleData != 0 {
		p.emit("  // As raw data (0x%X bytes)", len(region))
		p.lines = appendHexComment(p.lines, region, start)
	}
	if roles&RoleString != 0 {
		p.lines = renderString(p.lines, region, p.s.Encoding)
	}
	for i := range records {
		if roles&records[i].role != 0 {
			p.lines = renderRecord(p.lines, &records[i], region, start)
		}
	}
	if roles&RoleImage != 0 {
		p.lines = renderImage(p.lines, region, start)
	}
	if roles&RoleF8F2 != 0 {
		p.lines = renderF8F2(p.lines, region, start)
	}
}

// emitCode writes the instructions decoded in [start, end), falling back to
// .data for bytes no decoded instruction covers.
func (p *printer) emitCode(start, end int) {
	dataStart := -1
	for off := start; off < end; {
		inst, ok := p.s.Insts[off]
		if !ok || inst.Next() > end {
			if dataStart < 0 {
				dataStart = off
			}
			off++
			continue
		}
		p.flushData(&dataStart, off)
		if inst.OK() {
			p.emitLine(off, inst.Size, p.formatInst(inst))
		} else {
			p.emitBadInst(inst)
		}
		off = inst.Next()
	}
	p.flushData(&dataStart, end)
}

func (p *printer) flushData(dataStart *int, end int) {
	if *dataStart >= 0 {
		p.emitData(*dataStart, end)
		*dataStart = -1
	}
}

// emitBadInst writes an undecodable instruction's bytes as data.
func (p *printer) emitBadInst(inst *Inst) {
	b := p.s.Code[inst.Offset:inst.Next()]
	var note string
	if inst.Def == nil && inst.Err == nil {
		note = fmt.Sprintf("unknown opcode %04X", inst.Code)
	} else {
		note = "failed: " + commentSafe(inst.Err.Error())
	}
	p.emitLine(inst.Offset, inst.Size, fmt.Sprintf(".data %s /* %s */", hexBytes(b), note))
}

// emitData writes [start, end) as .data lines of up to 16 bytes, leaving
// out trailing padding the assembler regenerates.
func (p *printer) emitData(start, end int) {
	if end == len(p.s.Code) && p.trimFrom > start {
		end = p.trimFrom
	} else if end == len(p.s.Code) {
		end = start
	}
	for off := start; off < end; off += 16 {
		n := end - off
		if n > 16 {
			n = 16
		}
		p.emitLine(off, n, ".data "+hexBytes(p.s.Code[off:off+n]))
	}
}

func (p *printer) emitLine(off, size int, text string) {
	if !p.showOffsets {
		p.emit("  %s", text)
		return
	}
	hex := strings.ReplaceAll(hexBytes(p.s.Code[off:off+size]), " ", "")
	if len(hex) > 14 {
		hex = hex[:12] + "..."
	}
	p.emit("  /* %04X %-15s */ %s", off, hex, text)
}

func (p *printer) formatInst(inst *Inst) string {
	def := inst.Def
	if def.UsesArgStack(p.s.Version) {
		if inst.StackMismatch {
			return fmt.Sprintf("%s ... /* matching error: expected %d arguments, received %d arguments */",
				def.Name, len(def.Args), inst.StackReceived)
		}
		if len(def.Args) == 0 {
			return def.Name + " ..."
		}
		vals := make([]string, len(def.Args))
		for i, arg := range def.Args {
			vals[i] = commentSafe(p.formatStackValue(arg, inst.Stack[i]))
		}
		return fmt.Sprintf("%s ... /* %s */", def.Name, strings.Join(vals, ", "))
	}
	if len(inst.Operands) == 0 {
		return def.Name
	}
	ops := make([]string, len(inst.Operands))
	for i, op := range inst.Operands {
		ops[i] = p.formatOperand(def.Args[i], op)
	}
	return def.Name + " " + strings.Join(ops, ", ")
}

func (p *printer) labelRef(idx uint32) string {
	if idx >= uint32(len(p.s.Labels)) {
		return LabelName(idx) + " /* invalid */"
	}
	off := p.s.Labels[idx].Offset
	if off == Unassigned {
		return LabelName(idx) + " /* unassigned */"
	}
	return fmt.Sprintf("%s /* %04X */", LabelName(idx), off)
}

func (p *printer) formatOperand(arg Arg, op Operand) string {
	switch arg.Kind {
	case Label16, Label32:
		return p.labelRef(op.Value)
	case Label16Set:
		names := make([]string, len(op.Values))
		for i, v := range op.Values {
			names[i] = LabelName(v)
		}
		return "(" + strings.Join(names, ", ") + ")"
	case Reg, Reg32:
		return "r" + strconv.FormatUint(uint64(op.Value), 10)
	case RegSet:
		names := make([]string, len(op.Values))
		for i, v := range op.Values {
			names[i] = "r" + strconv.FormatUint(uint64(v), 10)
		}
		return "(" + strings.Join(names, ", ") + ")"
	case RegSetFixed, Reg32SetFixed:
		return fmt.Sprintf("r%d-r%d", op.Value, uint64(op.Value)+uint64(arg.Count)-1)
	case Int8, Int16, Int32:
		return fmt.Sprintf("0x%X", op.Value)
	case Float32:
		return formatFloat(op.Value)
	case CString:
		return op.Text.String()
	}
	return "?"
}

// formatStackValue renders a pushed value as the argument it stands for.
func (p *printer) formatStackValue(arg Arg, sv StackValue) string {
	reg := "r" + strconv.FormatUint(uint64(sv.Value), 10)
	switch {
	case arg.Kind.IsLabel():
		switch sv.Kind {
		case StackInt:
			return LabelName(sv.Value)
		case StackLabel:
			return "&" + LabelName(sv.Value)
		case StackReg:
			return reg
		}
	case arg.Kind.IsRegister():
		switch sv.Kind {
		case StackInt:
			if arg.Count > 0 {
				return fmt.Sprintf("%s-r%d", reg, uint64(sv.Value)+uint64(arg.Count)-1)
			}
			return reg
		case StackReg:
			return "regs[" + reg + "]"
		}
	case arg.Kind == Float32:
		switch sv.Kind {
		case StackInt:
			return formatFloat(sv.Value)
		case StackReg:
			return reg
		}
	case arg.Kind == CString:
		if sv.Kind == StackString {
			return sv.Text.String()
		}
	default:
		switch sv.Kind {
		case StackInt:
			return fmt.Sprintf("0x%X", sv.Value)
		case StackReg:
			return reg
		case StackRegAddr:
			return "&" + reg
		case StackLabel:
			return "&" + LabelName(sv.Value)
		}
	}
	return "?"
}

// commentSafe keeps text from closing the block comment it is placed in.
func commentSafe(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}
