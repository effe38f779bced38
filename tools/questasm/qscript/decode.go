package qscript

import (
	"encoding/binary"
	"fmt"
	"log"

	"golang.org/x/exp/slices"
)

// DisassembleOptions controls Analyze and Disassemble. A nil
// *DisassembleOptions means all defaults.
type DisassembleOptions struct {
	// OverrideLanguage selects the text encoding from Language instead of
	// the header's language byte.
	OverrideLanguage bool
	Language         uint8

	// ShowOffsets prefixes every emitted line with its code offset and bytes.
	ShowOffsets bool

	// Logger receives a WARNING line for every diagnostic, if set.
	Logger *log.Logger
}

// Analyze decodes a script and infers the roles of its labels without
// rendering any text. Only structural problems are errors; everything else
// is recorded in the returned Script's Diagnostics.
func Analyze(data []byte, v Version, opts *DisassembleOptions) (*Script, error) {
	if opts == nil {
		opts = &DisassembleOptions{}
	}
	h, err := DecodeHeader(data, v)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	enc := TextEncoding(v, h.Language)
	if opts.OverrideLanguage {
		enc = TextEncoding(v, opts.Language)
		h.decodeText(data, &layouts[LayoutFor(v)], enc)
	}
	code, ft, err := splitSegments(data, h)
	if err != nil {
		return nil, err
	}

	s := &Script{
		Version:  v,
		Header:   h,
		Encoding: enc,
		Code:     code,
		Labels:   make([]*Label, len(ft)),
		Insts:    make(map[int]*Inst),
	}
	d := &decoder{
		s:    s,
		log:  opts.Logger,
		refs: make([]map[int]struct{}, len(ft)),
	}
	for i, off := range ft {
		s.Labels[i] = &Label{Index: i, Offset: off}
		d.refs[i] = make(map[int]struct{})
		if d.inCode(off) {
			d.enqueue(int(off))
		}
	}
	if len(s.Labels) > 0 {
		s.Labels[0].Roles |= RoleCode
	}

	d.run()

	for i, l := range s.Labels {
		for off := range d.refs[i] {
			l.References = append(l.References, off)
		}
		slices.Sort(l.References)
		if l.Roles == 0 && d.inCode(l.Offset) {
			l.Roles = RoleCode | RoleData
			l.Guessed = true
			d.warn("%s: could not determine data type", l.Name())
		}
	}
	return s, nil
}

type decoder struct {
	s       *Script
	log     *log.Logger
	refs    []map[int]struct{}
	pending []int // ascending
}

func (d *decoder) inCode(off uint32) bool {
	return off < uint32(len(d.s.Code))
}

func (d *decoder) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.s.Diagnostics = append(d.s.Diagnostics, msg)
	if d.log != nil {
		d.log.Printf("WARNING: %s", msg)
	}
}

func (d *decoder) enqueue(off int) {
	if _, done := d.s.Insts[off]; done {
		return
	}
	if i, found := slices.BinarySearch(d.pending, off); !found {
		d.pending = slices.Insert(d.pending, i, off)
	}
}

// run decodes functions from the lowest pending offset until none remain.
// Each function ends at a return, at already decoded code, or at the end
// of the segment.
func (d *decoder) run() {
	for len(d.pending) > 0 {
		start := d.pending[0]
		d.pending = d.pending[1:]

		var stack []StackValue
		r := &reader{data: d.s.Code, pos: start}
		for !r.eof() {
			if _, done := d.s.Insts[r.pos]; done {
				break
			}
			inst := d.decodeInst(r, &stack)
			d.s.Insts[inst.Offset] = inst
			if inst.OK() && inst.Def.IsReturn() {
				break
			}
		}
	}
}

func (d *decoder) decodeInst(r *reader, stack *[]StackValue) *Inst {
	v := d.s.Version
	inst := &Inst{Offset: r.pos}
	defer func() { inst.Size = r.pos - inst.Offset }()

	code, err := r.readOpcode()
	if err != nil {
		inst.Err = err
		d.warn("%04X: %v", inst.Offset, err)
		return inst
	}
	inst.Code = code
	def, ok := LookupCode(code, v)
	if !ok {
		*stack = nil
		d.warn("%04X: unknown opcode %04X", inst.Offset, code)
		return inst
	}
	inst.Def = def

	if def.UsesArgStack(v) {
		d.matchStack(inst, *stack)
	} else {
		for _, arg := range def.Args {
			op, err := r.readOperand(arg, d.s.Encoding)
			if err != nil {
				inst.Err = err
				d.warn("%04X: %s: %v", inst.Offset, def.Name, err)
				break
			}
			inst.Operands = append(inst.Operands, op)
			for _, idx := range op.LabelIndexes() {
				d.reference(idx, arg.Role, inst.Offset)
			}
		}
	}

	if def.Flags&FlagPreserve == 0 {
		*stack = nil
	} else if inst.Err == nil {
		for _, op := range inst.Operands {
			*stack = append(*stack, stackValueFor(code, op))
		}
	}
	return inst
}

// matchStack pairs the pushed values with the instruction's arguments.
func (d *decoder) matchStack(inst *Inst, stack []StackValue) {
	args := inst.Def.Args
	if len(stack) != len(args) {
		inst.StackMismatch = true
		inst.StackReceived = len(stack)
		d.warn("%04X: %s expects %d arguments, received %d", inst.Offset, inst.Def.Name, len(args), len(stack))
		return
	}
	inst.Stack = slices.Clone(stack)
	for i, arg := range args {
		sv := stack[i]
		if arg.Kind.IsLabel() && (sv.Kind == StackLabel || sv.Kind == StackInt) {
			d.reference(sv.Value, arg.Role, inst.Offset)
		}
	}
}

// reference records that the instruction at from refers to label idx in
// the given role. References to code are queued for decoding.
func (d *decoder) reference(idx uint32, role Role, from int) {
	if idx >= uint32(len(d.s.Labels)) {
		return
	}
	l := d.s.Labels[idx]
	l.Roles |= role
	d.refs[idx][from] = struct{}{}
	if role&RoleCode != 0 && d.inCode(l.Offset) {
		d.enqueue(int(l.Offset))
	}
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) eof() bool { return r.pos >= len(r.data) }

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("unexpected EOF at offset %04X", r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		err := fmt.Errorf("unexpected EOF: need %d bytes at offset %04X", n, r.pos)
		r.pos = len(r.data)
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readU16() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) readU32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// readOpcode reads a one-byte opcode, or a two-byte one after an
// extended prefix.
func (r *reader) readOpcode() (uint16, error) {
	b, err := r.readByte()
	if err != nil {
		return 0, err
	}
	if !isExtendedPrefix(b) {
		return uint16(b), nil
	}
	b2, err := r.readByte()
	if err != nil {
		return 0, err
	}
	return uint16(b)<<8 | uint16(b2), nil
}

// readCString reads up to a NUL unit and returns the bytes before it.
func (r *reader) readCString(unit int) ([]byte, error) {
	start := r.pos
	n := terminatedLen(r.data[start:], unit)
	if start+n+unit > len(r.data) {
		r.pos = len(r.data)
		return nil, fmt.Errorf("unterminated string at offset %04X", start)
	}
	r.pos = start + n + unit
	return r.data[start : start+n], nil
}

func (r *reader) readOperand(arg Arg, enc Encoding) (Operand, error) {
	op := Operand{Kind: arg.Kind}
	var err error
	switch arg.Kind {
	case Label16, Int16:
		var v uint16
		v, err = r.readU16()
		op.Value = uint32(v)
	case Label32, Reg32, Reg32SetFixed, Int32, Float32:
		op.Value, err = r.readU32()
	case Reg, RegSetFixed, Int8:
		var b byte
		b, err = r.readByte()
		op.Value = uint32(b)
	case Label16Set, RegSet:
		var n byte
		if n, err = r.readByte(); err != nil {
			break
		}
		op.Values = make([]uint32, 0, n)
		for i := 0; i < int(n) && err == nil; i++ {
			var v uint32
			if arg.Kind == Label16Set {
				var w uint16
				w, err = r.readU16()
				v = uint32(w)
			} else {
				var b byte
				b, err = r.readByte()
				v = uint32(b)
			}
			op.Values = append(op.Values, v)
		}
	case CString:
		var b []byte
		if b, err = r.readCString(enc.UnitSize()); err == nil {
			op.Text = enc.DecodeText(b)
		}
	default:
		err = fmt.Errorf("invalid argument kind %d", arg.Kind)
	}
	return op, err
}
