package qscript

// Operand is one inline argument as read from the code segment.
type Operand struct {
	Kind   ArgKind
	Value  uint32   // integer, register, first register, label index or float bits
	Values []uint32 // Label16Set and RegSet members
	Text   Text     // CString
}

// LabelIndexes returns the label indexes o refers to.
func (o Operand) LabelIndexes() []uint32 {
	switch o.Kind {
	case Label16, Label32:
		return []uint32{o.Value}
	case Label16Set:
		return o.Values
	}
	return nil
}

// StackKind is the kind of a value pushed onto the argument stack.
type StackKind uint8

const (
	StackReg     StackKind = iota // contents of a register (arg_pushr)
	StackRegAddr                  // address of a register (arg_pusha)
	StackInt                      // immediate value (arg_pushb, arg_pushw, arg_pushl)
	StackLabel                    // label offset (arg_pusho)
	StackString                   // string (arg_pushs)
)

// StackValue is one entry of the argument stack.
type StackValue struct {
	Kind  StackKind
	Value uint32
	Text  Text
}

// Push opcodes, one per StackKind that can be pushed.
const (
	opArgPushR = 0x48
	opArgPushL = 0x49
	opArgPushB = 0x4A
	opArgPushW = 0x4B
	opArgPushA = 0x4C
	opArgPushO = 0x4D
	opArgPushS = 0x4E
)

// stackValueFor is the value a push instruction contributes.
func stackValueFor(code uint16, o Operand) StackValue {
	switch o.Kind {
	case Label16, Label32:
		return StackValue{Kind: StackLabel, Value: o.Value}
	case Reg, Reg32:
		if code == opArgPushA {
			return StackValue{Kind: StackRegAddr, Value: o.Value}
		}
		return StackValue{Kind: StackReg, Value: o.Value}
	case CString:
		return StackValue{Kind: StackString, Text: o.Text}
	}
	return StackValue{Kind: StackInt, Value: o.Value}
}

// Inst is one decoded instruction, or a placeholder for bytes that could
// not be decoded.
type Inst struct {
	Offset int
	Size   int
	Code   uint16
	Def    *OpcodeDef // nil for unknown opcodes

	Operands []Operand

	// Stack holds the argument stack matched against Def.Args for
	// instructions using the argument stack convention.
	Stack         []StackValue
	StackMismatch bool
	StackReceived int

	Err error // set when the instruction ran past the end of the code
}

// Next is the offset following the instruction.
func (inst *Inst) Next() int { return inst.Offset + inst.Size }

// OK reports whether the instruction decoded completely and is known.
func (inst *Inst) OK() bool { return inst.Def != nil && inst.Err == nil }
