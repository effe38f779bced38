package qscript

import "fmt"

// Script is a decoded script: its header, code segment and function table,
// plus what the disassembler learned about each label.
type Script struct {
	Version  Version
	Header   *Header
	Encoding Encoding // text encoding used for strings
	Code     []byte

	// Labels has one entry per function table slot, in index order.
	Labels []*Label

	// Insts holds every decoded instruction keyed by its code offset.
	Insts map[int]*Inst

	// Diagnostics lists the non-fatal problems found while decoding.
	Diagnostics []string
}

// Label is one function table entry.
type Label struct {
	Index      int
	Offset     uint32 // within the code segment; may be Unassigned
	Roles      Role
	References []int // offsets of instructions referring to the label, ascending

	// Guessed is set when nothing referenced the label and its roles were
	// defaulted to code and raw data.
	Guessed bool
}

// LabelName is the name the disassembler gives label index i.
func LabelName(i uint32) string {
	if i == 0 {
		return "start"
	}
	return fmt.Sprintf("label%04X", i)
}

// Name returns the label's canonical name.
func (l *Label) Name() string { return LabelName(uint32(l.Index)) }

// splitSegments returns the code segment and function table described by h.
// The function table runs to the header's total size when that is
// plausible, else to the end of data.
func splitSegments(data []byte, h *Header) ([]byte, []uint32, error) {
	end := uint32(len(data))
	if h.Size >= h.FunctionTableOffset && h.Size <= end {
		end = h.Size
	}
	ft, err := DecodeFunctionTable(data[h.FunctionTableOffset:end])
	if err != nil {
		return nil, nil, err
	}
	return data[h.CodeOffset:h.FunctionTableOffset], ft, nil
}
