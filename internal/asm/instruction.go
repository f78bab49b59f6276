package asm

import (
	"math"
	"sort"
)

// Primary opcode field of a 32-bit MIPS instruction word.
const (
	opcodeShift = 26
	opcodeMask  = 0x3F
)

// Opcode words of the trivial empty-body stub: jr $ra followed by the
// delay-slot nop.
const (
	opReturn uint32 = 0x03E00008
	opNop    uint32 = 0x00000000
)

// Instruction is a single decoded instruction word together with its
// position in the overlay file and in memory. Values are immutable once
// parsed.
type Instruction struct {
	FileOffset uint64 // offset of the word within the overlay file
	VirtAddr   uint64 // virtual address the word is loaded at
	Opcode     uint32 // instruction word, byte-order corrected
}

// Signature reduces an instruction word to its 6-bit primary opcode class.
// Register and immediate operands live in the low 26 bits, so instructions
// that differ only in operands map to the same signature byte.
func Signature(op uint32) byte {
	return byte((op >> opcodeShift) & opcodeMask)
}

// signatureKey derives the comparison key for an instruction sequence, one
// signature byte per instruction.
func signatureKey(ops []Instruction) []byte {
	key := make([]byte, len(ops))
	for i, op := range ops {
		key[i] = Signature(op.Opcode)
	}
	return key
}

// Function is a parsed function or a synthetic window fragment of one.
type Function struct {
	// Name is the declared label for whole functions, or
	// "parent:start:end" for window fragments. Empty means the source
	// file carried no label; that is not an error.
	Name string

	// Ops is the instruction sequence in file order.
	Ops []Instruction

	// Key holds one signature byte per instruction; len(Key) == len(Ops).
	Key []byte

	// Dir and File record provenance for reporting. They never
	// participate in comparison.
	Dir  string
	File string

	// Similarity is stamped when the function joins an existing cluster;
	// it stays 0 for cluster founders.
	Similarity float64

	// Decompiled is advisory, set by cross-referencing source markers.
	Decompiled bool
}

// IsStub reports whether the function is the trivial two-instruction
// return/no-op body emitted for empty functions. Stubs are excluded from
// indexing and windowing.
func (f *Function) IsStub() bool {
	return len(f.Ops) == 2 && f.Ops[0].Opcode == opReturn && f.Ops[1].Opcode == opNop
}

// startAddr is the sort key for file-order listings: the first
// instruction's virtual address, with instruction-less functions last.
func (f *Function) startAddr() uint64 {
	if len(f.Ops) == 0 {
		return math.MaxUint64
	}
	return f.Ops[0].VirtAddr
}

// Snapshot is one directory's parsed corpus. Lifetime is a single run.
type Snapshot struct {
	Dir   string
	Funcs []*Function
}

// SortByAddress orders the snapshot's functions by their first
// instruction's virtual address. Functions with no instructions sort last.
func (s *Snapshot) SortByAddress() {
	sort.SliceStable(s.Funcs, func(i, j int) bool {
		return s.Funcs[i].startAddr() < s.Funcs[j].startAddr()
	})
}
