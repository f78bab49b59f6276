package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name string
		op   uint32
		want byte
	}{
		{"Nop", 0x00000000, 0x00},
		{"JalTopBits", 0x0C004E28, 0x03},
		{"JrRa", 0x03E00008, 0x00},
		{"AllOnes", 0xFFFFFFFF, 0x3F},
		{"Addiu", 0x24020001, 0x09},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.op))
		})
	}
}

func TestSignatureIgnoresOperands(t *testing.T) {
	// Same primary opcode, different registers and immediates.
	assert.Equal(t, Signature(0x24020001), Signature(0x24A5FFFF))
	// Low bit flips never change the signature class.
	assert.Equal(t, Signature(0x0C004E28), Signature(0x0C004E29))
}

func TestIsStub(t *testing.T) {
	stub := &Function{Ops: []Instruction{
		{Opcode: 0x03E00008},
		{Opcode: 0x00000000},
	}}
	assert.True(t, stub.IsStub())

	tests := []struct {
		name string
		ops  []Instruction
	}{
		{"Empty", nil},
		{"SingleReturn", []Instruction{{Opcode: 0x03E00008}}},
		{"ThreeOps", []Instruction{{Opcode: 0x03E00008}, {Opcode: 0}, {Opcode: 0}}},
		{"DelaySlotNotNop", []Instruction{{Opcode: 0x03E00008}, {Opcode: 0x24020001}}},
		{"WrongOrder", []Instruction{{Opcode: 0}, {Opcode: 0x03E00008}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := &Function{Ops: tt.ops}
			assert.False(t, fn.IsStub())
		})
	}
}

func TestSnapshotSortByAddress(t *testing.T) {
	snap := &Snapshot{Funcs: []*Function{
		{Name: "high", Ops: []Instruction{{VirtAddr: 0x80030000}}},
		{Name: "empty"},
		{Name: "low", Ops: []Instruction{{VirtAddr: 0x80010000}}},
		{Name: "mid", Ops: []Instruction{{VirtAddr: 0x80020000}}},
	}}

	snap.SortByAddress()

	names := make([]string, 0, len(snap.Funcs))
	for _, fn := range snap.Funcs {
		names = append(names, fn.Name)
	}
	assert.Equal(t, []string{"low", "mid", "high", "empty"}, names)
}
