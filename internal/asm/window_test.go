package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFunction(name string, n int) *Function {
	ops := make([]Instruction, n)
	for i := range ops {
		ops[i] = Instruction{
			VirtAddr: 0x80000000 + uint64(i)*4,
			Opcode:   uint32(i%0x3F) << opcodeShift,
		}
	}
	return &Function{Name: name, Ops: ops, Key: signatureKey(ops), Dir: "d", File: "f"}
}

func TestWindows(t *testing.T) {
	t.Run("FragmentCount", func(t *testing.T) {
		tests := []struct {
			name   string
			ops    int
			stride int
			size   int
			want   int
		}{
			{"ShorterThanWindow", 10, 4, 32, 0},
			{"ExactlyOneWindow", 32, 4, 32, 1},
			{"ThreeWindows", 40, 4, 32, 3},
			{"StrideOne", 34, 1, 32, 3},
			{"Empty", 0, 4, 32, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				frags := Windows(makeFunction("fn", tt.ops), tt.stride, tt.size)
				assert.Len(t, frags, tt.want)
			})
		}
	})

	t.Run("FragmentNamesAndContent", func(t *testing.T) {
		fn := makeFunction("parent", 40)
		frags := Windows(fn, 4, 32)
		require.Len(t, frags, 3)

		assert.Equal(t, "parent:0:31", frags[0].Name)
		assert.Equal(t, "parent:4:35", frags[1].Name)
		assert.Equal(t, "parent:8:39", frags[2].Name)

		for i, frag := range frags {
			assert.Equal(t, fn.Ops[i*4:i*4+32], frag.Ops)
			assert.Equal(t, fn.Key[i*4:i*4+32], frag.Key)
			assert.Equal(t, fn.Dir, frag.Dir)
			assert.Equal(t, fn.File, frag.File)
		}
	})

	t.Run("InvalidParameters", func(t *testing.T) {
		fn := makeFunction("fn", 40)
		assert.Nil(t, Windows(fn, 0, 32))
		assert.Nil(t, Windows(fn, 4, 0))
		assert.Nil(t, Windows(fn, -1, -1))
	})
}
