package asm

import (
	"math/bits"
	"strconv"
	"strings"
)

// labelKeyword introduces a function label line in splat's disassembly
// output: "glabel <name>".
const labelKeyword = "glabel"

// ParseFunction turns one disassembly file's text into a Function.
//
// The format is line oriented. A line with exactly two whitespace-separated
// tokens whose first token is the label keyword declares the function name;
// the first declaration wins. A line with at least four tokens whose 2nd
// and 3rd tokens parse as hexadecimal 64-bit integers (file offset, vram)
// and whose 4th parses as a hexadecimal 32-bit integer is an instruction
// record. Everything else (comments, directives, blank lines) is skipped;
// that is the expected shape of the format, not an error.
func ParseFunction(src, dir, file string) *Function {
	var (
		ops  []Instruction
		name string
	)

	for _, line := range strings.Split(src, "\n") {
		parts := strings.Fields(line)

		if len(parts) == 2 && parts[0] == labelKeyword {
			if name == "" {
				name = parts[1]
			}
			continue
		}

		if len(parts) < 4 {
			continue
		}

		fileOff, err := strconv.ParseUint(parts[1], 16, 64)
		if err != nil {
			continue
		}
		vram, err := strconv.ParseUint(parts[2], 16, 64)
		if err != nil {
			continue
		}
		word, err := strconv.ParseUint(parts[3], 16, 32)
		if err != nil {
			continue
		}

		ops = append(ops, Instruction{
			FileOffset: fileOff,
			VirtAddr:   vram,
			// The disassembler emits the word in the opposite byte
			// order from the rest of the pipeline; reverse the four
			// bytes so the primary opcode lands in the high bits.
			Opcode: bits.ReverseBytes32(uint32(word)),
		})
	}

	return &Function{
		Name: name,
		Ops:  ops,
		Key:  signatureKey(ops),
		Dir:  dir,
		File: file,
	}
}
