package xref

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	srcDir := t.TempDir()

	writeFile(t, filepath.Join(srcDir, "st", "main.c"),
		`#include "common.h"

INCLUDE_ASM("st/nz0", func_801B1234)

void EntityAlucard(Entity* self) {
}

INCLUDE_ASM("st/nz0", func_801B5678)
`)
	writeFile(t, filepath.Join(srcDir, "st", "helper.c"),
		`INCLUDE_ASM("st/nz0/helpers", helper_fn)
`)
	// Non-C files are ignored.
	writeFile(t, filepath.Join(srcDir, "st", "notes.txt"),
		`INCLUDE_ASM("st/nz0", func_ignored)
`)

	idx, err := Scan(srcDir, "asm/us")
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	t.Run("StillAsmMatchesMarkedFunctions", func(t *testing.T) {
		asmFile := filepath.Join("asm/us", "st/nz0", "func_801B1234.s")
		assert.True(t, idx.StillAsm(asmFile, "func_801B1234"))

		asmFile = filepath.Join("asm/us", "st/nz0/helpers", "helper_fn.s")
		assert.True(t, idx.StillAsm(asmFile, "helper_fn"))
	})

	t.Run("DecompiledFunctionHasNoMarker", func(t *testing.T) {
		asmFile := filepath.Join("asm/us", "st/nz0", "EntityAlucard.s")
		assert.False(t, idx.StillAsm(asmFile, "EntityAlucard"))
	})

	t.Run("WrongPathDoesNotMatch", func(t *testing.T) {
		asmFile := filepath.Join("asm/jp", "st/nz0", "func_801B1234.s")
		assert.False(t, idx.StillAsm(asmFile, "func_801B1234"))
	})

	t.Run("EmptyNameNeverMatches", func(t *testing.T) {
		asmFile := filepath.Join("asm/us", "st/nz0", ".s")
		assert.False(t, idx.StillAsm(asmFile, ""))
	})
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), "asm/us")
	assert.Error(t, err)
}
