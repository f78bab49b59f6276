package asm

import "fmt"

// Windows produces synthetic sub-function fragments by sliding a fixed-size
// window over fn's instructions: start indices 0, stride, 2*stride, ...
// while a full window still fits. No shorter trailing window is emitted.
//
// Each fragment is named "parent:start:end" (end inclusive), recomputes its
// own key from its own ops, and inherits the parent's provenance. Fragments
// let the index find a shared sub-routine inlined inside two otherwise
// different functions.
func Windows(fn *Function, stride, size int) []*Function {
	if stride <= 0 || size <= 0 {
		return nil
	}

	var frags []*Function
	for i := 0; i+size <= len(fn.Ops); i += stride {
		ops := fn.Ops[i : i+size]
		frags = append(frags, &Function{
			Name:       fmt.Sprintf("%s:%d:%d", fn.Name, i, i+size-1),
			Ops:        ops,
			Key:        signatureKey(ops),
			Dir:        fn.Dir,
			File:       fn.File,
			Decompiled: fn.Decompiled,
		})
	}
	return frags
}
