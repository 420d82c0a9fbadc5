// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package assemble

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/namespace"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/parser"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/validate"
)

func compileSource(t *testing.T, src string, opts Options) (*diag.Bag, Result) {
	t.Helper()
	fset := token.NewFileSet()
	bag := diag.NewBag(fset)

	aliases := parser.Aliases(parser.DefaultPointerPosID)
	prog := parser.Parse(fset, "test.tasm", []byte(src), aliases, bag)
	ns := namespace.Build(prog, bag)
	checked := validate.Run(ns, bag, opts.Emit.BitPackingEnabled)

	result := Run(ns, checked, bag, opts)
	return bag, result
}

func TestRunProducesNoOutputWhenBagAlreadyHasErrors(t *testing.T) {
	fset := token.NewFileSet()
	bag := diag.NewBag(fset)
	bag.Errorf(0, diag.UnknownInstruction, "", "", "pre-existing error")

	result := Run(&namespace.Namespace{StartGroup: -1}, &validate.Program{}, bag, DefaultOptions())

	require.Equal(t, Result{}, result)
}

func TestRunCompilesSimpleProgram(t *testing.T) {
	src := "_start:\n    NOP\n"
	bag, result := compileSource(t, src, DefaultOptions())

	require.False(t, bag.HasErrors())
	require.NotEmpty(t, result.Objects)
	require.True(t, result.Objects[0] == ';')
}

func TestRunGroupOffsetAppliesToHelperSpawnDecision(t *testing.T) {
	// A fork whose target routine holds more than one instruction needs
	// its helper-spawn indirection regardless of --group-offset; this
	// guards the Lengths-keying fix in Run (see DESIGN.md).
	src := "" +
		"main:\n" +
		"    FE two, one, C1, C2\n" +
		"one:\n" +
		"    MOV C3, 1\n" +
		"    MOV C4, 1\n" +
		"two:\n" +
		"    MOV C3, 2\n" +
		"    MOV C4, 2\n"

	opts := DefaultOptions()
	opts.GroupOffset = 50

	bag, result := compileSource(t, src, opts)

	require.False(t, bag.HasErrors())
	// Both "one" and "two" hold 2 instructions, so both the true and
	// false branches need a helper spawn, each consuming one extra
	// group. Before the Lengths-keying fix, the offset group ids (51,
	// 52) never matched Lengths' pre-offset keys (1, 2), so
	// NeedsHelperSpawn always reported false here and no extra groups
	// were ever allocated.
	require.Equal(t, 3+2-1, result.GroupsUsed, "3 routines plus 2 extra helper-spawn groups")
}

func TestRunAddsBarrierBlockPastGroupOffsetHundred(t *testing.T) {
	src := "_start:\n    NOP\n"
	opts := DefaultOptions()
	opts.GroupOffset = 150

	_, result := compileSource(t, src, opts)

	require.Contains(t, result.Objects, "1,1,2,105,3,")
}
