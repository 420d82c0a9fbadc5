// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/namespace"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/parser"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
)

func buildNamespace(t *testing.T, routines map[string][]*parser.Instruction, order []string) *namespace.Namespace {
	t.Helper()
	prog := &parser.Program{}
	for _, name := range order {
		prog.Routines = append(prog.Routines, &parser.Routine{Name: name, Instructions: routines[name]})
	}
	bag := diag.NewBag(token.NewFileSet())
	return namespace.Build(prog, bag)
}

func instr(mnemonic string, args ...string) *parser.Instruction {
	return &parser.Instruction{Mnemonic: mnemonic, Args: args}
}

func TestRunAcceptsKnownInstruction(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"_start": {instr("MOV", "C1", "5")},
	}, []string{"_start"})
	bag := diag.NewBag(token.NewFileSet())

	prog := Run(ns, bag, true)

	require.False(t, bag.HasErrors())
	require.Len(t, prog.Routines["_start"], 1)
}

func TestRunRejectsUnknownInstruction(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"_start": {instr("FROB", "C1")},
	}, []string{"_start"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, true)

	require.True(t, bag.HasErrors())
	require.Equal(t, diag.UnknownInstruction, bag.All()[0].Kind)
}

func TestRunRejectsInstructionOutsideAllowedRoutine(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"main": {instr("MALLOC", "10")},
	}, []string{"main"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, true)

	require.True(t, bag.HasErrors())
	require.Equal(t, diag.DisallowedHere, bag.All()[0].Kind)
}

func TestRunRejectsSecondMalloc(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"_init": {instr("MALLOC", "10"), instr("MALLOC", "20")},
	}, []string{"_init"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, true)

	require.True(t, bag.HasErrors())
	require.Len(t, bag.All(), 1, "the first MALLOC is accepted silently")
	require.Equal(t, diag.MultipleMalloc, bag.All()[0].Kind)
}

func TestRunRejectsMemoryInstructionBeforeMalloc(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"main": {instr("MREAD")},
	}, []string{"main"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, true)

	require.True(t, bag.HasErrors())
	require.Equal(t, diag.MemoryBeforeMalloc, bag.All()[0].Kind)
}

func TestRunAllowsMemoryInstructionAfterMalloc(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"_init": {instr("MALLOC", "10")},
		"main":  {instr("MREAD")},
	}, []string{"_init", "main"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, true)

	require.False(t, bag.HasErrors())
}

func TestRunReportsUnknownRoutineRefDistinctly(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"main": {instr("SPAWN", "nonexistent")},
	}, []string{"main"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, true)

	require.True(t, bag.HasErrors())
	require.Equal(t, diag.UnknownRoutineRef, bag.All()[0].Kind)
}

func TestRunWarnsOnNumericPrecisionRiskWhenBitPackingDisabled(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"main": {instr("MOV", "C1", "99999999")},
	}, []string{"main"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, false)

	require.False(t, bag.HasErrors())
	require.Equal(t, diag.NumericPrecisionRisk, bag.All()[0].Kind)
	require.True(t, bag.All()[0].Warning)
}

func TestRunSuppressesPrecisionRiskWhenBitPackingEnabled(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"main": {instr("MOV", "C1", "99999999")},
	}, []string{"main"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, true)

	require.False(t, bag.HasErrors())
	require.Empty(t, bag.All())
}

func TestRunContinuesAfterEveryInstructionProblem(t *testing.T) {
	ns := buildNamespace(t, map[string][]*parser.Instruction{
		"main": {instr("FROB"), instr("SPAWN", "nowhere"), instr("MALLOC", "1")},
	}, []string{"main"})
	bag := diag.NewBag(token.NewFileSet())

	Run(ns, bag, true)

	require.Len(t, bag.All(), 3)
}
