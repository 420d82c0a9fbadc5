// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package namespace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/parser"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
)

func TestBuildAssignsGroupsInDeclarationOrder(t *testing.T) {
	prog := &parser.Program{Routines: []*parser.Routine{
		{Name: "helper", Instructions: []*parser.Instruction{{Mnemonic: "NOP"}}},
		{Name: "_start", Instructions: []*parser.Instruction{{Mnemonic: "NOP"}}},
	}}
	bag := diag.NewBag(token.NewFileSet())

	ns := Build(prog, bag)

	require.Equal(t, []string{"helper", "_start"}, ns.Order)
	require.Equal(t, 0, ns.Routines["helper"].Group)
	require.Equal(t, 1, ns.Routines["_start"].Group)
	require.Equal(t, 1, ns.StartGroup)
	require.False(t, bag.HasErrors())
}

func TestBuildWarnsOnMissingStart(t *testing.T) {
	prog := &parser.Program{Routines: []*parser.Routine{
		{Name: "helper", Instructions: []*parser.Instruction{{Mnemonic: "NOP"}}},
	}}
	bag := diag.NewBag(token.NewFileSet())

	ns := Build(prog, bag)

	require.Equal(t, -1, ns.StartGroup)
	require.False(t, bag.HasErrors(), "a missing _start is a warning, not an error")
	require.Equal(t, diag.MissingStart, bag.All()[0].Kind)
}

func TestBuildWarnsOnEmptyRoutine(t *testing.T) {
	prog := &parser.Program{Routines: []*parser.Routine{
		{Name: "_start"},
	}}
	bag := diag.NewBag(token.NewFileSet())

	Build(prog, bag)

	require.Contains(t, []diag.Kind{diag.EmptyRoutine, diag.MissingStart}, bag.All()[0].Kind)
	found := false
	for _, d := range bag.All() {
		if d.Kind == diag.EmptyRoutine {
			found = true
		}
	}
	require.True(t, found)
}

func TestGroupOfUnknownRoutine(t *testing.T) {
	ns := &Namespace{Routines: map[string]*Routine{}}
	_, ok := ns.GroupOf("nonexistent")
	require.False(t, ok)
}

func TestLengthsKeyedByRawGroup(t *testing.T) {
	ns := &Namespace{Routines: map[string]*Routine{
		"a": {Group: 0, Instructions: make([]*parser.Instruction, 3)},
		"b": {Group: 1, Instructions: make([]*parser.Instruction, 0)},
	}}

	lengths := ns.Lengths()
	require.Equal(t, 3, lengths[0])
	require.Equal(t, 0, lengths[1])
}
