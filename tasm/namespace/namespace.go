// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package namespace assigns group ids to routines, in the declaration
// order parser.Parse produced them — the TASM equivalent of a linker's
// symbol table, grounded on determine_groups in tasm_parser.py.
package namespace

import (
	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/parser"
)

// Routine is one routine's resolved position in the namespace: its
// group id and the raw instruction list it was parsed with.
type Routine struct {
	Name         string
	Group        int
	Instructions []*parser.Instruction
}

// Namespace is every routine keyed by name, plus the declaration order
// (Order) group ids were handed out in — group 0 is the first routine
// declared, regardless of which one is named "_start".
type Namespace struct {
	Order    []string
	Routines map[string]*Routine

	// StartGroup is the group id of the "_start" routine, or -1 when the
	// program declares none (a MissingStart warning, not an error: a
	// program with no _start compiles but can never be entered from the
	// editor's default run trigger).
	StartGroup int

	// GroupCount is the total number of routines declared in source,
	// including dropped empty ones — their group slot still counts
	// against the budget, so auxiliary-group allocation must start past
	// it rather than past len(Order).
	GroupCount int
}

// Lengths returns the per-group instruction count used by the
// compare/fork helper-spawn decision (spec.md §4.7).
func (ns *Namespace) Lengths() map[int]int {
	out := make(map[int]int, len(ns.Routines))
	for _, r := range ns.Routines {
		out[r.Group] = len(r.Instructions)
	}
	return out
}

// GroupOf resolves a routine name to its assigned group id.
func (ns *Namespace) GroupOf(name string) (int, bool) {
	r, ok := ns.Routines[name]
	if !ok {
		return 0, false
	}
	return r.Group, true
}

// Build assigns a group id to every routine in prog, in declaration
// order, then drops any routine with no instructions after that
// numbering: its group id is not reused by anything else, but it no
// longer appears in Order/Routines, so later phases can't resolve a
// RoutineRef to it (spec.md §4.3's "empty routines are removed with a
// warning after this numbering; their slots remain consumed").
func Build(prog *parser.Program, bag *diag.Bag) *Namespace {
	ns := &Namespace{
		Routines:   make(map[string]*Routine, len(prog.Routines)),
		StartGroup: -1,
		GroupCount: len(prog.Routines),
	}

	for i, r := range prog.Routines {
		if len(r.Instructions) == 0 {
			bag.Warnf(r.Pos, diag.EmptyRoutine, r.Name, "", "routine %q has no instructions", r.Name)
			continue
		}

		ns.Order = append(ns.Order, r.Name)
		ns.Routines[r.Name] = &Routine{Name: r.Name, Group: i, Instructions: r.Instructions}

		if r.Name == "_start" {
			ns.StartGroup = i
		}
	}

	if ns.StartGroup < 0 {
		bag.Warnf(0, diag.MissingStart, "", "", "no _start routine declared; the compiled level has no default entry point")
	}

	return ns
}
