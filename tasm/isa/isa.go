// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package isa is TASM's static instruction table: for each mnemonic, the
// routines it's allowed in and the ordered list of operand-kind overloads
// it accepts, each paired with the emitter that renders it. Overload
// resolution is first-match linear scan over Overloads, mirroring
// commands.py's INSTRUCTIONS dict (spec.md §4.2).
package isa

import (
	"github.com/ArrowSlashArrow/tasm-lang/tasm/emit"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/operand"
)

// Overload is one accepted operand-kind signature and the emitter that
// renders it.
type Overload struct {
	Kinds []operand.Kind
	Emit  emit.Emitter
}

// Any is the allowed-routines sentinel meaning "every routine", the Go
// equivalent of commands.py's "*".
const Any = "*"

// Init is the one routine name MALLOC/INITMEM/PERS/DISPLAY/IOBLOCK are
// restricted to.
const Init = "_init"

// Spec is one mnemonic's full entry: where it's allowed, and its
// overload list.
type Spec struct {
	Allowed   []string
	Overloads []Overload
}

// AllowedIn reports whether the instruction may appear in routine name.
func (s Spec) AllowedIn(name string) bool {
	for _, a := range s.Allowed {
		if a == Any || a == name {
			return true
		}
	}
	return false
}

// Resolve returns the first overload whose Kinds match kinds exactly, or
// ok=false if none do.
func (s Spec) Resolve(kinds []operand.Kind) (Overload, bool) {
	for _, o := range s.Overloads {
		if kindsEqual(o.Kinds, kinds) {
			return o, true
		}
	}
	return Overload{}, false
}

func kindsEqual(a, b []operand.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Table is the full set of TASM mnemonics, grounded one-to-one on
// commands.py's INSTRUCTIONS dict.
var Table = map[string]Spec{
	"PERS": {
		Allowed: []string{Init},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Item}, Emit: emit.MakePersistent},
		},
	},
	"DISPLAY": {
		Allowed: []string{Init},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Item}, Emit: emit.DisplayItem},
			{Kinds: []operand.Kind{operand.Item, operand.Number}, Emit: emit.DisplayItemPos},
		},
	},
	"INITMEM": {
		Allowed: []string{Init},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.IntArray}, Emit: emit.InitMem},
		},
	},
	"MALLOC": {
		Allowed: []string{Init},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Int}, Emit: emit.Malloc},
		},
	},
	"MFUNC": {
		Allowed:   []string{Any},
		Overloads: []Overload{{Kinds: nil, Emit: emit.MFunc}},
	},
	"MREAD": {
		Allowed:   []string{Any},
		Overloads: []Overload{{Kinds: nil, Emit: emit.MRead}},
	},
	"MWRITE": {
		Allowed:   []string{Any},
		Overloads: []Overload{{Kinds: nil, Emit: emit.MWrite}},
	},
	"MPTR": {
		Allowed:   []string{Any},
		Overloads: []Overload{{Kinds: []operand.Kind{operand.Int}, Emit: emit.MPtr}},
	},
	"MRESET": {
		Allowed:   []string{Any},
		Overloads: []Overload{{Kinds: nil, Emit: emit.MReset}},
	},
	"IOBLOCK": {
		Allowed: []string{Init},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.RoutineRef, operand.Int, operand.Str}, Emit: emit.IOBlock},
		},
	},
	"NOP": {
		Allowed:   []string{Any},
		Overloads: []Overload{{Kinds: nil, Emit: emit.NOP}},
	},
	"MOV": {
		Allowed: []string{Any},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Item, operand.Number}, Emit: emit.MovNum},
			{Kinds: []operand.Kind{operand.Item, operand.Item}, Emit: emit.MovCounter},
		},
	},
	"ADD": {
		Allowed: []string{Any},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Item, operand.Number}, Emit: emit.AddNum},
			{Kinds: []operand.Kind{operand.Item, operand.Item}, Emit: emit.AddCounter},
			{Kinds: []operand.Kind{operand.Item, operand.Item, operand.Item}, Emit: emit.Add2},
		},
	},
	"SUB": {
		Allowed: []string{Any},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Item, operand.Number}, Emit: emit.SubNum},
			{Kinds: []operand.Kind{operand.Item, operand.Item}, Emit: emit.SubCounter},
			{Kinds: []operand.Kind{operand.Item, operand.Item, operand.Item}, Emit: emit.Sub2},
		},
	},
	"MUL": {
		Allowed: []string{Any},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Item, operand.Number}, Emit: emit.MulNum},
			{Kinds: []operand.Kind{operand.Item, operand.Item}, Emit: emit.MulCounter},
			{Kinds: []operand.Kind{operand.Item, operand.Item, operand.Item}, Emit: emit.Mul2},
			{Kinds: []operand.Kind{operand.Item, operand.Item, operand.Number}, Emit: emit.Mul2Num},
		},
	},
	"DIV": {
		Allowed: []string{Any},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Item, operand.Number}, Emit: emit.DivNum},
			{Kinds: []operand.Kind{operand.Item, operand.Item}, Emit: emit.DivCounter},
			{Kinds: []operand.Kind{operand.Item, operand.Item, operand.Item}, Emit: emit.Div2},
			{Kinds: []operand.Kind{operand.Item, operand.Item, operand.Number}, Emit: emit.Div2Num},
		},
	},
	"FLDIV": {
		Allowed: []string{Any},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.Item, operand.Number}, Emit: emit.FldivNum},
			{Kinds: []operand.Kind{operand.Item, operand.Item}, Emit: emit.FldivCounter},
			{Kinds: []operand.Kind{operand.Item, operand.Item, operand.Item}, Emit: emit.Fldiv2},
			{Kinds: []operand.Kind{operand.Item, operand.Item, operand.Number}, Emit: emit.Fldiv2Num},
		},
	},
	"SPAWN": {
		Allowed:   []string{Any},
		Overloads: []Overload{{Kinds: []operand.Kind{operand.RoutineRef}, Emit: emit.Spawn}},
	},
	"SE":  compareSpec(emit.SpawnEqualsNum, emit.SpawnEqualsItem),
	"SNE": compareSpec(emit.SpawnNEqualsNum, emit.SpawnNEqualsItem),
	"SL":  compareSpec(emit.SpawnLessNum, emit.SpawnLessItem),
	"SLE": compareSpec(emit.SpawnLEqualsNum, emit.SpawnLEqualsItem),
	"SG":  compareSpec(emit.SpawnGreaterNum, emit.SpawnGreaterItem),
	"SGE": compareSpec(emit.SpawnGEqualsNum, emit.SpawnGEqualsItem),
	"FE":  forkSpec(emit.ForkEqualsNum, emit.ForkEqualsItem),
	"FNE": forkSpec(emit.ForkNEqualsNum, emit.ForkNEqualsItem),
	"FL":  forkSpec(emit.ForkLessNum, emit.ForkLessItem),
	"FLE": forkSpec(emit.ForkLEqualsNum, emit.ForkLEqualsItem),
	"FG":  forkSpec(emit.ForkGreaterNum, emit.ForkGreaterItem),
	"FGE": forkSpec(emit.ForkGEqualsNum, emit.ForkGEqualsItem),
}

func compareSpec(numEmit, itemEmit emit.Emitter) Spec {
	return Spec{
		Allowed: []string{Any},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.RoutineRef, operand.Item, operand.Number}, Emit: numEmit},
			{Kinds: []operand.Kind{operand.RoutineRef, operand.Item, operand.Item}, Emit: itemEmit},
		},
	}
}

func forkSpec(numEmit, itemEmit emit.Emitter) Spec {
	return Spec{
		Allowed: []string{Any},
		Overloads: []Overload{
			{Kinds: []operand.Kind{operand.RoutineRef, operand.RoutineRef, operand.Item, operand.Number}, Emit: numEmit},
			{Kinds: []operand.Kind{operand.RoutineRef, operand.RoutineRef, operand.Item, operand.Item}, Emit: itemEmit},
		},
	}
}
