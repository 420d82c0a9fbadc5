// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package emit generates object records for validated TASM instructions.
//
// Each instruction's emitter is a pure function of a Site (the layout
// position it was assigned, plus read-only compile options) and its
// operand.Values, except where it must thread state across the whole
// compilation — the memory machine's singleton allocation and the set of
// IOBLOCK positions already taken. That state lives in Context, the
// single value threaded through every emitter call in place of the
// original implementation's module-level globals (malloc_count,
// pointer_group, io_blocks, ...; see spec.md §9). The extra objects and
// extra groups an instruction's helper triggers consume are returned in
// its Result rather than kept in Context.
package emit

import "github.com/ArrowSlashArrow/tasm-lang/tasm/operand"

// Options are the compile-time knobs that change how emitters render
// triggers, all taken from CLI flags (spec.md §6).
type Options struct {
	Squish            bool // 1-unit emitter spacing instead of 30.
	BitPackingEnabled bool
	SpawnOrdered      bool
	SpawnDelay        bool
	NoRoutineText     bool
	MemPtrPos         int // PTRPOS counter id; MEMREG = MemPtrPos-1.
	CollBlockOffset   int // Shifts the memory machine's static collision block ids.
}

// DefaultOptions returns the compiler's defaults absent any flags.
func DefaultOptions() Options {
	return Options{
		BitPackingEnabled: true,
		SpawnOrdered:      true,
		SpawnDelay:        true,
		MemPtrPos:         9999,
	}
}

func (o Options) ptrposID() int { return o.MemPtrPos }
func (o Options) memregID() int { return o.MemPtrPos - 1 }

// Context carries the mutable, whole-compilation state a handful of
// instructions need beyond their own Site: the memory machine singleton
// (MALLOC may only run once) and the IOBLOCK positions already claimed.
// No emitter reads or writes UsedExtraGroup; extra-object/extra-group
// counts travel in Result.
type Context struct {
	Opts Options

	MallocCount    int
	MemorySize     int
	StartingCtr    int
	PointerGroup   int
	ReadGroup      int
	WriteGroup     int
	ResetBlock     int
	UsedExtraGroup int

	ioBlocks map[int]bool
}

// NewContext returns a Context ready for a fresh compilation.
func NewContext(opts Options) *Context {
	return &Context{Opts: opts, ioBlocks: make(map[int]bool)}
}

// IOBlockTaken reports whether position already has an IOBLOCK, recording
// it as taken if not (mirrors ioblock()'s io_blocks list in gdobj.py).
func (c *Context) IOBlockTaken(position int) bool {
	if c.ioBlocks[position] {
		return true
	}
	c.ioBlocks[position] = true
	return false
}

// Site is the per-instruction placement an emitter renders into: its
// assigned group and the cursor position within it, plus enough of the
// surrounding namespace layout for emitters that borrow "extra" groups
// (the compare/fork helper-spawn indirection) or need to know how many
// instructions already share this group (to decide whether that
// indirection is needed at all).
type Site struct {
	Group       int
	Index       int // Position within the routine, 0-based.
	NextFree    int // First group id not yet claimed by any routine.
	Lengths     map[int]int // Group id -> instruction count in that group.
	SubroutineCount int // Number of routines in the namespace, for memory layout.
}

// Position returns the (x, y) an ordinary instruction in this Site
// renders at: x advances by the emitter spacing (1 unit when
// Options.Squish is set, 30 otherwise) per instruction index within the
// group; y is fixed per
// group (spec.md §5).
func (s Site) Position(opts Options) (x, y float64) {
	spacing := 30.0
	if opts.Squish {
		spacing = 1.0
	}
	x = 105 + spacing*float64(s.Index)
	y = float64(s.Group)*30 + 75
	return x, y
}

// NeedsHelperSpawn reports whether the group targetGroup holds more than
// one instruction, the condition under which a compare/fork trigger must
// route through a one-frame helper spawn trigger instead of activating
// targetGroup directly (spec.md §4.7): activating a multi-instruction
// group straight from a trigger race-conditions its members against each
// other, so indirection buys a 1/240s settle frame.
func (s Site) NeedsHelperSpawn(targetGroup int) bool {
	return s.Lengths[targetGroup] > 1
}

// Result is what an emitter produces: the concatenated object record
// text, plus how many extra objects/groups beyond the routine's own
// slot it consumed (spec.md §5's layout-cursor accounting).
type Result struct {
	Text        string
	ExtraObjects int
	ExtraGroups  int
}

// Emitter renders one validated instruction's object records.
type Emitter func(ctx *Context, site Site, args []operand.Value) (Result, error)
