// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package assemble drives code generation: it walks a validated program
// in namespace order, resolves each instruction's operands against the
// namespace and the memory machine's live state, invokes its chosen
// emitter, and strings every object record together into the final
// compiled object stream (spec.md §5, grounded on parse_namespace in
// tasm_parser.py).
package assemble

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/emit"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/namespace"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/objfmt"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/operand"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/validate"
)

// Options are the assemble-time knobs layered on top of emit.Options:
// where the namespace sits in the final level's group space, and what
// the assembler itself (rather than any one instruction) renders. The
// collision-block offset (--coll-block-offset) lives on Emit directly,
// since it only ever affects the memory machine's own emitters.
type Options struct {
	Emit emit.Options

	GroupOffset        int  // Shifts every routine's group id; >100 adds a barrier block.
	CounterOffset      int  // Shifts every item id an instruction references.
	RoutineText        bool // Emit a "<group>: <name>" debug label per routine.
	TimeWarp           bool // Append the global time-warp trigger (requires Emit.Squish).
	StartGroupOverride int  // -1 means "use the namespace's _start group".
}

// DefaultOptions mirrors emit.DefaultOptions with assemble's own knobs at
// their no-op defaults.
func DefaultOptions() Options {
	return Options{Emit: emit.DefaultOptions(), StartGroupOverride: -1}
}

// Result is a finished compilation: the object stream plus bookkeeping
// useful for a CLI's summary output.
type Result struct {
	Objects     string
	ObjectCount int
	GroupsUsed  int
}

// Run assembles ns's validated instructions into a compiled object
// stream. If bag already holds a fatal diagnostic, Run does no codegen
// at all and returns a zero Result — spec.md §7's "a nonzero error
// count yields no output write" contract applies here, not just at the
// CLI boundary, so callers never need to re-check bag themselves.
func Run(ns *namespace.Namespace, prog *validate.Program, bag *diag.Bag, opts Options) Result {
	if bag.HasErrors() {
		return Result{}
	}

	ctx := emit.NewContext(opts.Emit)
	nextFree := ns.GroupCount

	// Lengths is keyed by the group ids instructions actually resolve a
	// RoutineRef target to — i.e. after --group-offset — since that's
	// what NeedsHelperSpawn is asked about; ns.Lengths reports the
	// namespace's own pre-offset ids.
	lengths := make(map[int]int, len(ns.Routines))
	for _, r := range ns.Routines {
		lengths[r.Group+opts.GroupOffset] = len(r.Instructions)
	}

	var objs []string
	appendText := func(s string) {
		if s != "" {
			objs = append(objs, s)
		}
	}

	startGroup := opts.StartGroupOverride
	if startGroup < 0 {
		startGroup = ns.StartGroup
	}
	var startBlock string
	if startGroup >= 0 {
		startArgs := []operand.Value{
			{Kind: operand.RoutineRef, Group: startGroup + opts.GroupOffset},
			{Kind: operand.Int, Int: 0},
			{Kind: operand.Str, Str: "start"},
		}
		result, err := emit.IOBlock(ctx, emit.Site{}, startArgs)
		if err == nil {
			startBlock = result.Text
		}
	}

	for _, name := range ns.Order {
		routine := ns.Routines[name]
		group := routine.Group + opts.GroupOffset

		if opts.RoutineText {
			appendText(objfmt.Text(0, float64(group)*30+75, 0.5, 0.5, 0, nil,
				fmt.Sprintf("%d: %s", group, name), 0))
		}

		index := 0
		for _, instr := range prog.Routines[name] {
			args := resolveArgs(ns, ctx, instr.Args, opts)

			site := emit.Site{
				Group:           group,
				Index:           index,
				NextFree:        nextFree + opts.GroupOffset,
				Lengths:         lengths,
				SubroutineCount: len(ns.Order),
			}

			result, err := instr.Overload.Emit(ctx, site, args)
			if errors.Is(err, emit.ErrDuplicateIOBlock) {
				bag.Warnf(instr.Pos.Pos, diag.DuplicateIOBlock, name, instr.Pos.Line,
					"%q: %s", instr.Mnemonic, err)
				continue
			} else if err != nil {
				bag.Errorf(instr.Pos.Pos, diag.ArgumentMismatch, name, instr.Pos.Line,
					"%q: %s", instr.Mnemonic, err)
				continue
			}

			appendText(result.Text)
			index += 1 + result.ExtraObjects
			nextFree += result.ExtraGroups
		}
	}

	appendText(startBlock)

	if opts.GroupOffset > 100 {
		appendText(fmt.Sprintf("1,1,2,105,3,%s,155,2,57,99;", objfmt.Num(30*float64(opts.GroupOffset))))
	}
	if opts.Emit.Squish && opts.TimeWarp {
		appendText(objfmt.TimeWarp(-75, 15, 5))
	}

	out := ";" + strings.Join(objs, "")
	return Result{
		Objects:     out,
		ObjectCount: strings.Count(out, ";") - 1, // Every record ends in ";"; the first ";" is the stream prefix.
		GroupsUsed:  nextFree - 1,
	}
}

// resolveArgs substitutes the namespace- and memory-dependent operand
// forms validate.Run left symbolic: a RoutineRef becomes the target's
// group id, a Number holding MEMSIZE becomes the live memory size, and
// every Item's id is shifted by the compiler's counter offset.
func resolveArgs(ns *namespace.Namespace, ctx *emit.Context, args []operand.Value, opts Options) []operand.Value {
	out := make([]operand.Value, len(args))
	for i, v := range args {
		switch v.Kind {
		case operand.RoutineRef:
			if group, ok := ns.GroupOf(v.Routine); ok {
				v.Group = group + opts.GroupOffset
			}
		case operand.Number:
			if v.Str == operand.MemSizeConstant {
				v.Number = float64(ctx.MemorySize)
			}
		case operand.Item:
			v.ItemID += opts.CounterOffset
		}
		out[i] = v
	}
	return out
}
