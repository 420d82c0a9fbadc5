// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package validate type-checks a parsed program's instructions against
// isa.Table: it classifies each operand token, resolves the first
// matching overload, and checks the instruction is allowed in the
// routine it appears in. Nothing here bails out on the first problem —
// every instruction in every routine is checked so a single compile
// reports every diagnostic at once (spec.md §7).
package validate

import (
	"strings"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/isa"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/namespace"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/operand"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/parser"
)

// Checked is one instruction after successful validation: its resolved
// operand values and the emitter overload chosen for it.
type Checked struct {
	Mnemonic string
	Pos      *parser.Instruction
	Args     []operand.Value
	Overload isa.Overload
}

// Program is every routine's validated instructions, keyed by routine
// name, ready for assemble.Run.
type Program struct {
	Routines map[string][]Checked
}

// Run validates every instruction in ns against isa.Table, reporting
// diagnostics into bag. RoutineRef operands stay symbolic here;
// assemble.Run resolves them to group ids. The memory-instruction-before-MALLOC and
// multiple-MALLOC checks happen here rather than in assemble, matching
// the upstream "no memory has been initialised" / "cannot MALLOC more
// than once" checks in tasm_parser.py's parse_namespace — a front-end
// concern even though the resource they guard (emit.Context) only
// exists during code generation.
//
// bitPackingEnabled mirrors the compiler's --disable-bit-packing flag:
// per spec.md §4.2, the precision-risk warning on an over-range Number
// literal only fires when bit-packing is off, since a bit-packed
// MOV/INITMEM preserves the value exactly regardless of magnitude.
func Run(ns *namespace.Namespace, bag *diag.Bag, bitPackingEnabled bool) *Program {
	classifier := operand.NewClassifier(routineSet(ns))
	out := &Program{Routines: make(map[string][]Checked)}

	mallocSeen := false
	memoryInstructions := map[string]bool{
		"INITMEM": true, "MFUNC": true, "MREAD": true, "MWRITE": true, "MPTR": true, "MRESET": true,
	}

	for _, name := range ns.Order {
		r := ns.Routines[name]
		var checked []Checked

		for _, instr := range r.Instructions {
			spec, ok := isa.Table[instr.Mnemonic]
			if !ok {
				bag.Errorf(instr.Pos, diag.UnknownInstruction, name, instr.Line,
					"unknown instruction %q", instr.Mnemonic)
				continue
			}
			if !spec.AllowedIn(name) {
				bag.Errorf(instr.Pos, diag.DisallowedHere, name, instr.Line,
					"%q is not allowed in routine %q", instr.Mnemonic, name)
				continue
			}

			if instr.Mnemonic == "MALLOC" {
				if mallocSeen {
					bag.Errorf(instr.Pos, diag.MultipleMalloc, name, instr.Line,
						"MALLOC may only run once per program")
					continue
				}
				mallocSeen = true
			}
			if memoryInstructions[instr.Mnemonic] && !mallocSeen {
				bag.Errorf(instr.Pos, diag.MemoryBeforeMalloc, name, instr.Line,
					"%q used before MALLOC initialised memory", instr.Mnemonic)
				continue
			}

			args, overload, ok := resolveOverload(classifier, spec, instr, bag, name, bitPackingEnabled)
			if !ok {
				continue
			}

			checked = append(checked, Checked{Mnemonic: instr.Mnemonic, Pos: instr, Args: args, Overload: overload})
		}

		out.Routines[name] = checked
	}

	return out
}

func routineSet(ns *namespace.Namespace) map[string]bool {
	set := make(map[string]bool, len(ns.Order))
	for _, name := range ns.Order {
		set[name] = true
	}
	return set
}

func resolveOverload(c *operand.Classifier, spec isa.Spec, instr *parser.Instruction, bag *diag.Bag, routine string, bitPackingEnabled bool) ([]operand.Value, isa.Overload, bool) {
	var unresolvedRef string

	for _, overload := range spec.Overloads {
		if len(overload.Kinds) != len(instr.Args) {
			continue
		}

		values := make([]operand.Value, len(instr.Args))
		matched := true
		precisionRisk := false
		for i, kind := range overload.Kinds {
			ok, risky := c.Satisfies(kind, instr.Args[i])
			if !ok {
				// A routine-shaped operand that simply doesn't name a
				// declared routine gets its own diagnostic below instead
				// of the generic "no overload matched" one, even if a
				// later overload in the table would otherwise reject
				// this arity for an unrelated reason.
				if kind == operand.RoutineRef && unresolvedRef == "" {
					unresolvedRef = instr.Args[i]
				}
				matched = false
				break
			}
			precisionRisk = precisionRisk || risky
			values[i] = c.Parse(kind, instr.Args[i])
		}

		if matched {
			if precisionRisk && !bitPackingEnabled {
				bag.Warnf(instr.Pos, diag.NumericPrecisionRisk, routine, instr.Line,
					"%q operand exceeds the exact-integer range of a host counter; consider enabling bit-packing", instr.Mnemonic)
			}
			return values, overload, true
		}
	}

	if unresolvedRef != "" {
		bag.Errorf(instr.Pos, diag.UnknownRoutineRef, routine, instr.Line,
			"%q has no such routine label %q", instr.Mnemonic, unresolvedRef)
		return nil, isa.Overload{}, false
	}

	bag.Errorf(instr.Pos, diag.ArgumentMismatch, routine, instr.Line,
		"%q does not accept arguments (%s)", instr.Mnemonic, strings.Join(instr.Args, ", "))
	return nil, isa.Overload{}, false
}
