// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package parser turns TASM source lines into an ordered list of routines,
// each holding its raw (not yet type-checked) instructions.
//
// Parsing is a two-pass scan, as described in spec.md §4.1: the first pass
// collects every routine label so that forward references from SPAWN, SE,
// FE and friends type-check against labels declared later in the file; the
// second pass builds the instruction list proper.
package parser

import (
	"strings"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/lexer"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
)

// Instruction is one TASM instruction: a mnemonic and its raw,
// comma-separated argument fields, not yet resolved to operand.Values.
type Instruction struct {
	Mnemonic string
	Pos      token.Pos
	Args     []string
	Line     string // The source line, for diagnostics.
}

// Routine is a labelled, ordered sequence of instructions.
type Routine struct {
	Name         string
	Pos          token.Pos
	Instructions []*Instruction
}

// Program is the result of parsing a TASM source file: every routine, in
// declaration order.
type Program struct {
	Routines []*Routine
}

// RoutineNames returns the set of routine names declared by lines ending
// in ":", regardless of duplicates — used for the forward-reference pass.
func RoutineNames(lines []lexer.Line) map[string]bool {
	names := make(map[string]bool)
	for _, l := range lines {
		if name, ok := routineHeader(l.Text); ok {
			names[name] = true
		}
	}
	return names
}

func routineHeader(text string) (name string, ok bool) {
	if text == "" || !strings.HasSuffix(text, ":") {
		return "", false
	}
	return text[:len(text)-1], true
}

// Parse scans src into a Program, substituting aliases into every
// instruction's argument field before splitting it into operands, and
// recording parse errors (IndentError, OrphanInstruction, DuplicateRoutine)
// in bag. Parse never stops at the first error: every line is visited so
// a full diagnostic pass completes, per spec.md §7.
func Parse(fset *token.FileSet, filename string, src []byte, aliases map[string]string, bag *diag.Bag) *Program {
	lines := lexer.Scan(fset, filename, src)

	prog := &Program{}
	var current *Routine
	seen := make(map[string]*Routine)

	for _, l := range lines {
		text := l.Text
		if text == "" {
			continue
		}

		if name, ok := routineHeader(text); ok {
			if existing, dup := seen[name]; dup {
				bag.Errorf(l.Pos, diag.DuplicateRoutine, "", l.Raw,
					"routine %q was already defined at line %d", name, fset.Position(existing.Pos).Line)
				current = existing
				continue
			}

			r := &Routine{Name: name, Pos: l.Pos}
			seen[name] = r
			prog.Routines = append(prog.Routines, r)
			current = r
			continue
		}

		indent := countLeadingSpaces(l.Raw)
		if indent != 4 {
			bag.Errorf(l.Pos, diag.IndentError, routineName(current), l.Raw,
				"instructions must be indented by exactly four spaces")
			continue
		}

		if current == nil {
			bag.Errorf(l.Pos, diag.OrphanInstruction, "", l.Raw,
				"instructions must be under a routine")
			continue
		}

		body := strings.TrimPrefix(text, "    ")
		mnemonic, argField := splitInstruction(body)
		argField = substituteAliases(argField, aliases)

		current.Instructions = append(current.Instructions, &Instruction{
			Mnemonic: mnemonic,
			Pos:      l.Pos,
			Args:     splitArgs(argField),
			Line:     l.Raw,
		})
	}

	return prog
}

func routineName(r *Routine) string {
	if r == nil {
		return ""
	}
	return r.Name
}

func countLeadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// splitInstruction separates a de-indented instruction line into its
// mnemonic and the raw remainder of the argument field.
func splitInstruction(body string) (mnemonic, argField string) {
	if i := strings.IndexByte(body, ' '); i >= 0 {
		return body[:i], body[i+1:]
	}
	return body, ""
}

// substituteAliases performs the plain textual substitution described in
// spec.md §4.1: every occurrence of an alias name is replaced by its
// expansion before the argument field is split into operands.
func substituteAliases(argField string, aliases map[string]string) string {
	for name, expansion := range aliases {
		argField = strings.ReplaceAll(argField, name, expansion)
	}
	return argField
}

// splitArgs splits a comma-space-separated argument field into its
// operands, dropping any empty element produced by a trailing comma.
func splitArgs(argField string) []string {
	if argField == "" {
		return nil
	}
	parts := strings.Split(argField, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
