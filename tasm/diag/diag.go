// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package diag collects and renders TASM compiler diagnostics.
//
// The teacher's parser (tools/ruse/parser) accumulates errors in a
// go/scanner.ErrorList and only formats them once parsing finishes. TASM's
// diagnostics carry more structure than a scanner.Error does — a Kind, an
// optional routine name, whether they are fatal — so this package is a
// small sibling of that idea rather than a direct reuse of scanner.ErrorList.
package diag

import (
	"fmt"
	"io"
	"sort"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
)

// Kind identifies the category of a diagnostic, per spec.md §7.
type Kind int

const (
	// Parse-phase.
	IndentError Kind = iota
	OrphanInstruction
	DuplicateRoutine

	// Validate-phase.
	UnknownInstruction
	DisallowedHere
	ArgumentMismatch
	UnknownRoutineRef

	// Semantic-phase.
	MultipleMalloc
	MemoryBeforeMalloc
	DuplicateIOBlock
	EmptyRoutine
	MissingStart
	NumericPrecisionRisk
)

func (k Kind) String() string {
	switch k {
	case IndentError:
		return "IndentError"
	case OrphanInstruction:
		return "OrphanInstruction"
	case DuplicateRoutine:
		return "DuplicateRoutine"
	case UnknownInstruction:
		return "UnknownInstruction"
	case DisallowedHere:
		return "DisallowedHere"
	case ArgumentMismatch:
		return "ArgumentMismatch"
	case UnknownRoutineRef:
		return "UnknownRoutineRef"
	case MultipleMalloc:
		return "MultipleMalloc"
	case MemoryBeforeMalloc:
		return "MemoryBeforeMalloc"
	case DuplicateIOBlock:
		return "DuplicateIOBlock"
	case EmptyRoutine:
		return "EmptyRoutine"
	case MissingStart:
		return "MissingStart"
	case NumericPrecisionRisk:
		return "NumericPrecisionRisk"
	default:
		return "Unknown"
	}
}

// warningKinds are always non-fatal, regardless of how they're added.
var warningKinds = map[Kind]bool{
	DuplicateIOBlock:     true,
	EmptyRoutine:         true,
	MissingStart:         true,
	NumericPrecisionRisk: true,
}

// Diagnostic is a single compiler message tied to a source position.
type Diagnostic struct {
	Pos        token.Pos
	Kind       Kind
	Message    string
	Routine    string // Empty when the diagnostic isn't routine-scoped.
	SourceLine string // The raw source line the diagnostic refers to, if any.
	Warning    bool
}

// Bag accumulates diagnostics across every phase of a single compilation.
// Nothing in Bag bails out early: every phase keeps running so that a
// single compile reports every problem at once, per spec.md §7.
type Bag struct {
	Fset  *token.FileSet
	diags []Diagnostic
}

// NewBag returns an empty diagnostic bag bound to fset.
func NewBag(fset *token.FileSet) *Bag {
	return &Bag{Fset: fset}
}

// Add appends a diagnostic. Kinds registered in warningKinds are always
// non-fatal; everything else is fatal unless warning is explicitly true.
func (b *Bag) Add(pos token.Pos, kind Kind, routine, sourceLine string, warning bool, format string, args ...any) {
	b.diags = append(b.diags, Diagnostic{
		Pos:        pos,
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Routine:    routine,
		SourceLine: sourceLine,
		Warning:    warning || warningKinds[kind],
	})
}

// Errorf is a convenience for Add with warning=false.
func (b *Bag) Errorf(pos token.Pos, kind Kind, routine, sourceLine, format string, args ...any) {
	b.Add(pos, kind, routine, sourceLine, false, format, args...)
}

// Warnf is a convenience for Add with warning=true.
func (b *Bag) Warnf(pos token.Pos, kind Kind, routine, sourceLine, format string, args ...any) {
	b.Add(pos, kind, routine, sourceLine, true, format, args...)
}

// All returns every diagnostic added so far, in insertion order.
func (b *Bag) All() []Diagnostic {
	return b.diags
}

// ErrorCount returns the number of fatal (non-warning) diagnostics.
func (b *Bag) ErrorCount() int {
	n := 0
	for _, d := range b.diags {
		if !d.Warning {
			n++
		}
	}
	return n
}

// HasErrors reports whether at least one fatal diagnostic was recorded.
// A compilation with HasErrors() true must not write any output, per
// spec.md §7's "a nonzero error count yields no output write" contract.
func (b *Bag) HasErrors() bool {
	return b.ErrorCount() > 0
}

// Sort orders diagnostics by source position, stable on insertion order
// for diagnostics sharing a position.
func (b *Bag) Sort() {
	sort.SliceStable(b.diags, func(i, j int) bool {
		return b.diags[i].Pos < b.diags[j].Pos
	})
}

// Render writes every diagnostic to w using the five-column line-number
// gutter and pointer line described in spec.md §7. Warnings are included
// unless suppressWarnings is set (the CLI's --no-warn flag).
func (b *Bag) Render(w io.Writer, suppressWarnings bool) {
	for _, d := range b.diags {
		if suppressWarnings && d.Warning {
			continue
		}

		position := b.Fset.Position(d.Pos)
		gutter := fmt.Sprintf("%5d", position.Line)
		pad := "     " // len(gutter) columns, always 5 wide like the gutter.

		label := "WARNING"
		if !d.Warning {
			label = "ERROR"
		}

		if d.Routine != "" {
			fmt.Fprintf(w, "%s | %s:\n", pad, d.Routine)
		}
		fmt.Fprintf(w, "%s |     %s\n", gutter, d.SourceLine)
		fmt.Fprintf(w, "%s + %s: %s\n\n", pad, label, d.Message)
	}
}
