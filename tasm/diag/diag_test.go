// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
)

func newTestBag(t *testing.T) (*Bag, *token.File) {
	t.Helper()
	fset := token.NewFileSet()
	f := fset.AddFile("test.tasm", fset.Base(), 100)
	f.SetLinesForContent([]byte(strings.Repeat("x\n", 10)))
	return NewBag(fset), f
}

func TestErrorfIsFatalByDefault(t *testing.T) {
	bag, f := newTestBag(t)
	bag.Errorf(f.Pos(0), UnknownInstruction, "main", "FOO 1", "unknown instruction %q", "FOO")

	require.True(t, bag.HasErrors())
	require.Equal(t, 1, bag.ErrorCount())
	require.False(t, bag.All()[0].Warning)
}

func TestWarnfIsNeverFatal(t *testing.T) {
	bag, f := newTestBag(t)
	bag.Warnf(f.Pos(0), ArgumentMismatch, "main", "FOO 1", "suspicious call")

	require.False(t, bag.HasErrors())
	require.Equal(t, 0, bag.ErrorCount())
	require.True(t, bag.All()[0].Warning)
}

func TestWarningKindsAreAlwaysNonFatalEvenViaErrorf(t *testing.T) {
	// DuplicateIOBlock is registered in warningKinds; Add must OR that in
	// regardless of the warning argument a caller passes.
	bag, f := newTestBag(t)
	bag.Add(f.Pos(0), DuplicateIOBlock, "main", "IOBLOCK 0", false, "duplicate io block")

	require.False(t, bag.HasErrors())
	require.True(t, bag.All()[0].Warning)
}

func TestSortOrdersByPositionStably(t *testing.T) {
	bag, f := newTestBag(t)
	bag.Errorf(f.Pos(5), UnknownInstruction, "b", "", "second")
	bag.Errorf(f.Pos(1), UnknownInstruction, "a", "", "first")
	bag.Errorf(f.Pos(1), UnknownInstruction, "a", "", "first-dup")

	bag.Sort()

	all := bag.All()
	require.Equal(t, "first", all[0].Message)
	require.Equal(t, "first-dup", all[1].Message)
	require.Equal(t, "second", all[2].Message)
}

func TestRenderSuppressesWarningsWhenRequested(t *testing.T) {
	bag, f := newTestBag(t)
	bag.Errorf(f.Pos(0), UnknownInstruction, "main", "FOO 1", "bad instruction")
	bag.Warnf(f.Pos(1), EmptyRoutine, "other", "", "empty routine")

	var out bytes.Buffer
	bag.Render(&out, true)

	require.Contains(t, out.String(), "ERROR")
	require.NotContains(t, out.String(), "WARNING")
}

func TestRenderIncludesWarningsByDefault(t *testing.T) {
	bag, f := newTestBag(t)
	bag.Warnf(f.Pos(1), EmptyRoutine, "other", "", "empty routine")

	var out bytes.Buffer
	bag.Render(&out, false)

	require.Contains(t, out.String(), "WARNING")
}

func TestKindStringCoversEveryKind(t *testing.T) {
	kinds := []Kind{
		IndentError, OrphanInstruction, DuplicateRoutine,
		UnknownInstruction, DisallowedHere, ArgumentMismatch, UnknownRoutineRef,
		MultipleMalloc, MemoryBeforeMalloc, DuplicateIOBlock, EmptyRoutine,
		MissingStart, NumericPrecisionRisk,
	}
	for _, k := range kinds {
		require.NotEqual(t, "Unknown", k.String(), "kind %d missing a String case", k)
	}
	require.Equal(t, "Unknown", Kind(999).String())
}
