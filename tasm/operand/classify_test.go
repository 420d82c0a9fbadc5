// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package operand

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifierSatisfiesRoutineRef(t *testing.T) {
	c := NewClassifier(map[string]bool{"main": true})

	ok, _ := c.Satisfies(RoutineRef, "main")
	require.True(t, ok)

	ok, _ = c.Satisfies(RoutineRef, "other")
	require.False(t, ok)
}

func TestClassifierSatisfiesGroupAcceptsRoutineOrInt(t *testing.T) {
	c := NewClassifier(map[string]bool{"main": true})

	ok, _ := c.Satisfies(Group, "main")
	require.True(t, ok)

	ok, _ = c.Satisfies(Group, "42")
	require.True(t, ok)

	ok, _ = c.Satisfies(Group, "not_a_routine")
	require.False(t, ok)
}

func TestClassifierParseGroupRoutineVsLiteral(t *testing.T) {
	c := NewClassifier(map[string]bool{"main": true})

	v := c.Parse(Group, "main")
	require.True(t, v.IsRoutineGroup)
	require.Equal(t, "main", v.Routine)

	v = c.Parse(Group, "7")
	require.False(t, v.IsRoutineGroup)
	require.Equal(t, 7, v.Group)
}

func TestClassifierParseNumberMemSizeConstant(t *testing.T) {
	c := NewClassifier(nil)
	v := c.Parse(Number, MemSizeConstant)
	require.Equal(t, MemSizeConstant, v.Str)
	require.Zero(t, v.Number)
}

func TestClassifierParseCounterStripsPrefix(t *testing.T) {
	c := NewClassifier(nil)
	v := c.Parse(Counter, "C123")
	require.Equal(t, ItemCounter, v.ItemKind)
	require.Equal(t, 123, v.ItemID)
}

func TestClassifierParseItem(t *testing.T) {
	c := NewClassifier(nil)
	v := c.Parse(Item, "T9")
	require.Equal(t, ItemTimer, v.ItemKind)
	require.Equal(t, 9, v.ItemID)
}
