// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/operand"
)

// TestForkFalseGroupTargetsFalseGroup pins down the corrected behavior
// described in DESIGN.md's Open Question #1: both the (routine, routine,
// item, item) and (routine, routine, item, number) fork overloads must
// route their false-branch helper spawn at falseGroup, not trueGroup.
func TestForkFalseGroupTargetsFalseGroup(t *testing.T) {
	ctx := NewContext(DefaultOptions())
	// Both target groups hold more than one instruction, so both sides
	// need the helper-spawn indirection.
	site := Site{Group: 5, Index: 0, NextFree: 10, Lengths: map[int]int{2: 3, 3: 3}}

	itemArgs := []operand.Value{
		{Kind: operand.RoutineRef, Group: 2},
		{Kind: operand.RoutineRef, Group: 3},
		{Kind: operand.Item, ItemID: 1},
		{Kind: operand.Item, ItemID: 2},
	}
	numberArgs := []operand.Value{
		{Kind: operand.RoutineRef, Group: 2},
		{Kind: operand.RoutineRef, Group: 3},
		{Kind: operand.Item, ItemID: 1},
		{Kind: operand.Number, Number: 5},
	}

	itemResult, err := forkCmp(cmpEQ)(ctx, site, itemArgs)
	require.NoError(t, err)
	numberResult, err := forkCmp(cmpEQ)(ctx, site, numberArgs)
	require.NoError(t, err)

	for _, result := range []Result{itemResult, numberResult} {
		require.Equal(t, 2, result.ExtraGroups, "both true and false sides need a helper")
		// Each false helper spawn targets falseGroup (3), not trueGroup (2).
		falseHelperCount := strings.Count(result.Text, ",51,3")
		require.Equal(t, 1, falseHelperCount, "false helper must target group 3: %s", result.Text)
	}
}

func TestForkCompareSkipsHelperWhenTargetIsSingleInstruction(t *testing.T) {
	ctx := NewContext(DefaultOptions())
	site := Site{Group: 5, NextFree: 10, Lengths: map[int]int{2: 1, 3: 1}}

	result := forkCompare(ctx, site, 2, 3, 0, 1, 0, 2, false, 0, cmpEQ)

	require.Equal(t, 0, result.ExtraGroups)
	require.Contains(t, result.Text, ",51,2")
	require.Contains(t, result.Text, ",71,3")
}

func TestSpawnCompareUsesSevenPointFiveOffsetHelper(t *testing.T) {
	ctx := NewContext(DefaultOptions())
	site := Site{Group: 1, NextFree: 8, Lengths: map[int]int{0: 5}}

	result := spawnCompare(ctx, site, 0, 0, 1, 0, 2, false, 0, cmpEQ)

	require.Equal(t, 1, result.ExtraGroups)
	require.Contains(t, result.Text, ",51,8")
	// Group 1 sits at y=105: the compare at 105+7.5, the helper at 105-7.5.
	require.Contains(t, result.Text, ",3,112.5,")
	require.Contains(t, result.Text, ",3,97.5,")
}

func TestHelperDelayRespectsSpawnDelayOption(t *testing.T) {
	require.Equal(t, 0.0042, helperDelay(Options{SpawnDelay: true}))
	require.Equal(t, 0.0, helperDelay(Options{SpawnDelay: false}))
}
