// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package objfmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumFormatsWholeNumbersWithoutDecimal(t *testing.T) {
	require.Equal(t, "5", Num(5))
	require.Equal(t, "-30", Num(-30))
	require.Equal(t, "0", Num(0))
}

func TestNumFormatsFractionsInShortestForm(t *testing.T) {
	require.Equal(t, "0.5", Num(0.5))
	require.Equal(t, "0.3", Num(0.3))
}

func TestBlockOmitsDefaultScale(t *testing.T) {
	record := Block(105, 75, 1, 1, nil)
	require.Equal(t, "1,1,2,105,3,75;", record)
}

func TestBlockIncludesNonDefaultScaleAndGroups(t *testing.T) {
	record := Block(105, 75, 2, 0.5, []int{3, 4})
	require.Equal(t, "1,1,2,105,3,75,128,2,129,0.5,57,3.4;", record)
}

func TestSpawnOmitsZeroDelayAndID(t *testing.T) {
	record := Spawn(105, 75, 1, 0.5, 0, []int{1}, true, false, true, 0, 0, 0, false, false, false)
	require.Contains(t, record, "1,1268,")
	require.NotContains(t, record, ",63,")
	require.NotContains(t, record, ",51,")
}

func TestSpawnIncludesDelayAndTarget(t *testing.T) {
	record := Spawn(105, 75, 1, 0.5, 0, []int{1}, true, false, true, 7, 0.0042, 0, false, true, false)
	require.Contains(t, record, ",51,7")
	require.Contains(t, record, ",63,0.0042")
	require.Contains(t, record, ",441,1")
}

func TestCompareOmitsZeroTrueFalseIDs(t *testing.T) {
	record := Compare(105, 75, 1, 0.3, 0, []int{1}, true, false, true,
		0, 0, 1, 2, 1, 1, 1, 1, 3, 3, 0, 0, 0, 0, 0, 0)
	require.NotContains(t, record, ",51,")
	require.NotContains(t, record, ",71,")
}

func TestCompareIncludesTrueAndFalseIDs(t *testing.T) {
	record := Compare(105, 75, 1, 0.3, 0, []int{1}, true, false, true,
		5, 6, 1, 2, 1, 1, 1, 1, 3, 3, 0, 0, 0, 0, 0, 0)
	require.Contains(t, record, ",51,5")
	require.Contains(t, record, ",71,6")
}

func TestTextBase64EncodesBody(t *testing.T) {
	record := Text(0, 0, 0.5, 0.5, 0, nil, "hi", 0)
	require.Contains(t, record, ",31,aGk=")
}
