// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package isa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/operand"
)

func TestAllowedInWildcard(t *testing.T) {
	require.True(t, Table["MOV"].AllowedIn("main"))
	require.True(t, Table["MOV"].AllowedIn("anything"))
}

func TestAllowedInRestrictedToInit(t *testing.T) {
	spec := Table["MALLOC"]
	require.True(t, spec.AllowedIn(Init))
	require.False(t, spec.AllowedIn("main"))
}

func TestResolveFirstMatchWins(t *testing.T) {
	spec := Table["MOV"]
	_, ok := spec.Resolve([]operand.Kind{operand.Item, operand.Number})
	require.True(t, ok)

	_, ok = spec.Resolve([]operand.Kind{operand.Item, operand.Item})
	require.True(t, ok)

	_, ok = spec.Resolve([]operand.Kind{operand.Item})
	require.False(t, ok, "MOV has no single-operand overload")
}

func TestResolveExactArityOnly(t *testing.T) {
	spec := Table["ADD"]
	_, ok := spec.Resolve([]operand.Kind{operand.Item, operand.Item, operand.Item, operand.Item})
	require.False(t, ok, "ADD's widest overload takes exactly 3 operands")
}

func TestForkSpecAllowsBothFourOperandOverloads(t *testing.T) {
	spec := Table["FE"]

	_, ok := spec.Resolve([]operand.Kind{operand.RoutineRef, operand.RoutineRef, operand.Item, operand.Number})
	require.True(t, ok)

	_, ok = spec.Resolve([]operand.Kind{operand.RoutineRef, operand.RoutineRef, operand.Item, operand.Item})
	require.True(t, ok)
}

func TestCompareSpecRejectsForkArity(t *testing.T) {
	spec := Table["SE"]
	_, ok := spec.Resolve([]operand.Kind{operand.RoutineRef, operand.RoutineRef, operand.Item, operand.Item})
	require.False(t, ok, "SE is a 3-operand spawn-only compare, not a fork")
}
