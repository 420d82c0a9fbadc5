// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package emit

import "github.com/ArrowSlashArrow/tasm-lang/tasm/operand"

// itemTypeOf returns the host item-type code for an operand.Value holding
// an Item or Counter (1 for counters, 2 for timers).
func itemTypeOf(v operand.Value) (itemType, id int) {
	return int(v.ItemKind), v.ItemID
}

// BitPack splits a number into the high/low 16-bit halves used to
// reconstruct values above the float32 mantissa's exact-integer boundary
// (spec.md §4.3): three item-edit triggers compute
// (big * 65536) + small by first assigning big, then multiplying the
// running total by 65536, then adding small.
func BitPack(n int64) (big, small int64) {
	return n / 65536, n % 65536
}
