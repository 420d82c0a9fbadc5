// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package parser

import "fmt"

// DefaultPointerPosID is PTRPOS_ID's default value, per spec.md §3.
const DefaultPointerPosID = 9999

// MaxPointerPosID is the ceiling PTRPOS_ID may be configured to.
const MaxPointerPosID = 9999

// Aliases builds the compile-time alias table for MEMREG and PTRPOS. The
// two predefined aliases resolve to the counter ids used by the memory
// machine (see emit.Malloc): MEMREG_ID = PTRPOS_ID - 1.
func Aliases(ptrposID int) map[string]string {
	memregID := ptrposID - 1
	return map[string]string{
		"MEMREG": fmt.Sprintf("C%d", memregID),
		"PTRPOS": fmt.Sprintf("C%d", ptrposID),
	}
}
