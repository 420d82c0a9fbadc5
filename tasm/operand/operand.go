// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package operand classifies TASM operand tokens and carries their
// runtime-inferred values through validation and code generation.
//
// TASM operands are dynamically typed in the original implementation: the
// same text field is tried against each candidate kind in turn until one
// accepts it. This package is the tagged-variant replacement described in
// spec.md §9: a Kind enumeration, a set of classification predicates, and
// a Value capable of holding any one of them.
package operand

import (
	"strconv"
	"strings"
)

// Kind identifies which of the TASM operand shapes a token satisfies.
type Kind int

const (
	Int Kind = iota
	Number
	IntArray
	Str
	Item
	Counter
	RoutineRef
	Group
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Number:
		return "number"
	case IntArray:
		return "int_array"
	case Str:
		return "str"
	case Item:
		return "item"
	case Counter:
		return "counter"
	case RoutineRef:
		return "routine"
	case Group:
		return "group"
	default:
		return "unknown"
	}
}

// ItemKind distinguishes the two addressable item namespaces in the host
// engine: counters and timers.
type ItemKind int

const (
	ItemCounter ItemKind = 1
	ItemTimer   ItemKind = 2
)

// MemSizeConstant is the one named constant TASM recognises in
// number-typed operand positions; it is resolved post-parse to the sole
// MALLOC instruction's argument (see assemble.Run).
const MemSizeConstant = "MEMSIZE"

// Int32Min and Int32Max bound the TASM "int" kind, per spec.md §3: the
// range is the closed-open interval [-2^31, 2^31).
const (
	Int32Min = -2147483648
	Int32Max = 2147483648
)

// PrecisionBoundary is the largest magnitude a float32-backed host counter
// can hold without rounding error; numbers larger than this need the
// bit-packing decomposition (see emit.BitPack) or they silently lose
// precision on the host.
const PrecisionBoundary = 16777216

// IsInt reports whether s is a decimal integer literal within the TASM
// "int" range.
func IsInt(s string) bool {
	_, ok := parseInt(s)
	return ok
}

func parseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if n < Int32Min || n >= Int32Max {
		return 0, false
	}
	return n, true
}

// IsNumber reports whether s is a valid TASM "number" literal: any
// floating point literal, or the MEMSIZE constant. precisionRisk is true
// when the literal's magnitude exceeds PrecisionBoundary, the condition
// that triggers the NumericPrecisionRisk warning when bit-packing is off.
func IsNumber(s string) (ok bool, precisionRisk bool) {
	if s == MemSizeConstant {
		return true, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, false
	}
	if n < -PrecisionBoundary || n > PrecisionBoundary {
		return true, true
	}
	return true, false
}

// IsCounter reports whether s is a counter item written with an
// upper-case "C" prefix (the strict form used when a schema position
// specifically demands a counter, as opposed to the more permissive
// "item" kind).
func IsCounter(s string) bool {
	if len(s) < 2 || s[0] != 'C' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 10, 32)
	return err == nil
}

// IsItem reports whether s names an item: a case-insensitive "C" or "T"
// prefix followed by an id in [1, 65535].
func IsItem(s string) bool {
	_, ok := ParseItem(s)
	return ok
}

// ParseItem parses s as an item token, returning its kind and id.
func ParseItem(s string) (item Value, ok bool) {
	if len(s) < 2 {
		return Value{}, false
	}

	var kind ItemKind
	switch s[0] {
	case 'C', 'c':
		kind = ItemCounter
	case 'T', 't':
		kind = ItemTimer
	default:
		return Value{}, false
	}

	id, err := strconv.ParseInt(s[1:], 10, 64)
	if err != nil || id <= 0 || id >= 65536 {
		return Value{}, false
	}

	return Value{Kind: Item, ItemKind: kind, ItemID: int(id)}, true
}

// IsIntArray reports whether s is a comma-separated list of integers with
// no surrounding spaces, e.g. "1,2,3".
func IsIntArray(s string) bool {
	_, ok := ParseIntArray(s)
	return ok
}

// ParseIntArray parses a comma-separated integer list.
func ParseIntArray(s string) ([]int32, bool) {
	parts := strings.Split(s, ",")
	out := make([]int32, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, false
		}
		out = append(out, int32(n))
	}
	return out, true
}

// Value holds the value of an operand once its kind has been determined.
type Value struct {
	Kind           Kind
	Raw            string
	Int            int32
	Number         float64
	Ints           []int32
	Str            string
	ItemKind       ItemKind
	ItemID         int
	Routine        string
	Group          int
	IsRoutineGroup bool
}
