// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package operand

import "strconv"

// Classifier resolves RoutineRef and Group operands against the set of
// routine labels declared in the source being compiled; every other kind
// is a pure function of the token text.
type Classifier struct {
	Routines map[string]bool
}

// NewClassifier returns a Classifier that recognises the given routine
// names as valid RoutineRef/Group targets.
func NewClassifier(routines map[string]bool) *Classifier {
	return &Classifier{Routines: routines}
}

// Satisfies reports whether tok is a valid literal of the given kind. The
// second return value is only meaningful for Number: it reports whether
// the literal risks a host-side rounding error (see spec.md §4.2).
func (c *Classifier) Satisfies(kind Kind, tok string) (ok bool, precisionRisk bool) {
	switch kind {
	case Int:
		return IsInt(tok), false
	case Number:
		return IsNumber(tok)
	case IntArray:
		return IsIntArray(tok), false
	case Str:
		return true, false
	case Item:
		return IsItem(tok), false
	case Counter:
		return IsCounter(tok), false
	case RoutineRef:
		return c.Routines[tok], false
	case Group:
		if c.Routines[tok] {
			return true, false
		}
		return IsInt(tok), false
	default:
		return false, false
	}
}

// Parse converts tok into a Value under the assumption that
// Satisfies(kind, tok) has already reported true.
func (c *Classifier) Parse(kind Kind, tok string) Value {
	v := Value{Kind: kind, Raw: tok}
	switch kind {
	case Int:
		n, _ := parseInt(tok)
		v.Int = int32(n)
	case Number:
		if tok == MemSizeConstant {
			v.Str = MemSizeConstant
			return v
		}
		n, _ := parseNumber(tok)
		v.Number = n
	case IntArray:
		ints, _ := ParseIntArray(tok)
		v.Ints = ints
	case Str:
		v.Str = tok
	case Item:
		item, _ := ParseItem(tok)
		v.ItemKind = item.ItemKind
		v.ItemID = item.ItemID
	case Counter:
		n, _ := parseInt(tok[1:])
		v.ItemKind = ItemCounter
		v.ItemID = int(n)
	case RoutineRef:
		v.Routine = tok
	case Group:
		if c.Routines[tok] {
			v.IsRoutineGroup = true
			v.Routine = tok
		} else {
			n, _ := parseInt(tok)
			v.Group = int(n)
		}
	}
	return v
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
