// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package emit

import (
	"github.com/ArrowSlashArrow/tasm-lang/tasm/objfmt"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/operand"
)

// Arithmetic operator codes, shared by every item-edit-backed arithmetic
// emitter (spec.md §4.3).
const (
	opMov   = 0
	opAdd   = 1
	opSub   = 2
	opMul   = 3
	opDiv   = 4
	opFldiv = 5
)

func signMode(operator int) int {
	if operator == opFldiv {
		return 2
	}
	return 0
}

func assignOperator(operator int) int {
	if operator > opDiv {
		return opDiv
	}
	return operator
}

// threeCounters renders result OP= (item1 + item2), one item-edit
// trigger: the operator goes on the assignment, and the two source items
// are summed.
func threeCounters(opts Options, site Site, result, item1, item2 operant2, operator int) string {
	resultType, resultID := result.itemType, result.id
	i1Type, i1ID := item1.itemType, item1.id
	i2Type, i2ID := item2.itemType, item2.id
	x, y := site.Position(opts)
	return objfmt.ItemEdit(x, y, 1, 1, 0, []int{site.Group}, true, false, true,
		i1ID, i2ID, i1Type, i2Type, resultID, resultType,
		1, assignOperator(operator), 3, 1, 0, 0, signMode(operator), 0)
}

// operant2 is the itemType/id pair unpack_item produces in gdobj.py.
type operant2 struct {
	itemType int
	id       int
}

func asOperant2(v operand.Value) operant2 {
	t, id := itemTypeOf(v)
	return operant2{itemType: t, id: id}
}

// twoCounters renders result OP= item1 (the in-place counter forms:
// ADD/SUB/MUL/DIV/FLDIV counter variants, and MOV's counter form).
func twoCounters(opts Options, site Site, result, item1 operant2, operator int) string {
	x, y := site.Position(opts)
	return objfmt.ItemEdit(x, y, 1, 1, 0, []int{site.Group}, true, false, true,
		item1.id, 0, item1.itemType, 1, result.id, result.itemType,
		1, assignOperator(operator), 3, 1, 0, 0, signMode(operator), 0)
}

// twoCountersNum renders result OP= (item1 * mod) (the item+literal
// forms: the MUL/DIV/FLDIV "2num" variants, where the source item is
// scaled by a literal number before the operator is applied to result).
func twoCountersNum(opts Options, site Site, result, item1 operant2, mod float64, operator int) string {
	x, y := site.Position(opts)
	return objfmt.ItemEdit(x, y, 1, 1, 0, []int{site.Group}, true, false, true,
		item1.id, 0, item1.itemType, 1, result.id, result.itemType,
		mod, assignOperator(operator), 3, 1, 0, 0, signMode(operator), 0)
}

// counterNum renders result OP= num in place (the "_num" instruction
// forms: ADD/SUB/MUL/DIV/FLDIV/MOV with a plain number operand).
func counterNum(opts Options, site Site, result operant2, num float64, operator int) string {
	x, y := site.Position(opts)
	return objfmt.ItemEdit(x, y, 1, 1, 0, []int{site.Group}, true, false, true,
		0, 0, 0, 0, result.id, result.itemType,
		num, assignOperator(operator), 3, 1, 0, 0, signMode(operator), 0)
}

// MovNum implements MOV item, number: a direct assignment, bit-packed
// into three sequential edits when the literal exceeds the float32
// exact-integer boundary and bit-packing is enabled (spec.md §4.3).
func MovNum(ctx *Context, site Site, args []operand.Value) (Result, error) {
	item := asOperant2(args[0])
	n := int64(args[1].Number)
	x, y := site.Position(ctx.Opts)
	dx := 30.0
	if ctx.Opts.Squish {
		dx = 1.0
	}

	if n > operand.PrecisionBoundary && ctx.Opts.BitPackingEnabled {
		big, small := BitPack(n)
		text := objfmt.ItemEdit(x, y, 1, 1, 0, []int{site.Group}, true, false, true,
			0, 0, 0, 0, item.id, item.itemType, float64(big), 0, 3, 1, 0, 0, 0, 0) +
			objfmt.ItemEdit(x+dx, y, 1, 1, 0, []int{site.Group}, true, false, true,
				0, 0, 0, 0, item.id, item.itemType, 65536, 3, 3, 1, 0, 0, 0, 0) +
			objfmt.ItemEdit(x+dx, y, 1, 1, 0, []int{site.Group}, true, false, true,
				0, 0, 0, 0, item.id, item.itemType, float64(small), 1, 3, 1, 0, 0, 0, 0)
		return Result{Text: text, ExtraObjects: 2}, nil
	}

	text := objfmt.ItemEdit(x, y, 1, 1, 0, []int{site.Group}, true, false, true,
		0, 0, 0, 0, item.id, item.itemType, float64(n), 0, 3, 1, 0, 0, 0, 0)
	return Result{Text: text}, nil
}

// MovCounter implements MOV item, item.
func MovCounter(ctx *Context, site Site, args []operand.Value) (Result, error) {
	return Result{Text: twoCounters(ctx.Opts, site, asOperant2(args[0]), asOperant2(args[1]), opMov)}, nil
}

func arithNum(op int) Emitter {
	return func(ctx *Context, site Site, args []operand.Value) (Result, error) {
		return Result{Text: counterNum(ctx.Opts, site, asOperant2(args[0]), args[1].Number, op)}, nil
	}
}

func arithCounter(op int) Emitter {
	return func(ctx *Context, site Site, args []operand.Value) (Result, error) {
		return Result{Text: twoCounters(ctx.Opts, site, asOperant2(args[0]), asOperant2(args[1]), op)}, nil
	}
}

func arith2(op int) Emitter {
	return func(ctx *Context, site Site, args []operand.Value) (Result, error) {
		return Result{Text: threeCounters(ctx.Opts, site, asOperant2(args[0]), asOperant2(args[1]), asOperant2(args[2]), op)}, nil
	}
}

func arith2Num(op int) Emitter {
	return func(ctx *Context, site Site, args []operand.Value) (Result, error) {
		return Result{Text: twoCountersNum(ctx.Opts, site, asOperant2(args[0]), asOperant2(args[1]), args[2].Number, op)}, nil
	}
}

var (
	AddNum     = arithNum(opAdd)
	AddCounter = arithCounter(opAdd)
	Add2       = arith2(opAdd)

	SubNum     = arithNum(opSub)
	SubCounter = arithCounter(opSub)
	Sub2       = arith2(opSub)

	MulNum     = arithNum(opMul)
	MulCounter = arithCounter(opMul)
	Mul2       = arith2(opMul)
	Mul2Num    = arith2Num(opMul)

	DivNum     = arithNum(opDiv)
	DivCounter = arithCounter(opDiv)
	Div2       = arith2(opDiv)
	Div2Num    = arith2Num(opDiv)

	FldivNum     = arithNum(opFldiv)
	FldivCounter = arithCounter(opFldiv)
	Fldiv2       = arith2(opFldiv)
	Fldiv2Num    = arith2Num(opFldiv)
)
