// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// The memory machine emulates addressable memory with collision blocks,
// a movable pointer, and read/write mode toggles — no native counter
// array exists in the host engine, so every MREAD/MWRITE dereferences
// through the active collision pairing between the pointer block and
// one memory cell's block (spec.md §4.8).
package emit

import (
	"strings"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/objfmt"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/operand"
)

// memoryBlockX and memoryBlockY anchor the whole memory-machine diagram
// in level space: x is fixed, and y starts at 165 and moves 30 units
// further for every routine in the namespace (Site.SubroutineCount).
// memoryLeftID/memoryRightID/memoryPtrID are the padding and pointer
// collision block ids, before Options.CollBlockOffset is added.
const (
	memoryBlockX  = 45.0
	memoryLeftID  = 9997
	memoryRightID = 9998
	memoryPtrID   = 9999
)

func memoryBlockY(site Site) float64 {
	return 165 + float64(site.SubroutineCount)*30
}

// Malloc implements MALLOC int: lays out the entire memory machine —
// the collision-block tape, the movable pointer block, and the
// read/write mode toggle groups. Only the first MALLOC in a program has
// any effect; every subsequent one is silently dropped, matching
// spec.md §4.8's "MALLOC may run at most once" invariant (the validator
// also rejects a second MALLOC outright via diag.MultipleMalloc, so this
// guard is a second line of defense against the validator being
// bypassed during testing).
func Malloc(ctx *Context, site Site, args []operand.Value) (Result, error) {
	ctx.MallocCount++
	if ctx.MallocCount > 1 {
		return Result{}, nil
	}

	amount := int(args[0].Int)
	ctx.MemorySize = amount
	ctx.StartingCtr = ctx.Opts.memregID() - amount

	xOffset := memoryBlockX
	yOffset := memoryBlockY(site)
	nextFree := site.NextFree

	var b strings.Builder

	ptrID := memoryPtrID + ctx.Opts.CollBlockOffset

	ctx.ResetBlock = nextFree
	b.WriteString(objfmt.Block(xOffset, yOffset-30, 0.5, 0.5, []int{nextFree}))
	b.WriteString(objfmt.CollisionBlock(xOffset, yOffset-30, 0.8, 0.8, 0, []int{nextFree + 1}, ptrID, true))
	ctx.PointerGroup = nextFree + 1

	nextFree++
	ctx.ReadGroup = nextFree + 1
	ctx.WriteGroup = nextFree + 2
	extraGroups := 3
	nextFree += 3

	for idx := 0; idx < amount; idx++ {
		counter := ctx.StartingCtr + idx
		itemGroup := nextFree
		xpos := float64(idx)*30 + xOffset
		cellID := idx + 1 + ctx.Opts.CollBlockOffset

		b.WriteString(objfmt.CollisionBlock(xpos, yOffset, 1, 1, 0, nil, cellID, false))
		b.WriteString(objfmt.CollisionTrigger(xOffset-71.25, yOffset+float64(idx+1)*7.5-18.75, 0.25, 0.25, 0, nil,
			cellID, ptrID, itemGroup, true))
		b.WriteString(objfmt.ItemEdit(xpos, yOffset+30, 1, 1, 0, []int{itemGroup, ctx.WriteGroup}, true, false, true,
			ctx.Opts.memregID(), 0, 1, 0, counter, 1, 1, 0, 3, 1, 0, 0, 0, 0))
		b.WriteString(objfmt.ItemEdit(xpos, yOffset+60, 1, 1, 0, []int{itemGroup, ctx.ReadGroup}, true, false, true,
			counter, 0, 1, 0, ctx.Opts.memregID(), 1, 1, 0, 3, 1, 0, 0, 0, 0))
		b.WriteString(objfmt.Counter(xpos, yOffset-60, 0.4, 0.4, -30, nil, counter, false, 0, false, 0))
		b.WriteString(objfmt.Move(xpos, yOffset+90, 1, 1, 0, []int{itemGroup}, true, false, true,
			0, -30, 0, ctx.PointerGroup, false, 0))

		extraGroups++
		nextFree++
	}

	leftID := memoryLeftID + ctx.Opts.CollBlockOffset
	rightID := memoryRightID + ctx.Opts.CollBlockOffset

	b.WriteString(objfmt.CollisionBlock(xOffset-75, yOffset-30, 3.8, 0.8, 0, nil, leftID, true))
	b.WriteString(objfmt.CollisionBlock(xOffset+float64(amount)*30+45, yOffset-30, 3.8, 0.8, 0, nil, rightID, true))

	yOffset -= 30
	b.WriteString(objfmt.CollisionTrigger(xOffset-60, yOffset-22.5, 0.5, 0.5, 0, nil, leftID, ptrID, nextFree, true))
	b.WriteString(objfmt.CollisionTrigger(xOffset-60, yOffset-37.5, 0.5, 0.5, 0, nil, rightID, ptrID, nextFree+1, true))
	b.WriteString(objfmt.Move(xOffset-75, yOffset-22.5, 0.5, 0.5, 0, []int{nextFree}, true, false, true,
		30, 0, 0, ctx.PointerGroup, false, 0))
	b.WriteString(objfmt.Move(xOffset-75, yOffset-37.5, 0.5, 0.5, 0, []int{nextFree + 1}, true, false, true,
		-30, 0, 0, ctx.PointerGroup, false, 0))
	b.WriteString(objfmt.ItemEdit(xOffset-90, yOffset-22.5, 0.5, 0.5, 0, []int{nextFree}, true, false, true,
		0, 0, 1, 1, ctx.Opts.ptrposID(), 1, 0, 0, 3, 1, 0, 0, 0, 0))
	b.WriteString(objfmt.ItemEdit(xOffset-90, yOffset-37.5, 0.5, 0.5, 0, []int{nextFree + 1}, true, false, true,
		0, 0, 1, 1, ctx.Opts.ptrposID(), 1, float64(amount-1), 0, 3, 1, 0, 0, 0, 0))

	if !ctx.Opts.NoRoutineText {
		b.WriteString(objfmt.Text(xOffset, yOffset+150, 0.5, 0.5, 0, nil, "memory", 0))
	}

	extraGroups += 3
	return Result{Text: b.String(), ExtraGroups: extraGroups}, nil
}

// InitMem implements INITMEM int_array: pre-loads the memory cells with
// constant values before any routine runs. Each value is written by an
// always-active item-edit trigger (no spawn group, per spec.md §4.8 —
// these fire at level start regardless of which routine spawns first),
// bit-packed across three triggers above the precision boundary exactly
// like MOV's literal form.
func InitMem(ctx *Context, site Site, args []operand.Value) (Result, error) {
	yOffset := memoryBlockY(site)

	var b strings.Builder
	for idx, n := range args[0].Ints {
		y := yOffset + 7.5*float64(idx+1) - 18.75
		counterID := ctx.StartingCtr + idx
		num := int64(n)

		if num <= operand.PrecisionBoundary || !ctx.Opts.BitPackingEnabled {
			b.WriteString(objfmt.ItemEdit(memoryBlockX-63.75, y, 0.25, 0.25, 0, nil, false, false, false,
				0, 0, 1, 1, counterID, 1, float64(num), 0, 3, 1, 0, 0, 0, 0))
			continue
		}

		big, small := BitPack(num)
		b.WriteString(objfmt.ItemEdit(memoryBlockX-63.75, y, 0.25, 0.25, 0, nil, false, false, false,
			0, 0, 1, 1, counterID, 1, float64(big), 0, 3, 1, 0, 0, 0, 0))
		b.WriteString(objfmt.ItemEdit(memoryBlockX-56.25, y, 0.25, 0.25, 0, nil, false, false, false,
			0, 0, 1, 1, counterID, 1, 65536, 3, 3, 1, 0, 0, 0, 0))
		b.WriteString(objfmt.ItemEdit(memoryBlockX-48.75, y, 0.25, 0.25, 0, nil, false, false, false,
			0, 0, 1, 1, counterID, 1, float64(small), 1, 3, 1, 0, 0, 0, 0))
	}
	return Result{Text: b.String()}, nil
}

// MFunc implements MFUNC: moves the pointer block 30 units up into the
// memory cell row, so its collision with the aligned cell fires that
// cell's read or write trigger.
func MFunc(ctx *Context, site Site, args []operand.Value) (Result, error) {
	x, y := site.Position(ctx.Opts)
	text := objfmt.Move(x, y, 1, 1, 0, []int{site.Group}, true, false, true, 0, 30, 0, ctx.PointerGroup, false, 0)
	extra := 0
	if ctx.Opts.Squish {
		extra = 2
	}
	return Result{Text: text, ExtraObjects: extra}, nil
}

func switchMemMode(ctx *Context, site Site, read bool) Result {
	x, y := site.Position(ctx.Opts)
	y += 7.5
	text := objfmt.Toggle(x, y, 1, 0.5, 0, []int{site.Group}, true, false, true, ctx.ReadGroup, read) +
		objfmt.Toggle(x, y-15, 1, 0.5, 0, []int{site.Group}, true, false, true, ctx.WriteGroup, !read)
	return Result{Text: text}
}

// MRead implements MREAD: toggles the memory machine into read mode.
func MRead(ctx *Context, site Site, args []operand.Value) (Result, error) {
	return switchMemMode(ctx, site, true), nil
}

// MWrite implements MWRITE: toggles the memory machine into write mode.
func MWrite(ctx *Context, site Site, args []operand.Value) (Result, error) {
	return switchMemMode(ctx, site, false), nil
}

// MPtr implements MPTR int: moves the pointer amount cells and keeps the
// PTRPOS shadow counter in sync via the same ADD item-edit the ADD
// instruction uses.
func MPtr(ctx *Context, site Site, args []operand.Value) (Result, error) {
	x, y := site.Position(ctx.Opts)
	y += 7.5
	amount := int(args[0].Int)

	moveText := objfmt.Move(x, y, 1, 0.5, 0, []int{site.Group}, true, false, true,
		float64(amount)*30, 0, 0, ctx.PointerGroup, false, 0)

	ptrItem := operant2{itemType: 1, id: ctx.Opts.ptrposID()}
	addText := counterNum(ctx.Opts, site, ptrItem, float64(amount), opAdd)

	return Result{Text: moveText + addText}, nil
}

// MReset implements MRESET: snaps the pointer back to the block position
// recorded at MALLOC time, and zeroes the PTRPOS shadow counter to match.
func MReset(ctx *Context, site Site, args []operand.Value) (Result, error) {
	x, y := site.Position(ctx.Opts)
	y += 7.5

	moveText := objfmt.Move(x, y, 1, 0.5, 0, []int{site.Group}, true, false, true,
		0, 0, 0, ctx.PointerGroup, true, ctx.ResetBlock)

	ptrItem := operant2{itemType: 1, id: ctx.Opts.ptrposID()}
	movText := counterNum(ctx.Opts, site, ptrItem, 0, opMov)

	return Result{Text: moveText + movText}, nil
}
