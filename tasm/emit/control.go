// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package emit

import (
	"errors"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/objfmt"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/operand"
)

// ErrDuplicateIOBlock is returned by IOBlock when another IOBLOCK
// already claimed the same position. It is not a compile-fatal error:
// callers should report it as diag.DuplicateIOBlock (a warning) and
// otherwise continue, matching spec.md §7's no-early-exit contract.
var ErrDuplicateIOBlock = errors.New("duplicate IOBLOCK position")

// Spawn implements SPAWN routine: a touch-independent spawn trigger that
// activates the target routine's group after a settle delay.
func Spawn(ctx *Context, site Site, args []operand.Value) (Result, error) {
	x, y := site.Position(ctx.Opts)
	text := objfmt.Spawn(x, y, 1, 1, 0, []int{site.Group}, true, false, true,
		args[0].Group, helperDelay(ctx.Opts), 0, false, ctx.Opts.SpawnOrdered, false)
	return Result{Text: text}, nil
}

// NOP implements NOP: it occupies a layout slot and emits nothing.
func NOP(ctx *Context, site Site, args []operand.Value) (Result, error) {
	return Result{}, nil
}

// MakePersistent implements PERS item: a persistent-item trigger placed
// in the _init routine's column, left of the main namespace.
func MakePersistent(ctx *Context, site Site, args []operand.Value) (Result, error) {
	item := asOperant2(args[0])
	y := float64(site.Group)*30 + 75
	text := objfmt.Persistent(-45, y, 1, 1, 0, nil, false, false, false,
		item.id, item.itemType == int(operand.ItemTimer), true, false, false)
	return Result{Text: text}, nil
}

// DisplayItem implements DISPLAY item: a diagnostic counter readout
// stacked by instruction index in the _init routine's column.
func DisplayItem(ctx *Context, site Site, args []operand.Value) (Result, error) {
	item := asOperant2(args[0])
	y := float64(site.Index)*30 + 45
	text := objfmt.Counter(-105, y, 0.5, 0.5, 0, nil, item.id, item.itemType == int(operand.ItemTimer), 0, false, 0)
	return Result{Text: text}, nil
}

// DisplayItemPos implements DISPLAY item, number: the same readout at an
// explicit stack position instead of the instruction's own index.
func DisplayItemPos(ctx *Context, site Site, args []operand.Value) (Result, error) {
	item := asOperant2(args[0])
	y := args[1].Number*30 + 75
	text := objfmt.Counter(-105, y, 0.5, 0.5, 0, nil, item.id, item.itemType == int(operand.ItemTimer), 0, false, 0)
	return Result{Text: text}, nil
}

// IOBlock implements IOBLOCK routine, int, str: the labelled text marker
// and trigger pair a connected GUI uses to find where to inject its own
// spawn group into the compiled level. A duplicate position emits nothing
// and returns ErrDuplicateIOBlock, matching the original implementation's
// "already taken" warning-and-drop behavior; the caller reports it as
// diag.DuplicateIOBlock.
func IOBlock(ctx *Context, site Site, args []operand.Value) (Result, error) {
	position := int(args[1].Int)
	if ctx.IOBlockTaken(position) {
		return Result{}, ErrDuplicateIOBlock
	}

	xpos := 75 + float64(position)*30
	ypos := 75.0
	// The prologue/IOBLOCK marker always spawns in strict order,
	// regardless of Options.SpawnOrdered — these
	// are GUI injection points, not ordinary control flow.
	text := objfmt.Text(xpos, ypos, 0.25, 0.25, 0, nil, args[2].Str, 0) +
		objfmt.Block(xpos, ypos, 1, 1, nil) +
		objfmt.Spawn(xpos, ypos, 1, 1, 0, nil, false, true, true, args[0].Group, 0, 0, false, true, false)
	return Result{Text: text, ExtraObjects: -1}, nil
}
