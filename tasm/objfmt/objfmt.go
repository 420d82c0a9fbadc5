// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package objfmt builds the canonical comma-separated key/value object
// records consumed by the level editor's save format (spec.md §6).
//
// Every record is `<key>,<value>(,<key>,<value>)*;`. Key 1 is the object
// id, keys 2/3 are position, key 57 the dot-joined group list, keys 64/67
// the fixed non-fade/non-enter flags, and so on per spec.md §4.4 and §6.
// Each builder below renders exactly one object kind; optional keys are
// omitted when they hold their default value, matching the host's own
// save format (and the original implementation's string builders, which
// these are a direct, literal port of).
package objfmt

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// Num formats a float64 the way the host engine's save format expects:
// whole numbers with no trailing ".0", everything else in its shortest
// exact decimal form.
func Num(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCommon(b *strings.Builder, objID int, x, y, xscale, yscale, angle float64, groups []int) {
	b.WriteString("1,")
	b.WriteString(strconv.Itoa(objID))
	b.WriteString(",2,")
	b.WriteString(Num(x))
	b.WriteString(",3,")
	b.WriteString(Num(y))
	b.WriteString(",64,1,67,1")
	if len(groups) > 0 {
		strs := make([]string, len(groups))
		for i, g := range groups {
			strs[i] = strconv.Itoa(g)
		}
		b.WriteString(",57,")
		b.WriteString(strings.Join(strs, "."))
	}
}

func writeAngleScale(b *strings.Builder, angle, xscale, yscale float64) {
	if angle != 0 {
		b.WriteString(",6,")
		b.WriteString(Num(angle))
	}
	if xscale != 1 {
		b.WriteString(",128,")
		b.WriteString(Num(xscale))
	}
	if yscale != 1 {
		b.WriteString(",129,")
		b.WriteString(Num(yscale))
	}
}

func writeTriggerFlags(b *strings.Builder, spawnTriggered, touchTriggered, multiTriggerable bool) {
	if spawnTriggered {
		b.WriteString(",62,1")
	}
	if touchTriggered {
		b.WriteString(",11,1")
	}
	if multiTriggerable {
		b.WriteString(",87,1")
	}
}

// Block renders a plain default block (object id 1): unlike every trigger
// kind below, blocks carry no non-fade/non-enter flags and no angle —
// just position, non-default scale, and group membership, matching the
// one-off literals the source this was ported from hand-wrote at each
// call site instead of sharing a builder.
func Block(x, y, xscale, yscale float64, groups []int) string {
	var b strings.Builder
	b.WriteString("1,1,2,")
	b.WriteString(Num(x))
	b.WriteString(",3,")
	b.WriteString(Num(y))
	if xscale != 1 {
		b.WriteString(",128,")
		b.WriteString(Num(xscale))
	}
	if yscale != 1 {
		b.WriteString(",129,")
		b.WriteString(Num(yscale))
	}
	if len(groups) > 0 {
		strs := make([]string, len(groups))
		for i, g := range groups {
			strs[i] = strconv.Itoa(g)
		}
		b.WriteString(",57,")
		b.WriteString(strings.Join(strs, "."))
	}
	b.WriteString(";")
	return b.String()
}

// Counter renders a counter display object (1615).
func Counter(x, y, xscale, yscale, angle float64, groups []int, itemID int, timer bool, align int, secondsOnly bool, specialMode int) string {
	var b strings.Builder
	writeCommon(&b, 1615, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,1")
	writeAngleScale(&b, angle, xscale, yscale)

	if itemID > 0 {
		b.WriteString(",80,")
		b.WriteString(strconv.Itoa(itemID))
	}
	if secondsOnly {
		b.WriteString(",389,1")
	}
	if specialMode < 0 {
		b.WriteString(",390,")
		b.WriteString(strconv.Itoa(specialMode))
	}
	if align > 0 {
		b.WriteString(",391,")
		b.WriteString(strconv.Itoa(align))
	}
	if timer {
		b.WriteString(",466,1")
	}
	b.WriteString(";")
	return b.String()
}

// Spawn renders a spawn trigger (1268). delay and spawnOrdered are
// expected to already have been zeroed/cleared by the caller when the
// corresponding compile option (emit.Options.SpawnDelay,
// emit.Options.SpawnOrdered) is off — this builder is a pure
// presentation layer and does not know about compile options.
func Spawn(x, y, xscale, yscale, angle float64, groups []int, spawnTriggered, touchTriggered, multiTriggerable bool, spawnID int, delay float64, delayVar float64, resetRemap, spawnOrdered, previewDisable bool) string {
	var b strings.Builder
	writeCommon(&b, 1268, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,1")
	writeAngleScale(&b, angle, xscale, yscale)
	writeTriggerFlags(&b, spawnTriggered, touchTriggered, multiTriggerable)
	b.WriteString(",36,1")

	if spawnID != 0 {
		b.WriteString(",51,")
		b.WriteString(strconv.Itoa(spawnID))
	}
	if delay != 0 {
		b.WriteString(",63,")
		b.WriteString(Num(delay))
	}
	if delayVar != 0 {
		b.WriteString(",556,")
		b.WriteString(Num(delayVar))
	}
	if previewDisable {
		b.WriteString(",102,1")
	}
	if spawnOrdered {
		b.WriteString(",441,1")
	}
	if resetRemap {
		b.WriteString(",581,1")
	}
	b.WriteString(";")
	return b.String()
}

// Persistent renders a persistent-item trigger (3641).
func Persistent(x, y, xscale, yscale, angle float64, groups []int, spawnTriggered, touchTriggered, multiTriggerable bool, itemID int, timer, persistent, targetAll, reset bool) string {
	var b strings.Builder
	writeCommon(&b, 3641, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,1")
	writeAngleScale(&b, angle, xscale, yscale)
	writeTriggerFlags(&b, spawnTriggered, touchTriggered, multiTriggerable)
	b.WriteString(",36,1")

	if itemID != 0 {
		b.WriteString(",80,")
		b.WriteString(strconv.Itoa(itemID))
	}
	if persistent {
		b.WriteString(",491,1")
	}
	if targetAll {
		b.WriteString(",492,1")
	}
	if reset {
		b.WriteString(",493,1")
	}
	if timer {
		b.WriteString(",494,1")
	}
	b.WriteString(";")
	return b.String()
}

// Compare renders an item-compare trigger (3620).
func Compare(x, y, xscale, yscale, angle float64, groups []int, spawnTriggered, touchTriggered, multiTriggerable bool,
	trueID, falseID, leftItemID, rightItemID, leftItemType, rightItemType int,
	leftMod, rightMod float64, leftOperator, rightOperator, compareOperator int, tolerance float64,
	leftRound, rightRound, leftSign, rightSign int) string {
	var b strings.Builder
	writeCommon(&b, 3620, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,1")
	writeAngleScale(&b, angle, xscale, yscale)
	writeTriggerFlags(&b, spawnTriggered, touchTriggered, multiTriggerable)
	b.WriteString(",36,1")

	if leftItemID != 0 {
		b.WriteString(",80,")
		b.WriteString(strconv.Itoa(leftItemID))
	}
	if rightItemID != 0 {
		b.WriteString(",95,")
		b.WriteString(strconv.Itoa(rightItemID))
	}
	if trueID != 0 {
		b.WriteString(",51,")
		b.WriteString(strconv.Itoa(trueID))
	}
	if falseID != 0 {
		b.WriteString(",71,")
		b.WriteString(strconv.Itoa(falseID))
	}
	b.WriteString(",476,")
	b.WriteString(strconv.Itoa(leftItemType))
	b.WriteString(",477,")
	b.WriteString(strconv.Itoa(rightItemType))

	if leftMod != 0 {
		b.WriteString(",479,")
		b.WriteString(Num(leftMod))
	}
	if rightMod != 0 {
		b.WriteString(",483,")
		b.WriteString(Num(rightMod))
	}
	b.WriteString(",480,")
	b.WriteString(strconv.Itoa(leftOperator))
	b.WriteString(",481,")
	b.WriteString(strconv.Itoa(rightOperator))

	if compareOperator != 0 {
		b.WriteString(",482,")
		b.WriteString(strconv.Itoa(compareOperator))
	}
	if tolerance != 0 {
		b.WriteString(",484,")
		b.WriteString(Num(tolerance))
	}
	if leftRound != 0 {
		b.WriteString(",485,")
		b.WriteString(strconv.Itoa(leftRound))
	}
	if rightRound != 0 {
		b.WriteString(",486,")
		b.WriteString(strconv.Itoa(rightRound))
	}
	if leftSign != 0 {
		b.WriteString(",578,")
		b.WriteString(strconv.Itoa(leftSign))
	}
	if rightSign != 0 {
		b.WriteString(",579,")
		b.WriteString(strconv.Itoa(rightSign))
	}
	b.WriteString(";")
	return b.String()
}

// ItemEdit renders an item-edit trigger (3619).
func ItemEdit(x, y, xscale, yscale, angle float64, groups []int, spawnTriggered, touchTriggered, multiTriggerable bool,
	item1ID, item2ID, item1Type, item2Type, resultID, resultType int,
	mod float64, assignOp, modOp, idOp, idRound, allRound, idSign, allSign int) string {
	var b strings.Builder
	writeCommon(&b, 3619, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,1")
	writeAngleScale(&b, angle, xscale, yscale)
	writeTriggerFlags(&b, spawnTriggered, touchTriggered, multiTriggerable)
	b.WriteString(",36,1")

	if item1ID != 0 {
		b.WriteString(",80,")
		b.WriteString(strconv.Itoa(item1ID))
	}
	if item2ID != 0 {
		b.WriteString(",95,")
		b.WriteString(strconv.Itoa(item2ID))
	}
	if item1Type != 0 {
		b.WriteString(",476,")
		b.WriteString(strconv.Itoa(item1Type))
	}
	if item2Type != 0 {
		b.WriteString(",477,")
		b.WriteString(strconv.Itoa(item2Type))
	}
	b.WriteString(",478,")
	b.WriteString(strconv.Itoa(resultType))
	if resultID != 0 {
		b.WriteString(",51,")
		b.WriteString(strconv.Itoa(resultID))
	}
	b.WriteString(",479,")
	b.WriteString(Num(mod))
	if assignOp != 0 {
		b.WriteString(",480,")
		b.WriteString(strconv.Itoa(assignOp))
	}
	b.WriteString(",481,")
	b.WriteString(strconv.Itoa(idOp))
	b.WriteString(",482,")
	b.WriteString(strconv.Itoa(modOp))
	if idRound != 0 {
		b.WriteString(",485,")
		b.WriteString(strconv.Itoa(idRound))
	}
	if allRound != 0 {
		b.WriteString(",486,")
		b.WriteString(strconv.Itoa(allRound))
	}
	if idSign != 0 {
		b.WriteString(",578,")
		b.WriteString(strconv.Itoa(idSign))
	}
	if allSign != 0 {
		b.WriteString(",579,")
		b.WriteString(strconv.Itoa(allSign))
	}
	b.WriteString(";")
	return b.String()
}

// Text renders a text object (914); text is base64-encoded UTF-8, per
// spec.md §4.4.
func Text(x, y, xscale, yscale, angle float64, groups []int, text string, kerning int) string {
	var b strings.Builder
	writeCommon(&b, 914, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,1")
	writeAngleScale(&b, angle, xscale, yscale)

	b.WriteString(",24,9,31,")
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(text)))
	if kerning != 0 {
		b.WriteString(",488,")
		b.WriteString(strconv.Itoa(kerning))
	}
	b.WriteString(";")
	return b.String()
}

// Stop renders a stop trigger (1616).
func Stop(x, y, xscale, yscale, angle float64, groups []int, spawnTriggered, touchTriggered, multiTriggerable bool, spawnID, stopMode int, controlID bool) string {
	var b strings.Builder
	writeCommon(&b, 1616, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,1")
	writeAngleScale(&b, angle, xscale, yscale)
	writeTriggerFlags(&b, spawnTriggered, touchTriggered, multiTriggerable)
	b.WriteString(",36,1")

	if spawnID != 0 {
		b.WriteString(",51,")
		b.WriteString(strconv.Itoa(spawnID))
	}
	if controlID {
		b.WriteString(",535,1")
	}
	if stopMode != 0 {
		b.WriteString(",580,")
		b.WriteString(strconv.Itoa(stopMode))
	}
	b.WriteString(";")
	return b.String()
}

// CollisionBlock renders a collision block (1816).
func CollisionBlock(x, y, xscale, yscale, angle float64, groups []int, blockID int, dynamic bool) string {
	var b strings.Builder
	writeCommon(&b, 1816, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,2")
	writeAngleScale(&b, angle, xscale, yscale)
	b.WriteString(",36,1")

	if blockID != 0 {
		b.WriteString(",80,")
		b.WriteString(strconv.Itoa(blockID))
	}
	if dynamic {
		b.WriteString(",94,1")
	}
	b.WriteString(";")
	return b.String()
}

// CollisionTrigger renders a collision trigger (1815).
func CollisionTrigger(x, y, xscale, yscale, angle float64, groups []int, blockAID, blockBID, targetID int, activateGroup bool) string {
	var b strings.Builder
	writeCommon(&b, 1815, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,2")
	writeAngleScale(&b, angle, xscale, yscale)
	b.WriteString(",87,1,36,1")

	if targetID != 0 {
		b.WriteString(",51,")
		b.WriteString(strconv.Itoa(targetID))
	}
	b.WriteString(",10,0.5")
	if activateGroup {
		b.WriteString(",56,1")
	}
	if blockAID != 0 {
		b.WriteString(",80,")
		b.WriteString(strconv.Itoa(blockAID))
	}
	if blockBID != 0 {
		b.WriteString(",95,")
		b.WriteString(strconv.Itoa(blockBID))
	}
	b.WriteString(";")
	return b.String()
}

// Toggle renders a toggle trigger (1049).
func Toggle(x, y, xscale, yscale, angle float64, groups []int, spawnTriggered, touchTriggered, multiTriggerable bool, targetID int, activateGroup bool) string {
	var b strings.Builder
	writeCommon(&b, 1049, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,2")
	writeAngleScale(&b, angle, xscale, yscale)
	writeTriggerFlags(&b, spawnTriggered, touchTriggered, multiTriggerable)
	b.WriteString(",87,1,36,1")

	if targetID != 0 {
		b.WriteString(",51,")
		b.WriteString(strconv.Itoa(targetID))
	}
	if activateGroup {
		b.WriteString(",56,1")
	}
	b.WriteString(";")
	return b.String()
}

// Move renders a move trigger (901). When targetMode is set the trigger
// moves towards a target object instead of by a fixed delta, per
// spec.md's move-trigger payload keys (85 mode, 100 target-mode, 71 aim).
func Move(x, y, xscale, yscale, angle float64, groups []int, spawnTriggered, touchTriggered, multiTriggerable bool, dx, dy, timeSec float64, target int, targetMode bool, aim int) string {
	var b strings.Builder
	writeCommon(&b, 901, x, y, xscale, yscale, angle, groups)
	b.WriteString(",155,1")
	writeAngleScale(&b, angle, xscale, yscale)
	writeTriggerFlags(&b, spawnTriggered, touchTriggered, multiTriggerable)

	if targetMode {
		b.WriteString(",28,0,29,0")
		if timeSec != 0 {
			b.WriteString(",10,")
			b.WriteString(Num(timeSec))
		}
		b.WriteString(",30,0,85,2,71,")
		b.WriteString(strconv.Itoa(aim))
		b.WriteString(",100,1")
		if target != 0 {
			b.WriteString(",51,")
			b.WriteString(strconv.Itoa(target))
		}
	} else {
		b.WriteString(",28,")
		b.WriteString(Num(dx))
		b.WriteString(",29,")
		b.WriteString(Num(dy))
		if timeSec != 0 {
			b.WriteString(",10,")
			b.WriteString(Num(timeSec))
		}
		if target != 0 {
			b.WriteString(",51,")
			b.WriteString(strconv.Itoa(target))
		}
	}
	b.WriteString(";")
	return b.String()
}

// TimeWarp renders the global time-warp trigger (1935).
func TimeWarp(x, y, scale float64) string {
	var b strings.Builder
	b.WriteString("1,1935,2,")
	b.WriteString(Num(x))
	b.WriteString(",3,")
	b.WriteString(Num(y))
	b.WriteString(",155,1,13,1,36,1,120,")
	b.WriteString(Num(scale))
	b.WriteString(",64,1,67,1;")
	return b.String()
}
