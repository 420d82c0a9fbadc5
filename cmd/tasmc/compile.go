// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/assemble"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/codec"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/emit"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/interp"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/namespace"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/parser"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/validate"
)

// CompileCmd runs the full lex -> parse -> validate -> namespace -> assemble
// pipeline against a TASM source file. main.py normally reads and rewrites a
// compiled level's object string in place inside its plist/XML save file;
// that container is out of scope here (SPEC_FULL.md's Non-goals), so
// --append/--out read and write the decoded object stream as plain files.
type CompileCmd struct {
	File string `arg:"" type:"existingfile" help:"TASM source file to compile."`

	Append          bool   `help:"Append the compiled objects after an existing decoded object stream instead of replacing it."`
	ExistingObjects string `help:"Path to the existing decoded object stream --append reads from." placeholder:"FILE"`
	Out             string `short:"o" help:"Write the compiled object stream here instead of stdout."`

	NoWarn        bool `help:"Suppress warning diagnostics."`
	NoRoutineText bool `help:"Omit the per-routine debug text labels."`
	ShowNamespace bool `help:"Print the routine -> group mapping before compiling."`
	Slow          bool `help:"Disable object squishing (1-unit spacing); helpful for debugging."`
	Superfast     bool `help:"When --interpret is set, launch the interpreter in its fastest mode."`
	NoWrite       bool `help:"Compile and report diagnostics, but write no output."`

	GroupOffset       int  `help:"Shift every routine's group id by this amount; offsets over 100 add a barrier block."`
	CollBlockOffset   int  `help:"Shift the memory machine's static collision block ids by this amount."`
	MemPtrPos         int  `default:"9999" help:"PTRPOS counter id; MEMREG is this minus one."`
	DisableBitPacking bool `help:"Disable bit-packing for MOV/INITMEM constants above the host's exact-integer range."`

	Index int `help:"Level slot index. Accepted for CLI-surface parity; no save-file container is read here to index into."`

	Interpret bool `help:"Launch an external interpreter against the compiled namespace instead of writing output."`
	Runner    bool `help:"When --interpret is set, select the launcher's runner path. tasmc configures no runner path, so the default interpreter is launched either way."`
}

func (c *CompileCmd) Run() error {
	logger := log.New(os.Stderr, "", 0)

	src, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("tasmc: %w", err)
	}

	ptrpos := c.MemPtrPos
	if ptrpos > parser.MaxPointerPosID {
		ptrpos = parser.MaxPointerPosID
	}
	aliases := parser.Aliases(ptrpos)

	fset := token.NewFileSet()
	bag := diag.NewBag(fset)

	prog := parser.Parse(fset, c.File, src, aliases, bag)
	ns := namespace.Build(prog, bag)
	checked := validate.Run(ns, bag, !c.DisableBitPacking)

	if c.ShowNamespace {
		printNamespace(logger, ns)
	}

	opts := assemble.Options{
		Emit: emit.Options{
			Squish:            !c.Slow,
			BitPackingEnabled: !c.DisableBitPacking,
			SpawnOrdered:      true,
			SpawnDelay:        true,
			NoRoutineText:     c.NoRoutineText,
			MemPtrPos:         ptrpos,
			CollBlockOffset:   c.CollBlockOffset,
		},
		GroupOffset:        c.GroupOffset,
		RoutineText:        !c.NoRoutineText,
		StartGroupOverride: -1,
	}

	result := assemble.Run(ns, checked, bag, opts)

	bag.Sort()
	bag.Render(os.Stderr, c.NoWarn)

	if bag.HasErrors() {
		return fmt.Errorf("tasmc: %d error(s); no output written", bag.ErrorCount())
	}

	if c.Interpret {
		return c.runInterpreter(ns)
	}

	if c.NoWrite {
		logger.Printf("compiled %d objects across %d groups (--no-write set, nothing written)", result.ObjectCount, result.GroupsUsed)
		return nil
	}

	objects := result.Objects
	if c.Append && c.ExistingObjects != "" {
		existing, err := os.ReadFile(c.ExistingObjects)
		if err != nil {
			return fmt.Errorf("tasmc: --append: %w", err)
		}
		objects = codec.Combine(string(existing), objects)
	}

	if c.Out == "" {
		fmt.Println(objects)
		return nil
	}
	return os.WriteFile(c.Out, []byte(objects), 0o644)
}

// runInterpreter dumps the namespace to JSON and hands it to a Launcher,
// mirroring main.py's subprocess.Popen call — the interpreter binary itself
// is an external program this repo never emulates (SPEC_FULL.md's
// Non-goals).
func (c *CompileCmd) runInterpreter(ns *namespace.Namespace) error {
	entries := make(map[string]int, len(ns.Order))
	for _, name := range ns.Order {
		entries[name] = ns.Routines[name].Group
	}

	const namespacePath = "namespace.json"
	if err := interp.WriteNamespace(namespacePath, entries); err != nil {
		return fmt.Errorf("tasmc: writing namespace: %w", err)
	}

	launcher := interp.ExecLauncher{UseRunner: c.Runner, Stdout: os.Stdout, Stderr: os.Stderr}
	return launcher.Launch(context.Background(), namespacePath, c.Superfast)
}

func printNamespace(logger *log.Logger, ns *namespace.Namespace) {
	for _, name := range ns.Order {
		logger.Printf("group %d: routine %s", ns.Routines[name].Group, name)
	}
	if ns.StartGroup >= 0 {
		logger.Printf("main group: %d", ns.StartGroup)
	}
}
