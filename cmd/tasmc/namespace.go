// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/diag"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/namespace"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/parser"
	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
)

// NamespaceCmd is the standalone form of --show-namespace: it runs the
// lexer, parser and namespace builder, then prints the routine -> group
// mapping without validating operands or generating any objects.
type NamespaceCmd struct {
	File      string `arg:"" type:"existingfile" help:"TASM source file to parse."`
	NoWarn    bool   `help:"Suppress warning diagnostics."`
	MemPtrPos int    `default:"9999" help:"PTRPOS counter id; MEMREG is this minus one."`
}

func (n *NamespaceCmd) Run() error {
	logger := log.New(os.Stdout, "", 0)

	src, err := os.ReadFile(n.File)
	if err != nil {
		return fmt.Errorf("tasmc: %w", err)
	}

	ptrpos := n.MemPtrPos
	if ptrpos > parser.MaxPointerPosID {
		ptrpos = parser.MaxPointerPosID
	}
	aliases := parser.Aliases(ptrpos)

	fset := token.NewFileSet()
	bag := diag.NewBag(fset)

	prog := parser.Parse(fset, n.File, src, aliases, bag)
	ns := namespace.Build(prog, bag)

	bag.Sort()
	bag.Render(os.Stderr, n.NoWarn)

	printNamespace(logger, ns)
	return nil
}
