// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Command tasmc compiles TASM source into Geometry Dash object records.
//
// It wires the pipeline in tasm/parser, tasm/namespace, tasm/validate and
// tasm/assemble together behind the flag surface described in spec.md §6,
// plus encode/decode subcommands that exercise tasm/codec directly against
// files on disk — standing in for the save-file XML traversal this project
// doesn't implement (see SPEC_FULL.md's Non-goals).
package main

import (
	"github.com/alecthomas/kong"
)

var cli struct {
	Compile   CompileCmd   `cmd:"" help:"Compile a TASM source file into an object record stream."`
	Namespace NamespaceCmd `cmd:"" help:"Print the routine -> group mapping without compiling."`
	Encode    EncodeCmd    `cmd:"" help:"Apply the save-file cipher to a plaintext object stream."`
	Decode    DecodeCmd    `cmd:"" help:"Reverse the save-file cipher into a plaintext object stream."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("tasmc"),
		kong.Description("A compiler for the TASM assembly language."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
