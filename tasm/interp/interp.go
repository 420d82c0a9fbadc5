// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package interp defines the interface `cmd/tasmc`'s --interpret flag
// calls into. Emulating the host engine well enough to run a compiled
// namespace is out of scope (spec.md's Non-goals) — this package exists
// so that flag has a concrete, real implementation to call rather than
// a stub, without reimplementing the engine itself.
package interp

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
)

// Launcher starts an external interpreter process against a compiled
// namespace and waits for it to exit.
type Launcher interface {
	Launch(ctx context.Context, namespacePath string, fast bool) error
}

// ExecLauncher is the one real Launcher: a thin os/exec wrapper around
// the external interpreter binary the source this was ported from
// shells out to after dumping the namespace to JSON.
type ExecLauncher struct {
	// Path is the interpreter executable's path; empty selects
	// "interpreter.exe" (or the debug build under --runner, via
	// RunnerPath) the way main.py's subprocess.Popen call does.
	Path       string
	RunnerPath string
	UseRunner  bool

	Stdout, Stderr *os.File
}

// Launch runs the interpreter against namespacePath, blocking until it
// exits. fast maps to the interpreter's own "--fast" flag.
func (l ExecLauncher) Launch(ctx context.Context, namespacePath string, fast bool) error {
	exe := l.Path
	if l.UseRunner && l.RunnerPath != "" {
		exe = l.RunnerPath
	}
	if exe == "" {
		exe = "interpreter.exe"
	}

	args := []string{namespacePath}
	if fast {
		args = append(args, "--fast")
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	return cmd.Run()
}

// RoutineNamespace is the JSON shape `--interpret` dumps a namespace to
// before handing it to the Launcher, mirroring main.py's
// `json.dump({"routines": namespace}, ...)`.
type RoutineNamespace struct {
	Routines map[string]RoutineEntry `json:"routines"`
}

// RoutineEntry is one routine's group id, keyed by name in
// RoutineNamespace.Routines.
type RoutineEntry struct {
	Group int `json:"group"`
}

// WriteNamespace serialises entries to path as the JSON document
// Launch's caller is expected to point a Launcher at.
func WriteNamespace(path string, entries map[string]int) error {
	doc := RoutineNamespace{Routines: make(map[string]RoutineEntry, len(entries))}
	for name, group := range entries {
		doc.Routines[name] = RoutineEntry{Group: group}
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
