// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package interp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteNamespaceProducesRoutinesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namespace.json")

	err := WriteNamespace(path, map[string]int{"_start": 0, "helper": 1})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc RoutineNamespace
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, 0, doc.Routines["_start"].Group)
	require.Equal(t, 1, doc.Routines["helper"].Group)
}

func TestExecLauncherPrefersRunnerPathUnderUseRunner(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "namespace.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	// Path would fail; only choosing RunnerPath lets Launch succeed.
	l := ExecLauncher{Path: "false", RunnerPath: "echo", UseRunner: true, Stdout: devNull(t), Stderr: devNull(t)}
	require.NoError(t, l.Launch(ctx, path, false))
}

func TestExecLauncherAppendsFastFlag(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "namespace.json")
	// Run the namespace path as a shell script that exits 0 only when
	// its first argument is the appended "--fast".
	require.NoError(t, os.WriteFile(path, []byte("[ \"$1\" = --fast ]\n"), 0o644))

	l := ExecLauncher{Path: "sh", Stdout: devNull(t), Stderr: devNull(t)}
	require.NoError(t, l.Launch(ctx, path, true))
}

func devNull(t *testing.T) *os.File {
	t.Helper()
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}
