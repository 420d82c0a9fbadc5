// Package token tracks source positions for TASM diagnostics.
package token

import (
	"go/token"
)

// We reuse the position and FileSet types from the standard
// "go/token" package: they are not Go-specific and they already
// do exactly what a line-oriented assembler needs.
type (
	Position = token.Position
	Pos      = token.Pos
	File     = token.File
	FileSet  = token.FileSet
)

// NewFileSet returns a new, empty FileSet.
func NewFileSet() *FileSet {
	return token.NewFileSet()
}

// NoPos is the zero value for Pos; it has no position information
// associated with it.
const NoPos = token.NoPos
