// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package lexer implements a line-oriented scanner for TASM source text.
//
// TASM has no nested grammar worth a rune-by-rune scanner: a program is a
// sequence of lines, each of which is either blank, a routine header, or an
// indented instruction. Scan does the one lexical transform that every
// later phase needs done once — stripping the `;` line comment and
// trailing whitespace — and hands back every line with its position
// recorded in the supplied FileSet, so the parser and validator can
// produce diagnostics without re-deriving line/column arithmetic.
package lexer

import (
	"strings"

	"github.com/ArrowSlashArrow/tasm-lang/tasm/token"
)

// Line is a single line of TASM source, pre-processed for comment
// stripping but not yet classified as blank/header/instruction — that
// judgement belongs to the parser.
type Line struct {
	Number int       // 1-based line number.
	Pos    token.Pos // Position of column 1 of this line.
	Raw    string    // The original line, newline excluded.
	Text   string     // Raw with the first ";..." comment and trailing whitespace removed.
}

// Scan splits src into lines, registers it with fset under filename, and
// returns one Line per line of source (the final, possibly-empty trailing
// line produced by a terminating newline is omitted, matching the
// behaviour of strings.Split on line-terminated text).
func Scan(fset *token.FileSet, filename string, src []byte) []Line {
	text := string(src)
	file := fset.AddFile(filename, -1, len(src))
	file.SetLinesForContent(src)

	rawLines := strings.Split(text, "\n")
	// A trailing "\n" produces one spurious empty element; drop it so
	// line counts match what a human reading the file would expect.
	if len(rawLines) > 0 && rawLines[len(rawLines)-1] == "" && strings.HasSuffix(text, "\n") {
		rawLines = rawLines[:len(rawLines)-1]
	}

	lines := make([]Line, len(rawLines))
	for i, raw := range rawLines {
		raw = strings.TrimSuffix(raw, "\r")
		lines[i] = Line{
			Number: i + 1,
			Pos:    file.LineStart(i + 1),
			Raw:    raw,
			Text:   StripComment(raw),
		}
	}

	return lines
}

// StripComment removes everything from the first ';' onward (the TASM
// line-comment marker) and trims trailing whitespace from what remains.
func StripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimRight(line, " \t")
}
