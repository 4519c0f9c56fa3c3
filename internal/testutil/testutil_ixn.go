// Copyright (c) 2025 DASMAC <dev@dasmac.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package testutil

import (
	"testing"

	"github.com/DASMAC-com/dropset-v1/ixgen"
	"github.com/DASMAC-com/dropset-v1/ixgen/compiler"
	"github.com/DASMAC-com/dropset-v1/ixgen/syntax"
)

// ProgramID58 is a syntactically valid base58 program id for test
// definitions (the system program address, 32 zero bytes).
const ProgramID58 = "11111111111111111111111111111111"

// Parse parses an instruction definition source, failing the test on
// any syntax error.
func Parse(t *testing.T, src string) *syntax.Document {
	t.Helper()
	doc, err := syntax.Parse([]uint8(src))
	AssertNoError(t, err)
	return doc
}

// Compile parses and compiles an instruction definition source,
// failing the test on any syntax or compile error.
func Compile(t *testing.T, src string) *ixgen.InstructionSet {
	t.Helper()
	result := compiler.Compile(Parse(t, src))
	for _, err := range result.Errors {
		t.Error(err)
	}
	if len(result.Errors) > 0 {
		t.FailNow()
	}
	return result.Set
}

// CompileErr parses and compiles an instruction definition source that
// is expected to fail, returning the compile errors.
func CompileErr(t *testing.T, src string) []*compiler.Error {
	t.Helper()
	result := compiler.Compile(Parse(t, src))
	if len(result.Errors) == 0 {
		t.Fatal("Expected compile errors, got: none")
	}
	return result.Errors
}
