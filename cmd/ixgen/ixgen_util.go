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

package main

import (
	"fmt"
	"os"

	"github.com/DASMAC-com/dropset-v1/ixgen/compiler"
	"github.com/DASMAC-com/dropset-v1/ixgen/syntax"
)

// lineCol maps a byte offset into src to a 1-based line and column.
// Columns count bytes, which matches how editors address plain ASCII
// definition files.
func lineCol(src []uint8, offset uint32) (line, col int) {
	line = 1
	col = 1
	for i := uint32(0); i < offset && i < uint32(len(src)); i++ {
		if src[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func printDiagnostic(srcPath string, src []uint8, span syntax.Span, msg string) {
	line, col := lineCol(src, span.Start())
	fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", srcPath, line, col, msg)
}

// compileFile parses and compiles one definition file, printing every
// diagnostic. It returns a nil set when compilation failed.
func compileFile(srcPath string) (*compileOutput, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, err
	}

	parsed, err := syntax.Parse(src)
	if err != nil {
		if syntaxErr, ok := err.(*syntax.Error); ok {
			printDiagnostic(srcPath, src, syntaxErr.Span(), syntaxErr.Error())
			return &compileOutput{}, nil
		}
		return nil, err
	}

	result := compiler.Compile(parsed)
	for _, warn := range result.Warnings {
		printDiagnostic(srcPath, src, warn.Span(), warn.String())
	}
	for _, compileErr := range result.Errors {
		printDiagnostic(srcPath, src, compileErr.Span(), compileErr.Error())
	}
	return &compileOutput{
		result:   result,
		warnings: len(result.Warnings),
	}, nil
}

type compileOutput struct {
	result   compiler.CompileResult
	warnings int
}

func (out *compileOutput) ok() bool {
	return out.result.Set != nil
}
