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
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

type cmdCheck struct {
	strict bool
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check INPUT.ixn...",
		summary: "Compile definition files and report diagnostics without generating code",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	flags.BoolVar(&cmd.strict, "strict", false, "treat warnings as errors")
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "usage: ixgen check [options] INPUT.ixn...")
		return 1
	}

	failed := false
	for _, srcPath := range argv {
		out, err := compileFile(srcPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
			continue
		}
		if !out.ok() {
			failed = true
			continue
		}
		if cmd.strict && out.warnings > 0 {
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}
