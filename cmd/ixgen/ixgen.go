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

// The ixgen tool compiles instruction definition files and generates
// the Go packages that pack, unpack, and invoke those instructions.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

var logger = zap.NewNop()

func main() {
	ctx := context.Background()

	var verbose bool
	ixgenCmd := &cobra.Command{
		Use: "ixgen [options] COMMAND",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	ixgenCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, ixgenCmd.UsageString())
		os.Exit(1)
		return nil
	}
	ixgenCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)
	ixgenCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		devLogger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = devLogger
		return nil
	}

	commands := []command{
		&cmdGenerate{},
		&cmdCheck{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				defer logger.Sync()
				os.Exit(cmd.run(ctx, args))
				return nil
			},
		}
		ixgenCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	if _, err := ixgenCmd.ExecuteC(); err != nil {
		os.Exit(1)
	}
}
