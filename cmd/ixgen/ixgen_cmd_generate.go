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
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/DASMAC-com/dropset-v1/ixgen/codegen"
)

type cmdGenerate struct {
	configPath    string
	outDir        string
	pkg           string
	backendNames  []string
	runtimeImport string
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [INPUT.ixn]",
		summary: "Compile a definition file and write the generated Go packages",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.configPath, "config", "c", "", "config file with generation targets")
	flags.StringVarP(&cmd.outDir, "output", "o", "", "output directory (default: input directory)")
	flags.StringVarP(&cmd.pkg, "package", "p", "", "generated package name (default: program name)")
	flags.StringSliceVarP(&cmd.backendNames, "backend", "b", nil, "backends to generate (cpi, sdk, client)")
	flags.StringVar(&cmd.runtimeImport, "runtime-import", "", "import path of the runtime package")
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	targets, err := cmd.targets(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	failed := false
	for _, target := range targets {
		if err := cmd.generate(target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}

var errCompileFailed = errors.New("compilation failed")

// targets resolves command arguments and flags into generation
// targets. With --config the config file lists the targets and flags
// act as per-target overrides; otherwise the one argument is the
// target.
func (cmd *cmdGenerate) targets(argv []string) ([]configTarget, error) {
	if cmd.configPath == "" {
		if len(argv) != 1 {
			return nil, errors.New("usage: ixgen generate [options] INPUT.ixn")
		}
		return []configTarget{{
			Input:         argv[0],
			OutputDir:     cmd.outDir,
			Package:       cmd.pkg,
			Backends:      cmd.backendNames,
			RuntimeImport: cmd.runtimeImport,
		}}, nil
	}

	if len(argv) != 0 {
		return nil, errors.New("--config and INPUT.ixn are mutually exclusive")
	}
	cfg, err := loadConfig(cmd.configPath)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(cmd.configPath)
	targets := make([]configTarget, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		target.Input = filepath.Join(baseDir, target.Input)
		if target.OutputDir != "" {
			target.OutputDir = filepath.Join(baseDir, target.OutputDir)
		}
		if cmd.outDir != "" {
			target.OutputDir = cmd.outDir
		}
		if cmd.pkg != "" {
			target.Package = cmd.pkg
		}
		if len(cmd.backendNames) > 0 {
			target.Backends = cmd.backendNames
		}
		if target.RuntimeImport == "" {
			target.RuntimeImport = cfg.RuntimeImport
		}
		if cmd.runtimeImport != "" {
			target.RuntimeImport = cmd.runtimeImport
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func (cmd *cmdGenerate) generate(target configTarget) error {
	logger.Debug("compiling definition", zap.String("input", target.Input))

	out, err := compileFile(target.Input)
	if err != nil {
		return err
	}
	if !out.ok() {
		return errors.Wrap(errCompileFailed, target.Input)
	}

	backends, err := target.backends()
	if err != nil {
		return err
	}
	files, err := codegen.Generate(out.result.Set, codegen.Options{
		PackageName:   target.Package,
		RuntimeImport: target.RuntimeImport,
		SourceName:    filepath.Base(target.Input),
		Backends:      backends,
	})
	if err != nil {
		return err
	}

	outDir := target.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(target.Input)
	}
	if err := os.MkdirAll(outDir, 0o777); err != nil {
		return errors.Wrapf(err, "creating output directory %s", outDir)
	}

	for _, file := range files {
		outPath := filepath.Join(outDir, file.Name)
		if err := os.WriteFile(outPath, file.Data, 0o666); err != nil {
			return errors.Wrapf(err, "writing %s", outPath)
		}
		logger.Debug("wrote generated file",
			zap.String("path", outPath),
			zap.Int("bytes", len(file.Data)),
		)
	}
	return nil
}
