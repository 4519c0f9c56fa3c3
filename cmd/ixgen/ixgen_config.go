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
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/DASMAC-com/dropset-v1/ixgen/codegen"
)

// config is the ixgen.yaml file format. Flags override per-target
// fields when both are given.
type config struct {
	// RuntimeImport applies to every target unless the target sets its
	// own.
	RuntimeImport string `yaml:"runtime_import"`

	Targets []configTarget `yaml:"targets"`
}

type configTarget struct {
	// Input is the definition file path, relative to the config file.
	Input string `yaml:"input"`

	// OutputDir receives the generated files. Defaults to the input
	// file's directory.
	OutputDir string `yaml:"output_dir"`

	// Package is the generated package name. Defaults to the program
	// name.
	Package string `yaml:"package"`

	Backends      []string `yaml:"backends"`
	RuntimeImport string   `yaml:"runtime_import"`
}

func loadConfig(path string) (*config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	var cfg config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if len(cfg.Targets) == 0 {
		return nil, errors.Errorf("config %s declares no targets", path)
	}
	for i, target := range cfg.Targets {
		if target.Input == "" {
			return nil, errors.Errorf(
				"config %s: target %d declares no input", path, i,
			)
		}
	}
	return &cfg, nil
}

func (target *configTarget) backends() ([]codegen.Backend, error) {
	backends := make([]codegen.Backend, 0, len(target.Backends))
	for _, name := range target.Backends {
		backend, err := codegen.ParseBackend(name)
		if err != nil {
			return nil, err
		}
		backends = append(backends, backend)
	}
	return backends, nil
}
