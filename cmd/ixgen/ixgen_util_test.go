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
	"path/filepath"
	"testing"

	"github.com/DASMAC-com/dropset-v1/internal/testutil"
)

func TestLineCol(t *testing.T) {
	t.Parallel()

	src := []uint8("abc\ndef\n\nghi")

	tests := []struct {
		offset   uint32
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 1, 4},
		{4, 2, 1},
		{8, 3, 1},
		{9, 4, 1},
		{11, 4, 3},
	}

	for _, test := range tests {
		line, col := lineCol(src, test.offset)
		testutil.ExpectEq(t, test.wantLine, line)
		testutil.ExpectEq(t, test.wantCol, col)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ixgen.yaml")
	testutil.AssertNoError(t, os.WriteFile(path, []uint8(`
runtime_import: example.com/rt
targets:
  - input: dropset.ixn
    output_dir: gen
    package: dropset
    backends: [cpi, sdk, client]
`), 0o666))

	cfg, err := loadConfig(path)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "example.com/rt", cfg.RuntimeImport)
	testutil.ExpectEq(t, 1, len(cfg.Targets))
	testutil.ExpectEq(t, "dropset.ixn", cfg.Targets[0].Input)
	testutil.ExpectEq(t, "gen", cfg.Targets[0].OutputDir)
	testutil.ExpectEq(t, "dropset", cfg.Targets[0].Package)
	testutil.ExpectSliceEq(t, []string{"cpi", "sdk", "client"}, cfg.Targets[0].Backends)

	backends, err := cfg.Targets[0].backends()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 3, len(backends))
}

func TestLoadConfigRejectsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ixgen.yaml")
	testutil.AssertNoError(t, os.WriteFile(path, []uint8("targets: []\n"), 0o666))

	_, err := loadConfig(path)
	testutil.AssertError(t, err)
}
