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

// Package codegen renders a compiled instruction set into Go source.
// The tag enum and data structs are always emitted; invocation code is
// emitted per selected backend.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"slices"

	"github.com/DASMAC-com/dropset-v1/ixgen"
)

// DefaultRuntimeImport is the import path of the runtime package that
// generated code compiles against.
const DefaultRuntimeImport = "github.com/DASMAC-com/dropset-v1/ixrt"

// Backend selects one flavor of generated invocation code.
type Backend uint8

const (
	// BackendCPI generates low-level invocation structs holding
	// account references, calling through the runtime CPI interface.
	BackendCPI Backend = iota

	// BackendSDK generates SDK invocation structs holding public keys,
	// calling through the runtime SDKInvoker interface.
	BackendSDK

	// BackendClient generates client-side instruction builders that
	// construct SDK instruction values without executing them.
	BackendClient
)

func (b Backend) String() string {
	switch b {
	case BackendCPI:
		return "cpi"
	case BackendSDK:
		return "sdk"
	case BackendClient:
		return "client"
	default:
		return fmt.Sprintf("Backend(%d)", uint8(b))
	}
}

func ParseBackend(name string) (Backend, error) {
	switch name {
	case "cpi":
		return BackendCPI, nil
	case "sdk":
		return BackendSDK, nil
	case "client":
		return BackendClient, nil
	}
	return 0, fmt.Errorf("codegen: unknown backend %q", name)
}

type Options struct {
	// PackageName of the generated files. Defaults to the instruction
	// set name.
	PackageName string

	// RuntimeImport is the import path of the runtime package.
	// Defaults to DefaultRuntimeImport.
	RuntimeImport string

	// SourceName is recorded in the generated file headers, typically
	// the definition file name.
	SourceName string

	// Backends to generate invocation code for. May be empty.
	Backends []Backend
}

// File is one generated source file.
type File struct {
	Name string
	Data []uint8
}

// Generate renders the instruction set. The first file is always the
// tag enum and data structs; one more file follows per backend, in
// cpi, sdk, client order.
func Generate(set *ixgen.InstructionSet, opts Options) ([]File, error) {
	if opts.PackageName == "" {
		opts.PackageName = set.Name
	}
	if opts.RuntimeImport == "" {
		opts.RuntimeImport = DefaultRuntimeImport
	}

	g := &generator{
		set:  set,
		opts: opts,
		rt:   path.Base(opts.RuntimeImport),
	}

	files := []File{{Name: set.Name + "_instructions.go"}}
	g.genInstructions()
	data, err := g.finish()
	if err != nil {
		return nil, err
	}
	files[0].Data = data

	for _, backend := range []Backend{BackendCPI, BackendSDK, BackendClient} {
		if !slices.Contains(opts.Backends, backend) {
			continue
		}
		switch backend {
		case BackendCPI:
			g.genCPI()
		case BackendSDK:
			g.genSDK()
		case BackendClient:
			g.genClient()
		}
		data, err := g.finish()
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Name: fmt.Sprintf("%s_%s.go", set.Name, backend),
			Data: data,
		})
	}
	return files, nil
}

type generator struct {
	set  *ixgen.InstructionSet
	opts Options
	rt   string // package name of the runtime import
	buf  bytes.Buffer
}

func (g *generator) p(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteByte('\n')
}

func (g *generator) header(imports ...string) {
	g.p("// Code generated by ixgen. DO NOT EDIT.")
	if g.opts.SourceName != "" {
		g.p("//")
		g.p("// Source: %s", g.opts.SourceName)
	}
	g.p("")
	g.p("package %s", g.opts.PackageName)
	if len(imports) > 0 {
		g.p("")
		g.p("import (")
		for _, imp := range imports {
			if imp == "" {
				g.p("")
				continue
			}
			g.p("\t%q", imp)
		}
		g.p(")")
	}
}

func (g *generator) finish() ([]uint8, error) {
	src, err := format.Source(g.buf.Bytes())
	g.buf.Reset()
	if err != nil {
		return nil, fmt.Errorf("codegen: emitted invalid Go: %w", err)
	}
	return src, nil
}

// goType is the Go type of an argument field.
func (g *generator) goType(t ixgen.ArgType) string {
	switch t.Kind {
	case ixgen.KindBool:
		return "bool"
	case ixgen.KindU8:
		return "uint8"
	case ixgen.KindU16:
		return "uint16"
	case ixgen.KindU32:
		return "uint32"
	case ixgen.KindU64:
		return "uint64"
	case ixgen.KindU128:
		return g.rt + ".Uint128"
	case ixgen.KindAddress:
		return g.rt + ".Address"
	case ixgen.KindBytes:
		return fmt.Sprintf("[%d]uint8", t.N)
	}
	panic(fmt.Sprintf("codegen: unknown ArgKind %d", t.Kind))
}

// fieldLines renders an aligned field block the way gofmt would: names
// padded with spaces so the types start in one column.
func (g *generator) fieldLines(names, types []string) {
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for i, name := range names {
		g.p("\t%-*s %s", width, name, types[i])
	}
}
