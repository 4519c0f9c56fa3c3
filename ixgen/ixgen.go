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

// Package ixgen models a compiled instruction set: the validated form of
// an instruction definition file, with discriminants resolved and byte
// layouts planned. Values of these types are produced by the compiler
// package and consumed by the codegen package.
package ixgen

import (
	"fmt"
	"strings"
)

// ArgKind enumerates the closed set of argument scalar kinds.
type ArgKind uint8

const (
	KindBool ArgKind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindAddress
	KindBytes
)

// ArgType is an argument type. N is the byte count for KindBytes and
// zero otherwise.
type ArgType struct {
	Kind ArgKind
	N    int
}

// ParseArgType resolves a type name from the definition DSL. The
// recognized names are bool, u8, u16, u32, u64, u128, address, and
// bytesN for 1 <= N <= 256.
func ParseArgType(name string) (ArgType, bool) {
	switch name {
	case "bool":
		return ArgType{Kind: KindBool}, true
	case "u8":
		return ArgType{Kind: KindU8}, true
	case "u16":
		return ArgType{Kind: KindU16}, true
	case "u32":
		return ArgType{Kind: KindU32}, true
	case "u64":
		return ArgType{Kind: KindU64}, true
	case "u128":
		return ArgType{Kind: KindU128}, true
	case "address":
		return ArgType{Kind: KindAddress}, true
	}
	if rest, ok := strings.CutPrefix(name, "bytes"); ok {
		n := 0
		for _, c := range rest {
			if c < '0' || c > '9' {
				return ArgType{}, false
			}
			n = n*10 + int(c-'0')
			if n > 256 {
				return ArgType{}, false
			}
		}
		if len(rest) == 0 || rest[0] == '0' || n == 0 {
			return ArgType{}, false
		}
		return ArgType{Kind: KindBytes, N: n}, true
	}
	return ArgType{}, false
}

// Size is the packed width of the type in bytes.
func (t ArgType) Size() int {
	switch t.Kind {
	case KindBool, KindU8:
		return 1
	case KindU16:
		return 2
	case KindU32:
		return 4
	case KindU64:
		return 8
	case KindU128:
		return 16
	case KindAddress:
		return 32
	case KindBytes:
		return t.N
	}
	panic(fmt.Sprintf("ixgen: unknown ArgKind %d", t.Kind))
}

// String renders the type as it appears in definition files.
func (t ArgType) String() string {
	switch t.Kind {
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU128:
		return "u128"
	case KindAddress:
		return "address"
	case KindBytes:
		return fmt.Sprintf("bytes%d", t.N)
	}
	panic(fmt.Sprintf("ixgen: unknown ArgKind %d", t.Kind))
}

// Account is an account reference declared by an instruction.
type Account struct {
	Index    uint8
	Name     string
	Signer   bool
	Writable bool
	Desc     string
}

// Arg is a serialized instruction argument.
type Arg struct {
	Name string
	Type ArgType
	Desc string
}

// Instruction is one variant of an instruction set, with its
// discriminant resolved. Accounts are sorted by index; Args keep
// declaration order, which is also wire order.
type Instruction struct {
	Name        string
	Doc         string
	Tag         uint8
	ExplicitTag bool
	Accounts    []*Account
	Args        []*Arg
}

// Layout describes the fixed byte layout of an instruction's packed
// data. Offset 0 is the discriminant byte; ArgOffsets[i] is the offset
// of the i'th argument.
type Layout struct {
	TotalSize  int
	ArgOffsets []int
}

// Layout plans the packed layout: one tag byte, then each argument at
// the next free offset in declaration order.
func (ix *Instruction) Layout() Layout {
	offsets := make([]int, len(ix.Args))
	size := 1
	for i, arg := range ix.Args {
		offsets[i] = size
		size += arg.Type.Size()
	}
	return Layout{
		TotalSize:  size,
		ArgOffsets: offsets,
	}
}

// HasSigner reports whether any declared account is a signer.
func (ix *Instruction) HasSigner() bool {
	for _, account := range ix.Accounts {
		if account.Signer {
			return true
		}
	}
	return false
}

// InstructionSet is a fully compiled instruction definition file.
type InstructionSet struct {
	// Name is the program name from the `program` declaration.
	Name string

	// ProgramID is the decoded 32-byte program address.
	ProgramID [32]uint8

	// ProgramIDBase58 is the address as written in the source.
	ProgramIDBase58 string

	// ErrorName optionally overrides the error value returned by the
	// generated tag-parsing code for unassigned bytes. Empty means the
	// runtime default.
	ErrorName string

	// Instructions are in declaration order.
	Instructions []*Instruction
}

// TagsInUse returns the set of assigned discriminant values.
func (set *InstructionSet) TagsInUse() map[uint8]*Instruction {
	tags := make(map[uint8]*Instruction, len(set.Instructions))
	for _, ix := range set.Instructions {
		tags[ix.Tag] = ix
	}
	return tags
}

// GoName converts a snake_case identifier from the definition DSL into
// an exported Go identifier. Names that are already CamelCase pass
// through unchanged.
func GoName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upper := true
	for _, c := range name {
		if c == '_' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		b.WriteRune(c)
	}
	return b.String()
}
