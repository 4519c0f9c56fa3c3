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

package ixgen_test

import (
	"testing"

	"github.com/DASMAC-com/dropset-v1/internal/testutil"
	"github.com/DASMAC-com/dropset-v1/ixgen"
)

func TestParseArgType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wantOK   bool
		wantSize int
	}{
		{"bool", true, 1},
		{"u8", true, 1},
		{"u16", true, 2},
		{"u32", true, 4},
		{"u64", true, 8},
		{"u128", true, 16},
		{"address", true, 32},
		{"bytes1", true, 1},
		{"bytes37", true, 37},
		{"bytes256", true, 256},
		{"bytes0", false, 0},
		{"bytes257", false, 0},
		{"bytes07", false, 0},
		{"bytes", false, 0},
		{"bytesx", false, 0},
		{"i64", false, 0},
		{"u256", false, 0},
		{"string", false, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			argType, ok := ixgen.ParseArgType(test.name)
			testutil.ExpectEq(t, test.wantOK, ok)
			if !ok {
				return
			}
			testutil.ExpectEq(t, test.wantSize, argType.Size())
			testutil.ExpectEq(t, test.name, argType.String())
		})
	}
}

func TestGoName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"amount", "Amount"},
		{"is_base", "IsBase"},
		{"base_lots_2", "BaseLots2"},
		{"market_account", "MarketAccount"},
		{"Deposit", "Deposit"},
		{"RegisterMarket", "RegisterMarket"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			testutil.ExpectEq(t, test.want, ixgen.GoName(test.name))
		})
	}
}

func TestLayout(t *testing.T) {
	t.Parallel()

	ix := &ixgen.Instruction{
		Name: "Deposit",
		Args: []*ixgen.Arg{
			{Name: "trader", Type: ixgen.ArgType{Kind: ixgen.KindAddress}},
			{Name: "amount", Type: ixgen.ArgType{Kind: ixgen.KindU64}},
			{Name: "is_base", Type: ixgen.ArgType{Kind: ixgen.KindBool}},
		},
	}
	layout := ix.Layout()
	testutil.ExpectEq(t, 42, layout.TotalSize)
	testutil.ExpectSliceEq(t, []int{1, 33, 41}, layout.ArgOffsets)
}

func TestLayoutNoArgs(t *testing.T) {
	t.Parallel()

	ix := &ixgen.Instruction{Name: "FlushEvents"}
	layout := ix.Layout()
	testutil.ExpectEq(t, 1, layout.TotalSize)
	testutil.ExpectEq(t, 0, len(layout.ArgOffsets))
}

func TestHasSigner(t *testing.T) {
	t.Parallel()

	ix := &ixgen.Instruction{
		Accounts: []*ixgen.Account{
			{Index: 0, Name: "payer", Writable: true},
			{Index: 1, Name: "authority", Signer: true},
		},
	}
	testutil.ExpectTrue(t, ix.HasSigner())
	testutil.ExpectFalse(t, (&ixgen.Instruction{}).HasSigner())
}

func TestTagsInUse(t *testing.T) {
	t.Parallel()

	set := &ixgen.InstructionSet{
		Instructions: []*ixgen.Instruction{
			{Name: "A", Tag: 0},
			{Name: "B", Tag: 40},
		},
	}
	tags := set.TagsInUse()
	testutil.ExpectEq(t, 2, len(tags))
	testutil.ExpectEq(t, "A", tags[0].Name)
	testutil.ExpectEq(t, "B", tags[40].Name)
}
