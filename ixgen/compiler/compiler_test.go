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

package compiler_test

import (
	"fmt"
	"testing"

	"github.com/DASMAC-com/dropset-v1/internal/testutil"
	"github.com/DASMAC-com/dropset-v1/ixgen/compiler"
)

const programHeader = `program dropset {
	id = "` + testutil.ProgramID58 + `"
}

`

func TestCompile(t *testing.T) {
	t.Parallel()

	set := testutil.Compile(t, `program dropset {
	id = "`+testutil.ProgramID58+`"
	error = ErrInvalidDropsetInstruction
}

instruction Deposit = 2 {
	doc "Deposit tokens into a seat."
	account 0 user [signer] "The depositing trader."
	account 1 market [writable] "The market state account."
	arg amount: u64 "Amount in atoms."
	arg is_base: bool "True for base, false for quote."
}
`)

	testutil.ExpectEq(t, "dropset", set.Name)
	testutil.ExpectEq(t, testutil.ProgramID58, set.ProgramIDBase58)
	testutil.ExpectEq(t, [32]uint8{}, set.ProgramID)
	testutil.ExpectEq(t, "ErrInvalidDropsetInstruction", set.ErrorName)
	testutil.ExpectEq(t, 1, len(set.Instructions))

	deposit := set.Instructions[0]
	testutil.ExpectEq(t, "Deposit", deposit.Name)
	testutil.ExpectEq(t, "Deposit tokens into a seat.", deposit.Doc)
	testutil.ExpectEq(t, 2, deposit.Tag)
	testutil.ExpectTrue(t, deposit.ExplicitTag)
	testutil.ExpectEq(t, 2, len(deposit.Accounts))
	testutil.ExpectEq(t, "user", deposit.Accounts[0].Name)
	testutil.ExpectTrue(t, deposit.Accounts[0].Signer)
	testutil.ExpectFalse(t, deposit.Accounts[0].Writable)
	testutil.ExpectTrue(t, deposit.Accounts[1].Writable)
	testutil.ExpectEq(t, 2, len(deposit.Args))
	testutil.ExpectEq(t, 10, deposit.Layout().TotalSize)
}

func TestDiscriminantAssignment(t *testing.T) {
	t.Parallel()

	src := programHeader
	for _, decl := range []struct {
		name string
		tag  string
	}{
		{"A", ""},
		{"B", ""},
		{"C", "= 40"},
		{"D", ""},
		{"E", ""},
		{"F", "= 50"},
	} {
		src += fmt.Sprintf(
			"instruction %s %s{\n\taccount 0 payer [signer] \"Fee payer.\"\n}\n",
			decl.name, decl.tag,
		)
	}
	set := testutil.Compile(t, src)

	wantTags := []uint8{0, 1, 40, 41, 42, 50}
	wantExplicit := []bool{false, false, true, false, false, true}
	testutil.ExpectEq(t, len(wantTags), len(set.Instructions))
	for i, ix := range set.Instructions {
		testutil.ExpectEq(t, wantTags[i], ix.Tag)
		testutil.ExpectEq(t, wantExplicit[i], ix.ExplicitTag)
	}
}

func expectCodes(t *testing.T, errs []*compiler.Error, wantCodes ...uint32) {
	t.Helper()
	var got []uint32
	for _, err := range errs {
		got = append(got, err.Code())
	}
	testutil.ExpectSliceEq(t, wantCodes, got)
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	signerAccount := "account 0 payer [signer] \"Fee payer.\"\n"

	tests := []struct {
		name      string
		src       string
		wantCodes []uint32
	}{{
		name:      "missing program",
		src:       "instruction A {\n\t" + signerAccount + "}\n",
		wantCodes: []uint32{3000},
	}, {
		name:      "missing program id",
		src:       "program dropset {}\n",
		wantCodes: []uint32{3001},
	}, {
		name:      "program id not base58",
		src:       "program dropset {\n\tid = \"0OIl\"\n}\n",
		wantCodes: []uint32{3002},
	}, {
		name:      "program id wrong length",
		src:       "program dropset {\n\tid = \"abc\"\n}\n",
		wantCodes: []uint32{3003},
	}, {
		name: "instruction name conflict",
		src: programHeader +
			"instruction A {\n\t" + signerAccount + "}\n" +
			"instruction A = 7 {\n\t" + signerAccount + "}\n",
		wantCodes: []uint32{3004},
	}, {
		name:      "tag out of range",
		src:       programHeader + "instruction A = 256 {\n\t" + signerAccount + "}\n",
		wantCodes: []uint32{3005},
	}, {
		name: "tag overflow",
		src: programHeader +
			"instruction A = 255 {\n\t" + signerAccount + "}\n" +
			"instruction B {\n\t" + signerAccount + "}\n",
		wantCodes: []uint32{3006},
	}, {
		name: "tag conflict",
		src: programHeader +
			"instruction A {\n\t" + signerAccount + "}\n" +
			"instruction B = 0 {\n\t" + signerAccount + "}\n",
		wantCodes: []uint32{3007},
	}, {
		name: "account index out of range",
		src: programHeader +
			"instruction A {\n\taccount 256 payer [signer] \"Fee payer.\"\n}\n",
		wantCodes: []uint32{3008},
	}, {
		name: "account index conflict",
		src: programHeader + "instruction A {\n" +
			"\taccount 0 payer [signer] \"Fee payer.\"\n" +
			"\taccount 0 market [writable] \"Market state.\"\n}\n",
		wantCodes: []uint32{3009},
	}, {
		name: "account index gap",
		src: programHeader + "instruction A {\n" +
			"\taccount 0 payer [signer] \"Fee payer.\"\n" +
			"\taccount 2 market [writable] \"Market state.\"\n}\n",
		wantCodes: []uint32{3010},
	}, {
		name: "account name conflict",
		src: programHeader + "instruction A {\n" +
			"\taccount 0 payer [signer] \"Fee payer.\"\n" +
			"\taccount 1 payer [writable] \"Also the fee payer.\"\n}\n",
		wantCodes: []uint32{3011},
	}, {
		name: "unknown account flag",
		src: programHeader +
			"instruction A {\n\taccount 0 payer [signer, mutable] \"Fee payer.\"\n}\n",
		wantCodes: []uint32{3012},
	}, {
		name: "no signer account",
		src: programHeader +
			"instruction A {\n\taccount 0 market [writable] \"Market state.\"\n}\n",
		wantCodes: []uint32{3013},
	}, {
		name: "arg name conflict",
		src: programHeader + "instruction A {\n\t" + signerAccount +
			"\targ amount: u64 \"Amount.\"\n" +
			"\targ amount: u32 \"Amount again.\"\n}\n",
		wantCodes: []uint32{3014},
	}, {
		name: "unknown arg type",
		src: programHeader + "instruction A {\n\t" + signerAccount +
			"\targ amount: i64 \"Amount.\"\n}\n",
		wantCodes: []uint32{3015},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			expectCodes(t, testutil.CompileErr(t, test.src), test.wantCodes...)
		})
	}
}

func TestTagConflictNamesBothInstructions(t *testing.T) {
	t.Parallel()

	errs := testutil.CompileErr(t, programHeader+
		"instruction First = 5 {\n\taccount 0 payer [signer] \"Fee payer.\"\n}\n"+
		"instruction Second = 5 {\n\taccount 0 payer [signer] \"Fee payer.\"\n}\n")
	testutil.ExpectEq(t, 1, len(errs))
	testutil.ExpectMatch(t, "First", errs[0].Message())
	testutil.ExpectMatch(t, "Second", errs[0].Message())
}

func TestAccountDeclarationOrderIsFree(t *testing.T) {
	t.Parallel()

	set := testutil.Compile(t, programHeader+"instruction A {\n"+
		"\taccount 1 market [writable] \"Market state.\"\n"+
		"\taccount 0 payer [signer] \"Fee payer.\"\n"+
		"\taccount 2 vault \"Token vault.\"\n}\n")

	accounts := set.Instructions[0].Accounts
	testutil.ExpectEq(t, 3, len(accounts))
	testutil.ExpectEq(t, "payer", accounts[0].Name)
	testutil.ExpectEq(t, "market", accounts[1].Name)
	testutil.ExpectEq(t, "vault", accounts[2].Name)
	for i, account := range accounts {
		testutil.ExpectEq(t, uint8(i), account.Index)
	}
}

func TestCompileCollectsMultipleErrors(t *testing.T) {
	t.Parallel()

	errs := testutil.CompileErr(t, programHeader+"instruction A {\n"+
		"\taccount 0 market [mutable] \"Market state.\"\n"+
		"\targ amount: i64 \"Amount.\"\n}\n")
	expectCodes(t, errs, 3012, 3013, 3015)
}

func TestCompileWarnings(t *testing.T) {
	t.Parallel()

	doc := testutil.Parse(t, programHeader+
		"instruction TagOnly {}\n"+
		"instruction DataOnly {\n\targ amount: u64 \"Amount.\"\n}\n"+
		"instruction A {\n\taccount 0 payer [signer, signer]\n}\n")
	result := compiler.Compile(doc)
	for _, err := range result.Errors {
		t.Error(err)
	}
	if result.Set == nil {
		t.Fatal("Expected a compiled set, got: nil")
	}

	var codes []uint32
	for _, warning := range result.Warnings {
		codes = append(codes, warning.Code())
	}
	testutil.ExpectSliceEq(t, []uint32{4000, 4001, 4003, 4002}, codes)
}
