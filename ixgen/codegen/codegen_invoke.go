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

package codegen

import (
	"fmt"

	"github.com/DASMAC-com/dropset-v1/ixgen"
)

const (
	sdkCommonImport = "github.com/blocto/solana-go-sdk/common"
	sdkTypesImport  = "github.com/blocto/solana-go-sdk/types"
)

// accountFlags renders the access summary of one bound account.
func accountFlags(acct *ixgen.Account) string {
	mode := "READ"
	if acct.Writable {
		mode = "WRITE"
	}
	if acct.Signer {
		return mode + ", SIGNER"
	}
	return mode
}

// genAccountList emits the numbered account list shared by all
// invocation struct doc comments.
func (g *generator) genAccountList(ix *ixgen.Instruction) {
	g.p("//")
	g.p("// Accounts:")
	g.p("//")
	for _, acct := range ix.Accounts {
		line := fmt.Sprintf("[%d] %s (%s)", acct.Index, acct.Name, accountFlags(acct))
		if acct.Desc != "" {
			line += ": " + acct.Desc
		}
		g.p("//\t%s", line)
	}
}

func (g *generator) genAccountFields(ix *ixgen.Instruction, goType string) {
	names := make([]string, len(ix.Accounts))
	types := make([]string, len(ix.Accounts))
	for i, acct := range ix.Accounts {
		names[i] = ixgen.GoName(acct.Name)
		types[i] = goType
	}
	g.fieldLines(names, types)
}

// metaCtor is the runtime meta constructor matching the account flags.
func metaCtor(acct *ixgen.Account) string {
	switch {
	case acct.Signer && acct.Writable:
		return "WritableSignerMeta"
	case acct.Writable:
		return "WritableMeta"
	case acct.Signer:
		return "ReadonlySignerMeta"
	default:
		return "ReadonlyMeta"
	}
}

func (g *generator) genCPI() {
	g.header(g.opts.RuntimeImport)
	for _, ix := range g.set.Instructions {
		if len(ix.Accounts) == 0 {
			continue
		}
		accountsType := ix.Name + "Accounts"
		dataType := ix.Name + "InstructionData"

		g.p("")
		g.p("// %s binds the accounts of a %s", accountsType, ix.Name)
		g.p("// instruction for cross-program invocation.")
		g.p("//")
		g.p("// The caller must guarantee that no WRITE account is concurrently")
		g.p("// borrowed in any capacity, and that no READ account is concurrently")
		g.p("// mutably borrowed.")
		g.genAccountList(ix)
		g.p("type %s struct {", accountsType)
		g.genAccountFields(ix, "*"+g.rt+".AccountInfo")
		g.p("}")

		g.p("")
		g.p("// Invoke executes the instruction with no program signer seeds.")
		g.p("func (a %s) Invoke(cpi %s.CPI, data %s) error {", accountsType, g.rt, dataType)
		g.p("\treturn a.InvokeSigned(cpi, nil, data)")
		g.p("}")

		g.p("")
		g.p("// InvokeSigned executes the instruction, signing with the given seed")
		g.p("// groups. Account metas appear in declared index order.")
		g.p("func (a %s) InvokeSigned(", accountsType)
		g.p("\tcpi %s.CPI,", g.rt)
		g.p("\tseeds []%s.SignerSeeds,", g.rt)
		g.p("\tdata %s,", dataType)
		g.p(") error {")
		g.p("\tpacked := data.Pack()")
		g.p("\treturn cpi.InvokeSigned(%s.Instruction{", g.rt)
		g.p("\t\tProgramID: ProgramID,")
		g.p("\t\tAccounts: []%s.AccountMeta{", g.rt)
		for _, acct := range ix.Accounts {
			g.p("\t\t\t%s.%s(a.%s.Key()),", g.rt, metaCtor(acct), ixgen.GoName(acct.Name))
		}
		g.p("\t\t},")
		g.p("\t\tData: packed[:],")
		g.p("\t}, []*%s.AccountInfo{", g.rt)
		for _, acct := range ix.Accounts {
			g.p("\t\ta.%s,", ixgen.GoName(acct.Name))
		}
		g.p("\t}, seeds)")
		g.p("}")
	}
}

// genSDKMetas emits the AccountMeta literals shared by the sdk and
// client backends.
func (g *generator) genSDKMetas(ix *ixgen.Instruction, indent string) {
	g.p("%sAccounts: []types.AccountMeta{", indent)
	for _, acct := range ix.Accounts {
		g.p("%s\t{PubKey: a.%s, IsSigner: %t, IsWritable: %t},",
			indent, ixgen.GoName(acct.Name), acct.Signer, acct.Writable)
	}
	g.p("%s},", indent)
}

func (g *generator) genSDK() {
	g.header(sdkCommonImport, sdkTypesImport, "", g.opts.RuntimeImport)
	for _, ix := range g.set.Instructions {
		if len(ix.Accounts) == 0 {
			continue
		}
		accountsType := ix.Name + "SDKAccounts"
		dataType := ix.Name + "InstructionData"

		g.p("")
		g.p("// %s binds the accounts of a %s", accountsType, ix.Name)
		g.p("// instruction for submission through an SDK invoker.")
		g.genAccountList(ix)
		g.p("type %s struct {", accountsType)
		g.genAccountFields(ix, "common.PublicKey")
		g.p("}")

		g.p("")
		g.p("// Invoke executes the instruction with no program signer seeds.")
		g.p("func (a %s) Invoke(inv %s.SDKInvoker, data %s) error {", accountsType, g.rt, dataType)
		g.p("\treturn a.InvokeSigned(inv, nil, data)")
		g.p("}")

		g.p("")
		g.p("// InvokeSigned executes the instruction through inv, signing with")
		g.p("// the given seed groups. Account metas appear in declared index order.")
		g.p("func (a %s) InvokeSigned(", accountsType)
		g.p("\tinv %s.SDKInvoker,", g.rt)
		g.p("\tseeds []%s.SignerSeeds,", g.rt)
		g.p("\tdata %s,", dataType)
		g.p(") error {")
		g.p("\tpacked := data.Pack()")
		g.p("\treturn inv.InvokeSigned(types.Instruction{")
		g.p("\t\tProgramID: common.PublicKeyFromBytes(ProgramID[:]),")
		g.genSDKMetas(ix, "\t\t")
		g.p("\t\tData: packed[:],")
		g.p("\t}, seeds)")
		g.p("}")
	}
}

func (g *generator) genClient() {
	g.header(sdkCommonImport, sdkTypesImport)
	for _, ix := range g.set.Instructions {
		if len(ix.Accounts) == 0 {
			continue
		}
		accountsType := ix.Name + "ClientAccounts"
		dataType := ix.Name + "InstructionData"

		g.p("")
		g.p("// %s binds the accounts of a %s", accountsType, ix.Name)
		g.p("// instruction for client-side transaction building.")
		g.genAccountList(ix)
		g.p("type %s struct {", accountsType)
		g.genAccountFields(ix, "common.PublicKey")
		g.p("}")

		g.p("")
		g.p("// CreateInstruction builds the transaction instruction without")
		g.p("// executing it.")
		g.p("func (a %s) CreateInstruction(data %s) types.Instruction {", accountsType, dataType)
		g.p("\tpacked := data.Pack()")
		g.p("\treturn types.Instruction{")
		g.p("\t\tProgramID: common.PublicKeyFromBytes(ProgramID[:]),")
		g.genSDKMetas(ix, "\t\t")
		g.p("\t\tData: packed[:],")
		g.p("\t}")
		g.p("}")
	}
}
