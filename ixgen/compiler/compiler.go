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

// Package compiler validates a parsed instruction definition and
// resolves it into an ixgen.InstructionSet: discriminants assigned,
// accounts ordered by index, argument types checked. Errors are
// collected rather than reported fail-fast, so one compile surfaces
// every structural violation it can.
package compiler

import (
	"slices"

	"github.com/mr-tron/base58"

	"github.com/DASMAC-com/dropset-v1/ixgen"
	"github.com/DASMAC-com/dropset-v1/ixgen/syntax"
)

type CompileResult struct {
	// Set is nil when Errors is non-empty.
	Set *ixgen.InstructionSet

	Errors   []*Error
	Warnings []*Warning
}

func Compile(doc *syntax.Document) CompileResult {
	c := compiler{
		doc: doc,
		set: &ixgen.InstructionSet{},
	}
	c.compileDocument()
	if len(c.errors) > 0 {
		return CompileResult{
			Errors:   c.errors,
			Warnings: c.warnings,
		}
	}
	return CompileResult{
		Set:      c.set,
		Warnings: c.warnings,
	}
}

type compiler struct {
	doc      *syntax.Document
	set      *ixgen.InstructionSet
	errors   []*Error
	warnings []*Warning
}

func (c *compiler) err(err error) {
	c.errors = append(c.errors, err.(*Error))
}

func (c *compiler) warn(warning *Warning) {
	c.warnings = append(c.warnings, warning)
}

func (c *compiler) compileDocument() {
	c.compileProgram()

	type tagOwner struct {
		ix   *ixgen.Instruction
		node *syntax.Instruction
	}
	owners := make(map[uint8]tagOwner)
	namesByIx := make(map[string]*syntax.Instruction)

	// Implicit discriminants take the next value after the most
	// recently resolved one, starting at zero. An explicit value moves
	// the counter, so [implicit, implicit, 40, implicit] resolves to
	// [0, 1, 40, 41].
	nextTag := uint64(0)

	for node := range c.doc.Instructions() {
		name := node.Name().Get()
		if prev, conflict := namesByIx[name]; conflict {
			c.err(errInstructionNameConflict(name, prev, node))
		} else {
			namesByIx[name] = node
		}

		ix := &ixgen.Instruction{
			Name: name,
		}
		if docNode := node.Doc(); docNode != nil {
			if text, ok := docNode.Text().GetText(); ok {
				ix.Doc = text
			}
		}

		tagOk := true
		if lit := node.Tag(); lit != nil {
			if v, ok := lit.GetUint8(); ok {
				ix.Tag = v
				ix.ExplicitTag = true
				nextTag = uint64(v) + 1
			} else {
				c.err(errTagOutOfRange(name, lit))
				tagOk = false
			}
		} else {
			if nextTag > 255 {
				c.err(errTagOverflow(name, node.Name().Span()))
				tagOk = false
			} else {
				ix.Tag = uint8(nextTag)
				nextTag++
			}
		}
		if tagOk {
			if prev, conflict := owners[ix.Tag]; conflict {
				c.err(errTagConflict(ix.Tag, prev.ix.Name, name, node.Name().Span()))
			} else {
				owners[ix.Tag] = tagOwner{ix: ix, node: node}
			}
		}

		c.compileAccounts(ix, node)
		c.compileArgs(ix, node)

		if len(ix.Accounts) == 0 && len(ix.Args) == 0 {
			c.warn(warnTagOnlyInstruction(name, node.Name().Span()))
		} else if len(ix.Accounts) == 0 {
			c.warn(warnDataOnlyInstruction(name, node.Name().Span()))
		}

		c.set.Instructions = append(c.set.Instructions, ix)
	}
}

func (c *compiler) compileProgram() {
	program := c.doc.Program()
	if program == nil {
		c.err(errMissingProgram(c.doc.Span()))
		return
	}
	c.set.Name = program.Name().Get()

	if errName := program.ErrorName(); errName != nil {
		c.set.ErrorName = errName.Get()
	}

	idNode := program.ID()
	if idNode == nil {
		c.err(errMissingProgramID(program.Name().Get(), program.Span()))
		return
	}
	idText, ok := idNode.GetText()
	if !ok {
		c.err(errInvalidProgramID(idNode))
		return
	}
	decoded, err := base58.Decode(idText)
	if err != nil {
		c.err(errInvalidProgramID(idNode))
		return
	}
	if len(decoded) != 32 {
		c.err(errProgramIDWrongLength(len(decoded), idNode))
		return
	}
	c.set.ProgramIDBase58 = idText
	copy(c.set.ProgramID[:], decoded)
}

func (c *compiler) compileAccounts(
	ix *ixgen.Instruction,
	node *syntax.Instruction,
) {
	accountNodes := node.Accounts()
	if len(accountNodes) == 0 {
		return
	}

	names := make(map[string]struct{}, len(accountNodes))
	byIndex := make(map[uint8]*ixgen.Account, len(accountNodes))
	indexOk := true

	for _, accountNode := range accountNodes {
		account := &ixgen.Account{
			Name: accountNode.Name().Get(),
		}

		if _, conflict := names[account.Name]; conflict {
			c.err(errAccountNameConflict(
				ix.Name, account.Name, accountNode.Name().Span(),
			))
		} else {
			names[account.Name] = struct{}{}
		}

		if v, ok := accountNode.Index().GetUint8(); ok {
			account.Index = v
		} else {
			c.err(errAccountIndexOutOfRange(
				ix.Name, account.Name, accountNode.Index(),
			))
			indexOk = false
		}

		for _, flag := range accountNode.Flags() {
			switch flag.Get() {
			case "signer":
				if account.Signer {
					c.warn(warnDuplicateAccountFlag(
						ix.Name, account.Name, "signer", flag.Span(),
					))
				}
				account.Signer = true
			case "writable":
				if account.Writable {
					c.warn(warnDuplicateAccountFlag(
						ix.Name, account.Name, "writable", flag.Span(),
					))
				}
				account.Writable = true
			default:
				c.err(errUnknownAccountFlag(
					ix.Name, account.Name, flag.Get(), flag.Span(),
				))
			}
		}

		if desc := accountNode.Desc(); desc != nil {
			if text, ok := desc.GetText(); ok {
				account.Desc = text
			}
		} else {
			c.warn(warnAccountMissingDesc(
				ix.Name, account.Name, accountNode.Name().Span(),
			))
		}

		if prev, conflict := byIndex[account.Index]; conflict {
			c.err(errAccountIndexConflict(
				ix.Name, account.Index, prev.Name, account.Name,
				accountNode.Index().Span(),
			))
			indexOk = false
		} else {
			byIndex[account.Index] = account
		}

		ix.Accounts = append(ix.Accounts, account)
	}

	// Declaration order is free, but the indices must cover 0..n-1
	// exactly. Everything downstream presents accounts in index order.
	if indexOk {
		for i := range len(ix.Accounts) {
			if _, ok := byIndex[uint8(i)]; !ok {
				c.err(errAccountIndexGap(ix.Name, uint8(i), node.Name().Span()))
			}
		}
	}
	slices.SortStableFunc(ix.Accounts, func(a, b *ixgen.Account) int {
		return int(a.Index) - int(b.Index)
	})

	if !ix.HasSigner() {
		c.err(errNoSignerAccount(ix.Name, node.Name().Span()))
	}
}

func (c *compiler) compileArgs(
	ix *ixgen.Instruction,
	node *syntax.Instruction,
) {
	argNodes := node.Args()
	if len(argNodes) == 0 {
		return
	}

	names := make(map[string]struct{}, len(argNodes))
	for _, argNode := range argNodes {
		arg := &ixgen.Arg{
			Name: argNode.Name().Get(),
		}

		if _, conflict := names[arg.Name]; conflict {
			c.err(errArgNameConflict(ix.Name, arg.Name, argNode.Name().Span()))
		} else {
			names[arg.Name] = struct{}{}
		}

		typeName := argNode.TypeName().Get()
		if argType, ok := ixgen.ParseArgType(typeName); ok {
			arg.Type = argType
		} else {
			c.err(errUnknownArgType(
				ix.Name, arg.Name, typeName, argNode.TypeName().Span(),
			))
		}

		if desc := argNode.Desc(); desc != nil {
			if text, ok := desc.GetText(); ok {
				arg.Desc = text
			}
		}

		ix.Args = append(ix.Args, arg)
	}
}
